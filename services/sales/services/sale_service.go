package services

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/ayababa270/ecommerce-Baba-Charaf/common/breaker"
	"github.com/ayababa270/ecommerce-Baba-Charaf/services/sales/clients"
	"github.com/ayababa270/ecommerce-Baba-Charaf/services/sales/models"
	"github.com/ayababa270/ecommerce-Baba-Charaf/services/sales/repository"
)

// SaleService coordinates a purchase across the inventory and customer
// services. There is no shared database and no transaction coordinator: the
// flow is an ordered step list where each remote mutation is irreversible
// once issued, so step order and failure classification carry the
// consistency guarantees.
type SaleService struct {
	inventory *clients.InventoryClient
	customers *clients.CustomerClient
	purchases repository.PurchaseRepository
	logger    *zap.Logger
}

func NewSaleService(
	inventory *clients.InventoryClient,
	customers *clients.CustomerClient,
	purchases repository.PurchaseRepository,
	logger *zap.Logger,
) *SaleService {
	return &SaleService{
		inventory: inventory,
		customers: customers,
		purchases: purchases,
		logger:    logger,
	}
}

// AttemptPurchase executes the sale flow for an authenticated buyer:
//
//  1. fetch the good (price snapshot taken here)
//  2. check stock
//  3. fetch the buyer
//  4. check funds
//  5. debit the wallet
//  6. decrement the stock
//  7. record the purchase locally
//
// Steps run strictly in order; a failure short-circuits everything after it.
// Steps 1–4 touch no state, so their failures need no cleanup. Step 5 is the
// first irreversible action: if step 6 then fails, AttemptPurchase issues
// one best-effort compensating credit and reports a partial failure either
// way, recording an unreconciled purchase when the compensation itself
// fails. Nothing is retried here; retrying a debit could charge the buyer
// twice.
func (s *SaleService) AttemptPurchase(ctx context.Context, buyer, goodName, credential string) (*models.Purchase, *SaleError) {
	if goodName == "" {
		return nil, saleError(KindInput, "Missing required fields", nil)
	}

	// Step 1: fetch the good. The price read here is the price charged and
	// recorded, even if the catalog changes mid-flight.
	good, err := s.inventory.GetGood(ctx, goodName, credential)
	if err != nil {
		return nil, s.classifyInventoryErr(err, "Good not found")
	}

	// Step 2: stock check. Advisory only; the decrement in step 6
	// re-validates atomically.
	if good.CountInStock <= 0 {
		return nil, saleError(KindOutOfStock, "Good is out of stock", nil)
	}

	// Step 3: fetch the buyer.
	customer, err := s.customers.GetByUsername(ctx, buyer, credential)
	if err != nil {
		return nil, s.classifyCustomerErr(err, "Customer not found")
	}

	// Step 4: funds check. Advisory, like step 2.
	if customer.Wallet < good.PricePerItem {
		return nil, saleError(KindInsufficientFunds, "Insufficient funds", nil)
	}

	// Step 5: debit the wallet. The customer service re-checks the balance
	// atomically; its rejection is authoritative over our read in step 4.
	if _, err := s.customers.DeductWallet(ctx, credential, good.PricePerItem); err != nil {
		return nil, s.classifyDebitErr(err)
	}

	// Step 6: decrement the stock. The debit has already committed, so a
	// failure here is the critical partial-failure case.
	if _, err := s.inventory.DecreaseStock(ctx, goodName, credential); err != nil {
		return nil, s.compensateDebit(ctx, buyer, good, credential, err)
	}

	// Step 7: record the purchase. Local-only write; the business effect
	// has already happened, so a failure here is bookkeeping, not rollback.
	purchase := &models.Purchase{
		CustomerUsername: buyer,
		GoodName:         good.Name,
		Price:            good.PricePerItem,
		Status:           models.PurchaseStatusCompleted,
	}
	if err := s.purchases.Create(ctx, purchase); err != nil {
		s.logger.Error("Purchase completed but recording failed",
			zap.String("buyer", buyer),
			zap.String("good", good.Name),
			zap.Float64("price", good.PricePerItem),
			zap.Error(err),
		)
		return nil, saleError(KindRecordingFailed,
			"Purchase succeeded but could not be recorded", err)
	}

	s.logger.Info("Purchase completed",
		zap.String("buyer", buyer),
		zap.String("good", good.Name),
		zap.Float64("price", good.PricePerItem),
	)
	return purchase, nil
}

// compensateDebit handles the debit-succeeded/decrement-failed divergence:
// one best-effort credit back to the buyer, an unreconciled purchase row
// when that credit also fails, and a partial-failure report in both cases so
// the discrepancy is never silent.
func (s *SaleService) compensateDebit(ctx context.Context, buyer string, good *clients.Good, credential string, cause error) *SaleError {
	s.logger.Error("Stock update failed after wallet debit",
		zap.String("buyer", buyer),
		zap.String("good", good.Name),
		zap.Float64("amount", good.PricePerItem),
		zap.Error(cause),
	)

	if _, err := s.customers.CreditWallet(ctx, credential, good.PricePerItem); err != nil {
		s.logger.Error("Compensating credit failed, recording unreconciled purchase",
			zap.String("buyer", buyer),
			zap.String("good", good.Name),
			zap.Float64("amount", good.PricePerItem),
			zap.Error(err),
		)
		unreconciled := &models.Purchase{
			CustomerUsername: buyer,
			GoodName:         good.Name,
			Price:            good.PricePerItem,
			Status:           models.PurchaseStatusUnreconciled,
		}
		if err := s.purchases.Create(ctx, unreconciled); err != nil {
			s.logger.Error("Failed to record unreconciled purchase",
				zap.String("buyer", buyer),
				zap.String("good", good.Name),
				zap.Error(err),
			)
		}
		return saleError(KindPartialFailure,
			"Failed to update good stock; wallet debit could not be reversed", cause)
	}

	s.logger.Warn("Wallet debit compensated after stock update failure",
		zap.String("buyer", buyer),
		zap.String("good", good.Name),
		zap.Float64("amount", good.PricePerItem),
	)
	return saleError(KindPartialFailure,
		"Failed to update good stock; wallet debit was refunded", cause)
}

func (s *SaleService) classifyInventoryErr(err error, notFoundMsg string) *SaleError {
	if errors.Is(err, breaker.ErrOpen) {
		return dependencyUnavailable("inventory", err)
	}
	if errors.Is(err, clients.ErrNotFound) {
		return saleError(KindGoodNotFound, notFoundMsg, err)
	}
	return saleError(KindInternal, "Failed to reach inventory service", err)
}

func (s *SaleService) classifyCustomerErr(err error, notFoundMsg string) *SaleError {
	if errors.Is(err, breaker.ErrOpen) {
		return dependencyUnavailable("customers", err)
	}
	if errors.Is(err, clients.ErrNotFound) {
		return saleError(KindCustomerNotFound, notFoundMsg, err)
	}
	return saleError(KindInternal, "Failed to reach customer service", err)
}

// classifyDebitErr maps debit failures. No remote state has changed when the
// debit fails, so these are clean aborts; the downstream's own rejection
// (insufficient funds re-checked under the row lock) is taken as
// authoritative.
func (s *SaleService) classifyDebitErr(err error) *SaleError {
	if errors.Is(err, breaker.ErrOpen) {
		return dependencyUnavailable("customers", err)
	}
	if errors.Is(err, clients.ErrNotFound) {
		return saleError(KindCustomerNotFound, "Customer not found", err)
	}
	var statusErr *clients.StatusError
	if errors.As(err, &statusErr) && statusErr.StatusCode == 400 {
		return saleError(KindInsufficientFunds, "Insufficient funds", err)
	}
	return saleError(KindInternal, "Failed to deduct money from wallet", err)
}
