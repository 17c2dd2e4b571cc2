package services

import "net/http"

// SaleErrorKind classifies how a purchase attempt failed. The kinds separate
// "nothing happened" (verification failures), "something partially happened"
// (a remote mutation committed but a later step failed) and "everything
// happened but the local record is missing".
type SaleErrorKind int

const (
	KindInput SaleErrorKind = iota
	KindGoodNotFound
	KindCustomerNotFound
	KindOutOfStock
	KindInsufficientFunds
	KindDependencyUnavailable
	KindPartialFailure
	KindRecordingFailed
	KindInternal
)

func (k SaleErrorKind) String() string {
	switch k {
	case KindInput:
		return "INVALID_INPUT"
	case KindGoodNotFound:
		return "GOOD_NOT_FOUND"
	case KindCustomerNotFound:
		return "CUSTOMER_NOT_FOUND"
	case KindOutOfStock:
		return "OUT_OF_STOCK"
	case KindInsufficientFunds:
		return "INSUFFICIENT_FUNDS"
	case KindDependencyUnavailable:
		return "DEPENDENCY_UNAVAILABLE"
	case KindPartialFailure:
		return "PARTIAL_FAILURE"
	case KindRecordingFailed:
		return "PURCHASE_RECORDING_FAILED"
	default:
		return "INTERNAL"
	}
}

// SaleError is the orchestrator's structured failure report.
type SaleError struct {
	Kind SaleErrorKind
	// Dependency names the downstream service for DependencyUnavailable.
	Dependency string
	Message    string
	Err        error
}

func (e *SaleError) Error() string {
	return e.Message
}

func (e *SaleError) Unwrap() error {
	return e.Err
}

// StatusCode maps the failure kind to the HTTP status the caller sees:
// user-fixable and business-rule failures are 400/404, open breakers are 503
// with a retry-after-delay hint, and operator-visible failures are 500.
func (e *SaleError) StatusCode() int {
	switch e.Kind {
	case KindInput, KindOutOfStock, KindInsufficientFunds:
		return http.StatusBadRequest
	case KindGoodNotFound, KindCustomerNotFound:
		return http.StatusNotFound
	case KindDependencyUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func saleError(kind SaleErrorKind, message string, err error) *SaleError {
	return &SaleError{Kind: kind, Message: message, Err: err}
}

func dependencyUnavailable(dependency string, err error) *SaleError {
	return &SaleError{
		Kind:       KindDependencyUnavailable,
		Dependency: dependency,
		Message:    "The " + dependency + " service is temporarily unavailable",
		Err:        err,
	}
}
