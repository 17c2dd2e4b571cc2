package auth

import "github.com/golang-jwt/jwt/v4"

// Policy decides whether a principal may perform an action. Services receive
// a Policy at construction time instead of baking in admin lists.
type Policy interface {
	Allow(principal string, claims jwt.MapClaims, action string) bool
}

// RolePolicy grants actions to principals carrying one of the allowed roles.
type RolePolicy struct {
	// AllowedRoles maps an action to the roles permitted to perform it.
	// Actions absent from the map are allowed for everyone.
	AllowedRoles map[string][]string
}

// AdminOnly returns a policy that restricts every listed action to the
// "admin" role.
func AdminOnly(actions ...string) *RolePolicy {
	allowed := make(map[string][]string, len(actions))
	for _, action := range actions {
		allowed[action] = []string{"admin"}
	}
	return &RolePolicy{AllowedRoles: allowed}
}

func (p *RolePolicy) Allow(principal string, claims jwt.MapClaims, action string) bool {
	roles, restricted := p.AllowedRoles[action]
	if !restricted {
		return true
	}
	role := Role(claims)
	for _, allowed := range roles {
		if role == allowed {
			return true
		}
	}
	return false
}
