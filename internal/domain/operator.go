package domain

import "time"

// ConsoleScope separates the per-shop merchant console from the
// platform operator console. Tokens carry the scope; handlers gate on it.
type ConsoleScope string

const (
	ScopeShop     ConsoleScope = "SHOP"
	ScopePlatform ConsoleScope = "PLATFORM"
)

// Operator is a console user. Identity issuance is external; this
// service only stores the profile and password hash needed for the
// security settings flow.
type Operator struct {
	ID           string
	Name         string
	Email        string
	Scope        ConsoleScope
	ShopID       *string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
