package auth

import "time"

// Claims representa la información extraída del token.
// El core solo usa UserID.
type Claims struct {
	UserID    string
	Email     string
	ExpiresAt time.Time
}
