package auth

import (
	"bantay-usok/lungsod/internal/constants"

	"github.com/golang-jwt/jwt/v5"
)

// UserClaims is what handlers and middleware see of an authenticated caller.
type UserClaims interface {
	UserID() string
	Email() string
	Roles() []string
	HasRole(role constants.UserRole) bool
	Source() string
}

// TokenClaims is the JWT payload issued to personnel accounts.
type TokenClaims struct {
	Email     string   `json:"email"`
	RoleNames []string `json:"roles"`
	jwt.RegisteredClaims
}

// JWTClaims adapts a parsed token to the UserClaims interface.
type JWTClaims struct {
	Token *TokenClaims
}

func (c *JWTClaims) UserID() string  { return c.Token.Subject }
func (c *JWTClaims) Email() string   { return c.Token.Email }
func (c *JWTClaims) Roles() []string { return c.Token.RoleNames }
func (c *JWTClaims) Source() string  { return "JWT" }

func (c *JWTClaims) HasRole(role constants.UserRole) bool {
	for _, name := range c.Token.RoleNames {
		if name == role.String() {
			return true
		}
	}
	return false
}
