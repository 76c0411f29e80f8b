package auth

import (
	"context"
)

type contextKey string

var userClaimsKey contextKey = "user_claims"

func SetUserClaims(ctx context.Context, claims UserClaims) context.Context {
	return context.WithValue(ctx, userClaimsKey, claims)
}

func GetUserClaims(ctx context.Context) UserClaims {
	val := ctx.Value(userClaimsKey)
	if claims, ok := val.(UserClaims); ok {
		return claims
	}
	return nil
}

// CallerID returns the authenticated user id, or nil for anonymous calls.
// Handlers pass it through as the changed_by / created_by audit column.
func CallerID(ctx context.Context) *string {
	claims := GetUserClaims(ctx)
	if claims == nil {
		return nil
	}
	id := claims.UserID()
	if id == "" {
		return nil
	}
	return &id
}
