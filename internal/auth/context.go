package auth

import (
	"context"

	"github.com/gin-gonic/gin"
)

// Principal is the authenticated caller. Only UserID takes part in ownership checks.
type Principal struct {
	UserID    int64
	SessionID string
	Token     string
}

type principalKey struct{}

const ginPrincipalKey = "principal"

func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

func PrincipalFrom(ctx context.Context) (*Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(*Principal)
	return p, ok && p != nil
}

// SetPrincipal stores p on both the gin context and the request context.
func SetPrincipal(c *gin.Context, p *Principal) {
	c.Set(ginPrincipalKey, p)
	c.Request = c.Request.WithContext(WithPrincipal(c.Request.Context(), p))
}

// CurrentPrincipal returns the caller of the request, or nil when anonymous.
func CurrentPrincipal(c *gin.Context) *Principal {
	if val, ok := c.Get(ginPrincipalKey); ok {
		if p, ok := val.(*Principal); ok {
			return p
		}
	}
	if p, ok := PrincipalFrom(c.Request.Context()); ok {
		return p
	}
	return nil
}
