package auth

import (
	"context"

	"github.com/fekuna/marketplace-service/internal/auth/dto"
	"github.com/fekuna/marketplace-service/internal/model"
)

type UseCase interface {
	Register(ctx context.Context, input *dto.RegisterInput) (*model.User, *model.Vendor, error)
	Authenticate(ctx context.Context, input *dto.LoginInput) (*model.User, error)
	// Login authenticates and opens a session, returning its token.
	Login(ctx context.Context, input *dto.LoginInput) (string, *model.User, error)
	StartSession(ctx context.Context, userID int64) (string, error)
	Logout(ctx context.Context, token string) error
}

// SessionStore issues and resolves session tokens and keeps per-session flash messages.
type SessionStore interface {
	Create(ctx context.Context, userID int64) (string, error)
	// Resolve returns apperror.ErrUnauthenticated for unknown, expired or revoked tokens.
	Resolve(ctx context.Context, token string) (*Principal, error)
	Revoke(ctx context.Context, token string) error
	PushFlash(ctx context.Context, sessionID, messageID string) error
	DrainFlash(ctx context.Context, sessionID string) ([]string, error)
}
