package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fekuna/marketplace-service/internal/auth"
	"github.com/fekuna/marketplace-service/internal/auth/dto"
	"github.com/fekuna/marketplace-service/internal/model"
	"github.com/fekuna/marketplace-service/internal/pkg/apperror"
	"github.com/fekuna/marketplace-service/internal/pkg/logger"
	"github.com/fekuna/marketplace-service/internal/pkg/validation"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type authUseCase struct {
	repo       auth.Repository
	sessions   auth.SessionStore
	validator  *validation.Validator
	bcryptCost int
	dummyHash  []byte
	now        func() time.Time
	logger     logger.ZapLogger
}

// NewAuthUseCase builds the identity usecase. A bcryptCost of 0 selects bcrypt.DefaultCost.
func NewAuthUseCase(
	repo auth.Repository,
	sessions auth.SessionStore,
	v *validation.Validator,
	bcryptCost int,
	log logger.ZapLogger,
) auth.UseCase {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	// Compared against when the username is unknown so both paths cost one bcrypt round.
	dummy, _ := bcrypt.GenerateFromPassword([]byte("marketplace-dummy-password"), bcryptCost)

	return &authUseCase{
		repo:       repo,
		sessions:   sessions,
		validator:  v,
		bcryptCost: bcryptCost,
		dummyHash:  dummy,
		now:        time.Now,
		logger:     log,
	}
}

func (uc *authUseCase) Register(ctx context.Context, input *dto.RegisterInput) (*model.User, *model.Vendor, error) {
	input.Username = strings.TrimSpace(input.Username)
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	input.ShopName = strings.TrimSpace(input.ShopName)

	verr := &apperror.ValidationError{}
	if err := uc.validator.Struct(input); err != nil {
		ve, ok := apperror.AsValidation(err)
		if !ok {
			return nil, nil, err
		}
		verr = ve
	}

	if _, reported := verr.Fields["username"]; input.Username != "" && !reported {
		taken, err := uc.repo.UsernameExists(ctx, input.Username)
		if err != nil {
			return nil, nil, fmt.Errorf("check username: %w", err)
		}
		if taken {
			verr.Add("username", validation.MsgUsernameTaken)
		}
	}
	if _, reported := verr.Fields["email"]; input.Email != "" && !reported {
		taken, err := uc.repo.EmailExists(ctx, input.Email)
		if err != nil {
			return nil, nil, fmt.Errorf("check email: %w", err)
		}
		if taken {
			verr.Add("email", validation.MsgEmailTaken)
		}
	}
	if verr.HasErrors() {
		return nil, nil, verr
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), uc.bcryptCost)
	if err != nil {
		return nil, nil, fmt.Errorf("hash password: %w", err)
	}

	now := uc.now().UTC()
	user := &model.User{
		BaseModel:    model.BaseModel{CreatedAt: now},
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: string(hash),
	}
	v := &model.Vendor{
		BaseModel:        model.BaseModel{CreatedAt: now},
		Name:             input.ShopName,
		Description:      input.Description,
		WhatsAppNumber:   input.WhatsAppNumber,
		SubscriptionPlan: model.PlanFree,
	}
	if input.ImageURL != "" {
		v.ImageURL = &input.ImageURL
	}

	if err := uc.repo.CreateUserWithVendor(ctx, user, v); err != nil {
		return nil, nil, fmt.Errorf("create user: %w", err)
	}

	uc.logger.Info("user registered", zap.Int64("user_id", user.ID), zap.Int64("vendor_id", v.ID))
	return user, v, nil
}

func (uc *authUseCase) Authenticate(ctx context.Context, input *dto.LoginInput) (*model.User, error) {
	input.Username = strings.TrimSpace(input.Username)
	if err := uc.validator.Struct(input); err != nil {
		return nil, err
	}

	user, err := uc.repo.FindByUsername(ctx, input.Username)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		_ = bcrypt.CompareHashAndPassword(uc.dummyHash, []byte(input.Password))
		return nil, apperror.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		uc.logger.Debug("password mismatch", zap.Int64("user_id", user.ID))
		return nil, apperror.ErrInvalidCredentials
	}
	return user, nil
}

func (uc *authUseCase) Login(ctx context.Context, input *dto.LoginInput) (string, *model.User, error) {
	user, err := uc.Authenticate(ctx, input)
	if err != nil {
		return "", nil, err
	}
	token, err := uc.StartSession(ctx, user.ID)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

func (uc *authUseCase) StartSession(ctx context.Context, userID int64) (string, error) {
	token, err := uc.sessions.Create(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("create session: %w", err)
	}
	uc.logger.Info("session started", zap.Int64("user_id", userID))
	return token, nil
}

func (uc *authUseCase) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := uc.sessions.Revoke(ctx, token); err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}
	return nil
}
