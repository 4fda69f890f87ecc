package usecase

import (
	"context"
	"fmt"
	"testing"

	"github.com/fekuna/marketplace-service/internal/auth"
	"github.com/fekuna/marketplace-service/internal/auth/dto"
	"github.com/fekuna/marketplace-service/internal/auth/repository"
	"github.com/fekuna/marketplace-service/internal/model"
	"github.com/fekuna/marketplace-service/internal/pkg/apperror"
	"github.com/fekuna/marketplace-service/internal/pkg/database/sqlitetest"
	"github.com/fekuna/marketplace-service/internal/pkg/logger"
	"github.com/fekuna/marketplace-service/internal/pkg/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type memorySessions struct {
	tokens map[string]int64
	seq    int
}

func newMemorySessions() *memorySessions {
	return &memorySessions{tokens: map[string]int64{}}
}

func (m *memorySessions) Create(_ context.Context, userID int64) (string, error) {
	m.seq++
	token := fmt.Sprintf("token-%d", m.seq)
	m.tokens[token] = userID
	return token, nil
}

func (m *memorySessions) Resolve(_ context.Context, token string) (*auth.Principal, error) {
	id, ok := m.tokens[token]
	if !ok {
		return nil, apperror.ErrUnauthenticated
	}
	return &auth.Principal{UserID: id, SessionID: token, Token: token}, nil
}

func (m *memorySessions) Revoke(_ context.Context, token string) error {
	delete(m.tokens, token)
	return nil
}

func (m *memorySessions) PushFlash(context.Context, string, string) error { return nil }

func (m *memorySessions) DrainFlash(context.Context, string) ([]string, error) { return nil, nil }

func newUseCase(t *testing.T) (auth.UseCase, *memorySessions) {
	t.Helper()
	db := sqlitetest.New(t)
	sessions := newMemorySessions()
	uc := NewAuthUseCase(repository.NewPGRepository(db), sessions, validation.New(), bcrypt.MinCost, logger.NewNop())
	return uc, sessions
}

func validRegistration(username string) *dto.RegisterInput {
	return &dto.RegisterInput{
		Username:        username,
		Email:           username + "@Example.com",
		Password:        "s3cret-pass",
		PasswordConfirm: "s3cret-pass",
		ShopName:        "  Boutique " + username,
		Description:     "Handmade goods",
		WhatsAppNumber:  "+50937001122",
	}
}

func TestRegister_CreatesUserAndFreeVendor(t *testing.T) {
	uc, _ := newUseCase(t)

	user, v, err := uc.Register(context.Background(), validRegistration("alice"))
	require.NoError(t, err)

	assert.Equal(t, "alice@example.com", user.Email)
	assert.NotEqual(t, "s3cret-pass", user.PasswordHash)
	assert.Equal(t, user.ID, v.UserID)
	assert.Equal(t, "Boutique alice", v.Name)
	assert.Equal(t, model.PlanFree, v.SubscriptionPlan)
	assert.False(t, v.IsVerified)
	assert.Nil(t, v.ImageURL)
}

func TestRegister_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(in *dto.RegisterInput)
		field  string
		msg    string
	}{
		{"password mismatch", func(in *dto.RegisterInput) { in.PasswordConfirm = "other-pass" }, "password2", validation.MsgPasswordMatch},
		{"short password", func(in *dto.RegisterInput) { in.Password, in.PasswordConfirm = "short", "short" }, "password1", validation.MsgPasswordLength},
		{"bad email", func(in *dto.RegisterInput) { in.Email = "nope" }, "email", validation.MsgEmail},
		{"bad whatsapp", func(in *dto.RegisterInput) { in.WhatsAppNumber = "37001122" }, "whatsapp_number", validation.MsgWhatsApp},
		{"short shop name", func(in *dto.RegisterInput) { in.ShopName = " ab " }, "name", validation.MsgShopName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, _ := newUseCase(t)
			in := validRegistration("bob")
			tt.mutate(in)

			_, _, err := uc.Register(context.Background(), in)
			ve, ok := apperror.AsValidation(err)
			require.True(t, ok, "expected validation error, got %v", err)
			assert.Equal(t, tt.msg, ve.Fields[tt.field])
		})
	}
}

func TestRegister_DuplicateUsernameAndEmail(t *testing.T) {
	uc, _ := newUseCase(t)
	ctx := context.Background()

	_, _, err := uc.Register(ctx, validRegistration("carol"))
	require.NoError(t, err)

	again := validRegistration("carol")
	_, _, err = uc.Register(ctx, again)
	ve, ok := apperror.AsValidation(err)
	require.True(t, ok)
	assert.Equal(t, validation.MsgUsernameTaken, ve.Fields["username"])

	sameEmail := validRegistration("carol2")
	sameEmail.Email = "CAROL@example.com"
	_, _, err = uc.Register(ctx, sameEmail)
	ve, ok = apperror.AsValidation(err)
	require.True(t, ok)
	assert.Equal(t, validation.MsgEmailTaken, ve.Fields["email"])
}

func TestLoginAndLogout(t *testing.T) {
	uc, sessions := newUseCase(t)
	ctx := context.Background()

	user, _, err := uc.Register(ctx, validRegistration("dave"))
	require.NoError(t, err)

	token, got, err := uc.Login(ctx, &dto.LoginInput{Username: "dave", Password: "s3cret-pass"})
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
	assert.Equal(t, user.ID, sessions.tokens[token])

	require.NoError(t, uc.Logout(ctx, token))
	assert.NotContains(t, sessions.tokens, token)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	uc, sessions := newUseCase(t)
	ctx := context.Background()

	_, _, err := uc.Register(ctx, validRegistration("erin"))
	require.NoError(t, err)

	_, _, err = uc.Login(ctx, &dto.LoginInput{Username: "erin", Password: "wrong-pass"})
	assert.ErrorIs(t, err, apperror.ErrInvalidCredentials)

	_, _, err = uc.Login(ctx, &dto.LoginInput{Username: "nobody", Password: "s3cret-pass"})
	assert.ErrorIs(t, err, apperror.ErrInvalidCredentials)

	assert.Empty(t, sessions.tokens)
}
