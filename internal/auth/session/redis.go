// Package session keeps login sessions in Redis and hands clients a signed token
// naming the session.
package session

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/fekuna/marketplace-service/internal/auth"
	"github.com/fekuna/marketplace-service/internal/pkg/apperror"
)

const (
	sessionKeyPrefix = "session:"
	flashKeyPrefix   = "flash:"
)

type Config struct {
	SecretKey string
	TTL       time.Duration
}

type claims struct {
	jwt.RegisteredClaims
}

type RedisStore struct {
	client *redis.Client
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewRedisStore(client *redis.Client, cfg Config) *RedisStore {
	return &RedisStore{
		client: client,
		secret: []byte(cfg.SecretKey),
		ttl:    cfg.TTL,
		now:    time.Now,
	}
}

func (s *RedisStore) Create(ctx context.Context, userID int64) (string, error) {
	sid := uuid.NewString()
	if err := s.client.Set(ctx, sessionKeyPrefix+sid, userID, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("store session: %w", err)
	}

	now := s.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        sid,
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	})
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return signed, nil
}

func (s *RedisStore) parse(token string) (*claims, error) {
	c := &claims{}
	_, err := jwt.ParseWithClaims(token, c, func(*jwt.Token) (any, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, apperror.ErrUnauthenticated
	}
	if c.ID == "" {
		return nil, apperror.ErrUnauthenticated
	}
	return c, nil
}

// Resolve checks the token signature and then that the session it names is still live.
func (s *RedisStore) Resolve(ctx context.Context, token string) (*auth.Principal, error) {
	c, err := s.parse(token)
	if err != nil {
		return nil, err
	}

	stored, err := s.client.Get(ctx, sessionKeyPrefix+c.ID).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, apperror.ErrUnauthenticated
		}
		return nil, fmt.Errorf("load session: %w", err)
	}
	if strconv.FormatInt(stored, 10) != c.Subject {
		return nil, apperror.ErrUnauthenticated
	}

	return &auth.Principal{UserID: stored, SessionID: c.ID, Token: token}, nil
}

func (s *RedisStore) Revoke(ctx context.Context, token string) error {
	c, err := s.parse(token)
	if err != nil {
		// Nothing to revoke for a token we never issued.
		return nil
	}
	return s.client.Del(ctx, sessionKeyPrefix+c.ID, flashKeyPrefix+c.ID).Err()
}

func (s *RedisStore) PushFlash(ctx context.Context, sessionID, messageID string) error {
	key := flashKeyPrefix + sessionID
	pipe := s.client.TxPipeline()
	pipe.RPush(ctx, key, messageID)
	pipe.Expire(ctx, key, s.ttl)
	_, err := pipe.Exec(ctx)
	return err
}

// DrainFlash returns the pending messages in push order and clears them.
func (s *RedisStore) DrainFlash(ctx context.Context, sessionID string) ([]string, error) {
	key := flashKeyPrefix + sessionID
	pipe := s.client.TxPipeline()
	lr := pipe.LRange(ctx, key, 0, -1)
	pipe.Del(ctx, key)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, err
	}
	return lr.Val(), nil
}
