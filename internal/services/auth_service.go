package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"stockconsole/internal/caching"
	"stockconsole/internal/models"
	"stockconsole/internal/upstream"
)

const (
	// DefaultSessionTTL applies when the upstream token carries no expiry.
	DefaultSessionTTL = 8 * time.Hour

	loginAttemptLimit  = 10
	loginAttemptWindow = time.Minute
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrSessionNotFound    = errors.New("session not found or expired")
	ErrTooManyAttempts    = errors.New("too many login attempts")
)

// UpstreamClient is the subset of the inventory API the services rely on.
type UpstreamClient interface {
	Login(ctx context.Context, email, password string) (string, models.User, error)
	List(ctx context.Context, sess models.Session, res upstream.Resource) ([]byte, error)
	AdjustStock(ctx context.Context, sess models.Session, adj models.StockAdjustment) error
}

// AuthService manages gateway sessions backed by upstream tokens.
type AuthService interface {
	Login(ctx context.Context, email, password string) (*models.Session, error)
	GetSession(ctx context.Context, sessionID string) (*models.Session, error)
	Logout(ctx context.Context, sessionID string) error
}

type authService struct {
	client   UpstreamClient
	cacheSvc caching.CacheService
	verify   jwt.Keyfunc
	now      func() time.Time
}

// NewAuthService creates the session service. A nil verify parses upstream
// tokens without checking their signature and only reads the expiry.
func NewAuthService(client UpstreamClient, cacheSvc caching.CacheService, verify jwt.Keyfunc) AuthService {
	return &authService{
		client:   client,
		cacheSvc: cacheSvc,
		verify:   verify,
		now:      time.Now,
	}
}

func (s *authService) Login(ctx context.Context, email, password string) (*models.Session, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	limited, err := s.cacheSvc.IsRateLimited(ctx, "login:"+strings.ToLower(email), loginAttemptLimit, loginAttemptWindow)
	if err != nil {
		log.Printf("WARN: login rate limit check failed: %v", err)
	} else if limited {
		return nil, ErrTooManyAttempts
	}

	token, user, err := s.client.Login(ctx, email, password)
	if err != nil {
		if errors.Is(err, upstream.ErrUnauthorized) {
			return nil, fmt.Errorf("%w: %v", ErrInvalidCredentials, err)
		}
		return nil, fmt.Errorf("failed to log in upstream: %w", err)
	}

	expiresAt, err := s.tokenExpiry(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCredentials, err)
	}
	ttl := expiresAt.Sub(s.now())
	if ttl <= 0 {
		return nil, fmt.Errorf("%w: upstream token already expired", ErrInvalidCredentials)
	}

	sess := &models.Session{
		ID:        uuid.NewString(),
		Token:     token,
		User:      user,
		ExpiresAt: expiresAt,
	}
	if err := s.cacheSvc.SetSession(ctx, sess, ttl); err != nil {
		return nil, fmt.Errorf("failed to store session: %w", err)
	}

	log.Printf("DEBUG: session %s opened for %s (%s)", sess.ID, user.Email, user.Role)
	return sess, nil
}

// tokenExpiry reads the exp claim of a JWT. Opaque tokens get the default
// lifetime.
func (s *authService) tokenExpiry(token string) (time.Time, error) {
	claims := jwt.MapClaims{}
	if s.verify != nil {
		if _, err := jwt.ParseWithClaims(token, claims, s.verify, jwt.WithTimeFunc(s.now)); err != nil {
			return time.Time{}, fmt.Errorf("token verification failed: %w", err)
		}
	} else if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return s.now().Add(DefaultSessionTTL), nil
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return s.now().Add(DefaultSessionTTL), nil
	}
	return exp.Time, nil
}

func (s *authService) GetSession(ctx context.Context, sessionID string) (*models.Session, error) {
	if sessionID == "" {
		return nil, ErrSessionNotFound
	}
	sess, err := s.cacheSvc.GetSession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	if sess == nil || !sess.ExpiresAt.After(s.now()) {
		return nil, ErrSessionNotFound
	}
	return sess, nil
}

func (s *authService) Logout(ctx context.Context, sessionID string) error {
	if err := s.cacheSvc.DeleteSession(ctx, sessionID); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}
