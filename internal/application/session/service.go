package session

import (
	"context"
	"fmt"
	"time"

	"github.com/hypideas/identity-api/internal/domain"
	"github.com/hypideas/identity-api/internal/pkg/id"
	"github.com/hypideas/identity-api/internal/pkg/password"
	pkgtoken "github.com/hypideas/identity-api/internal/pkg/token"
)

type LoginRequest struct {
	Email      string `json:"email" validate:"required"`
	Password   string `json:"password" validate:"required"`
	RememberMe bool   `json:"remember_me"`
}

type LoginResult struct {
	AccessToken  string
	RefreshToken string
	Session      *domain.Session
}

type Service interface {
	Login(ctx context.Context, req LoginRequest) (*LoginResult, error)
	Logout(ctx context.Context, sessionID string) error
	GetCurrent(ctx context.Context, sessionID string) (*domain.Session, error)
	Refresh(ctx context.Context, refreshToken string) (accessToken, newRefreshToken string, err error)
}

type sessionStore interface {
	Put(ctx context.Context, s *domain.Session) error
	Get(ctx context.Context, sessionID string) (*domain.Session, error)
	Update(ctx context.Context, sessionID string, updates map[string]interface{}) error
	GetByRefreshToken(ctx context.Context, token string) (*domain.Session, error)
	RotateRefreshToken(ctx context.Context, sessionID, newToken string, newExpiry int64) error
}

type userStore interface {
	Get(ctx context.Context, userID string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
}

type jwtSigner interface {
	Sign(userID, role, sessionID string) (string, error)
}

type service struct {
	sessionRepo      sessionStore
	userRepo         userStore
	jwtProvider      jwtSigner
	hasher           password.Hasher
	sessionDur       time.Duration
	refreshDur       time.Duration
	rememberMeRefDur time.Duration
}

type ServiceDeps struct {
	SessionRepo      sessionStore
	UserRepo         userStore
	JWTProvider      jwtSigner
	Hasher           password.Hasher
	SessionDur       time.Duration
	RefreshDur       time.Duration
	RememberMeRefDur time.Duration
}

func NewService(deps ServiceDeps) Service {
	return &service{
		sessionRepo:      deps.SessionRepo,
		userRepo:         deps.UserRepo,
		jwtProvider:      deps.JWTProvider,
		hasher:           deps.Hasher,
		sessionDur:       deps.SessionDur,
		refreshDur:       deps.RefreshDur,
		rememberMeRefDur: deps.RememberMeRefDur,
	}
}

func (s *service) Login(ctx context.Context, req LoginRequest) (*LoginResult, error) {
	// The login identifier field is named email but also accepts a handle,
	// matching what the signup form hands out.
	u, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		u, err = s.userRepo.GetByUsername(ctx, req.Email)
		if err != nil {
			return nil, fmt.Errorf("invalid credentials: %w", domain.ErrInvalidCredentials)
		}
	}
	if !u.Enable {
		return nil, fmt.Errorf("account disabled: %w", domain.ErrUnauthorized)
	}
	ok, err := s.hasher.Verify(req.Password, u.PasswordHash)
	if err != nil || !ok {
		return nil, fmt.Errorf("invalid credentials: %w", domain.ErrInvalidCredentials)
	}

	refreshToken, err := pkgtoken.NewRefreshToken()
	if err != nil {
		return nil, err
	}
	refreshDur := s.refreshDur
	if req.RememberMe {
		refreshDur = s.rememberMeRefDur
	}
	now := time.Now().UTC()
	sess := &domain.Session{
		SessionID:        id.New(),
		UserID:           u.UserID,
		Enable:           true,
		ExpiresAt:        now.Add(s.sessionDur),
		RefreshToken:     refreshToken,
		RefreshExpiresAt: now.Add(refreshDur).Unix(),
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := s.sessionRepo.Put(ctx, sess); err != nil {
		return nil, err
	}
	accessToken, err := s.jwtProvider.Sign(u.UserID, u.Role, sess.SessionID)
	if err != nil {
		return nil, err
	}
	sess.User = u
	return &LoginResult{AccessToken: accessToken, RefreshToken: refreshToken, Session: sess}, nil
}

func (s *service) Logout(ctx context.Context, sessionID string) error {
	return s.sessionRepo.Update(ctx, sessionID, map[string]interface{}{"enable": false})
}

func (s *service) GetCurrent(ctx context.Context, sessionID string) (*domain.Session, error) {
	sess, err := s.sessionRepo.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !sess.Enable {
		return nil, fmt.Errorf("session expired: %w", domain.ErrUnauthorized)
	}
	if time.Now().After(sess.ExpiresAt) {
		return nil, fmt.Errorf("session expired: %w", domain.ErrUnauthorized)
	}
	u, err := s.userRepo.Get(ctx, sess.UserID)
	if err != nil {
		return nil, err
	}
	sess.User = u
	return sess, nil
}

func (s *service) Refresh(ctx context.Context, refreshToken string) (string, string, error) {
	sess, err := s.sessionRepo.GetByRefreshToken(ctx, refreshToken)
	if err != nil {
		return "", "", fmt.Errorf("invalid or expired refresh token: %w", domain.ErrUnauthorized)
	}
	if sess.RefreshExpiresAt < time.Now().Unix() {
		return "", "", fmt.Errorf("refresh token expired: %w", domain.ErrUnauthorized)
	}
	newToken, err := pkgtoken.NewRefreshToken()
	if err != nil {
		return "", "", err
	}
	newExpiry := time.Now().Add(s.refreshDur).Unix()
	if err := s.sessionRepo.RotateRefreshToken(ctx, sess.SessionID, newToken, newExpiry); err != nil {
		return "", "", err
	}
	u, err := s.userRepo.Get(ctx, sess.UserID)
	if err != nil {
		return "", "", err
	}
	accessToken, err := s.jwtProvider.Sign(u.UserID, u.Role, sess.SessionID)
	if err != nil {
		return "", "", err
	}
	return accessToken, newToken, nil
}
