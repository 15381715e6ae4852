package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/hypideas/identity-api/internal/domain"
	"github.com/hypideas/identity-api/internal/pkg/id"
	"github.com/hypideas/identity-api/internal/pkg/password"
	pkgtoken "github.com/hypideas/identity-api/internal/pkg/token"
	"github.com/hypideas/identity-api/internal/pkg/username"
	"github.com/hypideas/identity-api/internal/pkg/validate"
)

// DynamoDB attribute names used in partial update maps.
const (
	fieldEmail         = "email"
	fieldPhone         = "phone"
	fieldDisplayName   = "display_name"
	fieldInterests     = "interests"
	fieldInstitution   = "institution"
	fieldDegree        = "degree"
	fieldAcademicEmail = "academic_email"
	fieldRole          = "role"
	fieldEnable        = "enable"
	fieldPasswordHash  = "password_hash"
)

// usernameAttempts bounds the collision-retry loop during registration.
// Synthesis is random, so a handful of retries is enough in practice.
const usernameAttempts = 5

type Service interface {
	Register(ctx context.Context, req domain.SignupRequest) (*domain.User, error)
	RegisterWithSession(ctx context.Context, req domain.SignupRequest) (*domain.Session, string, string, error)
	List(ctx context.Context, limit int, cursor string) ([]domain.User, string, error)
	Get(ctx context.Context, userID string) (*domain.User, error)
	Update(ctx context.Context, userID string, req domain.UpdateUserRequest) (*domain.User, error)
	Delete(ctx context.Context, userID string) error
	ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error
}

type userStore interface {
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Put(ctx context.Context, u *domain.User) error
	ScanPage(ctx context.Context, limit int32, cursor string) ([]domain.User, string, error)
	Get(ctx context.Context, userID string) (*domain.User, error)
	Update(ctx context.Context, userID string, updates map[string]interface{}) error
	SoftDelete(ctx context.Context, userID string) error
}

type sessionStore interface {
	Put(ctx context.Context, s *domain.Session) error
	SoftDeleteByUser(ctx context.Context, userID string) error
}

type notificationStore interface {
	Put(ctx context.Context, n *domain.Notification) error
}

type jwtSigner interface {
	Sign(userID, role, sessionID string) (string, error)
}

type service struct {
	repo             userStore
	sessionRepo      sessionStore
	notificationRepo notificationStore
	jwtProvider      jwtSigner
	hasher           password.Hasher
	synth            *username.Synthesizer
	sessionDur       time.Duration
	refreshTokenDur  time.Duration
}

type ServiceDeps struct {
	UserRepo         userStore
	SessionRepo      sessionStore
	NotificationRepo notificationStore
	JWTProvider      jwtSigner
	Hasher           password.Hasher
	Synthesizer      *username.Synthesizer
	SessionDur       time.Duration
	RefreshTokenDur  time.Duration
}

func NewService(deps ServiceDeps) Service {
	return &service{
		repo:             deps.UserRepo,
		sessionRepo:      deps.SessionRepo,
		notificationRepo: deps.NotificationRepo,
		jwtProvider:      deps.JWTProvider,
		hasher:           deps.Hasher,
		synth:            deps.Synthesizer,
		sessionDur:       deps.SessionDur,
		refreshTokenDur:  deps.RefreshTokenDur,
	}
}

func (s *service) Register(ctx context.Context, req domain.SignupRequest) (*domain.User, error) {
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%s: %w", err, domain.ErrBadRequest)
	}
	if req.Phone != nil && !validate.IsValidPhone(*req.Phone) {
		return nil, fmt.Errorf("invalid phone number: %w", domain.ErrBadRequest)
	}
	if _, err := s.repo.GetByEmail(ctx, req.Email); err == nil {
		return nil, fmt.Errorf("email already registered: %w", domain.ErrConflict)
	}
	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, err
	}
	handle, err := s.allocateUsername(ctx, req.Interests, req.DisplayName)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	u := &domain.User{
		UserID:        id.New(),
		Email:         req.Email,
		Username:      handle,
		DisplayName:   req.DisplayName,
		Phone:         req.Phone,
		PasswordHash:  hash,
		Role:          domain.RoleUser,
		IsVerified:    false,
		AcademicEmail: validate.IsAcademicEmail(req.Email),
		Interests:     req.Interests,
		Institution:   req.Institution,
		Degree:        req.Degree,
		Enable:        true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.repo.Put(ctx, u); err != nil {
		return nil, err
	}
	s.welcome(ctx, u)
	return u, nil
}

func (s *service) RegisterWithSession(ctx context.Context, req domain.SignupRequest) (*domain.Session, string, string, error) {
	u, err := s.Register(ctx, req)
	if err != nil {
		return nil, "", "", err
	}
	refreshToken, err := pkgtoken.NewRefreshToken()
	if err != nil {
		return nil, "", "", err
	}
	now := time.Now().UTC()
	sess := &domain.Session{
		SessionID:        id.New(),
		UserID:           u.UserID,
		Enable:           true,
		ExpiresAt:        now.Add(s.sessionDur),
		RefreshToken:     refreshToken,
		RefreshExpiresAt: now.Add(s.refreshTokenDur).Unix(),
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := s.sessionRepo.Put(ctx, sess); err != nil {
		return nil, "", "", err
	}
	accessToken, err := s.jwtProvider.Sign(u.UserID, u.Role, sess.SessionID)
	if err != nil {
		return nil, "", "", err
	}
	sess.User = u
	return sess, accessToken, refreshToken, nil
}

func (s *service) List(ctx context.Context, limit int, cursor string) ([]domain.User, string, error) {
	if limit < 1 {
		limit = 50
	}
	return s.repo.ScanPage(ctx, int32(limit), cursor)
}

func (s *service) Get(ctx context.Context, userID string) (*domain.User, error) {
	return s.repo.Get(ctx, userID)
}

func (s *service) Update(ctx context.Context, userID string, req domain.UpdateUserRequest) (*domain.User, error) {
	updates := map[string]interface{}{}
	if req.Email != nil {
		if !validate.IsValidEmail(*req.Email) {
			return nil, fmt.Errorf("invalid email: %w", domain.ErrBadRequest)
		}
		if existing, err := s.repo.GetByEmail(ctx, *req.Email); err == nil && existing.UserID != userID {
			return nil, fmt.Errorf("email already registered: %w", domain.ErrConflict)
		}
		updates[fieldEmail] = *req.Email
		updates[fieldAcademicEmail] = validate.IsAcademicEmail(*req.Email)
	}
	if req.Phone != nil {
		if !validate.IsValidPhone(*req.Phone) {
			return nil, fmt.Errorf("invalid phone number: %w", domain.ErrBadRequest)
		}
		updates[fieldPhone] = *req.Phone
	}
	if req.DisplayName != nil {
		updates[fieldDisplayName] = *req.DisplayName
	}
	if req.Interests != nil {
		updates[fieldInterests] = req.Interests
	}
	if req.Institution != nil {
		updates[fieldInstitution] = *req.Institution
	}
	if req.Degree != nil {
		updates[fieldDegree] = *req.Degree
	}
	if req.Role != nil {
		if !domain.ValidRole(*req.Role) {
			return nil, fmt.Errorf("invalid role: %w", domain.ErrBadRequest)
		}
		updates[fieldRole] = *req.Role
	}
	if req.Enable != nil {
		updates[fieldEnable] = *req.Enable
	}
	if len(updates) == 0 {
		return s.repo.Get(ctx, userID)
	}
	if err := s.repo.Update(ctx, userID, updates); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, userID)
}

func (s *service) Delete(ctx context.Context, userID string) error {
	if err := s.repo.SoftDelete(ctx, userID); err != nil {
		return err
	}
	return s.sessionRepo.SoftDeleteByUser(ctx, userID)
}

func (s *service) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	u, err := s.repo.Get(ctx, userID)
	if err != nil {
		return err
	}
	ok, err := s.hasher.Verify(currentPassword, u.PasswordHash)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("current password is incorrect: %w", domain.ErrUnauthorized)
	}
	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return err
	}
	return s.repo.Update(ctx, userID, map[string]interface{}{fieldPasswordHash: hash})
}

// allocateUsername synthesizes a handle and retries on collision. Synthesis
// draws from a small combinatorial space, so exhausting the retry budget means
// the namespace is saturated rather than unlucky.
func (s *service) allocateUsername(ctx context.Context, interests []string, displayName string) (string, error) {
	for i := 0; i < usernameAttempts; i++ {
		candidate := s.synth.Synthesize(interests, displayName)
		_, err := s.repo.GetByUsername(ctx, candidate)
		if errors.Is(err, domain.ErrNotFound) {
			return candidate, nil
		}
		if err == nil {
			continue
		}
		return "", err
	}
	return "", fmt.Errorf("could not allocate a unique username: %w", domain.ErrConflict)
}

// welcome writes the post-signup notification. Best effort: registration must
// not fail because the notifications table hiccuped.
func (s *service) welcome(ctx context.Context, u *domain.User) {
	n := &domain.Notification{
		NotificationID: id.NewSortable(),
		UserID:         u.UserID,
		Type:           domain.NotificationWelcome,
		Title:          "Welcome to HypIdeas",
		Message:        fmt.Sprintf("Your handle is %s. Verify your account to unlock posting.", u.Username),
		CreatedAt:      time.Now().UTC(),
	}
	if err := s.notificationRepo.Put(ctx, n); err != nil {
		slog.Warn("failed to write welcome notification", "user_id", u.UserID, "err", err)
	}
}
