package auth

import (
	"context"
	"crypto/rand"
	"fmt"
	"log/slog"
	"math/big"
	"time"

	"github.com/hypideas/identity-api/internal/domain"
	"github.com/hypideas/identity-api/internal/pkg/id"
	"github.com/hypideas/identity-api/internal/pkg/otp"
	"github.com/hypideas/identity-api/internal/pkg/password"
	pkgtoken "github.com/hypideas/identity-api/internal/pkg/token"
)

type PasswordRecoveryRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ValidateOTPRequest struct {
	Email string `json:"email" validate:"required,email"`
	OTP   string `json:"otp" validate:"required"`
}

type ChangePasswordRequest struct {
	NewPassword string `json:"new_password" validate:"required,min=8,max=72"`
}

type Service interface {
	RequestPasswordRecovery(ctx context.Context, req PasswordRecoveryRequest) error
	ValidateRecoveryOTP(ctx context.Context, req ValidateOTPRequest) (accessToken, refreshToken string, session *domain.Session, err error)
	ChangePassword(ctx context.Context, userID, newPassword string) error
	RequestEmailConfirmation(ctx context.Context, userID string) error
	ValidateEmailToken(ctx context.Context, userID, token string) error
	RequestPhoneConfirmation(ctx context.Context, userID string) error
	ValidatePhoneOTP(ctx context.Context, userID, code string) error
}

type verificationStore interface {
	Put(ctx context.Context, c *domain.OTPChallenge) error
	Get(ctx context.Context, userID, purpose string) (*domain.OTPChallenge, error)
	Delete(ctx context.Context, userID, purpose string) error
}

type userStore interface {
	Get(ctx context.Context, userID string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, userID string, updates map[string]interface{}) error
}

type sessionStore interface {
	Put(ctx context.Context, s *domain.Session) error
}

type notificationStore interface {
	Put(ctx context.Context, n *domain.Notification) error
}

type mailer interface {
	SendEmail(to, subject, body string) error
}

type smsSender interface {
	SendSMS(ctx context.Context, to, message string) error
}

type jwtSigner interface {
	Sign(userID, role, sessionID string) (string, error)
}

type service struct {
	verificationRepo verificationStore
	userRepo         userStore
	sessionRepo      sessionStore
	notificationRepo notificationStore
	mailer           mailer
	smsSender        smsSender
	jwtProvider      jwtSigner
	hasher           password.Hasher
	otpExpiry        time.Duration
	sessionDur       time.Duration
	refreshTokenDur  time.Duration
}

type ServiceDeps struct {
	VerificationRepo verificationStore
	UserRepo         userStore
	SessionRepo      sessionStore
	NotificationRepo notificationStore
	Mailer           mailer
	SMSSender        smsSender
	JWTProvider      jwtSigner
	Hasher           password.Hasher
	OTPExpiry        time.Duration
	SessionDur       time.Duration
	RefreshTokenDur  time.Duration
}

func NewService(deps ServiceDeps) Service {
	return &service{
		verificationRepo: deps.VerificationRepo,
		userRepo:         deps.UserRepo,
		sessionRepo:      deps.SessionRepo,
		notificationRepo: deps.NotificationRepo,
		mailer:           deps.Mailer,
		smsSender:        deps.SMSSender,
		jwtProvider:      deps.JWTProvider,
		hasher:           deps.Hasher,
		otpExpiry:        deps.OTPExpiry,
		sessionDur:       deps.SessionDur,
		refreshTokenDur:  deps.RefreshTokenDur,
	}
}

func (s *service) RequestPasswordRecovery(ctx context.Context, req PasswordRecoveryRequest) error {
	u, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return fmt.Errorf("user not found: %w", domain.ErrNotFound)
	}
	code, err := otp.Issue()
	if err != nil {
		return err
	}
	c := &domain.OTPChallenge{
		ChallengeID: id.NewSortable(),
		UserID:      u.UserID,
		Purpose:     domain.PurposeReset,
		Destination: u.Email,
		Code:        code,
		ExpiresAt:   time.Now().Add(s.otpExpiry).Unix(),
	}
	if err := s.verificationRepo.Put(ctx, c); err != nil {
		return err
	}
	return s.mailer.SendEmail(u.Email, "Password Recovery Code", "Your recovery code: "+code)
}

func (s *service) ValidateRecoveryOTP(ctx context.Context, req ValidateOTPRequest) (string, string, *domain.Session, error) {
	u, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return "", "", nil, fmt.Errorf("user not found: %w", domain.ErrNotFound)
	}
	if err := s.consumeChallenge(ctx, u.UserID, domain.PurposeReset, req.OTP); err != nil {
		return "", "", nil, err
	}

	refreshToken, err := pkgtoken.NewRefreshToken()
	if err != nil {
		return "", "", nil, err
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
		return "", "", nil, err
	}
	accessToken, err := s.jwtProvider.Sign(u.UserID, u.Role, sess.SessionID)
	if err != nil {
		return "", "", nil, err
	}
	sess.User = u
	return accessToken, refreshToken, sess, nil
}

func (s *service) ChangePassword(ctx context.Context, userID, newPassword string) error {
	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return err
	}
	return s.userRepo.Update(ctx, userID, map[string]interface{}{"password_hash": hash})
}

func (s *service) RequestEmailConfirmation(ctx context.Context, userID string) error {
	u, err := s.userRepo.Get(ctx, userID)
	if err != nil {
		return err
	}
	token, err := generateToken(32)
	if err != nil {
		return err
	}
	c := &domain.OTPChallenge{
		ChallengeID: id.NewSortable(),
		UserID:      userID,
		Purpose:     domain.PurposeEmail,
		Destination: u.Email,
		Code:        token,
		ExpiresAt:   time.Now().Add(24 * time.Hour).Unix(),
	}
	if err := s.verificationRepo.Put(ctx, c); err != nil {
		return err
	}
	return s.mailer.SendEmail(u.Email, "Confirm your email", "Confirmation token: "+token)
}

func (s *service) ValidateEmailToken(ctx context.Context, userID, token string) error {
	if err := s.consumeChallenge(ctx, userID, domain.PurposeEmail, token); err != nil {
		return err
	}
	if err := s.userRepo.Update(ctx, userID, map[string]interface{}{"is_verified": true}); err != nil {
		return err
	}
	s.notifyVerified(ctx, userID)
	return nil
}

func (s *service) RequestPhoneConfirmation(ctx context.Context, userID string) error {
	u, err := s.userRepo.Get(ctx, userID)
	if err != nil {
		return fmt.Errorf("user not found: %w", domain.ErrNotFound)
	}
	if u.Phone == nil {
		return fmt.Errorf("no phone number on account: %w", domain.ErrBadRequest)
	}
	code, err := otp.Issue()
	if err != nil {
		return err
	}
	c := &domain.OTPChallenge{
		ChallengeID: id.NewSortable(),
		UserID:      userID,
		Purpose:     domain.PurposeSignup,
		Destination: *u.Phone,
		Code:        code,
		ExpiresAt:   time.Now().Add(s.otpExpiry).Unix(),
	}
	if err := s.verificationRepo.Put(ctx, c); err != nil {
		return err
	}
	return s.smsSender.SendSMS(ctx, *u.Phone, "Your verification code: "+code)
}

func (s *service) ValidatePhoneOTP(ctx context.Context, userID, code string) error {
	if err := s.consumeChallenge(ctx, userID, domain.PurposeSignup, code); err != nil {
		return err
	}
	if err := s.userRepo.Update(ctx, userID, map[string]interface{}{"is_verified": true}); err != nil {
		return err
	}
	s.notifyVerified(ctx, userID)
	return nil
}

// consumeChallenge checks a submission against the stored challenge and
// deletes it on success. The sentinel and length shortcuts in pkg/otp have no
// effect here: only an exact match on an unexpired code passes.
func (s *service) consumeChallenge(ctx context.Context, userID, purpose, submitted string) error {
	c, err := s.verificationRepo.Get(ctx, userID, purpose)
	if err != nil {
		return fmt.Errorf("code not found: %w", domain.ErrNotFound)
	}
	if c.Code != submitted {
		return fmt.Errorf("invalid code: %w", domain.ErrUnauthorized)
	}
	if c.ExpiresAt < time.Now().Unix() {
		return fmt.Errorf("code expired: %w", domain.ErrUnauthorized)
	}
	if err := s.verificationRepo.Delete(ctx, userID, purpose); err != nil {
		slog.Warn("failed to delete consumed challenge", "user_id", userID, "purpose", purpose, "err", err)
	}
	return nil
}

func (s *service) notifyVerified(ctx context.Context, userID string) {
	n := &domain.Notification{
		NotificationID: id.NewSortable(),
		UserID:         userID,
		Type:           domain.NotificationVerified,
		Title:          "Account verified",
		Message:        "Your account is verified. You can now post and comment.",
		CreatedAt:      time.Now().UTC(),
	}
	if err := s.notificationRepo.Put(ctx, n); err != nil {
		slog.Warn("failed to write verified notification", "user_id", userID, "err", err)
	}
}

func generateToken(n int) (string, error) {
	const letters = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	b := make([]byte, n)
	for i := range b {
		idx, err := rand.Int(rand.Reader, big.NewInt(int64(len(letters))))
		if err != nil {
			return "", err
		}
		b[i] = letters[idx.Int64()]
	}
	return string(b), nil
}
