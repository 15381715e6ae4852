package account

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hypideas/identity-api/internal/domain"
	"github.com/hypideas/identity-api/internal/pkg/id"
	"github.com/hypideas/identity-api/internal/pkg/otp"
	"github.com/hypideas/identity-api/internal/pkg/password"
	"github.com/hypideas/identity-api/internal/pkg/username"
	"github.com/hypideas/identity-api/internal/pkg/validate"
)

// Service is the stubbed account surface used for frontend development. It
// touches no store: Authenticate accepts any non-empty credential pair,
// CreateAccount hashes and then discards, and VerifyOTP defers to the
// placeholder policy in pkg/otp. Mounted only when MOCK_AUTH is set.
type Service interface {
	Authenticate(ctx context.Context, email, pass string) (*domain.AuthUser, error)
	CreateAccount(ctx context.Context, req domain.SignupRequest) (*domain.AuthUser, error)
	IssueOTP(ctx context.Context, phone string) (string, error)
	VerifyOTP(ctx context.Context, phone, code string) bool
}

type service struct {
	hasher password.Hasher
	synth  *username.Synthesizer
}

func NewService(hasher password.Hasher, synth *username.Synthesizer) Service {
	return &service{hasher: hasher, synth: synth}
}

func (s *service) Authenticate(ctx context.Context, email, pass string) (*domain.AuthUser, error) {
	slog.Info("mock authenticate", "email", email, "password", "[REDACTED]")
	if email == "" || pass == "" {
		return nil, fmt.Errorf("invalid credentials: %w", domain.ErrInvalidCredentials)
	}
	return &domain.AuthUser{
		ID:          id.New(),
		Email:       email,
		Username:    "MockUser_2024",
		DisplayName: "Dr. Mock User",
		IsVerified:  true,
		Role:        domain.RoleUser,
	}, nil
}

func (s *service) CreateAccount(ctx context.Context, req domain.SignupRequest) (*domain.AuthUser, error) {
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%s: %w", err, domain.ErrBadRequest)
	}
	// The hash is computed and discarded so this path costs the same as the
	// real one; nothing is persisted.
	if _, err := s.hasher.Hash(req.Password); err != nil {
		return nil, err
	}
	handle := s.synth.Synthesize(req.Interests, req.DisplayName)
	slog.Info("mock account created", "email", req.Email, "username", handle)
	return &domain.AuthUser{
		ID:          id.New(),
		Email:       req.Email,
		Username:    handle,
		DisplayName: req.DisplayName,
		IsVerified:  false,
		Role:        domain.RoleUser,
	}, nil
}

func (s *service) IssueOTP(ctx context.Context, phone string) (string, error) {
	if !validate.IsValidPhone(phone) {
		return "", fmt.Errorf("invalid phone number: %w", domain.ErrBadRequest)
	}
	code, err := otp.Issue()
	if err != nil {
		return "", err
	}
	slog.Info("mock otp issued", "phone", phone)
	return code, nil
}

func (s *service) VerifyOTP(ctx context.Context, phone, code string) bool {
	return otp.Verify(code)
}
