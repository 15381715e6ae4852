package interest

import (
	"context"
	"time"

	"github.com/hypideas/identity-api/internal/domain"
	"github.com/hypideas/identity-api/internal/pkg/id"
)

// DynamoDB attribute names used in partial update maps.
const (
	fieldName        = "name"
	fieldCategory    = "category"
	fieldDescription = "description"
	fieldEnable      = "enable"
)

type Service interface {
	List(ctx context.Context) ([]domain.Interest, error)
	Get(ctx context.Context, interestID string) (*domain.Interest, error)
	Create(ctx context.Context, input domain.InterestInput) (*domain.Interest, error)
	Update(ctx context.Context, interestID string, input domain.InterestInput) (*domain.Interest, error)
	Delete(ctx context.Context, interestID string) error // hard delete
}

type interestStore interface {
	Scan(ctx context.Context) ([]domain.Interest, error)
	Get(ctx context.Context, interestID string) (*domain.Interest, error)
	Put(ctx context.Context, in *domain.Interest) error
	Update(ctx context.Context, interestID string, updates map[string]interface{}) error
	HardDelete(ctx context.Context, interestID string) error
}

type service struct {
	repo interestStore
}

func NewService(repo interestStore) Service {
	return &service{repo: repo}
}

func (s *service) List(ctx context.Context) ([]domain.Interest, error) {
	return s.repo.Scan(ctx)
}

func (s *service) Get(ctx context.Context, interestID string) (*domain.Interest, error) {
	return s.repo.Get(ctx, interestID)
}

func (s *service) Create(ctx context.Context, input domain.InterestInput) (*domain.Interest, error) {
	now := time.Now().UTC()
	in := &domain.Interest{
		InterestID:  id.New(),
		Name:        input.Name,
		Category:    input.Category,
		Description: input.Description,
		Enable:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Put(ctx, in); err != nil {
		return nil, err
	}
	return in, nil
}

func (s *service) Update(ctx context.Context, interestID string, input domain.InterestInput) (*domain.Interest, error) {
	updates := map[string]interface{}{
		fieldName:        input.Name,
		fieldCategory:    input.Category,
		fieldDescription: input.Description,
	}
	if input.Enable != nil {
		updates[fieldEnable] = *input.Enable
	}
	if err := s.repo.Update(ctx, interestID, updates); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, interestID)
}

func (s *service) Delete(ctx context.Context, interestID string) error {
	return s.repo.HardDelete(ctx, interestID)
}
