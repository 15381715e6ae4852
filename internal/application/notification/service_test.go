package notification

import (
	"context"
	"errors"
	"testing"

	"github.com/hypideas/identity-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockNotificationStore struct{ mock.Mock }

func (m *mockNotificationStore) Put(ctx context.Context, n *domain.Notification) error {
	return m.Called(ctx, n).Error(0)
}
func (m *mockNotificationStore) Get(ctx context.Context, notificationID string) (*domain.Notification, error) {
	args := m.Called(ctx, notificationID)
	if n, _ := args.Get(0).(*domain.Notification); n != nil {
		return n, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockNotificationStore) ListUnread(ctx context.Context, userID string) ([]domain.Notification, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.Notification), args.Error(1)
}
func (m *mockNotificationStore) MarkAsRead(ctx context.Context, notificationID string) error {
	return m.Called(ctx, notificationID).Error(0)
}

func TestCreate_FillsIDAndTimestamp(t *testing.T) {
	repo := &mockNotificationStore{}
	repo.On("Put", mock.Anything, mock.AnythingOfType("*domain.Notification")).Return(nil)

	n, err := NewService(repo).Create(context.Background(), "u1", domain.NotificationWelcome, "Welcome", "hello")

	require.NoError(t, err)
	assert.Len(t, n.NotificationID, 26) // ULID, sorts by creation time
	assert.Equal(t, "u1", n.UserID)
	assert.False(t, n.Read)
	assert.False(t, n.CreatedAt.IsZero())
}

func TestMarkAsRead_WrongOwner(t *testing.T) {
	repo := &mockNotificationStore{}
	repo.On("Get", mock.Anything, "n1").Return(&domain.Notification{NotificationID: "n1", UserID: "u2"}, nil)

	_, err := NewService(repo).MarkAsRead(context.Background(), "n1", "u1")

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrForbidden))
	repo.AssertNotCalled(t, "MarkAsRead", mock.Anything, mock.Anything)
}

func TestMarkAsRead_HappyPath(t *testing.T) {
	repo := &mockNotificationStore{}
	repo.On("Get", mock.Anything, "n1").Return(&domain.Notification{NotificationID: "n1", UserID: "u1"}, nil)
	repo.On("MarkAsRead", mock.Anything, "n1").Return(nil)

	n, err := NewService(repo).MarkAsRead(context.Background(), "n1", "u1")

	require.NoError(t, err)
	assert.True(t, n.Read)
	repo.AssertExpectations(t)
}

func TestListUnread_Passthrough(t *testing.T) {
	repo := &mockNotificationStore{}
	repo.On("ListUnread", mock.Anything, "u1").Return([]domain.Notification{{NotificationID: "n1"}}, nil)

	list, err := NewService(repo).ListUnread(context.Background(), "u1")

	require.NoError(t, err)
	assert.Len(t, list, 1)
}
