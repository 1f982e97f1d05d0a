package user

import (
	"context"
	"testing"

	"estatehub_backend/internal/common"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

// MockUserRepository is a mock type for user.Repository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, u *User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}
func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}
func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}
func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}
func (m *MockUserRepository) FindByProvider(ctx context.Context, authProvider string, providerID string) (*User, error) {
	args := m.Called(ctx, authProvider, providerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}
func (m *MockUserRepository) Update(ctx context.Context, u *User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}
func (m *MockUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockUserRepository) Search(ctx context.Context, filter common.Filter, orderBy string, page, pageSize int) ([]User, int64, error) {
	args := m.Called(ctx, filter, orderBy, page, pageSize)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]User), args.Get(1).(int64), args.Error(2)
}
func (m *MockUserRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status UserStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}
func (m *MockUserRepository) Summarize(ctx context.Context) (*Summary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Summary), args.Error(1)
}

func newTestService(repo Repository) *Service {
	return NewService(repo, zap.NewNop())
}

func TestParseUserStatus(t *testing.T) {
	status, err := ParseUserStatus("Approved")
	assert.NoError(t, err)
	assert.Equal(t, StatusApproved, status)

	status, err = ParseUserStatus(" deactivated ")
	assert.NoError(t, err)
	assert.Equal(t, StatusDeactivated, status)

	_, err = ParseUserStatus("banned")
	assert.Error(t, err)
}

func TestUpdateProfile_HashesNewPassword(t *testing.T) {
	mockRepo := new(MockUserRepository)
	svc := newTestService(mockRepo)

	userID := uuid.New()
	existing := &User{
		BaseModel: common.BaseModel{ID: userID},
		Username:  "alice",
		Email:     "alice@example.com",
		Status:    StatusApproved,
	}

	mockRepo.On("FindByID", mock.Anything, userID).Return(existing, nil)
	mockRepo.On("Update", mock.Anything, mock.AnythingOfType("*user.User")).Return(nil)

	newPassword := "correct-horse-battery"
	updated, err := svc.UpdateProfile(context.Background(), userID, UpdateProfileRequest{
		Password: &newPassword,
	})

	assert.NoError(t, err)
	assert.NotNil(t, updated.PasswordHash)
	assert.NotEqual(t, newPassword, *updated.PasswordHash)
	assert.True(t, common.CheckPasswordHash(newPassword, *updated.PasswordHash))
	mockRepo.AssertExpectations(t)
}

func TestUpdateProfile_PartialUpdateLeavesOtherFields(t *testing.T) {
	mockRepo := new(MockUserRepository)
	svc := newTestService(mockRepo)

	userID := uuid.New()
	existing := &User{
		BaseModel: common.BaseModel{ID: userID},
		Username:  "alice",
		Email:     "alice@example.com",
		Avatar:    "https://cdn.example.com/a.png",
	}

	mockRepo.On("FindByID", mock.Anything, userID).Return(existing, nil)
	mockRepo.On("Update", mock.Anything, mock.AnythingOfType("*user.User")).Return(nil)

	newName := "alice2"
	updated, err := svc.UpdateProfile(context.Background(), userID, UpdateProfileRequest{
		Username: &newName,
	})

	assert.NoError(t, err)
	assert.Equal(t, "alice2", updated.Username)
	assert.Equal(t, "alice@example.com", updated.Email)
	assert.Equal(t, "https://cdn.example.com/a.png", updated.Avatar)
}

func TestAdminSearchUsers_BuildsSearchFilter(t *testing.T) {
	mockRepo := new(MockUserRepository)
	svc := newTestService(mockRepo)

	var capturedFilter common.Filter
	var capturedOrder string
	mockRepo.On("Search", mock.Anything, mock.AnythingOfType("common.Filter"), mock.AnythingOfType("string"), 1, 10).
		Run(func(args mock.Arguments) {
			capturedFilter = args.Get(1).(common.Filter)
			capturedOrder = args.Get(2).(string)
		}).
		Return([]User{}, int64(0), nil)

	_, pagination, err := svc.AdminSearchUsers(context.Background(), AdminQuery{
		Search:   "Ali",
		IsAdmin:  "true",
		Sort:     "username",
		Order:    "asc",
		Page:     1,
		PageSize: 10,
	})

	assert.NoError(t, err)
	assert.Equal(t, 1, pagination.TotalPages)

	sql, sqlArgs := capturedFilter.SQL()
	assert.Contains(t, sql, "LOWER(username) LIKE ? OR LOWER(email) LIKE ?")
	assert.Contains(t, sql, "is_admin = ?")
	assert.Contains(t, sqlArgs, "%ali%")
	assert.Contains(t, sqlArgs, true)
	assert.Equal(t, "username ASC", capturedOrder)
}

func TestAdminSearchUsers_RejectsUnknownStatus(t *testing.T) {
	mockRepo := new(MockUserRepository)
	svc := newTestService(mockRepo)

	_, _, err := svc.AdminSearchUsers(context.Background(), AdminQuery{
		Status:   "suspended",
		Page:     1,
		PageSize: 10,
	})

	assert.Error(t, err)
	apiErr, ok := common.IsAPIError(err)
	assert.True(t, ok)
	assert.Equal(t, common.ErrBadRequest.Code, apiErr.Code)
	mockRepo.AssertNotCalled(t, "Search")
}

func TestAdminSearchUsers_UnknownSortFallsBack(t *testing.T) {
	mockRepo := new(MockUserRepository)
	svc := newTestService(mockRepo)

	var capturedOrder string
	mockRepo.On("Search", mock.Anything, mock.Anything, mock.AnythingOfType("string"), 1, 10).
		Run(func(args mock.Arguments) {
			capturedOrder = args.Get(2).(string)
		}).
		Return([]User{}, int64(0), nil)

	_, _, err := svc.AdminSearchUsers(context.Background(), AdminQuery{
		Sort:     "password_hash",
		Page:     1,
		PageSize: 10,
	})

	assert.NoError(t, err)
	assert.Equal(t, "created_at DESC", capturedOrder)
}

func TestAdminUpdateUserStatus(t *testing.T) {
	mockRepo := new(MockUserRepository)
	svc := newTestService(mockRepo)

	userID := uuid.New()
	deactivated := &User{
		BaseModel: common.BaseModel{ID: userID},
		Username:  "bob",
		Status:    StatusDeactivated,
	}

	mockRepo.On("UpdateStatus", mock.Anything, userID, StatusDeactivated).Return(nil)
	mockRepo.On("FindByID", mock.Anything, userID).Return(deactivated, nil)

	updated, err := svc.AdminUpdateUserStatus(context.Background(), userID, "DEACTIVATED")
	assert.NoError(t, err)
	assert.Equal(t, StatusDeactivated, updated.Status)
}

func TestAdminUpdateUserStatus_InvalidStatus(t *testing.T) {
	mockRepo := new(MockUserRepository)
	svc := newTestService(mockRepo)

	_, err := svc.AdminUpdateUserStatus(context.Background(), uuid.New(), "frozen")
	assert.Error(t, err)
	apiErr, ok := common.IsAPIError(err)
	assert.True(t, ok)
	assert.Equal(t, common.ErrBadRequest.Code, apiErr.Code)
	mockRepo.AssertNotCalled(t, "UpdateStatus")
}

func TestAdminUpdateUserStatus_NotFound(t *testing.T) {
	mockRepo := new(MockUserRepository)
	svc := newTestService(mockRepo)

	userID := uuid.New()
	mockRepo.On("UpdateStatus", mock.Anything, userID, StatusApproved).
		Return(common.ErrNotFound.WithDetails("User not found."))

	_, err := svc.AdminUpdateUserStatus(context.Background(), userID, "approved")
	assert.Error(t, err)
	apiErr, ok := common.IsAPIError(err)
	assert.True(t, ok)
	assert.Equal(t, common.ErrNotFound.Code, apiErr.Code)
}
