package test

import (
	"context"

	"pnsMembership/internal/models"
	"pnsMembership/internal/repository"
	"pnsMembership/internal/service"
	"pnsMembership/internal/storage"

	"github.com/stretchr/testify/mock"
)

type MockRegistrationService struct {
	mock.Mock
}

func (m *MockRegistrationService) Register(ctx context.Context, req *service.RegistrationRequest) (*models.Member, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Member), args.Error(1)
}

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) MemberLogin(ctx context.Context, email, password string) (*models.Member, string, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).(*models.Member), args.String(1), args.Error(2)
}

func (m *MockAuthService) StaffLogin(ctx context.Context, email, password string) (*models.Staff, string, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).(*models.Staff), args.String(1), args.Error(2)
}

type MockProfileService struct {
	mock.Mock
}

func (m *MockProfileService) GetProfile(ctx context.Context, memberID int64) (*models.Member, error) {
	args := m.Called(ctx, memberID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Member), args.Error(1)
}

func (m *MockProfileService) ChangePhoto(ctx context.Context, memberID int64, upload *storage.Upload) (string, error) {
	args := m.Called(ctx, memberID, upload)
	return args.String(0), args.Error(1)
}

type MockMemberService struct {
	mock.Mock
}

func (m *MockMemberService) List(ctx context.Context, filter repository.MemberFilter) ([]models.Member, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Member), args.Error(1)
}

func (m *MockMemberService) Get(ctx context.Context, id int64) (*models.Member, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Member), args.Error(1)
}

func (m *MockMemberService) UpdateStatus(ctx context.Context, id int64, uiStatus string) (*models.Member, error) {
	args := m.Called(ctx, id, uiStatus)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Member), args.Error(1)
}

func (m *MockMemberService) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockMemberService) Import(ctx context.Context, rows []service.ImportRow) (int, error) {
	args := m.Called(ctx, rows)
	return args.Int(0), args.Error(1)
}

type MockStaffService struct {
	mock.Mock
}

func (m *MockStaffService) List(ctx context.Context) ([]models.Staff, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Staff), args.Error(1)
}

func (m *MockStaffService) Get(ctx context.Context, id int64) (*models.Staff, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Staff), args.Error(1)
}

func (m *MockStaffService) Create(ctx context.Context, req service.CreateStaffRequest) (*models.Staff, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Staff), args.Error(1)
}

func (m *MockStaffService) Update(ctx context.Context, id int64, req service.UpdateStaffRequest) (*models.Staff, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Staff), args.Error(1)
}

func (m *MockStaffService) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockPostService struct {
	mock.Mock
}

func (m *MockPostService) List(ctx context.Context) ([]models.Post, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Post), args.Error(1)
}

func (m *MockPostService) Get(ctx context.Context, id int64) (*models.Post, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostService) Create(ctx context.Context, staffID int64, req service.CreatePostRequest) (*models.Post, error) {
	args := m.Called(ctx, staffID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostService) Update(ctx context.Context, id int64, req service.UpdatePostRequest) (*models.Post, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostService) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockMediaService struct {
	mock.Mock
}

func (m *MockMediaService) UploadImage(ctx context.Context, upload *storage.Upload) (string, error) {
	args := m.Called(ctx, upload)
	return args.String(0), args.Error(1)
}

func (m *MockMediaService) UploadPreview(ctx context.Context, upload *storage.Upload) (*models.Preview, error) {
	args := m.Called(ctx, upload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Preview), args.Error(1)
}

func (m *MockMediaService) LatestPreview(ctx context.Context) (*models.Preview, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Preview), args.Error(1)
}

type MockStatsService struct {
	mock.Mock
}

func (m *MockStatsService) Members(ctx context.Context) (*service.MemberStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.MemberStats), args.Error(1)
}

func (m *MockStatsService) Dashboard(ctx context.Context) (*service.DashboardStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.DashboardStats), args.Error(1)
}

type fakeDB struct {
	err error
}

func (f fakeDB) HealthCheck(context.Context) error {
	return f.err
}
