package service

import (
	"context"
	"strings"

	"pnsMembership/internal/models"
	"pnsMembership/internal/repository"
	"pnsMembership/internal/storage"

	"github.com/stretchr/testify/mock"
)

type MockMemberRepository struct {
	mock.Mock
}

func (m *MockMemberRepository) Create(ctx context.Context, member *models.Member) error {
	args := m.Called(ctx, member)
	return args.Error(0)
}

func (m *MockMemberRepository) CreateMany(ctx context.Context, members []*models.Member) error {
	args := m.Called(ctx, members)
	return args.Error(0)
}

func (m *MockMemberRepository) GetByID(ctx context.Context, id int64) (*models.Member, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Member), args.Error(1)
}

func (m *MockMemberRepository) GetByEmail(ctx context.Context, email string) (*models.Member, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Member), args.Error(1)
}

func (m *MockMemberRepository) List(ctx context.Context, filter repository.MemberFilter) ([]models.Member, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Member), args.Error(1)
}

func (m *MockMemberRepository) UpdateStatus(ctx context.Context, id int64, status models.MemberStatus) (*models.Member, error) {
	args := m.Called(ctx, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Member), args.Error(1)
}

func (m *MockMemberRepository) UpdatePhoto(ctx context.Context, id int64, url string) error {
	args := m.Called(ctx, id, url)
	return args.Error(0)
}

func (m *MockMemberRepository) DeleteWithPosts(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockStaffRepository struct {
	mock.Mock
}

func (m *MockStaffRepository) Create(ctx context.Context, staff *models.Staff) error {
	args := m.Called(ctx, staff)
	return args.Error(0)
}

func (m *MockStaffRepository) Upsert(ctx context.Context, staff *models.Staff) error {
	args := m.Called(ctx, staff)
	return args.Error(0)
}

func (m *MockStaffRepository) GetByID(ctx context.Context, id int64) (*models.Staff, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Staff), args.Error(1)
}

func (m *MockStaffRepository) GetByEmail(ctx context.Context, email string) (*models.Staff, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Staff), args.Error(1)
}

func (m *MockStaffRepository) List(ctx context.Context) ([]models.Staff, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Staff), args.Error(1)
}

func (m *MockStaffRepository) Update(ctx context.Context, staff *models.Staff) error {
	args := m.Called(ctx, staff)
	return args.Error(0)
}

func (m *MockStaffRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockPostRepository struct {
	mock.Mock
}

func (m *MockPostRepository) Create(ctx context.Context, post *models.Post) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *MockPostRepository) GetByID(ctx context.Context, id int64) (*models.Post, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostRepository) List(ctx context.Context) ([]models.Post, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Post), args.Error(1)
}

func (m *MockPostRepository) Update(ctx context.Context, post *models.Post) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *MockPostRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockPreviewRepository struct {
	mock.Mock
}

func (m *MockPreviewRepository) Create(ctx context.Context, fileURL string) (*models.Preview, error) {
	args := m.Called(ctx, fileURL)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Preview), args.Error(1)
}

func (m *MockPreviewRepository) Latest(ctx context.Context) (*models.Preview, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Preview), args.Error(1)
}

type MockStatsRepository struct {
	mock.Mock
}

func (m *MockStatsRepository) MemberCounts(ctx context.Context) (models.MemberStats, error) {
	args := m.Called(ctx)
	return args.Get(0).(models.MemberStats), args.Error(1)
}

func (m *MockStatsRepository) StaffCount(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockStatsRepository) PostCounts(ctx context.Context) (models.PostStats, error) {
	args := m.Called(ctx)
	return args.Get(0).(models.PostStats), args.Error(1)
}

// fakeStorage records saved uploads and fails on the field named in failOn.
type fakeStorage struct {
	saved  []*storage.Upload
	failOn string
	err    error
}

func (f *fakeStorage) Name() string {
	return "fake"
}

func (f *fakeStorage) Save(_ context.Context, upload *storage.Upload) (string, error) {
	if upload == nil || upload.TempPath == "" {
		return "", storage.ErrNoFile
	}
	if upload.Field == f.failOn {
		return "", f.err
	}
	f.saved = append(f.saved, upload)
	if upload.Folder != "" {
		return "/uploads/" + upload.Folder + "/" + upload.Field, nil
	}
	return "/uploads/" + upload.Field, nil
}

func (f *fakeStorage) fields() []string {
	var fields []string
	for _, upload := range f.saved {
		fields = append(fields, upload.Field)
	}
	return fields
}

type fakeRemover struct {
	removed []string
}

func (f *fakeRemover) Owns(url string) bool {
	return strings.HasPrefix(url, "/uploads/")
}

func (f *fakeRemover) Remove(url string) error {
	f.removed = append(f.removed, url)
	return nil
}
