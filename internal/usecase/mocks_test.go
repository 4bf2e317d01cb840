package usecase

import (
	"context"
	"time"

	"github.com/michelledlee/iRate-Database/internal/data/entity"
	"github.com/michelledlee/iRate-Database/internal/data/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// Mock repositories shared by the service tests.

type MockSchemaRepo struct{ mock.Mock }

func (m *MockSchemaRepo) Setup(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type MockCustomerRepo struct{ mock.Mock }

func (m *MockCustomerRepo) Create(ctx context.Context, customer *entity.Customer) error {
	return m.Called(ctx, customer).Error(0)
}

func (m *MockCustomerRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Customer), args.Error(1)
}

func (m *MockCustomerRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockCustomerRepo) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type MockMovieRepo struct{ mock.Mock }

func (m *MockMovieRepo) Create(ctx context.Context, movie *entity.Movie) error {
	return m.Called(ctx, movie).Error(0)
}

func (m *MockMovieRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Movie, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Movie), args.Error(1)
}

func (m *MockMovieRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockMovieRepo) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type MockAttendanceRepo struct{ mock.Mock }

func (m *MockAttendanceRepo) Create(ctx context.Context, attendance *entity.Attendance) error {
	return m.Called(ctx, attendance).Error(0)
}

func (m *MockAttendanceRepo) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type MockReviewRepo struct{ mock.Mock }

func (m *MockReviewRepo) Create(ctx context.Context, review *entity.Review) error {
	return m.Called(ctx, review).Error(0)
}

func (m *MockReviewRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Review, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Review), args.Error(1)
}

func (m *MockReviewRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockReviewRepo) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockReviewRepo) HighestRated(ctx context.Context) ([]repository.MovieRating, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.MovieRating), args.Error(1)
}

func (m *MockReviewRepo) CountsByMovie(ctx context.Context) ([]repository.MovieReviewCount, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.MovieReviewCount), args.Error(1)
}

type MockEndorsementRepo struct{ mock.Mock }

func (m *MockEndorsementRepo) Create(ctx context.Context, endorsement *entity.Endorsement) error {
	return m.Called(ctx, endorsement).Error(0)
}

func (m *MockEndorsementRepo) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockEndorsementRepo) MostEndorsedReview(ctx context.Context, day time.Time) (*repository.ReviewEndorsements, error) {
	args := m.Called(ctx, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.ReviewEndorsements), args.Error(1)
}

func (m *MockEndorsementRepo) TopEndorser(ctx context.Context, day time.Time) (*repository.EndorserCount, error) {
	args := m.Called(ctx, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.EndorserCount), args.Error(1)
}

// testRepos bundles fresh mocks behind a *repository.Repository.
type testRepos struct {
	schema      *MockSchemaRepo
	customer    *MockCustomerRepo
	movie       *MockMovieRepo
	attendance  *MockAttendanceRepo
	review      *MockReviewRepo
	endorsement *MockEndorsementRepo
}

func newTestRepos() (*testRepos, *repository.Repository) {
	mocks := &testRepos{
		schema:      new(MockSchemaRepo),
		customer:    new(MockCustomerRepo),
		movie:       new(MockMovieRepo),
		attendance:  new(MockAttendanceRepo),
		review:      new(MockReviewRepo),
		endorsement: new(MockEndorsementRepo),
	}

	repo := &repository.Repository{
		Schema:      mocks.schema,
		Customer:    mocks.customer,
		Movie:       mocks.movie,
		Attendance:  mocks.attendance,
		Review:      mocks.review,
		Endorsement: mocks.endorsement,
	}

	return mocks, repo
}
