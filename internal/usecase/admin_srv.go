package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/michelledlee/iRate-Database/internal/data/entity"
	"github.com/michelledlee/iRate-Database/internal/data/repository"
	"github.com/michelledlee/iRate-Database/internal/dto/request"
	"github.com/michelledlee/iRate-Database/internal/dto/response"
	"github.com/michelledlee/iRate-Database/pkg/datemath"
	"github.com/michelledlee/iRate-Database/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AdminService covers the operations outside bulk load and reporting:
// schema bootstrap, direct endorsements, deletions, and table counts.
type AdminService interface {
	Setup(ctx context.Context) error
	Endorse(ctx context.Context, req *request.EndorseRequest) error
	DeleteCustomer(ctx context.Context, id string) error
	DeleteMovie(ctx context.Context, id string) error
	DeleteReview(ctx context.Context, id string) error
	Counts(ctx context.Context) ([]response.EntityCount, error)
}

type adminService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewAdminService(repo *repository.Repository, log *zap.Logger) AdminService {
	return &adminService{
		repo: repo,
		log:  log.With(zap.String("service", "admin")),
	}
}

func (s *adminService) Setup(ctx context.Context) error {
	if err := s.repo.Schema.Setup(ctx); err != nil {
		s.log.Error("Schema setup failed", zap.Error(err))
		return fmt.Errorf("schema setup: %w", err)
	}

	s.log.Info("Schema created")
	return nil
}

// Endorse inserts one endorsement. Date defaults to today when the
// request leaves it empty.
func (s *adminService) Endorse(ctx context.Context, req *request.EndorseRequest) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	reviewID, err := uuid.Parse(req.ReviewID)
	if err != nil {
		return fmt.Errorf("invalid review ID format %s: %w", req.ReviewID, err)
	}

	endorserID, err := uuid.Parse(req.EndorserID)
	if err != nil {
		return fmt.Errorf("invalid endorser ID format %s: %w", req.EndorserID, err)
	}

	date := datemath.Day(time.Now())
	if req.Date != "" {
		date, _ = time.Parse(dateLayout, req.Date)
	}

	endorsement := &entity.Endorsement{
		ReviewID:   reviewID,
		EndorserID: endorserID,
		EndorsedOn: date,
	}

	if err := s.repo.Endorsement.Create(ctx, endorsement); err != nil {
		return fmt.Errorf("endorse review %s: %w", req.ReviewID, err)
	}

	s.log.Info("Endorsement recorded",
		zap.String("review_id", req.ReviewID),
		zap.String("endorser_id", req.EndorserID),
		zap.Time("endorsed_on", date),
	)

	return nil
}

func (s *adminService) DeleteCustomer(ctx context.Context, id string) error {
	customerID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid customer ID format %s: %w", id, err)
	}
	return s.repo.Customer.Delete(ctx, customerID)
}

func (s *adminService) DeleteMovie(ctx context.Context, id string) error {
	movieID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid movie ID format %s: %w", id, err)
	}
	return s.repo.Movie.Delete(ctx, movieID)
}

func (s *adminService) DeleteReview(ctx context.Context, id string) error {
	reviewID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid review ID format %s: %w", id, err)
	}
	return s.repo.Review.Delete(ctx, reviewID)
}

// Counts returns the row count of each entity table, in schema order.
func (s *adminService) Counts(ctx context.Context) ([]response.EntityCount, error) {
	tables := []struct {
		name  string
		count func(context.Context) (int64, error)
	}{
		{"Customer", s.repo.Customer.Count},
		{"Movie", s.repo.Movie.Count},
		{"Attendance", s.repo.Attendance.Count},
		{"Review", s.repo.Review.Count},
		{"Endorsement", s.repo.Endorsement.Count},
	}

	counts := make([]response.EntityCount, 0, len(tables))
	for _, tbl := range tables {
		n, err := tbl.count(ctx)
		if err != nil {
			return nil, fmt.Errorf("count %s rows: %w", tbl.name, err)
		}
		counts = append(counts, response.EntityCount{Entity: tbl.name, Rows: n})
	}

	return counts, nil
}
