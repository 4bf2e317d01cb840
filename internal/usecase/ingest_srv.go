package usecase

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/michelledlee/iRate-Database/internal/data/entity"
	"github.com/michelledlee/iRate-Database/internal/data/repository"
	"github.com/michelledlee/iRate-Database/internal/dto/request"
	"github.com/michelledlee/iRate-Database/internal/dto/response"
	"github.com/michelledlee/iRate-Database/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ingestFields is the column count of the bulk load file.
const ingestFields = 9

const dateLayout = "2006-01-02"

type IngestService interface {
	// LoadFile bulk loads a tab-separated data file.
	LoadFile(ctx context.Context, path string) (*response.IngestStats, error)

	// Load bulk loads tab-separated records from a reader. Loading is
	// best effort: every per-row failure is logged and skipped, and a
	// failed write does not stop the later writes of the same line.
	Load(ctx context.Context, r io.Reader) (*response.IngestStats, error)
}

type ingestService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewIngestService(repo *repository.Repository, log *zap.Logger) IngestService {
	return &ingestService{
		repo: repo,
		log:  log.With(zap.String("service", "ingest")),
	}
}

func (s *ingestService) LoadFile(ctx context.Context, path string) (*response.IngestStats, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open data file %s: %w", path, err)
	}
	defer f.Close()

	stats, err := s.Load(ctx, f)
	if err != nil {
		return nil, err
	}

	s.log.Info("Bulk load finished",
		zap.String("file", path),
		zap.Int("lines", stats.Lines),
		zap.Int("malformed", stats.Malformed),
		zap.Int("customers", stats.Customers),
		zap.Int("movies", stats.Movies),
		zap.Int("attendances", stats.Attendances),
		zap.Int("reviews", stats.Reviews),
		zap.Int("rows_skipped", stats.RowsSkipped),
	)

	return stats, nil
}

func (s *ingestService) Load(ctx context.Context, r io.Reader) (*response.IngestStats, error) {
	stats := &response.IngestStats{}

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		stats.Lines++

		// split input line into fields at tab delimiter
		fields := strings.Split(scanner.Text(), "\t")
		if len(fields) != ingestFields {
			stats.Malformed++
			continue
		}

		record, err := parseRecord(fields)
		if err != nil {
			stats.Malformed++
			s.log.Warn("Skipping malformed record",
				zap.Int("line", stats.Lines),
				zap.Error(err),
			)
			continue
		}

		s.loadRecord(ctx, record, stats)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read data file: %w", err)
	}

	return stats, nil
}

// parseRecord validates one line's fields and converts them to a record.
func parseRecord(fields []string) (*request.IngestRecord, error) {
	rating, err := strconv.Atoi(fields[6])
	if err != nil {
		return nil, fmt.Errorf("rating %q is not a number: %w", fields[6], err)
	}

	record := &request.IngestRecord{
		CustomerName:  fields[0],
		CustomerEmail: fields[1],
		CustomerID:    fields[2],
		MovieTitle:    fields[3],
		MovieID:       fields[4],
		ReviewID:      fields[5],
		Rating:        rating,
		ReviewText:    fields[7],
		Date:          fields[8],
	}

	if errs := utils.ValidateStruct(record); len(errs) > 0 {
		return nil, fmt.Errorf("invalid record: %s", utils.FormatValidationErrors(errs))
	}

	return record, nil
}

// loadRecord runs the four writes of one line: customer, movie,
// attendance, review. Each write that fails is logged and counted but
// the rest still run, so re-ingesting a file only skips what already
// exists.
func (s *ingestService) loadRecord(ctx context.Context, record *request.IngestRecord, stats *response.IngestStats) {
	// IDs and date already validated by parseRecord
	customerID := uuid.MustParse(record.CustomerID)
	movieID := uuid.MustParse(record.MovieID)
	reviewID := uuid.MustParse(record.ReviewID)
	date, _ := time.Parse(dateLayout, record.Date)

	customer := &entity.Customer{
		CustomerID: customerID,
		Name:       record.CustomerName,
		Email:      record.CustomerEmail,
		JoinDate:   date,
	}
	if err := s.repo.Customer.Create(ctx, customer); err != nil {
		s.skip(stats, "customer", record.CustomerID, err)
	} else {
		stats.Customers++
	}

	movie := &entity.Movie{
		MovieID: movieID,
		Title:   record.MovieTitle,
	}
	if err := s.repo.Movie.Create(ctx, movie); err != nil {
		s.skip(stats, "movie", record.MovieID, err)
	} else {
		stats.Movies++
	}

	attendance := &entity.Attendance{
		MovieID:    movieID,
		CustomerID: customerID,
		AttendedOn: date,
	}
	if err := s.repo.Attendance.Create(ctx, attendance); err != nil {
		s.skip(stats, "attendance", record.CustomerID, err)
	} else {
		stats.Attendances++
	}

	review := &entity.Review{
		ReviewID:   reviewID,
		CustomerID: customerID,
		MovieID:    movieID,
		ReviewDate: date,
		Rating:     record.Rating,
		Text:       record.ReviewText,
	}
	if err := s.repo.Review.Create(ctx, review); err != nil {
		s.skip(stats, "review", record.ReviewID, err)
	} else {
		stats.Reviews++
	}
}

// skip logs one failed write. Duplicates are routine on re-ingest and
// only logged at debug level; everything else names the key and cause.
func (s *ingestService) skip(stats *response.IngestStats, kind, key string, err error) {
	stats.RowsSkipped++

	if errors.Is(err, repository.ErrDuplicateKey) {
		s.log.Debug("Row already exists, skipped",
			zap.String("entity", kind),
			zap.String("key", key),
		)
		return
	}

	s.log.Warn("Row skipped",
		zap.String("entity", kind),
		zap.String("key", key),
		zap.Error(err),
	)
}
