package repository

import (
	"context"
	"fmt"

	"github.com/michelledlee/iRate-Database/internal/data/entity"
	"github.com/michelledlee/iRate-Database/pkg/database"

	"go.uber.org/zap"
)

type AttendanceRepository interface {
	Create(ctx context.Context, attendance *entity.Attendance) error
	Count(ctx context.Context) (int64, error)
}

type attendanceRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewAttendanceRepository(db database.PgxIface, log *zap.Logger) AttendanceRepository {
	return &attendanceRepository{
		db:  db,
		log: log.With(zap.String("repository", "attendance")),
	}
}

// Create records a visit. Repeat attendance is allowed; the only way
// this fails is a missing movie or customer.
func (r *attendanceRepository) Create(ctx context.Context, attendance *entity.Attendance) error {
	query := `
		INSERT INTO attendances (movie_id, customer_id, attended_on)
		VALUES ($1, $2, $3)
	`

	_, err := r.db.Exec(ctx, query,
		attendance.MovieID,
		attendance.CustomerID,
		attendance.AttendedOn,
	)

	if err != nil {
		return fmt.Errorf("record attendance for customer %s at movie %s: %w",
			attendance.CustomerID.String(), attendance.MovieID.String(), mapPgError(err))
	}

	return nil
}

func (r *attendanceRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM attendances`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count attendances: %w", err)
	}
	return count, nil
}
