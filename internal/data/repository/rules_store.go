package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/michelledlee/iRate-Database/internal/rules"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// querier is the slice of database.PgxIface the rule checks need;
// pgx.Tx satisfies it too, so the same store works inside an insert
// transaction.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// rulesStore gives the rule predicates read access to whatever
// connection scope it wraps. Inserting repositories wrap their own
// transaction so the checks and the insert share a snapshot.
type rulesStore struct {
	q querier
}

var _ rules.Store = (*rulesStore)(nil)

func (s *rulesStore) AttendanceDates(ctx context.Context, customerID, movieID uuid.UUID) ([]time.Time, error) {
	query := `
		SELECT attended_on
		FROM attendances
		WHERE customer_id = $1 AND movie_id = $2
	`

	rows, err := s.q.Query(ctx, query, customerID, movieID)
	if err != nil {
		return nil, fmt.Errorf("attendance dates for customer %s at movie %s: %w",
			customerID.String(), movieID.String(), err)
	}
	defer rows.Close()

	var dates []time.Time
	for rows.Next() {
		var d time.Time
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("scan attendance date: %w", err)
		}
		dates = append(dates, d)
	}

	return dates, rows.Err()
}

func (s *rulesStore) HasReview(ctx context.Context, customerID, movieID uuid.UUID) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM reviews
			WHERE customer_id = $1 AND movie_id = $2
		)
	`

	var exists bool
	if err := s.q.QueryRow(ctx, query, customerID, movieID).Scan(&exists); err != nil {
		return false, fmt.Errorf("check review by customer %s for movie %s: %w",
			customerID.String(), movieID.String(), err)
	}

	return exists, nil
}

func (s *rulesStore) ReviewAuthor(ctx context.Context, reviewID uuid.UUID) (uuid.UUID, bool, error) {
	query := `SELECT customer_id FROM reviews WHERE review_id = $1`

	var author uuid.UUID
	err := s.q.QueryRow(ctx, query, reviewID).Scan(&author)
	if err == pgx.ErrNoRows {
		return uuid.Nil, false, nil
	}
	if err != nil {
		return uuid.Nil, false, fmt.Errorf("author of review %s: %w", reviewID.String(), err)
	}

	return author, true, nil
}

func (s *rulesStore) ReviewMovie(ctx context.Context, reviewID uuid.UUID) (uuid.UUID, bool, error) {
	query := `SELECT movie_id FROM reviews WHERE review_id = $1`

	var movieID uuid.UUID
	err := s.q.QueryRow(ctx, query, reviewID).Scan(&movieID)
	if err == pgx.ErrNoRows {
		return uuid.Nil, false, nil
	}
	if err != nil {
		return uuid.Nil, false, fmt.Errorf("movie of review %s: %w", reviewID.String(), err)
	}

	return movieID, true, nil
}

// LastEndorsement finds the most recent date the endorser endorsed any
// review of the movie, across all of that movie's reviews.
func (s *rulesStore) LastEndorsement(ctx context.Context, endorserID, movieID uuid.UUID) (time.Time, bool, error) {
	query := `
		SELECT e.endorsed_on
		FROM endorsements e
		JOIN reviews r ON e.review_id = r.review_id
		WHERE r.movie_id = $1 AND e.endorser_id = $2
		ORDER BY e.endorsed_on DESC
		LIMIT 1
	`

	var last time.Time
	err := s.q.QueryRow(ctx, query, movieID, endorserID).Scan(&last)
	if err == pgx.ErrNoRows {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, fmt.Errorf("last endorsement of movie %s by %s: %w",
			movieID.String(), endorserID.String(), err)
	}

	return last, true, nil
}
