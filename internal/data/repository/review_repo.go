package repository

import (
	"context"
	"fmt"

	"github.com/michelledlee/iRate-Database/internal/data/entity"
	"github.com/michelledlee/iRate-Database/internal/rules"
	"github.com/michelledlee/iRate-Database/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// MovieRating is a movie together with the best rating any review gave it.
type MovieRating struct {
	MovieID uuid.UUID
	Title   string
	Rating  int
}

// MovieReviewCount is a movie together with its number of reviews.
type MovieReviewCount struct {
	MovieID uuid.UUID
	Title   string
	Reviews int64
}

type ReviewRepository interface {
	Create(ctx context.Context, review *entity.Review) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Review, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int64, error)

	// Business queries
	HighestRated(ctx context.Context) ([]MovieRating, error)
	CountsByMovie(ctx context.Context) ([]MovieReviewCount, error)
}

type reviewRepository struct {
	db         database.PgxIface
	log        *zap.Logger
	windowDays int
}

func NewReviewRepository(db database.PgxIface, log *zap.Logger, windowDays int) ReviewRepository {
	return &reviewRepository{
		db:         db,
		log:        log.With(zap.String("repository", "review")),
		windowDays: windowDays,
	}
}

// Create inserts a review after checking the attendance and
// single-review rules. Checks and insert run in one transaction so the
// rules see exactly the state the row commits against; a failed rule
// comes back as a ConstraintError and nothing is written.
func (r *reviewRepository) Create(ctx context.Context, review *entity.Review) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin review insert: %w", err)
	}
	defer tx.Rollback(ctx)

	checks := &rulesStore{q: tx}

	ok, err := rules.VerifyAttendance(ctx, checks, review.CustomerID, review.MovieID, review.ReviewDate, r.windowDays)
	if err != nil {
		return fmt.Errorf("verify attendance for review %s: %w", review.ReviewID.String(), err)
	}
	if !ok {
		r.log.Warn("Review rejected: no qualifying attendance",
			zap.String("review_id", review.ReviewID.String()),
			zap.String("customer_id", review.CustomerID.String()),
			zap.String("movie_id", review.MovieID.String()),
			zap.Int("window_days", r.windowDays),
		)
		return &ConstraintError{Rule: rules.RuleVerifyAttendance, Key: review.ReviewID.String()}
	}

	ok, err = rules.IsOnlyReview(ctx, checks, review.CustomerID, review.MovieID)
	if err != nil {
		return fmt.Errorf("check only review for %s: %w", review.ReviewID.String(), err)
	}
	if !ok {
		r.log.Warn("Review rejected: customer already reviewed this movie",
			zap.String("review_id", review.ReviewID.String()),
			zap.String("customer_id", review.CustomerID.String()),
			zap.String("movie_id", review.MovieID.String()),
		)
		return &ConstraintError{Rule: rules.RuleIsOnlyReview, Key: review.ReviewID.String()}
	}

	query := `
		INSERT INTO reviews (review_id, customer_id, movie_id, review_date, rating, review_text)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err = tx.Exec(ctx, query,
		review.ReviewID,
		review.CustomerID,
		review.MovieID,
		review.ReviewDate,
		review.Rating,
		review.Text,
	)

	if err != nil {
		return fmt.Errorf("create review %s for movie %s: %w",
			review.ReviewID.String(), review.MovieID.String(), mapPgError(err))
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit review %s: %w", review.ReviewID.String(), err)
	}

	return nil
}

func (r *reviewRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Review, error) {
	query := `
		SELECT review_id, customer_id, movie_id, review_date, rating, review_text
		FROM reviews
		WHERE review_id = $1
	`

	var review entity.Review
	err := r.db.QueryRow(ctx, query, id).Scan(
		&review.ReviewID,
		&review.CustomerID,
		&review.MovieID,
		&review.ReviewDate,
		&review.Rating,
		&review.Text,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find review by ID",
			zap.Error(err),
			zap.String("review_id", id.String()),
		)
		return nil, fmt.Errorf("find review by ID %s: %w", id.String(), err)
	}

	return &review, nil
}

// Delete removes the review and, via cascade, its endorsements.
func (r *reviewRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM reviews WHERE review_id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete review",
			zap.Error(err),
			zap.String("review_id", id.String()),
		)
		return fmt.Errorf("delete review %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("delete review %s: %w", id.String(), ErrNotFound)
	}

	r.log.Info("Review deleted", zap.String("review_id", id.String()))
	return nil
}

func (r *reviewRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM reviews`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count reviews: %w", err)
	}
	return count, nil
}

// HighestRated returns every movie whose best rating ties the best
// rating across all reviews.
func (r *reviewRepository) HighestRated(ctx context.Context) ([]MovieRating, error) {
	query := `
		SELECT rv.movie_id, m.title, MAX(rv.rating) AS top_rating
		FROM reviews rv
		JOIN movies m ON m.movie_id = rv.movie_id
		GROUP BY rv.movie_id, m.title
		HAVING MAX(rv.rating) = (SELECT MAX(rating) FROM reviews)
		ORDER BY rv.movie_id
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to query highest rated movies", zap.Error(err))
		return nil, fmt.Errorf("highest rated movies: %w", err)
	}
	defer rows.Close()

	var ratings []MovieRating
	for rows.Next() {
		var mr MovieRating
		if err := rows.Scan(&mr.MovieID, &mr.Title, &mr.Rating); err != nil {
			return nil, fmt.Errorf("scan movie rating row: %w", err)
		}
		ratings = append(ratings, mr)
	}

	return ratings, rows.Err()
}

// CountsByMovie returns review counts per movie, most reviewed first.
// Order among equal counts is not significant.
func (r *reviewRepository) CountsByMovie(ctx context.Context) ([]MovieReviewCount, error) {
	query := `
		SELECT rv.movie_id, m.title, COUNT(rv.review_id) AS reviews
		FROM reviews rv
		JOIN movies m ON m.movie_id = rv.movie_id
		GROUP BY rv.movie_id, m.title
		ORDER BY reviews DESC
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to query review counts by movie", zap.Error(err))
		return nil, fmt.Errorf("review counts by movie: %w", err)
	}
	defer rows.Close()

	var counts []MovieReviewCount
	for rows.Next() {
		var mc MovieReviewCount
		if err := rows.Scan(&mc.MovieID, &mc.Title, &mc.Reviews); err != nil {
			return nil, fmt.Errorf("scan review count row: %w", err)
		}
		counts = append(counts, mc)
	}

	return counts, rows.Err()
}
