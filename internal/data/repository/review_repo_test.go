package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/michelledlee/iRate-Database/internal/data/entity"
	"github.com/michelledlee/iRate-Database/internal/rules"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// The highest-rated report is a tie set: every movie whose best rating
// equals the best rating across all reviews, not a single winner.
func TestHighestRatedSelectsGlobalMaxTieSet(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	first := uuid.MustParse("11111111-1111-1111-1111-111111111111")
	second := uuid.MustParse("22222222-2222-2222-2222-222222222222")

	mock.ExpectQuery(`HAVING MAX\(rv\.rating\) = \(SELECT MAX\(rating\) FROM reviews\)`).
		WillReturnRows(pgxmock.NewRows([]string{"movie_id", "title", "top_rating"}).
			AddRow(first, "Arrival", 5).
			AddRow(second, "Dune", 5))

	repo := NewReviewRepository(mock, zap.NewNop(), 7)
	got, err := repo.HighestRated(context.Background())
	require.NoError(t, err)

	require.Len(t, got, 2)
	assert.Equal(t, MovieRating{MovieID: first, Title: "Arrival", Rating: 5}, got[0])
	assert.Equal(t, MovieRating{MovieID: second, Title: "Dune", Rating: 5}, got[1])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReviewDeleteNotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	id := uuid.MustParse("33333333-3333-3333-3333-333333333333")
	mock.ExpectExec(`DELETE FROM reviews WHERE review_id = \$1`).
		WithArgs(id).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	repo := NewReviewRepository(mock, zap.NewNop(), 7)
	assert.ErrorIs(t, repo.Delete(context.Background(), id), ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// A review without a qualifying attendance must roll back before the
// insert is even attempted.
func TestReviewCreateRollsBackWithoutAttendance(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	review := &entity.Review{
		ReviewID:   uuid.MustParse("44444444-4444-4444-4444-444444444444"),
		CustomerID: uuid.MustParse("55555555-5555-5555-5555-555555555555"),
		MovieID:    uuid.MustParse("66666666-6666-6666-6666-666666666666"),
		ReviewDate: time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC),
		Rating:     4,
		Text:       "bagus",
	}

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT attended_on FROM attendances`).
		WithArgs(review.CustomerID, review.MovieID).
		WillReturnRows(pgxmock.NewRows([]string{"attended_on"}))
	mock.ExpectRollback()

	repo := NewReviewRepository(mock, zap.NewNop(), 7)
	err = repo.Create(context.Background(), review)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConstraint)

	var cerr *ConstraintError
	require.True(t, errors.As(err, &cerr))
	assert.Equal(t, rules.RuleVerifyAttendance, cerr.Rule)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// A unique violation from the insert surfaces as ErrDuplicateKey and
// the transaction rolls back.
func TestReviewCreateMapsDuplicateKey(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	attended := time.Date(2024, 3, 7, 0, 0, 0, 0, time.UTC)
	review := &entity.Review{
		ReviewID:   uuid.MustParse("44444444-4444-4444-4444-444444444444"),
		CustomerID: uuid.MustParse("55555555-5555-5555-5555-555555555555"),
		MovieID:    uuid.MustParse("66666666-6666-6666-6666-666666666666"),
		ReviewDate: time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC),
		Rating:     4,
		Text:       "bagus",
	}

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT attended_on FROM attendances`).
		WithArgs(review.CustomerID, review.MovieID).
		WillReturnRows(pgxmock.NewRows([]string{"attended_on"}).AddRow(attended))
	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs(review.CustomerID, review.MovieID).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectExec(`INSERT INTO reviews`).
		WithArgs(review.ReviewID, review.CustomerID, review.MovieID,
			review.ReviewDate, review.Rating, review.Text).
		WillReturnError(&pgconn.PgError{Code: pgUniqueViolation})
	mock.ExpectRollback()

	repo := NewReviewRepository(mock, zap.NewNop(), 7)
	err = repo.Create(context.Background(), review)

	assert.ErrorIs(t, err, ErrDuplicateKey)
	assert.NoError(t, mock.ExpectationsWereMet())
}
