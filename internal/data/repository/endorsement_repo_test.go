package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/michelledlee/iRate-Database/internal/data/entity"
	"github.com/michelledlee/iRate-Database/internal/rules"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// The free-ticket winner is picked among reviews written that day and
// ties break toward the lowest review ID, so the ordering clause is
// part of the contract.
func TestMostEndorsedReviewTieBreaksOnLowestID(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	day := time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC)
	reviewID := uuid.MustParse("11111111-1111-1111-1111-111111111111")
	customerID := uuid.MustParse("22222222-2222-2222-2222-222222222222")

	mock.ExpectQuery(`WHERE rv\.review_date = \$1 .* ORDER BY endorsements DESC, rv\.review_id ASC LIMIT 1`).
		WithArgs(day).
		WillReturnRows(pgxmock.NewRows([]string{"review_id", "customer_id", "endorsements"}).
			AddRow(reviewID, customerID, int64(3)))

	repo := NewEndorsementRepository(mock, zap.NewNop())
	winner, err := repo.MostEndorsedReview(context.Background(), day)
	require.NoError(t, err)

	require.NotNil(t, winner)
	assert.Equal(t, reviewID, winner.ReviewID)
	assert.Equal(t, customerID, winner.CustomerID)
	assert.Equal(t, int64(3), winner.Endorsements)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMostEndorsedReviewNoWinner(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	day := time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`WHERE rv\.review_date = \$1`).
		WithArgs(day).
		WillReturnError(pgx.ErrNoRows)

	repo := NewEndorsementRepository(mock, zap.NewNop())
	winner, err := repo.MostEndorsedReview(context.Background(), day)

	assert.NoError(t, err)
	assert.Nil(t, winner)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// Concessions require more than one endorsement on the day; a single
// endorsement never wins, which the HAVING clause enforces.
func TestTopEndorserRequiresMoreThanOne(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	day := time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC)
	endorserID := uuid.MustParse("33333333-3333-3333-3333-333333333333")

	mock.ExpectQuery(`HAVING COUNT\(\*\) > 1 ORDER BY endorsements DESC, endorser_id ASC LIMIT 1`).
		WithArgs(day).
		WillReturnRows(pgxmock.NewRows([]string{"endorser_id", "endorsements"}).
			AddRow(endorserID, int64(2)))

	repo := NewEndorsementRepository(mock, zap.NewNop())
	winner, err := repo.TopEndorser(context.Background(), day)
	require.NoError(t, err)

	require.NotNil(t, winner)
	assert.Equal(t, endorserID, winner.EndorserID)
	assert.Equal(t, int64(2), winner.Endorsements)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTopEndorserNoWinner(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	day := time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`HAVING COUNT\(\*\) > 1`).
		WithArgs(day).
		WillReturnError(pgx.ErrNoRows)

	repo := NewEndorsementRepository(mock, zap.NewNop())
	winner, err := repo.TopEndorser(context.Background(), day)

	assert.NoError(t, err)
	assert.Nil(t, winner)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// Endorsing the same movie twice on one day rolls back inside the
// insert transaction.
func TestEndorsementCreateRollsBackOnCooldown(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	day := time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC)
	endorsement := &entity.Endorsement{
		ReviewID:   uuid.MustParse("11111111-1111-1111-1111-111111111111"),
		EndorserID: uuid.MustParse("33333333-3333-3333-3333-333333333333"),
		EndorsedOn: day,
	}
	authorID := uuid.MustParse("22222222-2222-2222-2222-222222222222")
	movieID := uuid.MustParse("44444444-4444-4444-4444-444444444444")

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT customer_id FROM reviews WHERE review_id = \$1`).
		WithArgs(endorsement.ReviewID).
		WillReturnRows(pgxmock.NewRows([]string{"customer_id"}).AddRow(authorID))
	mock.ExpectQuery(`SELECT movie_id FROM reviews WHERE review_id = \$1`).
		WithArgs(endorsement.ReviewID).
		WillReturnRows(pgxmock.NewRows([]string{"movie_id"}).AddRow(movieID))
	mock.ExpectQuery(`SELECT e\.endorsed_on FROM endorsements e`).
		WithArgs(movieID, endorsement.EndorserID).
		WillReturnRows(pgxmock.NewRows([]string{"endorsed_on"}).AddRow(day))
	mock.ExpectRollback()

	repo := NewEndorsementRepository(mock, zap.NewNop())
	err = repo.Create(context.Background(), endorsement)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConstraint)

	var cerr *ConstraintError
	require.True(t, errors.As(err, &cerr))
	assert.Equal(t, rules.RuleEndorsementCooldown, cerr.Rule)
	assert.NoError(t, mock.ExpectationsWereMet())
}
