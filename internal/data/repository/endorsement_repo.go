package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/michelledlee/iRate-Database/internal/data/entity"
	"github.com/michelledlee/iRate-Database/internal/rules"
	"github.com/michelledlee/iRate-Database/pkg/database"
	"github.com/michelledlee/iRate-Database/pkg/datemath"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// ReviewEndorsements is a review together with how often it was
// endorsed, plus the authoring customer (the free-ticket winner).
type ReviewEndorsements struct {
	ReviewID     uuid.UUID
	CustomerID   uuid.UUID
	Endorsements int64
}

// EndorserCount is an endorser together with their endorsements on one day.
type EndorserCount struct {
	EndorserID   uuid.UUID
	Endorsements int64
}

type EndorsementRepository interface {
	Create(ctx context.Context, endorsement *entity.Endorsement) error
	Count(ctx context.Context) (int64, error)

	// Prize queries
	MostEndorsedReview(ctx context.Context, day time.Time) (*ReviewEndorsements, error)
	TopEndorser(ctx context.Context, day time.Time) (*EndorserCount, error)
}

type endorsementRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewEndorsementRepository(db database.PgxIface, log *zap.Logger) EndorsementRepository {
	return &endorsementRepository{
		db:  db,
		log: log.With(zap.String("repository", "endorsement")),
	}
}

// Create inserts an endorsement after checking the self-endorsement and
// per-movie cooldown rules inside the insert transaction.
func (r *endorsementRepository) Create(ctx context.Context, endorsement *entity.Endorsement) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin endorsement insert: %w", err)
	}
	defer tx.Rollback(ctx)

	checks := &rulesStore{q: tx}

	ok, err := rules.IsValidEndorsement(ctx, checks, endorsement.EndorserID, endorsement.ReviewID)
	if err != nil {
		return fmt.Errorf("check endorsement of review %s: %w", endorsement.ReviewID.String(), err)
	}
	if !ok {
		r.log.Warn("Endorsement rejected: customer endorsing own review or review missing",
			zap.String("review_id", endorsement.ReviewID.String()),
			zap.String("endorser_id", endorsement.EndorserID.String()),
		)
		return &ConstraintError{Rule: rules.RuleIsValidEndorsement, Key: endorsement.ReviewID.String()}
	}

	ok, err = rules.EndorsementCooldown(ctx, checks, endorsement.ReviewID, endorsement.EndorserID, endorsement.EndorsedOn)
	if err != nil {
		return fmt.Errorf("check endorsement cooldown for review %s: %w", endorsement.ReviewID.String(), err)
	}
	if !ok {
		r.log.Warn("Endorsement rejected: movie already endorsed that day",
			zap.String("review_id", endorsement.ReviewID.String()),
			zap.String("endorser_id", endorsement.EndorserID.String()),
			zap.Time("endorsed_on", endorsement.EndorsedOn),
		)
		return &ConstraintError{Rule: rules.RuleEndorsementCooldown, Key: endorsement.ReviewID.String()}
	}

	query := `
		INSERT INTO endorsements (review_id, endorser_id, endorsed_on)
		VALUES ($1, $2, $3)
	`

	_, err = tx.Exec(ctx, query,
		endorsement.ReviewID,
		endorsement.EndorserID,
		endorsement.EndorsedOn,
	)

	if err != nil {
		return fmt.Errorf("create endorsement of review %s by %s: %w",
			endorsement.ReviewID.String(), endorsement.EndorserID.String(), mapPgError(err))
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit endorsement of review %s: %w", endorsement.ReviewID.String(), err)
	}

	return nil
}

func (r *endorsementRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM endorsements`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count endorsements: %w", err)
	}
	return count, nil
}

// MostEndorsedReview returns the review written on the given day with
// the most endorsements. Ties break toward the lowest review ID so the
// winner is deterministic. Returns (nil, nil) when no review qualifies.
func (r *endorsementRepository) MostEndorsedReview(ctx context.Context, day time.Time) (*ReviewEndorsements, error) {
	query := `
		SELECT rv.review_id, rv.customer_id, COUNT(e.review_id) AS endorsements
		FROM endorsements e
		JOIN reviews rv ON rv.review_id = e.review_id
		WHERE rv.review_date = $1
		GROUP BY rv.review_id, rv.customer_id
		ORDER BY endorsements DESC, rv.review_id ASC
		LIMIT 1
	`

	var winner ReviewEndorsements
	err := r.db.QueryRow(ctx, query, datemath.Day(day)).Scan(
		&winner.ReviewID,
		&winner.CustomerID,
		&winner.Endorsements,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to query most endorsed review",
			zap.Error(err),
			zap.Time("day", day),
		)
		return nil, fmt.Errorf("most endorsed review on %s: %w", day.Format("2006-01-02"), err)
	}

	return &winner, nil
}

// TopEndorser returns the customer with the most endorsements on the
// given day, counting only customers with more than one. Same
// lowest-ID tie-break. Returns (nil, nil) when nobody qualifies.
func (r *endorsementRepository) TopEndorser(ctx context.Context, day time.Time) (*EndorserCount, error) {
	query := `
		SELECT endorser_id, COUNT(*) AS endorsements
		FROM endorsements
		WHERE endorsed_on = $1
		GROUP BY endorser_id
		HAVING COUNT(*) > 1
		ORDER BY endorsements DESC, endorser_id ASC
		LIMIT 1
	`

	var winner EndorserCount
	err := r.db.QueryRow(ctx, query, datemath.Day(day)).Scan(
		&winner.EndorserID,
		&winner.Endorsements,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to query top endorser",
			zap.Error(err),
			zap.Time("day", day),
		)
		return nil, fmt.Errorf("top endorser on %s: %w", day.Format("2006-01-02"), err)
	}

	return &winner, nil
}
