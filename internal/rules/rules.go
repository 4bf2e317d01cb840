// Package rules holds the insert-time business rules for reviews and
// endorsements. Each rule is a pure predicate over a Store read-handle;
// the repository layer evaluates them inside the same transaction that
// performs the insert, so a rule always sees the snapshot the row will
// commit against.
package rules

import (
	"context"
	"time"

	"github.com/michelledlee/iRate-Database/pkg/datemath"

	"github.com/google/uuid"
)

// Rule names reported in constraint violations.
const (
	RuleVerifyAttendance    = "verifyAttendance"
	RuleIsOnlyReview        = "isOnlyReview"
	RuleIsValidEndorsement  = "isValidEndorsement"
	RuleEndorsementCooldown = "endorsementCooldown"
)

// Store is the read-handle the predicates evaluate against. The
// repository provides a transaction-scoped implementation.
type Store interface {
	// AttendanceDates returns every date the customer attended the movie.
	AttendanceDates(ctx context.Context, customerID, movieID uuid.UUID) ([]time.Time, error)

	// HasReview reports whether the customer already reviewed the movie.
	HasReview(ctx context.Context, customerID, movieID uuid.UUID) (bool, error)

	// ReviewAuthor returns the customer who wrote the review, with
	// found=false when the review does not exist.
	ReviewAuthor(ctx context.Context, reviewID uuid.UUID) (uuid.UUID, bool, error)

	// ReviewMovie returns the movie the review is about, with
	// found=false when the review does not exist.
	ReviewMovie(ctx context.Context, reviewID uuid.UUID) (uuid.UUID, bool, error)

	// LastEndorsement returns the most recent date the endorser endorsed
	// any review of the movie, with found=false when they never have.
	LastEndorsement(ctx context.Context, endorserID, movieID uuid.UUID) (time.Time, bool, error)
}

// VerifyAttendance reports whether the customer attended the movie no
// more than windowDays before reviewDate. Every attendance row for the
// pair is considered; any qualifying visit passes.
func VerifyAttendance(ctx context.Context, s Store, customerID, movieID uuid.UUID, reviewDate time.Time, windowDays int) (bool, error) {
	dates, err := s.AttendanceDates(ctx, customerID, movieID)
	if err != nil {
		return false, err
	}

	for _, attended := range dates {
		if datemath.WithinDays(attended, reviewDate, windowDays) {
			return true, nil
		}
	}

	return false, nil
}

// IsOnlyReview reports whether this would be the customer's first
// review of the movie. One review ever per (customer, movie) pair.
func IsOnlyReview(ctx context.Context, s Store, customerID, movieID uuid.UUID) (bool, error) {
	exists, err := s.HasReview(ctx, customerID, movieID)
	if err != nil {
		return false, err
	}
	return !exists, nil
}

// IsValidEndorsement reports whether the endorser may endorse the
// review. A customer cannot endorse their own review; endorsing a
// review that does not exist is likewise invalid.
func IsValidEndorsement(ctx context.Context, s Store, endorserID, reviewID uuid.UUID) (bool, error) {
	author, found, err := s.ReviewAuthor(ctx, reviewID)
	if err != nil {
		return false, err
	}
	if !found {
		return false, nil
	}
	return author != endorserID, nil
}

// EndorsementCooldown reports whether the endorser may endorse a review
// of the movie behind reviewID on the given date. An endorser gets one
// endorsement per movie per day, keyed by movie rather than review.
// A customer with no prior endorsement of the movie is always allowed;
// absence counts as "long ago", never as a rejection.
func EndorsementCooldown(ctx context.Context, s Store, reviewID, endorserID uuid.UUID, date time.Time) (bool, error) {
	movieID, found, err := s.ReviewMovie(ctx, reviewID)
	if err != nil {
		return false, err
	}
	if !found {
		return false, nil
	}

	last, found, err := s.LastEndorsement(ctx, endorserID, movieID)
	if err != nil {
		return false, err
	}
	if !found {
		return true, nil
	}

	// Same-day repeat on the same movie is rejected, the day after is fine.
	return datemath.Day(last).Before(datemath.Day(date)), nil
}
