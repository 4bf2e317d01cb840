package entity

import (
	"time"

	"github.com/google/uuid"
)

// Endorsement is a customer's vote that a review is helpful.
type Endorsement struct {
	ReviewID   uuid.UUID `db:"review_id"`
	EndorserID uuid.UUID `db:"endorser_id"`
	EndorsedOn time.Time `db:"endorsed_on"`
}
