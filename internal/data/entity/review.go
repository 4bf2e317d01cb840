package entity

import (
	"time"

	"github.com/google/uuid"
)

type Review struct {
	ReviewID   uuid.UUID `db:"review_id"`
	CustomerID uuid.UUID `db:"customer_id"`
	MovieID    uuid.UUID `db:"movie_id"`
	ReviewDate time.Time `db:"review_date"`
	Rating     int       `db:"rating"` // 1-5
	Text       string    `db:"review_text"`
}
