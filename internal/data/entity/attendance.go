package entity

import (
	"time"

	"github.com/google/uuid"
)

// Attendance records a customer's visit to a movie on a date. Repeat
// visits are separate rows; there is no uniqueness constraint.
type Attendance struct {
	MovieID    uuid.UUID `db:"movie_id"`
	CustomerID uuid.UUID `db:"customer_id"`
	AttendedOn time.Time `db:"attended_on"`
}
