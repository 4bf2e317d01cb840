package entity

import (
	"time"

	"github.com/google/uuid"
)

type Customer struct {
	CustomerID uuid.UUID `db:"customer_id"`
	Name       string    `db:"name"`
	Email      string    `db:"email"`
	JoinDate   time.Time `db:"join_date"`
}
