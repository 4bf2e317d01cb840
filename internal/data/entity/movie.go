package entity

import (
	"github.com/google/uuid"
)

type Movie struct {
	MovieID uuid.UUID `db:"movie_id"`
	Title   string    `db:"title"`
}
