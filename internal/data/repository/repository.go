package repository

import (
	"github.com/michelledlee/iRate-Database/pkg/database"
	"github.com/michelledlee/iRate-Database/pkg/utils"

	"go.uber.org/zap"
)

type Repository struct {
	Schema      SchemaRepository
	Customer    CustomerRepository
	Movie       MovieRepository
	Attendance  AttendanceRepository
	Review      ReviewRepository
	Endorsement EndorsementRepository
}

func NewRepository(db database.PgxIface, config *utils.Config, log *zap.Logger) *Repository {
	return &Repository{
		Schema:      NewSchemaRepository(db, log),
		Customer:    NewCustomerRepository(db, log),
		Movie:       NewMovieRepository(db, log),
		Attendance:  NewAttendanceRepository(db, log),
		Review:      NewReviewRepository(db, log, config.Rules.ReviewWindowDays),
		Endorsement: NewEndorsementRepository(db, log),
	}
}
