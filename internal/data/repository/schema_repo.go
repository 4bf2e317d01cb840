package repository

import (
	"context"
	"fmt"

	"github.com/michelledlee/iRate-Database/pkg/database"

	"go.uber.org/zap"
)

type SchemaRepository interface {
	// Setup drops and recreates the five entity tables. Call once
	// before any other repository use.
	Setup(ctx context.Context) error
}

type schemaRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewSchemaRepository(db database.PgxIface, log *zap.Logger) SchemaRepository {
	return &schemaRepository{
		db:  db,
		log: log.With(zap.String("repository", "schema")),
	}
}

// Drop order is the reverse of creation so no table is dropped while
// another still references it.
var dropTables = []string{
	"endorsements",
	"reviews",
	"attendances",
	"movies",
	"customers",
}

// The business rules (attendance window, single review, self
// endorsement, per-movie cooldown) are deliberately NOT check
// constraints here; the repositories evaluate them before commit.
// Only keys, foreign keys, and cascades live in the schema.
var createTables = []struct {
	name string
	ddl  string
}{
	{"customers", `
		CREATE TABLE customers (
			customer_id uuid PRIMARY KEY,
			name        varchar(36) NOT NULL,
			email       varchar(36) NOT NULL,
			join_date   date NOT NULL
		)`},
	{"movies", `
		CREATE TABLE movies (
			movie_id uuid PRIMARY KEY,
			title    varchar(36) NOT NULL
		)`},
	{"attendances", `
		CREATE TABLE attendances (
			movie_id    uuid NOT NULL REFERENCES movies (movie_id) ON DELETE CASCADE,
			customer_id uuid NOT NULL REFERENCES customers (customer_id) ON DELETE CASCADE,
			attended_on date NOT NULL
		)`},
	{"reviews", `
		CREATE TABLE reviews (
			review_id   uuid NOT NULL UNIQUE,
			customer_id uuid NOT NULL REFERENCES customers (customer_id) ON DELETE CASCADE,
			movie_id    uuid NOT NULL REFERENCES movies (movie_id) ON DELETE CASCADE,
			review_date date NOT NULL,
			rating      int NOT NULL,
			review_text varchar(1000) NOT NULL,
			PRIMARY KEY (customer_id, movie_id, review_date)
		)`},
	{"endorsements", `
		CREATE TABLE endorsements (
			review_id   uuid NOT NULL REFERENCES reviews (review_id) ON DELETE CASCADE,
			endorser_id uuid NOT NULL REFERENCES customers (customer_id) ON DELETE CASCADE,
			endorsed_on date NOT NULL,
			PRIMARY KEY (review_id, endorser_id, endorsed_on)
		)`},
}

func (r *schemaRepository) Setup(ctx context.Context) error {
	for _, tbl := range dropTables {
		if _, err := r.db.Exec(ctx, "DROP TABLE IF EXISTS "+tbl); err != nil {
			return fmt.Errorf("drop table %s: %w", tbl, err)
		}
		r.log.Debug("Dropped table", zap.String("table", tbl))
	}

	for _, tbl := range createTables {
		if _, err := r.db.Exec(ctx, tbl.ddl); err != nil {
			return fmt.Errorf("create table %s: %w", tbl.name, err)
		}
		r.log.Info("Created entity table", zap.String("table", tbl.name))
	}

	return nil
}
