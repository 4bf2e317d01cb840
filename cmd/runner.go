package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/michelledlee/iRate-Database/internal/dto/request"
	"github.com/michelledlee/iRate-Database/internal/wire"
)

const usage = `usage: irate <command> [args]

commands:
  setup                                  drop and recreate the entity tables
  load <file>                            bulk load a tab-separated data file
  report [yyyy-mm-dd]                    print prize winners and statistics
  count                                  print row counts per table
  endorse <reviewID> <endorserID> [date] endorse a review
  delete-customer <id>                   delete a customer and everything referencing it
  delete-movie <id>                      delete a movie and everything referencing it
  delete-review <id>                     delete a review and its endorsements
`

// Run dispatches a CLI command against the wired services. Returns a
// process exit code; per-row ingest failures only log and never fail
// the command.
func Run(app *wire.App, args []string) int {
	if len(args) < 1 {
		fmt.Fprint(os.Stderr, usage)
		return 1
	}

	ctx := context.Background()
	svc := app.Service

	fail := func(err error) int {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}

	switch args[0] {
	case "setup":
		if err := svc.Admin.Setup(ctx); err != nil {
			return fail(err)
		}
		fmt.Println("Database schema created")

	case "load":
		if len(args) != 2 {
			fmt.Fprint(os.Stderr, usage)
			return 1
		}
		stats, err := svc.Ingest.LoadFile(ctx, args[1])
		if err != nil {
			return fail(err)
		}
		fmt.Printf("Loaded %d lines: %d customers, %d movies, %d attendances, %d reviews (%d rows skipped, %d malformed lines)\n",
			stats.Lines, stats.Customers, stats.Movies, stats.Attendances, stats.Reviews, stats.RowsSkipped, stats.Malformed)

	case "report":
		day := time.Now()
		if len(args) == 2 {
			parsed, err := time.Parse("2006-01-02", args[1])
			if err != nil {
				return fail(fmt.Errorf("invalid report date %s: %w", args[1], err))
			}
			day = parsed
		}
		if err := svc.Report.WriteReport(ctx, os.Stdout, day); err != nil {
			return fail(err)
		}

	case "count":
		counts, err := svc.Admin.Counts(ctx)
		if err != nil {
			return fail(err)
		}
		for _, c := range counts {
			fmt.Printf("Table %s : count: %d\n", c.Entity, c.Rows)
		}

	case "endorse":
		if len(args) != 3 && len(args) != 4 {
			fmt.Fprint(os.Stderr, usage)
			return 1
		}
		req := &request.EndorseRequest{ReviewID: args[1], EndorserID: args[2]}
		if len(args) == 4 {
			req.Date = args[3]
		}
		if err := svc.Admin.Endorse(ctx, req); err != nil {
			return fail(err)
		}
		fmt.Println("Endorsement recorded")

	case "delete-customer":
		if len(args) != 2 {
			fmt.Fprint(os.Stderr, usage)
			return 1
		}
		if err := svc.Admin.DeleteCustomer(ctx, args[1]); err != nil {
			return fail(err)
		}
		fmt.Println("Customer deleted")

	case "delete-movie":
		if len(args) != 2 {
			fmt.Fprint(os.Stderr, usage)
			return 1
		}
		if err := svc.Admin.DeleteMovie(ctx, args[1]); err != nil {
			return fail(err)
		}
		fmt.Println("Movie deleted")

	case "delete-review":
		if len(args) != 2 {
			fmt.Fprint(os.Stderr, usage)
			return 1
		}
		if err := svc.Admin.DeleteReview(ctx, args[1]); err != nil {
			return fail(err)
		}
		fmt.Println("Review deleted")

	default:
		fmt.Fprint(os.Stderr, usage)
		return 1
	}

	return 0
}
