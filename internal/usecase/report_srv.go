package usecase

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/michelledlee/iRate-Database/internal/data/repository"
	"github.com/michelledlee/iRate-Database/internal/dto/response"

	"go.uber.org/zap"
)

type ReportService interface {
	// DailyReport gathers the prize winners for the given day plus the
	// engagement statistics.
	DailyReport(ctx context.Context, day time.Time) (*response.Report, error)

	// WriteReport prints the daily report as line-oriented text.
	WriteReport(ctx context.Context, w io.Writer, day time.Time) error
}

type reportService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewReportService(repo *repository.Repository, log *zap.Logger) ReportService {
	return &reportService{
		repo: repo,
		log:  log.With(zap.String("service", "report")),
	}
}

func (s *reportService) DailyReport(ctx context.Context, day time.Time) (*response.Report, error) {
	report := &response.Report{}

	mostEndorsed, err := s.repo.Endorsement.MostEndorsedReview(ctx, day)
	if err != nil {
		return nil, fmt.Errorf("most endorsed review: %w", err)
	}
	if mostEndorsed != nil {
		report.TicketWinner = &response.TicketWinner{
			CustomerID:   mostEndorsed.CustomerID.String(),
			ReviewID:     mostEndorsed.ReviewID.String(),
			Endorsements: mostEndorsed.Endorsements,
		}
	}

	topEndorser, err := s.repo.Endorsement.TopEndorser(ctx, day)
	if err != nil {
		return nil, fmt.Errorf("top endorser: %w", err)
	}
	if topEndorser != nil {
		report.ConcessionWinner = &response.ConcessionWinner{
			EndorserID:   topEndorser.EndorserID.String(),
			Endorsements: topEndorser.Endorsements,
		}
	}

	total, err := s.repo.Review.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("total reviews: %w", err)
	}
	report.TotalReviews = total

	highest, err := s.repo.Review.HighestRated(ctx)
	if err != nil {
		return nil, fmt.Errorf("highest rated movies: %w", err)
	}
	for _, mr := range highest {
		report.HighestRated = append(report.HighestRated, response.RatedMovie{
			MovieID: mr.MovieID.String(),
			Title:   mr.Title,
			Rating:  mr.Rating,
		})
	}

	counts, err := s.repo.Review.CountsByMovie(ctx)
	if err != nil {
		return nil, fmt.Errorf("review counts by movie: %w", err)
	}
	for _, mc := range counts {
		report.MostReviewed = append(report.MostReviewed, response.ReviewedMovie{
			MovieID: mc.MovieID.String(),
			Title:   mc.Title,
			Reviews: mc.Reviews,
		})
	}

	s.log.Info("Daily report built",
		zap.Time("day", day),
		zap.Int64("total_reviews", total),
		zap.Bool("ticket_winner", report.TicketWinner != nil),
		zap.Bool("concession_winner", report.ConcessionWinner != nil),
	)

	return report, nil
}

func (s *reportService) WriteReport(ctx context.Context, w io.Writer, day time.Time) error {
	report, err := s.DailyReport(ctx, day)
	if err != nil {
		return err
	}

	if report.TicketWinner != nil {
		fmt.Fprintf(w, "Selected winner of a free movie ticket is CustomerID: %s (%d endorsements on review %s)\n",
			report.TicketWinner.CustomerID, report.TicketWinner.Endorsements, report.TicketWinner.ReviewID)
	} else {
		fmt.Fprintln(w, "No review written today has endorsements; no movie ticket winner")
	}

	if report.ConcessionWinner != nil {
		fmt.Fprintf(w, "Selected winner of free concessions is EndorserID: %s (%d endorsements today)\n",
			report.ConcessionWinner.EndorserID, report.ConcessionWinner.Endorsements)
	} else {
		fmt.Fprintln(w, "Nobody endorsed more than one review today; no concessions winner")
	}

	fmt.Fprintf(w, "Total # of reviews: %d\n", report.TotalReviews)

	fmt.Fprintln(w, "Highest rated movies:")
	for _, m := range report.HighestRated {
		fmt.Fprintf(w, "%s (%s), %d\n", m.Title, m.MovieID, m.Rating)
	}

	fmt.Fprintln(w, "Movies with the most reviews:")
	for _, m := range report.MostReviewed {
		fmt.Fprintf(w, "%s (%s), %d\n", m.Title, m.MovieID, m.Reviews)
	}

	return nil
}
