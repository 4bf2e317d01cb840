package response

// IngestStats summarizes one bulk load run.
type IngestStats struct {
	Lines       int `json:"lines"`
	Malformed   int `json:"malformed"`
	Customers   int `json:"customers"`
	Movies      int `json:"movies"`
	Attendances int `json:"attendances"`
	Reviews     int `json:"reviews"`
	RowsSkipped int `json:"rows_skipped"`
}

// TicketWinner is the customer whose review of the day collected the
// most endorsements.
type TicketWinner struct {
	CustomerID   string `json:"customer_id"`
	ReviewID     string `json:"review_id"`
	Endorsements int64  `json:"endorsements"`
}

// ConcessionWinner is the customer who endorsed the most reviews today.
type ConcessionWinner struct {
	EndorserID   string `json:"endorser_id"`
	Endorsements int64  `json:"endorsements"`
}

type RatedMovie struct {
	MovieID string `json:"movie_id"`
	Title   string `json:"title"`
	Rating  int    `json:"rating"`
}

type ReviewedMovie struct {
	MovieID string `json:"movie_id"`
	Title   string `json:"title"`
	Reviews int64  `json:"reviews"`
}

// Report bundles everything the daily report prints.
type Report struct {
	TicketWinner     *TicketWinner     `json:"ticket_winner,omitempty"`
	ConcessionWinner *ConcessionWinner `json:"concession_winner,omitempty"`
	TotalReviews     int64             `json:"total_reviews"`
	HighestRated     []RatedMovie      `json:"highest_rated"`
	MostReviewed     []ReviewedMovie   `json:"most_reviewed"`
}
