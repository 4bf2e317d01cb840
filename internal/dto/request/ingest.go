package request

// IngestRecord is one parsed line of the tab-separated bulk load file.
// Field order in the file: customer name, customer email, customer ID,
// movie title, movie ID, review ID, rating, review text, date.
type IngestRecord struct {
	CustomerName  string `validate:"required,max=36"`
	CustomerEmail string `validate:"required,email,max=36"`
	CustomerID    string `validate:"required,uuid"`
	MovieTitle    string `validate:"required,max=36"`
	MovieID       string `validate:"required,uuid"`
	ReviewID      string `validate:"required,uuid"`
	Rating        int    `validate:"min=1,max=5"`
	ReviewText    string `validate:"required,max=1000"`
	Date          string `validate:"required,datetime=2006-01-02"`
}

// EndorseRequest asks for a direct endorsement insert.
type EndorseRequest struct {
	ReviewID   string `validate:"required,uuid"`
	EndorserID string `validate:"required,uuid"`
	Date       string `validate:"omitempty,datetime=2006-01-02"`
}
