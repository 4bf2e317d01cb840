package response

// EntityCount is the row count of one entity table.
type EntityCount struct {
	Entity string `json:"entity"`
	Rows   int64  `json:"rows"`
}
