package search

// Result is the standard envelope list endpoints return.
type Result[T any] struct {
	Items      []T `json:"items"`
	TotalCount int `json:"total_count"`
}
