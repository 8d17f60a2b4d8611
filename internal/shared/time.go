package shared

// Timestamp layouts used across the store. Invoice dates carry day
// precision so archive cutoffs compare lexicographically.
const (
	TimeLayout = "2006-01-02 15:04:05"
	DateLayout = "2006-01-02"
)
