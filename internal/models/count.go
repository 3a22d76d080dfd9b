package models

// Count is the result of a job-count extraction: either a known
// non-negative integer or unknown. Failure is carried in the value itself
// rather than as an error, so a missed extraction is data, not a fault.
type Count struct {
	Value int  `json:"value"`
	Known bool `json:"known"`
}

// NewCount returns a known count. Negative values are treated as unknown
// since a result count can never be negative.
func NewCount(n int) Count {
	if n < 0 {
		return Count{}
	}
	return Count{Value: n, Known: true}
}

// UnknownCount returns the unknown sentinel.
func UnknownCount() Count {
	return Count{}
}
