package sortby

// Strategy selects the result ordering.
type Strategy string

// Sort strategy constants.
const (
	// Relevance orders by composite rating/popularity score, descending.
	Relevance Strategy = "relevance"
	Rating    Strategy = "rating"
	// Distance orders ascending; valid only when coordinates are resolved.
	Distance Strategy = "distance"
	Name     Strategy = "name"
)

// IsValid checks if the strategy is one of the supported values.
func (s Strategy) IsValid() bool {
	return s == Relevance || s == Rating || s == Distance || s == Name
}
