package match

// Classification is the outcome of comparing a candidate against a target.
// Values are ordered: Full outranks Partial outranks None.
type Classification int

const (
	// None means the candidate does not match the target.
	None Classification = iota
	// Partial means the candidate matches up to a leading or trailing word.
	Partial
	// Full means every compared field matched exactly after normalization.
	Full
)

func (c Classification) String() string {
	switch c {
	case Full:
		return "full"
	case Partial:
		return "partial"
	default:
		return "none"
	}
}

// weaker returns the weaker of two classifications. A release or song match
// is only as strong as its weakest field signal.
func weaker(a, b Classification) Classification {
	if a < b {
		return a
	}
	return b
}
