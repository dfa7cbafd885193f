package matching

// Status is the screening decision derived from the match percentage.
type Status string

const (
	StatusShortlisted Status = "shortlisted"
	StatusLowPriority Status = "low_priority"
	StatusRejected    Status = "rejected"
)

// Decision thresholds over the integer match percentage. Boundaries belong
// to the higher band: 80 is shortlisted, 50 is low priority.
const (
	ShortlistThreshold   = 80
	LowPriorityThreshold = 50
)

func Classify(percentage int) Status {
	switch {
	case percentage >= ShortlistThreshold:
		return StatusShortlisted
	case percentage >= LowPriorityThreshold:
		return StatusLowPriority
	default:
		return StatusRejected
	}
}
