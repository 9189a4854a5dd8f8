package webpush

// Outcome classifies the result of delivering one message to one subscription.
type Outcome int

const (
	// OutcomeDelivered means the push service accepted the message (2xx).
	OutcomeDelivered Outcome = iota + 1
	// OutcomeExpired means the push service reported the subscription gone
	// (404 or 410); the subscription should be removed from storage.
	OutcomeExpired
	// OutcomeTransient covers every other failure: non-success statuses,
	// network errors, timeouts, and local validation or crypto failures.
	// The subscription is kept for the next broadcast cycle.
	OutcomeTransient
)

// String returns the outcome name.
func (o Outcome) String() string {
	switch o {
	case OutcomeDelivered:
		return "delivered"
	case OutcomeExpired:
		return "expired"
	case OutcomeTransient:
		return "transient"
	default:
		return "unknown"
	}
}

// Summary aggregates delivery outcomes across one broadcast.
type Summary struct {
	Delivered int
	Expired   int
	Transient int
}

// Total returns the number of subscriptions the broadcast attempted.
func (s Summary) Total() int {
	return s.Delivered + s.Expired + s.Transient
}

func (s *Summary) add(o Outcome) {
	switch o {
	case OutcomeDelivered:
		s.Delivered++
	case OutcomeExpired:
		s.Expired++
	default:
		s.Transient++
	}
}
