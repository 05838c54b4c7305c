package model

// LinkStatus is the lifecycle state of a video link
type LinkStatus string

const (
	StatusPending    LinkStatus = "pending"
	StatusProcessing LinkStatus = "processing"
	StatusDownloaded LinkStatus = "downloaded"
	StatusUploaded   LinkStatus = "uploaded"
	StatusFailed     LinkStatus = "failed"
)

// String returns the status name
func (s LinkStatus) String() string {
	return string(s)
}

// IsValid checks whether the status is a known enum value
func (s LinkStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusDownloaded, StatusUploaded, StatusFailed:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether no further pipeline transition leaves this status
func (s LinkStatus) IsTerminal() bool {
	return s == StatusUploaded || s == StatusFailed
}

// transitions is the fixed status graph: pending, processing, downloaded, uploaded
// in order, with failed reachable from every non-terminal state.
var transitions = map[LinkStatus][]LinkStatus{
	StatusPending:    {StatusProcessing, StatusFailed},
	StatusProcessing: {StatusDownloaded, StatusFailed},
	StatusDownloaded: {StatusUploaded, StatusFailed},
	StatusUploaded:   {},
	StatusFailed:     {},
}

// CanTransition reports whether moving from one status to the next is legal
func (s LinkStatus) CanTransition(next LinkStatus) bool {
	if s == next {
		return true
	}
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}
