package waitlist

// ReasonWeeklyCapReached is the rejection reason when a week is full
const ReasonWeeklyCapReached = "weekly_cap_reached"

// StatusResponse describes current capacity for the ongoing ISO week
type StatusResponse struct {
	Total             int    `json:"total"`
	WeeklyCap         int    `json:"weekly_cap"`
	WeekKey           string `json:"week_key"`
	CurrentWeekCount  int    `json:"current_week_count"`
	RemainingThisWeek int    `json:"remaining_this_week"`
	NextOpenISO       string `json:"next_open_iso"`
	NextOpenHuman     string `json:"next_open_human"`
}

// EnqueueResponse is the outcome of one signup attempt. Accepted responses
// carry the 1-based position within the week; rejected responses carry the
// reason and the week's current count instead.
type EnqueueResponse struct {
	Accepted          bool   `json:"accepted"`
	Reason            string `json:"reason,omitempty"`
	Total             int    `json:"total"`
	Position          int    `json:"position,omitempty"`
	WeeklyCap         int    `json:"weekly_cap"`
	WeekKey           string `json:"week_key"`
	CurrentWeekCount  *int   `json:"current_week_count,omitempty"`
	RemainingThisWeek int    `json:"remaining_this_week"`
}

// ResetResponse wraps the state resulting from an admin reset
type ResetResponse struct {
	OK    bool   `json:"ok"`
	State *State `json:"state"`
}

// SetCapResponse acknowledges an accepted cap change
type SetCapResponse struct {
	OK  bool `json:"ok"`
	Cap int  `json:"cap"`
}

// ErrInvalidCap is the error code returned for a rejected cap change
const ErrInvalidCap = "invalid_cap"
