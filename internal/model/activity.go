package model

import "time"

// ActivityMetric tracks login count and accumulated session minutes per
// user email. Metrics live in redis as one JSON blob, independent of the
// progress ledger.
type ActivityMetric struct {
	Email        string    `json:"email"`
	LoginCount   int       `json:"loginCount"`
	TotalMinutes float64   `json:"totalMinutes"`
	LastLogin    time.Time `json:"lastLogin"`
}

// OnlineWindow is how recent a login must be for the teacher view to show a
// student as online.
const OnlineWindow = 15 * time.Minute

// Online reports whether the metric's last login falls within the online
// window of now.
func (m ActivityMetric) Online(now time.Time) bool {
	if m.LastLogin.IsZero() {
		return false
	}
	return now.Sub(m.LastLogin) <= OnlineWindow
}
