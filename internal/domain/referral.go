package domain

import "time"

// Attribution is a last-touch referral record: the agent whose link the
// visitor followed and when the click was captured. A newer click overwrites
// an older one.
type Attribution struct {
	AgentID    string    `json:"agent_id"`
	CapturedAt time.Time `json:"captured_at"`
}

// AttributionWindow is how long after the click an order is still credited to
// the referring agent.
const AttributionWindow = 24 * time.Hour

// Expired reports whether the attribution is outside its window at t.
func (a Attribution) Expired(t time.Time) bool {
	return t.Sub(a.CapturedAt) > AttributionWindow
}
