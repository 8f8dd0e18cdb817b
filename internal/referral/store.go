package referral

import (
	"context"
	"errors"
	"regexp"
)

// Store keeps the last-touch referral attribution for a session. There is a
// single write path and no cross-session sharing; concurrent writes for the
// same session resolve last-write-wins.
type Store interface {
	// Record validates agentID and stores it with the current capture time,
	// overwriting any prior attribution.
	Record(ctx context.Context, sessionID, agentID string) error
	// Active returns the attributed agent id if a record exists and is still
	// inside its window. An expired record is deleted on read.
	Active(ctx context.Context, sessionID string) (string, error)
	// Clear deletes the attribution. Called after successful order placement
	// so one click cannot credit multiple unrelated orders.
	Clear(ctx context.Context, sessionID string) error
}

var (
	// ErrInvalidAgentID is returned by Record for ids that are not UUIDs.
	ErrInvalidAgentID = errors.New("invalid referral agent id")
	// ErrNoActiveReferral is returned by Active when no unexpired record exists.
	ErrNoActiveReferral = errors.New("no active referral")
)

var agentIDPattern = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)

// ValidAgentID reports whether s is a hyphenated UUID, case-insensitive.
func ValidAgentID(s string) bool {
	return agentIDPattern.MatchString(s)
}
