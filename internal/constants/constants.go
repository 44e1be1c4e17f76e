package constants

import "time"

// Session / context keys
const (
	ContextKeyUserID  = "user_id"
	SessionCookieName = "hackmate_session"
)

// Join codes are 6 characters over an uppercase alphanumeric alphabet.
const (
	JoinCodeLength   = 6
	JoinCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// Bounded waits for one-shot reads. Reads that exceed these degrade to
// an absent/empty result instead of erroring.
const (
	ProjectFetchTimeout   = 3 * time.Second
	JoinCodeLookupTimeout = 5 * time.Second
)

// ActivityFeedLimit caps the live-activity snapshot to the most recent
// entries, newest first.
const ActivityFeedLimit = 50

// Default milestones are spaced at these fractions of project duration.
var MilestoneFractions = [3]float64{0.2, 0.7, 1.0}

const (
	MinPasswordLength   = 8
	MaxAIGeneratedTasks = 20
)
