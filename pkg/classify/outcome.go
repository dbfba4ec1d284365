package classify

// Outcome is the result of a flag claim as reported by the platform.
// The zero value is Unknown.
type Outcome int

const (
	// Unknown means no notification matched a known message.
	Unknown Outcome = iota
	// FlagNotFound means the submitted flag does not exist.
	FlagNotFound
	// AlreadyClaimed means the flag was claimed before by this player.
	AlreadyClaimed
	// ClaimedForPoints means the claim succeeded.
	ClaimedForPoints
	// DiscoveryRequired means a service of the target must be discovered
	// before its flags can be claimed.
	DiscoveryRequired
	// AccessDenied means the player has no access to the target's network.
	AccessDenied
)

// Outcomes lists every Outcome, Unknown first.
func Outcomes() []Outcome {
	return []Outcome{Unknown, FlagNotFound, AlreadyClaimed, ClaimedForPoints, DiscoveryRequired, AccessDenied}
}

// String returns the stable tag used in logs and metrics.
func (o Outcome) String() string {
	switch o {
	case FlagNotFound:
		return "flag-not-found"
	case AlreadyClaimed:
		return "already-claimed"
	case ClaimedForPoints:
		return "claimed-for-points"
	case DiscoveryRequired:
		return "service-discovery-required"
	case AccessDenied:
		return "access-denied"
	default:
		return "unknown"
	}
}

// Accepted reports whether the platform credited the claim.
func (o Outcome) Accepted() bool {
	return o == ClaimedForPoints
}
