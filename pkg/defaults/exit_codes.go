package defaults

// Exit codes for the CLI.
const (
	ExitSuccess         = 0 // Command completed, flag claimed
	ExitClaimRejected   = 1 // Platform refused the flag
	ExitUserError       = 2 // Invalid arguments or configuration
	ExitNetworkError    = 3 // Network/connection failure
	ExitInternalError   = 4 // Unexpected page layout or internal error
	ExitUnknownResponse = 5 // Claim response matched no known notification
)
