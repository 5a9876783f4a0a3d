package sim

// Stage names referenced by the reporter.
const (
	StageWhitelist = "Checking whitelist status"
	StageNodeConf  = "Fetching node configuration"
	StageHeartbeat = "Sending heartbeat to validators"
)

// StatusIncomplete is the only status a session summary reports.
const StatusIncomplete = "INCOMPLETE"

var stages = []string{
	"Initializing Naoris Protocol connection",
	"Validating device credentials",
	StageWhitelist,
	"Connecting to protection network",
	StageNodeConf,
	"Preparing ping sequence",
	StageHeartbeat,
	"Initiating message production",
	"Activating protection layer",
	"Synchronizing with network nodes",
	"Updating security parameters",
	"Verifying protection status",
	"Finalizing session",
}

var errorCatalog = []string{
	"Network latency detected - retrying",
	"Device hash verification failed",
	"Whitelist API temporarily unavailable",
	"Protection activation timeout",
	"Node synchronization error",
	"Invalid response from validator",
	"Connection to protection network lost",
	"Rate limit exceeded on ping endpoint",
}

// Stages returns the operation stages in declared order.
// The returned slice is a copy.
func Stages() []string {
	return append([]string(nil), stages...)
}

// ErrorCatalog returns the synthetic error messages.
// The returned slice is a copy.
func ErrorCatalog() []string {
	return append([]string(nil), errorCatalog...)
}
