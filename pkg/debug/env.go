package debug

import "os"

const (
	DebugDumpRequestsKey    = "DEBUG_DUMP_REQUESTS"
	DebugShowCredentialsKey = "DEBUG_SHOW_CREDENTIALS"
)

func isDebugDumpRequestsSet() bool {
	return os.Getenv(DebugDumpRequestsKey) == "true"
}

func isDebugShowCredentialsSet() bool {
	return os.Getenv(DebugShowCredentialsKey) == "true"
}
