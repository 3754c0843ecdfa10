package debug

// IsDebugDumpRequests reports whether outgoing requests and their responses
// should be dumped to the debug log.
func IsDebugDumpRequests() bool {
	return isDebugDumpRequestsSet()
}

// IsDebugShowCredentials reports whether secrets may appear in logs.
func IsDebugShowCredentials() bool {
	return isDebugShowCredentialsSet()
}
