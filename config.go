package trinitycore

import "os"

// names of the environment variables consulted at startup
const (
	// TraceEnv turns network trace logging on from process start, the
	// environment equivalent of calling EnableLogging(true)
	TraceEnv = "TC_NETWORK_TRACE"
)

// initConfig initializes settings from the current environment
func initConfig() {
	if v, ok := os.LookupEnv(TraceEnv); ok && v != "" && v != "0" {
		logging = true
	}
}
