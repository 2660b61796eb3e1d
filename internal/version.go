package internal

// Set at build time with -ldflags "-X github.com/nationalcolors/nationalcolors/internal.Version=…".
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)
