package version

// Set at build time with -ldflags "-X github.com/cfoust/royale/pkg/version.Version=...".
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildTime = "unknown"
)
