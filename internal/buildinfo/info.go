package buildinfo

// Set via -ldflags "-X github.com/spendlog-dev/spendlog/internal/buildinfo.Version=...".
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)
