package version

import "fmt"

// Version, Commit and BuildDate are stamped at build time, e.g.
// go build -ldflags "-X github.com/oukeidos/glosst/internal/version.Version=0.2.0"
var (
	Version   = "0.1.0"
	Commit    = "unknown"
	BuildDate = "unknown"
)

// Info returns a multi-line version string for CLI output.
func Info() string {
	return fmt.Sprintf("glosst %s\ncommit: %s\nbuild: %s", Version, Commit, BuildDate)
}
