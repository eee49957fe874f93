// Package buildinfo carries release metadata stamped into the scribe binary.
package buildinfo

// Set with -ldflags "-X github.com/aidanlsb/scribe/internal/buildinfo.Version=..."
// when cutting a release. Local builds leave them empty and rely on the
// module's embedded build info instead.
var (
	Version = ""
	Commit  = ""
	Date    = ""
)
