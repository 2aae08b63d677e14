package version

var (
	// Version is the release version (set via -ldflags).
	Version = ""
	// Commit is the git commit hash (set via -ldflags).
	Commit = ""
)

func String() string {
	v := Version
	if v == "" {
		v = "dev"
	}
	if Commit != "" {
		return v + " (" + Commit + ")"
	}
	return v
}
