package app

// Build metadata, overridable at link time:
//
//	go build -ldflags "-X github.com/agbru/fibbench/internal/app.Version=v1.2.0"
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)
