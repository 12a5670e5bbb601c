// Package ghenv propagates derived values to the GitHub Actions environment
// file. When no sink file is configured the whole package is a no-op.
package ghenv

import (
	"fmt"
	"os"
)

// EnvFileVar names the environment variable GitHub Actions sets to the path
// of the step environment file.
const EnvFileVar = "GITHUB_ENV"

// Sink appends KEY=value lines to an environment file.
type Sink struct {
	path string
}

// FromEnv builds a sink from GITHUB_ENV. An unset or empty variable yields a
// disabled sink whose Publish is a silent no-op.
func FromEnv() Sink {
	return Sink{path: os.Getenv(EnvFileVar)}
}

// NewSink builds a sink writing to an explicit file path.
func NewSink(path string) Sink {
	return Sink{path: path}
}

// Enabled reports whether a sink file is configured.
func (s Sink) Enabled() bool { return s.path != "" }

// Publish appends one KEY=value line to the sink file. Disabled sinks return
// nil without touching the filesystem.
func (s Sink) Publish(key, value string) error {
	if !s.Enabled() {
		return nil
	}

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open env file %s: %w", s.path, err)
	}
	defer f.Close()

	if _, err := fmt.Fprintf(f, "\n%s=%s\n", key, value); err != nil {
		return fmt.Errorf("write env file %s: %w", s.path, err)
	}
	return nil
}
