// Package fibmemo holds application-wide defaults shared by the config loader
// and the command line driver.
package fibmemo

import (
	"os"
	"path/filepath"
)

const (
	DefaultAppName = "fibmemo"

	DefaultArithmetic = "checked"
	DefaultStrategy   = "recursive"

	// Default sweep range, inclusive.
	DefaultFrom = 1
	DefaultTo   = 40

	DefaultLogLevel  = "info"
	DefaultLogFormat = "console"

	DefaultMetricsNamespace = "fibmemo"

	EnvPrefix = "FIBMEMO"
)

// DefaultConfigPath is the per-user config directory, e.g. ~/.config/fibmemo.
var DefaultConfigPath = defaultConfigPath()

func defaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(".", "."+DefaultAppName)
	}
	return filepath.Join(dir, DefaultAppName)
}
