package constants

import "time"

// File and directory permissions.
const (
	// ConfigDirPerm is the permission for configuration directories.
	ConfigDirPerm = 0750

	// ConfigFilePerm is the permission for configuration files.
	ConfigFilePerm = 0600
)

// API conventions.
const (
	// DefaultActionSubpath is the action namespace under the portal base URL.
	DefaultActionSubpath = "api/3/action"

	// DefaultInstanceName is the instance used when none is selected.
	DefaultInstanceName = "local"

	// InstanceSectionPrefix prefixes instance sections in the config file.
	InstanceSectionPrefix = "instance:"

	// DefaultConfigDir is the per-user config directory under $HOME.
	DefaultConfigDir = ".ckanta"

	// DefaultConfigFile is the instance config file name inside DefaultConfigDir.
	DefaultConfigFile = "config.ini"
)

// HTTP and retry tuning.
const (
	// DefaultHTTPTimeout is the default timeout for HTTP requests.
	DefaultHTTPTimeout = 30 * time.Second

	// DefaultRetryWaitMin is the minimum wait between retries.
	DefaultRetryWaitMin = 1 * time.Second

	// DefaultRetryWaitMax is the maximum wait between retries.
	DefaultRetryWaitMax = 10 * time.Second
)

// Dump pagination defaults.
const (
	// DefaultDumpLimit is how many objects a dump fetches when unset.
	DefaultDumpLimit = 5
)
