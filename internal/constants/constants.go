package constants

// Tool name and related constants
const (
	// ToolName is the name of this tool
	ToolName = "plaincheck"

	// ConfigFileName is the default config file name written by init
	ConfigFileName = ".plaincheck.yaml"

	// EnvVarPrefix is the prefix for environment variables
	EnvVarPrefix = "PLAINCHECK"

	// ConfigEnvVar names a config file used when none is discovered
	ConfigEnvVar = EnvVarPrefix + "_CONFIG"
)

// Exit codes shared by the commands
const (
	ExitOK     = 0
	ExitIssues = 1
	ExitError  = 2
)
