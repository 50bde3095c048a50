package utils

// Default file names shared by the dump and undump commands.
const (
	// DefaultConfigFileName is the configuration file consulted when --config is not provided.
	DefaultConfigFileName = "config.json"
	// DefaultDumpFileName is the artifact written by projdump and read by projundump.
	DefaultDumpFileName = "project_dump.txt"
	// GitIgnoreFileName is the name of the Git ignore file.
	GitIgnoreFileName = ".gitignore"
)

// Messages reported by the command entry points.
const (
	// LoggerInitializationFailedMessageFormat is used when the zap logger cannot be built.
	LoggerInitializationFailedMessageFormat = "failed to initialize logger: %w"
	// ApplicationExecutionFailedMessage prefixes the fatal error of a failed run.
	ApplicationExecutionFailedMessage = "Application execution failed"
)
