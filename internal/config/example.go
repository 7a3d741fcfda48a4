package config

// ExampleConfig returns an example configuration showing all available options.
func ExampleConfig() string {
	return `# task-cli configuration file
# Values can be overridden by TASK_CLI_* environment variables or CLI flags

# Task store file (relative to the working directory, supports ~ expansion)
tasks_file = "tasks.json"

# Diagnostic logging (written to stderr)
# Level: debug, info, warn, error
log_level = "warn"
# Format: text, json, logfmt
log_format = "text"
log_timestamps = false
log_caller = false
`
}
