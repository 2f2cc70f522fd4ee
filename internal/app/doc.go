// Package app wires the plz application together and drives one CLI
// execution: it builds the logger, loads the .env file and the plzfile,
// registers builtin tasks, validates the registry, and dispatches the
// resolved command to the matching action (listing, help, default task, or a
// named task invocation).
package app
