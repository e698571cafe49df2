package logger

// Standard field names for consistent structured logging across sdkforge.
// Use these constants instead of raw strings to keep log output greppable
// when many build edges interleave.
const (
	// Components
	FieldComponent = "component"
	FieldCommand   = "command"

	// Inputs and outputs
	FieldManifest = "manifest"
	FieldOutput   = "output"
	FieldDepfile  = "depfile"
	FieldFile     = "file"

	// Atoms
	FieldAtom     = "atom"
	FieldCategory = "category"
	FieldGNLabel  = "gn_label"

	// FIDL diffing
	FieldLibrary     = "library"
	FieldDeclaration = "declaration"
	FieldChangeKind  = "change_kind"
	FieldSeverity    = "severity"

	// Host tools
	FieldTool     = "tool"
	FieldExitCode = "exit_code"

	// Counts and timing
	FieldCount      = "count"
	FieldDurationMS = "duration_ms"

	// Errors
	FieldError = "error"
)
