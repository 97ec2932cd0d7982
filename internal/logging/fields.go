package logging

// Field name constants for structured logging.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldWorkingDir = "working_dir"
	FieldDuration   = "duration"
	FieldConfig     = "config"

	// Configuration fields.
	FieldFlavor       = "flavor"
	FieldJobs         = "jobs"
	FieldWrite        = "write"
	FieldRemoveUnused = "remove_unused"

	// Per-document fields.
	FieldEdits       = "edits"
	FieldDefinitions = "definitions"
	FieldLinks       = "links"
	FieldActions     = "actions"
	FieldBackup      = "backup"

	// Statistics fields.
	FieldFilesDiscovered = "files_discovered"
	FieldFilesProcessed  = "files_processed"
	FieldFilesChanged    = "files_changed"
	FieldFilesFailed     = "files_failed"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
