package logging

// Common structured field keys, so log lines stay grep-able across the
// codebase.
const (
	// FieldError is the key for error values.
	FieldError = "error"

	// FieldFile is the key for input file paths.
	FieldFile = "file"

	// FieldSelector is the key for CSS selector strings.
	FieldSelector = "selector"

	// FieldXPath is the key for XPath expression strings.
	FieldXPath = "xpath"

	// FieldMatches is the key for result counts.
	FieldMatches = "matches"

	// FieldJobs is the key for worker counts.
	FieldJobs = "jobs"

	// FieldVersion is the key for the build version.
	FieldVersion = "version"

	// FieldCommit is the key for the build commit hash.
	FieldCommit = "commit"

	// FieldBuilt is the key for the build date.
	FieldBuilt = "built"
)
