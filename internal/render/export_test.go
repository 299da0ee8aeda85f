package render

// Export unexported functions for external tests.
var ToCellWidths = toCellWidths

// SetHomeDir overrides the homeDir package variable for testing ShortenPath.
func SetHomeDir(dir string) {
	homeDir = dir
}
