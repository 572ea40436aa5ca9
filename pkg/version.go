package cnpjdb

var (
	// Version of cnpjdb, set during build.
	Version = "v0.1.0"
	// Build timestamp, set during build.
	Build = "n/a"
)
