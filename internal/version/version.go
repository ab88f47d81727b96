// internal/version/version.go
package version

// Version is the tidyss release version.
const Version = "0.2.0"
