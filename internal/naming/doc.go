// Package naming derives destination file paths for conversions and keeps
// concurrent jobs from writing to the same destination.
package naming
