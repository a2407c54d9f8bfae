// Package cli parses command-line arguments for the toolhub binaries and
// translates usage errors into process exit codes.
package cli
