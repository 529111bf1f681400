// Package protect enables branch protection on the main branch through the
// GitHub CLI, deriving the repository coordinates from the configured remote.
package protect
