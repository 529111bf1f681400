// Package semver models MAJOR.MINOR.PATCH versions and resolves the next
// release version from parsed conventional commits.
package semver
