// Package conventional parses raw commit messages into structured
// conventional-commit records used for version resolution and changelog
// generation.
package conventional
