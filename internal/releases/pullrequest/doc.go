// Package pullrequest implements the release-pr workflow command.
package pullrequest
