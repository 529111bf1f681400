// Package candidate implements the release-rc workflow command.
package candidate
