// Package gitrepo wraps shell-level git operations behind RepositoryManager,
// the handle every workflow command uses to inspect and mutate the working
// tree, and parses remote URLs into owner/repository coordinates.
package gitrepo
