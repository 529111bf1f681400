// Package branches holds the shared vocabulary of the branch lifecycle:
// workflow configuration, feature branch name validation, the typed
// precondition and conflict errors, and release-candidate preparation. The
// create, rebase, finalize, and candidate subpackages build the individual
// commands on top of it.
package branches
