// Package releases orchestrates version bumps: commit history in, resolved
// version, rewritten changelog, release commit, and annotated tag out.
// Pushing is deliberately left to the operator.
package releases
