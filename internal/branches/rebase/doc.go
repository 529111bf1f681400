// Package rebase implements the branch-rebase workflow command.
package rebase
