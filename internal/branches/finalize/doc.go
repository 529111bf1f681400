// Package finalize implements the branch-finalize workflow command.
package finalize
