// Package create implements the branch-create workflow command.
package create
