// Package project persists the released version in the project metadata file.
package project
