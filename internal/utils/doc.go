// Package utils hosts shared configuration loading, logging, and context helpers.
package utils
