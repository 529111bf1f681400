// Package changelog renders grouped release sections into a
// most-recent-first CHANGELOG document and reads sections back out of it.
package changelog
