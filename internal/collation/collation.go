// Package collation provides the locale-aware natural ordering used for
// department names: numeric substrings compare numerically, so "第2営業部"
// sorts before "第10営業部".
package collation

import (
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// newCollator builds a fresh collator per call; Collator buffers are not
// safe for concurrent use.
func newCollator() *collate.Collator {
	return collate.New(language.Japanese, collate.Numeric)
}

// SortStrings orders ss in place
func SortStrings(ss []string) {
	newCollator().SortStrings(ss)
}

// Less reports whether a orders before b
func Less(a, b string) bool {
	return newCollator().CompareString(a, b) < 0
}
