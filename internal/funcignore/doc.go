// Package funcignore loads and matches exclusion patterns from a
// .funcignore file.
//
// The file format is a single-column table: the first non-blank row must
// be the header literal "Exclude" (case-insensitive), and every subsequent
// non-blank row is one glob pattern. Patterns are matched against the
// names of top-level entries in the project directory, so a pattern that
// names a directory excludes the whole subtree.
//
// Pattern syntax follows github.com/bmatcuk/doublestar (*, ?, [...],
// brace sets). Matching is order-independent: an entry is excluded when
// any pattern matches, so reordering the file never changes the result.
package funcignore
