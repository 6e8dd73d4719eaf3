// Package collect lists the top-level entries of a project directory and
// filters them through a .funcignore matcher.
//
// Filtering is set-difference: an entry survives unless some exclusion
// pattern matches its name. Nothing is excluded by default — keeping the
// archive itself out of the next run's file set is the .funcignore
// author's responsibility (a "*.zip" pattern).
package collect
