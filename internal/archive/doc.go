// Package archive builds the deployment zip from a filtered set of
// project entries.
//
// The archive is recreated from scratch on every run: a pre-existing
// file at the destination path is deleted unconditionally before the new
// one is written, so two archives never coexist. Compression uses the
// fastest Deflate setting — deployment archives are transferred once and
// unpacked immediately, so speed wins over ratio.
package archive
