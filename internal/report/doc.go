// Package report renders analysis results.
//
// JSON output is canonical (see MarshalCanonical) so that identical
// analyses produce byte-identical documents and fingerprints. Text output
// is for terminals; severity labels are colored when enabled.
package report
