// Package model provides the diagram and result types shared by every stage
// of the analysis engine.
//
// This package contains type definitions and small accessors only. All other
// internal packages import model; model imports nothing internal. Stages never
// mutate a Diagram or Catalog handed to them: each stage reads its inputs and
// returns fresh result values.
//
// Key design constraints:
//   - Numeric fields that may be missing from the input are Number values,
//     which carry an explicit unresolved state instead of a zero value
//   - Textual measurements ("1500 MHz", "12 ns") stay raw Measure strings
//     until internal/units normalizes them
//   - JSON tags use camelCase to match the diagram editor's wire format
package model
