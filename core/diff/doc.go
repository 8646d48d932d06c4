// Package diff computes field-level patches between two records that share a match key.
//
// Only compare fields take part in the comparison; match fields never trigger a difference
// but their values are attached to every patch so it identifies its entity without a
// re-join. Values are compared with record.Equal, so an empty string and null are distinct
// and array order matters.
//
// A field whose non-null values have different kinds on each side (for instance an array
// against a scalar) is reported as a difference carrying the "type mismatch" note rather
// than failing, so one malformed record can never abort a comparison.
package diff
