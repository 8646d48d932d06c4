// Package record defines the normalized record model shared by every data-source provider
// and the comparison engine.
//
// A Record is an ordered mapping from field name to Value. Values are a closed set of
// variants: null, string, number, boolean, calendar date, and arrays of those scalars.
// Providers are responsible for producing a value (possibly null) for every requested
// field; Get on an absent field yields null so consumers never treat "absent" and "null"
// differently.
//
// # Match keys
//
// MatchKey is the identity of a record for a given list of match fields. It is built once
// per record from the ordered match-field values rendered as strings ("" for null) and is a
// comparable Go value, so it can be used directly as a map key.
//
// # Index
//
// BuildIndex turns a slice of records into a keyed index in a single pass. When two records
// share a key the later one replaces the earlier one. OnlyIn and IntersectionKeys provide the
// set operations used to partition two indices into source-only, target-only and matched keys.
//
// # Usage
//
//	src := record.BuildIndex(sourceRecords, []string{"id"})
//	dst := record.BuildIndex(targetRecords, []string{"id"})
//
//	sourceOnly := record.OnlyIn(src, dst)
//	matched := record.IntersectionKeys(src, dst)
package record
