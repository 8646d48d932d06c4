// Package provider defines the capability every data source implements to feed the
// comparison engine, together with the settings that select and configure one.
//
// The set of backends is closed: Kind enumerates them and ParseKind accepts the names used
// in comparison files. Concrete implementations live in the document (MongoDB) and
// relational (SQL via GORM) subpackages; feature code selects one from Settings.Type.
//
// # Normalization Contract
//
// GetRecords must return one record per entity with a value for every requested field:
//   - absent or unset fields become null
//   - empty strings become null (the relational provider only does this for character columns)
//   - date-like values become calendar dates
//   - "name.N" columns are folded into an array field "name" (relational provider)
//
// Failures are returned as *Error, which wraps ErrProvider.
package provider
