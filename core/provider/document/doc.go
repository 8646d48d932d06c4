// Package document implements provider.Provider for MongoDB collections.
//
// Documents are read with a find query, optionally filtered by an extended JSON query, or
// through an extended JSON aggregation pipeline. Find queries project the requested fields
// and exclude _id unless it is requested.
package document
