// Package relational implements provider.Provider for SQL databases through GORM.
//
// Without a raw query the table's columns are probed first and a select list is built from
// the requested fields plus any "name.N" columns whose base name was requested; those are
// folded, in column order, into an array field "name". With a raw query the statement runs
// as written and its result columns drive the same mapping.
//
// Values are normalized per column type: empty strings in character columns become null
// (array elements excepted), numeric text becomes a number, and date or time columns become
// calendar dates.
package relational
