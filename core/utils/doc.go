// Package utils provides common conversion helpers for values coming out of database drivers.
// It covers the type switching shared by the data-source providers (text, numbers, times)
// that doesn't fit into a single provider package.
package utils
