// Package server holds the HTTP server configuration.
//
// The serve command reads the listen port, the optional API key and the comparisons file
// exposed by the API from this section.
package server
