// Package files locates store CSV exports on disk.
//
// Source paths normally come from configuration, but when a path is left
// unset the tool falls back to scanning the inputs directory for the most
// recent export matching the source name. Discovery never modifies files.
package files
