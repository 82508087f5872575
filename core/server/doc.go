// Package server holds the HTTP server configuration.
//
// The actual Fiber application is assembled in the start command; this package
// only owns the configuration surface (listen port, CORS origins) so that the
// config loader can bind defaults without importing the command layer.
package server
