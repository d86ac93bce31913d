// Package server holds the HTTP server configuration.
//
// The start command builds the Fiber application from this configuration: the
// listen port, the request read timeout and the API key that protects every
// comparison endpoint. An empty API key leaves the API open, which is only
// meant for local use.
package server
