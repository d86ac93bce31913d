// Package middleware contains HTTP middleware for the Fiber application.
//
// # Components
//
//   - auth: API key validation through the X-API-Key header.
//   - rayid: a unique request id (RayID) per request, stored in the context
//     and echoed in the response headers for tracing.
//
// RayID is registered first so every later log line carries it.
package middleware
