// Package loader provides the feature loading system of the HTTP server.
//
// Each feature implements the Feature interface, which names the feature,
// tells whether it is enabled and registers its routes.
//
// # Manager
//
// The Manager holds the registry of features. Register adds one and LoadAll
// loads every enabled feature in registration order.
package loader
