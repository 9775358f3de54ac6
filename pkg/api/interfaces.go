// Package api provides interfaces for dependency injection
package api

// ServerStarter defines the interface for starting the API server
type ServerStarter interface {
	// StartServer starts the API server with the given configuration
	StartServer(registry Registry, config ServerConfig) error
}

// ServerFactory creates server instances
type ServerFactory interface {
	// CreateServerStarter creates a server starter
	CreateServerStarter() ServerStarter
}
