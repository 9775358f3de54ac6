// Package api binrec REST API
//
// @title           binrec REST API
// @version         1.0.0
// @description     This is the REST API for binrec, a fixed-layout binary record codec.
// @host            localhost:8080
// @BasePath        /api/v1
//
// @securityDefinitions.apikey ApiKeyAuth
// @in              header
// @name            X-API-Key
package api

import (
	"fmt"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/swaggo/swag"
)

// StartServer starts the HTTP server with all routes configured
func StartServer(registry Registry, config ServerConfig) error {
	// Set Swagger host with port
	if SwaggerInfo != nil {
		SwaggerInfo.Host = fmt.Sprintf("localhost:%d", config.Port)
	}

	// Initialize metrics
	metrics := NewMetrics()
	metrics.SetSchemaTypes(len(registry.Names()))

	server := NewServer(registry, config, metrics)
	r := newRouter(server)

	addr := fmt.Sprintf("%s:%d", config.Bind, config.Port)
	fmt.Printf("Starting binrec REST API server on %s\n", addr)
	fmt.Printf("Metrics available at: http://localhost:%d/metrics\n", config.Port)
	log.Fatal(http.ListenAndServe(addr, r))

	return nil
}

// newRouter wires middleware, API routes and documentation endpoints
func newRouter(server *Server) chi.Router {
	metrics := server.metrics

	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Prometheus metrics endpoint (unprotected for scraping)
	r.Handle("/metrics", promhttp.Handler())

	// API key authentication middleware for protected routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(metrics.InstrumentAuthMiddleware(apiKeyMiddleware(server.config.APIKey)))

		// Health check
		r.Get("/health", metrics.InstrumentHandler("GET", "/api/v1/health", server.handleHealth))

		// Schema introspection
		r.Get("/types", metrics.InstrumentHandler("GET", "/api/v1/types", server.handleListTypes))
		r.Get("/types/{name}", metrics.InstrumentHandler("GET", "/api/v1/types/{name}", server.handleGetType))

		// Codec operations
		r.Post("/decode/{type}", metrics.InstrumentHandler("POST", "/api/v1/decode/{type}", server.handleDecode))
		r.Post("/encode/{type}", metrics.InstrumentHandler("POST", "/api/v1/encode/{type}", server.handleEncode))
	})

	// Swagger documentation (unprotected)
	r.Get("/swagger/*", func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path
		if path == "/swagger/" || path == "/swagger/index.html" {
			// Serve the Swagger UI HTML
			w.Header().Set("Content-Type", "text/html")
			html := `<!DOCTYPE html>
<html>
<head>
	 <title>binrec API Documentation</title>
	 <link rel="stylesheet" type="text/css" href="https://unpkg.com/swagger-ui-dist@3.25.0/swagger-ui.css" />
</head>
<body>
	 <div id="swagger-ui"></div>
	 <script src="https://unpkg.com/swagger-ui-dist@3.25.0/swagger-ui-bundle.js"></script>
	 <script>
	   window.onload = function() {
	     SwaggerUIBundle({
	       url: '/swagger/swagger.json',
	       dom_id: '#swagger-ui',
	       presets: [
	         SwaggerUIBundle.presets.apis,
	         SwaggerUIBundle.presets.standalone
	       ]
	     });
	   };
	 </script>
</body>
</html>`
			w.Write([]byte(html))
			return
		}

		if path == "/swagger/swagger.json" {
			// Serve the dynamically generated Swagger JSON
			doc, err := swag.ReadDoc("swagger")
			if err != nil {
				fmt.Printf("Error generating swagger doc: %v\n", err)
				http.Error(w, "Failed to generate Swagger documentation", 500)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(doc))
			return
		}

		// For any other paths, return 404
		http.NotFound(w, r)
	})

	return r
}
