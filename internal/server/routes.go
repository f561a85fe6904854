package server

import (
	"net/http"
)

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes(mux *http.ServeMux) {
	// System
	mux.HandleFunc("GET /health", s.handleHealth)

	// Documents: <collection>.json and <collection>/<id>.json
	mux.HandleFunc("GET /{path...}", s.handleGet)
	mux.HandleFunc("POST /{path...}", s.handlePush)
	mux.HandleFunc("DELETE /{path...}", s.handleDelete)
}
