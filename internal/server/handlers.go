package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/inovacc/bookstore/internal/store"
)

const maxDocumentSize = 1 << 20

// documentPath is a request path split into collection and trailing key
type documentPath struct {
	segments []string
}

// collection joins all segments
func (p documentPath) collection() string {
	return strings.Join(p.segments, "/")
}

// parent returns the collection and id when the last segment names a document
func (p documentPath) parent() (collection, id string, ok bool) {
	if len(p.segments) < 2 {
		return "", "", false
	}

	last := len(p.segments) - 1

	return strings.Join(p.segments[:last], "/"), p.segments[last], true
}

// parseDocumentPath accepts /a/b/c.json with escaped segments
func parseDocumentPath(r *http.Request) (documentPath, error) {
	raw := strings.Trim(r.URL.EscapedPath(), "/")
	if !strings.HasSuffix(raw, ".json") {
		return documentPath{}, errors.New("path must end with .json")
	}

	raw = strings.TrimSuffix(raw, ".json")
	if raw == "" {
		return documentPath{}, errors.New("a collection path is required")
	}

	parts := strings.Split(raw, "/")
	segments := make([]string, 0, len(parts))

	for _, part := range parts {
		segment, err := url.PathUnescape(part)
		if err != nil {
			return documentPath{}, fmt.Errorf("invalid path segment %q: %w", part, err)
		}

		if segment == "" {
			return documentPath{}, errors.New("empty path segment")
		}

		segments = append(segments, segment)
	}

	return documentPath{segments: segments}, nil
}

// handleHealth returns health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	if err := s.store.Ping(); err != nil {
		s.jsonError(w, http.StatusServiceUnavailable, err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleGet returns a collection as {id: document}, a single document, or null
func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	p, err := parseDocumentPath(r)
	if err != nil {
		s.jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	docs, err := s.store.Documents(r.Context(), p.collection())
	if err != nil {
		s.logger.Error("failed to list documents", slog.String("collection", p.collection()), slog.Any("error", err))
		s.jsonError(w, http.StatusInternalServerError, "failed to read collection")

		return
	}

	if len(docs) > 0 {
		s.jsonResponse(w, http.StatusOK, docs)
		return
	}

	if collection, id, ok := p.parent(); ok {
		siblings, err := s.store.Documents(r.Context(), collection)
		if err != nil {
			s.logger.Error("failed to list documents", slog.String("collection", collection), slog.Any("error", err))
			s.jsonError(w, http.StatusInternalServerError, "failed to read collection")

			return
		}

		if doc, found := siblings[id]; found {
			s.jsonResponse(w, http.StatusOK, doc)
			return
		}
	}

	s.jsonResponse(w, http.StatusOK, nil)
}

// handlePush stores the body as a new document and answers {"name": id}
func (s *Server) handlePush(w http.ResponseWriter, r *http.Request) {
	p, err := parseDocumentPath(r)
	if err != nil {
		s.jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxDocumentSize+1))
	if err != nil {
		s.jsonError(w, http.StatusBadRequest, "failed to read request body")
		return
	}

	if len(body) > maxDocumentSize {
		s.jsonError(w, http.StatusRequestEntityTooLarge, "document too large")
		return
	}

	if !json.Valid(body) || strings.TrimSpace(string(body)) == "null" {
		s.jsonError(w, http.StatusBadRequest, "Invalid data; couldn't parse JSON object")
		return
	}

	id, err := store.NewID()
	if err != nil {
		s.jsonError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if err := s.store.Insert(r.Context(), p.collection(), id, json.RawMessage(body)); err != nil {
		s.logger.Error("failed to insert document", slog.String("collection", p.collection()), slog.Any("error", err))
		s.jsonError(w, http.StatusInternalServerError, "failed to store document")

		return
	}

	s.logger.Info("document created", slog.String("collection", p.collection()), slog.String("id", id))

	s.jsonResponse(w, http.StatusOK, map[string]string{"name": id})
}

// handleDelete removes one document; a missing document is not an error
func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	p, err := parseDocumentPath(r)
	if err != nil {
		s.jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	collection, id, ok := p.parent()
	if !ok {
		s.jsonError(w, http.StatusBadRequest, "delete requires a document path")
		return
	}

	if err := s.store.Remove(r.Context(), collection, id); err != nil {
		s.logger.Error("failed to delete document", slog.String("collection", collection), slog.String("id", id), slog.Any("error", err))
		s.jsonError(w, http.StatusInternalServerError, "failed to delete document")

		return
	}

	s.logger.Info("document deleted", slog.String("collection", collection), slog.String("id", id))

	s.jsonResponse(w, http.StatusOK, nil)
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("failed to encode response", slog.Any("error", err))
	}
}

// jsonError writes an error in the store's {"error": "..."} shape
func (s *Server) jsonError(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}
