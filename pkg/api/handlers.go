package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
)

// Server holds the API server state
type Server struct {
	registry Registry
	config   ServerConfig
	metrics  *Metrics
}

// NewServer creates a new API server
func NewServer(registry Registry, config ServerConfig, metrics *Metrics) *Server {
	return &Server{
		registry: registry,
		config:   config,
		metrics:  metrics,
	}
}

// handleHealth godoc
//
//	@Summary		Health check
//	@Description	Get the health status of the API
//	@Tags			health
//	@Accept			json
//	@Produce		json
//	@Success		200	{object}	map[string]interface{}
//	@Router			/health [get]
//	@Security		ApiKeyAuth
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.metrics.RecordHealthCheck(true)
	sendSuccess(w, map[string]interface{}{
		"status": "healthy",
		"types":  len(s.registry.Names()),
	})
}

// handleListTypes godoc
//
//	@Summary		List record types
//	@Description	List all record types in the loaded schema set, in declaration order
//	@Tags			types
//	@Accept			json
//	@Produce		json
//	@Success		200	{object}	map[string]interface{}
//	@Failure		500	{object}	map[string]string
//	@Router			/types [get]
//	@Security		ApiKeyAuth
func (s *Server) handleListTypes(w http.ResponseWriter, r *http.Request) {
	names := s.registry.Names()
	types := make([]TypeSummary, 0, len(names))
	for _, name := range names {
		layout, err := s.registry.Layout(name)
		if err != nil {
			sendError(w, fmt.Sprintf("Failed to resolve type: %v", err), http.StatusInternalServerError)
			return
		}
		types = append(types, TypeSummary{
			Name: layout.Name(),
			Size: layout.Size(),
			Doc:  s.registry.Doc(name),
		})
	}

	sendSuccess(w, map[string]interface{}{"types": types})
}

// handleGetType godoc
//
//	@Summary		Get a record type
//	@Description	Get the compiled layout of a record type, including field offsets and widths
//	@Tags			types
//	@Accept			json
//	@Produce		json
//	@Param			name	path		string	true	"Type name"
//	@Success		200		{object}	TypeInfo
//	@Failure		400		{object}	map[string]string
//	@Failure		404		{object}	map[string]string
//	@Router			/types/{name} [get]
//	@Security		ApiKeyAuth
func (s *Server) handleGetType(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if name == "" {
		sendError(w, "Type name is required", http.StatusBadRequest)
		return
	}

	layout, err := s.registry.Layout(name)
	if err != nil {
		sendError(w, fmt.Sprintf("Unknown type: %v", err), http.StatusNotFound)
		return
	}

	info := TypeInfo{
		Name: layout.Name(),
		Size: layout.Size(),
		Doc:  s.registry.Doc(name),
	}
	for _, f := range layout.Fields() {
		info.Fields = append(info.Fields, FieldInfo{
			Name:    f.Name,
			Type:    f.Kind.String(),
			Offset:  f.Offset,
			Width:   f.Width,
			Default: f.Default,
			Doc:     f.Doc,
		})
	}

	sendSuccess(w, info)
}

// handleDecode godoc
//
//	@Summary		Decode a record
//	@Description	Decode a raw record buffer into a JSON field map. The body must be exactly the type's record size.
//	@Tags			codec
//	@Accept			octet-stream
//	@Produce		json
//	@Param			type	path		string	true	"Type name"
//	@Param			body	body		[]byte	true	"Packed record bytes"
//	@Success		200		{object}	DecodeResponse
//	@Failure		400		{object}	map[string]string
//	@Failure		404		{object}	map[string]string
//	@Router			/decode/{type} [post]
//	@Security		ApiKeyAuth
func (s *Server) handleDecode(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	name := chi.URLParam(r, "type")
	if name == "" {
		s.metrics.RecordCodecOperation("decode", false, time.Since(start))
		sendError(w, "Type name is required", http.StatusBadRequest)
		return
	}

	layout, err := s.registry.Layout(name)
	if err != nil {
		s.metrics.RecordCodecOperation("decode", false, time.Since(start))
		sendError(w, fmt.Sprintf("Unknown type: %v", err), http.StatusNotFound)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		s.metrics.RecordCodecOperation("decode", false, time.Since(start))
		sendError(w, "Failed to read request body", http.StatusBadRequest)
		return
	}

	record, err := layout.Unpack(body)
	if err != nil {
		s.metrics.RecordCodecOperation("decode", false, time.Since(start))
		sendError(w, fmt.Sprintf("Failed to decode record: %v", err), http.StatusBadRequest)
		return
	}

	s.metrics.RecordCodecOperation("decode", true, time.Since(start))
	sendSuccess(w, DecodeResponse{
		Type:   layout.Name(),
		Size:   layout.Size(),
		Values: record.Values(),
	})
}

// handleEncode godoc
//
//	@Summary		Encode a record
//	@Description	Encode a JSON field map into a packed record buffer. Unknown fields are ignored; omitted fields take their defaults.
//	@Tags			codec
//	@Accept			json
//	@Produce		octet-stream
//	@Param			type	path		string					true	"Type name"
//	@Param			body	body		map[string]interface{}	true	"Field values"
//	@Success		200		{string}	byte
//	@Failure		400		{object}	map[string]string
//	@Failure		404		{object}	map[string]string
//	@Router			/encode/{type} [post]
//	@Security		ApiKeyAuth
func (s *Server) handleEncode(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	name := chi.URLParam(r, "type")
	if name == "" {
		s.metrics.RecordCodecOperation("encode", false, time.Since(start))
		sendError(w, "Type name is required", http.StatusBadRequest)
		return
	}

	layout, err := s.registry.Layout(name)
	if err != nil {
		s.metrics.RecordCodecOperation("encode", false, time.Since(start))
		sendError(w, fmt.Sprintf("Unknown type: %v", err), http.StatusNotFound)
		return
	}

	var values map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&values); err != nil {
		s.metrics.RecordCodecOperation("encode", false, time.Since(start))
		sendError(w, "Invalid JSON in request body", http.StatusBadRequest)
		return
	}

	record, err := layout.NewMap(values)
	if err != nil {
		s.metrics.RecordCodecOperation("encode", false, time.Since(start))
		sendError(w, fmt.Sprintf("Failed to encode record: %v", err), http.StatusBadRequest)
		return
	}

	data := record.Pack()
	s.metrics.RecordCodecOperation("encode", true, time.Since(start))

	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	if _, err := w.Write(data); err != nil {
		sendError(w, "Failed to write response", http.StatusInternalServerError)
		return
	}
}
