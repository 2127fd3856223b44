package httpapi

import "net/http"

// Server is a thin wrapper so callers can mount the API under a
// *http.ServeMux alongside other routes without depending on Handler's
// internal fields.
type Server struct {
	h http.Handler
}

// NewServer wraps a Handler for mounting.
func NewServer(h *Handler) *Server {
	return &Server{h: h}
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.h.ServeHTTP(w, r)
}
