// Package server adapts the lnauth protocol engine to HTTP. It normalizes
// incoming requests into a single transport-neutral shape, dispatches to the
// engine's four operations and shapes tagged results into JSON bodies or
// browser redirects.
package server

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/lnward/go-lnauth-server/generators"
	"github.com/lnward/go-lnauth-server/internal/config"
	"github.com/lnward/go-lnauth-server/lnauth"
)

type Server struct {
	mux     *http.ServeMux
	routes  []string
	config  config.Config
	svc     *lnauth.Service
	gen     generators.Generators
	baseURL *url.URL
	logger  zerolog.Logger
}

func New(cfg config.Config, svc *lnauth.Service, gen generators.Generators, logger zerolog.Logger) (*Server, error) {
	baseURL, err := url.Parse(cfg.GetBaseURL())
	if err != nil {
		return nil, errors.Wrap(err, "[Server New] invalid base URL")
	}

	s := &Server{
		mux:     http.NewServeMux(),
		config:  cfg,
		svc:     svc,
		gen:     gen,
		baseURL: baseURL,
		logger:  logger,
	}

	s.initRoutes()
	s.logRoutes()

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

func (s *Server) logRoutes() {
	if s.config.GetEnv() != "DEV" {
		return
	}
	for _, route := range s.routes {
		parts := strings.SplitN(route, " ", 2)
		if len(parts) > 1 {
			s.logger.Info().Str("method", parts[0]).Str("path", parts[1]).Msg("route registered")
		} else {
			s.logger.Info().Str("path", parts[0]).Msg("route registered")
		}
	}
}
