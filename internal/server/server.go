// Package server exposes the aggregate computations over HTTP.
//
// Two endpoints mirror the CLI's central and designer commands:
//
//	GET /api/central-shops?city=Portland&measure=degree&radius=50&top=3
//	GET /api/designer-yarns?designer=Jane+Doe&top=5
//
// Responses are JSON; errors carry the same machine codes the CLI uses.
package server

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	apperrors "github.com/fiberarts/fiberfind/pkg/errors"
	"github.com/fiberarts/fiberfind/pkg/geo"
	"github.com/fiberarts/fiberfind/pkg/geocode"
	"github.com/fiberarts/fiberfind/pkg/ravelry"
	"github.com/fiberarts/fiberfind/pkg/shopgraph"
	"github.com/fiberarts/fiberfind/pkg/yarnstats"
)

// ShopSearcher is the slice of the Ravelry client the shop endpoint needs.
type ShopSearcher interface {
	SearchShops(ctx context.Context, query string, maxPages int) ([]ravelry.Shop, error)
}

// Config wires the server's dependencies.
type Config struct {
	Shops    ShopSearcher
	Patterns yarnstats.API
	Geocoder geocode.Provider
	Logger   *log.Logger

	// MaxPages caps API pagination per request; 0 means all pages.
	MaxPages int
}

// Server handles the HTTP API.
type Server struct {
	shops    ShopSearcher
	patterns yarnstats.API
	geocoder geocode.Provider
	logger   *log.Logger
	maxPages int
}

// New creates a Server from its dependencies.
func New(cfg Config) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		shops:    cfg.Shops,
		patterns: cfg.Patterns,
		geocoder: cfg.Geocoder,
		logger:   logger,
		maxPages: cfg.MaxPages,
	}
}

// Handler builds the chi router with request-ID and logging middleware.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Get("/central-shops", s.handleCentralShops)
		r.Get("/designer-yarns", s.handleDesignerYarns)
	})
	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// centralShopsResponse is the payload of /api/central-shops.
type centralShopsResponse struct {
	City    string             `json:"city"`
	Center  geo.Point          `json:"center"`
	Radius  float64            `json:"radius_miles"`
	Measure string             `json:"measure"`
	Shops   int                `json:"shops"`
	Edges   int                `json:"edges"`
	Ranking []shopgraph.Ranked `json:"ranking"`
}

func (s *Server) handleCentralShops(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	city := strings.TrimSpace(r.URL.Query().Get("city"))
	if city == "" {
		writeError(w, apperrors.New(apperrors.ErrCodeInvalidCity, "missing city parameter"))
		return
	}
	measure, err := shopgraph.ParseMeasure(r.URL.Query().Get("measure"))
	if err != nil {
		writeError(w, apperrors.Wrap(apperrors.ErrCodeInvalidMeasure, err, "measure"))
		return
	}
	radius, err := queryFloat(r, "radius", shopgraph.DefaultRadiusMiles)
	if err != nil || radius <= 0 {
		writeError(w, apperrors.New(apperrors.ErrCodeInvalidInput, "radius must be a positive number"))
		return
	}
	top, err := queryInt(r, "top", 3)
	if err != nil {
		writeError(w, apperrors.New(apperrors.ErrCodeInvalidInput, "top must be an integer"))
		return
	}

	center, err := s.geocoder.Geocode(ctx, city)
	if err != nil {
		if errors.Is(err, geocode.ErrNoMatch) {
			writeError(w, apperrors.Wrap(apperrors.ErrCodeCityNotFound, err, "city %q", city))
			return
		}
		writeError(w, apperrors.Wrap(apperrors.ErrCodeNetwork, err, "geocode %q", city))
		return
	}

	records, err := s.shops.SearchShops(ctx, city, s.maxPages)
	if err != nil {
		writeError(w, mapRavelryError(err, "search shops"))
		return
	}

	shops := shopgraph.FromShops(records, center, radius)
	resp := centralShopsResponse{
		City:    city,
		Center:  center,
		Radius:  radius,
		Measure: measure.String(),
		Ranking: []shopgraph.Ranked{},
	}
	if len(shops) > 0 {
		g, err := shopgraph.Build(shops, radius)
		if err != nil {
			writeError(w, apperrors.Wrap(apperrors.ErrCodeInternal, err, "build graph"))
			return
		}
		ranked := g.Rank(measure)
		if top > 0 && top < len(ranked) {
			ranked = ranked[:top]
		}
		resp.Shops = g.NodeCount()
		resp.Edges = g.EdgeCount()
		resp.Ranking = ranked
	}
	writeJSON(w, http.StatusOK, resp)
}

// designerYarnsResponse is the payload of /api/designer-yarns.
type designerYarnsResponse struct {
	Designer string                `json:"designer"`
	Patterns int                   `json:"patterns"`
	Top      []yarnstats.YarnCount `json:"top"`
}

func (s *Server) handleDesignerYarns(w http.ResponseWriter, r *http.Request) {
	designer := strings.TrimSpace(r.URL.Query().Get("designer"))
	if designer == "" {
		writeError(w, apperrors.New(apperrors.ErrCodeInvalidInput, "missing designer parameter"))
		return
	}
	top, err := queryInt(r, "top", yarnstats.DefaultTopN)
	if err != nil {
		writeError(w, apperrors.New(apperrors.ErrCodeInvalidInput, "top must be an integer"))
		return
	}

	report, err := yarnstats.DesignerYarns(r.Context(), s.patterns, designer, top, s.maxPages)
	if err != nil {
		writeError(w, mapRavelryError(err, "aggregate designer yarns"))
		return
	}

	resp := designerYarnsResponse{
		Designer: report.Designer,
		Patterns: report.Patterns,
		Top:      report.Top,
	}
	if resp.Top == nil {
		resp.Top = []yarnstats.YarnCount{}
	}
	writeJSON(w, http.StatusOK, resp)
}

func mapRavelryError(err error, what string) error {
	switch {
	case errors.Is(err, ravelry.ErrNotFound):
		return apperrors.Wrap(apperrors.ErrCodeNotFound, err, "%s", what)
	case errors.Is(err, ravelry.ErrUnauthorized):
		return apperrors.Wrap(apperrors.ErrCodeUnauthorized, err, "%s", what)
	default:
		return apperrors.Wrap(apperrors.ErrCodeNetwork, err, "%s", what)
	}
}

func queryFloat(r *http.Request, name string, fallback float64) (float64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, nil
	}
	return strconv.ParseFloat(raw, 64)
}

func queryInt(r *http.Request, name string, fallback int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, nil
	}
	return strconv.Atoi(raw)
}
