package http

import (
	"github.com/go-chi/chi/v5"

	"github.com/tn-risk-atlas/risk-atlas/internal/risk"
)

// MountAPI registers the scoring and reference routes under r.
func MountAPI(r chi.Router, svc *risk.Service) {
	r.Get("/catalog", CatalogHandler(svc))
	r.Get("/ranks", AllRanksHandler(svc))
	r.Get("/ranks/{district}", DistrictRanksHandler(svc))
	r.Get("/map", DistrictMapHandler(svc))
	r.Get("/defaults", DefaultsHandler(svc))

	r.Post("/score", ScoreHandler(svc))
	r.Post("/explain", ExplainHandler(svc))
	r.Post("/assess", AssessHandler(svc))
}
