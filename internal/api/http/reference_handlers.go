package http

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/tn-risk-atlas/risk-atlas/internal/catalog"
	"github.com/tn-risk-atlas/risk-atlas/internal/risk"
	"github.com/tn-risk-atlas/risk-atlas/internal/scheme"
)

// GET /api/catalog
func CatalogHandler(svc *risk.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, svc.Catalog().Districts())
	}
}

// GET /api/ranks
func AllRanksHandler(svc *risk.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, svc.AllDistrictRanks())
	}
}

type districtRanksResp struct {
	District string       `json:"district"`
	Ranks    scheme.Ranks `json:"ranks"`
}

// GET /api/ranks/{district}
// Districts absent from the reference table get the default rank for
// every scheme rather than a 404.
func DistrictRanksHandler(svc *risk.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		district := strings.TrimSpace(chi.URLParam(r, "district"))
		if district == "" {
			writeError(w, http.StatusBadRequest, "district required")
			return
		}
		writeJSON(w, http.StatusOK, districtRanksResp{District: district, Ranks: svc.DistrictRanks(district)})
	}
}

// GET /api/map
func DistrictMapHandler(svc *risk.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, svc.DistrictMap())
	}
}

type defaultsResp struct {
	Location catalog.Location `json:"location"`
	Inputs   scheme.Inputs    `json:"inputs"`
}

// GET /api/defaults?district=&block=&panchayat=
func DefaultsHandler(svc *risk.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		loc := catalog.Location{District: q.Get("district"), Block: q.Get("block"), Panchayat: q.Get("panchayat")}
		if strings.TrimSpace(loc.District) == "" {
			writeError(w, http.StatusBadRequest, "district required")
			return
		}
		in, err := svc.Defaults(r.Context(), loc)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, defaultsResp{Location: loc, Inputs: in})
	}
}
