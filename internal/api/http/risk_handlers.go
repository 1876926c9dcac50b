package http

import (
	"net/http"

	"github.com/tn-risk-atlas/risk-atlas/internal/catalog"
	"github.com/tn-risk-atlas/risk-atlas/internal/risk"
	"github.com/tn-risk-atlas/risk-atlas/internal/scheme"
	"github.com/tn-risk-atlas/risk-atlas/internal/scoring"
)

type scoreReq struct {
	Inputs scheme.Inputs `json:"inputs"`
	Ranks  scheme.Ranks  `json:"ranks"`
}

type scoreResp struct {
	scoring.Result
	Tier scoring.Tier `json:"tier"`
}

// POST /api/score
func ScoreHandler(svc *risk.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req scoreReq
		if !decodeJSON(w, r, &req) {
			return
		}
		res, err := svc.Score(r.Context(), req.Inputs, req.Ranks)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, scoreResp{Result: res, Tier: res.Tier()})
	}
}

type explainReq struct {
	Score    *int          `json:"score"`
	Inputs   scheme.Inputs `json:"inputs"`
	Ranks    scheme.Ranks  `json:"ranks"`
	Location string        `json:"location"`
}

type explainResp struct {
	Tier        scoring.Tier `json:"tier"`
	Explanation string       `json:"explanation"`
}

// POST /api/explain
func ExplainHandler(svc *risk.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req explainReq
		if !decodeJSON(w, r, &req) {
			return
		}
		if req.Score == nil {
			writeError(w, http.StatusBadRequest, "score required")
			return
		}
		text, err := svc.Explain(*req.Score, req.Inputs, req.Ranks, req.Location)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, explainResp{Tier: scoring.TierFor(*req.Score), Explanation: text})
	}
}

type assessReq struct {
	District  string        `json:"district"`
	Block     string        `json:"block"`
	Panchayat string        `json:"panchayat"`
	Inputs    scheme.Inputs `json:"inputs,omitempty"`
}

// POST /api/assess
// Without inputs the server's provider supplies the counts.
func AssessHandler(svc *risk.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req assessReq
		if !decodeJSON(w, r, &req) {
			return
		}
		a, err := svc.Assess(r.Context(), risk.Request{
			Location: catalog.Location{District: req.District, Block: req.Block, Panchayat: req.Panchayat},
			Inputs:   req.Inputs,
		})
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, a)
	}
}
