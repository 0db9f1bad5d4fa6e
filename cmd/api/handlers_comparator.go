package main

import (
	"errors"
	"net/http"
	"strings"

	"github.com/orlando572/sumaq-seguros-sub000/comparator"
	"github.com/orlando572/sumaq-seguros-sub000/dashboard"
	"github.com/orlando572/sumaq-seguros-sub000/logger"
	"github.com/orlando572/sumaq-seguros-sub000/plan"
	"github.com/orlando572/sumaq-seguros-sub000/quotation"
)

type changeCategoryRequest struct {
	Category string `json:"category" validate:"required"`
}

type quoteRequest struct {
	Comments string `json:"comments" validate:"max=1000"`
}

type quoteResponse struct {
	quotation.Result
	Comparator comparator.View `json:"comparator"`
}

// handleComparator serves GET (current view) and PUT (change category) on
// /api/comparator.
func (s *Server) handleComparator(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	session := s.comparators.For(userID)

	switch r.Method {
	case http.MethodGet:
		if session.Category() == "" {
			s.changeCategory(r, session, comparator.DefaultCategory)
		}
		writeJSON(w, http.StatusOK, session.View())
	case http.MethodPut:
		var req changeCategoryRequest
		if !s.decode(w, r, &req) {
			return
		}
		category, err := plan.ParseCategory(req.Category)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid category")
			return
		}
		s.changeCategory(r, session, category)
		writeJSON(w, http.StatusOK, session.View())
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

// changeCategory surfaces load failures through the session notice, so both
// outcomes render the current view.
func (s *Server) changeCategory(r *http.Request, session *comparator.Session, category plan.Category) {
	err := session.ChangeCategory(r.Context(), category)
	if errors.Is(err, comparator.ErrStaleResponse) {
		logger.FromContext(r.Context()).Debug("discarded stale category response", "category", category)
	}
}

// handleComparatorAction serves POST /api/comparator/selection/{id},
// /api/comparator/quote and /api/comparator/quote/{id}.
func (s *Server) handleComparatorAction(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	userID, ok := userIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	session := s.comparators.For(userID)

	rest := strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/comparator/"), "/")
	parts := strings.Split(rest, "/")

	switch {
	case len(parts) == 2 && parts[0] == "selection":
		id, ok := parseID(parts[1])
		if !ok {
			writeError(w, http.StatusBadRequest, "invalid plan id")
			return
		}
		if err := session.Toggle(id); err != nil {
			status, msg := selectionError(err)
			writeError(w, status, msg)
			return
		}
		writeJSON(w, http.StatusOK, session.View())
	case len(parts) == 1 && parts[0] == "quote":
		s.quote(w, r, session, session.Selection())
	case len(parts) == 2 && parts[0] == "quote":
		id, ok := parseID(parts[1])
		if !ok {
			writeError(w, http.StatusBadRequest, "invalid plan id")
			return
		}
		ids, err := session.QuoteSingle(id)
		if err != nil {
			status, msg := selectionError(err)
			writeError(w, status, msg)
			return
		}
		s.quote(w, r, session, ids)
	default:
		writeError(w, http.StatusNotFound, "not found")
	}
}

func (s *Server) quote(w http.ResponseWriter, r *http.Request, session *comparator.Session, planIDs []int64) {
	var req quoteRequest
	if !s.decodeOptional(w, r, &req) {
		return
	}

	res, err := s.quotationService.Request(r.Context(), sessionFromContext(r.Context()), planIDs, strings.TrimSpace(req.Comments))
	status := http.StatusOK
	switch {
	case err == nil:
	case errors.Is(err, quotation.ErrEmptySelection), errors.Is(err, quotation.ErrRejected):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, quotation.ErrUnauthenticated):
		status = http.StatusUnauthorized
	case errors.Is(err, quotation.ErrSubmitFailed):
		session.ReportError(res.Message)
		status = http.StatusBadGateway
	default:
		logger.FromContext(r.Context()).Error("quotation failed", "error", err)
		status = http.StatusInternalServerError
	}

	writeJSON(w, status, quoteResponse{Result: res, Comparator: session.View()})
}

// handleDashboard serves GET /api/dashboard.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	userID, ok := userIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	summary, err := s.dashboardService.Load(r.Context(), userID)
	if err != nil {
		if errors.Is(err, dashboard.ErrLoadFailed) {
			writeError(w, http.StatusBadGateway, "No se pudo cargar el panel")
			return
		}
		logger.FromContext(r.Context()).Error("dashboard load failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, summary)
}
