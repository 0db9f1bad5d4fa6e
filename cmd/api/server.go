package main

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/orlando572/sumaq-seguros-sub000/auth"
	"github.com/orlando572/sumaq-seguros-sub000/comparator"
	"github.com/orlando572/sumaq-seguros-sub000/dashboard"
	"github.com/orlando572/sumaq-seguros-sub000/logger"
	"github.com/orlando572/sumaq-seguros-sub000/plan"
	"github.com/orlando572/sumaq-seguros-sub000/quotation"
	"github.com/orlando572/sumaq-seguros-sub000/selection"
)

type ctxKey string

const (
	ctxKeyUserID  ctxKey = "userID"
	ctxKeyRole    ctxKey = "role"
	ctxKeySession ctxKey = "session"
)

const maxBodyBytes = 1 << 20

type authService interface {
	Register(ctx context.Context, req auth.RegisterRequest) (*auth.User, error)
	Login(ctx context.Context, req auth.LoginRequest) (auth.LoginResult, error)
	ResolveSession(ctx context.Context, token string) (*auth.Session, error)
}

type planService interface {
	ListByCategory(ctx context.Context, category plan.Category) ([]plan.Plan, error)
	StatsByCategory(ctx context.Context, category plan.Category) (plan.CategoryStats, error)
	Summary(ctx context.Context, id int64) (plan.Summary, error)
}

type dashboardService interface {
	Load(ctx context.Context, userID string) (dashboard.Summary, error)
}

type quotationService interface {
	Request(ctx context.Context, sess *auth.Session, planIDs []int64, comments string) (quotation.Result, error)
}

// Server wires HTTP handlers to the domain services.
type Server struct {
	authService      authService
	planService      planService
	comparators      *comparator.Registry
	dashboardService dashboardService
	quotationService quotationService
	validate         *validator.Validate
}

// NewServer builds a Server.
func NewServer(a authService, p planService, c *comparator.Registry, d dashboardService, q quotationService) *Server {
	return &Server{
		authService:      a,
		planService:      p,
		comparators:      c,
		dashboardService: d,
		quotationService: q,
		validate:         validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Routes returns the HTTP handler for the API.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/register", s.handleRegister)
	mux.HandleFunc("/api/auth/login", s.handleLogin)
	mux.HandleFunc("/api/plans", s.handlePlans)
	mux.HandleFunc("/api/plans/", s.handlePlanDetail)
	mux.Handle("/api/comparator", s.requireAuth(http.HandlerFunc(s.handleComparator)))
	mux.Handle("/api/comparator/", s.requireAuth(http.HandlerFunc(s.handleComparatorAction)))
	mux.Handle("/api/dashboard", s.requireAuth(http.HandlerFunc(s.handleDashboard)))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	return s.withRequestID(mux)
}

func (s *Server) withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)
		next.ServeHTTP(w, r.WithContext(logger.WithRequestID(r.Context(), id)))
	})
}

func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			writeError(w, http.StatusUnauthorized, "missing bearer token")
			return
		}

		sess, err := s.authService.ResolveSession(r.Context(), strings.TrimSpace(token))
		if err != nil {
			if errors.Is(err, auth.ErrInvalidToken) {
				writeError(w, http.StatusUnauthorized, "invalid token")
				return
			}
			logger.FromContext(r.Context()).Error("resolve session failed", "error", err)
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		ctx := context.WithValue(r.Context(), ctxKeySession, sess)
		ctx = context.WithValue(ctx, ctxKeyUserID, sess.UserID)
		ctx = context.WithValue(ctx, ctxKeyRole, sess.Role)
		ctx = logger.WithUserID(ctx, sess.UserID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// sessionFromContext returns nil for anonymous requests.
func sessionFromContext(ctx context.Context) *auth.Session {
	sess, _ := ctx.Value(ctxKeySession).(*auth.Session)
	return sess
}

func userIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(ctxKeyUserID).(string)
	return id, ok && id != ""
}

type registerRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	FullName string `json:"fullName" validate:"required"`
	DNI      string `json:"dni" validate:"omitempty,len=8,numeric"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type userResponse struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"fullName"`
	Role     string `json:"role"`
}

type loginResponse struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req registerRequest
	if !s.decode(w, r, &req) {
		return
	}

	user, err := s.authService.Register(r.Context(), auth.RegisterRequest{
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
		DNI:      req.DNI,
		Role:     auth.RoleCliente,
	})
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrDuplicateEmail):
			writeError(w, http.StatusConflict, "email already registered")
		case errors.Is(err, auth.ErrWeakPassword), errors.Is(err, auth.ErrInvalidDNI):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			logger.FromContext(r.Context()).Error("register failed", "error", err)
			writeError(w, http.StatusInternalServerError, "internal error")
		}
		return
	}

	writeJSON(w, http.StatusCreated, toUserResponse(*user))
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req loginRequest
	if !s.decode(w, r, &req) {
		return
	}

	res, err := s.authService.Login(r.Context(), auth.LoginRequest{Email: req.Email, Password: req.Password})
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, "invalid credentials")
			return
		}
		logger.FromContext(r.Context()).Error("login failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{Token: res.Token, User: toUserResponse(res.User)})
}

func toUserResponse(u auth.User) userResponse {
	return userResponse{ID: u.ID, Email: u.Email, FullName: u.FullName, Role: string(u.Role)}
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	return s.decodeBody(w, r, dst, false)
}

// decodeOptional accepts an absent body, leaving dst at its zero value.
func (s *Server) decodeOptional(w http.ResponseWriter, r *http.Request, dst any) bool {
	return s.decodeBody(w, r, dst, true)
}

func (s *Server) decodeBody(w http.ResponseWriter, r *http.Request, dst any, allowEmpty bool) bool {
	if r.Body == nil {
		r.Body = http.NoBody
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		if !allowEmpty || !errors.Is(err, io.EOF) {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return false
		}
	}
	if err := s.validate.Struct(dst); err != nil {
		writeError(w, http.StatusBadRequest, validationMessage(err))
		return false
	}
	return true
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "invalid request"
	}
	fe := verrs[0]
	return "invalid field " + fe.Field() + ": " + fe.Tag()
}

func parseID(raw string) (int64, bool) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// selectionError maps selection failures to a status and message.
func selectionError(err error) (int, string) {
	switch {
	case errors.Is(err, selection.ErrCapacityExceeded):
		return http.StatusUnprocessableEntity, "Solo puedes comparar hasta 3 planes"
	case errors.Is(err, comparator.ErrPlanNotListed):
		return http.StatusNotFound, "plan not in current category"
	default:
		return http.StatusInternalServerError, "internal error"
	}
}
