package main

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"

	"github.com/orlando572/sumaq-seguros-sub000/auth"
	"github.com/orlando572/sumaq-seguros-sub000/comparator"
	"github.com/orlando572/sumaq-seguros-sub000/dashboard"
	"github.com/orlando572/sumaq-seguros-sub000/plan"
	"github.com/orlando572/sumaq-seguros-sub000/quotation"
)

type stubAuthService struct {
	session  *auth.Session
	login    auth.LoginResult
	user     *auth.User
	err      error
	loginErr error
}

func (s *stubAuthService) Register(_ context.Context, req auth.RegisterRequest) (*auth.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.user != nil {
		return s.user, nil
	}
	return &auth.User{ID: "u1", Email: req.Email, FullName: req.FullName, Role: req.Role}, nil
}

func (s *stubAuthService) Login(_ context.Context, _ auth.LoginRequest) (auth.LoginResult, error) {
	return s.login, s.loginErr
}

func (s *stubAuthService) ResolveSession(_ context.Context, token string) (*auth.Session, error) {
	if token != "good-token" {
		return nil, auth.ErrInvalidToken
	}
	return s.session, s.err
}

type stubPlanService struct {
	plans   []plan.Plan
	stats   plan.CategoryStats
	summary plan.Summary
	err     error
}

func (s *stubPlanService) ListByCategory(_ context.Context, _ plan.Category) ([]plan.Plan, error) {
	return s.plans, s.err
}

func (s *stubPlanService) StatsByCategory(_ context.Context, c plan.Category) (plan.CategoryStats, error) {
	st := s.stats
	st.Category = c
	return st, s.err
}

func (s *stubPlanService) Summary(_ context.Context, _ int64) (plan.Summary, error) {
	return s.summary, s.err
}

type stubDashboardService struct {
	summary dashboard.Summary
	err     error
}

func (s *stubDashboardService) Load(_ context.Context, _ string) (dashboard.Summary, error) {
	return s.summary, s.err
}

type stubQuotationService struct {
	calls   int
	planIDs []int64
	result  quotation.Result
	err     error
}

func (s *stubQuotationService) Request(_ context.Context, _ *auth.Session, planIDs []int64, _ string) (quotation.Result, error) {
	s.calls++
	s.planIDs = planIDs
	return s.result, s.err
}

var testSession = &auth.Session{UserID: "user-1", Email: "ana@example.com", FullName: "Ana Quispe", Role: auth.RoleCliente}

func testPlans() []plan.Plan {
	mk := func(id int64, company string, monthly int64) plan.Plan {
		return plan.Plan{
			ID:             id,
			Company:        &plan.Company{ID: id, Name: company},
			Type:           &plan.PlanType{ID: id, Category: plan.CategoryVehicular, Name: "Auto Total", PrincipalCoverage: "Robo, Choque y Incendio"},
			MonthlyPremium: decimal.NewFromInt(monthly),
			AnnualPremium:  decimal.NewFromInt(monthly * 12),
			InsuredAmount:  decimal.NewFromInt(50000),
			Frequency:      plan.FrequencyMonthly,
		}
	}
	return []plan.Plan{mk(1, "Rimac", 100), mk(2, "Pacifico", 90), mk(3, "Mapfre", 120), mk(4, "La Positiva", 95)}
}

func newTestServer(q *stubQuotationService) (*Server, *stubPlanService) {
	plans := &stubPlanService{plans: testPlans(), stats: plan.CategoryStats{TotalPlans: 4, CompanyCount: 4}}
	if q == nil {
		q = &stubQuotationService{}
	}
	s := NewServer(
		&stubAuthService{session: testSession},
		plans,
		comparator.NewRegistry(plans),
		&stubDashboardService{},
		q,
	)
	return s, plans
}

func authed(req *http.Request) *http.Request {
	ctx := context.WithValue(req.Context(), ctxKeySession, testSession)
	ctx = context.WithValue(ctx, ctxKeyUserID, testSession.UserID)
	ctx = context.WithValue(ctx, ctxKeyRole, testSession.Role)
	return req.WithContext(ctx)
}

func TestHandlePlans_Success(t *testing.T) {
	server, _ := newTestServer(nil)

	req := httptest.NewRequest(http.MethodGet, "/api/plans?category=vehicular", nil)
	rec := httptest.NewRecorder()

	server.handlePlans(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var payload struct {
		Category string         `json:"category"`
		Items    []planResponse `json:"items"`
		Total    int            `json:"total"`
		Stats    statsResponse  `json:"stats"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload.Category != "VEHICULAR" || payload.Total != 4 || payload.Stats.TotalPlans != 4 {
		t.Fatalf("unexpected payload: %+v", payload)
	}
	if got := payload.Items[0].Coverage; len(got) != 3 || got[2] != "Incendio" {
		t.Fatalf("unexpected coverage: %v", got)
	}
	if payload.Items[0].Deductible != "Sin deducible" {
		t.Fatalf("expected deductible placeholder, got %q", payload.Items[0].Deductible)
	}
}

func TestHandlePlans_InvalidCategory(t *testing.T) {
	server, _ := newTestServer(nil)

	req := httptest.NewRequest(http.MethodGet, "/api/plans?category=MASCOTAS", nil)
	rec := httptest.NewRecorder()

	server.handlePlans(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestHandlePlans_WrongMethod(t *testing.T) {
	server, _ := newTestServer(nil)

	req := httptest.NewRequest(http.MethodPost, "/api/plans?category=VIDA", nil)
	rec := httptest.NewRecorder()

	server.handlePlans(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rec.Code)
	}
}

func TestHandlePlanDetail_NotFound(t *testing.T) {
	server, plans := newTestServer(nil)
	plans.err = plan.ErrNotFound

	req := httptest.NewRequest(http.MethodGet, "/api/plans/9/summary", nil)
	rec := httptest.NewRecorder()

	server.handlePlanDetail(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestHandlePlanDetail_InvalidID(t *testing.T) {
	server, _ := newTestServer(nil)

	req := httptest.NewRequest(http.MethodGet, "/api/plans/abc/summary", nil)
	rec := httptest.NewRecorder()

	server.handlePlanDetail(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestHandlePlanDetail_Success(t *testing.T) {
	server, plans := newTestServer(nil)
	plans.summary = plan.Summary{Plan: testPlans()[0], Coverage: []string{"Robo", "Choque", "Incendio"}, QuotationCount: 7}

	req := httptest.NewRequest(http.MethodGet, "/api/plans/1/summary", nil)
	rec := httptest.NewRecorder()

	server.handlePlanDetail(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp planSummaryResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.ID != 1 || resp.QuotationCount != 7 || resp.Company != "Rimac" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestRequireAuth_RejectsMissingToken(t *testing.T) {
	server, _ := newTestServer(nil)

	req := httptest.NewRequest(http.MethodGet, "/api/dashboard", nil)
	rec := httptest.NewRecorder()

	server.Routes().ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Fatalf("expected request id header")
	}
}

func TestRequireAuth_RejectsBadToken(t *testing.T) {
	server, _ := newTestServer(nil)

	req := httptest.NewRequest(http.MethodGet, "/api/comparator", nil)
	req.Header.Set("Authorization", "Bearer forged")
	rec := httptest.NewRecorder()

	server.Routes().ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestHandleComparator_DefaultCategoryThroughRoutes(t *testing.T) {
	server, _ := newTestServer(nil)

	req := httptest.NewRequest(http.MethodGet, "/api/comparator", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	rec := httptest.NewRecorder()

	server.Routes().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var view comparator.View
	if err := json.Unmarshal(rec.Body.Bytes(), &view); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if view.Category != comparator.DefaultCategory || len(view.Groups) != 4 {
		t.Fatalf("unexpected view: %+v", view)
	}
}

func TestHandleComparator_ChangeCategoryInvalid(t *testing.T) {
	server, _ := newTestServer(nil)

	req := httptest.NewRequest(http.MethodPut, "/api/comparator", strings.NewReader(`{"category":"MASCOTAS"}`))
	rec := httptest.NewRecorder()

	server.handleComparator(rec, authed(req))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestHandleComparator_LoadFailureRendersNotice(t *testing.T) {
	server, plans := newTestServer(nil)
	plans.err = errors.New("connection refused")

	req := httptest.NewRequest(http.MethodPut, "/api/comparator", strings.NewReader(`{"category":"SALUD"}`))
	rec := httptest.NewRecorder()

	server.handleComparator(rec, authed(req))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var view comparator.View
	if err := json.Unmarshal(rec.Body.Bytes(), &view); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if view.Notice == nil || view.Notice.Kind != comparator.NoticeError {
		t.Fatalf("expected error notice, got %+v", view.Notice)
	}
}

func TestHandleComparatorAction_ToggleCapacity(t *testing.T) {
	server, _ := newTestServer(nil)
	session := server.comparators.For(testSession.UserID)
	if err := session.ChangeCategory(context.Background(), plan.CategoryVehicular); err != nil {
		t.Fatalf("change category: %v", err)
	}

	for _, id := range []string{"1", "2", "3"} {
		rec := httptest.NewRecorder()
		server.handleComparatorAction(rec, authed(httptest.NewRequest(http.MethodPost, "/api/comparator/selection/"+id, nil)))
		if rec.Code != http.StatusOK {
			t.Fatalf("toggle %s: expected 200, got %d", id, rec.Code)
		}
	}

	rec := httptest.NewRecorder()
	server.handleComparatorAction(rec, authed(httptest.NewRequest(http.MethodPost, "/api/comparator/selection/4", nil)))

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
	if got := session.Selection(); len(got) != 3 {
		t.Fatalf("selection changed: %v", got)
	}
}

func TestHandleComparatorAction_QuoteEmptySelection(t *testing.T) {
	q := &stubQuotationService{
		result: quotation.Result{Message: quotation.MsgEmptySelection},
		err:    quotation.ErrEmptySelection,
	}
	server, _ := newTestServer(q)

	rec := httptest.NewRecorder()
	server.handleComparatorAction(rec, authed(httptest.NewRequest(http.MethodPost, "/api/comparator/quote", nil)))

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
	var resp quoteResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Message != quotation.MsgEmptySelection {
		t.Fatalf("unexpected message %q", resp.Message)
	}
}

func TestHandleComparatorAction_QuoteSingle(t *testing.T) {
	q := &stubQuotationService{result: quotation.Result{Success: true, Message: "ok", DeliveryTarget: "ana@example.com"}}
	server, _ := newTestServer(q)
	session := server.comparators.For(testSession.UserID)
	if err := session.ChangeCategory(context.Background(), plan.CategoryVehicular); err != nil {
		t.Fatalf("change category: %v", err)
	}
	_ = session.Toggle(1)
	_ = session.Toggle(2)

	req := httptest.NewRequest(http.MethodPost, "/api/comparator/quote/3", strings.NewReader(`{"comments":"llamar en la tarde"}`))
	rec := httptest.NewRecorder()
	server.handleComparatorAction(rec, authed(req))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if q.calls != 1 || len(q.planIDs) != 1 || q.planIDs[0] != 3 {
		t.Fatalf("unexpected quotation call: %d %v", q.calls, q.planIDs)
	}
}

func TestHandleComparatorAction_QuoteTransportFailure(t *testing.T) {
	q := &stubQuotationService{
		result: quotation.Result{Message: quotation.MsgSubmitFailed},
		err:    quotation.ErrSubmitFailed,
	}
	server, _ := newTestServer(q)
	session := server.comparators.For(testSession.UserID)
	if err := session.ChangeCategory(context.Background(), plan.CategoryVehicular); err != nil {
		t.Fatalf("change category: %v", err)
	}
	_ = session.Toggle(1)

	rec := httptest.NewRecorder()
	server.handleComparatorAction(rec, authed(httptest.NewRequest(http.MethodPost, "/api/comparator/quote", nil)))

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", rec.Code)
	}
	if n := session.Notice(); n == nil || n.Message != quotation.MsgSubmitFailed {
		t.Fatalf("expected failure notice, got %+v", n)
	}
}

func TestHandleDashboard_LoadFailed(t *testing.T) {
	server, _ := newTestServer(nil)
	server.dashboardService = &stubDashboardService{err: dashboard.ErrLoadFailed}

	rec := httptest.NewRecorder()
	server.handleDashboard(rec, authed(httptest.NewRequest(http.MethodGet, "/api/dashboard", nil)))

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", rec.Code)
	}
}

func TestHandleDashboard_Success(t *testing.T) {
	server, _ := newTestServer(nil)
	server.dashboardService = &stubDashboardService{summary: dashboard.Aggregate(dashboard.Sources{})}

	rec := httptest.NewRecorder()
	server.handleDashboard(rec, authed(httptest.NewRequest(http.MethodGet, "/api/dashboard", nil)))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"resumenSeguros"`) {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestHandleLogin_ValidationError(t *testing.T) {
	server, _ := newTestServer(nil)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"email":"not-an-email","password":"x"}`))
	rec := httptest.NewRecorder()

	server.handleLogin(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestHandleLogin_InvalidCredentials(t *testing.T) {
	server, _ := newTestServer(nil)
	server.authService = &stubAuthService{loginErr: auth.ErrInvalidCredentials}

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"email":"ana@example.com","password":"secret123"}`))
	rec := httptest.NewRecorder()

	server.handleLogin(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestHandleRegister_Duplicate(t *testing.T) {
	server, _ := newTestServer(nil)
	server.authService = &stubAuthService{err: auth.ErrDuplicateEmail}

	body := `{"email":"ana@example.com","password":"secret123","fullName":"Ana Quispe","dni":"45678912"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(body))
	rec := httptest.NewRecorder()

	server.handleRegister(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestHandleComparatorAction_QuoteChunkedEmptyBody(t *testing.T) {
	q := &stubQuotationService{result: quotation.Result{Success: true, Message: "ok"}}
	server, _ := newTestServer(q)
	session := server.comparators.For(testSession.UserID)
	if err := session.ChangeCategory(context.Background(), plan.CategoryVehicular); err != nil {
		t.Fatalf("change category: %v", err)
	}
	_ = session.Toggle(2)

	req := httptest.NewRequest(http.MethodPost, "/api/comparator/quote", strings.NewReader(""))
	req.ContentLength = -1
	req.TransferEncoding = []string{"chunked"}
	rec := httptest.NewRecorder()
	server.handleComparatorAction(rec, authed(req))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if q.calls != 1 || len(q.planIDs) != 1 || q.planIDs[0] != 2 {
		t.Fatalf("unexpected quotation call: %d %v", q.calls, q.planIDs)
	}
}

func TestHandleComparatorAction_QuoteMalformedBody(t *testing.T) {
	q := &stubQuotationService{}
	server, _ := newTestServer(q)

	req := httptest.NewRequest(http.MethodPost, "/api/comparator/quote", strings.NewReader(`{"comments":`))
	rec := httptest.NewRecorder()
	server.handleComparatorAction(rec, authed(req))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if q.calls != 0 {
		t.Fatalf("quotation must not be requested on a malformed body")
	}
}
