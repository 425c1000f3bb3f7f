package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	stdhttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	customerDomain "lendcore-backend/internal/domain/customer"
	"lendcore-backend/internal/domain/identity"
	domain "lendcore-backend/internal/domain/loan"
	"lendcore-backend/internal/domain/uow"
	"lendcore-backend/internal/loanparams"
	"lendcore-backend/internal/testutil/configmock"
	"lendcore-backend/internal/testutil/customermock"
	"lendcore-backend/internal/testutil/loanmock"
	"lendcore-backend/internal/testutil/uowmock"
	uc "lendcore-backend/internal/usecase/loan"

	"github.com/labstack/echo/v4"
)

const (
	testTenantID = "tttttttttttttttttttttttttttttttt"
	testActorID  = "bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb"
)

// -------- helpers --------

func newEchoWithValidator() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func mustJSON(v any) *bytes.Reader {
	b, _ := json.Marshal(v)
	return bytes.NewReader(b)
}

// newCtx builds an echo context carrying the given actor, the way the
// identity middleware would.
func newCtx(e *echo.Echo, method, path string, body *bytes.Reader, role identity.Role) (echo.Context, *httptest.ResponseRecorder) {
	var req *stdhttp.Request
	if body != nil {
		req = httptest.NewRequest(method, path, body)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("actor", identity.Actor{ID: testActorID, TenantID: testTenantID, Role: role})
	return c, rec
}

func testLoanUsecase(loans *loanmock.Repo, customers *customermock.Repo) *uc.Usecase {
	src := &configmock.Source{
		GetLoanDefaultsFn: func(ctx context.Context, tenantID string) (loanparams.TenantDefaults, error) {
			return loanparams.TenantDefaults{
				InterestRate:      24,
				UpfrontFeePercent: 2,
				TransferFee:       500,
				MaxDTI:            80,
				MinAmount:         10_000,
				MaxAmount:         5_000_000,
				MinTenor:          3,
				MaxTenor:          36,
				MinNetPay:         20_000,
			}, nil
		},
	}
	resolver := loanparams.NewResolver(src, time.Minute, 16)
	return uc.NewUsecase(&uowmock.UoW{Repos: uow.Repos{Loans: loans, Customers: customers}}, resolver)
}

func handlerCustomer() *customerDomain.Customer {
	return &customerDomain.Customer{
		CustomerID:          strings.Repeat("c", 32),
		TenantID:            testTenantID,
		EmploymentCode:      "GOV-1234",
		BirthDate:           time.Date(1990, 5, 10, 0, 0, 0, 0, time.UTC),
		EmploymentStartDate: time.Date(2012, 1, 15, 0, 0, 0, 0, time.UTC),
		SegmentID:           "seg-gov",
	}
}

// -------- tests --------

func TestCreateLoan_Success(t *testing.T) {
	e := newEchoWithValidator()

	loans := &loanmock.Repo{
		CreateFn: func(ctx context.Context, l *domain.Loan) error {
			if l.CreatedAt.IsZero() {
				l.CreatedAt = time.Now().UTC()
			}
			return nil
		},
	}
	customers := &customermock.Repo{
		GetByCustomerIDFn: func(ctx context.Context, tenantID, customerID string) (*customerDomain.Customer, error) {
			return handlerCustomer(), nil
		},
	}
	h := NewLoanHandler(testLoanUsecase(loans, customers))

	reqBody := map[string]any{
		"customer_id": strings.Repeat("c", 32),
		"amount":      100_000,
		"tenor":       12,
		"loan_type":   "payroll",
		"net_pay":     50_000,
	}
	c, rec := newCtx(e, stdhttp.MethodPost, "/loans", mustJSON(reqBody), identity.RoleAgent)

	if err := h.CreateLoan(c); err != nil {
		t.Fatalf("CreateLoan error: %v", err)
	}
	if rec.Code != stdhttp.StatusCreated {
		t.Fatalf("status = %d, want 201, body=%s", rec.Code, rec.Body.String())
	}
	var got uc.LoanDTO
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if got.CustomerID != strings.Repeat("c", 32) || got.Amount != 100_000 {
		t.Fatalf("unexpected dto: %+v", got)
	}
	if got.Status != string(domain.StatusPending) {
		t.Fatalf("status = %s, want pending", got.Status)
	}
	if got.RecommendedAmount != 100_000 || got.RecommendedTenor != 12 {
		t.Fatalf("recommended figures not seeded: %+v", got)
	}
}

func TestCreateLoan_BindError(t *testing.T) {
	e := newEchoWithValidator()
	h := NewLoanHandler(testLoanUsecase(&loanmock.Repo{}, &customermock.Repo{}))

	req := httptest.NewRequest(stdhttp.MethodPost, "/loans", strings.NewReader(`{"customer_id":`)) // broken JSON
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("actor", identity.Actor{ID: testActorID, TenantID: testTenantID, Role: identity.RoleAgent})

	if err := h.CreateLoan(c); err != nil {
		t.Fatalf("CreateLoan error: %v", err)
	}
	if rec.Code != stdhttp.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	var er ErrorResponse
	_ = json.Unmarshal(rec.Body.Bytes(), &er)
	if er.Error != "invalid body" {
		t.Fatalf("error = %q, want %q", er.Error, "invalid body")
	}
}

func TestCreateLoan_ValidationError(t *testing.T) {
	e := newEchoWithValidator()
	h := NewLoanHandler(testLoanUsecase(&loanmock.Repo{}, &customermock.Repo{})) // won't be called

	// invalid: customer_id not hex32, amount has 3 decimals, tenor zero
	reqBody := map[string]any{
		"customer_id": "NOT_HEX_32",
		"amount":      100_000.123,
		"tenor":       0,
		"loan_type":   "payroll",
		"net_pay":     50_000,
	}
	c, rec := newCtx(e, stdhttp.MethodPost, "/loans", mustJSON(reqBody), identity.RoleAgent)

	if err := h.CreateLoan(c); err != nil {
		t.Fatalf("CreateLoan error: %v", err)
	}
	if rec.Code != stdhttp.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
	var er ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &er); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if er.Error != "validation failed" {
		t.Fatalf("error = %q, want %q", er.Error, "validation failed")
	}
	if !containsFieldMsg(er.Details, "CustomerID", "32-char lowercase hex") {
		t.Fatalf("missing hex32 detail: %+v", er.Details)
	}
	if !containsFieldMsg(er.Details, "Amount", "at most 2 decimal places") {
		t.Fatalf("missing dec2 detail for amount: %+v", er.Details)
	}
}

func TestCreateLoan_DomainValidationMapsTo422(t *testing.T) {
	e := newEchoWithValidator()

	customers := &customermock.Repo{
		GetByCustomerIDFn: func(ctx context.Context, tenantID, customerID string) (*customerDomain.Customer, error) {
			return handlerCustomer(), nil
		},
	}
	h := NewLoanHandler(testLoanUsecase(&loanmock.Repo{}, customers))

	// amount above the tenant maximum: passes transport validation, fails
	// the configured bounds inside the usecase
	reqBody := map[string]any{
		"customer_id": strings.Repeat("c", 32),
		"amount":      10_000_000,
		"tenor":       12,
		"loan_type":   "payroll",
		"net_pay":     50_000,
	}
	c, rec := newCtx(e, stdhttp.MethodPost, "/loans", mustJSON(reqBody), identity.RoleAgent)

	if err := h.CreateLoan(c); err != nil {
		t.Fatalf("CreateLoan error: %v", err)
	}
	if rec.Code != stdhttp.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422, body=%s", rec.Code, rec.Body.String())
	}
}

func TestGetLoan_Success(t *testing.T) {
	e := echo.New()
	loanID := strings.Repeat("l", 32)

	loans := &loanmock.Repo{
		GetByLoanIDFn: func(ctx context.Context, tenantID, id string) (*domain.Loan, error) {
			if id != loanID {
				return nil, errors.New("not found")
			}
			return &domain.Loan{
				LoanID:     loanID,
				TenantID:   testTenantID,
				CustomerID: strings.Repeat("c", 32),
				Amount:     100_000,
				Tenor:      12,
				Status:     domain.StatusPending,
				CreatedAt:  time.Now().UTC(),
			}, nil
		},
	}
	h := NewLoanHandler(testLoanUsecase(loans, &customermock.Repo{}))

	c, rec := newCtx(e, stdhttp.MethodGet, "/loans/"+loanID, nil, identity.RoleAgent)
	c.SetParamNames("loan_id")
	c.SetParamValues(loanID)

	if err := h.GetLoan(c); err != nil {
		t.Fatalf("GetLoan error: %v", err)
	}
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var dto uc.LoanDTO
	if err := json.Unmarshal(rec.Body.Bytes(), &dto); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if dto.LoanID != loanID {
		t.Fatalf("loan_id = %s, want %s", dto.LoanID, loanID)
	}
}

func TestGetLoan_NotFound(t *testing.T) {
	e := echo.New()
	loans := &loanmock.Repo{
		GetByLoanIDFn: func(ctx context.Context, tenantID, id string) (*domain.Loan, error) {
			return nil, errors.New("not found")
		},
	}
	h := NewLoanHandler(testLoanUsecase(loans, &customermock.Repo{}))

	c, rec := newCtx(e, stdhttp.MethodGet, "/loans/xxx", nil, identity.RoleAgent)
	c.SetParamNames("loan_id")
	c.SetParamValues("xxx")

	if err := h.GetLoan(c); err != nil {
		t.Fatalf("GetLoan error: %v", err)
	}
	if rec.Code != stdhttp.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestEditLoan_AgentMapsTo422(t *testing.T) {
	e := newEchoWithValidator()
	loanID := strings.Repeat("l", 32)

	loans := &loanmock.Repo{
		GetByLoanIDFn: func(ctx context.Context, tenantID, id string) (*domain.Loan, error) {
			return &domain.Loan{LoanID: loanID, TenantID: testTenantID, Status: domain.StatusPending}, nil
		},
	}
	h := NewLoanHandler(testLoanUsecase(loans, &customermock.Repo{}))

	c, rec := newCtx(e, stdhttp.MethodPatch, "/loans/"+loanID, mustJSON(map[string]any{"amount": 120_000}), identity.RoleAgent)
	c.SetParamNames("loan_id")
	c.SetParamValues(loanID)

	if err := h.EditLoan(c); err != nil {
		t.Fatalf("EditLoan error: %v", err)
	}
	if rec.Code != stdhttp.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422 (agents must use review), body=%s", rec.Code, rec.Body.String())
	}
}

func TestEditLoan_ClosedLoanMapsTo409(t *testing.T) {
	e := newEchoWithValidator()
	loanID := strings.Repeat("l", 32)

	loans := &loanmock.Repo{
		GetByLoanIDFn: func(ctx context.Context, tenantID, id string) (*domain.Loan, error) {
			return &domain.Loan{LoanID: loanID, TenantID: testTenantID, Status: domain.StatusMatured}, nil
		},
	}
	h := NewLoanHandler(testLoanUsecase(loans, &customermock.Repo{}))

	c, rec := newCtx(e, stdhttp.MethodPatch, "/loans/"+loanID, mustJSON(map[string]any{"amount": 120_000}), identity.RoleSupervisor)
	c.SetParamNames("loan_id")
	c.SetParamValues(loanID)

	if err := h.EditLoan(c); err != nil {
		t.Fatalf("EditLoan error: %v", err)
	}
	if rec.Code != stdhttp.StatusConflict {
		t.Fatalf("status = %d, want 409, body=%s", rec.Code, rec.Body.String())
	}
}

func TestMatureLoan_OnlyApproved(t *testing.T) {
	e := echo.New()
	loanID := strings.Repeat("l", 32)

	loans := &loanmock.Repo{
		GetByLoanIDFn: func(ctx context.Context, tenantID, id string) (*domain.Loan, error) {
			return &domain.Loan{LoanID: loanID, TenantID: testTenantID, Status: domain.StatusPending}, nil
		},
	}
	h := NewLoanHandler(testLoanUsecase(loans, &customermock.Repo{}))

	c, rec := newCtx(e, stdhttp.MethodPost, "/loans/"+loanID+"/mature", nil, identity.RoleAdmin)
	c.SetParamNames("loan_id")
	c.SetParamValues(loanID)

	if err := h.MatureLoan(c); err != nil {
		t.Fatalf("MatureLoan error: %v", err)
	}
	if rec.Code != stdhttp.StatusConflict {
		t.Fatalf("status = %d, want 409 for a pending loan", rec.Code)
	}
}
