package http

import (
	"context"
	"encoding/json"
	stdhttp "net/http"
	"strings"
	"testing"
	"time"

	customerDomain "lendcore-backend/internal/domain/customer"
	"lendcore-backend/internal/domain/identity"
	loanDomain "lendcore-backend/internal/domain/loan"
	"lendcore-backend/internal/domain/uow"
	"lendcore-backend/internal/testutil/customermock"
	"lendcore-backend/internal/testutil/loanmock"
	"lendcore-backend/internal/testutil/uowmock"
	uc "lendcore-backend/internal/usecase/customer"
)

func testCustomerUsecase(c *customerDomain.Customer) *uc.Usecase {
	customers := &customermock.Repo{
		GetByCustomerIDFn: func(ctx context.Context, tenantID, customerID string) (*customerDomain.Customer, error) {
			return c, nil
		},
		SaveFn: func(ctx context.Context, c *customerDomain.Customer) error { return nil },
	}
	segments := &customermock.SegmentRepo{
		GetBySegmentIDFn: func(ctx context.Context, tenantID, segmentID string) (*customerDomain.Segment, error) {
			return &customerDomain.Segment{SegmentID: "seg-gov", TenantID: testTenantID, CodePrefix: "GOV-", Active: true}, nil
		},
	}
	loans := &loanmock.Repo{
		ListOpenByCustomerIDFn: func(ctx context.Context, tenantID, customerID string) ([]*loanDomain.Loan, error) {
			return nil, nil
		},
	}
	return uc.NewUsecase(&uowmock.UoW{Repos: uow.Repos{Customers: customers, Segments: segments, Loans: loans}})
}

func changeDatesCustomer() *customerDomain.Customer {
	return &customerDomain.Customer{
		CustomerID:          strings.Repeat("c", 32),
		TenantID:            testTenantID,
		EmploymentCode:      "GOV-5521",
		BirthDate:           time.Date(1990, 5, 10, 0, 0, 0, 0, time.UTC),
		EmploymentStartDate: time.Date(2012, 1, 15, 0, 0, 0, 0, time.UTC),
		SegmentID:           "seg-gov",
	}
}

func TestChangeDates_Success(t *testing.T) {
	e := newEchoWithValidator()
	customerID := strings.Repeat("c", 32)
	h := NewCustomerHandler(testCustomerUsecase(changeDatesCustomer()))

	reqBody := map[string]any{"birth_date": "1985-02-01"}
	c, rec := newCtx(e, stdhttp.MethodPatch, "/customers/"+customerID+"/dates", mustJSON(reqBody), identity.RoleSupervisor)
	c.SetParamNames("customer_id")
	c.SetParamValues(customerID)

	if err := h.ChangeDates(c); err != nil {
		t.Fatalf("ChangeDates error: %v", err)
	}
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d, want 200, body=%s", rec.Code, rec.Body.String())
	}
	var dto uc.CustomerDTO
	if err := json.Unmarshal(rec.Body.Bytes(), &dto); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if !dto.BirthDate.Equal(time.Date(1985, 2, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("birth date not applied: %v", dto.BirthDate)
	}
}

func TestChangeDates_BadDateFormatMapsTo422(t *testing.T) {
	e := newEchoWithValidator()
	h := NewCustomerHandler(testCustomerUsecase(changeDatesCustomer()))

	reqBody := map[string]any{"birth_date": "02/01/1985"}
	c, rec := newCtx(e, stdhttp.MethodPatch, "/customers/xxx/dates", mustJSON(reqBody), identity.RoleSupervisor)
	c.SetParamNames("customer_id")
	c.SetParamValues("xxx")

	if err := h.ChangeDates(c); err != nil {
		t.Fatalf("ChangeDates error: %v", err)
	}
	if rec.Code != stdhttp.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
}

func TestChangeDates_AgentMapsTo422(t *testing.T) {
	e := newEchoWithValidator()
	h := NewCustomerHandler(testCustomerUsecase(changeDatesCustomer()))

	reqBody := map[string]any{"birth_date": "1985-02-01"}
	c, rec := newCtx(e, stdhttp.MethodPatch, "/customers/xxx/dates", mustJSON(reqBody), identity.RoleAgent)
	c.SetParamNames("customer_id")
	c.SetParamValues("xxx")

	if err := h.ChangeDates(c); err != nil {
		t.Fatalf("ChangeDates error: %v", err)
	}
	if rec.Code != stdhttp.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422 (agents go through review)", rec.Code)
	}
}

func TestChangeDates_EmptyBodyMapsTo422(t *testing.T) {
	e := newEchoWithValidator()
	h := NewCustomerHandler(testCustomerUsecase(changeDatesCustomer()))

	c, rec := newCtx(e, stdhttp.MethodPatch, "/customers/xxx/dates", mustJSON(map[string]any{}), identity.RoleSupervisor)
	c.SetParamNames("customer_id")
	c.SetParamValues("xxx")

	if err := h.ChangeDates(c); err != nil {
		t.Fatalf("ChangeDates error: %v", err)
	}
	if rec.Code != stdhttp.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422 (at least one date required)", rec.Code)
	}
}
