package http

import (
	"net/http"
	"time"

	"lendcore-backend/internal/usecase/customer"

	"github.com/labstack/echo/v4"
)

type CustomerHandler struct{ uc *customer.Usecase }

func NewCustomerHandler(uc *customer.Usecase) *CustomerHandler { return &CustomerHandler{uc: uc} }

type dateChangeReq struct {
	BirthDate           string `json:"birth_date"            validate:"omitempty,datetime=2006-01-02"`
	EmploymentStartDate string `json:"employment_start_date" validate:"omitempty,datetime=2006-01-02"`
}

// ChangeDates mutates a customer's birth or employment-start date and
// cascades the derived tenure figures into their open loans.
func (h *CustomerHandler) ChangeDates(c echo.Context) error {
	a, ok := actor(c)
	if !ok {
		return unauthorized(c)
	}
	customerID := c.Param("customer_id")
	if customerID == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing customer_id path param"})
	}
	var req dateChangeReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}

	var in customer.DateChangeInput
	if req.BirthDate != "" {
		t, _ := time.Parse("2006-01-02", req.BirthDate)
		in.BirthDate = &t
	}
	if req.EmploymentStartDate != "" {
		t, _ := time.Parse("2006-01-02", req.EmploymentStartDate)
		in.EmploymentStartDate = &t
	}

	dto, err := h.uc.ApplyBirthOrHireDateChange(c.Request().Context(), a, customerID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}
