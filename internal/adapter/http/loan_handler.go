package http

import (
	"net/http"

	loanDomain "lendcore-backend/internal/domain/loan"
	"lendcore-backend/internal/usecase/loan"

	"github.com/labstack/echo/v4"
)

type LoanHandler struct{ uc *loan.Usecase }

func NewLoanHandler(uc *loan.Usecase) *LoanHandler { return &LoanHandler{uc: uc} }

type createLoanReq struct {
	CustomerID      string  `json:"customer_id"       validate:"required,hex32"`
	Amount          float64 `json:"amount"            validate:"required,gt=0,dec2"`
	Tenor           int     `json:"tenor"             validate:"required,gte=1"`
	LoanType        string  `json:"loan_type"         validate:"required"`
	NetPay          float64 `json:"net_pay"           validate:"required,gt=0,dec2"`
	AgentID         string  `json:"agent_id"          validate:"omitempty,hex32"`
	CreditOfficerID string  `json:"credit_officer_id" validate:"omitempty,hex32"`
}

func (h *LoanHandler) CreateLoan(c echo.Context) error {
	a, ok := actor(c)
	if !ok {
		return unauthorized(c)
	}
	var req createLoanReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.Create(c.Request().Context(), a, loan.CreateLoanInput{
		CustomerID:      req.CustomerID,
		Amount:          req.Amount,
		Tenor:           req.Tenor,
		LoanType:        req.LoanType,
		NetPay:          req.NetPay,
		AgentID:         req.AgentID,
		CreditOfficerID: req.CreditOfficerID,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

type editLoanReq struct {
	Amount            *float64 `json:"amount"             validate:"omitempty,gt=0,dec2"`
	Tenor             *int     `json:"tenor"              validate:"omitempty,gte=1"`
	RecommendedAmount *float64 `json:"recommended_amount" validate:"omitempty,gt=0,dec2"`
	RecommendedTenor  *int     `json:"recommended_tenor"  validate:"omitempty,gte=0"`
	LoanType          *string  `json:"loan_type"`
	Status            *string  `json:"status"`
	Remark            *string  `json:"remark"`
	AgentID           *string  `json:"agent_id"           validate:"omitempty,hex32"`
	CreditOfficerID   *string  `json:"credit_officer_id"  validate:"omitempty,hex32"`
	NetPay            *float64 `json:"net_pay"            validate:"omitempty,gt=0,dec2"`
}

func (h *LoanHandler) EditLoan(c echo.Context) error {
	a, ok := actor(c)
	if !ok {
		return unauthorized(c)
	}
	loanID := c.Param("loan_id")
	if loanID == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing loan_id path param"})
	}
	var req editLoanReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}

	in := loan.EditLoanInput{
		Amount:            req.Amount,
		Tenor:             req.Tenor,
		RecommendedAmount: req.RecommendedAmount,
		RecommendedTenor:  req.RecommendedTenor,
		LoanType:          req.LoanType,
		AgentID:           req.AgentID,
		CreditOfficerID:   req.CreditOfficerID,
		NetPay:            req.NetPay,
	}
	if req.Status != nil {
		s := loanDomain.Status(*req.Status)
		in.Status = &s
	}
	if req.Remark != nil {
		r := loanDomain.Remark(*req.Remark)
		in.Remark = &r
	}

	dto, err := h.uc.Edit(c.Request().Context(), a, loanID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *LoanHandler) GetLoan(c echo.Context) error {
	a, ok := actor(c)
	if !ok {
		return unauthorized(c)
	}
	dto, err := h.uc.Get(c.Request().Context(), a, c.Param("loan_id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

// MatureLoan and LiquidateLoan are the programmatic closure hooks used by
// the disbursement/collection processes.
func (h *LoanHandler) MatureLoan(c echo.Context) error {
	a, ok := actor(c)
	if !ok {
		return unauthorized(c)
	}
	dto, err := h.uc.Mature(c.Request().Context(), a, c.Param("loan_id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *LoanHandler) LiquidateLoan(c echo.Context) error {
	a, ok := actor(c)
	if !ok {
		return unauthorized(c)
	}
	dto, err := h.uc.Liquidate(c.Request().Context(), a, c.Param("loan_id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}
