package loan

import (
	"time"

	"lendcore-backend/internal/domain/loan"
)

type CreateLoanInput struct {
	CustomerID      string  `json:"customer_id"`
	Amount          float64 `json:"amount"`
	Tenor           int     `json:"tenor"`
	LoanType        string  `json:"loan_type"`
	NetPay          float64 `json:"net_pay"`
	AgentID         string  `json:"agent_id"`
	CreditOfficerID string  `json:"credit_officer_id"`
}

// EditLoanInput is a partial patch; nil fields are left untouched.
type EditLoanInput struct {
	Amount            *float64     `json:"amount"`
	Tenor             *int         `json:"tenor"`
	RecommendedAmount *float64     `json:"recommended_amount"`
	RecommendedTenor  *int         `json:"recommended_tenor"`
	LoanType          *string      `json:"loan_type"`
	Status            *loan.Status `json:"status"`
	Remark            *loan.Remark `json:"remark"`
	AgentID           *string      `json:"agent_id"`
	CreditOfficerID   *string      `json:"credit_officer_id"`
	NetPay            *float64     `json:"net_pay"`
}

type LoanDTO struct {
	LoanID            string       `json:"loan_id"`
	CustomerID        string       `json:"customer_id"`
	Amount            float64      `json:"amount"`
	Tenor             int          `json:"tenor"`
	RecommendedAmount float64      `json:"recommended_amount"`
	RecommendedTenor  int          `json:"recommended_tenor"`
	LoanType          string       `json:"loan_type"`
	Status            string       `json:"status"`
	Remark            string       `json:"remark"`
	AgentID           string       `json:"agent_id"`
	CreditOfficerID   string       `json:"credit_officer_id"`
	Params            loan.Params  `json:"params"`
	Derived           loan.Derived `json:"derived"`
	CreatedAt         time.Time    `json:"created_at"`
}

func toDTO(l *loan.Loan) *LoanDTO {
	return &LoanDTO{
		LoanID:            l.LoanID,
		CustomerID:        l.CustomerID,
		Amount:            l.Amount,
		Tenor:             l.Tenor,
		RecommendedAmount: l.RecommendedAmount,
		RecommendedTenor:  l.RecommendedTenor,
		LoanType:          l.LoanType,
		Status:            string(l.Status),
		Remark:            string(l.Remark),
		AgentID:           l.AgentID,
		CreditOfficerID:   l.CreditOfficerID,
		Params:            l.Params,
		Derived:           l.Derived,
		CreatedAt:         l.CreatedAt,
	}
}
