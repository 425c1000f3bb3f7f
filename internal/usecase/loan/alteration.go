package loan

import (
	"lendcore-backend/internal/domain/apperror"
	"lendcore-backend/internal/domain/loan"
)

// decodeLoanAlteration converts a stored review alteration (a JSON object,
// so numbers arrive as float64) into an edit patch. The field set is
// closed: unknown keys fail validation instead of being dropped.
func decodeLoanAlteration(alt map[string]any) (EditLoanInput, error) {
	var in EditLoanInput
	for key, raw := range alt {
		switch key {
		case "amount":
			f, ok := asFloat(raw)
			if !ok {
				return in, apperror.Validation("amount", "must be a number")
			}
			in.Amount = &f
		case "tenor":
			n, ok := asInt(raw)
			if !ok {
				return in, apperror.Validation("tenor", "must be an integer")
			}
			in.Tenor = &n
		case "recommended_amount":
			f, ok := asFloat(raw)
			if !ok {
				return in, apperror.Validation("recommendedAmount", "must be a number")
			}
			in.RecommendedAmount = &f
		case "recommended_tenor":
			n, ok := asInt(raw)
			if !ok {
				return in, apperror.Validation("recommendedTenor", "must be an integer")
			}
			in.RecommendedTenor = &n
		case "loan_type":
			s, ok := raw.(string)
			if !ok {
				return in, apperror.Validation("loanType", "must be a string")
			}
			in.LoanType = &s
		case "status":
			s, ok := raw.(string)
			if !ok {
				return in, apperror.Validation("status", "must be a string")
			}
			st := loan.Status(s)
			in.Status = &st
		case "remark":
			s, ok := raw.(string)
			if !ok {
				return in, apperror.Validation("remark", "must be a string")
			}
			rm := loan.Remark(s)
			in.Remark = &rm
		case "agent_id":
			s, ok := raw.(string)
			if !ok {
				return in, apperror.Validation("agentId", "must be a string")
			}
			in.AgentID = &s
		case "credit_officer_id":
			s, ok := raw.(string)
			if !ok {
				return in, apperror.Validation("creditOfficerId", "must be a string")
			}
			in.CreditOfficerID = &s
		case "net_pay":
			f, ok := asFloat(raw)
			if !ok {
				return in, apperror.Validation("netPay", "must be a number")
			}
			in.NetPay = &f
		default:
			return in, apperror.Validationf(key, "is not an editable loan field")
		}
	}
	return in, nil
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	}
	return 0, false
}

func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case float64:
		if n != float64(int(n)) {
			return 0, false
		}
		return int(n), true
	case int:
		return n, true
	}
	return 0, false
}
