package customer

import (
	"time"

	"lendcore-backend/internal/domain/apperror"
	"lendcore-backend/internal/domain/customer"
)

const dateLayout = "2006-01-02"

// applyCustomerAlteration writes a stored review alteration onto the live
// customer. Dates travel as YYYY-MM-DD strings inside the JSON map. The
// field set is closed; unknown keys are rejected. Returns whether either
// cascade-relevant date changed.
func applyCustomerAlteration(c *customer.Customer, alt map[string]any) (bool, error) {
	datesChanged := false
	for key, raw := range alt {
		switch key {
		case "first_name":
			s, ok := raw.(string)
			if !ok || s == "" {
				return false, apperror.Validation("firstName", "must be a non-empty string")
			}
			c.FirstName = s
		case "last_name":
			s, ok := raw.(string)
			if !ok || s == "" {
				return false, apperror.Validation("lastName", "must be a non-empty string")
			}
			c.LastName = s
		case "phone":
			s, ok := raw.(string)
			if !ok {
				return false, apperror.Validation("phone", "must be a string")
			}
			c.Phone = s
		case "employment_code":
			s, ok := raw.(string)
			if !ok || s == "" {
				return false, apperror.Validation("employmentCode", "must be a non-empty string")
			}
			c.EmploymentCode = s
		case "segment_id":
			s, ok := raw.(string)
			if !ok || s == "" {
				return false, apperror.Validation("segmentId", "must be a non-empty string")
			}
			c.SegmentID = s
		case "birth_date":
			d, err := parseDate(raw, "birthDate")
			if err != nil {
				return false, err
			}
			c.BirthDate = d
			datesChanged = true
		case "employment_start_date":
			d, err := parseDate(raw, "employmentStartDate")
			if err != nil {
				return false, err
			}
			c.EmploymentStartDate = d
			datesChanged = true
		default:
			return false, apperror.Validationf(key, "is not an editable customer field")
		}
	}
	return datesChanged, nil
}

func parseDate(raw any, field string) (time.Time, error) {
	s, ok := raw.(string)
	if !ok {
		return time.Time{}, apperror.Validation(field, "must be a YYYY-MM-DD string")
	}
	d, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, apperror.Validation(field, "must be a YYYY-MM-DD string")
	}
	return d.UTC(), nil
}
