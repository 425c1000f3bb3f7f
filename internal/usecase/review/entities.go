package review

import (
	"time"

	"lendcore-backend/internal/domain/review"
)

type SubmitInput struct {
	TargetType string         `json:"target_type"`
	TargetID   string         `json:"target_id"`
	Alteration map[string]any `json:"alteration"`
}

// DecideInput doubles as the content-amend payload: without a status it
// replaces the pending request's alteration, with one it decides it.
type DecideInput struct {
	Status     string         `json:"status"`
	Remark     string         `json:"remark"`
	Alteration map[string]any `json:"alteration"`
}

type ReviewDTO struct {
	ReviewID      string         `json:"review_id"`
	TargetType    string         `json:"target_type"`
	TargetID      string         `json:"target_id"`
	Alteration    map[string]any `json:"alteration"`
	Status        string         `json:"status"`
	Remark        string         `json:"remark"`
	CreatedBy     string         `json:"created_by"`
	ModifiedBy    string         `json:"modified_by"`
	TargetDisplay string         `json:"target_display,omitempty"`
	TargetState   string         `json:"target_state,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
}

func toDTO(w *review.WithTarget) *ReviewDTO {
	return &ReviewDTO{
		ReviewID:      w.ReviewID,
		TargetType:    string(w.TargetType),
		TargetID:      w.TargetID,
		Alteration:    w.Alteration,
		Status:        string(w.Status),
		Remark:        w.Remark,
		CreatedBy:     w.CreatedBy,
		ModifiedBy:    w.ModifiedBy,
		TargetDisplay: w.TargetDisplay,
		TargetState:   w.TargetState,
		CreatedAt:     w.CreatedAt,
	}
}
