package http

import (
	"net/http"

	"lendcore-backend/internal/usecase/review"

	"github.com/labstack/echo/v4"
)

type ReviewHandler struct{ uc *review.Usecase }

func NewReviewHandler(uc *review.Usecase) *ReviewHandler { return &ReviewHandler{uc: uc} }

type submitReviewReq struct {
	TargetType string         `json:"target_type" validate:"required,oneof=customer loan"`
	TargetID   string         `json:"target_id"   validate:"required,hex32"`
	Alteration map[string]any `json:"alteration"  validate:"required"`
}

func (h *ReviewHandler) SubmitReview(c echo.Context) error {
	a, ok := actor(c)
	if !ok {
		return unauthorized(c)
	}
	var req submitReviewReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.Submit(c.Request().Context(), a, review.SubmitInput{
		TargetType: req.TargetType,
		TargetID:   req.TargetID,
		Alteration: req.Alteration,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *ReviewHandler) ListReviews(c echo.Context) error {
	a, ok := actor(c)
	if !ok {
		return unauthorized(c)
	}
	out, err := h.uc.List(c.Request().Context(), a)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ReviewHandler) GetReview(c echo.Context) error {
	a, ok := actor(c)
	if !ok {
		return unauthorized(c)
	}
	dto, err := h.uc.Get(c.Request().Context(), a, c.Param("review_id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

type decideReviewReq struct {
	Status     string         `json:"status"     validate:"omitempty,oneof=approved denied"`
	Remark     string         `json:"remark"`
	Alteration map[string]any `json:"alteration"`
}

func (h *ReviewHandler) DecideReview(c echo.Context) error {
	a, ok := actor(c)
	if !ok {
		return unauthorized(c)
	}
	var req decideReviewReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.Decide(c.Request().Context(), a, c.Param("review_id"), review.DecideInput{
		Status:     req.Status,
		Remark:     req.Remark,
		Alteration: req.Alteration,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *ReviewHandler) RemoveReview(c echo.Context) error {
	a, ok := actor(c)
	if !ok {
		return unauthorized(c)
	}
	if err := h.uc.Remove(c.Request().Context(), a, c.Param("review_id")); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
