package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"firstseries/internal/delivery/http/helpers"
	"firstseries/internal/domain"
)

// LineupResponse is the response body for GET /series/{slug}/speakers.
type LineupResponse struct {
	Items      []*domain.Speaker      `json:"items"`
	Pagination helpers.PaginationMeta `json:"pagination"`
}

// LineupSuccessResponse is the success envelope for GET /series/{slug}/speakers.
type LineupSuccessResponse struct {
	Data  LineupResponse    `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// SponsorWallSuccessResponse is the success envelope for GET /series/{slug}/sponsors.
type SponsorWallSuccessResponse struct {
	Data  []domain.TierGroup `json:"data"`
	Error *helpers.APIError  `json:"error"`
}

// ShowcaseController serves published data to the marketing site. No session is required.
type ShowcaseController struct {
	Logger  *slog.Logger
	Service domain.ShowcaseService
}

func NewShowcaseController(logger *slog.Logger, svc domain.ShowcaseService) *ShowcaseController {
	return &ShowcaseController{
		Logger:  logger,
		Service: svc,
	}
}

// ListSeries godoc
// @Summary List event series
// @Tags showcase
// @Produce json
// @Success 200 {object} helpers.APIResponse "data contains the series"
// @Router /series [get]
func (c *ShowcaseController) ListSeries(w http.ResponseWriter, r *http.Request) {
	helpers.WriteJSONSuccess(w, http.StatusOK, c.Service.ListSeries(r.Context()))
}

// Lineup godoc
// @Summary Speaker lineup for a series
// @Description Active speakers in the series ordered by sort_order, paginated.
// @Tags showcase
// @Produce json
// @Param slug path string true "Series slug"
// @Param page query int false "Page number (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Success 200 {object} controllers.LineupSuccessResponse
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /series/{slug}/speakers [get]
func (c *ShowcaseController) Lineup(w http.ResponseWriter, r *http.Request) {
	params := helpers.ParsePagination(r)
	speakers, total, err := c.Service.Lineup(r.Context(), r.PathValue("slug"), params)
	if err != nil {
		c.writeError(w, r, err)
		return
	}
	if speakers == nil {
		speakers = []*domain.Speaker{}
	}
	meta := helpers.NewPaginationMeta(params.Page, params.PageSize, total)
	helpers.WriteJSONSuccess(w, http.StatusOK, LineupResponse{Items: speakers, Pagination: meta})
}

// SponsorWall godoc
// @Summary Sponsor wall for a series
// @Description Active sponsors in the series grouped by tier, highest tier first. Empty tiers are omitted.
// @Tags showcase
// @Produce json
// @Param slug path string true "Series slug"
// @Success 200 {object} controllers.SponsorWallSuccessResponse
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /series/{slug}/sponsors [get]
func (c *ShowcaseController) SponsorWall(w http.ResponseWriter, r *http.Request) {
	groups, err := c.Service.SponsorWall(r.Context(), r.PathValue("slug"))
	if err != nil {
		c.writeError(w, r, err)
		return
	}
	if groups == nil {
		groups = []domain.TierGroup{}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, groups)
}

// writeError reports an unknown series as 404 rather than a bad request.
func (c *ShowcaseController) writeError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, domain.ErrInvalidInput) {
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "series not found")
		return
	}
	writeServiceError(w, r, c.Logger, err)
}
