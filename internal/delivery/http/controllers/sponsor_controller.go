package controllers

import (
	"log/slog"
	"net/http"

	"firstseries/internal/delivery/http/helpers"
	"firstseries/internal/domain"
)

// SponsorSuccessResponse is the success envelope for sponsor writes.
type SponsorSuccessResponse struct {
	Data  *domain.Sponsor   `json:"data"`
	Error *helpers.APIError `json:"error"`
}

type SponsorController struct {
	Logger  *slog.Logger
	Service domain.SponsorService
}

func NewSponsorController(logger *slog.Logger, svc domain.SponsorService) *SponsorController {
	return &SponsorController{
		Logger:  logger,
		Service: svc,
	}
}

// CreateSponsor godoc
// @Summary Create a sponsor
// @Description Creates the sponsor and its series associations in one transaction.
// @Tags sponsors
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body domain.SponsorUpsert true "Sponsor with tiered series"
// @Success 201 {object} controllers.SponsorSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/sponsors [post]
func (c *SponsorController) CreateSponsor(w http.ResponseWriter, r *http.Request) {
	var req domain.SponsorUpsert
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	sponsor, err := c.Service.Save(r.Context(), "", req)
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, sponsor)
}

// UpdateSponsor godoc
// @Summary Edit a sponsor
// @Description Updates the sponsor and replaces its series set. Nothing is changed if any part fails.
// @Tags sponsors
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Sponsor ID"
// @Param body body domain.SponsorUpsert true "Sponsor with tiered series"
// @Success 200 {object} controllers.SponsorSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/sponsors/{id} [put]
func (c *SponsorController) UpdateSponsor(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing id")
		return
	}
	var req domain.SponsorUpsert
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	sponsor, err := c.Service.Save(r.Context(), id, req)
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, sponsor)
}

// DeleteSponsor godoc
// @Summary Delete a sponsor
// @Description Removes the sponsor's series rows and then the sponsor. Requires confirm=true.
// @Tags sponsors
// @Security BearerAuth
// @Param id path string true "Sponsor ID"
// @Param confirm query bool true "Must be true"
// @Success 204
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/sponsors/{id} [delete]
func (c *SponsorController) DeleteSponsor(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing id")
		return
	}
	if !deleteConfirmed(r) {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "delete must be confirmed with confirm=true")
		return
	}
	if err := c.Service.Delete(r.Context(), id); err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteNoContent(w)
}
