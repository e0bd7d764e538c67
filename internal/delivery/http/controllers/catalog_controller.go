package controllers

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"

	"firstseries/internal/delivery/http/helpers"
	"firstseries/internal/domain"
)

// TableRenderer writes the admin list tables as HTML fragments.
type TableRenderer interface {
	SpeakerTable(w io.Writer, c *domain.Catalog) error
	SponsorTable(w io.Writer, c *domain.Catalog) error
}

// CatalogSuccessResponse is the success envelope for GET /admin/catalog.
type CatalogSuccessResponse struct {
	Data  *domain.Catalog   `json:"data"`
	Error *helpers.APIError `json:"error"`
}

type CatalogController struct {
	Logger   *slog.Logger
	Service  domain.CatalogService
	Renderer TableRenderer
}

func NewCatalogController(logger *slog.Logger, svc domain.CatalogService, renderer TableRenderer) *CatalogController {
	return &CatalogController{
		Logger:   logger,
		Service:  svc,
		Renderer: renderer,
	}
}

// GetCatalog godoc
// @Summary Load the admin catalog
// @Description Returns all speakers, sponsors and their series associations. Any failed read fails the whole load.
// @Tags catalog
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.CatalogSuccessResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/catalog [get]
func (c *CatalogController) GetCatalog(w http.ResponseWriter, r *http.Request) {
	catalog, err := c.Service.LoadAll(r.Context())
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, catalog)
}

// SpeakerTable godoc
// @Summary Speaker table fragment
// @Tags catalog
// @Produce html
// @Security BearerAuth
// @Success 200 {string} string "HTML table"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/speakers/table [get]
func (c *CatalogController) SpeakerTable(w http.ResponseWriter, r *http.Request) {
	c.renderTable(w, r, c.Renderer.SpeakerTable)
}

// SponsorTable godoc
// @Summary Sponsor table fragment
// @Tags catalog
// @Produce html
// @Security BearerAuth
// @Success 200 {string} string "HTML table"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/sponsors/table [get]
func (c *CatalogController) SponsorTable(w http.ResponseWriter, r *http.Request) {
	c.renderTable(w, r, c.Renderer.SponsorTable)
}

func (c *CatalogController) renderTable(w http.ResponseWriter, r *http.Request, render func(io.Writer, *domain.Catalog) error) {
	catalog, err := c.Service.LoadAll(r.Context())
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	var buf bytes.Buffer
	if err := render(&buf, catalog); err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteHTML(w, http.StatusOK, buf.Bytes())
}
