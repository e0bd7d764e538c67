package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"firstseries/internal/delivery/http/helpers"
	"firstseries/internal/domain"
)

// multipartOverhead leaves room for the form fields around the file part.
const multipartOverhead = 64 << 10

// MediaSuccessResponse is the success envelope for POST /admin/media.
type MediaSuccessResponse struct {
	Data  *domain.UploadedMedia `json:"data"`
	Error *helpers.APIError     `json:"error"`
}

type MediaController struct {
	Logger  *slog.Logger
	Service domain.MediaService
	MaxSize int64
}

func NewMediaController(logger *slog.Logger, svc domain.MediaService, maxSize int64) *MediaController {
	return &MediaController{
		Logger:  logger,
		Service: svc,
		MaxSize: maxSize,
	}
}

// Upload godoc
// @Summary Upload a speaker photo or sponsor logo
// @Description Stores the image and returns its public URL for photo_url or logo_url.
// @Tags media
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param kind formData string true "speaker-photo or sponsor-logo"
// @Param file formData file true "Image file"
// @Success 201 {object} controllers.MediaSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 413 {object} helpers.APIResponse "error.code: payload_too_large"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/media [post]
func (c *MediaController) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, c.MaxSize+multipartOverhead)
	if err := r.ParseMultipartForm(c.MaxSize); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			helpers.WriteJSONError(w, http.StatusRequestEntityTooLarge, helpers.ErrCodeTooLarge, "file is too large")
			return
		}
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid multipart form")
		return
	}
	defer func() {
		if r.MultipartForm != nil {
			_ = r.MultipartForm.RemoveAll()
		}
	}()

	kind := domain.MediaKind(r.FormValue("kind"))
	file, header, err := r.FormFile("file")
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "file is required")
		return
	}
	defer file.Close()

	if header.Size > c.MaxSize {
		helpers.WriteJSONError(w, http.StatusRequestEntityTooLarge, helpers.ErrCodeTooLarge, "file is too large")
		return
	}
	media, err := c.Service.Upload(r.Context(), kind, header.Filename, file, header.Size)
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, media)
}
