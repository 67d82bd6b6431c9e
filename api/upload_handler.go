package api

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/portfolio-site-backend/errs"
	"github.com/rpupo63/portfolio-site-backend/services"
)

const (
	maxUploadRequest = 64 << 20
	uploadMemory     = 32 << 20
)

type uploadHandler struct {
	responder Responder
	logger    zerolog.Logger
	images    *services.ImageIntake
}

func newUploadHandler(images *services.ImageIntake) uploadHandler {
	logger := log.With().Str("handlerName", "uploadHandler").Logger()

	return uploadHandler{
		responder: NewResponder(logger),
		logger:    logger,
		images:    images,
	}
}

// upload stores the images posted as "files"
// @Summary Upload images
// @Description Any file over 5MB rejects the batch. Files over 2MB are stored with a warning.
// @Tags Admin Uploads
// @Accept multipart/form-data
// @Produce json
// @Param files formData file true "Images"
// @Success 200 {object} services.UploadResult
// @Failure 413 {object} ErrorResponse "Request Entity Too Large - File over 5MB"
// @Failure 415 {object} ErrorResponse "Unsupported Media Type - Not an image"
// @Failure 503 {object} ErrorResponse "Service Unavailable - Storage not configured"
// @Router /admin/uploads [post]
func (h uploadHandler) upload() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if h.images == nil {
			h.responder.WriteError(w, errs.NewServiceUnavailableError("image storage", nil))
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, maxUploadRequest)
		if err := r.ParseMultipartForm(uploadMemory); err != nil {
			var maxErr *http.MaxBytesError
			if errors.As(err, &maxErr) {
				h.responder.WriteError(w, errs.NewMaxBodySizeExceededError(maxErr.Limit))
				return
			}
			h.responder.WriteError(w, errs.NewMalformedPayloadError("multipart", err))
			return
		}
		defer r.MultipartForm.RemoveAll()

		files, err := readImageFiles(r.MultipartForm.File["files"])
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		result, err := h.images.Process(r.Context(), files)
		if err != nil {
			if errs.IsMaxBodySizeExceededError(err) {
				h.logger.Info().Int("files", len(files)).Msg("upload batch rejected, file over size limit")
			}
			h.responder.WriteError(w, err)
			return
		}

		if len(result.Failed) > 0 {
			h.logger.Warn().Int("failed", len(result.Failed)).Int("uploaded", len(result.Uploaded)).Msg("some uploads failed")
		}
		h.responder.WriteJSON(w, result)
	}
}

func readImageFiles(headers []*multipart.FileHeader) ([]services.ImageFile, error) {
	files := make([]services.ImageFile, 0, len(headers))
	for _, fh := range headers {
		file := services.ImageFile{Name: fh.Filename, Size: fh.Size}
		// oversized files are rejected by size alone, their content is never read
		if fh.Size <= services.MaxImageSize {
			data, err := readPart(fh)
			if err != nil {
				return nil, err
			}
			file.Data = data
		}
		files = append(files, file)
	}
	return files, nil
}

func readPart(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, errs.NewMalformedPayloadError("multipart", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, errs.NewMalformedPayloadError("multipart", err)
	}
	return data, nil
}
