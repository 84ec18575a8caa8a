package controllers

import (
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/dwellcheck/dwellcheck-backend/internal/dtos"
	"github.com/dwellcheck/dwellcheck-backend/internal/models"
	"github.com/dwellcheck/dwellcheck-backend/internal/storage"
	"github.com/dwellcheck/dwellcheck-backend/internal/utils"
)

// Multipart memory ceiling; anything larger spills to temp files.
const uploadMemoryLimit = 16 << 20

type UploadController struct {
	store storage.ObjectStorage
}

func NewUploadController(store storage.ObjectStorage) *UploadController {
	return &UploadController{store: store}
}

// UploadHandler => POST /api/v1/uploads
//
// Expects a multipart form with a "file" part plus "report_id" and
// "owner_id" fields tying the object to the report tree.
func (c *UploadController) UploadHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	if err := r.ParseMultipartForm(uploadMemoryLimit); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid multipart form", nil, err)
		return
	}

	reportID, err := uuid.Parse(r.FormValue("report_id"))
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Malformed report_id", nil, err)
		return
	}
	ownerID, err := uuid.Parse(r.FormValue("owner_id"))
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Malformed owner_id", nil, err)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Missing file part", nil, err)
		return
	}
	defer file.Close()

	if header.Size > models.MaxWalkthroughBytes {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "File exceeds the upload size limit", nil)
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusInternalServerError, utils.ErrCodeInternal, "Could not read upload", nil, err)
		return
	}

	ext := strings.TrimPrefix(filepath.Ext(header.Filename), ".")
	if ext == "" {
		ext = "bin"
	}
	path := storage.ObjectPath(userID, reportID, ownerID, ext)

	url, err := c.store.Put(r.Context(), data, path)
	if err != nil {
		utils.Logger.WithError(err).Error("store upload")
		utils.RespondErrorWithCode(w, http.StatusServiceUnavailable, utils.ErrCodeTransientIO, "Could not store the upload", nil, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, dtos.UploadResponse{URL: url})
}
