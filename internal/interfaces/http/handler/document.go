package handler

import (
	"errors"
	"io"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ginvoice/backend/internal/infrastructure/storage"
	"github.com/ginvoice/backend/internal/interfaces/http/dto"
)

// maxDocumentSize caps uploads at 20 MiB, enough for scanned invoices
const maxDocumentSize = 20 << 20

// allowed document kinds, matching the storage namespace partitions
var documentKinds = map[string]bool{
	"invoices":     true,
	"certificates": true,
	"evidence":     true,
}

// DocumentHandler handles document upload and download endpoints. The
// returned docRef is what the aggregates store; the bytes themselves never
// pass through the database.
type DocumentHandler struct {
	BaseHandler
	store storage.DocumentStore
}

// NewDocumentHandler creates a new DocumentHandler
func NewDocumentHandler(store storage.DocumentStore) *DocumentHandler {
	return &DocumentHandler{
		store: store,
	}
}

// UploadDocumentResponse carries the reference of a stored document
type UploadDocumentResponse struct {
	DocRef string `json:"doc_ref"`
}

// PresignDownloadResponse carries a time-limited download URL
type PresignDownloadResponse struct {
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Upload godoc
// @Summary      Upload a document
// @Description  Stores the file and returns the opaque docRef to attach to an aggregate
// @Tags         documents
// @Accept       multipart/form-data
// @Produce      json
// @Param        kind formData string true "Namespace: invoices, certificates or evidence"
// @Param        file formData file true "Document file"
// @Success      201 {object} dto.Response{data=UploadDocumentResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      502 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /documents [post]
func (h *DocumentHandler) Upload(c *gin.Context) {
	kind := c.PostForm("kind")
	if !documentKinds[kind] {
		h.BadRequest(c, "Unknown document kind")
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		h.BadRequest(c, "Missing file")
		return
	}
	if fileHeader.Size > maxDocumentSize {
		h.BadRequest(c, "File exceeds the size limit")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.BadRequest(c, "Cannot read file")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxDocumentSize))
	if err != nil {
		h.InternalError(c, "Failed to read upload")
		return
	}

	docRef, err := h.store.Put(c.Request.Context(), kind, fileHeader.Filename, data, fileHeader.Header.Get("Content-Type"))
	if err != nil {
		// Unknown outcome must not look like success; the caller retries
		// without having advanced any aggregate status
		if errors.Is(err, storage.ErrOutcomeUnknown) {
			h.ErrorWithCode(c, dto.ErrCodeExternalDependency, "Document storage did not confirm the upload")
			return
		}
		h.ErrorWithCode(c, dto.ErrCodeExternalDependency, "Document storage is unavailable")
		return
	}

	h.Created(c, UploadDocumentResponse{DocRef: docRef})
}

// PresignDownload godoc
// @Summary      Get a time-limited download URL for a docRef
// @Tags         documents
// @Produce      json
// @Param        doc_ref query string true "Document reference"
// @Success      200 {object} dto.Response{data=PresignDownloadResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /documents/download-url [get]
func (h *DocumentHandler) PresignDownload(c *gin.Context) {
	docRef := c.Query("doc_ref")
	if docRef == "" {
		h.BadRequest(c, "doc_ref is required")
		return
	}

	exists, err := h.store.Exists(c.Request.Context(), docRef)
	if err != nil {
		h.ErrorWithCode(c, dto.ErrCodeExternalDependency, "Document storage is unavailable")
		return
	}
	if !exists {
		h.NotFound(c, "Document not found")
		return
	}

	url, expiresAt, err := h.store.PresignDownload(c.Request.Context(), docRef, 15*time.Minute)
	if err != nil {
		h.ErrorWithCode(c, dto.ErrCodeExternalDependency, "Document storage is unavailable")
		return
	}

	h.Success(c, PresignDownloadResponse{URL: url, ExpiresAt: expiresAt})
}

// RegisterRoutes registers document routes
func (h *DocumentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	documents := rg.Group("/documents")
	{
		documents.POST("", h.Upload)
		documents.GET("/download-url", h.PresignDownload)
	}
}
