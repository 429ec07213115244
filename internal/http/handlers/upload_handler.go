// Media upload handler.
//
// POST /uploads/images accepts one multipart image, stores it through the
// BlobStore and returns its public URL. The listing payload then references
// that URL in its images array.
package handlers

import (
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
)

// maxUploadBytes caps one uploaded image.
const maxUploadBytes = 5 << 20 // 5 MiB

// allowedImageTypes is the upload content-type allowlist, mapped to the
// stored file extension.
var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

// UploadImage godoc
// @ID          uploadImage
// @Summary     Upload a listing image
// @Description Stores one multipart image (field "file", jpeg/png/webp, max 5 MiB) and returns its public URL.
// @Tags        Uploads
// @Accept      multipart/form-data
// @Produce     json
// @Security    BearerAuth
//
// @Param       file  formData  file  true  "Image file"
//
// @Success     201  {object}  map[string]any
// @Failure     400  {object}  handlers.ErrorEnvelope  "Missing file"
// @Failure     413  {object}  handlers.ErrorEnvelope  "File too large"
// @Failure     415  {object}  handlers.ErrorEnvelope  "Unsupported content type"
// @Router      /uploads/images [post]
func (h *Handlers) UploadImage(c *gin.Context) {
	if _, authed := caller(c); !authed {
		fail(c, http.StatusUnauthorized, ErrCodeUnauthorized, "missing or invalid credentials")
		return
	}
	if h.Blobs == nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, "media storage is not configured")
		return
	}

	fh, err := c.FormFile("file")
	if err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, `multipart field "file" is required`)
		return
	}
	if fh.Size > maxUploadBytes {
		fail(c, http.StatusRequestEntityTooLarge, ErrCodePayloadTooLarge, "image exceeds 5 MiB")
		return
	}

	ctype := fh.Header.Get("Content-Type")
	ext, allowed := allowedImageTypes[strings.ToLower(strings.TrimSpace(ctype))]
	if !allowed {
		// Fall back to the filename extension for clients that omit the part
		// content type.
		switch strings.ToLower(filepath.Ext(fh.Filename)) {
		case ".jpg", ".jpeg":
			ext, allowed = ".jpg", true
		case ".png":
			ext, allowed = ".png", true
		case ".webp":
			ext, allowed = ".webp", true
		}
	}
	if !allowed {
		fail(c, http.StatusUnsupportedMediaType, ErrCodeUnsupportedMedia, "only jpeg, png and webp images are accepted")
		return
	}

	f, err := fh.Open()
	if err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "unreadable upload")
		return
	}
	defer f.Close()

	url, err := h.Blobs.Save(c.Request.Context(), ext, f)
	if err != nil {
		svcError(c, err)
		return
	}
	ok(c, http.StatusCreated, gin.H{"ok": true, "url": url})
}
