package v1

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/oficinago/oficinago/internal/api/dto"
	ierr "github.com/oficinago/oficinago/internal/errors"
	"github.com/oficinago/oficinago/internal/logger"
	"github.com/oficinago/oficinago/internal/service"
)

// maxAttachmentBytes bounds one uploaded file; anything larger is rejected at
// the boundary before it can blow up normalization or capture memory
const maxAttachmentBytes = 25 << 20

// defaultListLimit is the history page size when the client does not ask for
// a specific one
const defaultListLimit = 20

type ServiceHandler struct {
	service service.InformService
	log     *logger.Logger
}

func NewServiceHandler(service service.InformService, log *logger.Logger) *ServiceHandler {
	return &ServiceHandler{
		service: service,
		log:     log,
	}
}

// CreateService accepts the multipart service form: the typed fields plus an
// optional list of attachment files under the "fotos" field
func (h *ServiceHandler) CreateService(c *gin.Context) {
	var req dto.CreateServiceRequest
	if err := c.ShouldBind(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	form, err := c.MultipartForm()
	if err == nil && form != nil {
		for _, fh := range form.File["fotos"] {
			if fh.Size > maxAttachmentBytes {
				c.Error(ierr.NewErrorf("attachment %s exceeds size limit", fh.Filename).
					WithHint("Arquivo anexado é grande demais").
					Mark(ierr.ErrValidation))
				return
			}
			f, err := fh.Open()
			if err != nil {
				c.Error(ierr.WithError(err).
					WithHint("Could not read uploaded file").
					Mark(ierr.ErrValidation))
				return
			}
			data, err := io.ReadAll(f)
			f.Close()
			if err != nil {
				c.Error(ierr.WithError(err).
					WithHint("Could not read uploaded file").
					Mark(ierr.ErrValidation))
				return
			}
			req.Files = append(req.Files, dto.FileInput{
				Name:        fh.Filename,
				ContentType: fh.Header.Get("Content-Type"),
				Data:        data,
			})
		}
	}

	resp, err := h.service.CreateRecord(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// ListServices returns recent records for the history view. An absent or
// malformed limit falls back to the default page size.
func (h *ServiceHandler) ListServices(c *gin.Context) {
	limit := defaultListLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			c.Error(ierr.NewErrorf("invalid limit: %s", raw).
				WithHint("limit must be a positive integer").
				Mark(ierr.ErrValidation))
			return
		}
		limit = parsed
	}

	resp, err := h.service.ListRecords(c.Request.Context(), limit)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ServiceHandler) GetService(c *gin.Context) {
	resp, err := h.service.GetRecord(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ShareService runs the full normalize, capture and delivery cascade
func (h *ServiceHandler) ShareService(c *gin.Context) {
	resp, err := h.service.ShareReceipt(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// DownloadService saves the receipt to the outbox and returns the deep link
func (h *ServiceHandler) DownloadService(c *gin.Context) {
	resp, err := h.service.DownloadReceipt(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetReceipt captures and returns the receipt image itself
func (h *ServiceHandler) GetReceipt(c *gin.Context) {
	png, err := h.service.RenderReceiptPNG(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}

// GetStatus reports the interaction state machine snapshot
func (h *ServiceHandler) GetStatus(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.Status())
}
