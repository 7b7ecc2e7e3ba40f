package handler

import (
	"context"
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/rehmanpranto/TutorTrack/internal/models"
	appErrors "github.com/rehmanpranto/TutorTrack/pkg/errors"
	"github.com/rehmanpranto/TutorTrack/pkg/response"
)

type reportBuilder interface {
	BuildMonthly(ctx context.Context, month, year int) (*models.MonthlyReport, error)
}

// ReportRenderer turns a structured monthly report into a byte stream with
// an associated content type and filename extension.
type ReportRenderer interface {
	Render(report models.MonthlyReport) ([]byte, error)
	ContentType() string
	Extension() string
}

// ReportHandler exposes the monthly report export endpoint.
type ReportHandler struct {
	service   reportBuilder
	renderers map[string]ReportRenderer
}

// NewReportHandler constructs the handler. Renderers are keyed by the
// `format` query value ("pdf", "excel").
func NewReportHandler(service reportBuilder, renderers map[string]ReportRenderer) *ReportHandler {
	return &ReportHandler{service: service, renderers: renderers}
}

// Export godoc
// @Summary Export a monthly attendance report
// @Tags Reports
// @Produce application/pdf
// @Param month query int true "Calendar month (1-12)"
// @Param year query int true "Calendar year"
// @Param format query string true "pdf or excel"
// @Router /report [get]
func (h *ReportHandler) Export(c *gin.Context) {
	month, err := strconv.Atoi(c.Query("month"))
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "month and year are required"))
		return
	}
	year, err := strconv.Atoi(c.Query("year"))
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "month and year are required"))
		return
	}

	renderer, ok := h.renderers[c.Query("format")]
	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "format must be pdf or excel"))
		return
	}

	report, err := h.service.BuildMonthly(c.Request.Context(), month, year)
	if err != nil {
		response.Error(c, err)
		return
	}

	body, err := renderer.Render(*report)
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render report"))
		return
	}

	filename := fmt.Sprintf("attendance-report-%d-%d.%s", year, month, renderer.Extension())
	response.Attachment(c, filename, renderer.ContentType(), body)
}
