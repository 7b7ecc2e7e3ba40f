package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/rehmanpranto/TutorTrack/internal/models"
	appErrors "github.com/rehmanpranto/TutorTrack/pkg/errors"
	"github.com/rehmanpranto/TutorTrack/pkg/response"
)

type attendanceService interface {
	List(ctx context.Context, filter *models.MonthFilter) (*models.AttendanceList, error)
	Upsert(ctx context.Context, req models.UpsertAttendanceRequest) (*models.AttendanceRecord, error)
	Update(ctx context.Context, req models.UpdateAttendanceRequest) (*models.AttendanceRecord, error)
	Delete(ctx context.Context, id int64) error
}

// AttendanceHandler exposes the /attendance endpoints.
type AttendanceHandler struct {
	service attendanceService
}

// NewAttendanceHandler constructs the handler.
func NewAttendanceHandler(service attendanceService) *AttendanceHandler {
	return &AttendanceHandler{service: service}
}

// List godoc
// @Summary List attendance records with a present-day count
// @Tags Attendance
// @Produce json
// @Param month query int false "Calendar month (1-12), requires year"
// @Param year query int false "Calendar year, requires month"
// @Success 200 {object} models.AttendanceList
// @Router /attendance [get]
func (h *AttendanceHandler) List(c *gin.Context) {
	filter, err := parseMonthFilter(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	list, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, list)
}

// Upsert godoc
// @Summary Create or overwrite the record for a date
// @Tags Attendance
// @Accept json
// @Produce json
// @Success 200 {object} models.AttendanceRecord
// @Router /attendance [post]
func (h *AttendanceHandler) Upsert(c *gin.Context) {
	var req models.UpsertAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid request body"))
		return
	}

	record, err := h.service.Upsert(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, record)
}

// Update godoc
// @Summary Overwrite a record's mutable fields by id
// @Tags Attendance
// @Accept json
// @Produce json
// @Success 200 {object} models.AttendanceRecord
// @Router /attendance [put]
func (h *AttendanceHandler) Update(c *gin.Context) {
	var req models.UpdateAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid request body"))
		return
	}

	record, err := h.service.Update(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, record)
}

// Delete godoc
// @Summary Delete a record by id
// @Tags Attendance
// @Produce json
// @Param id query int true "Record id"
// @Router /attendance [delete]
func (h *AttendanceHandler) Delete(c *gin.Context) {
	raw := c.Query("id")
	if raw == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "id is required"))
		return
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "id must be an integer"))
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusOK, "attendance record deleted successfully")
}

// parseMonthFilter reads the optional month/year pair; supplying only one of
// the two is a validation error.
func parseMonthFilter(c *gin.Context) (*models.MonthFilter, error) {
	rawMonth := c.Query("month")
	rawYear := c.Query("year")
	if rawMonth == "" && rawYear == "" {
		return nil, nil
	}
	if rawMonth == "" || rawYear == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "month and year must be supplied together")
	}

	month, err := strconv.Atoi(rawMonth)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "month must be an integer")
	}
	year, err := strconv.Atoi(rawYear)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "year must be an integer")
	}

	return &models.MonthFilter{Month: month, Year: year}, nil
}
