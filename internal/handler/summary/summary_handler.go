package summary

import (
	"context"
	"net/http"
	"time"

	"github.com/dinerozz/tabsnoop-backend/internal/entity"
	"github.com/dinerozz/tabsnoop-backend/internal/model/response/wrapper"
	"github.com/dinerozz/tabsnoop-backend/pkg/utils"
	"github.com/gin-gonic/gin"
)

type SummaryHandler struct {
	service SummaryService
	loc     *time.Location
	now     func() time.Time
}

type SummaryService interface {
	GetSummary(ctx context.Context, day time.Time) (*entity.Summary, error)
	GetDomainRecord(ctx context.Context, domain string) (*entity.DomainRecord, error)
	ClearAll(ctx context.Context) error
}

func NewSummaryHandler(service SummaryService, loc *time.Location) *SummaryHandler {
	return &SummaryHandler{service: service, loc: loc, now: time.Now}
}

// GetSummary godoc
// @Summary      Time spent per domain
// @Description  Per-domain totals sorted descending and the total for one calendar day
// @Tags         /api/v1/summary
// @Produce      json
// @Param        date  query     string  false  "Day to total (YYYY-MM-DD, default today)"
// @Success      200   {object}  wrapper.ResponseWrapper{data=entity.Summary}
// @Failure      400   {object}  wrapper.ErrorWrapper
// @Failure      500   {object}  wrapper.ErrorWrapper
// @Router       /summary [get]
func (h *SummaryHandler) GetSummary(c *gin.Context) {
	day := h.now()

	if dateStr := c.Query("date"); dateStr != "" {
		parsed, err := utils.ParseLocalDate(dateStr, h.loc)
		if err != nil {
			c.JSON(http.StatusBadRequest, wrapper.ErrorWrapper{
				Message: "Invalid date format, use YYYY-MM-DD",
				Success: false,
			})
			return
		}
		day = parsed
	}

	summary, err := h.service.GetSummary(c.Request.Context(), day)
	if err != nil {
		c.JSON(http.StatusInternalServerError, wrapper.ErrorWrapper{
			Message: err.Error(),
			Success: false,
		})
		return
	}

	c.JSON(http.StatusOK, wrapper.ResponseWrapper{
		Data:    summary,
		Success: true,
	})
}

// GetDomainRecord godoc
// @Summary      Stored record of one domain
// @Tags         /api/v1/records
// @Produce      json
// @Param        domain  path      string  true  "Normalized domain"
// @Success      200     {object}  wrapper.ResponseWrapper{data=entity.DomainRecord}
// @Failure      400     {object}  wrapper.ErrorWrapper
// @Router       /records/{domain} [get]
func (h *SummaryHandler) GetDomainRecord(c *gin.Context) {
	record, err := h.service.GetDomainRecord(c.Request.Context(), c.Param("domain"))
	if err != nil {
		c.JSON(http.StatusBadRequest, wrapper.ErrorWrapper{
			Message: err.Error(),
			Success: false,
		})
		return
	}

	c.JSON(http.StatusOK, wrapper.ResponseWrapper{
		Data:    record,
		Success: true,
	})
}

// ClearAll godoc
// @Summary      Clear all stored data
// @Description  Erase every domain record; open intervals keep running
// @Tags         /api/v1/records
// @Produce      json
// @Success      200  {object}  wrapper.SuccessWrapper
// @Failure      500  {object}  wrapper.ErrorWrapper
// @Router       /records [delete]
func (h *SummaryHandler) ClearAll(c *gin.Context) {
	if err := h.service.ClearAll(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, wrapper.ErrorWrapper{
			Message: err.Error(),
			Success: false,
		})
		return
	}

	c.JSON(http.StatusOK, wrapper.SuccessWrapper{
		Message: "All data cleared",
		Success: true,
	})
}
