// internal/handler/tab_event/tab_event_handler.go
package handler

import (
	"errors"
	"net/http"

	"github.com/dinerozz/tabsnoop-backend/internal/entity"
	"github.com/dinerozz/tabsnoop-backend/internal/model/response/wrapper"
	service "github.com/dinerozz/tabsnoop-backend/internal/service/tab_event"
	"github.com/gin-gonic/gin"
)

type TabEventHandler struct {
	service service.TabEventService
}

func NewTabEventHandler(service service.TabEventService) *TabEventHandler {
	return &TabEventHandler{
		service: service,
	}
}

// CreateEvent godoc
// @Summary      Deliver a host event
// @Description  Apply one tab, window or idle event to the activity tracker
// @Tags         /api/v1/events
// @Accept       json
// @Produce      json
// @Param        event  body      entity.TabEventRequest  true  "Host event"
// @Success      202    {object}  wrapper.ResponseWrapper{data=entity.TrackerState}
// @Failure      400    {object}  wrapper.ErrorWrapper
// @Failure      500    {object}  wrapper.ErrorWrapper
// @Router       /events [post]
func (h *TabEventHandler) CreateEvent(c *gin.Context) {
	var req entity.TabEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, wrapper.ErrorWrapper{
			Message: "Invalid request body: " + err.Error(),
		})
		return
	}

	if err := h.service.HandleEvent(c.Request.Context(), req); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, service.ErrInvalidEvent) {
			status = http.StatusBadRequest
		}
		c.JSON(status, wrapper.ErrorWrapper{
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusAccepted, wrapper.ResponseWrapper{
		Data:    h.service.GetState(),
		Success: true,
	})
}

// BatchCreateEvents godoc
// @Summary      Deliver several host events
// @Description  Apply events in order; a failing event does not stop the rest
// @Tags         /api/v1/events
// @Accept       json
// @Produce      json
// @Param        events  body      entity.BatchTabEventRequest  true  "Host events"
// @Success      202     {object}  wrapper.ResponseWrapper{data=entity.BatchTabEventResponse}
// @Failure      400     {object}  wrapper.ErrorWrapper
// @Router       /events/batch [post]
func (h *TabEventHandler) BatchCreateEvents(c *gin.Context) {
	var req entity.BatchTabEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, wrapper.ErrorWrapper{
			Message: "Invalid request body: " + err.Error(),
		})
		return
	}

	resp, err := h.service.HandleBatch(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, wrapper.ErrorWrapper{
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusAccepted, wrapper.ResponseWrapper{
		Data:    resp,
		Success: resp.Failed == 0,
	})
}

// GetState godoc
// @Summary      Tracker state
// @Description  Active tab, active url, open intervals and idle flag
// @Tags         /api/v1/tracker
// @Produce      json
// @Success      200  {object}  wrapper.ResponseWrapper{data=entity.TrackerState}
// @Router       /tracker/state [get]
func (h *TabEventHandler) GetState(c *gin.Context) {
	c.JSON(http.StatusOK, wrapper.ResponseWrapper{
		Data:    h.service.GetState(),
		Success: true,
	})
}

// GetSettings godoc
// @Summary      Tracker settings for the extension
// @Description  Idle detection threshold and ignored url schemes
// @Tags         /api/v1/tracker
// @Produce      json
// @Success      200  {object}  wrapper.ResponseWrapper{data=entity.TrackerSettings}
// @Router       /tracker/config [get]
func (h *TabEventHandler) GetSettings(c *gin.Context) {
	c.JSON(http.StatusOK, wrapper.ResponseWrapper{
		Data:    h.service.GetSettings(),
		Success: true,
	})
}
