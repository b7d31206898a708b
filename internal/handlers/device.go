package handlers

import (
	"errors"
	"net/http"

	"anti_bark/internal/device"
	"anti_bark/internal/hardware"
	"anti_bark/internal/service"

	"github.com/gin-gonic/gin"
)

// Common response/status constants to avoid magic strings and typos.
const (
	statusOK     = "ok"
	statusQueued = "queued"

	errGetState        = "failed to load device state"
	errNotReady        = "device is starting"
	errQueueBusy       = "remote receiver busy, retry"
	errPressKey        = "failed to queue key"
	errInvalidBodyPref = "invalid body: "
)

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}

// keyRequest is the virtual remote payload.
type keyRequest struct {
	Key string `json:"key" binding:"required"`
}

// PressKeyRequest is an exported model for Swagger docs of the pressKey payload.
type PressKeyRequest struct {
	// Remote key. Allowed: OK, LEFT, RIGHT, UP, DOWN, STAR (*), HASH (#, DIEZ), 0-9
	Key string `json:"key" example:"LEFT"`
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": statusOK,
	})
}

// @Summary      Press a remote key
// @Description  Queues one IR key for the control loop. The outcome is visible in /device/state and /logs.
// @Tags         remote
// @Accept       json
// @Produce      json
// @Param        body  body   PressKeyRequest  true  "Key payload"
// @Success      202   {object}  map[string]string
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      429   {object}  map[string]string
// @Router       /api/v1/remote/keys [post]
// @Security     BearerAuth
func (h *Handler) pressKey(c *gin.Context) {
	var req keyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}
	err := h.services.Remote.PressKey(c.Request.Context(), req.Key)
	switch {
	case err == nil:
		if h.log != nil {
			opID, _ := operatorID(c)
			h.log.Infow("remote_key_pressed", "key", req.Key, "operator_id", opID)
		}
		c.JSON(http.StatusAccepted, gin.H{"status": statusQueued, "key": req.Key})
	case errors.Is(err, device.ErrUnknownKey), errors.Is(err, service.ErrKeyRequired):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, hardware.ErrQueueFull):
		h.logAndJSONError(c, http.StatusTooManyRequests, errQueueBusy, "remote_queue_full", err, "key", req.Key)
	default:
		h.logAndJSONError(c, http.StatusInternalServerError, errPressKey, "remote_press_failed", err, "key", req.Key)
	}
}

// @Summary      Get device state
// @Tags         device
// @Produce      json
// @Success      200  {object}  models.DeviceState
// @Failure      401  {object}  map[string]string
// @Failure      503  {object}  map[string]string
// @Router       /api/v1/device/state [get]
// @Security     BearerAuth
func (h *Handler) getState(c *gin.Context) {
	st, err := h.services.Monitoring.GetState(c.Request.Context())
	if err != nil {
		h.stateError(c, err)
		return
	}
	c.JSON(http.StatusOK, st)
}

// @Summary      Get active frequency bounds and interval
// @Tags         device
// @Produce      json
// @Success      200  {object}  models.Bounds
// @Failure      401  {object}  map[string]string
// @Failure      503  {object}  map[string]string
// @Router       /api/v1/device/bounds [get]
// @Security     BearerAuth
func (h *Handler) getBounds(c *gin.Context) {
	b, err := h.services.Monitoring.GetBounds(c.Request.Context())
	if err != nil {
		h.stateError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

func (h *Handler) stateError(c *gin.Context, err error) {
	if errors.Is(err, service.ErrDeviceNotReady) {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": errNotReady})
		return
	}
	h.logAndJSONError(c, http.StatusInternalServerError, errGetState, "device_get_state_failed", err)
}
