package handlers

import (
	"errors"
	"net/http"

	"surveillance-map/be/logging"
	"surveillance-map/be/middleware"
	"surveillance-map/be/models"
	"surveillance-map/be/services"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

type CameraHandler struct {
	cameras  *services.CameraService
	hub      *services.Hub
	upgrader websocket.Upgrader
}

// NewCameraHandler serves the live feed to browsers whose Origin passes
// allowOrigin.
func NewCameraHandler(cameras *services.CameraService, hub *services.Hub, allowOrigin func(string) bool) *CameraHandler {
	return &CameraHandler{
		cameras: cameras,
		hub:     hub,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || allowOrigin(origin)
			},
		},
	}
}

func (h *CameraHandler) GetCameras(c *gin.Context) {
	cameras := h.cameras.List(c.Request.Context())
	c.JSON(http.StatusOK, models.CameraListResponse{
		Total:   len(cameras),
		Cameras: cameras,
	})
}

func (h *CameraHandler) GetCamera(c *gin.Context) {
	camera, err := h.cameras.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err, "Failed to fetch camera")
		return
	}
	c.JSON(http.StatusOK, camera)
}

func (h *CameraHandler) CreateCamera(c *gin.Context) {
	var req services.CameraInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": bindingMessage(err)})
		return
	}

	camera, err := h.cameras.Create(c.Request.Context(), req, middleware.CurrentUsername(c))
	if err != nil {
		h.respondError(c, err, "Failed to save camera")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "camera": camera})
}

func (h *CameraHandler) UpdateCamera(c *gin.Context) {
	patch, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read request body"})
		return
	}

	camera, err := h.cameras.Update(c.Request.Context(), c.Param("id"), patch, middleware.CurrentUsername(c))
	if err != nil {
		h.respondError(c, err, "Failed to update camera")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "camera": camera})
}

func (h *CameraHandler) DeleteCamera(c *gin.Context) {
	if err := h.cameras.Delete(c.Request.Context(), c.Param("id"), middleware.CurrentUsername(c)); err != nil {
		h.respondError(c, err, "Failed to delete camera")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Camera deleted"})
}

// LiveFeed upgrades to a websocket that receives camera change events.
func (h *CameraHandler) LiveFeed(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade has already written the HTTP error.
		logging.Warn().Err(err).Msg("live feed upgrade failed")
		return
	}
	h.hub.Serve(conn)
}

// respondError maps service errors to status codes; persistence failures use
// the operation-specific message.
func (h *CameraHandler) respondError(c *gin.Context, err error, persistenceMsg string) {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Message})
	case errors.Is(err, services.ErrCameraNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Camera not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": persistenceMsg})
	}
}
