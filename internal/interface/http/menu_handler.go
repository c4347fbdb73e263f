package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-restaurant-orders/internal/application"
	"github.com/oksasatya/go-restaurant-orders/internal/domain/entity"
	"github.com/oksasatya/go-restaurant-orders/pkg/response"
	"github.com/oksasatya/go-restaurant-orders/pkg/validation"
)

const maxImageBytes = 5 << 20

type MenuHandler struct {
	Svc    *application.MenuService
	Logger *logrus.Logger
}

func NewMenuHandler(svc *application.MenuService, logger *logrus.Logger) *MenuHandler {
	return &MenuHandler{Svc: svc, Logger: logger}
}

type createMenuItemRequest struct {
	Name         string   `json:"name" binding:"required"`
	Category     string   `json:"category"`
	Price        *float64 `json:"price" binding:"required,gte=0"`
	Availability *bool    `json:"availability"`
}

type updateMenuItemRequest struct {
	Name         *string  `json:"name" binding:"omitempty,min=1"`
	Category     *string  `json:"category"`
	Price        *float64 `json:"price" binding:"omitempty,gte=0"`
	Availability *bool    `json:"availability"`
}

// List GET /menu
func (h *MenuHandler) List(c *gin.Context) {
	items, err := h.Svc.List(c.Request.Context())
	if err != nil {
		writeError(c, h.Logger, err, "error fetching menu")
		return
	}
	response.Success(c, http.StatusOK, items, "menu", gin.H{"count": len(items)})
}

// Get GET /menu/:id
func (h *MenuHandler) Get(c *gin.Context) {
	m, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, h.Logger, err, "error fetching menu item")
		return
	}
	response.Success(c, http.StatusOK, m, "menu item", nil)
}

// Create POST /menu
func (h *MenuHandler) Create(c *gin.Context) {
	var req createMenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "missing fields", validation.ToDetails(err))
		return
	}
	m, err := h.Svc.Create(c.Request.Context(), application.CreateMenuItemInput{
		Name:         req.Name,
		Category:     req.Category,
		Price:        req.Price,
		Availability: req.Availability,
	})
	if err != nil {
		writeError(c, h.Logger, err, "error adding menu item")
		return
	}
	response.Success(c, http.StatusCreated, m, "menu item added successfully", nil)
}

// Update PUT /menu/:id
func (h *MenuHandler) Update(c *gin.Context) {
	var req updateMenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	m, err := h.Svc.Update(c.Request.Context(), c.Param("id"), entity.MenuItemPatch{
		Name:         req.Name,
		Category:     req.Category,
		Price:        req.Price,
		Availability: req.Availability,
	})
	if err != nil {
		writeError(c, h.Logger, err, "error updating menu item")
		return
	}
	response.Success(c, http.StatusOK, m, "menu item updated", nil)
}

// Delete DELETE /menu/:id
func (h *MenuHandler) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, h.Logger, err, "error deleting menu item")
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"deleted": true}, "menu item deleted successfully", nil)
}

// Search GET /menu/search?q=&size=
func (h *MenuHandler) Search(c *gin.Context) {
	size, _ := strconv.Atoi(c.Query("size"))
	items, err := h.Svc.SearchItems(c.Request.Context(), c.Query("q"), size)
	if err != nil {
		writeError(c, h.Logger, err, "error searching menu")
		return
	}
	response.Success(c, http.StatusOK, items, "menu search", gin.H{"count": len(items)})
}

// UploadImage POST /menu/:id/image (multipart field "image")
func (h *MenuHandler) UploadImage(c *gin.Context) {
	fh, err := c.FormFile("image")
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "image file is required", nil)
		return
	}
	if fh.Size > maxImageBytes {
		response.Error[any](c, http.StatusRequestEntityTooLarge, "image too large", gin.H{"max_bytes": maxImageBytes})
		return
	}
	f, err := fh.Open()
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "unreadable image", nil)
		return
	}
	defer func() { _ = f.Close() }()

	m, err := h.Svc.UploadImage(c.Request.Context(), c.Param("id"), fh.Filename, fh.Header.Get("Content-Type"), f)
	if err != nil {
		writeError(c, h.Logger, err, "error uploading image")
		return
	}
	response.Success(c, http.StatusOK, m, "image uploaded", nil)
}
