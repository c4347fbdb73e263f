package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-restaurant-orders/internal/application"
	"github.com/oksasatya/go-restaurant-orders/internal/domain/entity"
	"github.com/oksasatya/go-restaurant-orders/internal/interface/middleware"
	"github.com/oksasatya/go-restaurant-orders/pkg/helpers"
	"github.com/oksasatya/go-restaurant-orders/pkg/response"
	"github.com/oksasatya/go-restaurant-orders/pkg/validation"
)

type OrderHandler struct {
	Svc    *application.OrderService
	Logger *logrus.Logger
}

func NewOrderHandler(svc *application.OrderService, logger *logrus.Logger) *OrderHandler {
	return &OrderHandler{Svc: svc, Logger: logger}
}

type orderItemRequest struct {
	MenuItem string `json:"menuItem" binding:"required"`
	Quantity int    `json:"quantity" binding:"qty"`
}

type placeOrderRequest struct {
	Items []orderItemRequest `json:"items" binding:"required,min=1,dive"`
}

type orderItemView struct {
	// MenuItem is the reference id when placing and the expanded catalog
	// item (or null) when listing.
	MenuItem  any     `json:"menuItem"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unitPrice"`
}

type orderView struct {
	ID          string          `json:"id"`
	UserID      string          `json:"userId"`
	Items       []orderItemView `json:"items"`
	TotalAmount float64         `json:"totalAmount"`
	Status      string          `json:"status"`
	CreatedAt   time.Time       `json:"createdAt"`
}

func toOrderView(o entity.Order, expand bool) orderView {
	items := make([]orderItemView, 0, len(o.Items))
	for _, it := range o.Items {
		v := orderItemView{MenuItem: it.MenuItemID, Quantity: it.Quantity, UnitPrice: it.UnitPrice}
		if expand {
			if it.MenuItem != nil {
				v.MenuItem = it.MenuItem
			} else {
				v.MenuItem = nil
			}
		}
		items = append(items, v)
	}
	return orderView{
		ID:          o.ID,
		UserID:      o.UserID,
		Items:       items,
		TotalAmount: o.TotalAmount,
		Status:      string(o.Status),
		CreatedAt:   o.CreatedAt,
	}
}

// PlaceOrder POST /order {items: [{menuItem, quantity}]}
// Success bodies on the order routes are the bare order or order list.
func (h *OrderHandler) PlaceOrder(c *gin.Context) {
	uid, ok := middleware.IdentityFrom(c.Request.Context())
	if !ok {
		response.Error[any](c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	var req placeOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid order details", validation.ToDetails(err))
		return
	}

	items := make([]application.LineItem, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, application.LineItem{MenuItemID: it.MenuItem, Quantity: it.Quantity})
	}
	o, err := h.Svc.PlaceOrder(c.Request.Context(), uid, items)
	if err != nil {
		writeError(c, h.Logger, err, "error placing order")
		return
	}
	helpers.LogInfo(h.Logger, "order placed", logrus.Fields{"order_id": o.ID, "user_id": uid, "total": o.TotalAmount})
	c.JSON(http.StatusOK, toOrderView(*o, false))
}

// ListOrders GET /orders
func (h *OrderHandler) ListOrders(c *gin.Context) {
	uid, ok := middleware.IdentityFrom(c.Request.Context())
	if !ok {
		response.Error[any](c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	orders, err := h.Svc.ListOrders(c.Request.Context(), uid)
	if err != nil {
		writeError(c, h.Logger, err, "error fetching orders")
		return
	}
	out := make([]orderView, 0, len(orders))
	for _, o := range orders {
		out = append(out, toOrderView(o, true))
	}
	c.JSON(http.StatusOK, out)
}
