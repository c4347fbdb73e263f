package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-restaurant-orders/internal/domain/entity"
	repo "github.com/oksasatya/go-restaurant-orders/internal/domain/repository"
	"github.com/oksasatya/go-restaurant-orders/pkg/helpers"
)

// LineItem is one (menu reference, quantity) pair of an order request.
type LineItem struct {
	MenuItemID string
	Quantity   int
}

// OrderService places orders against the live catalog and lists them back.
type OrderService struct {
	Menu   repo.MenuRepository
	Orders repo.OrderRepository
	Events EventPublisher // optional
	Logger *logrus.Logger
}

func NewOrderService(menu repo.MenuRepository, orders repo.OrderRepository, events EventPublisher, logger *logrus.Logger) *OrderService {
	if logger == nil {
		logger = helpers.NewNopLogger()
	}
	return &OrderService{Menu: menu, Orders: orders, Events: events, Logger: logger}
}

// PlaceOrder resolves every line against the catalog in input order, prices
// the order from the prices seen now and persists it as Pending. Nothing is
// stored unless every line resolves.
func (s *OrderService) PlaceOrder(ctx context.Context, userID string, items []LineItem) (*entity.Order, error) {
	if userID == "" {
		return nil, invalid("missing identity")
	}
	if len(items) == 0 {
		helpers.OrdersPlaced.WithLabelValues("invalid").Inc()
		return nil, invalid("items must be a non-empty list")
	}
	for i, it := range items {
		if strings.TrimSpace(it.MenuItemID) == "" {
			helpers.OrdersPlaced.WithLabelValues("invalid").Inc()
			return nil, invalid("items[%d]: menuItem is required", i)
		}
		if it.Quantity < 1 || it.Quantity > MaxQuantity {
			helpers.OrdersPlaced.WithLabelValues("invalid").Inc()
			return nil, invalid("items[%d]: quantity must be between 1 and %d", i, MaxQuantity)
		}
	}

	lines := make([]entity.OrderItem, 0, len(items))
	total := decimal.Zero
	for _, it := range items {
		ref := strings.TrimSpace(it.MenuItemID)
		m, err := s.Menu.GetByID(ctx, ref)
		if errors.Is(err, repo.ErrNotFound) {
			helpers.OrdersPlaced.WithLabelValues("not_found").Inc()
			return nil, &ItemNotFoundError{Ref: ref}
		}
		if err != nil {
			helpers.OrdersPlaced.WithLabelValues("failed").Inc()
			s.Logger.WithError(err).WithField("menu_item_id", ref).Error("resolve menu item failed")
			return nil, persistence("resolve menu item", err)
		}
		unit := toCents(m.Price)
		total = total.Add(unit.Mul(decimal.NewFromInt(int64(it.Quantity))))
		price, _ := unit.Float64()
		lines = append(lines, entity.OrderItem{MenuItemID: m.ID, Quantity: it.Quantity, UnitPrice: price})
	}
	if total.GreaterThanOrEqual(maxAmount) {
		helpers.OrdersPlaced.WithLabelValues("invalid").Inc()
		return nil, invalid("order total must be less than %s", maxAmount.String())
	}

	amount, _ := total.Float64()
	o := &entity.Order{
		UserID:      userID,
		Items:       lines,
		TotalAmount: amount,
		Status:      entity.StatusPending,
	}
	if err := s.Orders.Create(ctx, o); err != nil {
		helpers.OrdersPlaced.WithLabelValues("failed").Inc()
		s.Logger.WithError(err).WithField("user_id", userID).Error("create order failed")
		return nil, persistence("create order", err)
	}
	helpers.OrdersPlaced.WithLabelValues("created").Inc()

	s.publishPlaced(ctx, o)
	return o, nil
}

// ListOrders returns the user's orders with menu references expanded to the
// catalog's current data. Totals are the ones frozen at placement.
func (s *OrderService) ListOrders(ctx context.Context, userID string) ([]entity.Order, error) {
	orders, err := s.Orders.ListByUser(ctx, userID)
	if err != nil {
		s.Logger.WithError(err).WithField("user_id", userID).Error("list orders failed")
		return nil, persistence("list orders", err)
	}
	if orders == nil {
		orders = []entity.Order{}
	}
	return orders, nil
}

// publishPlaced never fails the request: the order is already committed.
func (s *OrderService) publishPlaced(ctx context.Context, o *entity.Order) {
	if s.Events == nil {
		return
	}
	items := make([]OrderPlacedItem, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, OrderPlacedItem{MenuItemID: it.MenuItemID, Quantity: it.Quantity, UnitPrice: it.UnitPrice})
	}
	payload := OrderPlacedPayload{
		OrderID:     o.ID,
		UserID:      o.UserID,
		Items:       items,
		TotalAmount: o.TotalAmount,
		Status:      string(o.Status),
		OccurredAt:  time.Now().UTC(),
	}
	if err := s.Events.Publish(ctx, EventOrderPlaced, payload); err != nil {
		s.Logger.WithError(err).WithField("order_id", o.ID).Warn("publish order event failed")
	}
}
