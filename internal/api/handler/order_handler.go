package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/virtualvault/storefront/internal/api/metrics"
	"github.com/virtualvault/storefront/internal/core/domain"
	"github.com/virtualvault/storefront/internal/core/ports"
)

// IdempotencyKeyHeader lets a client retry a checkout without paying twice.
const IdempotencyKeyHeader = "Idempotency-Key"

// OrderHandler serves checkout and the order lifecycle endpoints.
//
// Order listings and the status update answer with bare JSON (an array or a
// single order) instead of the usual envelope; existing clients read them
// that way.
type OrderHandler struct {
	service ports.OrderService
	log     zerolog.Logger
}

func NewOrderHandler(service ports.OrderService, log zerolog.Logger) *OrderHandler {
	return &OrderHandler{service: service, log: log}
}

type cartItem struct {
	ID string `json:"_id" validate:"required"`
}

type checkoutRequest struct {
	Cart  []cartItem `json:"cart" validate:"required,min=1,dive"`
	Nonce string     `json:"nonce"`
}

type orderStatusRequest struct {
	Status string `json:"status"`
}

// Orders lists the caller's own orders.
//
// @Summary      List own orders
// @Tags         orders
// @Produce      json
// @Security     TokenAuth
// @Success      200  {array}   domain.Order
// @Failure      401  {object}  map[string]any
// @Failure      500  {object}  map[string]any
// @Router       /auth/orders [get]
func (h *OrderHandler) Orders(c echo.Context) error {
	orders, err := h.service.ListForBuyer(c.Request().Context(), callerID(c))
	if err != nil {
		h.log.Error().Err(err).Str("buyer_id", callerID(c)).Msg("list orders failed")
		return failure(c, http.StatusInternalServerError, "Error While Getting Orders", err)
	}
	return c.JSON(http.StatusOK, nonNilOrders(orders))
}

// AllOrders lists every order, newest first.
//
// @Summary      List all orders
// @Tags         orders
// @Produce      json
// @Security     TokenAuth
// @Success      200  {array}   domain.Order
// @Failure      401  {object}  map[string]any
// @Failure      500  {object}  map[string]any
// @Router       /auth/all-orders [get]
func (h *OrderHandler) AllOrders(c echo.Context) error {
	orders, err := h.service.ListAll(c.Request().Context())
	if err != nil {
		h.log.Error().Err(err).Msg("list all orders failed")
		return failure(c, http.StatusInternalServerError, "Error While Getting Orders", err)
	}
	return c.JSON(http.StatusOK, nonNilOrders(orders))
}

// UpdateStatus sets the fulfilment status of one order. The body is the
// updated order, or null when the id matches nothing.
//
// @Summary      Change order status
// @Tags         orders
// @Accept       json
// @Produce      json
// @Security     TokenAuth
// @Param        orderId  path      string              true  "Order id"
// @Param        body     body      orderStatusRequest  true  "New status"
// @Success      200      {object}  domain.Order
// @Failure      400      {object}  map[string]any
// @Failure      401      {object}  map[string]any
// @Failure      500      {object}  map[string]any
// @Router       /auth/order-status/{orderId} [put]
func (h *OrderHandler) UpdateStatus(c echo.Context) error {
	var req orderStatusRequest
	if err := c.Bind(&req); err != nil {
		return failure(c, http.StatusBadRequest, "invalid payload", nil)
	}

	orderID := c.Param("orderId")
	order, err := h.service.UpdateStatus(c.Request().Context(), callerID(c), orderID, req.Status)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidOrderStatus) {
			metrics.OrderStatusUpdatesTotal.WithLabelValues("invalid").Inc()
			return failure(c, http.StatusBadRequest, "invalid order status", err)
		}
		h.log.Error().Err(err).Str("order_id", orderID).Msg("order status update failed")
		return failure(c, http.StatusInternalServerError, "Error While Updateing Order", err)
	}

	if order == nil {
		metrics.OrderStatusUpdatesTotal.WithLabelValues("not_found").Inc()
		return c.JSON(http.StatusOK, nil)
	}
	metrics.OrderStatusUpdatesTotal.WithLabelValues(string(order.Status)).Inc()
	return c.JSON(http.StatusOK, order)
}

// Checkout charges the cart total and stores the order when the payment
// is approved.
//
// @Summary      Pay for a cart
// @Tags         orders
// @Accept       json
// @Produce      json
// @Security     TokenAuth
// @Param        Idempotency-Key  header    string           false  "Client retry key"
// @Param        body             body      checkoutRequest  true   "Cart and payment nonce"
// @Success      200              {object}  map[string]any
// @Failure      400              {object}  map[string]any
// @Failure      401              {object}  map[string]any
// @Failure      404              {object}  map[string]any
// @Failure      500              {object}  map[string]any
// @Router       /product/checkout [post]
func (h *OrderHandler) Checkout(c echo.Context) error {
	var req checkoutRequest
	if err := c.Bind(&req); err != nil {
		return failure(c, http.StatusBadRequest, "invalid payload", nil)
	}
	if err := c.Validate(&req); err != nil {
		metrics.CheckoutsTotal.WithLabelValues("invalid").Inc()
		return failure(c, http.StatusBadRequest, "Cart is required", nil)
	}

	ids := make([]string, len(req.Cart))
	for i, item := range req.Cart {
		ids[i] = item.ID
	}

	result, err := h.service.Checkout(c.Request().Context(), ports.CheckoutInput{
		BuyerID:        callerID(c),
		ProductIDs:     ids,
		Nonce:          req.Nonce,
		IdempotencyKey: c.Request().Header.Get(IdempotencyKeyHeader),
	})
	switch {
	case errors.Is(err, domain.ErrProductNotFound):
		metrics.CheckoutsTotal.WithLabelValues("invalid").Inc()
		return failure(c, http.StatusNotFound, "Product not found", err)
	case errors.Is(err, domain.ErrEmptyCart):
		metrics.CheckoutsTotal.WithLabelValues("invalid").Inc()
		return failure(c, http.StatusBadRequest, "Cart is required", nil)
	case errors.Is(err, domain.ErrCheckoutInProgress):
		metrics.CheckoutsTotal.WithLabelValues("in_progress").Inc()
		return failure(c, http.StatusConflict, "Checkout already in progress", nil)
	case err != nil:
		metrics.CheckoutsTotal.WithLabelValues("error").Inc()
		h.log.Error().Err(err).Str("buyer_id", callerID(c)).Msg("checkout failed")
		return failure(c, http.StatusInternalServerError, "Error in payment", err)
	}

	switch {
	case result.Replayed:
		metrics.CheckoutsTotal.WithLabelValues("replayed").Inc()
		return c.JSON(http.StatusOK, echo.Map{"ok": true, "replayed": true, "orderId": result.ReplayedOrderID})
	case !result.Approved:
		metrics.CheckoutsTotal.WithLabelValues("declined").Inc()
		return c.JSON(http.StatusOK, echo.Map{"ok": false, "payment": result.Payment})
	}
	metrics.CheckoutsTotal.WithLabelValues("approved").Inc()
	return c.JSON(http.StatusOK, echo.Map{"ok": true, "order": result.Order})
}

func nonNilOrders(orders []*domain.Order) []*domain.Order {
	if orders == nil {
		return []*domain.Order{}
	}
	return orders
}
