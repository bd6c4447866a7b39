package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/zvanbay-arch/transfer-test/internal/middleware"
	"github.com/zvanbay-arch/transfer-test/internal/service"
)

// OrderHandler handles HTTP requests for the shared order surface.
type OrderHandler struct {
	orderService *service.OrderService
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(orderService *service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// CreateOrderRequest is the HTTP request body for creating an order.
type CreateOrderRequest struct {
	PickupLocation  string  `json:"pickup_location" form:"pickup_location"`
	DropoffLocation string  `json:"dropoff_location" form:"dropoff_location"`
	PickupTime      string  `json:"pickup_time" form:"pickup_time"`
	PassengersCount int     `json:"passengers_count" form:"passengers_count"`
	LuggageCount    int     `json:"luggage_count" form:"luggage_count"`
	ClientPrice     float64 `json:"client_price" form:"client_price"`
}

// Create handles POST /api/orders/create
func (h *OrderHandler) Create(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	pickupTime, err := parsePickupTime(req.PickupTime)
	if err != nil {
		respondError(c, err)
		return
	}

	user := middleware.CurrentUser(c)

	order, err := h.orderService.Create(c.Request.Context(), service.CreateOrderRequest{
		ClientID:        user.ID,
		PickupLocation:  req.PickupLocation,
		DropoffLocation: req.DropoffLocation,
		PickupTime:      pickupTime,
		PassengersCount: req.PassengersCount,
		LuggageCount:    req.LuggageCount,
		ClientPrice:     req.ClientPrice,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toOrderResponse(order))
}

// Get handles GET /api/orders/:id
func (h *OrderHandler) Get(c *gin.Context) {
	user := middleware.CurrentUser(c)

	order, err := h.orderService.Get(c.Request.Context(), user, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toOrderResponse(order))
}

// DriverOrders handles GET /api/orders/driver/my-orders
func (h *OrderHandler) DriverOrders(c *gin.Context) {
	user := middleware.CurrentUser(c)

	orders, err := h.orderService.ListForDriver(c.Request.Context(), user.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toOrderResponses(orders))
}

// Complete handles POST /api/orders/:id/complete
func (h *OrderHandler) Complete(c *gin.Context) {
	user := middleware.CurrentUser(c)

	order, err := h.orderService.Complete(c.Request.Context(), user.ID, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Order completed successfully",
		"order":   toOrderResponse(order),
	})
}

// Cancel handles POST /api/orders/:id/cancel
func (h *OrderHandler) Cancel(c *gin.Context) {
	user := middleware.CurrentUser(c)

	order, err := h.orderService.Cancel(c.Request.Context(), user, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Order cancelled successfully",
		"order":   toOrderResponse(order),
	})
}

// parsePickupTime accepts RFC3339 and the bare datetime-local forms
// submitted by browser date pickers.
func parsePickupTime(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, service.ErrInvalidPickupTime
	}

	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02T15:04"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}

	return time.Time{}, service.ErrInvalidPickupTime
}
