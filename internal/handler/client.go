package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/zvanbay-arch/transfer-test/internal/middleware"
	"github.com/zvanbay-arch/transfer-test/internal/service"
)

// ClientHandler handles HTTP requests for the client surface.
type ClientHandler struct {
	orderService  *service.OrderService
	reviewService *service.ReviewService
}

// NewClientHandler creates a new ClientHandler.
func NewClientHandler(orderService *service.OrderService, reviewService *service.ReviewService) *ClientHandler {
	return &ClientHandler{
		orderService:  orderService,
		reviewService: reviewService,
	}
}

// Profile handles GET /api/clients/profile
func (h *ClientHandler) Profile(c *gin.Context) {
	user := middleware.CurrentUser(c)
	c.JSON(http.StatusOK, toUserResponse(user))
}

// Orders handles GET /api/clients/orders
func (h *ClientHandler) Orders(c *gin.Context) {
	user := middleware.CurrentUser(c)

	orders, err := h.orderService.ListForClient(c.Request.Context(), user.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toOrderResponses(orders))
}

// CreateOrder handles POST /api/clients/orders/create, the form-style
// creation path.
func (h *ClientHandler) CreateOrder(c *gin.Context) {
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

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Order created successfully",
		"order_id": order.ID,
	})
}

// Stats handles GET /api/clients/stats
func (h *ClientHandler) Stats(c *gin.Context) {
	user := middleware.CurrentUser(c)

	stats, err := h.orderService.StatsForClient(c.Request.Context(), user.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"total_orders":     stats.TotalOrders,
		"completed_orders": stats.CompletedOrders,
		"pending_orders":   stats.PendingOrders,
		"total_spent":      stats.TotalSpent,
	})
}

// ReviewRequest is the HTTP request body for reviewing an order.
type ReviewRequest struct {
	Rating  int    `json:"rating" form:"rating"`
	Comment string `json:"comment" form:"comment"`
}

// ReviewOrder handles POST /api/clients/orders/:id/review
func (h *ClientHandler) ReviewOrder(c *gin.Context) {
	var req ReviewRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	user := middleware.CurrentUser(c)

	review, err := h.reviewService.ReviewOrder(c.Request.Context(), user.ID, c.Param("id"), req.Rating, req.Comment)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":   "Review submitted",
		"review_id": review.ID,
	})
}
