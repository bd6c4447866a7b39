package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/zvanbay-arch/transfer-test/internal/domain"
	"github.com/zvanbay-arch/transfer-test/internal/middleware"
	"github.com/zvanbay-arch/transfer-test/internal/service"
)

// AdminHandler handles HTTP requests for the admin surface.
type AdminHandler struct {
	adminService *service.AdminService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(adminService *service.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

// Dashboard handles GET /api/admin/dashboard
func (h *AdminHandler) Dashboard(c *gin.Context) {
	stats, err := h.adminService.Dashboard(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"stats": gin.H{
			"total_users":      stats.TotalUsers,
			"total_clients":    stats.TotalClients,
			"total_drivers":    stats.TotalDrivers,
			"pending_drivers":  stats.PendingDrivers,
			"total_orders":     stats.TotalOrders,
			"pending_orders":   stats.PendingOrders,
			"completed_orders": stats.CompletedOrders,
			"total_revenue":    stats.TotalRevenue,
		},
	})
}

// Users handles GET /api/admin/users
func (h *AdminHandler) Users(c *gin.Context) {
	role := domain.Role(c.Query("role"))

	users, err := h.adminService.ListUsers(c.Request.Context(), role)
	if err != nil {
		respondError(c, err)
		return
	}

	result := make([]UserResponse, 0, len(users))
	for _, user := range users {
		result = append(result, toUserResponse(user))
	}

	c.JSON(http.StatusOK, result)
}

// PendingDrivers handles GET /api/admin/drivers/pending
func (h *AdminHandler) PendingDrivers(c *gin.Context) {
	pending, err := h.adminService.PendingDrivers(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	result := make([]gin.H, 0, len(pending))
	for _, p := range pending {
		result = append(result, gin.H{
			"profile_id":   p.Profile.ID,
			"user":         toUserResponse(p.User),
			"documents":    toDocumentResponses(p.Documents),
			"submitted_at": p.Profile.CreatedAt,
		})
	}

	c.JSON(http.StatusOK, result)
}

// ApproveDriver handles POST /api/admin/drivers/:id/approve
func (h *AdminHandler) ApproveDriver(c *gin.Context) {
	admin := middleware.CurrentUser(c)

	if err := h.adminService.ApproveDriver(c.Request.Context(), admin.ID, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Driver approved successfully"})
}

// RejectDriverRequest is the HTTP request body for a rejection.
type RejectDriverRequest struct {
	Reason string `json:"reason" form:"reason"`
}

// RejectDriver handles POST /api/admin/drivers/:id/reject
func (h *AdminHandler) RejectDriver(c *gin.Context) {
	var req RejectDriverRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	admin := middleware.CurrentUser(c)

	if err := h.adminService.RejectDriver(c.Request.Context(), admin.ID, c.Param("id"), req.Reason); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Driver rejected"})
}

// Orders handles GET /api/admin/orders/all
func (h *AdminHandler) Orders(c *gin.Context) {
	filter := service.OrderListFilter{
		Status: domain.OrderStatus(c.Query("status")),
	}

	if raw := c.Query("start_date"); raw != "" {
		t, err := parseFilterDate(raw)
		if err != nil {
			respondError(c, err)
			return
		}
		filter.StartDate = t
	}

	if raw := c.Query("end_date"); raw != "" {
		t, err := parseFilterDate(raw)
		if err != nil {
			respondError(c, err)
			return
		}
		filter.EndDate = t
	}

	orders, err := h.adminService.ListOrders(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}

	result := make([]gin.H, 0, len(orders))
	for _, o := range orders {
		entry := gin.H{
			"order":  toOrderResponse(o.Order),
			"client": nil,
			"driver": nil,
		}
		if o.Client != nil {
			entry["client"] = toUserResponse(o.Client)
		}
		if o.Driver != nil {
			entry["driver"] = toUserResponse(o.Driver)
		}
		result = append(result, entry)
	}

	c.JSON(http.StatusOK, result)
}

// Statistics handles GET /api/admin/statistics/full
func (h *AdminHandler) Statistics(c *gin.Context) {
	period := c.DefaultQuery("period", "month")

	stats, err := h.adminService.Statistics(c.Request.Context(), period)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"period":      stats.Period,
		"start_date":  stats.StartDate,
		"end_date":    stats.EndDate,
		"new_users":   stats.NewUsers,
		"new_clients": stats.NewClients,
		"new_drivers": stats.NewDrivers,
		"orders": gin.H{
			"total":     stats.TotalOrders,
			"completed": stats.CompletedOrders,
			"cancelled": stats.CancelledOrders,
			"pending":   stats.PendingOrders,
		},
		"revenue":             stats.Revenue,
		"average_order_value": stats.AverageOrderValue,
	})
}

// parseFilterDate accepts RFC3339 or a bare date.
func parseFilterDate(value string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, service.ErrInvalidDate
}
