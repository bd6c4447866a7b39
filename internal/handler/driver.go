package handler

import (
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/zvanbay-arch/transfer-test/internal/middleware"
	"github.com/zvanbay-arch/transfer-test/internal/service"
)

// DriverHandler handles HTTP requests for the driver surface.
type DriverHandler struct {
	driverService *service.DriverService
	orderService  *service.OrderService
	maxUploadSize int64
}

// NewDriverHandler creates a new DriverHandler.
func NewDriverHandler(driverService *service.DriverService, orderService *service.OrderService, maxUploadSize int64) *DriverHandler {
	return &DriverHandler{
		driverService: driverService,
		orderService:  orderService,
		maxUploadSize: maxUploadSize,
	}
}

// Profile handles GET /api/drivers/profile
func (h *DriverHandler) Profile(c *gin.Context) {
	user := middleware.CurrentUser(c)

	overview, err := h.driverService.Overview(c.Request.Context(), user.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := gin.H{
		"user":      toUserResponse(user),
		"profile":   nil,
		"documents": toDocumentResponses(overview.Documents),
		"cars":      overview.Cars,
	}

	if overview.Profile != nil {
		p := overview.Profile
		resp["profile"] = gin.H{
			"id":               p.ID,
			"phone":            p.Phone,
			"experience_years": p.ExperienceYears,
			"bio":              p.Bio,
			"documents_status": p.DocumentsStatus,
			"is_verified":      p.IsVerified,
			"rating":           p.Rating,
			"total_trips":      p.TotalTrips,
		}
	}

	c.JSON(http.StatusOK, resp)
}

// UpdateProfileRequest is the HTTP request body for a profile update.
type UpdateProfileRequest struct {
	Phone           string `json:"phone" form:"phone"`
	ExperienceYears int    `json:"experience_years" form:"experience_years"`
	Bio             string `json:"bio" form:"bio"`
}

// UpdateProfile handles POST /api/drivers/profile/update
func (h *DriverHandler) UpdateProfile(c *gin.Context) {
	var req UpdateProfileRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	user := middleware.CurrentUser(c)

	if _, err := h.driverService.UpdateProfile(c.Request.Context(), user.ID, req.Phone, req.ExperienceYears, req.Bio); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Profile updated successfully"})
}

// AddCarRequest is the HTTP request body for registering a car.
type AddCarRequest struct {
	Make               string `json:"make" form:"make"`
	Model              string `json:"model" form:"model"`
	Year               int    `json:"year" form:"year"`
	Color              string `json:"color" form:"color"`
	LicensePlate       string `json:"license_plate" form:"license_plate"`
	Capacity           int    `json:"capacity" form:"capacity"`
	HasAirConditioning bool   `json:"has_air_conditioning" form:"has_air_conditioning"`
	HasWifi            bool   `json:"has_wifi" form:"has_wifi"`
}

// AddCar handles POST /api/drivers/cars/add
func (h *DriverHandler) AddCar(c *gin.Context) {
	var req AddCarRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	user := middleware.CurrentUser(c)

	car, err := h.driverService.AddCar(c.Request.Context(), user.ID, service.CarInput{
		Make:               req.Make,
		Model:              req.Model,
		Year:               req.Year,
		Color:              req.Color,
		LicensePlate:       req.LicensePlate,
		Capacity:           req.Capacity,
		HasAirConditioning: req.HasAirConditioning,
		HasWifi:            req.HasWifi,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Car added successfully",
		"car_id":  car.ID,
	})
}

// UploadDocuments handles POST /api/drivers/documents/upload.
// The multipart form carries 4 car_photos plus the 5 fixed single-file
// slots; anything missing fails before any file or row is written.
func (h *DriverHandler) UploadDocuments(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadSize)

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid multipart form"})
		return
	}

	var sub service.DocumentSubmission
	var opened []multipart.File
	defer func() {
		for _, f := range opened {
			_ = f.Close()
		}
	}()

	for _, header := range form.File["car_photos"] {
		f, err := header.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "unreadable car photo"})
			return
		}
		opened = append(opened, f)
		sub.CarPhotos = append(sub.CarPhotos, service.FileUpload{Filename: header.Filename, Content: f})
	}

	singles := []struct {
		field  string
		target **service.FileUpload
	}{
		{"tech_passport_front", &sub.TechPassportFront},
		{"tech_passport_back", &sub.TechPassportBack},
		{"license_front", &sub.LicenseFront},
		{"license_back", &sub.LicenseBack},
		{"selfie", &sub.Selfie},
	}

	for _, s := range singles {
		headers := form.File[s.field]
		if len(headers) == 0 {
			continue // the service reports the missing slot
		}
		f, err := headers[0].Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "unreadable document"})
			return
		}
		opened = append(opened, f)
		*s.target = &service.FileUpload{Filename: headers[0].Filename, Content: f}
	}

	user := middleware.CurrentUser(c)

	if err := h.driverService.SubmitDocuments(c.Request.Context(), user.ID, sub); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Documents uploaded successfully. Waiting for admin approval."})
}

// DocumentsStatus handles GET /api/drivers/documents/status
func (h *DriverHandler) DocumentsStatus(c *gin.Context) {
	user := middleware.CurrentUser(c)

	status, err := h.driverService.Status(c.Request.Context(), user.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":          status.Status,
		"is_verified":     status.IsVerified,
		"documents_count": len(status.Documents),
		"documents":       toDocumentResponses(status.Documents),
	})
}

// AvailableOrders handles GET /api/drivers/available-orders
func (h *DriverHandler) AvailableOrders(c *gin.Context) {
	user := middleware.CurrentUser(c)

	orders, err := h.orderService.ListAvailable(c.Request.Context(), user.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toOrderResponses(orders))
}

// AcceptOrder handles POST /api/drivers/orders/:id/accept
func (h *DriverHandler) AcceptOrder(c *gin.Context) {
	user := middleware.CurrentUser(c)

	order, err := h.orderService.Accept(c.Request.Context(), user.ID, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Order accepted successfully",
		"order":   toOrderResponse(order),
	})
}

// Stats handles GET /api/drivers/stats
func (h *DriverHandler) Stats(c *gin.Context) {
	user := middleware.CurrentUser(c)

	stats, err := h.orderService.StatsForDriver(c.Request.Context(), user.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"total_trips":         stats.TotalTrips,
		"completed_trips":     stats.CompletedTrips,
		"cancelled_trips":     stats.CancelledTrips,
		"pending_trips":       stats.ActiveTrips,
		"total_earnings":      stats.TotalEarnings,
		"rating":              stats.Rating,
		"verification_status": stats.VerificationStatus,
	})
}
