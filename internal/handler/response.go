package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/zvanbay-arch/transfer-test/internal/domain"
	"github.com/zvanbay-arch/transfer-test/internal/repository"
	"github.com/zvanbay-arch/transfer-test/internal/service"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondError sends an error response with the appropriate HTTP status code.
func respondError(c *gin.Context, err error) {
	code := mapErrorToHTTPStatus(err)
	c.JSON(code, ErrorResponse{Error: err.Error()})
}

// mapErrorToHTTPStatus maps service/repository errors to HTTP status codes.
func mapErrorToHTTPStatus(err error) int {
	switch {
	// Authentication errors
	case errors.Is(err, service.ErrAuthenticationRequired),
		errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized

	// Authorization errors
	case errors.Is(err, service.ErrNotAuthorized),
		errors.Is(err, service.ErrDriverNotVerified):
		return http.StatusForbidden

	// Not found errors
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound

	// Conflict errors
	case errors.Is(err, repository.ErrDuplicate),
		errors.Is(err, service.ErrEmailTaken),
		errors.Is(err, service.ErrPlateTaken),
		errors.Is(err, service.ErrOrderNotAvailable),
		errors.Is(err, service.ErrOrderNotCompletable),
		errors.Is(err, service.ErrOrderAlreadyClosed),
		errors.Is(err, service.ErrOrderNotCompleted),
		errors.Is(err, service.ErrAlreadyReviewed):
		return http.StatusConflict

	// Validation errors - Bad Request
	case errors.Is(err, service.ErrInvalidRole),
		errors.Is(err, service.ErrWrongCarPhotoCount),
		errors.Is(err, service.ErrMissingDocument),
		errors.Is(err, service.ErrReasonRequired),
		errors.Is(err, service.ErrInvalidPickupTime),
		errors.Is(err, service.ErrInvalidPassengersCount),
		errors.Is(err, service.ErrInvalidLuggageCount),
		errors.Is(err, service.ErrInvalidPrice),
		errors.Is(err, service.ErrInvalidRating),
		errors.Is(err, service.ErrInvalidDate):
		return http.StatusBadRequest

	// Default to internal server error
	default:
		return http.StatusInternalServerError
	}
}

// UserResponse is the wire representation of a user. The password hash
// never leaves the server.
type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

func toUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		FullName:  user.FullName,
		Role:      string(user.Role),
		IsActive:  user.IsActive,
		CreatedAt: user.CreatedAt,
	}
}

// OrderResponse is the wire representation of an order.
type OrderResponse struct {
	ID              string    `json:"id"`
	ClientID        string    `json:"client_id"`
	DriverID        string    `json:"driver_id,omitempty"`
	PickupLocation  string    `json:"pickup_location"`
	DropoffLocation string    `json:"dropoff_location"`
	PickupTime      time.Time `json:"pickup_time"`
	PassengersCount int       `json:"passengers_count"`
	LuggageCount    int       `json:"luggage_count"`
	ClientPrice     float64   `json:"client_price"`
	FinalPrice      *float64  `json:"final_price,omitempty"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
	AcceptedAt      *time.Time `json:"accepted_at,omitempty"`
	CompletedAt     *time.Time `json:"completed_at,omitempty"`
}

func toOrderResponse(order *domain.Order) OrderResponse {
	resp := OrderResponse{
		ID:              order.ID,
		ClientID:        order.ClientID,
		DriverID:        order.DriverID,
		PickupLocation:  order.PickupLocation,
		DropoffLocation: order.DropoffLocation,
		PickupTime:      order.PickupTime,
		PassengersCount: order.PassengersCount,
		LuggageCount:    order.LuggageCount,
		ClientPrice:     order.ClientPrice,
		Status:          string(order.Status),
		CreatedAt:       order.CreatedAt,
	}

	if order.HasFinalPrice {
		price := order.FinalPrice
		resp.FinalPrice = &price
	}
	if !order.AcceptedAt.IsZero() {
		at := order.AcceptedAt
		resp.AcceptedAt = &at
	}
	if !order.CompletedAt.IsZero() {
		at := order.CompletedAt
		resp.CompletedAt = &at
	}

	return resp
}

func toOrderResponses(orders []*domain.Order) []OrderResponse {
	result := make([]OrderResponse, 0, len(orders))
	for _, order := range orders {
		result = append(result, toOrderResponse(order))
	}
	return result
}

// DocumentResponse is the wire representation of a verification document.
type DocumentResponse struct {
	ID              string     `json:"id"`
	DocumentType    string     `json:"document_type"`
	FilePath        string     `json:"file_path"`
	Side            string     `json:"side,omitempty"`
	UploadedAt      time.Time  `json:"uploaded_at"`
	Status          string     `json:"status"`
	ReviewedAt      *time.Time `json:"reviewed_at,omitempty"`
	RejectionReason string     `json:"rejection_reason,omitempty"`
}

func toDocumentResponses(docs []*domain.DriverDocument) []DocumentResponse {
	result := make([]DocumentResponse, 0, len(docs))
	for _, doc := range docs {
		resp := DocumentResponse{
			ID:              doc.ID,
			DocumentType:    string(doc.Type),
			FilePath:        doc.FilePath,
			Side:            doc.Side,
			UploadedAt:      doc.UploadedAt,
			Status:          string(doc.Status),
			RejectionReason: doc.RejectionReason,
		}
		if !doc.ReviewedAt.IsZero() {
			at := doc.ReviewedAt
			resp.ReviewedAt = &at
		}
		result = append(result, resp)
	}
	return result
}
