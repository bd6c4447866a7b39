package domain

import "time"

// DocumentStatus represents the review state of a document or a whole
// verification submission.
type DocumentStatus string

const (
	DocumentStatusPending  DocumentStatus = "pending"
	DocumentStatusApproved DocumentStatus = "approved"
	DocumentStatusRejected DocumentStatus = "rejected"
)

// DocumentType identifies one of the fixed verification document slots.
type DocumentType string

const (
	DocumentTypeCarPhoto     DocumentType = "car_photo"
	DocumentTypeTechPassport DocumentType = "tech_passport"
	DocumentTypeLicense      DocumentType = "license"
	DocumentTypeSelfie       DocumentType = "selfie"
)

// Document sides for two-sided documents. Empty for car photos and selfies.
const (
	DocumentSideFront = "front"
	DocumentSideBack  = "back"
)

// RequiredCarPhotos is the number of car photos a verification
// submission must contain.
const RequiredCarPhotos = 4

// DriverProfile is a driver's extended identity record, one-to-one with a
// User of role driver. It is created lazily on first profile update or
// document upload if registration did not create it.
type DriverProfile struct {
	ID              string
	UserID          string
	Phone           string
	ExperienceYears int
	Bio             string
	DocumentsStatus DocumentStatus
	IsVerified      bool
	Rating          float64
	TotalTrips      int
	CreatedAt       time.Time
}

// DriverDocument is a single uploaded verification file. Review fields are
// zero until an admin approves or rejects the submission.
type DriverDocument struct {
	ID              string
	ProfileID       string
	Type            DocumentType
	FilePath        string
	Side            string
	UploadedAt      time.Time
	Status          DocumentStatus
	ReviewedBy      string
	ReviewedAt      time.Time
	RejectionReason string
}

// Car belongs to a driver profile. License plates are unique system-wide.
type Car struct {
	ID                 string
	ProfileID          string
	Make               string
	Model              string
	Year               int
	Color              string
	LicensePlate       string
	Capacity           int
	HasAirConditioning bool
	HasWifi            bool
	CreatedAt          time.Time
}
