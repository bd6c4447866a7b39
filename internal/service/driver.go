package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/zvanbay-arch/transfer-test/internal/domain"
	"github.com/zvanbay-arch/transfer-test/internal/repository"
	"github.com/zvanbay-arch/transfer-test/internal/repository/postgres"
	"github.com/zvanbay-arch/transfer-test/internal/storage"
)

// DriverService handles driver profiles, cars and the verification
// submission flow.
type DriverService struct {
	db           *sql.DB
	profileRepo  repository.DriverProfileRepository
	documentRepo repository.DriverDocumentRepository
	carRepo      repository.CarRepository
	files        storage.FileStore
}

// NewDriverService creates a new DriverService.
func NewDriverService(
	db *sql.DB,
	profileRepo repository.DriverProfileRepository,
	documentRepo repository.DriverDocumentRepository,
	carRepo repository.CarRepository,
	files storage.FileStore,
) *DriverService {
	return &DriverService{
		db:           db,
		profileRepo:  profileRepo,
		documentRepo: documentRepo,
		carRepo:      carRepo,
		files:        files,
	}
}

// DriverOverview bundles everything the driver dashboard shows.
type DriverOverview struct {
	Profile   *domain.DriverProfile // nil if never created
	Documents []*domain.DriverDocument
	Cars      []*domain.Car
}

// Overview retrieves a driver's profile with documents and cars. A driver
// who has never updated a profile simply gets an empty overview.
func (s *DriverService) Overview(ctx context.Context, userID string) (*DriverOverview, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return &DriverOverview{}, nil
		}
		return nil, err
	}

	documents, err := s.documentRepo.ListByProfile(ctx, profile.ID)
	if err != nil {
		return nil, err
	}

	cars, err := s.carRepo.ListByProfile(ctx, profile.ID)
	if err != nil {
		return nil, err
	}

	return &DriverOverview{Profile: profile, Documents: documents, Cars: cars}, nil
}

// UpdateProfile sets the driver-editable contact fields, creating the
// profile lazily if it does not exist yet.
func (s *DriverService) UpdateProfile(ctx context.Context, userID, phone string, experienceYears int, bio string) (*domain.DriverProfile, error) {
	profile, err := s.getOrCreateProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := s.profileRepo.UpdateContact(ctx, profile.ID, phone, experienceYears, bio); err != nil {
		return nil, err
	}

	profile.Phone = phone
	profile.ExperienceYears = experienceYears
	profile.Bio = bio
	return profile, nil
}

// CarInput contains the parameters for registering a car.
type CarInput struct {
	Make               string
	Model              string
	Year               int
	Color              string
	LicensePlate       string
	Capacity           int
	HasAirConditioning bool
	HasWifi            bool
}

// AddCar registers a car for a driver. The profile must exist, and the
// license plate must be unique across the whole system.
func (s *DriverService) AddCar(ctx context.Context, userID string, input CarInput) (*domain.Car, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	car := &domain.Car{
		ID:                 uuid.New().String(),
		ProfileID:          profile.ID,
		Make:               input.Make,
		Model:              input.Model,
		Year:               input.Year,
		Color:              input.Color,
		LicensePlate:       input.LicensePlate,
		Capacity:           input.Capacity,
		HasAirConditioning: input.HasAirConditioning,
		HasWifi:            input.HasWifi,
		CreatedAt:          time.Now(),
	}

	if err := s.carRepo.Create(ctx, car); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrPlateTaken
		}
		return nil, err
	}

	return car, nil
}

// FileUpload is one file of a verification submission.
type FileUpload struct {
	Filename string
	Content  io.Reader
}

// DocumentSubmission is the fixed document set a driver uploads for
// verification: exactly 4 car photos plus the 5 named slots.
type DocumentSubmission struct {
	CarPhotos         []FileUpload
	TechPassportFront *FileUpload
	TechPassportBack  *FileUpload
	LicenseFront      *FileUpload
	LicenseBack       *FileUpload
	Selfie            *FileUpload
}

// validate rejects an incomplete submission before anything is written.
func (sub *DocumentSubmission) validate() error {
	if len(sub.CarPhotos) != domain.RequiredCarPhotos {
		return ErrWrongCarPhotoCount
	}
	for _, f := range []*FileUpload{sub.TechPassportFront, sub.TechPassportBack, sub.LicenseFront, sub.LicenseBack, sub.Selfie} {
		if f == nil {
			return ErrMissingDocument
		}
	}
	return nil
}

// SubmitDocuments stores a verification submission: files go to the
// per-user directory tree, document rows and the profile's pending status
// are written in one transaction.
func (s *DriverService) SubmitDocuments(ctx context.Context, userID string, sub DocumentSubmission) error {
	if err := sub.validate(); err != nil {
		return err
	}

	profile, err := s.getOrCreateProfile(ctx, userID)
	if err != nil {
		return err
	}

	now := time.Now()
	var docs []*domain.DriverDocument

	for i, photo := range sub.CarPhotos {
		path, err := s.files.Save(userID, "car_photos", fmt.Sprintf("car_photo_%d.jpg", i+1), photo.Content)
		if err != nil {
			return err
		}
		docs = append(docs, newDocument(profile.ID, domain.DocumentTypeCarPhoto, path, "", now))
	}

	slots := []struct {
		file   *FileUpload
		typ    domain.DocumentType
		subdir string
		name   string
		side   string
	}{
		{sub.TechPassportFront, domain.DocumentTypeTechPassport, "tech_passport", "front.jpg", domain.DocumentSideFront},
		{sub.TechPassportBack, domain.DocumentTypeTechPassport, "tech_passport", "back.jpg", domain.DocumentSideBack},
		{sub.LicenseFront, domain.DocumentTypeLicense, "license", "front.jpg", domain.DocumentSideFront},
		{sub.LicenseBack, domain.DocumentTypeLicense, "license", "back.jpg", domain.DocumentSideBack},
		{sub.Selfie, domain.DocumentTypeSelfie, "selfie", "selfie.jpg", ""},
	}

	for _, slot := range slots {
		path, err := s.files.Save(userID, slot.subdir, slot.name, slot.file.Content)
		if err != nil {
			return err
		}
		docs = append(docs, newDocument(profile.ID, slot.typ, path, slot.side, now))
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	txDocumentRepo := postgres.NewDriverDocumentRepositoryWithTx(tx)
	txProfileRepo := postgres.NewDriverProfileRepositoryWithTx(tx)

	for _, doc := range docs {
		if err = txDocumentRepo.Create(ctx, doc); err != nil {
			return err
		}
	}

	if err = txProfileRepo.SetDocumentsStatus(ctx, profile.ID, domain.DocumentStatusPending, false); err != nil {
		return err
	}

	return tx.Commit()
}

// DocumentsStatus summarizes a driver's verification state.
type DocumentsStatus struct {
	Status     domain.DocumentStatus
	IsVerified bool
	Documents  []*domain.DriverDocument
}

// Status retrieves a driver's verification status and documents.
func (s *DriverService) Status(ctx context.Context, userID string) (*DocumentsStatus, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	documents, err := s.documentRepo.ListByProfile(ctx, profile.ID)
	if err != nil {
		return nil, err
	}

	return &DocumentsStatus{
		Status:     profile.DocumentsStatus,
		IsVerified: profile.IsVerified,
		Documents:  documents,
	}, nil
}

func (s *DriverService) getOrCreateProfile(ctx context.Context, userID string) (*domain.DriverProfile, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	profile = &domain.DriverProfile{
		ID:              uuid.New().String(),
		UserID:          userID,
		DocumentsStatus: domain.DocumentStatusPending,
		CreatedAt:       time.Now(),
	}
	if err := s.profileRepo.Create(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

func newDocument(profileID string, typ domain.DocumentType, path, side string, at time.Time) *domain.DriverDocument {
	return &domain.DriverDocument{
		ID:         uuid.New().String(),
		ProfileID:  profileID,
		Type:       typ,
		FilePath:   path,
		Side:       side,
		UploadedAt: at,
		Status:     domain.DocumentStatusPending,
	}
}
