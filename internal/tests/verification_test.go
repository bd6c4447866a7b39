package tests

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/zvanbay-arch/transfer-test/internal/domain"
	"github.com/zvanbay-arch/transfer-test/internal/repository"
	"github.com/zvanbay-arch/transfer-test/internal/service"
)

// ──────────────────────────────────────────────
// DRIVER VERIFICATION
// ──────────────────────────────────────────────

func upload(name string) *service.FileUpload {
	return &service.FileUpload{Filename: name, Content: strings.NewReader("jpeg-bytes")}
}

func completeSubmission() service.DocumentSubmission {
	return service.DocumentSubmission{
		CarPhotos: []service.FileUpload{
			*upload("car1.jpg"), *upload("car2.jpg"), *upload("car3.jpg"), *upload("car4.jpg"),
		},
		TechPassportFront: upload("tp_front.jpg"),
		TechPassportBack:  upload("tp_back.jpg"),
		LicenseFront:      upload("lic_front.jpg"),
		LicenseBack:       upload("lic_back.jpg"),
		Selfie:            upload("selfie.jpg"),
	}
}

func TestVerification_SubmissionRequiresFourCarPhotos(t *testing.T) {
	t.Parallel()

	files := NewMockFileStore()
	svc := service.NewDriverService(nil, NewMockDriverProfileRepository(), NewMockDriverDocumentRepository(), NewMockCarRepository(), files)

	for _, count := range []int{0, 3, 5} {
		sub := completeSubmission()
		sub.CarPhotos = sub.CarPhotos[:0]
		for i := 0; i < count; i++ {
			sub.CarPhotos = append(sub.CarPhotos, *upload("car.jpg"))
		}

		err := svc.SubmitDocuments(context.Background(), "driver-1", sub)
		if !errors.Is(err, service.ErrWrongCarPhotoCount) {
			t.Errorf("%d photos: expected ErrWrongCarPhotoCount, got %v", count, err)
		}
	}

	if files.SaveCallCount != 0 {
		t.Errorf("an invalid submission must not write files, got %d saves", files.SaveCallCount)
	}
}

func TestVerification_SubmissionRequiresAllSlots(t *testing.T) {
	t.Parallel()

	files := NewMockFileStore()
	svc := service.NewDriverService(nil, NewMockDriverProfileRepository(), NewMockDriverDocumentRepository(), NewMockCarRepository(), files)

	cases := []struct {
		name string
		mut  func(*service.DocumentSubmission)
	}{
		{"missing tech passport front", func(s *service.DocumentSubmission) { s.TechPassportFront = nil }},
		{"missing tech passport back", func(s *service.DocumentSubmission) { s.TechPassportBack = nil }},
		{"missing license front", func(s *service.DocumentSubmission) { s.LicenseFront = nil }},
		{"missing license back", func(s *service.DocumentSubmission) { s.LicenseBack = nil }},
		{"missing selfie", func(s *service.DocumentSubmission) { s.Selfie = nil }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sub := completeSubmission()
			tc.mut(&sub)

			err := svc.SubmitDocuments(context.Background(), "driver-1", sub)
			if !errors.Is(err, service.ErrMissingDocument) {
				t.Errorf("expected ErrMissingDocument, got %v", err)
			}
		})
	}

	if files.SaveCallCount != 0 {
		t.Errorf("an invalid submission must not write files, got %d saves", files.SaveCallCount)
	}
}

func TestVerification_UpdateProfileCreatesLazily(t *testing.T) {
	t.Parallel()

	profileRepo := NewMockDriverProfileRepository()
	svc := service.NewDriverService(nil, profileRepo, NewMockDriverDocumentRepository(), NewMockCarRepository(), NewMockFileStore())

	profile, err := svc.UpdateProfile(context.Background(), "driver-1", "+77001234567", 5, "Ten years in the mountains")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if profile.UserID != "driver-1" {
		t.Errorf("expected profile for driver-1, got %q", profile.UserID)
	}
	if profile.Phone != "+77001234567" || profile.ExperienceYears != 5 {
		t.Errorf("contact fields not applied: %+v", profile)
	}

	stored := profileRepo.GetProfile(profile.ID)
	if stored == nil {
		t.Fatal("profile not persisted")
	}
	if stored.DocumentsStatus != domain.DocumentStatusPending {
		t.Errorf("lazily created profile must start pending, got %s", stored.DocumentsStatus)
	}
}

func TestVerification_AddCarRejectsDuplicatePlate(t *testing.T) {
	t.Parallel()

	profileRepo := NewMockDriverProfileRepository()
	carRepo := NewMockCarRepository()
	profileRepo.AddProfile(&domain.DriverProfile{ID: "profile-1", UserID: "driver-1", DocumentsStatus: domain.DocumentStatusPending})
	profileRepo.AddProfile(&domain.DriverProfile{ID: "profile-2", UserID: "driver-2", DocumentsStatus: domain.DocumentStatusPending})

	svc := service.NewDriverService(nil, profileRepo, NewMockDriverDocumentRepository(), carRepo, NewMockFileStore())

	input := service.CarInput{Make: "Toyota", Model: "Camry", Year: 2020, LicensePlate: "123ABC01", Capacity: 4}
	if _, err := svc.AddCar(context.Background(), "driver-1", input); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Same plate on another driver.
	if _, err := svc.AddCar(context.Background(), "driver-2", input); !errors.Is(err, service.ErrPlateTaken) {
		t.Errorf("expected ErrPlateTaken, got %v", err)
	}

	// A driver with no profile cannot register a car.
	if _, err := svc.AddCar(context.Background(), "driver-3", input); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestVerification_RejectRequiresReason(t *testing.T) {
	t.Parallel()

	profileRepo := NewMockDriverProfileRepository()
	svc := service.NewAdminService(nil, NewMockUserRepository(), profileRepo, NewMockDriverDocumentRepository(), NewMockOrderRepository(), NewMockAdminActionRepository())

	for _, reason := range []string{"", "   "} {
		err := svc.RejectDriver(context.Background(), "admin-1", "driver-1", reason)
		if !errors.Is(err, service.ErrReasonRequired) {
			t.Errorf("reason %q: expected ErrReasonRequired, got %v", reason, err)
		}
	}

	if profileRepo.SetDocumentsStatusCallCount != 0 {
		t.Error("rejection without a reason must not touch the profile")
	}
}

func TestVerification_ReviewUnknownDriver(t *testing.T) {
	t.Parallel()

	svc := service.NewAdminService(nil, NewMockUserRepository(), NewMockDriverProfileRepository(), NewMockDriverDocumentRepository(), NewMockOrderRepository(), NewMockAdminActionRepository())

	if err := svc.ApproveDriver(context.Background(), "admin-1", "no-such-driver"); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if err := svc.RejectDriver(context.Background(), "admin-1", "no-such-driver", "blurry photo"); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestVerification_ReviewStampsEveryDocument(t *testing.T) {
	t.Parallel()

	// The admin review runs in a database transaction, so the stamping
	// semantics are exercised on the repository here.
	documentRepo := NewMockDriverDocumentRepository()
	documentRepo.AddDocument(&domain.DriverDocument{ID: "doc-1", ProfileID: "profile-1", Type: domain.DocumentTypeCarPhoto, Status: domain.DocumentStatusPending})
	documentRepo.AddDocument(&domain.DriverDocument{ID: "doc-2", ProfileID: "profile-1", Type: domain.DocumentTypeSelfie, Status: domain.DocumentStatusPending})
	documentRepo.AddDocument(&domain.DriverDocument{ID: "doc-3", ProfileID: "profile-2", Type: domain.DocumentTypeSelfie, Status: domain.DocumentStatusPending})

	now := time.Now()
	err := documentRepo.ReviewAll(context.Background(), "profile-1", domain.DocumentStatusRejected, "admin-1", now, "blurry photo")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, doc := range documentRepo.DocumentsForProfile("profile-1") {
		if doc.Status != domain.DocumentStatusRejected {
			t.Errorf("doc %s: expected rejected, got %s", doc.ID, doc.Status)
		}
		if doc.ReviewedBy != "admin-1" || doc.ReviewedAt.IsZero() {
			t.Errorf("doc %s: reviewer not stamped", doc.ID)
		}
		if doc.RejectionReason != "blurry photo" {
			t.Errorf("doc %s: expected rejection reason, got %q", doc.ID, doc.RejectionReason)
		}
	}

	// Documents of other profiles stay untouched.
	for _, doc := range documentRepo.DocumentsForProfile("profile-2") {
		if doc.Status != domain.DocumentStatusPending {
			t.Errorf("doc %s: expected pending, got %s", doc.ID, doc.Status)
		}
	}
}

// ──────────────────────────────────────────────
// DRIVER REVIEWS
// ──────────────────────────────────────────────

func TestReview_OnlyCompletedOwnOrders(t *testing.T) {
	t.Parallel()

	orderRepo := NewMockOrderRepository()
	profileRepo := NewMockDriverProfileRepository()
	reviewRepo := NewMockDriverReviewRepository()
	profileRepo.AddProfile(&domain.DriverProfile{ID: "profile-1", UserID: "driver-1", DocumentsStatus: domain.DocumentStatusApproved})

	orderRepo.AddOrder(&domain.Order{ID: "done", ClientID: "client-1", DriverID: "driver-1", Status: domain.OrderStatusCompleted})
	orderRepo.AddOrder(&domain.Order{ID: "open", ClientID: "client-1", DriverID: "driver-1", Status: domain.OrderStatusAccepted})

	svc := service.NewReviewService(orderRepo, profileRepo, reviewRepo)

	if _, err := svc.ReviewOrder(context.Background(), "client-1", "done", 6, ""); !errors.Is(err, service.ErrInvalidRating) {
		t.Errorf("expected ErrInvalidRating, got %v", err)
	}
	if _, err := svc.ReviewOrder(context.Background(), "client-2", "done", 5, ""); !errors.Is(err, service.ErrNotAuthorized) {
		t.Errorf("expected ErrNotAuthorized, got %v", err)
	}
	if _, err := svc.ReviewOrder(context.Background(), "client-1", "open", 5, ""); !errors.Is(err, service.ErrOrderNotCompleted) {
		t.Errorf("expected ErrOrderNotCompleted, got %v", err)
	}

	review, err := svc.ReviewOrder(context.Background(), "client-1", "done", 4, "smooth ride")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if review.ProfileID != "profile-1" || review.Rating != 4 {
		t.Errorf("unexpected review: %+v", review)
	}

	// One review per order.
	if _, err := svc.ReviewOrder(context.Background(), "client-1", "done", 5, ""); !errors.Is(err, service.ErrAlreadyReviewed) {
		t.Errorf("expected ErrAlreadyReviewed, got %v", err)
	}
}

func TestReview_RecomputesDriverRating(t *testing.T) {
	t.Parallel()

	orderRepo := NewMockOrderRepository()
	profileRepo := NewMockDriverProfileRepository()
	reviewRepo := NewMockDriverReviewRepository()
	profileRepo.AddProfile(&domain.DriverProfile{ID: "profile-1", UserID: "driver-1", DocumentsStatus: domain.DocumentStatusApproved})

	orderRepo.AddOrder(&domain.Order{ID: "o1", ClientID: "client-1", DriverID: "driver-1", Status: domain.OrderStatusCompleted})
	orderRepo.AddOrder(&domain.Order{ID: "o2", ClientID: "client-2", DriverID: "driver-1", Status: domain.OrderStatusCompleted})

	svc := service.NewReviewService(orderRepo, profileRepo, reviewRepo)

	if _, err := svc.ReviewOrder(context.Background(), "client-1", "o1", 5, ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.ReviewOrder(context.Background(), "client-2", "o2", 2, ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	profile := profileRepo.GetProfile("profile-1")
	if profile.Rating != 3.5 {
		t.Errorf("expected average rating 3.5, got %v", profile.Rating)
	}
	if profileRepo.SetRatingCallCount != 2 {
		t.Errorf("expected rating recomputed per review, got %d calls", profileRepo.SetRatingCallCount)
	}
}
