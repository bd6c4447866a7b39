package tests

import (
	"bytes"
	"context"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/zvanbay-arch/transfer-test/internal/domain"
	"github.com/zvanbay-arch/transfer-test/internal/repository"
)

// ──────────────────────────────────────────────
// MOCK USER REPOSITORY
// ──────────────────────────────────────────────

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mu    sync.RWMutex
	users map[string]*domain.User

	// Counters for verification
	CreateCallCount int32

	// Error injection
	CreateError     error
	GetByEmailError error
}

// NewMockUserRepository creates a new mock user repository.
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		users: make(map[string]*domain.User),
	}
}

// AddUser adds a user to the mock repository.
func (m *MockUserRepository) AddUser(user *domain.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[user.ID] = user
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == user.Email {
			return repository.ErrDuplicate
		}
	}
	m.users[user.ID] = user
	return nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	user, ok := m.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *user
	return &copy, nil
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.GetByEmailError != nil {
		return nil, m.GetByEmailError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.users {
		if u.Email == email {
			copy := *u
			return &copy, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *MockUserRepository) List(ctx context.Context, role domain.Role) ([]*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.User, 0, len(m.users))
	for _, u := range m.users {
		if role != "" && u.Role != role {
			continue
		}
		copy := *u
		result = append(result, &copy)
	}
	return result, nil
}

func (m *MockUserRepository) Count(ctx context.Context, role domain.Role, since time.Time) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	count := 0
	for _, u := range m.users {
		if role != "" && u.Role != role {
			continue
		}
		if !since.IsZero() && u.CreatedAt.Before(since) {
			continue
		}
		count++
	}
	return count, nil
}

// UserCount returns the number of stored users for test assertions.
func (m *MockUserRepository) UserCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.users)
}

// ──────────────────────────────────────────────
// MOCK DRIVER PROFILE REPOSITORY
// ──────────────────────────────────────────────

// MockDriverProfileRepository is a mock implementation of
// DriverProfileRepository.
type MockDriverProfileRepository struct {
	mu       sync.RWMutex
	profiles map[string]*domain.DriverProfile

	// Counters for verification
	CreateCallCount             int32
	SetDocumentsStatusCallCount int32
	IncrementTripsCallCount     int32
	SetRatingCallCount          int32

	// Error injection
	CreateError             error
	SetDocumentsStatusError error
}

// NewMockDriverProfileRepository creates a new mock profile repository.
func NewMockDriverProfileRepository() *MockDriverProfileRepository {
	return &MockDriverProfileRepository{
		profiles: make(map[string]*domain.DriverProfile),
	}
}

// AddProfile adds a profile to the mock repository.
func (m *MockDriverProfileRepository) AddProfile(profile *domain.DriverProfile) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.profiles[profile.ID] = profile
}

func (m *MockDriverProfileRepository) Create(ctx context.Context, profile *domain.DriverProfile) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.profiles[profile.ID] = profile
	return nil
}

func (m *MockDriverProfileRepository) GetByID(ctx context.Context, id string) (*domain.DriverProfile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	profile, ok := m.profiles[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *profile
	return &copy, nil
}

func (m *MockDriverProfileRepository) GetByUserID(ctx context.Context, userID string) (*domain.DriverProfile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, p := range m.profiles {
		if p.UserID == userID {
			copy := *p
			return &copy, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *MockDriverProfileRepository) UpdateContact(ctx context.Context, id, phone string, experienceYears int, bio string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	profile, ok := m.profiles[id]
	if !ok {
		return repository.ErrNotFound
	}
	profile.Phone = phone
	profile.ExperienceYears = experienceYears
	profile.Bio = bio
	return nil
}

func (m *MockDriverProfileRepository) SetDocumentsStatus(ctx context.Context, id string, status domain.DocumentStatus, verified bool) error {
	atomic.AddInt32(&m.SetDocumentsStatusCallCount, 1)
	if m.SetDocumentsStatusError != nil {
		return m.SetDocumentsStatusError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	profile, ok := m.profiles[id]
	if !ok {
		return repository.ErrNotFound
	}
	profile.DocumentsStatus = status
	profile.IsVerified = verified
	return nil
}

func (m *MockDriverProfileRepository) IncrementTrips(ctx context.Context, id string) error {
	atomic.AddInt32(&m.IncrementTripsCallCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	profile, ok := m.profiles[id]
	if !ok {
		return repository.ErrNotFound
	}
	profile.TotalTrips++
	return nil
}

func (m *MockDriverProfileRepository) SetRating(ctx context.Context, id string, rating float64) error {
	atomic.AddInt32(&m.SetRatingCallCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	profile, ok := m.profiles[id]
	if !ok {
		return repository.ErrNotFound
	}
	profile.Rating = rating
	return nil
}

func (m *MockDriverProfileRepository) ListByStatus(ctx context.Context, status domain.DocumentStatus) ([]*domain.DriverProfile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.DriverProfile, 0)
	for _, p := range m.profiles {
		if p.DocumentsStatus == status {
			copy := *p
			result = append(result, &copy)
		}
	}
	return result, nil
}

func (m *MockDriverProfileRepository) CountByStatus(ctx context.Context, status domain.DocumentStatus) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	count := 0
	for _, p := range m.profiles {
		if p.DocumentsStatus == status {
			count++
		}
	}
	return count, nil
}

// GetProfile returns a profile for test assertions.
func (m *MockDriverProfileRepository) GetProfile(id string) *domain.DriverProfile {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.profiles[id]
}

// ──────────────────────────────────────────────
// MOCK DRIVER DOCUMENT REPOSITORY
// ──────────────────────────────────────────────

// MockDriverDocumentRepository is a mock implementation of
// DriverDocumentRepository.
type MockDriverDocumentRepository struct {
	mu        sync.RWMutex
	documents map[string]*domain.DriverDocument

	// Counters for verification
	CreateCallCount    int32
	ReviewAllCallCount int32

	// Error injection
	CreateError error
}

// NewMockDriverDocumentRepository creates a new mock document repository.
func NewMockDriverDocumentRepository() *MockDriverDocumentRepository {
	return &MockDriverDocumentRepository{
		documents: make(map[string]*domain.DriverDocument),
	}
}

// AddDocument adds a document to the mock repository.
func (m *MockDriverDocumentRepository) AddDocument(doc *domain.DriverDocument) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.documents[doc.ID] = doc
}

func (m *MockDriverDocumentRepository) Create(ctx context.Context, doc *domain.DriverDocument) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.documents[doc.ID] = doc
	return nil
}

func (m *MockDriverDocumentRepository) ListByProfile(ctx context.Context, profileID string) ([]*domain.DriverDocument, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.DriverDocument, 0)
	for _, d := range m.documents {
		if d.ProfileID == profileID {
			copy := *d
			result = append(result, &copy)
		}
	}
	return result, nil
}

func (m *MockDriverDocumentRepository) ReviewAll(ctx context.Context, profileID string, status domain.DocumentStatus, reviewerID string, reviewedAt time.Time, reason string) error {
	atomic.AddInt32(&m.ReviewAllCallCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, d := range m.documents {
		if d.ProfileID != profileID {
			continue
		}
		d.Status = status
		d.ReviewedBy = reviewerID
		d.ReviewedAt = reviewedAt
		if status == domain.DocumentStatusRejected {
			d.RejectionReason = reason
		}
	}
	return nil
}

// DocumentsForProfile returns stored documents for test assertions.
func (m *MockDriverDocumentRepository) DocumentsForProfile(profileID string) []*domain.DriverDocument {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.DriverDocument, 0)
	for _, d := range m.documents {
		if d.ProfileID == profileID {
			result = append(result, d)
		}
	}
	return result
}

// ──────────────────────────────────────────────
// MOCK CAR REPOSITORY
// ──────────────────────────────────────────────

// MockCarRepository is a mock implementation of CarRepository.
type MockCarRepository struct {
	mu   sync.RWMutex
	cars map[string]*domain.Car

	// Counters for verification
	CreateCallCount int32

	// Error injection
	CreateError error
}

// NewMockCarRepository creates a new mock car repository.
func NewMockCarRepository() *MockCarRepository {
	return &MockCarRepository{
		cars: make(map[string]*domain.Car),
	}
}

func (m *MockCarRepository) Create(ctx context.Context, car *domain.Car) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.cars {
		if c.LicensePlate == car.LicensePlate {
			return repository.ErrDuplicate
		}
	}
	m.cars[car.ID] = car
	return nil
}

func (m *MockCarRepository) ListByProfile(ctx context.Context, profileID string) ([]*domain.Car, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.Car, 0)
	for _, c := range m.cars {
		if c.ProfileID == profileID {
			copy := *c
			result = append(result, &copy)
		}
	}
	return result, nil
}

// ──────────────────────────────────────────────
// MOCK ORDER REPOSITORY
// ──────────────────────────────────────────────

// MockOrderRepository is a mock implementation of OrderRepository. The
// state-changing methods mirror the conditional updates of the real
// repository: they only apply when the current status allows it.
type MockOrderRepository struct {
	mu     sync.RWMutex
	orders map[string]*domain.Order

	// Counters for verification
	CreateCallCount        int32
	AcceptPendingCallCount int32

	// Error injection
	CreateError        error
	AcceptPendingError error
}

// NewMockOrderRepository creates a new mock order repository.
func NewMockOrderRepository() *MockOrderRepository {
	return &MockOrderRepository{
		orders: make(map[string]*domain.Order),
	}
}

// AddOrder adds an order to the mock repository.
func (m *MockOrderRepository) AddOrder(order *domain.Order) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.orders[order.ID] = order
}

func (m *MockOrderRepository) Create(ctx context.Context, order *domain.Order) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.orders[order.ID] = order
	return nil
}

func (m *MockOrderRepository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	order, ok := m.orders[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *order
	return &copy, nil
}

func (m *MockOrderRepository) ListByClient(ctx context.Context, clientID string) ([]*domain.Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.Order, 0)
	for _, o := range m.orders {
		if o.ClientID == clientID {
			copy := *o
			result = append(result, &copy)
		}
	}
	return result, nil
}

func (m *MockOrderRepository) ListByDriver(ctx context.Context, driverID string) ([]*domain.Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.Order, 0)
	for _, o := range m.orders {
		if o.DriverID == driverID {
			copy := *o
			result = append(result, &copy)
		}
	}
	return result, nil
}

func (m *MockOrderRepository) ListAvailable(ctx context.Context, now time.Time) ([]*domain.Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.Order, 0)
	for _, o := range m.orders {
		if o.Status == domain.OrderStatusPending && !o.PickupTime.Before(now) {
			copy := *o
			result = append(result, &copy)
		}
	}
	return result, nil
}

func (m *MockOrderRepository) List(ctx context.Context, filter repository.OrderFilter) ([]*domain.Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.Order, 0)
	for _, o := range m.orders {
		if filter.Status != "" && o.Status != filter.Status {
			continue
		}
		if !filter.CreatedFrom.IsZero() && o.CreatedAt.Before(filter.CreatedFrom) {
			continue
		}
		if !filter.CreatedTo.IsZero() && o.CreatedAt.After(filter.CreatedTo) {
			continue
		}
		copy := *o
		result = append(result, &copy)
	}
	return result, nil
}

func (m *MockOrderRepository) AcceptPending(ctx context.Context, id, driverID string, at time.Time) error {
	atomic.AddInt32(&m.AcceptPendingCallCount, 1)
	if m.AcceptPendingError != nil {
		return m.AcceptPendingError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	order, ok := m.orders[id]
	if !ok || order.Status != domain.OrderStatusPending {
		return repository.ErrNotFound
	}
	order.DriverID = driverID
	order.Status = domain.OrderStatusAccepted
	order.AcceptedAt = at
	return nil
}

func (m *MockOrderRepository) CompleteAccepted(ctx context.Context, id string, finalPrice float64, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	order, ok := m.orders[id]
	if !ok || order.Status != domain.OrderStatusAccepted {
		return repository.ErrNotFound
	}
	order.Status = domain.OrderStatusCompleted
	order.FinalPrice = finalPrice
	order.HasFinalPrice = true
	order.CompletedAt = at
	return nil
}

func (m *MockOrderRepository) CancelActive(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	order, ok := m.orders[id]
	if !ok {
		return repository.ErrNotFound
	}
	if order.Status != domain.OrderStatusPending && order.Status != domain.OrderStatusAccepted {
		return repository.ErrNotFound
	}
	order.Status = domain.OrderStatusCancelled
	return nil
}

func (m *MockOrderRepository) CountByStatus(ctx context.Context, status domain.OrderStatus, since time.Time) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	count := 0
	for _, o := range m.orders {
		if status != "" && o.Status != status {
			continue
		}
		if !since.IsZero() && o.CreatedAt.Before(since) {
			continue
		}
		count++
	}
	return count, nil
}

func (m *MockOrderRepository) CountByClient(ctx context.Context, clientID string, status domain.OrderStatus) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	count := 0
	for _, o := range m.orders {
		if o.ClientID != clientID {
			continue
		}
		if status != "" && o.Status != status {
			continue
		}
		count++
	}
	return count, nil
}

func (m *MockOrderRepository) CountByDriver(ctx context.Context, driverID string, status domain.OrderStatus) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	count := 0
	for _, o := range m.orders {
		if o.DriverID != driverID {
			continue
		}
		if status != "" && o.Status != status {
			continue
		}
		count++
	}
	return count, nil
}

func (m *MockOrderRepository) SumRevenue(ctx context.Context, since time.Time) (float64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var total float64
	for _, o := range m.orders {
		if o.Status != domain.OrderStatusCompleted {
			continue
		}
		if !since.IsZero() && o.CreatedAt.Before(since) {
			continue
		}
		total += o.FinalPrice
	}
	return total, nil
}

func (m *MockOrderRepository) SumSpentByClient(ctx context.Context, clientID string) (float64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var total float64
	for _, o := range m.orders {
		if o.ClientID == clientID && o.Status == domain.OrderStatusCompleted {
			total += o.FinalPrice
		}
	}
	return total, nil
}

func (m *MockOrderRepository) SumEarningsByDriver(ctx context.Context, driverID string) (float64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var total float64
	for _, o := range m.orders {
		if o.DriverID != driverID || o.Status != domain.OrderStatusCompleted {
			continue
		}
		if o.HasFinalPrice {
			total += o.FinalPrice
		} else {
			total += o.ClientPrice
		}
	}
	return total, nil
}

// GetOrder returns an order for test assertions.
func (m *MockOrderRepository) GetOrder(id string) *domain.Order {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.orders[id]
}

// ──────────────────────────────────────────────
// MOCK DRIVER REVIEW REPOSITORY
// ──────────────────────────────────────────────

// MockDriverReviewRepository is a mock implementation of
// DriverReviewRepository.
type MockDriverReviewRepository struct {
	mu      sync.RWMutex
	reviews map[string]*domain.DriverReview

	// Counters for verification
	CreateCallCount int32
}

// NewMockDriverReviewRepository creates a new mock review repository.
func NewMockDriverReviewRepository() *MockDriverReviewRepository {
	return &MockDriverReviewRepository{
		reviews: make(map[string]*domain.DriverReview),
	}
}

func (m *MockDriverReviewRepository) Create(ctx context.Context, review *domain.DriverReview) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.reviews {
		if r.OrderID == review.OrderID {
			return repository.ErrDuplicate
		}
	}
	m.reviews[review.ID] = review
	return nil
}

func (m *MockDriverReviewRepository) GetByOrderID(ctx context.Context, orderID string) (*domain.DriverReview, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, r := range m.reviews {
		if r.OrderID == orderID {
			copy := *r
			return &copy, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *MockDriverReviewRepository) AverageForProfile(ctx context.Context, profileID string) (float64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var sum, count float64
	for _, r := range m.reviews {
		if r.ProfileID == profileID {
			sum += float64(r.Rating)
			count++
		}
	}
	if count == 0 {
		return 0, nil
	}
	return sum / count, nil
}

// ──────────────────────────────────────────────
// MOCK ADMIN ACTION REPOSITORY
// ──────────────────────────────────────────────

// MockAdminActionRepository is a mock implementation of
// AdminActionRepository.
type MockAdminActionRepository struct {
	mu      sync.RWMutex
	actions []*domain.AdminAction

	// Counters for verification
	CreateCallCount int32
}

// NewMockAdminActionRepository creates a new mock admin action repository.
func NewMockAdminActionRepository() *MockAdminActionRepository {
	return &MockAdminActionRepository{}
}

func (m *MockAdminActionRepository) Create(ctx context.Context, action *domain.AdminAction) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.actions = append(m.actions, action)
	return nil
}

// Actions returns the recorded actions for test assertions.
func (m *MockAdminActionRepository) Actions() []*domain.AdminAction {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]*domain.AdminAction(nil), m.actions...)
}

// ──────────────────────────────────────────────
// MOCK FILE STORE
// ──────────────────────────────────────────────

// MockFileStore is an in-memory FileStore.
type MockFileStore struct {
	mu    sync.RWMutex
	files map[string][]byte

	// Counters for verification
	SaveCallCount int32

	// Error injection
	SaveError error
}

// NewMockFileStore creates a new in-memory file store.
func NewMockFileStore() *MockFileStore {
	return &MockFileStore{
		files: make(map[string][]byte),
	}
}

func (m *MockFileStore) Save(userID, subdir, filename string, src io.Reader) (string, error) {
	atomic.AddInt32(&m.SaveCallCount, 1)
	if m.SaveError != nil {
		return "", m.SaveError
	}
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(src); err != nil {
		return "", err
	}
	path := userID + "/" + subdir + "/" + filename
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[path] = buf.Bytes()
	return path, nil
}

// FileCount returns the number of stored files for test assertions.
func (m *MockFileStore) FileCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.files)
}
