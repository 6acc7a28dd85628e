package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"travel-booking/internal/data/entity"
	"travel-booking/internal/data/repository"
	"travel-booking/pkg/gateway"
	"travel-booking/pkg/mailer"

	"github.com/google/uuid"
)

// In-memory repository fakes. One memStore backs every fake so the
// transaction-bound view and the pool view observe the same data, which
// mirrors how the real TxManager hands out repositories.

type memStore struct {
	mu           sync.Mutex
	users        map[uuid.UUID]*entity.User
	packages     map[uuid.UUID]*entity.TravelPackage
	bookings     map[uuid.UUID]*entity.Booking
	orders       map[string]*entity.Order
	entitlements map[string]*entity.Entitlement
	promos       map[string]*entity.PromoCode
}

func newMemStore() *memStore {
	return &memStore{
		users:        make(map[uuid.UUID]*entity.User),
		packages:     make(map[uuid.UUID]*entity.TravelPackage),
		bookings:     make(map[uuid.UUID]*entity.Booking),
		orders:       make(map[string]*entity.Order),
		entitlements: make(map[string]*entity.Entitlement),
		promos:       make(map[string]*entity.PromoCode),
	}
}

func newFakeRepository(store *memStore) *repository.Repository {
	return &repository.Repository{
		User:        &fakeUserRepo{store: store},
		Package:     &fakePackageRepo{store: store},
		Booking:     &fakeBookingRepo{store: store},
		Order:       &fakeOrderRepo{store: store},
		Entitlement: &fakeEntitlementRepo{store: store},
		Promo:       &fakePromoRepo{store: store},
	}
}

type fakeTxManager struct {
	repo *repository.Repository
}

func (m *fakeTxManager) InTx(ctx context.Context, fn func(r *repository.Repository) error) error {
	return fn(m.repo)
}

// ==================== SEED HELPERS ====================

func seedUser(store *memStore, email string) *entity.User {
	now := time.Now()
	user := &entity.User{
		Base: entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		Name: "Asha Traveller", Email: email,
		PasswordHash: "x", Role: entity.RoleUser, IsActive: true,
	}
	store.users[user.ID] = user
	return user
}

func seedPackage(store *memStore, price float64) *entity.TravelPackage {
	now := time.Now()
	pkg := &entity.TravelPackage{
		BaseNoDelete: entity.BaseNoDelete{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		Name:         "Goa Getaway", Location: "Goa",
		PricePerPerson: price, DurationDays: 4, IsActive: true,
	}
	store.packages[pkg.ID] = pkg
	return pkg
}

func seedBooking(store *memStore, user *entity.User, pkg *entity.TravelPackage, guests int) *entity.Booking {
	now := time.Now()
	booking := &entity.Booking{
		BaseNoDelete: entity.BaseNoDelete{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		UserID:       user.ID,
		PackageID:    pkg.ID,
		PackageName:  pkg.Name,
		CustomerName: user.Name, CustomerEmail: user.Email,
		Guests:         guests,
		PricePerPerson: pkg.PricePerPerson,
		TotalAmount:    pkg.PricePerPerson * float64(guests),
		Status:         entity.BookingStatusPending,
	}
	store.bookings[booking.ID] = booking
	return booking
}

// ==================== USER ====================

type fakeUserRepo struct {
	store *memStore
}

func (f *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()

	for _, u := range f.store.users {
		if u.Email == user.Email && u.DeletedAt == nil {
			return repository.ErrDuplicate
		}
	}
	cp := *user
	f.store.users[user.ID] = &cp
	return nil
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()

	u, ok := f.store.users[id]
	if !ok || u.DeletedAt != nil {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()

	for _, u := range f.store.users {
		if u.Email == email && u.DeletedAt == nil {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) FindAll(ctx context.Context, limit, offset int) ([]*entity.User, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()

	var users []*entity.User
	for _, u := range f.store.users {
		if u.DeletedAt == nil {
			cp := *u
			users = append(users, &cp)
		}
	}
	return users, nil
}

func (f *fakeUserRepo) CountAll(ctx context.Context) (int64, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()

	var n int64
	for _, u := range f.store.users {
		if u.DeletedAt == nil {
			n++
		}
	}
	return n, nil
}

func (f *fakeUserRepo) CountAdmins(ctx context.Context) (int64, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()

	var n int64
	for _, u := range f.store.users {
		if u.Role == entity.RoleAdmin && u.DeletedAt == nil {
			n++
		}
	}
	return n, nil
}

func (f *fakeUserRepo) Update(ctx context.Context, user *entity.User) error {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()

	if _, ok := f.store.users[user.ID]; !ok {
		return fmt.Errorf("user %s not found", user.ID)
	}
	cp := *user
	f.store.users[user.ID] = &cp
	return nil
}

func (f *fakeUserRepo) UpdateRole(ctx context.Context, id uuid.UUID, role entity.UserRole) error {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()

	u, ok := f.store.users[id]
	if !ok {
		return fmt.Errorf("user %s not found", id)
	}
	u.Role = role
	return nil
}

func (f *fakeUserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()

	u, ok := f.store.users[id]
	if !ok || u.DeletedAt != nil {
		return fmt.Errorf("user %s not found", id)
	}
	now := time.Now()
	u.DeletedAt = &now
	return nil
}

// ==================== PACKAGE ====================

type fakePackageRepo struct {
	store *memStore
}

func (f *fakePackageRepo) Create(ctx context.Context, pkg *entity.TravelPackage) error {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()

	cp := *pkg
	f.store.packages[pkg.ID] = &cp
	return nil
}

func (f *fakePackageRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.TravelPackage, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()

	p, ok := f.store.packages[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (f *fakePackageRepo) FindAllActive(ctx context.Context, limit, offset int) ([]*entity.TravelPackage, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()

	var packages []*entity.TravelPackage
	for _, p := range f.store.packages {
		if p.IsActive {
			cp := *p
			packages = append(packages, &cp)
		}
	}
	return packages, nil
}

func (f *fakePackageRepo) CountActive(ctx context.Context) (int64, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()

	var n int64
	for _, p := range f.store.packages {
		if p.IsActive {
			n++
		}
	}
	return n, nil
}

func (f *fakePackageRepo) Update(ctx context.Context, pkg *entity.TravelPackage) error {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()

	if _, ok := f.store.packages[pkg.ID]; !ok {
		return fmt.Errorf("package %s not found", pkg.ID)
	}
	cp := *pkg
	f.store.packages[pkg.ID] = &cp
	return nil
}

func (f *fakePackageRepo) Deactivate(ctx context.Context, id uuid.UUID) error {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()

	p, ok := f.store.packages[id]
	if !ok {
		return fmt.Errorf("package %s not found", id)
	}
	p.IsActive = false
	return nil
}

// ==================== BOOKING ====================

type fakeBookingRepo struct {
	store *memStore
}

func (f *fakeBookingRepo) Create(ctx context.Context, booking *entity.Booking) error {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()

	cp := *booking
	f.store.bookings[booking.ID] = &cp
	return nil
}

func (f *fakeBookingRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()

	b, ok := f.store.bookings[id]
	if !ok {
		return nil, nil
	}
	cp := *b
	return &cp, nil
}

func (f *fakeBookingRepo) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	return f.FindByID(ctx, id)
}

func (f *fakeBookingRepo) FindByGatewayOrderID(ctx context.Context, gatewayOrderID string) (*entity.Booking, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()

	for _, b := range f.store.bookings {
		if b.GatewayOrderID != nil && *b.GatewayOrderID == gatewayOrderID {
			cp := *b
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeBookingRepo) FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Booking, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()

	var bookings []*entity.Booking
	for _, b := range f.store.bookings {
		if b.UserID == userID {
			cp := *b
			bookings = append(bookings, &cp)
		}
	}
	return bookings, nil
}

func (f *fakeBookingRepo) CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()

	var n int64
	for _, b := range f.store.bookings {
		if b.UserID == userID {
			n++
		}
	}
	return n, nil
}

// UpdateMerge mirrors the SQL merge semantics: empty or nil incoming
// values keep what is stored.
func (f *fakeBookingRepo) UpdateMerge(ctx context.Context, booking *entity.Booking) error {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()

	b, ok := f.store.bookings[booking.ID]
	if !ok {
		return fmt.Errorf("booking %s not found", booking.ID)
	}

	if booking.CustomerName != "" {
		b.CustomerName = booking.CustomerName
	}
	if booking.CustomerEmail != "" {
		b.CustomerEmail = booking.CustomerEmail
	}
	if booking.CustomerPhone != nil {
		b.CustomerPhone = booking.CustomerPhone
	}
	if booking.Address != nil {
		b.Address = booking.Address
	}
	if booking.StartDate != nil {
		b.StartDate = booking.StartDate
	}
	if booking.EndDate != nil {
		b.EndDate = booking.EndDate
	}
	if booking.Guests > 0 {
		b.Guests = booking.Guests
	}
	if booking.SpecialRequests != nil {
		b.SpecialRequests = booking.SpecialRequests
	}
	b.PricePerPerson = booking.PricePerPerson
	b.TotalAmount = booking.TotalAmount
	b.UpdatedAt = booking.UpdatedAt
	return nil
}

func (f *fakeBookingRepo) SetGatewayOrderID(ctx context.Context, bookingID uuid.UUID, gatewayOrderID string) error {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()

	b, ok := f.store.bookings[bookingID]
	if !ok {
		return fmt.Errorf("booking %s not found", bookingID)
	}
	b.GatewayOrderID = &gatewayOrderID
	return nil
}

func (f *fakeBookingRepo) MarkPaidByGatewayOrderID(ctx context.Context, gatewayOrderID string) error {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()

	for _, b := range f.store.bookings {
		if b.GatewayOrderID != nil && *b.GatewayOrderID == gatewayOrderID && b.Status != entity.BookingStatusPaid {
			b.Status = entity.BookingStatusPaid
		}
	}
	return nil
}

func (f *fakeBookingRepo) MarkFailedByGatewayOrderID(ctx context.Context, gatewayOrderID string) error {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()

	for _, b := range f.store.bookings {
		if b.GatewayOrderID != nil && *b.GatewayOrderID == gatewayOrderID && b.Status != entity.BookingStatusPaid {
			b.Status = entity.BookingStatusFailed
		}
	}
	return nil
}

// ==================== ORDER ====================

type fakeOrderRepo struct {
	store *memStore
}

func (f *fakeOrderRepo) Create(ctx context.Context, order *entity.Order) error {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()

	if _, exists := f.store.orders[order.GatewayOrderID]; exists {
		return fmt.Errorf("duplicate gateway order %s", order.GatewayOrderID)
	}
	cp := *order
	f.store.orders[order.GatewayOrderID] = &cp
	return nil
}

func (f *fakeOrderRepo) FindByGatewayOrderID(ctx context.Context, gatewayOrderID string) (*entity.Order, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()

	o, ok := f.store.orders[gatewayOrderID]
	if !ok {
		return nil, nil
	}
	cp := *o
	return &cp, nil
}

func (f *fakeOrderRepo) FindByBookingID(ctx context.Context, bookingID uuid.UUID) (*entity.Order, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()

	var latest *entity.Order
	for _, o := range f.store.orders {
		if o.BookingID == bookingID {
			if latest == nil || o.CreatedAt.After(latest.CreatedAt) {
				latest = o
			}
		}
	}
	if latest == nil {
		return nil, nil
	}
	cp := *latest
	return &cp, nil
}

func (f *fakeOrderRepo) MarkPaid(ctx context.Context, gatewayOrderID, paymentID, signature string) (bool, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()

	o, ok := f.store.orders[gatewayOrderID]
	if !ok || o.Status == entity.OrderStatusPaid {
		return false, nil
	}
	o.Status = entity.OrderStatusPaid
	o.PaymentID = &paymentID
	o.Signature = &signature
	o.UpdatedAt = time.Now()
	return true, nil
}

func (f *fakeOrderRepo) MarkFailed(ctx context.Context, gatewayOrderID string) error {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()

	o, ok := f.store.orders[gatewayOrderID]
	if ok && o.Status != entity.OrderStatusPaid {
		o.Status = entity.OrderStatusFailed
	}
	return nil
}

// ==================== ENTITLEMENT ====================

type fakeEntitlementRepo struct {
	store *memStore
}

func entitlementKey(ent *entity.Entitlement) string {
	return fmt.Sprintf("%s|%s|%s|%s", ent.UserID, ent.PackageID, ent.GatewayOrderID, ent.PaymentID)
}

func (f *fakeEntitlementRepo) Grant(ctx context.Context, ent *entity.Entitlement) error {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()

	key := entitlementKey(ent)
	if _, exists := f.store.entitlements[key]; exists {
		return nil
	}
	cp := *ent
	f.store.entitlements[key] = &cp
	return nil
}

func (f *fakeEntitlementRepo) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Entitlement, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()

	var ents []*entity.Entitlement
	for _, e := range f.store.entitlements {
		if e.UserID == userID {
			cp := *e
			ents = append(ents, &cp)
		}
	}
	return ents, nil
}

func (f *fakeEntitlementRepo) Exists(ctx context.Context, userID, packageID uuid.UUID) (bool, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()

	for _, e := range f.store.entitlements {
		if e.UserID == userID && e.PackageID == packageID {
			return true, nil
		}
	}
	return false, nil
}

// ==================== PROMO ====================

type fakePromoRepo struct {
	store *memStore
}

func (f *fakePromoRepo) FindByCode(ctx context.Context, code string) (*entity.PromoCode, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()

	p, ok := f.store.promos[code]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

// ==================== GATEWAY ====================

// fakeGateway signs and verifies with the real HMAC helpers so the
// verification path in the service is exercised end to end.
type fakeGateway struct {
	mu            sync.Mutex
	keySecret     string
	webhookSecret string
	nextOrderID   int
	createErr     error
	created       []*gateway.CreateOrderRequest
}

func (g *fakeGateway) CreateOrder(ctx context.Context, req *gateway.CreateOrderRequest) (*gateway.Order, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.createErr != nil {
		return nil, g.createErr
	}

	g.nextOrderID++
	g.created = append(g.created, req)

	return &gateway.Order{
		ID:       fmt.Sprintf("order_test_%d", g.nextOrderID),
		Amount:   req.Amount,
		Currency: req.Currency,
		Receipt:  req.Receipt,
		Status:   "created",
	}, nil
}

func (g *fakeGateway) VerifyPaymentSignature(orderID, paymentID, signature string) bool {
	return gateway.VerifySignature(g.keySecret, orderID+"|"+paymentID, signature)
}

func (g *fakeGateway) VerifyWebhookSignature(body []byte, signature string) bool {
	return gateway.VerifySignature(g.webhookSecret, string(body), signature)
}

func (g *fakeGateway) KeyID() string {
	return "rzp_test_key"
}

// ==================== MAILER ====================

type fakeMailer struct {
	mu    sync.Mutex
	sent  []string
	fail  bool
	calls int
}

func (m *fakeMailer) SendBookingConfirmation(toEmail string, data *mailer.BookingConfirmation, receiptPDF []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls++
	if m.fail {
		return fmt.Errorf("smtp down")
	}
	m.sent = append(m.sent, toEmail)
	return nil
}
