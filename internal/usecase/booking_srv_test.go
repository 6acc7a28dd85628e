package usecase

import (
	"context"
	"testing"

	"travel-booking/internal/data/entity"
	"travel-booking/internal/data/repository"
	"travel-booking/internal/dto/request"
	"travel-booking/pkg/apperr"
	"travel-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap/zaptest"
)

type bookingTestEnv struct {
	store *memStore
	repo  *repository.Repository
	svc   BookingService
}

func newBookingTestEnv(t *testing.T) *bookingTestEnv {
	store := newMemStore()
	repo := newFakeRepository(store)

	config := &utils.Config{
		Session: utils.SessionConfig{Secret: "test-session-secret", ExpiryHours: 1},
	}

	svc := NewBookingService(repo, &fakeTxManager{repo: repo}, config, zaptest.NewLogger(t))

	return &bookingTestEnv{store: store, repo: repo, svc: svc}
}

func TestCreateBookingProvisionsGuestAccount(t *testing.T) {
	env := newBookingTestEnv(t)
	pkg := seedPackage(env.store, 5000)

	resp, err := env.svc.CreateOrUpdateBooking(context.Background(), &request.CreateBookingRequest{
		PackageID:     pkg.ID.String(),
		CustomerEmail: "New.Guest@Example.com",
		Guests:        2,
	})
	if err != nil {
		t.Fatalf("CreateOrUpdateBooking: %v", err)
	}

	if resp.TemporaryPassword == nil || *resp.TemporaryPassword == "" {
		t.Errorf("expected a temporary password for a new guest")
	}
	if resp.Token == "" {
		t.Errorf("expected a session token")
	}
	if resp.User.Email != "new.guest@example.com" {
		t.Errorf("email not normalized: %q", resp.User.Email)
	}
	// No name supplied: fall back to the email local part.
	if resp.User.Name != "new.guest" {
		t.Errorf("user name = %q, want new.guest", resp.User.Name)
	}

	if resp.Booking.Status != entity.BookingStatusPending {
		t.Errorf("booking status = %s, want pending", resp.Booking.Status)
	}
	if resp.Booking.TotalAmount != 10000 {
		t.Errorf("total = %v, want 10000", resp.Booking.TotalAmount)
	}

	// Booking again with the same email reuses the account silently.
	resp2, err := env.svc.CreateOrUpdateBooking(context.Background(), &request.CreateBookingRequest{
		PackageID:     pkg.ID.String(),
		CustomerEmail: "new.guest@example.com",
	})
	if err != nil {
		t.Fatalf("second CreateOrUpdateBooking: %v", err)
	}
	if resp2.TemporaryPassword != nil {
		t.Errorf("temporary password issued for an existing account")
	}
	if resp2.User.ID != resp.User.ID {
		t.Errorf("second booking created a second account")
	}
}

func TestCreateBookingDefaults(t *testing.T) {
	env := newBookingTestEnv(t)
	pkg := seedPackage(env.store, 1234.56)

	resp, err := env.svc.CreateOrUpdateBooking(context.Background(), &request.CreateBookingRequest{
		PackageID:     pkg.ID.String(),
		CustomerEmail: "a@example.com",
	})
	if err != nil {
		t.Fatalf("CreateOrUpdateBooking: %v", err)
	}

	if resp.Booking.Guests != 1 {
		t.Errorf("guests defaulted to %d, want 1", resp.Booking.Guests)
	}
	if resp.Booking.PricePerPerson != 1234.56 {
		t.Errorf("price per person = %v, want the package price", resp.Booking.PricePerPerson)
	}
	if resp.Booking.PackageName != pkg.Name {
		t.Errorf("package name snapshot missing")
	}
}

func TestCreateBookingUnknownPackage(t *testing.T) {
	env := newBookingTestEnv(t)

	_, err := env.svc.CreateOrUpdateBooking(context.Background(), &request.CreateBookingRequest{
		PackageID:     uuid.NewString(),
		CustomerEmail: "a@example.com",
	})
	if !apperr.IsKind(err, apperr.KindNotFound) {
		t.Fatalf("err = %v, want not found", err)
	}
}

func TestCreateBookingInactivePackage(t *testing.T) {
	env := newBookingTestEnv(t)
	pkg := seedPackage(env.store, 900)
	pkg.IsActive = false

	_, err := env.svc.CreateOrUpdateBooking(context.Background(), &request.CreateBookingRequest{
		PackageID:     pkg.ID.String(),
		CustomerEmail: "a@example.com",
	})
	if !apperr.IsKind(err, apperr.KindNotFound) {
		t.Fatalf("err = %v, want not found", err)
	}
}

func TestUpdateBookingMergesWithoutErasing(t *testing.T) {
	env := newBookingTestEnv(t)
	pkg := seedPackage(env.store, 800)

	first, err := env.svc.CreateOrUpdateBooking(context.Background(), &request.CreateBookingRequest{
		PackageID:     pkg.ID.String(),
		CustomerEmail: "a@example.com",
		CustomerName:  "Asha",
		CustomerPhone: strptr("9876543210"),
		Guests:        2,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// Second submit carries only new trip dates; earlier contact data
	// must survive.
	second, err := env.svc.CreateOrUpdateBooking(context.Background(), &request.CreateBookingRequest{
		BookingID:     strptr(first.Booking.ID),
		PackageID:     pkg.ID.String(),
		CustomerEmail: "a@example.com",
		StartDate:     strptr("2026-10-01"),
		EndDate:       strptr("2026-10-05"),
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	if second.Booking.ID != first.Booking.ID {
		t.Fatalf("update created a new booking")
	}
	if second.Booking.CustomerName != "Asha" {
		t.Errorf("customer name erased on partial update: %q", second.Booking.CustomerName)
	}
	if second.Booking.CustomerPhone == nil || *second.Booking.CustomerPhone != "9876543210" {
		t.Errorf("customer phone erased on partial update")
	}
	if second.Booking.Guests != 2 {
		t.Errorf("guests erased on partial update: %d", second.Booking.Guests)
	}
	if second.Booking.StartDate != "2026-10-01" || second.Booking.EndDate != "2026-10-05" {
		t.Errorf("dates not applied: %s..%s", second.Booking.StartDate, second.Booking.EndDate)
	}
}

func TestUpdateBookingPaidConflict(t *testing.T) {
	env := newBookingTestEnv(t)
	pkg := seedPackage(env.store, 800)

	first, err := env.svc.CreateOrUpdateBooking(context.Background(), &request.CreateBookingRequest{
		PackageID:     pkg.ID.String(),
		CustomerEmail: "a@example.com",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	bookingID := uuid.MustParse(first.Booking.ID)
	env.store.bookings[bookingID].Status = entity.BookingStatusPaid

	_, err = env.svc.CreateOrUpdateBooking(context.Background(), &request.CreateBookingRequest{
		BookingID:     strptr(first.Booking.ID),
		PackageID:     pkg.ID.String(),
		CustomerEmail: "a@example.com",
		Guests:        5,
	})
	if !apperr.IsKind(err, apperr.KindConflict) {
		t.Fatalf("err = %v, want conflict", err)
	}
}

func TestUpdateBookingOwnership(t *testing.T) {
	env := newBookingTestEnv(t)
	pkg := seedPackage(env.store, 800)

	first, err := env.svc.CreateOrUpdateBooking(context.Background(), &request.CreateBookingRequest{
		PackageID:     pkg.ID.String(),
		CustomerEmail: "owner@example.com",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	_, err = env.svc.CreateOrUpdateBooking(context.Background(), &request.CreateBookingRequest{
		BookingID:     strptr(first.Booking.ID),
		PackageID:     pkg.ID.String(),
		CustomerEmail: "intruder@example.com",
	})
	if !apperr.IsKind(err, apperr.KindForbidden) {
		t.Fatalf("err = %v, want forbidden", err)
	}
}

func TestCreateBookingRejectsReversedDates(t *testing.T) {
	env := newBookingTestEnv(t)
	pkg := seedPackage(env.store, 800)

	_, err := env.svc.CreateOrUpdateBooking(context.Background(), &request.CreateBookingRequest{
		PackageID:     pkg.ID.String(),
		CustomerEmail: "a@example.com",
		StartDate:     strptr("2026-10-05"),
		EndDate:       strptr("2026-10-01"),
	})
	if !apperr.IsKind(err, apperr.KindValidation) {
		t.Fatalf("err = %v, want validation", err)
	}
}

func TestGetBookingDetail(t *testing.T) {
	env := newBookingTestEnv(t)
	user := seedUser(env.store, "asha@example.com")
	pkg := seedPackage(env.store, 1500)
	booking := seedBooking(env.store, user, pkg, 2)

	paymentID := "pay_123"
	env.store.orders["order_abc"] = &entity.Order{
		BaseNoDelete:   entity.BaseNoDelete{ID: uuid.New()},
		GatewayOrderID: "order_abc",
		Receipt:        "trip_x_1",
		UserID:         user.ID,
		PackageID:      pkg.ID,
		BookingID:      booking.ID,
		AmountMinor:    300000,
		Currency:       "INR",
		Status:         entity.OrderStatusPaid,
		PaymentID:      &paymentID,
	}

	detail, err := env.svc.GetBookingDetail(context.Background(), booking.ID.String())
	if err != nil {
		t.Fatalf("GetBookingDetail: %v", err)
	}

	if detail.Booking.ID != booking.ID.String() {
		t.Errorf("booking id = %s", detail.Booking.ID)
	}
	if detail.Order == nil {
		t.Fatalf("order missing from detail")
	}
	if detail.Order.GatewayOrderID != "order_abc" || detail.Order.Status != "paid" {
		t.Errorf("order = %+v", detail.Order)
	}
}

func TestGetBookingDetailWithoutOrder(t *testing.T) {
	env := newBookingTestEnv(t)
	user := seedUser(env.store, "asha@example.com")
	pkg := seedPackage(env.store, 1500)
	booking := seedBooking(env.store, user, pkg, 2)

	detail, err := env.svc.GetBookingDetail(context.Background(), booking.ID.String())
	if err != nil {
		t.Fatalf("GetBookingDetail: %v", err)
	}
	if detail.Order != nil {
		t.Errorf("unexpected order on a booking that never checked out")
	}

	if _, err := env.svc.GetBookingDetail(context.Background(), uuid.NewString()); !apperr.IsKind(err, apperr.KindNotFound) {
		t.Errorf("unknown booking err = %v, want not found", err)
	}
}
