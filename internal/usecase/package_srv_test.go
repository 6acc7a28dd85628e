package usecase

import (
	"context"
	"testing"

	"travel-booking/internal/dto/request"
	"travel-booking/pkg/apperr"

	"github.com/google/uuid"
	"go.uber.org/zap/zaptest"
)

// Cache behavior needs a live Redis; these tests exercise the nil-client
// path where the service falls through to the repository.
func newPackageTestService(t *testing.T, store *memStore) PackageService {
	t.Helper()
	return NewPackageService(newFakeRepository(store), nil, zaptest.NewLogger(t))
}

func TestListPackagesSkipsInactive(t *testing.T) {
	store := newMemStore()
	active := seedPackage(store, 12500)
	inactive := seedPackage(store, 9000)
	inactive.IsActive = false

	svc := newPackageTestService(t, store)

	resp, err := svc.ListPackages(context.Background(), &request.PaginatedRequest{Page: 1, PerPage: 10})
	if err != nil {
		t.Fatalf("ListPackages: %v", err)
	}

	if len(resp.Data) != 1 {
		t.Fatalf("listed %d packages, want 1", len(resp.Data))
	}
	if resp.Data[0].ID != active.ID.String() {
		t.Errorf("listed package %s, want %s", resp.Data[0].ID, active.ID)
	}
	if resp.Pagination.Total != 1 {
		t.Errorf("total = %d, want 1", resp.Pagination.Total)
	}
}

func TestGetPackageByID(t *testing.T) {
	store := newMemStore()
	pkg := seedPackage(store, 12500)
	svc := newPackageTestService(t, store)

	resp, err := svc.GetPackageByID(context.Background(), pkg.ID.String())
	if err != nil {
		t.Fatalf("GetPackageByID: %v", err)
	}
	if resp.Name != pkg.Name || resp.PricePerPerson != 12500 {
		t.Errorf("response = %+v", resp)
	}

	if _, err := svc.GetPackageByID(context.Background(), "not-a-uuid"); !apperr.IsKind(err, apperr.KindValidation) {
		t.Errorf("invalid id err = %v, want validation", err)
	}
	if _, err := svc.GetPackageByID(context.Background(), uuid.NewString()); !apperr.IsKind(err, apperr.KindNotFound) {
		t.Errorf("unknown id err = %v, want not found", err)
	}
}

func TestGetPackageByIDHidesInactive(t *testing.T) {
	store := newMemStore()
	pkg := seedPackage(store, 12500)
	pkg.IsActive = false
	svc := newPackageTestService(t, store)

	if _, err := svc.GetPackageByID(context.Background(), pkg.ID.String()); !apperr.IsKind(err, apperr.KindNotFound) {
		t.Errorf("inactive package err = %v, want not found", err)
	}
}

func TestCreateAndUpdatePackage(t *testing.T) {
	store := newMemStore()
	svc := newPackageTestService(t, store)

	created, err := svc.CreatePackage(context.Background(), &request.UpsertPackageRequest{
		Name:           "Kerala Backwaters",
		Location:       "Alleppey",
		PricePerPerson: 18000,
		DurationDays:   5,
	})
	if err != nil {
		t.Fatalf("CreatePackage: %v", err)
	}
	if !created.IsActive {
		t.Errorf("new package not active by default")
	}

	inactive := false
	updated, err := svc.UpdatePackage(context.Background(), created.ID, &request.UpsertPackageRequest{
		Name:           "Kerala Backwaters",
		Location:       "Alleppey",
		PricePerPerson: 19500,
		DurationDays:   6,
		IsActive:       &inactive,
	})
	if err != nil {
		t.Fatalf("UpdatePackage: %v", err)
	}
	if updated.PricePerPerson != 19500 || updated.DurationDays != 6 || updated.IsActive {
		t.Errorf("updated = %+v", updated)
	}
}

func TestCreatePackageRejectsInvalid(t *testing.T) {
	store := newMemStore()
	svc := newPackageTestService(t, store)

	_, err := svc.CreatePackage(context.Background(), &request.UpsertPackageRequest{Name: "X"})
	if !apperr.IsKind(err, apperr.KindValidation) {
		t.Fatalf("err = %v, want validation", err)
	}
}

func TestDeactivatePackageHidesFromCatalog(t *testing.T) {
	store := newMemStore()
	pkg := seedPackage(store, 12500)
	svc := newPackageTestService(t, store)

	if err := svc.DeactivatePackage(context.Background(), pkg.ID.String()); err != nil {
		t.Fatalf("DeactivatePackage: %v", err)
	}

	resp, err := svc.ListPackages(context.Background(), &request.PaginatedRequest{Page: 1, PerPage: 10})
	if err != nil {
		t.Fatalf("ListPackages: %v", err)
	}
	if len(resp.Data) != 0 {
		t.Errorf("deactivated package still listed")
	}
}
