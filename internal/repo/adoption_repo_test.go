package repo

import (
	"context"
	"testing"

	"gorm.io/gorm"

	"github.com/pawpal/pawpal-backend/internal/domain"
)

func TestCreateRequest_Defaults_And_Get(t *testing.T) {
	db := newRepoDB(t)
	ctx := context.Background()
	owner := seedUser(t, db, "auth-owner")
	adopter := seedUser(t, db, "auth-adopter")
	dog := seedDog(t, db, owner, nil)

	req, err := CreateRequest(ctx, db, &domain.AdoptionRequest{DogID: dog.ID, AdopterID: adopter.ID})
	if err != nil {
		t.Fatalf("CreateRequest: %v", err)
	}
	if req.ID == "" || req.Status != domain.RequestPending {
		t.Fatalf("unexpected request: %+v", req)
	}

	got, err := GetRequest(ctx, db, req.ID)
	if err != nil || got.ID != req.ID {
		t.Fatalf("GetRequest: %+v %v", got, err)
	}
	if _, err := GetRequest(ctx, db, "missing"); err != gorm.ErrRecordNotFound {
		t.Fatalf("missing request expected ErrRecordNotFound, got %v", err)
	}
}

func TestPendingUniqueIndex_BlocksSecondPending(t *testing.T) {
	db := newRepoDB(t)
	ctx := context.Background()
	owner := seedUser(t, db, "auth-owner")
	adopter := seedUser(t, db, "auth-adopter")
	dog := seedDog(t, db, owner, nil)

	if _, err := CreateRequest(ctx, db, &domain.AdoptionRequest{DogID: dog.ID, AdopterID: adopter.ID}); err != nil {
		t.Fatalf("first request: %v", err)
	}
	if _, err := CreateRequest(ctx, db, &domain.AdoptionRequest{DogID: dog.ID, AdopterID: adopter.ID}); err == nil {
		t.Fatalf("second pending request should violate ux_requests_pending")
	}

	// A terminal row does not block a fresh pending request.
	exists, err := HasPendingRequest(ctx, db, dog.ID, adopter.ID)
	if err != nil || !exists {
		t.Fatalf("HasPendingRequest: %v %v", exists, err)
	}
	latest, err := LatestRequestFor(ctx, db, dog.ID, adopter.ID)
	if err != nil || latest == nil {
		t.Fatalf("LatestRequestFor: %+v %v", latest, err)
	}
	if err := UpdateRequestStatus(ctx, db, latest.ID, domain.RequestDeclined); err != nil {
		t.Fatalf("UpdateRequestStatus: %v", err)
	}
	if _, err := CreateRequest(ctx, db, &domain.AdoptionRequest{DogID: dog.ID, AdopterID: adopter.ID}); err != nil {
		t.Fatalf("re-request after decline should pass the partial index: %v", err)
	}
}

func TestLatestRequestFor_NoneIsNil(t *testing.T) {
	db := newRepoDB(t)
	got, err := LatestRequestFor(context.Background(), db, "dog", "adopter")
	if err != nil || got != nil {
		t.Fatalf("expected nil,nil for no rows, got %+v %v", got, err)
	}
}

func TestListIncomingAndOutgoing_Preloads(t *testing.T) {
	db := newRepoDB(t)
	ctx := context.Background()
	owner := seedUser(t, db, "auth-owner")
	adopter := seedUser(t, db, "auth-adopter")
	dog := seedDog(t, db, owner, nil)
	other := seedDog(t, db, adopter, nil) // adopter's own listing, not incoming for owner

	if _, err := CreateRequest(ctx, db, &domain.AdoptionRequest{DogID: dog.ID, AdopterID: adopter.ID}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := CreateRequest(ctx, db, &domain.AdoptionRequest{DogID: other.ID, AdopterID: owner.ID}); err != nil {
		t.Fatalf("create reverse: %v", err)
	}

	incoming, err := ListIncomingRequests(ctx, db, owner.ID)
	if err != nil {
		t.Fatalf("ListIncomingRequests: %v", err)
	}
	if len(incoming) != 1 {
		t.Fatalf("incoming = %d, want 1", len(incoming))
	}
	if incoming[0].Dog.ID != dog.ID || incoming[0].Adopter.ID != adopter.ID {
		t.Fatalf("incoming preloads wrong: %+v", incoming[0])
	}

	outgoing, err := ListOutgoingRequests(ctx, db, adopter.ID)
	if err != nil {
		t.Fatalf("ListOutgoingRequests: %v", err)
	}
	if len(outgoing) != 1 {
		t.Fatalf("outgoing = %d, want 1", len(outgoing))
	}
	if outgoing[0].Dog.Owner.ID != owner.ID {
		t.Fatalf("outgoing owner preload wrong: %+v", outgoing[0].Dog.Owner)
	}

	// Requests survive the listing's soft delete via the unscoped preload.
	if err := SoftDeleteDog(ctx, db, dog.ID); err != nil {
		t.Fatalf("soft delete: %v", err)
	}
	incoming, err = ListIncomingRequests(ctx, db, owner.ID)
	if err != nil || len(incoming) != 1 || incoming[0].Dog.ID != dog.ID {
		t.Fatalf("incoming after soft delete: %+v %v", incoming, err)
	}
}

func TestUpdateRequestStatus_Missing(t *testing.T) {
	db := newRepoDB(t)
	if err := UpdateRequestStatus(context.Background(), db, "missing", domain.RequestApproved); err != gorm.ErrRecordNotFound {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
}
