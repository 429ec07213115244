package services

import (
	"context"
	"errors"
	"testing"

	"gorm.io/gorm"

	"github.com/pawpal/pawpal-backend/internal/domain"
	"github.com/pawpal/pawpal-backend/internal/repo"
)

// flowFixture seeds an owner with one listing and an adopter.
func flowFixture(t *testing.T, db *gorm.DB) (owner, adopter *domain.User, dog *domain.Dog) {
	t.Helper()
	users := &UserService{DB: db}
	dogs := &DogService{DB: db}
	owner = mustUser(t, users, "auth-owner")
	adopter = mustUser(t, users, "auth-adopter")

	var err error
	dog, err = dogs.Create(context.Background(), "auth-owner", DogCreateInput{
		Area: "Gazi", Images: []string{"https://cdn.example.com/x.jpg"},
	})
	if err != nil {
		t.Fatalf("seed dog: %v", err)
	}
	return owner, adopter, dog
}

func TestAdoptionService_Create_Validation(t *testing.T) {
	db := newSvcDB(t)
	svc := &AdoptionService{DB: db}
	ctx := context.Background()
	_, _, dog := flowFixture(t, db)

	if _, err := svc.Create(ctx, "nobody", dog.ID, nil); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("unknown caller expected ErrUserNotFound, got %v", err)
	}
	if _, err := svc.Create(ctx, "auth-adopter", "00000000-0000-0000-0000-000000000000", nil); !errors.Is(err, ErrDogNotFound) {
		t.Fatalf("missing dog expected ErrDogNotFound, got %v", err)
	}
	if _, err := svc.Create(ctx, "auth-owner", dog.ID, nil); !errors.Is(err, ErrOwnDog) {
		t.Fatalf("own dog expected ErrOwnDog, got %v", err)
	}

	msg := "I have a garden."
	req, err := svc.Create(ctx, "auth-adopter", dog.ID, &msg)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if req.Status != domain.RequestPending {
		t.Fatalf("new request status = %q", req.Status)
	}

	if _, err := svc.Create(ctx, "auth-adopter", dog.ID, nil); !errors.Is(err, ErrDuplicateRequest) {
		t.Fatalf("second pending expected ErrDuplicateRequest, got %v", err)
	}
}

func TestAdoptionService_Create_HiddenDogIsInvisible(t *testing.T) {
	db := newSvcDB(t)
	svc := &AdoptionService{DB: db}
	ctx := context.Background()
	_, _, dog := flowFixture(t, db)

	if err := repo.SetDogHidden(ctx, db, dog.ID, true); err != nil {
		t.Fatalf("hide: %v", err)
	}
	if _, err := svc.Create(ctx, "auth-adopter", dog.ID, nil); !errors.Is(err, ErrDogNotFound) {
		t.Fatalf("hidden dog expected ErrDogNotFound, got %v", err)
	}
}

func TestAdoptionService_UpdateStatus_GuardsAndCascade(t *testing.T) {
	db := newSvcDB(t)
	svc := &AdoptionService{DB: db}
	ctx := context.Background()
	_, _, dog := flowFixture(t, db)

	req, err := svc.Create(ctx, "auth-adopter", dog.ID, nil)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if _, _, err := svc.UpdateStatus(ctx, "auth-owner", req.ID, "nonsense"); !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("invalid status expected ErrInvalidStatus, got %v", err)
	}
	if _, _, err := svc.UpdateStatus(ctx, "auth-adopter", req.ID, domain.RequestApproved); !errors.Is(err, ErrNotDogOwner) {
		t.Fatalf("non-owner expected ErrNotDogOwner, got %v", err)
	}
	if _, _, err := svc.UpdateStatus(ctx, "auth-owner", "00000000-0000-0000-0000-000000000000", domain.RequestApproved); !errors.Is(err, ErrRequestNotFound) {
		t.Fatalf("missing request expected ErrRequestNotFound, got %v", err)
	}

	updated, movedDog, err := svc.UpdateStatus(ctx, "auth-owner", req.ID, domain.RequestApproved)
	if err != nil {
		t.Fatalf("approve: %v", err)
	}
	if updated.Status != domain.RequestApproved {
		t.Fatalf("request status = %q", updated.Status)
	}
	if movedDog == nil || movedDog.Status != domain.DogPending {
		t.Fatalf("approval should reserve the dog: %+v", movedDog)
	}

	// Terminal requests stay terminal.
	if _, _, err := svc.UpdateStatus(ctx, "auth-owner", req.ID, domain.RequestDeclined); !errors.Is(err, ErrRequestClosed) {
		t.Fatalf("closed request expected ErrRequestClosed, got %v", err)
	}
}

func TestAdoptionService_UpdateStatus_NoCascadeWhenDogMovedOn(t *testing.T) {
	db := newSvcDB(t)
	svc := &AdoptionService{DB: db}
	ctx := context.Background()
	_, _, dog := flowFixture(t, db)

	req, err := svc.Create(ctx, "auth-adopter", dog.ID, nil)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := repo.UpdateDogStatus(ctx, db, dog.ID, domain.DogAdopted); err != nil {
		t.Fatalf("pre-move dog: %v", err)
	}

	_, movedDog, err := svc.UpdateStatus(ctx, "auth-owner", req.ID, domain.RequestApproved)
	if err != nil {
		t.Fatalf("approve: %v", err)
	}
	if movedDog != nil {
		t.Fatalf("cascade must be skipped when the dog is no longer available, got %+v", movedDog)
	}
}

func TestAdoptionService_ContactGating(t *testing.T) {
	db := newSvcDB(t)
	svc := &AdoptionService{DB: db}
	ctx := context.Background()
	_, adopter, dog := flowFixture(t, db)

	phone := "+30 690 000 0000"
	if err := db.Model(&domain.User{}).Where("id = ?", adopter.ID).Update("phone", phone).Error; err != nil {
		t.Fatalf("set phone: %v", err)
	}

	req, err := svc.Create(ctx, "auth-adopter", dog.ID, nil)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	// Pending: incoming blanks adopter contact fields, outgoing omits the
	// caretaker object.
	incoming, err := svc.ListIncoming(ctx, "auth-owner")
	if err != nil || len(incoming) != 1 {
		t.Fatalf("ListIncoming: %v (%d)", err, len(incoming))
	}
	if incoming[0].ContactVisible || incoming[0].Adopter.Email != nil || incoming[0].Adopter.Phone != nil {
		t.Fatalf("pending request leaked contact: %+v", incoming[0].Adopter)
	}
	if incoming[0].Adopter.Name == "" {
		t.Fatalf("adopter name should always be present")
	}

	outgoing, err := svc.ListOutgoing(ctx, "auth-adopter")
	if err != nil || len(outgoing) != 1 {
		t.Fatalf("ListOutgoing: %v (%d)", err, len(outgoing))
	}
	if outgoing[0].Caretaker != nil {
		t.Fatalf("pending request leaked caretaker contact: %+v", outgoing[0].Caretaker)
	}

	if _, _, err := svc.UpdateStatus(ctx, "auth-owner", req.ID, domain.RequestApproved); err != nil {
		t.Fatalf("approve: %v", err)
	}

	// Approved: both directions unlock.
	incoming, _ = svc.ListIncoming(ctx, "auth-owner")
	if !incoming[0].ContactVisible || incoming[0].Adopter.Email == nil || incoming[0].Adopter.Phone == nil {
		t.Fatalf("approved request should expose adopter contact: %+v", incoming[0].Adopter)
	}
	outgoing, _ = svc.ListOutgoing(ctx, "auth-adopter")
	if outgoing[0].Caretaker == nil || outgoing[0].Caretaker.Email == "" {
		t.Fatalf("approved request should expose caretaker contact: %+v", outgoing[0].Caretaker)
	}
}

func TestAdoptionService_MyRequestForDog(t *testing.T) {
	db := newSvcDB(t)
	svc := &AdoptionService{DB: db}
	ctx := context.Background()
	_, _, dog := flowFixture(t, db)

	got, err := svc.MyRequestForDog(ctx, "auth-adopter", dog.ID)
	if err != nil || got != nil {
		t.Fatalf("no request yet: %+v %v", got, err)
	}

	req, err := svc.Create(ctx, "auth-adopter", dog.ID, nil)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	got, err = svc.MyRequestForDog(ctx, "auth-adopter", dog.ID)
	if err != nil || got == nil || got.ID != req.ID {
		t.Fatalf("MyRequestForDog: %+v %v", got, err)
	}

	if _, err := svc.MyRequestForDog(ctx, "nobody", dog.ID); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("unknown caller expected ErrUserNotFound, got %v", err)
	}
}
