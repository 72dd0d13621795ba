package service

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/rs/zerolog"

	"github.com/andestravel/travel-requests/internal/core/domain"
	"github.com/andestravel/travel-requests/internal/core/ports"
)

type stubRequestRepo struct {
	requests map[string]*domain.TripRequest
}

func newStubRequestRepo() *stubRequestRepo {
	return &stubRequestRepo{requests: make(map[string]*domain.TripRequest)}
}

func cloneRequest(r *domain.TripRequest) *domain.TripRequest {
	if r == nil {
		return nil
	}
	clone := *r
	return &clone
}

func (s *stubRequestRepo) Insert(_ context.Context, r *domain.TripRequest) error {
	s.requests[r.ID] = cloneRequest(r)
	return nil
}

func (s *stubRequestRepo) FindByID(_ context.Context, id string) (*domain.TripRequest, error) {
	if r, ok := s.requests[id]; ok {
		return cloneRequest(r), nil
	}
	return nil, domain.ErrRequestNotFound
}

func (s *stubRequestRepo) List(_ context.Context, ownerID string) ([]*domain.TripRequest, error) {
	var out []*domain.TripRequest
	for _, r := range s.requests {
		if ownerID == "" || r.UserID == ownerID {
			out = append(out, cloneRequest(r))
		}
	}
	return out, nil
}

func (s *stubRequestRepo) Replace(_ context.Context, r *domain.TripRequest) error {
	if _, ok := s.requests[r.ID]; !ok {
		return domain.ErrRequestNotFound
	}
	s.requests[r.ID] = cloneRequest(r)
	return nil
}

func (s *stubRequestRepo) Delete(_ context.Context, id, ownerID string) error {
	r, ok := s.requests[id]
	if !ok || (ownerID != "" && r.UserID != ownerID) {
		return domain.ErrRequestNotFound
	}
	delete(s.requests, id)
	return nil
}

var (
	clientX = domain.Identity{ID: "client-x", Role: domain.RoleClient, Name: "X"}
	clientY = domain.Identity{ID: "client-y", Role: domain.RoleClient, Name: "Y"}
	agent   = domain.Identity{ID: "agent-1", Role: domain.RoleAgent, Name: "Agent"}
)

func validCreateInput() ports.CreateRequestInput {
	return ports.CreateRequestInput{
		PassengerName: "Maria Perez",
		NationalID:    "12.345.678-5",
		Origin:        "Santiago",
		Destination:   "Iquique",
		DepartureDate: "2025-05-01",
	}
}

func TestRequestService_Create_DefaultsAndOwnership(t *testing.T) {
	repo := newStubRequestRepo()
	svc := NewRequestService(repo, zerolog.Nop())

	created, err := svc.Create(context.Background(), clientX, validCreateInput())
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if created.ID == "" {
		t.Fatalf("expected assigned id")
	}
	if created.UserID != clientX.ID {
		t.Fatalf("expected owner %s, got %s", clientX.ID, created.UserID)
	}
	if created.Status != domain.StatusPending {
		t.Fatalf("expected pending status, got %q", created.Status)
	}
	if created.NationalID != "12345678-5" {
		t.Fatalf("expected normalized RUT, got %q", created.NationalID)
	}
	if created.CreatedAt.IsZero() {
		t.Fatalf("expected creation timestamp")
	}
}

func TestRequestService_Create_ClientCannotSpoofOwner(t *testing.T) {
	repo := newStubRequestRepo()
	svc := NewRequestService(repo, zerolog.Nop())

	in := validCreateInput()
	in.UserID = clientY.ID

	created, err := svc.Create(context.Background(), clientX, in)
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if created.UserID != clientX.ID {
		t.Fatalf("client must not create on behalf of another user, owner = %s", created.UserID)
	}
}

func TestRequestService_Create_AgentOnBehalfOf(t *testing.T) {
	repo := newStubRequestRepo()
	svc := NewRequestService(repo, zerolog.Nop())

	in := validCreateInput()
	in.UserID = clientY.ID

	created, err := svc.Create(context.Background(), agent, in)
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if created.UserID != clientY.ID {
		t.Fatalf("expected linked owner %s, got %s", clientY.ID, created.UserID)
	}
}

func TestRequestService_Create_InvalidRUT(t *testing.T) {
	repo := newStubRequestRepo()
	svc := NewRequestService(repo, zerolog.Nop())

	in := validCreateInput()
	in.NationalID = "12345678-9"

	if _, err := svc.Create(context.Background(), clientX, in); !errors.Is(err, domain.ErrInvalidNationalID) {
		t.Fatalf("expected ErrInvalidNationalID, got %v", err)
	}
	if len(repo.requests) != 0 {
		t.Fatalf("store must stay unchanged on validation failure")
	}
}

func TestRequestService_List_ScopedByRole(t *testing.T) {
	repo := newStubRequestRepo()
	svc := NewRequestService(repo, zerolog.Nop())

	first, _ := svc.Create(context.Background(), clientX, validCreateInput())
	second, _ := svc.Create(context.Background(), clientY, validCreateInput())

	mine, err := svc.List(context.Background(), clientX)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(mine) != 1 || mine[0].ID != first.ID {
		t.Fatalf("client must only see own requests, got %d", len(mine))
	}
	for _, r := range mine {
		if r.UserID != clientX.ID {
			t.Fatalf("foreign record leaked to client: %+v", r)
		}
	}

	all, err := svc.List(context.Background(), agent)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("agent must see every request, got %d", len(all))
	}
	_ = second
}

func TestRequestService_Update_MergesAndPreservesImmutables(t *testing.T) {
	repo := newStubRequestRepo()
	svc := NewRequestService(repo, zerolog.Nop())

	created, _ := svc.Create(context.Background(), clientX, validCreateInput())

	newDestination := "Arica"
	newStatus := "approved"
	updated, err := svc.Update(context.Background(), agent, created.ID, ports.UpdateRequestInput{
		Destination: &newDestination,
		Status:      &newStatus,
	})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if updated.Destination != "Arica" || updated.Status != "approved" {
		t.Fatalf("fields not merged: %+v", updated)
	}
	if updated.ID != created.ID || updated.UserID != created.UserID || !updated.CreatedAt.Equal(created.CreatedAt) {
		t.Fatalf("immutable fields changed: %+v", updated)
	}
	if updated.Origin != created.Origin || updated.PassengerName != created.PassengerName {
		t.Fatalf("unmentioned fields must survive the merge: %+v", updated)
	}
}

func TestRequestService_Update_ForbiddenLeavesRecordUntouched(t *testing.T) {
	repo := newStubRequestRepo()
	svc := NewRequestService(repo, zerolog.Nop())

	created, _ := svc.Create(context.Background(), clientX, validCreateInput())
	before := cloneRequest(repo.requests[created.ID])

	hijack := "Punta Arenas"
	_, err := svc.Update(context.Background(), clientY, created.ID, ports.UpdateRequestInput{Destination: &hijack})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if !reflect.DeepEqual(before, repo.requests[created.ID]) {
		t.Fatalf("record mutated by forbidden update")
	}
}

func TestRequestService_Update_NotFound(t *testing.T) {
	repo := newStubRequestRepo()
	svc := NewRequestService(repo, zerolog.Nop())

	if _, err := svc.Update(context.Background(), agent, "missing", ports.UpdateRequestInput{}); !errors.Is(err, domain.ErrRequestNotFound) {
		t.Fatalf("expected ErrRequestNotFound, got %v", err)
	}
}

func TestRequestService_Delete_OwnershipMasking(t *testing.T) {
	repo := newStubRequestRepo()
	svc := NewRequestService(repo, zerolog.Nop())

	created, _ := svc.Create(context.Background(), clientX, validCreateInput())

	// A foreign record and a missing record answer identically.
	foreign := svc.Delete(context.Background(), clientY, created.ID)
	missing := svc.Delete(context.Background(), clientY, "missing")
	if !errors.Is(foreign, domain.ErrRequestNotFound) || !errors.Is(missing, domain.ErrRequestNotFound) {
		t.Fatalf("expected ErrRequestNotFound for both, got %v / %v", foreign, missing)
	}

	if err := svc.Delete(context.Background(), clientX, created.ID); err != nil {
		t.Fatalf("owner delete failed: %v", err)
	}

	remaining, _ := svc.List(context.Background(), agent)
	if len(remaining) != 0 {
		t.Fatalf("deleted request still listed")
	}
}

func TestRequestService_Delete_AgentDeletesAny(t *testing.T) {
	repo := newStubRequestRepo()
	svc := NewRequestService(repo, zerolog.Nop())

	created, _ := svc.Create(context.Background(), clientX, validCreateInput())

	if err := svc.Delete(context.Background(), agent, created.ID); err != nil {
		t.Fatalf("agent delete failed: %v", err)
	}
}
