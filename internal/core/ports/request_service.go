package ports

import (
	"context"

	"github.com/andestravel/travel-requests/internal/core/domain"
)

// CreateRequestInput carries the fields accepted when creating a trip request.
// UserID is only honoured when the caller is an agent creating a request on
// behalf of a client; for everyone else the owner is the caller.
type CreateRequestInput struct {
	UserID          string
	PassengerName   string
	NationalID      string
	Origin          string
	Destination     string
	TripType        string
	DepartureDate   string
	ReturnDate      string
	DestinationDate string
	Status          string
}

// UpdateRequestInput is the mutable-field whitelist applied on update. Nil
// pointers mean "leave unchanged"; id, owner and creation timestamp are not
// representable here at all.
type UpdateRequestInput struct {
	PassengerName   *string
	NationalID      *string
	Origin          *string
	Destination     *string
	TripType        *string
	DepartureDate   *string
	ReturnDate      *string
	DestinationDate *string
	Status          *string
}

// RequestService defines role-scoped CRUD over trip requests.
type RequestService interface {
	List(ctx context.Context, identity domain.Identity) ([]*domain.TripRequest, error)
	Create(ctx context.Context, identity domain.Identity, in CreateRequestInput) (*domain.TripRequest, error)
	Update(ctx context.Context, identity domain.Identity, id string, in UpdateRequestInput) (*domain.TripRequest, error)
	Delete(ctx context.Context, identity domain.Identity, id string) error
}
