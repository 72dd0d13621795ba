package ports

import (
	"context"

	"github.com/andestravel/travel-requests/internal/core/domain"
)

// RequestRepository defines persistence operations for trip requests.
//
// Every operation is a single atomic document write or read; ownership
// scoping is expressed through the ownerID filter so access decisions and
// storage lookups cannot race each other.
type RequestRepository interface {
	Insert(ctx context.Context, r *domain.TripRequest) error
	FindByID(ctx context.Context, id string) (*domain.TripRequest, error)
	// List returns all requests when ownerID is empty (agent view) or only
	// the requests owned by ownerID otherwise.
	List(ctx context.Context, ownerID string) ([]*domain.TripRequest, error)
	// Replace overwrites the stored document with r, matched by r.ID.
	// Returns domain.ErrRequestNotFound when no document matches.
	Replace(ctx context.Context, r *domain.TripRequest) error
	// Delete removes the request with the given id. When ownerID is
	// non-empty the match additionally requires user_id == ownerID, so a
	// foreign record and a missing record both yield
	// domain.ErrRequestNotFound.
	Delete(ctx context.Context, id, ownerID string) error
}
