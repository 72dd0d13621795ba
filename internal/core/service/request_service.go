package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/andestravel/travel-requests/internal/api/metrics"
	"github.com/andestravel/travel-requests/internal/core/domain"
	"github.com/andestravel/travel-requests/internal/core/ports"
	"github.com/andestravel/travel-requests/internal/pkg/rut"
)

// RequestService enforces role- and ownership-scoped CRUD over trip requests.
type RequestService struct {
	repo   ports.RequestRepository
	logger zerolog.Logger
}

func NewRequestService(repo ports.RequestRepository, logger zerolog.Logger) *RequestService {
	return &RequestService{repo: repo, logger: logger}
}

// List returns every request for agents and only the caller's own requests
// for clients.
func (s *RequestService) List(ctx context.Context, identity domain.Identity) ([]*domain.TripRequest, error) {
	ownerID := identity.ID
	if identity.IsAgent() {
		ownerID = ""
	}
	return s.repo.List(ctx, ownerID)
}

// Create persists a new request owned by the caller. Agents may supply a
// user_id to file the request on behalf of a client; that field is ignored
// for everyone else.
func (s *RequestService) Create(ctx context.Context, identity domain.Identity, in ports.CreateRequestInput) (*domain.TripRequest, error) {
	result := rut.Validate(in.NationalID)
	if !result.Valid {
		return nil, domain.ErrInvalidNationalID
	}

	ownerID := identity.ID
	if identity.IsAgent() && in.UserID != "" {
		ownerID = in.UserID
	}

	status := in.Status
	if status == "" {
		status = domain.StatusPending
	}

	request := &domain.TripRequest{
		ID:              uuid.NewString(),
		UserID:          ownerID,
		PassengerName:   in.PassengerName,
		NationalID:      result.Formatted,
		Origin:          in.Origin,
		Destination:     in.Destination,
		TripType:        in.TripType,
		DepartureDate:   in.DepartureDate,
		ReturnDate:      in.ReturnDate,
		DestinationDate: in.DestinationDate,
		Status:          status,
		CreatedAt:       time.Now().UTC(),
	}

	if err := s.repo.Insert(ctx, request); err != nil {
		s.logger.Error().Err(err).Msg("failed to create request")
		return nil, err
	}

	metrics.RequestOperationsTotal.WithLabelValues("create").Inc()
	s.logger.Info().Str("request_id", request.ID).Str("user_id", ownerID).Msg("request created")
	return request, nil
}

// Update merges the supplied fields over the stored record. ID, owner and
// creation timestamp cannot change: the whitelist input simply has no way to
// express them.
func (s *RequestService) Update(ctx context.Context, identity domain.Identity, id string, in ports.UpdateRequestInput) (*domain.TripRequest, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !existing.VisibleTo(identity) {
		return nil, domain.ErrForbidden
	}

	merged := *existing
	applyString(&merged.PassengerName, in.PassengerName)
	applyString(&merged.Origin, in.Origin)
	applyString(&merged.Destination, in.Destination)
	applyString(&merged.TripType, in.TripType)
	applyString(&merged.DepartureDate, in.DepartureDate)
	applyString(&merged.ReturnDate, in.ReturnDate)
	applyString(&merged.DestinationDate, in.DestinationDate)
	applyString(&merged.Status, in.Status)

	if in.NationalID != nil {
		result := rut.Validate(*in.NationalID)
		if !result.Valid {
			return nil, domain.ErrInvalidNationalID
		}
		merged.NationalID = result.Formatted
	}

	if err := s.repo.Replace(ctx, &merged); err != nil {
		return nil, err
	}

	metrics.RequestOperationsTotal.WithLabelValues("update").Inc()
	s.logger.Info().Str("request_id", id).Str("actor", identity.ID).Msg("request updated")
	return &merged, nil
}

// Delete removes a request. Agents may delete any record; clients only their
// own, and a foreign record answers exactly like a missing one.
func (s *RequestService) Delete(ctx context.Context, identity domain.Identity, id string) error {
	ownerID := identity.ID
	if identity.IsAgent() {
		ownerID = ""
	}

	if err := s.repo.Delete(ctx, id, ownerID); err != nil {
		return err
	}

	metrics.RequestOperationsTotal.WithLabelValues("delete").Inc()
	s.logger.Info().Str("request_id", id).Str("actor", identity.ID).Msg("request deleted")
	return nil
}

func applyString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}
