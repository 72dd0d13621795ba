package domain

import (
	"errors"
	"time"
)

// StatusPending is the initial status of every trip request. Agents may move
// a request to arbitrary statuses afterwards, so the field stays a string.
const StatusPending = "pending"

var ErrRequestNotFound = errors.New("request not found")
var ErrForbidden = errors.New("access forbidden")

// TripRequest is a travel booking ask owned by a single user.
//
// ID, UserID and CreatedAt are immutable after creation; every other field
// may be replaced by an update.
type TripRequest struct {
	ID              string    `json:"id" bson:"_id"`
	UserID          string    `json:"user_id" bson:"user_id"`
	PassengerName   string    `json:"passenger_name" bson:"passenger_name"`
	NationalID      string    `json:"national_id" bson:"national_id"`
	Origin          string    `json:"origin" bson:"origin"`
	Destination     string    `json:"destination" bson:"destination"`
	TripType        string    `json:"trip_type,omitempty" bson:"trip_type,omitempty"`
	DepartureDate   string    `json:"departure_date" bson:"departure_date"`
	ReturnDate      string    `json:"return_date,omitempty" bson:"return_date,omitempty"`
	DestinationDate string    `json:"destination_date,omitempty" bson:"destination_date,omitempty"`
	Status          string    `json:"status" bson:"status"`
	CreatedAt       time.Time `json:"created_at" bson:"created_at"`
}

// VisibleTo reports whether identity may see this request: agents see
// everything, clients only their own records.
func (r TripRequest) VisibleTo(identity Identity) bool {
	return identity.IsAgent() || r.UserID == identity.ID
}
