package handler

type createRequestRequest struct {
	UserID          string `json:"user_id"`
	PassengerName   string `json:"passenger_name"   validate:"required"`
	NationalID      string `json:"national_id"      validate:"required"`
	Origin          string `json:"origin"           validate:"required"`
	Destination     string `json:"destination"      validate:"required"`
	TripType        string `json:"trip_type"        validate:"omitempty,oneof=one_way round_trip"`
	DepartureDate   string `json:"departure_date"   validate:"required"`
	ReturnDate      string `json:"return_date"`
	DestinationDate string `json:"destination_date"`
	Status          string `json:"status"`
}

// updateRequestRequest uses pointers so absent fields are distinguishable
// from empty ones; id, user_id and created_at are deliberately not bindable.
type updateRequestRequest struct {
	PassengerName   *string `json:"passenger_name"`
	NationalID      *string `json:"national_id"`
	Origin          *string `json:"origin"`
	Destination     *string `json:"destination"`
	TripType        *string `json:"trip_type" validate:"omitempty,oneof=one_way round_trip"`
	DepartureDate   *string `json:"departure_date"`
	ReturnDate      *string `json:"return_date"`
	DestinationDate *string `json:"destination_date"`
	Status          *string `json:"status"`
}

type deleteResponse struct {
	Message string `json:"message"`
}
