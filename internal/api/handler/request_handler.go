package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/andestravel/travel-requests/internal/core/ports"
)

// RequestHandler handles HTTP requests for trip request operations.
type RequestHandler struct {
	service ports.RequestService
}

func NewRequestHandler(service ports.RequestService) *RequestHandler {
	return &RequestHandler{service: service}
}

// List handles GET /api/requests, scoped by the caller's role.
//
// @Summary      List trip requests visible to the caller
// @Tags         requests
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.TripRequest
// @Failure      401  {object}  errorResponse
// @Router       /api/requests [get]
func (h *RequestHandler) List(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	requests, err := h.service.List(c.Request().Context(), identity)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, requests)
}

// Create handles POST /api/requests.
//
// @Summary      Create a trip request
// @Tags         requests
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createRequestRequest  true  "Trip request fields"
// @Success      201   {object}  domain.TripRequest
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /api/requests [post]
func (h *RequestHandler) Create(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req createRequestRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	created, err := h.service.Create(c.Request().Context(), identity, ports.CreateRequestInput{
		UserID:          req.UserID,
		PassengerName:   req.PassengerName,
		NationalID:      req.NationalID,
		Origin:          req.Origin,
		Destination:     req.Destination,
		TripType:        req.TripType,
		DepartureDate:   req.DepartureDate,
		ReturnDate:      req.ReturnDate,
		DestinationDate: req.DestinationDate,
		Status:          req.Status,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, created)
}

// Update handles PUT /api/requests/:id with a partial body.
//
// @Summary      Update a trip request
// @Tags         requests
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                true  "Request id"
// @Param        body  body      updateRequestRequest  true  "Fields to change"
// @Success      200   {object}  domain.TripRequest
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/requests/{id} [put]
func (h *RequestHandler) Update(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req updateRequestRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	updated, err := h.service.Update(c.Request().Context(), identity, c.Param("id"), ports.UpdateRequestInput{
		PassengerName:   req.PassengerName,
		NationalID:      req.NationalID,
		Origin:          req.Origin,
		Destination:     req.Destination,
		TripType:        req.TripType,
		DepartureDate:   req.DepartureDate,
		ReturnDate:      req.ReturnDate,
		DestinationDate: req.DestinationDate,
		Status:          req.Status,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, updated)
}

// Delete handles DELETE /api/requests/:id.
//
// @Summary      Delete a trip request
// @Tags         requests
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Request id"
// @Success      200  {object}  deleteResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/requests/{id} [delete]
func (h *RequestHandler) Delete(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), identity, c.Param("id")); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, deleteResponse{Message: "request deleted"})
}
