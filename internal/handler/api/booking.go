package api

import (
	"errors"
	"net/http"

	"campus-booking/internal/domain/booking"
	reqdto "campus-booking/internal/handler/dto/request"
	resdto "campus-booking/internal/handler/dto/response"
	"campus-booking/internal/handler/httperr"
	"campus-booking/internal/handler/middleware"
	"campus-booking/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BookingHandler struct {
	bookingUseCase usecase.BookingUseCase
}

func NewBookingHandler(bookingUseCase usecase.BookingUseCase) *BookingHandler {
	return &BookingHandler{
		bookingUseCase: bookingUseCase,
	}
}

// @Summary Create booking
// @Description Book a resource for a time slot
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateBookingRequest true "Booking request"
// @Success 201 {object} resdto.BookingResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /bookings [post]
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, nil, "Internal server error", nil)
		return
	}

	var req reqdto.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	bookingRM, err := h.bookingUseCase.CreateBooking(c.Request.Context(), actor, req.ToParams())
	if err != nil {
		respondBookingError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resdto.FromBookingRM(bookingRM))
}

// @Summary List bookings
// @Description List the caller's bookings; admins see all bookings
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.BookingListResponse
// @Failure 401 {object} map[string]string
// @Router /bookings [get]
func (h *BookingHandler) ListBookings(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, nil, "Internal server error", nil)
		return
	}

	bookingsRM, err := h.bookingUseCase.ListBookings(c.Request.Context(), actor)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}

	response := make([]*resdto.BookingListResponse, len(bookingsRM))
	for i, rm := range bookingsRM {
		response[i] = resdto.FromBookingListRM(rm)
	}

	c.JSON(http.StatusOK, response)
}

// @Summary Get booking
// @Description Get a booking by ID (owner or admin)
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /bookings/{id} [get]
func (h *BookingHandler) GetBooking(c *gin.Context) {
	actor, id, ok := h.actorAndID(c)
	if !ok {
		return
	}

	bookingRM, err := h.bookingUseCase.GetBooking(c.Request.Context(), actor, id)
	if err != nil {
		respondBookingError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromBookingRM(bookingRM))
}

// @Summary Update booking
// @Description Reschedule a booking and/or change its details
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Param request body reqdto.UpdateBookingRequest true "Fields to update"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /bookings/{id} [put]
func (h *BookingHandler) UpdateBooking(c *gin.Context) {
	actor, id, ok := h.actorAndID(c)
	if !ok {
		return
	}

	var req reqdto.UpdateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}
	if req.IsEmpty() {
		httperr.AbortWithError(c, http.StatusBadRequest, nil, "No fields to update", nil)
		return
	}

	bookingRM, err := h.bookingUseCase.UpdateBooking(c.Request.Context(), actor, id, req.ToParams())
	if err != nil {
		respondBookingError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromBookingRM(bookingRM))
}

// @Summary Cancel booking
// @Description Cancel a booking; the record survives with the reason attached
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Param request body reqdto.CancelBookingRequest false "Cancellation reason"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /bookings/{id} [delete]
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	actor, id, ok := h.actorAndID(c)
	if !ok {
		return
	}

	// Body is optional on cancellation.
	var req reqdto.CancelBookingRequest
	_ = c.ShouldBindJSON(&req)

	bookingRM, err := h.bookingUseCase.CancelBooking(c.Request.Context(), actor, id, req.Reason)
	if err != nil {
		respondBookingError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromBookingRM(bookingRM))
}

// @Summary Check in
// @Description Mark attendance at the start of a booking (owner only)
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /bookings/{id}/checkin [put]
func (h *BookingHandler) CheckIn(c *gin.Context) {
	actor, id, ok := h.actorAndID(c)
	if !ok {
		return
	}

	bookingRM, err := h.bookingUseCase.CheckIn(c.Request.Context(), actor, id)
	if err != nil {
		respondBookingError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromBookingRM(bookingRM))
}

// @Summary Check out
// @Description Complete a booking after checking in (owner only)
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /bookings/{id}/checkout [put]
func (h *BookingHandler) CheckOut(c *gin.Context) {
	actor, id, ok := h.actorAndID(c)
	if !ok {
		return
	}

	bookingRM, err := h.bookingUseCase.CheckOut(c.Request.Context(), actor, id)
	if err != nil {
		respondBookingError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromBookingRM(bookingRM))
}

// @Summary Submit feedback
// @Description Attach a one-time rating and comment to a booking (owner only)
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Param request body reqdto.FeedbackRequest true "Feedback"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /bookings/{id}/feedback [put]
func (h *BookingHandler) SubmitFeedback(c *gin.Context) {
	actor, id, ok := h.actorAndID(c)
	if !ok {
		return
	}

	var req reqdto.FeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Rating must be an integer between 1 and 5", nil)
		return
	}

	bookingRM, err := h.bookingUseCase.SubmitFeedback(c.Request.Context(), actor, id, req.Rating, req.Comment)
	if err != nil {
		respondBookingError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromBookingRM(bookingRM))
}

func (h *BookingHandler) actorAndID(c *gin.Context) (usecase.Actor, uuid.UUID, bool) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, nil, "Internal server error", nil)
		return usecase.Actor{}, uuid.Nil, false
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid booking ID format", nil)
		return usecase.Actor{}, uuid.Nil, false
	}

	return actor, id, true
}

// respondBookingError maps admission and lifecycle failures onto HTTP
// statuses. Lifecycle violations surface their specific message so the
// client can tell "too early to check in" from "already checked in".
func respondBookingError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, usecase.ErrResourceNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Resource not found", nil)
	case errors.Is(err, usecase.ErrBookingNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Booking not found", nil)
	case errors.Is(err, usecase.ErrSlotConflict):
		middleware.RecordBookingConflict()
		httperr.AbortWithError(c, http.StatusConflict, err, "Time slot conflicts with an existing booking", nil)
	case errors.Is(err, usecase.ErrForbidden):
		httperr.AbortWithError(c, http.StatusForbidden, err, "Not authorized for this booking", nil)
	case errors.Is(err, usecase.ErrInvalidTimeRange):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid booking time range", nil)
	case errors.Is(err, usecase.ErrDurationExceeded):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Booking duration exceeds the resource maximum", nil)
	case errors.Is(err, usecase.ErrInvalidState):
		httperr.AbortWithError(c, http.StatusBadRequest, err, lifecycleMessage(err), nil)
	case errors.Is(err, usecase.ErrInvalidInput):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid input", nil)
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
	}
}

func lifecycleMessage(err error) string {
	switch {
	case errors.Is(err, booking.ErrCheckInTooEarly):
		return "Too early to check in"
	case errors.Is(err, booking.ErrCheckInTooLate):
		return "Check-in window has passed"
	case errors.Is(err, booking.ErrAlreadyCheckedIn):
		return "Already checked in"
	case errors.Is(err, booking.ErrNotCheckedIn):
		return "Must check in before checking out"
	case errors.Is(err, booking.ErrAlreadyCheckedOut):
		return "Already checked out"
	case errors.Is(err, booking.ErrNotConfirmed):
		return "Booking is not in a confirmed state"
	case errors.Is(err, booking.ErrAlreadyStarted):
		return "Booking has already started"
	case errors.Is(err, booking.ErrNotCancellable):
		return "Booking can no longer be cancelled"
	case errors.Is(err, booking.ErrNotReschedulable):
		return "Booking can no longer be rescheduled"
	case errors.Is(err, booking.ErrFeedbackExists):
		return "Feedback has already been submitted"
	default:
		return "Operation not allowed in current booking state"
	}
}
