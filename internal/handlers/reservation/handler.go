package reservation

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"fieldbook/infras/otel"
	"fieldbook/internal/domains/reservation/model/dto"
	"fieldbook/internal/domains/reservation/service"
	"fieldbook/shared/constant"
	"fieldbook/shared/failure"
	"fieldbook/shared/validator"
	"fieldbook/transport/http/response"
)

type Handler struct {
	service service.Reservation
	otel    otel.Otel
}

func New(service service.Reservation, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/reservations", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateReservation)
		routerGroup.Get("/", handler.GetReservations)
	})
}

// CreateReservation books a time slot on a field.
// @Summary Create a reservation
// @Description Book a slot on a field for a given date. Slots that overlap an existing reservation on the same field and date are rejected.
// @Tags Reservation
// @Accept json
// @Produce json
// @Param request body dto.CreateReservationRequest true "Create Reservation Request"
// @Success 201 {object} dto.ReservationResponse "Created reservation"
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error "Slot already reserved"
// @Failure 500 {object} response.Error
// @Router /v1/reservations [post]
func (handler *Handler) CreateReservation(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateReservation")
	defer scope.End()

	req := dto.CreateReservationRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create reservation")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Reservation created successfully for field " + res.FieldID)

	response.WithJSON(writer, http.StatusCreated, res)
}

// GetReservations lists the occupied slots for one field on one day.
// @Summary Get reservations
// @Description Retrieve the reserved slots for a field on a date, ordered by start time. Only the occupied intervals are exposed.
// @Tags Reservation
// @Accept json
// @Produce json
// @Param date query string true "Date (YYYY-MM-DD)"
// @Param fieldId query string true "Field ID"
// @Success 200 {array} dto.ReservationSlotResponse "Reserved slots"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/reservations [get]
func (handler *Handler) GetReservations(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetReservations")
	defer scope.End()

	date := r.URL.Query().Get(constant.RequestParamDate)
	fieldID := r.URL.Query().Get(constant.RequestParamFieldID)

	if date == "" || fieldID == "" {
		err := failure.BadRequestFromString("date and fieldId are required")
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	reservations, err := handler.service.GetAll(ctx, fieldID, date)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get reservations")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Reservations retrieved successfully")

	response.WithJSON(w, http.StatusOK, reservations)
}
