package field

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"fieldbook/infras/otel"
	"fieldbook/internal/domains/field/service"
	"fieldbook/shared/constant"
	"fieldbook/transport/http/response"
)

type Handler struct {
	service service.Field
	otel    otel.Otel
}

func New(service service.Field, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/fields", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetFields)
	})
}

// GetFields lists the field catalog.
// @Summary Get all fields
// @Description Retrieve every reservable field with its size and hourly price.
// @Tags Field
// @Accept json
// @Produce json
// @Success 200 {array} dto.FieldResponse "List of fields"
// @Failure 500 {object} response.Error
// @Router /v1/fields [get]
func (handler *Handler) GetFields(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetFields")
	defer scope.End()

	fields, err := handler.service.GetAll(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get fields")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Fields retrieved successfully")

	response.WithJSON(w, http.StatusOK, fields)
}
