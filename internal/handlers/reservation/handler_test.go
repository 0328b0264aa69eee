package reservation_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	otelMocks "fieldbook/infras/otel/mocks"
	"fieldbook/internal/domains/reservation/mocks"
	"fieldbook/internal/domains/reservation/model/dto"
	"fieldbook/internal/handlers/reservation"
	"fieldbook/shared/failure"
)

func newRouter(t *testing.T, service *mocks.MockReservationService) chi.Router {
	t.Helper()

	handler := reservation.New(service, otelMocks.NewOtel())

	router := chi.NewRouter()
	handler.Router(router)

	return router
}

func TestCreateReservation(t *testing.T) {
	t.Run("returns 201 with the created reservation", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		serviceMock := mocks.NewMockReservationService(ctrl)

		serviceMock.EXPECT().Create(gomock.Any(), dto.CreateReservationRequest{
			Date:      "2026-09-01",
			StartTime: "15:00",
			EndTime:   "16:00",
			FieldID:   "field-1",
			UserID:    "user-1",
		}).Return(dto.ReservationResponse{
			ID:        "r1",
			Date:      "2026-09-01",
			StartTime: "15:00",
			EndTime:   "16:00",
			FieldID:   "field-1",
			UserID:    "user-1",
		}, nil)

		body := `{"date":"2026-09-01","startTime":"15:00","endTime":"16:00","fieldId":"field-1","userId":"user-1"}`
		request := httptest.NewRequest(http.MethodPost, "/reservations/", strings.NewReader(body))
		recorder := httptest.NewRecorder()

		newRouter(t, serviceMock).ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusCreated, recorder.Code)

		var res dto.ReservationResponse
		assert.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &res))
		assert.Equal(t, "r1", res.ID)
		assert.Equal(t, "15:00", res.StartTime)
	})

	t.Run("returns 400 when required fields are missing", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		serviceMock := mocks.NewMockReservationService(ctrl)

		body := `{"date":"2026-09-01","startTime":"15:00","endTime":"16:00"}`
		request := httptest.NewRequest(http.MethodPost, "/reservations/", strings.NewReader(body))
		recorder := httptest.NewRecorder()

		newRouter(t, serviceMock).ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})

	t.Run("returns 409 when the slot is taken", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		serviceMock := mocks.NewMockReservationService(ctrl)

		serviceMock.EXPECT().Create(gomock.Any(), gomock.Any()).
			Return(dto.ReservationResponse{}, failure.Conflict("slot already reserved"))

		body := `{"date":"2026-09-01","startTime":"15:00","endTime":"16:00","fieldId":"field-1","userId":"user-1"}`
		request := httptest.NewRequest(http.MethodPost, "/reservations/", strings.NewReader(body))
		recorder := httptest.NewRecorder()

		newRouter(t, serviceMock).ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusConflict, recorder.Code)
		assert.Contains(t, recorder.Body.String(), "slot already reserved")
	})
}

func TestGetReservations(t *testing.T) {
	t.Run("returns the slots for a field and date", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		serviceMock := mocks.NewMockReservationService(ctrl)

		serviceMock.EXPECT().GetAll(gomock.Any(), "field-1", "2026-09-01").
			Return(dto.GetReservationsResponse{
				{ID: "r1", StartTime: "09:00", EndTime: "10:00"},
			}, nil)

		request := httptest.NewRequest(http.MethodGet, "/reservations/?date=2026-09-01&fieldId=field-1", nil)
		recorder := httptest.NewRecorder()

		newRouter(t, serviceMock).ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.JSONEq(t, `[{"id":"r1","startTime":"09:00","endTime":"10:00"}]`, recorder.Body.String())
	})

	t.Run("returns 400 when date or fieldId is missing", func(t *testing.T) {
		tests := []struct {
			name   string
			target string
		}{
			{name: "missing both", target: "/reservations/"},
			{name: "missing fieldId", target: "/reservations/?date=2026-09-01"},
			{name: "missing date", target: "/reservations/?fieldId=field-1"},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				ctrl := gomock.NewController(t)
				serviceMock := mocks.NewMockReservationService(ctrl)

				request := httptest.NewRequest(http.MethodGet, tt.target, nil)
				recorder := httptest.NewRecorder()

				newRouter(t, serviceMock).ServeHTTP(recorder, request)

				assert.Equal(t, http.StatusBadRequest, recorder.Code)
				assert.Contains(t, recorder.Body.String(), "date and fieldId are required")
			})
		}
	})
}
