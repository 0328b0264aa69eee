package service_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"fieldbook/config"
	"fieldbook/infras/kafka"
	kafkaMocks "fieldbook/infras/kafka/mocks"
	otelMocks "fieldbook/infras/otel/mocks"
	fieldMocks "fieldbook/internal/domains/field/mocks"
	"fieldbook/internal/domains/reservation/mocks"
	"fieldbook/internal/domains/reservation/model"
	"fieldbook/internal/domains/reservation/model/dto"
	"fieldbook/internal/domains/reservation/service"
	"fieldbook/shared/cache"
	cacheMocks "fieldbook/shared/cache/mocks"
	gDto "fieldbook/shared/dto"
	"fieldbook/shared/failure"
)

type serviceFixture struct {
	repo      *mocks.MockReservation
	fieldRepo *fieldMocks.MockField
	cache     *cacheMocks.MockRedisCache
	kafka     *kafkaMocks.MockClient
	cfg       *config.Config
	service   service.Reservation
}

func newServiceFixture(t *testing.T) *serviceFixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	f := &serviceFixture{
		repo:      mocks.NewMockReservation(ctrl),
		fieldRepo: fieldMocks.NewMockField(ctrl),
		cache:     cacheMocks.NewMockRedisCache(ctrl),
		kafka:     kafkaMocks.NewMockClient(ctrl),
		cfg:       &config.Config{},
	}
	f.cfg.Cache.TTL = 60

	f.service = service.New(f.repo, f.fieldRepo, f.cfg, f.cache, otelMocks.NewOtel(), f.kafka)

	return f
}

// expectCacheCleared returns a channel that closes once the async cache
// invalidation after a successful Create has run.
func (f *serviceFixture) expectCacheCleared() <-chan struct{} {
	cleared := make(chan struct{})

	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, _ string) error {
		close(cleared)

		return nil
	})

	return cleared
}

func validRequest() dto.CreateReservationRequest {
	return dto.CreateReservationRequest{
		Date:      "2026-09-01",
		StartTime: "15:00",
		EndTime:   "16:00",
		FieldID:   "field-1",
		UserID:    "user-1",
	}
}

func TestCreate(t *testing.T) {
	t.Run("admits a slot on an empty day", func(t *testing.T) {
		f := newServiceFixture(t)

		f.fieldRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]model.Reservation{}, nil)
		f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)
		cleared := f.expectCacheCleared()

		res, err := f.service.Create(context.Background(), validRequest())

		assert.NoError(t, err)
		assert.NotEmpty(t, res.ID)
		assert.Equal(t, "2026-09-01", res.Date)
		assert.Equal(t, "15:00", res.StartTime)
		assert.Equal(t, "16:00", res.EndTime)
		assert.Equal(t, "field-1", res.FieldID)
		assert.Equal(t, "user-1", res.UserID)

		<-cleared
	})

	t.Run("admits a slot adjacent to an existing one", func(t *testing.T) {
		f := newServiceFixture(t)

		f.fieldRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]model.Reservation{
				{ID: "existing", StartMinute: 840, EndMinute: 900},
				{ID: "existing-2", StartMinute: 960, EndMinute: 1020},
			}, nil)
		f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)
		cleared := f.expectCacheCleared()

		_, err := f.service.Create(context.Background(), validRequest())

		assert.NoError(t, err)

		<-cleared
	})

	t.Run("rejects overlapping slots with conflict", func(t *testing.T) {
		tests := []struct {
			name      string
			startTime string
			endTime   string
		}{
			{name: "identical", startTime: "15:00", endTime: "16:00"},
			{name: "overlapping the start", startTime: "14:30", endTime: "15:30"},
			{name: "overlapping the end", startTime: "15:30", endTime: "16:30"},
			{name: "contained", startTime: "15:15", endTime: "15:45"},
			{name: "containing", startTime: "14:00", endTime: "17:00"},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				f := newServiceFixture(t)

				f.fieldRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return([]model.Reservation{
						{ID: "existing", StartMinute: 900, EndMinute: 960},
					}, nil)

				req := validRequest()
				req.StartTime = tt.startTime
				req.EndTime = tt.endTime

				_, err := f.service.Create(context.Background(), req)

				assert.Error(t, err)
				assert.Equal(t, http.StatusConflict, failure.GetCode(err))
			})
		}
	})

	t.Run("admits the same slot on a different field or date", func(t *testing.T) {
		tests := []struct {
			name   string
			mutate func(req *dto.CreateReservationRequest)
		}{
			{name: "different field", mutate: func(req *dto.CreateReservationRequest) { req.FieldID = "field-2" }},
			{name: "different date", mutate: func(req *dto.CreateReservationRequest) { req.Date = "2026-09-02" }},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				f := newServiceFixture(t)

				// The existing reservation lives on field-1 / 2026-09-01; the
				// candidate targets a different field or day, so the repository
				// returns nothing for its (field, date) pair.
				f.fieldRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return([]model.Reservation{}, nil)
				f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)
				cleared := f.expectCacheCleared()

				req := validRequest()
				tt.mutate(&req)

				_, err := f.service.Create(context.Background(), req)

				assert.NoError(t, err)

				<-cleared
			})
		}
	})

	t.Run("rejects an interval that does not end after it starts", func(t *testing.T) {
		tests := []struct {
			name      string
			startTime string
			endTime   string
		}{
			{name: "end before start", startTime: "16:00", endTime: "15:00"},
			{name: "zero length", startTime: "15:00", endTime: "15:00"},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				f := newServiceFixture(t)

				req := validRequest()
				req.StartTime = tt.startTime
				req.EndTime = tt.endTime

				_, err := f.service.Create(context.Background(), req)

				assert.Error(t, err)
				assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
				assert.EqualError(t, err, "startTime must be before endTime")
			})
		}
	})

	t.Run("rejects malformed date and time values", func(t *testing.T) {
		tests := []struct {
			name   string
			mutate func(req *dto.CreateReservationRequest)
		}{
			{name: "bad date", mutate: func(req *dto.CreateReservationRequest) { req.Date = "01-09-2026" }},
			{name: "bad start time", mutate: func(req *dto.CreateReservationRequest) { req.StartTime = "3pm" }},
			{name: "bad end time", mutate: func(req *dto.CreateReservationRequest) { req.EndTime = "26:00" }},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				f := newServiceFixture(t)

				req := validRequest()
				tt.mutate(&req)

				_, err := f.service.Create(context.Background(), req)

				assert.Error(t, err)
				assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
			})
		}
	})

	t.Run("rejects an unknown field", func(t *testing.T) {
		f := newServiceFixture(t)

		f.fieldRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

		_, err := f.service.Create(context.Background(), validRequest())

		assert.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("maps a unique violation on insert to conflict", func(t *testing.T) {
		f := newServiceFixture(t)

		f.fieldRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]model.Reservation{}, nil)
		f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).
			Return(fmt.Errorf("failed to insert data (reservation): %w", &pq.Error{Code: "23505"}))

		_, err := f.service.Create(context.Background(), validRequest())

		assert.Error(t, err)
		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})

	t.Run("propagates repository errors", func(t *testing.T) {
		f := newServiceFixture(t)

		f.fieldRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, errors.New("connection refused"))

		_, err := f.service.Create(context.Background(), validRequest())

		assert.Error(t, err)
		assert.Equal(t, http.StatusInternalServerError, failure.GetCode(err))
	})

	t.Run("publishes the created event when kafka is enabled", func(t *testing.T) {
		f := newServiceFixture(t)
		f.cfg.Kafka.Enable = true
		f.cfg.Kafka.Topics.ReservationCreated = "reservation.created"

		f.fieldRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]model.Reservation{}, nil)
		f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)
		f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil)

		published := make(chan kafka.Message, 1)
		f.kafka.EXPECT().SendMessages(gomock.Any(), "reservation.created", gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, messages ...kafka.Message) error {
				published <- messages[0]

				return nil
			})

		res, err := f.service.Create(context.Background(), validRequest())

		assert.NoError(t, err)

		msg := <-published
		assert.Equal(t, res.ID, msg.Key)

		event, ok := msg.Value.(dto.ReservationCreatedEvent)
		assert.True(t, ok)
		assert.Equal(t, "field-1", event.FieldID)
		assert.Equal(t, "15:00", event.StartTime)
	})

	t.Run("admits exactly one of many concurrent requests for the same slot", func(t *testing.T) {
		const writers = 16

		f := newServiceFixture(t)

		var (
			mu    sync.Mutex
			saved []model.Reservation
		)

		f.fieldRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil).AnyTimes()
		f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ gDto.QueryParams, _ gDto.FilterGroup, _ ...string) ([]model.Reservation, error) {
				mu.Lock()
				defer mu.Unlock()

				snapshot := make([]model.Reservation, len(saved))
				copy(snapshot, saved)

				return snapshot, nil
			}).AnyTimes()
		f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, reservation model.Reservation) error {
				mu.Lock()
				defer mu.Unlock()

				saved = append(saved, reservation)

				return nil
			}).AnyTimes()

		cleared := f.expectCacheCleared()

		var (
			wg        sync.WaitGroup
			admitted  = make(chan dto.ReservationResponse, writers)
			conflicts = make(chan error, writers)
		)

		for i := range writers {
			wg.Add(1)

			go func(writer int) {
				defer wg.Done()

				req := validRequest()
				req.UserID = fmt.Sprintf("user-%d", writer)

				res, err := f.service.Create(context.Background(), req)
				if err != nil {
					conflicts <- err

					return
				}

				admitted <- res
			}(i)
		}

		wg.Wait()
		close(admitted)
		close(conflicts)

		assert.Len(t, admitted, 1)
		assert.Len(t, conflicts, writers-1)

		for err := range conflicts {
			assert.Equal(t, http.StatusConflict, failure.GetCode(err))
		}

		mu.Lock()
		assert.Len(t, saved, 1)
		mu.Unlock()

		<-cleared
	})
}

func TestGetAll(t *testing.T) {
	t.Run("returns slots ordered by start time without user identities", func(t *testing.T) {
		f := newServiceFixture(t)

		f.cache.EXPECT().Get(gomock.Any(), "reservation:gets:field-1:2026-09-01", gomock.Any()).Return(cache.Nil)
		f.repo.EXPECT().GetAll(gomock.Any(), gDto.QueryParams{SortBy: model.FieldStartMinute, SortDir: gDto.SortDirAsc}, gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]model.Reservation{
				{ID: "r1", StartMinute: 540, EndMinute: 600, UserID: "user-1"},
				{ID: "r2", StartMinute: 900, EndMinute: 960, UserID: "user-2"},
			}, nil)

		cached := make(chan struct{})
		f.cache.EXPECT().Save(gomock.Any(), "reservation:gets:field-1:2026-09-01", gomock.Any(), 60).
			DoAndReturn(func(_ context.Context, _ string, _ any, _ int) error {
				close(cached)

				return nil
			})

		res, err := f.service.GetAll(context.Background(), "field-1", "2026-09-01")

		assert.NoError(t, err)
		assert.Equal(t, dto.GetReservationsResponse{
			{ID: "r1", StartTime: "09:00", EndTime: "10:00"},
			{ID: "r2", StartTime: "15:00", EndTime: "16:00"},
		}, res)

		<-cached
	})

	t.Run("returns an empty list for a day with no bookings", func(t *testing.T) {
		f := newServiceFixture(t)

		f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(cache.Nil)
		f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]model.Reservation{}, nil)

		cached := make(chan struct{})
		f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, _ any, _ int) error {
				close(cached)

				return nil
			})

		res, err := f.service.GetAll(context.Background(), "field-1", "2026-09-01")

		assert.NoError(t, err)
		assert.Empty(t, res)
		assert.NotNil(t, res)

		<-cached
	})

	t.Run("serves from cache on a hit", func(t *testing.T) {
		f := newServiceFixture(t)

		f.cache.EXPECT().Get(gomock.Any(), "reservation:gets:field-1:2026-09-01", gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, value any) error {
				res, _ := value.(*dto.GetReservationsResponse)
				*res = dto.GetReservationsResponse{{ID: "r1", StartTime: "09:00", EndTime: "10:00"}}

				return nil
			})

		res, err := f.service.GetAll(context.Background(), "field-1", "2026-09-01")

		assert.NoError(t, err)
		assert.Len(t, res, 1)
		assert.Equal(t, "r1", res[0].ID)
	})

	t.Run("rejects a malformed date", func(t *testing.T) {
		f := newServiceFixture(t)

		_, err := f.service.GetAll(context.Background(), "field-1", "September 1st")

		assert.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})
}
