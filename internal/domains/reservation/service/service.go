package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"fieldbook/config"
	"fieldbook/infras/kafka"
	"fieldbook/infras/otel"
	fieldModel "fieldbook/internal/domains/field/model"
	fieldRepository "fieldbook/internal/domains/field/repository"
	"fieldbook/internal/domains/reservation/model"
	"fieldbook/internal/domains/reservation/model/dto"
	"fieldbook/internal/domains/reservation/repository"
	"fieldbook/shared"
	"fieldbook/shared/cache"
	"fieldbook/shared/constant"
	gDto "fieldbook/shared/dto"
	"fieldbook/shared/failure"
	"fieldbook/shared/timezone"
)

const (
	cacheGetAllReservation = "reservation:gets"

	msgFieldNotFound   = "field does not exist"
	msgSlotUnavailable = "slot already reserved"
)

type Reservation interface {
	Create(ctx context.Context, req dto.CreateReservationRequest) (dto.ReservationResponse, error)
	GetAll(ctx context.Context, fieldID, date string) (dto.GetReservationsResponse, error)
}

type serviceImpl struct {
	repo      repository.Reservation
	fieldRepo fieldRepository.Field
	cfg       *config.Config
	cache     cache.RedisCache
	otel      otel.Otel
	kafka     kafka.Client
	locks     *slotLock
}

func New(
	repo repository.Reservation,
	fieldRepo fieldRepository.Field,
	cfg *config.Config,
	redisCache cache.RedisCache,
	otl otel.Otel,
	kafkaClient kafka.Client,
) Reservation {
	return &serviceImpl{
		repo:      repo,
		fieldRepo: fieldRepo,
		cfg:       cfg,
		cache:     redisCache,
		otel:      otl,
		kafka:     kafkaClient,
		locks:     newSlotLock(),
	}
}

// Create admits a slot if and only if it overlaps no existing reservation on
// the same field and day. Admission is serialized per (field, date) so the
// conflict check and the insert run atomically with respect to other callers;
// the unique constraint on (field_id, date, start_minute) backs this up when
// multiple service instances share one database.
func (s *serviceImpl) Create(ctx context.Context, req dto.CreateReservationRequest) (res dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	reservation, err := req.ToModel()
	if err != nil {
		return res, err
	}

	exist, err := s.fieldRepo.Exist(ctx, shared.FilterByID(reservation.FieldID, fieldModel.FieldID, fieldModel.TableName))
	if err != nil {
		log.Error().Err(err).Str("fieldId", reservation.FieldID).Msg("failed to check field existence")

		return res, fmt.Errorf("failed to check field existence: %w", err)
	}

	if !exist {
		return res, failure.BadRequestFromString(msgFieldNotFound)
	}

	mutex := s.locks.Lock(reservation.FieldID, reservation.Date)
	defer mutex.Unlock()

	existing, err := s.repo.GetAll(ctx, gDto.QueryParams{
		SortBy:  model.FieldStartMinute,
		SortDir: gDto.SortDirAsc,
	}, filterByFieldAndDate(reservation.FieldID, reservation.Date),
		model.FieldID, model.FieldStartMinute, model.FieldEndMinute)
	if err != nil {
		log.Error().Err(err).Msg("failed to get existing reservations")

		return res, fmt.Errorf("failed to get existing reservations: %w", err)
	}

	for _, other := range existing {
		if other.ConflictsWith(reservation.StartMinute, reservation.EndMinute) {
			return res, failure.Conflict(msgSlotUnavailable)
		}
	}

	err = s.repo.Insert(ctx, reservation)
	if err != nil {
		if repository.IsUniqueViolation(err) {
			return res, failure.Conflict(msgSlotUnavailable)
		}

		log.Error().Err(err).Msg("failed to insert reservation")

		return res, fmt.Errorf("failed to insert reservation: %w", err)
	}

	res.FromModel(reservation)

	go s.afterCreate(context.WithoutCancel(ctx), reservation)

	return res, nil
}

// GetAll returns the occupied slots for one field on one day, ordered by start
// time. Responses are cached per (field, date) and invalidated on admission.
func (s *serviceImpl) GetAll(ctx context.Context, fieldID, date string) (res dto.GetReservationsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	day, err := timezone.Parse(constant.DateOnlyFormat, date)
	if err != nil {
		return res, failure.BadRequest(err)
	}

	cacheKey := shared.BuildCacheKey(cacheGetAllReservation, fieldID, day.Format(constant.DateOnlyFormat))

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for reservations")

		return res, nil
	}

	models, err := s.repo.GetAll(ctx, gDto.QueryParams{
		SortBy:  model.FieldStartMinute,
		SortDir: gDto.SortDirAsc,
	}, filterByFieldAndDate(fieldID, day),
		model.FieldID, model.FieldStartMinute, model.FieldEndMinute)
	if err != nil {
		log.Error().Err(err).Msg("failed to get reservations")

		return res, fmt.Errorf("failed to get reservations: %w", err)
	}

	res.FromModels(models)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save reservations to cache")
		}
	}()

	return res, nil
}

// afterCreate runs the post-admission side effects off the request path:
// dropping the stale listing cache and publishing the created event.
func (s *serviceImpl) afterCreate(ctx context.Context, reservation model.Reservation) {
	cacheKey := shared.BuildCacheKey(cacheGetAllReservation, reservation.FieldID, reservation.Date.Format(constant.DateOnlyFormat))
	shared.InvalidateCaches(ctx, s.cache, cacheKey)

	if !s.cfg.Kafka.Enable {
		return
	}

	var event dto.ReservationCreatedEvent
	event.FromModel(reservation)

	err := s.kafka.SendMessages(ctx, s.cfg.Kafka.Topics.ReservationCreated, kafka.Message{
		Key:   reservation.ID,
		Value: event,
	})
	if err != nil {
		log.Error().Err(err).Str("reservationId", reservation.ID).Msg("failed to publish reservation created event")
	}
}

func filterByFieldAndDate(fieldID string, date time.Time) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldFieldID,
				Value:    fieldID,
				Operator: gDto.FilterOperatorEq,
			},
			gDto.Filter{
				Field:    model.FieldDate,
				Value:    date,
				Operator: gDto.FilterOperatorEq,
			},
		},
	}
}
