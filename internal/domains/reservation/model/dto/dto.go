package dto

import (
	"time"

	"github.com/google/uuid"

	"fieldbook/internal/domains/reservation/model"
	"fieldbook/shared/constant"
	"fieldbook/shared/failure"
	"fieldbook/shared/timezone"
)

type CreateReservationRequest struct {
	Date      string `json:"date"      validate:"required,datetime=2006-01-02"`
	StartTime string `json:"startTime" validate:"required,datetime=15:04"`
	EndTime   string `json:"endTime"   validate:"required,datetime=15:04"`
	FieldID   string `json:"fieldId"   validate:"required"`
	UserID    string `json:"userId"    validate:"required"`
}

// ToModel converts the wire representation to the stored one: the calendar day
// becomes a date in the application timezone and the "HH:MM" bounds become
// minutes since midnight. The end bound must lie strictly after the start.
func (r *CreateReservationRequest) ToModel() (model.Reservation, error) {
	date, err := timezone.Parse(constant.DateOnlyFormat, r.Date)
	if err != nil {
		return model.Reservation{}, failure.BadRequest(err)
	}

	startMinute, err := model.ParseTimeOfDay(r.StartTime)
	if err != nil {
		return model.Reservation{}, failure.BadRequest(err)
	}

	endMinute, err := model.ParseTimeOfDay(r.EndTime)
	if err != nil {
		return model.Reservation{}, failure.BadRequest(err)
	}

	if startMinute >= endMinute {
		return model.Reservation{}, failure.BadRequestFromString("startTime must be before endTime")
	}

	now := timezone.Now()

	reservation := model.Reservation{
		ID:          uuid.NewString(),
		FieldID:     r.FieldID,
		Date:        date,
		StartMinute: startMinute,
		EndMinute:   endMinute,
		UserID:      r.UserID,
	}
	reservation.CreatedAt = now
	reservation.CreatedBy = r.UserID
	reservation.ModifiedAt = now
	reservation.ModifiedBy = r.UserID

	return reservation, nil
}

type ReservationResponse struct {
	ID        string `json:"id"`
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	FieldID   string `json:"fieldId"`
	UserID    string `json:"userId"`
}

func (r *ReservationResponse) FromModel(mod model.Reservation) {
	r.ID = mod.ID
	r.Date = mod.Date.Format(constant.DateOnlyFormat)
	r.StartTime = model.FormatTimeOfDay(mod.StartMinute)
	r.EndTime = model.FormatTimeOfDay(mod.EndMinute)
	r.FieldID = mod.FieldID
	r.UserID = mod.UserID
}

// ReservationSlotResponse is the listing shape. It exposes only the occupied
// interval so callers can render availability without seeing who booked it.
type ReservationSlotResponse struct {
	ID        string `json:"id"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

func (r *ReservationSlotResponse) FromModel(mod model.Reservation) {
	r.ID = mod.ID
	r.StartTime = model.FormatTimeOfDay(mod.StartMinute)
	r.EndTime = model.FormatTimeOfDay(mod.EndMinute)
}

type GetReservationsResponse []ReservationSlotResponse

func (r *GetReservationsResponse) FromModels(models []model.Reservation) {
	*r = make(GetReservationsResponse, len(models))
	for i, mod := range models {
		(*r)[i].FromModel(mod)
	}
}

// ReservationCreatedEvent is the payload published after a slot is admitted.
type ReservationCreatedEvent struct {
	ID          string    `json:"id"`
	FieldID     string    `json:"fieldId"`
	Date        string    `json:"date"`
	StartTime   string    `json:"startTime"`
	EndTime     string    `json:"endTime"`
	UserID      string    `json:"userId"`
	PublishedAt time.Time `json:"publishedAt"`
}

func (e *ReservationCreatedEvent) FromModel(mod model.Reservation) {
	e.ID = mod.ID
	e.FieldID = mod.FieldID
	e.Date = mod.Date.Format(constant.DateOnlyFormat)
	e.StartTime = model.FormatTimeOfDay(mod.StartMinute)
	e.EndTime = model.FormatTimeOfDay(mod.EndMinute)
	e.UserID = mod.UserID
	e.PublishedAt = timezone.Now()
}
