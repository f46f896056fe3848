package model

import (
	"time"

	"github.com/google/uuid"
)

type ExchangeStatus string

const (
	StatusPending   ExchangeStatus = "pending"
	StatusAccepted  ExchangeStatus = "accepted"
	StatusCompleted ExchangeStatus = "completed"
	StatusDeclined  ExchangeStatus = "declined"
	StatusCancelled ExchangeStatus = "cancelled"
)

func (s ExchangeStatus) Active() bool {
	return s == StatusPending || s == StatusAccepted
}

const ConfirmationWindow = 7 * 24 * time.Hour

const (
	CancelReasonDeadlineExpired = "deadline_expired"
	CancelReasonBookExchanged   = "book_exchanged"
	CancelReasonWithdrawn       = "withdrawn"
	CancelReasonReversed        = "reversed_by_report"
	CancelReasonOwnerChanged    = "owner_changed"
)

const (
	UserRoleRequester = "requester"
	UserRoleOwner     = "owner"
)

type Exchange struct {
	ID                   uuid.UUID      `json:"id" db:"id"`
	BookID               uuid.UUID      `json:"bookId" db:"book_id"`
	RequesterID          uuid.UUID      `json:"requesterId" db:"requester_id"`
	OwnerID              uuid.UUID      `json:"ownerId" db:"owner_id"`
	PointsOffered        int            `json:"pointsOffered" db:"points_offered"`
	PointsLocked         bool           `json:"pointsLocked" db:"points_locked"`
	Status               ExchangeStatus `json:"status" db:"status"`
	Message              *string        `json:"message,omitempty" db:"message"`
	MeetingAddress       *string        `json:"meetingAddress,omitempty" db:"meeting_address"`
	MeetingLat           *float64       `json:"meetingLat,omitempty" db:"meeting_lat"`
	MeetingLng           *float64       `json:"meetingLng,omitempty" db:"meeting_lng"`
	ScheduledAt          *time.Time     `json:"scheduledAt,omitempty" db:"scheduled_at"`
	AcceptedAt           *time.Time     `json:"acceptedAt,omitempty" db:"accepted_at"`
	ConfirmationDeadline *time.Time     `json:"confirmationDeadline,omitempty" db:"confirmation_deadline"`
	CompletedAt          *time.Time     `json:"completedAt,omitempty" db:"completed_at"`
	DeclinedReason       *string        `json:"declinedReason,omitempty" db:"declined_reason"`
	CancelledAt          *time.Time     `json:"cancelledAt,omitempty" db:"cancelled_at"`
	CancelReason         *string        `json:"cancelReason,omitempty" db:"cancel_reason"`
	BookConditionRating  *int           `json:"bookConditionRating,omitempty" db:"book_condition_rating"`
	CreatedAt            time.Time      `json:"createdAt" db:"created_at"`
	UpdatedAt            time.Time      `json:"updatedAt" db:"updated_at"`

	UserRole string `json:"userRole,omitempty" db:"-"`
}

// RoleOf reports which side of the exchange userID is on, or "" for outsiders.
func (e Exchange) RoleOf(userID uuid.UUID) string {
	switch userID {
	case e.RequesterID:
		return UserRoleRequester
	case e.OwnerID:
		return UserRoleOwner
	}
	return ""
}

type CreateExchangeRequest struct {
	BookID         uuid.UUID  `json:"bookId" validate:"required"`
	Message        *string    `json:"message" validate:"omitempty,max=1000"`
	MeetingAddress *string    `json:"meetingAddress" validate:"omitempty,max=500"`
	MeetingLat     *float64   `json:"meetingLat" validate:"omitempty,latitude"`
	MeetingLng     *float64   `json:"meetingLng" validate:"omitempty,longitude"`
	ScheduledAt    *time.Time `json:"scheduledAt"`
}

type DeclineRequest struct {
	Reason *string `json:"reason" validate:"omitempty,max=500"`
}

type CancelRequest struct {
	Reason *string `json:"reason" validate:"omitempty,max=500"`
}

type ConfirmRequest struct {
	BookConditionRating *int `json:"bookConditionRating"`
}

type ExchangeFilter struct {
	Role   string         `query:"role" validate:"omitempty,oneof=requester owner"`
	Status ExchangeStatus `query:"status" validate:"omitempty,oneof=pending accepted completed declined cancelled"`
	Page   int            `query:"page" validate:"gte=0"`
	Limit  int            `query:"limit" validate:"gte=0,lte=100"`
}

type ListExchanges struct {
	Paging `json:",inline"`
	Items  []Exchange `json:"items"`
}

type CreateExchangeResponse struct {
	Exchange     Exchange `json:"exchange"`
	PointsLocked int      `json:"pointsLocked"`
	Balance      int      `json:"balance"`
	Flags        []string `json:"flags,omitempty"`
}

type EventType string

const (
	EventCreated   EventType = "exchange.created"
	EventAccepted  EventType = "exchange.accepted"
	EventDeclined  EventType = "exchange.declined"
	EventCompleted EventType = "exchange.completed"
	EventCancelled EventType = "exchange.cancelled"
	EventReversed  EventType = "exchange.reversed"
)

type ExchangeEvent struct {
	Type        EventType `json:"type"`
	ExchangeID  uuid.UUID `json:"exchangeId"`
	BookID      uuid.UUID `json:"bookId"`
	RequesterID uuid.UUID `json:"requesterId"`
	OwnerID     uuid.UUID `json:"ownerId"`
	Points      int       `json:"points"`
	Timestamp   time.Time `json:"timestamp"`
}

func NewExchangeEvent(t EventType, e Exchange, at time.Time) ExchangeEvent {
	return ExchangeEvent{
		Type:        t,
		ExchangeID:  e.ID,
		BookID:      e.BookID,
		RequesterID: e.RequesterID,
		OwnerID:     e.OwnerID,
		Points:      e.PointsOffered,
		Timestamp:   at,
	}
}

type DeclineResponse struct {
	Exchange       Exchange `json:"exchange"`
	PointsReturned int      `json:"pointsReturned"`
}

type ConfirmResponse struct {
	Exchange  Exchange    `json:"exchange"`
	Cancelled []uuid.UUID `json:"cancelledExchanges"`
}
