package model

import (
	"time"

	"github.com/google/uuid"
)

type ReportType string

const (
	ReportFraud                ReportType = "fraud"
	ReportConditionMismatch    ReportType = "condition_mismatch"
	ReportNoShow               ReportType = "no_show"
	ReportHarassment           ReportType = "harassment"
	ReportSpam                 ReportType = "spam"
	ReportInappropriateContent ReportType = "inappropriate_content"
	ReportOther                ReportType = "other"
)

type ReportStatus string

const (
	ReportPending       ReportStatus = "pending"
	ReportInvestigating ReportStatus = "investigating"
	ReportResolved      ReportStatus = "resolved"
)

type Resolution string

const (
	ResolutionDismissed        Resolution = "dismissed"
	ResolutionWarning          Resolution = "warning"
	ResolutionPointsAdjusted   Resolution = "points_adjusted"
	ResolutionExchangeReversed Resolution = "exchange_reversed"
	ResolutionUserSuspended    Resolution = "user_suspended"
	ResolutionOther            Resolution = "other"
)

type Report struct {
	ID                uuid.UUID    `json:"id" db:"id"`
	Type              ReportType   `json:"type" db:"type"`
	Status            ReportStatus `json:"status" db:"status"`
	Priority          Severity     `json:"priority" db:"priority"`
	ReporterID        uuid.UUID    `json:"reporterId" db:"reporter_id"`
	ReportedUserID    *uuid.UUID   `json:"reportedUserId,omitempty" db:"reported_user_id"`
	ExchangeID        *uuid.UUID   `json:"exchangeId,omitempty" db:"exchange_id"`
	BookID            *uuid.UUID   `json:"bookId,omitempty" db:"book_id"`
	Reason            string       `json:"reason" db:"reason"`
	Description       *string      `json:"description,omitempty" db:"description"`
	Evidence          []string     `json:"evidence" db:"evidence"`
	ExpectedCondition *string      `json:"expectedCondition,omitempty" db:"expected_condition"`
	ActualCondition   *string      `json:"actualCondition,omitempty" db:"actual_condition"`
	ConditionPhotos   []string     `json:"conditionPhotos" db:"condition_photos"`
	AutoFlags         []string     `json:"autoFlags" db:"auto_flags"`
	Resolution        *Resolution  `json:"resolution,omitempty" db:"resolution"`
	ResolutionNotes   *string      `json:"resolutionNotes,omitempty" db:"resolution_notes"`
	ResolvedBy        *uuid.UUID   `json:"resolvedBy,omitempty" db:"resolved_by"`
	ResolvedAt        *time.Time   `json:"resolvedAt,omitempty" db:"resolved_at"`
	PointsAdjusted    int          `json:"pointsAdjusted" db:"points_adjusted"`
	ExchangeReversed  bool         `json:"exchangeReversed" db:"exchange_reversed"`
	UserWarned        bool         `json:"userWarned" db:"user_warned"`
	UserSuspended     bool         `json:"userSuspended" db:"user_suspended"`
	CreatedAt         time.Time    `json:"createdAt" db:"created_at"`
	UpdatedAt         time.Time    `json:"updatedAt" db:"updated_at"`
}

func (r Report) Open() bool {
	return r.Status != ReportResolved
}

type CreateReportRequest struct {
	Type              ReportType `json:"type" validate:"required,oneof=fraud condition_mismatch no_show harassment spam inappropriate_content other"`
	ExchangeID        *uuid.UUID `json:"exchangeId"`
	BookID            *uuid.UUID `json:"bookId"`
	ReportedUserID    *uuid.UUID `json:"reportedUserId"`
	Reason            string     `json:"reason" validate:"required,min=3,max=500"`
	Description       *string    `json:"description" validate:"omitempty,max=5000"`
	Evidence          []string   `json:"evidence" validate:"omitempty,max=10,dive,url"`
	ExpectedCondition *string    `json:"expectedCondition" validate:"omitempty,oneof=excellent good fair poor"`
	ActualCondition   *string    `json:"actualCondition" validate:"omitempty,oneof=excellent good fair poor"`
	ConditionPhotos   []string   `json:"conditionPhotos" validate:"omitempty,max=10,dive,url"`
}

type ResolveReportRequest struct {
	Resolution       Resolution `json:"resolution" validate:"required,oneof=dismissed warning points_adjusted exchange_reversed user_suspended other"`
	ResolutionNotes  *string    `json:"resolutionNotes" validate:"omitempty,max=5000"`
	PointsAdjusted   int        `json:"pointsAdjusted" validate:"gte=0"`
	ExchangeReversed bool       `json:"exchangeReversed"`
	UserWarned       bool       `json:"userWarned"`
	UserSuspended    bool       `json:"userSuspended"`
}

type UpdateReportStatusRequest struct {
	Status ReportStatus `json:"status" validate:"required,oneof=investigating"`
}

type ReportFilter struct {
	Status   ReportStatus `query:"status" validate:"omitempty,oneof=pending investigating resolved"`
	Priority Severity     `query:"priority" validate:"omitempty,oneof=low medium high critical"`
	Page     int          `query:"page" validate:"gte=0"`
	Limit    int          `query:"limit" validate:"gte=0,lte=100"`

	// ReporterID restricts the list to one reporter; set for non-moderators.
	ReporterID *uuid.UUID `query:"-"`
}

type ListReports struct {
	Paging `json:",inline"`
	Items  []Report `json:"items"`
}

// ResolveAction is one line of the actions log returned by a resolution.
type ResolveAction struct {
	Action     string     `json:"action"`
	UserID     *uuid.UUID `json:"userId,omitempty"`
	ExchangeID *uuid.UUID `json:"exchangeId,omitempty"`
	Points     int        `json:"points,omitempty"`
}

type ResolveResponse struct {
	Report  Report          `json:"report"`
	Actions []ResolveAction `json:"actions"`
}
