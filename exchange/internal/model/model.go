package model

import (
	"time"

	"github.com/google/uuid"
)

type Paging struct {
	Page          int `json:"page"`
	PageSize      int `json:"pageSize"`
	TotalElements int `json:"totalElements"`
}

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Normalize applies the default page size and clamps out-of-range values.
func (p Paging) Normalize() Paging {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = DefaultPageSize
	}
	if p.PageSize > MaxPageSize {
		p.PageSize = MaxPageSize
	}
	return p
}

func (p Paging) Offset() int {
	return (p.Page - 1) * p.PageSize
}

const (
	RoleUser      = "user"
	RoleModerator = "moderator"
	RoleAdmin     = "admin"
)

type User struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Points       int       `json:"points" db:"points"`
	Role         string    `json:"role" db:"role"`
	WarningCount int       `json:"warningCount" db:"warning_count"`
	Suspended    bool      `json:"suspended" db:"suspended"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}

type Condition string

const (
	ConditionExcellent Condition = "excellent"
	ConditionGood      Condition = "good"
	ConditionFair      Condition = "fair"
	ConditionPoor      Condition = "poor"
)

type Book struct {
	ID          uuid.UUID `json:"id" db:"id"`
	OwnerID     uuid.UUID `json:"ownerId" db:"owner_id"`
	Title       string    `json:"title" db:"title"`
	Author      string    `json:"author" db:"author"`
	Condition   Condition `json:"condition" db:"condition"`
	BasePoints  int       `json:"basePoints" db:"base_points"`
	IsAvailable bool      `json:"isAvailable" db:"is_available"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}

type EntryKind string

const (
	EntryLock     EntryKind = "lock"
	EntryRelease  EntryKind = "release"
	EntryTransfer EntryKind = "transfer"
	EntryAdjust   EntryKind = "adjust"
	EntryPenalty  EntryKind = "penalty"
	EntryPurchase EntryKind = "purchase"
)

// LedgerEntry is the audit record written for every change of a user balance.
type LedgerEntry struct {
	ID           int64      `json:"id" db:"id"`
	UserID       uuid.UUID  `json:"userId" db:"user_id"`
	Delta        int        `json:"delta" db:"delta"`
	BalanceAfter int        `json:"balanceAfter" db:"balance_after"`
	Kind         EntryKind  `json:"kind" db:"kind"`
	ExchangeID   *uuid.UUID `json:"exchangeId,omitempty" db:"exchange_id"`
	ReportID     *uuid.UUID `json:"reportId,omitempty" db:"report_id"`
	PaymentID    *string    `json:"paymentId,omitempty" db:"payment_id"`
	CreatedAt    time.Time  `json:"createdAt" db:"created_at"`
}

type PointsSummary struct {
	UserID  uuid.UUID `json:"userId"`
	Points  int       `json:"points"`
	Paging  `json:",inline"`
	Entries []LedgerEntry `json:"entries"`
}

// PaymentSettled arrives from the payments relay once a purchase of points is captured.
type PaymentSettled struct {
	PaymentID string    `json:"paymentId" validate:"required"`
	UserID    uuid.UUID `json:"userId" validate:"required"`
	Points    int       `json:"points" validate:"gt=0"`
}
