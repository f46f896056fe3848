package model

import (
	"time"

	"github.com/google/uuid"
)

type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

func (s Severity) Rank() int {
	switch s {
	case SeverityLow:
		return 1
	case SeverityMedium:
		return 2
	case SeverityHigh:
		return 3
	case SeverityCritical:
		return 4
	}
	return 0
}

func MaxSeverity(a, b Severity) Severity {
	if b.Rank() > a.Rank() {
		return b
	}
	return a
}

const (
	FlagRepeatedExchanges = "repeated_exchanges"
	FlagRapidTransfers    = "rapid_transfers"
	FlagPointFarming      = "point_farming"
	FlagLowTrust          = "low_trust"
)

type Detection struct {
	Flag         string   `json:"flag"`
	IsSuspicious bool     `json:"isSuspicious"`
	Severity     Severity `json:"severity,omitempty"`
	Count        int      `json:"count"`
	Reasons      []string `json:"reasons,omitempty"`
}

// Activity aggregates a user's exchanges over a trailing window.
type Activity struct {
	Volume           int `db:"volume"`
	RepeatedPartners int `db:"repeated_partners"`
	PointsEarned     int `db:"points_earned"`
}

// TrustInputs are the raw facts the trust score is computed from.
type TrustInputs struct {
	CreatedAt          time.Time `db:"created_at"`
	CompletedExchanges int       `db:"completed_exchanges"`
	AvgRating          *float64  `db:"avg_rating"`
	ReportsAgainst     int       `db:"reports_against"`
	BooksListed        int       `db:"books_listed"`
}

type TrustScore struct {
	UserID uuid.UUID `json:"userId"`
	Score  int       `json:"score"`
}

type Assessment struct {
	Detections     []Detection `json:"detections"`
	Flags          []string    `json:"flags"`
	Severity       Severity    `json:"severity,omitempty"`
	TrustScore     *int        `json:"trustScore,omitempty"`
	ShouldRestrict bool        `json:"shouldRestrict"`
}
