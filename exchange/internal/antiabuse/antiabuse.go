// Package antiabuse computes read-only risk signals over exchange history.
// Callers decide what to do with them; nothing here blocks or mutates.
package antiabuse

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/Astemirdum/book-exchange/exchange/internal/model"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	day = 24 * time.Hour

	pairWindow     = 30 * day
	pairSuspicious = 5
	pairCritical   = 10

	bookWindow     = 7 * day
	bookSuspicious = 3
	bookCritical   = 5

	farmWindow         = 30 * day
	farmVolume         = 15
	farmPartners       = 3
	farmPoints         = 3000
	farmCriticalPoints = 5000
	farmCriticalVolume = 25

	LowTrustThreshold = 30
	RestrictTrust     = 20
)

type Source interface {
	CountCompletedBetween(ctx context.Context, a, b uuid.UUID, since time.Time) (int, error)
	CountCompletedForBook(ctx context.Context, bookID uuid.UUID, since time.Time) (int, error)
	UserActivity(ctx context.Context, userID uuid.UUID, since time.Time) (model.Activity, error)
	TrustInputs(ctx context.Context, userID uuid.UUID) (model.TrustInputs, error)
}

type Detector struct {
	src Source
	now func() time.Time
	log *zap.Logger
}

func New(src Source, now func() time.Time, log *zap.Logger) *Detector {
	if now == nil {
		now = time.Now
	}
	return &Detector{src: src, now: now, log: log.Named("antiabuse")}
}

// DetectRepeatedExchanges looks for a pair of users trading with each other unusually often.
func (d *Detector) DetectRepeatedExchanges(ctx context.Context, a, b uuid.UUID) (model.Detection, error) {
	n, err := d.src.CountCompletedBetween(ctx, a, b, d.now().Add(-pairWindow))
	if err != nil {
		return model.Detection{}, errors.Wrap(err, "count exchanges between users")
	}
	det := model.Detection{Flag: model.FlagRepeatedExchanges, Count: n}
	if n >= pairSuspicious {
		det.IsSuspicious = true
		det.Severity = model.SeverityHigh
		if n >= pairCritical {
			det.Severity = model.SeverityCritical
		}
		det.Reasons = []string{fmt.Sprintf("%d completed exchanges between the same users in 30 days", n)}
	}
	return det, nil
}

// DetectRapidTransfers looks for one book changing hands too fast.
func (d *Detector) DetectRapidTransfers(ctx context.Context, bookID uuid.UUID) (model.Detection, error) {
	n, err := d.src.CountCompletedForBook(ctx, bookID, d.now().Add(-bookWindow))
	if err != nil {
		return model.Detection{}, errors.Wrap(err, "count book exchanges")
	}
	det := model.Detection{Flag: model.FlagRapidTransfers, Count: n}
	if n >= bookSuspicious {
		det.IsSuspicious = true
		det.Severity = model.SeverityHigh
		if n >= bookCritical {
			det.Severity = model.SeverityCritical
		}
		det.Reasons = []string{fmt.Sprintf("book exchanged %d times in 7 days", n)}
	}
	return det, nil
}

// DetectPointFarming looks for a user cycling exchanges to accumulate points.
func (d *Detector) DetectPointFarming(ctx context.Context, userID uuid.UUID) (model.Detection, error) {
	a, err := d.src.UserActivity(ctx, userID, d.now().Add(-farmWindow))
	if err != nil {
		return model.Detection{}, errors.Wrap(err, "user activity")
	}
	det := model.Detection{Flag: model.FlagPointFarming, Count: a.Volume}
	if a.Volume >= farmVolume {
		det.Reasons = append(det.Reasons, fmt.Sprintf("%d exchanges in 30 days", a.Volume))
	}
	if a.RepeatedPartners >= farmPartners {
		det.Reasons = append(det.Reasons, fmt.Sprintf("%d repeated trading partners", a.RepeatedPartners))
	}
	if a.PointsEarned >= farmPoints {
		det.Reasons = append(det.Reasons, fmt.Sprintf("%d points earned as owner in 30 days", a.PointsEarned))
	}
	if len(det.Reasons) > 0 {
		det.IsSuspicious = true
		det.Severity = model.SeverityHigh
		if a.PointsEarned >= farmCriticalPoints || a.Volume >= farmCriticalVolume {
			det.Severity = model.SeverityCritical
		}
	}
	return det, nil
}

func (d *Detector) TrustScore(ctx context.Context, userID uuid.UUID) (int, error) {
	in, err := d.src.TrustInputs(ctx, userID)
	if err != nil {
		return 0, err
	}
	return Score(in, d.now()), nil
}

// Score is the trust formula: a neutral 50 raised by tenure, completed
// exchanges, ratings received and books listed, lowered by 20 per report
// under investigation or resolved, clamped to [0, 100].
func Score(in model.TrustInputs, now time.Time) int {
	score := 50.0
	ageDays := now.Sub(in.CreatedAt).Hours() / 24
	if ageDays > 0 {
		score += math.Min(ageDays/10, 15)
	}
	score += math.Min(float64(in.CompletedExchanges*2), 15)
	if in.AvgRating != nil {
		score += math.Min(*in.AvgRating/5*10, 10)
	}
	score -= float64(in.ReportsAgainst * 20)
	score += math.Min(float64(in.BooksListed*2), 10)

	return int(math.Max(0, math.Min(100, math.Round(score))))
}

type Subject struct {
	// UserID is checked for point farming and trust.
	UserID uuid.UUID
	// Partner, when set, is checked against UserID for repeated exchanges.
	Partner *uuid.UUID
	BookID  *uuid.UUID
}

// Assess runs every applicable detector concurrently.
func (d *Detector) Assess(ctx context.Context, s Subject) (model.Assessment, error) {
	g, gctx := errgroup.WithContext(ctx)

	var (
		pair, book, farming model.Detection
		trust               int
	)
	if s.Partner != nil {
		g.Go(func() (err error) {
			pair, err = d.DetectRepeatedExchanges(gctx, s.UserID, *s.Partner)
			return err
		})
	}
	if s.BookID != nil {
		g.Go(func() (err error) {
			book, err = d.DetectRapidTransfers(gctx, *s.BookID)
			return err
		})
	}
	g.Go(func() (err error) {
		farming, err = d.DetectPointFarming(gctx, s.UserID)
		return err
	})
	g.Go(func() (err error) {
		trust, err = d.TrustScore(gctx, s.UserID)
		return err
	})
	if err := g.Wait(); err != nil {
		return model.Assessment{}, err
	}

	var a model.Assessment
	for _, det := range []model.Detection{pair, book, farming} {
		if det.Flag == "" {
			continue
		}
		a.Detections = append(a.Detections, det)
		if det.IsSuspicious {
			a.Flags = append(a.Flags, det.Flag)
			a.Severity = model.MaxSeverity(a.Severity, det.Severity)
		}
	}
	if trust < LowTrustThreshold {
		a.Flags = append(a.Flags, model.FlagLowTrust)
		a.Severity = model.MaxSeverity(a.Severity, model.SeverityHigh)
	}
	sort.Strings(a.Flags)
	a.TrustScore = &trust
	a.ShouldRestrict = (farming.IsSuspicious && farming.Severity == model.SeverityCritical) || trust < RestrictTrust

	if len(a.Flags) > 0 {
		d.log.Info("suspicious activity",
			zap.Stringer("user_id", s.UserID),
			zap.Strings("flags", a.Flags),
			zap.String("severity", string(a.Severity)),
			zap.Int("trust", trust),
		)
	}
	return a, nil
}
