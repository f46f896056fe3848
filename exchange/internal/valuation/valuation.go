// Package valuation prices a book in exchange points. The price is read once,
// when an exchange is created, and stored on it.
package valuation

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/Astemirdum/book-exchange/exchange/internal/model"
	"github.com/Astemirdum/book-exchange/pkg/circuit_breaker"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type Valuer interface {
	Value(ctx context.Context, book model.Book) (int, error)
}

var conditionMultiplier = map[model.Condition]float64{
	model.ConditionExcellent: 1.2,
	model.ConditionGood:      1.0,
	model.ConditionFair:      0.8,
	model.ConditionPoor:      0.5,
}

// ConditionValuer prices a book locally from its base points and condition.
type ConditionValuer struct{}

func (ConditionValuer) Value(_ context.Context, book model.Book) (int, error) {
	m, ok := conditionMultiplier[book.Condition]
	if !ok {
		m = 1
	}
	points := int(math.Round(float64(book.BasePoints) * m))
	if points < 1 {
		points = 1
	}
	return points, nil
}

var ErrBadValuation = errors.New("valuation service returned no price")

// HTTPValuer asks the pricing service and falls back to a local valuer when
// the service fails or its breaker is open.
type HTTPValuer struct {
	client   *http.Client
	endpoint string
	cb       circuit_breaker.CircuitBreaker
	fallback Valuer
	log      *zap.Logger
}

func NewHTTPValuer(baseURL string, timeout time.Duration, fallback Valuer, log *zap.Logger) *HTTPValuer {
	return &HTTPValuer{
		client:   &http.Client{Timeout: timeout},
		endpoint: strings.TrimRight(baseURL, "/") + "/api/v1/books/%s/value",
		cb:       circuit_breaker.New(100, 10*time.Second, 0.2, 2),
		fallback: fallback,
		log:      log.Named("valuation"),
	}
}

func (v *HTTPValuer) CB() circuit_breaker.CircuitBreaker {
	return v.cb
}

type valueResponse struct {
	Points int `json:"points"`
}

func (v *HTTPValuer) Value(ctx context.Context, book model.Book) (int, error) {
	var points int
	err := v.cb.Call(func() error {
		p, err := v.fetch(ctx, book)
		points = p
		return err
	})
	if err == nil {
		return points, nil
	}
	if v.fallback == nil {
		return 0, errors.Wrap(err, "valuation")
	}
	v.log.Warn("valuation service unavailable, using fallback",
		zap.Stringer("book_id", book.ID), zap.Error(err))
	return v.fallback.Value(ctx, book)
}

func (v *HTTPValuer) fetch(ctx context.Context, book model.Book) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf(v.endpoint, book.ID), http.NoBody)
	if err != nil {
		return 0, err
	}
	resp, err := v.client.Do(req)
	if err != nil {
		return 0, errors.Wrap(err, "valuation unavailable")
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return 0, errors.Errorf("valuation status %d", resp.StatusCode)
	}
	var body valueResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return 0, errors.Wrap(err, "decode valuation")
	}
	if body.Points <= 0 {
		return 0, ErrBadValuation
	}
	return body.Points, nil
}
