package rates

import (
	"context"
	"errors"

	"github.com/pharosnegocios/imobcalc/internal/domain"
	"github.com/sirupsen/logrus"
)

// ErrUnavailable is returned when no reference rate could be retrieved.
var ErrUnavailable = errors.New("reference rates unavailable")

// Provider supplies current reference rates.
type Provider interface {
	Rates(ctx context.Context) (domain.ReferenceRates, error)
}

// StaticProvider always returns the same rates.
type StaticProvider struct {
	Values domain.ReferenceRates
}

// Rates implements Provider.
func (s StaticProvider) Rates(context.Context) (domain.ReferenceRates, error) {
	return s.Values, nil
}

// FallbackProvider wraps a Provider and never fails: when the wrapped
// provider errors it substitutes the documented defaults.
type FallbackProvider struct {
	next   Provider
	logger logrus.FieldLogger
}

// NewFallbackProvider wraps next. A nil logger discards output.
func NewFallbackProvider(next Provider, logger logrus.FieldLogger) *FallbackProvider {
	return &FallbackProvider{next: next, logger: orDiscard(logger)}
}

// Rates implements Provider. The returned error is always nil.
func (f *FallbackProvider) Rates(ctx context.Context) (domain.ReferenceRates, error) {
	if f.next == nil {
		return domain.DefaultReferenceRates(), nil
	}
	r, err := f.next.Rates(ctx)
	if err == nil {
		return r, nil
	}

	f.logger.WithError(err).Warn("Using default reference rates")
	defaults := domain.DefaultReferenceRates()
	defaults.Failed = r.Failed
	if len(defaults.Failed) == 0 {
		defaults.Failed = SeriesNames()
	}
	return defaults, nil
}
