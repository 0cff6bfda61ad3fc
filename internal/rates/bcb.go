package rates

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/pharosnegocios/imobcalc/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// DefaultBaseURL is the Central Bank time-series (SGS) endpoint.
const DefaultBaseURL = "https://api.bcb.gov.br/dados/serie"

// Series is a single SGS time series and how it reduces to an annual rate.
type Series struct {
	Name    string
	Code    int
	Window  int  // number of most recent observations requested
	Sum     bool // sum the window instead of taking the last value
	Default decimal.Decimal
}

// The series behind each reference rate.
var (
	PolicyRateSeries = Series{Name: "selic", Code: 432, Window: 1, Default: domain.DefaultPolicyRate}
	// Monthly inflation, accumulated over twelve months by simple sum.
	InflationSeries = Series{Name: "ipca", Code: 433, Window: 12, Sum: true, Default: domain.DefaultInflationRate}
	InterbankSeries = Series{Name: "cdi", Code: 12, Window: 1, Default: domain.DefaultInterbankRate}
)

// SeriesNames lists the names of every reference series.
func SeriesNames() []string {
	return []string{PolicyRateSeries.Name, InflationSeries.Name, InterbankSeries.Name}
}

type observation struct {
	Date  string `json:"data"`
	Value string `json:"valor"`
}

// BCBProvider retrieves reference rates from the Central Bank SGS API.
type BCBProvider struct {
	baseURL string
	client  *http.Client
	logger  logrus.FieldLogger
	now     func() time.Time
}

// NewBCBProvider creates a provider against baseURL (DefaultBaseURL when
// empty). A nil logger discards output.
func NewBCBProvider(baseURL string, timeout time.Duration, logger logrus.FieldLogger) *BCBProvider {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &BCBProvider{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		logger:  orDiscard(logger),
		now:     time.Now,
	}
}

// Rates fetches the three series concurrently. A series that fails falls
// back to its default and is listed in Failed. ErrUnavailable is returned
// only when every series failed.
func (p *BCBProvider) Rates(ctx context.Context) (domain.ReferenceRates, error) {
	series := []Series{PolicyRateSeries, InflationSeries, InterbankSeries}
	values := make([]decimal.Decimal, len(series))
	errs := make([]error, len(series))

	var wg sync.WaitGroup
	for i, s := range series {
		wg.Add(1)
		go func(i int, s Series) {
			defer wg.Done()
			values[i], errs[i] = p.FetchSeries(ctx, s)
		}(i, s)
	}
	wg.Wait()

	result := domain.ReferenceRates{}
	for i, s := range series {
		if errs[i] != nil {
			p.logger.WithFields(logrus.Fields{
				"series": s.Name,
				"code":   s.Code,
			}).WithError(errs[i]).Warn("Falling back to default rate")
			values[i] = s.Default
			result.Failed = append(result.Failed, s.Name)
		}
	}
	result.PolicyRate = values[0]
	result.InflationRate = values[1]
	result.InterbankRate = values[2]
	result.Fallback = len(result.Failed) > 0

	if len(result.Failed) == len(series) {
		return result, fmt.Errorf("%w: %s", ErrUnavailable, strings.Join(result.Failed, ", "))
	}
	updated := p.now().UTC()
	result.UpdatedAt = &updated
	return result, nil
}

// FetchSeries retrieves one series and reduces it to a rate rounded to two
// decimals.
func (p *BCBProvider) FetchSeries(ctx context.Context, s Series) (decimal.Decimal, error) {
	url := fmt.Sprintf("%s/bcdata.sgs.%d/dados/ultimos/%d?formato=json", p.baseURL, s.Code, s.Window)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return decimal.Zero, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return decimal.Zero, fmt.Errorf("series %d returned status %d", s.Code, resp.StatusCode)
	}

	var observations []observation
	if err := json.NewDecoder(resp.Body).Decode(&observations); err != nil {
		return decimal.Zero, fmt.Errorf("failed to parse series %d: %w", s.Code, err)
	}
	return reduce(s, observations)
}

func reduce(s Series, observations []observation) (decimal.Decimal, error) {
	if len(observations) == 0 {
		return decimal.Zero, fmt.Errorf("series %d returned no observations", s.Code)
	}
	if !s.Sum {
		observations = observations[len(observations)-1:]
	}

	total := decimal.Zero
	for _, o := range observations {
		v, err := decimal.NewFromString(strings.TrimSpace(o.Value))
		if err != nil {
			return decimal.Zero, fmt.Errorf("series %d has invalid value %q on %s: %w", s.Code, o.Value, o.Date, err)
		}
		total = total.Add(v)
	}
	return total.Round(2), nil
}

func orDiscard(logger logrus.FieldLogger) logrus.FieldLogger {
	if logger != nil {
		return logger
	}
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
