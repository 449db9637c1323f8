package rates

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	customError "github.com/homebond/bond-engine/pkg/errors"
)

// HTTPSource fetches the prime rate from an upstream JSON endpoint of the
// form {"rate": "11.25", "effective_date": "2025-01-30T00:00:00Z"}.
type HTTPSource struct {
	client *http.Client
	url    string
}

func NewHTTPSource(url string, timeout time.Duration) *HTTPSource {
	return &HTTPSource{
		client: &http.Client{Timeout: timeout},
		url:    url,
	}
}

func (s *HTTPSource) Current(ctx context.Context) (PrimeRate, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return PrimeRate{}, customError.WrapRateSourceError(err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return PrimeRate{}, customError.WrapRateSourceError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return PrimeRate{}, customError.WrapRateSourceError(
			fmt.Errorf("unexpected status %d from rate endpoint", resp.StatusCode))
	}

	var rate PrimeRate
	if err := json.NewDecoder(resp.Body).Decode(&rate); err != nil {
		return PrimeRate{}, customError.WrapRateSourceError(err)
	}

	if !rate.Rate.IsPositive() {
		return PrimeRate{}, customError.WrapRateSourceError(
			fmt.Errorf("rate endpoint returned non-positive rate %s", rate.Rate))
	}

	return rate, nil
}
