package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"ulascansenturk/energy-loader/internal/db/energy"
)

var (
	// ErrTransport covers unreachable hosts, timeouts and non-200 responses.
	ErrTransport = errors.New("carbon factor request failed")
	// ErrResponseFormat covers invalid JSON and missing keys.
	ErrResponseFormat = errors.New("carbon factor response malformed")
)

type CarbonFactorService interface {
	FetchCarbonFactors(ctx context.Context) ([]energy.CarbonFactor, error)
	GetHTTPClient() *http.Client
}

type carbonFactorService struct {
	url    string
	client *http.Client
}

func NewCarbonFactorService(url string, timeout time.Duration) CarbonFactorService {
	return &carbonFactorService{
		url: url,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// CO2eqParametersResponse is the part of co2eq_parameters.json we read.
// Defaults stays raw so its key order can be walked.
type CO2eqParametersResponse struct {
	EmissionFactors *struct {
		Defaults json.RawMessage `json:"defaults"`
	} `json:"emissionFactors"`
}

type emissionFactorEntry struct {
	Value *float64 `json:"value"`
}

func (s *carbonFactorService) FetchCarbonFactors(ctx context.Context) ([]energy.CarbonFactor, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTransport, err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: returned status code: %d", ErrTransport, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading body: %w", ErrTransport, err)
	}

	return ParseCarbonFactors(body)
}

// ParseCarbonFactors extracts emissionFactors.defaults as (energy type, value)
// rows in document order. Repeated keys are kept.
func ParseCarbonFactors(body []byte) ([]energy.CarbonFactor, error) {
	var apiResp CO2eqParametersResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return nil, fmt.Errorf("%w: malformed JSON: %w", ErrResponseFormat, err)
	}

	if apiResp.EmissionFactors == nil {
		return nil, fmt.Errorf("%w: missing key emissionFactors", ErrResponseFormat)
	}
	if len(apiResp.EmissionFactors.Defaults) == 0 {
		return nil, fmt.Errorf("%w: missing key emissionFactors.defaults", ErrResponseFormat)
	}

	dec := json.NewDecoder(bytes.NewReader(apiResp.EmissionFactors.Defaults))
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrResponseFormat, err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("%w: emissionFactors.defaults is not an object", ErrResponseFormat)
	}

	var factors []energy.CarbonFactor
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrResponseFormat, err)
		}
		energyType := keyTok.(string)

		var entry emissionFactorEntry
		if err := dec.Decode(&entry); err != nil {
			return nil, fmt.Errorf("%w: entry %q: %w", ErrResponseFormat, energyType, err)
		}
		if entry.Value == nil {
			return nil, fmt.Errorf("%w: entry %q has no value", ErrResponseFormat, energyType)
		}

		factors = append(factors, energy.CarbonFactor{
			EnergyType: energyType,
			Value:      *entry.Value,
		})
	}

	return factors, nil
}

func (s *carbonFactorService) GetHTTPClient() *http.Client {
	return s.client
}
