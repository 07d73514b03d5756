// Package postal resolves Brazilian postal codes (CEP) through the
// brasilapi.com.br public endpoint and maps the result onto the address
// fields used by the customer and delivery forms.
package postal

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"atelier/internal/config"
	apperrors "atelier/internal/errors"
)

const serviceName = "brasilapi"

type AddressLookup struct {
	Zipcode      string `json:"cep"`
	Street       string `json:"street"`
	Neighborhood string `json:"neighborhood"`
	City         string `json:"city"`
	Province     string `json:"state"`
}

type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(cfg config.PostalConfig) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    &http.Client{Timeout: cfg.Timeout},
	}
}

// Lookup accepts the CEP as typed, digits only or masked "01310-100".
func (c *Client) Lookup(ctx context.Context, cep string) (*AddressLookup, error) {
	digits := strings.ReplaceAll(cep, "-", "")
	if len(digits) != 8 {
		return nil, apperrors.NewValidationError("invalid postal code",
			apperrors.ValidationDetail{Field: "zipcode", Message: "postal code must have 8 digits"})
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/%s", c.baseURL, digits), nil)
	if err != nil {
		return nil, apperrors.NewExternalServiceError(serviceName, "building postal lookup request", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, apperrors.NewExternalServiceError(serviceName, "postal lookup request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, apperrors.NewValidationError("invalid postal code",
			apperrors.ValidationDetail{Field: "zipcode", Message: "postal code not found"})
	}
	if resp.StatusCode != http.StatusOK {
		return nil, apperrors.NewExternalServiceError(serviceName,
			fmt.Sprintf("postal lookup returned status %d", resp.StatusCode), nil)
	}

	var lookup AddressLookup
	if err := json.NewDecoder(resp.Body).Decode(&lookup); err != nil {
		return nil, apperrors.NewExternalServiceError(serviceName, "decoding postal lookup response", err)
	}

	return &lookup, nil
}
