package feeder

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/mamadbah2/feedlot/internal/domain/models"
)

// Client exposes the feeding-unit device operations used by the application.
type Client interface {
	FetchSamples(ctx context.Context, unit models.FeedingUnit) ([]models.FeedDataSample, error)
}

// APIClient is a resty-backed implementation of Client. Each unit carries its
// own webhook URL, so the client is built without a base URL.
type APIClient struct {
	httpClient *resty.Client
}

// NewClient builds a feeder device client.
func NewClient() *APIClient {
	restyClient := resty.New()
	restyClient.
		SetHeader("Accept", "application/json").
		SetTimeout(15 * time.Second)

	return &APIClient{httpClient: restyClient}
}

// sampleResponse mirrors the payload a feeder device reports.
type sampleResponse struct {
	Samples []struct {
		Timestamp  time.Time `json:"timestamp"`
		FeedAmount float64   `json:"feed_amount"`
		FeedType   string    `json:"feed_type"`
		Cost       float64   `json:"cost"`
	} `json:"samples"`
}

// apiError represents a feeder device error payload.
type apiError struct {
	Error struct {
		Message string `json:"message"`
		Code    int    `json:"code"`
	} `json:"error"`
}

// FetchSamples pulls the pending feed samples from the unit's webhook URL.
func (c *APIClient) FetchSamples(ctx context.Context, unit models.FeedingUnit) ([]models.FeedDataSample, error) {
	if unit.WebhookURL == "" {
		return nil, fmt.Errorf("unit %s has no webhook url", unit.ID)
	}

	result := new(sampleResponse)
	apiErr := new(apiError)

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetQueryParam("device_id", unit.DeviceID).
		SetResult(result).
		SetError(apiErr).
		Get(unit.WebhookURL)
	if err != nil {
		return nil, fmt.Errorf("fetch feeder samples: %w", err)
	}

	if resp.StatusCode() >= http.StatusBadRequest {
		message := ""
		code := resp.StatusCode()
		if apiErr != nil {
			message = apiErr.Error.Message
			if apiErr.Error.Code != 0 {
				code = apiErr.Error.Code
			}
		}
		return nil, fmt.Errorf("feeder api error: code=%d, message=%s", code, message)
	}

	samples := make([]models.FeedDataSample, 0, len(result.Samples))
	for _, s := range result.Samples {
		samples = append(samples, models.FeedDataSample{
			Timestamp:  s.Timestamp,
			FeedAmount: s.FeedAmount,
			FeedType:   s.FeedType,
			Cost:       s.Cost,
			UnitID:     unit.ID,
			PenID:      unit.PenID,
		})
	}
	return samples, nil
}
