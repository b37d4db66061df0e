package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"placewatch-service/internal/domain/entity"
	"placewatch-service/internal/domain/repository"
	"placewatch-service/pkg/logger"
)

// PushAlertRepository delivers alerts to the push gateway that fans them out
// to the user's devices.
type PushAlertRepository struct {
	logger      logger.Logger
	baseURL     string
	bearerToken string
	client      *http.Client
}

// NewPushAlertRepository creates a new push alert repository
func NewPushAlertRepository(baseURL, bearerToken string, logger logger.Logger) repository.AlertRepository {
	return &PushAlertRepository{
		logger:      logger,
		baseURL:     baseURL,
		bearerToken: bearerToken,
		client:      &http.Client{Timeout: 30 * time.Second},
	}
}

// Deliver posts one alert to the gateway. The alert's ID keeps rapid
// repeated alerts for the same record from overwriting each other.
func (r *PushAlertRepository) Deliver(ctx context.Context, alert *entity.Alert) error {
	jsonData, err := json.Marshal(alert)
	if err != nil {
		return fmt.Errorf("failed to marshal alert: %w", err)
	}

	endpoint := fmt.Sprintf("%s/api/v1/alerts", r.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+r.bearerToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		var errorBody map[string]interface{}
		json.NewDecoder(resp.Body).Decode(&errorBody)
		return fmt.Errorf("push gateway returned status %d: %v", resp.StatusCode, errorBody)
	}

	var response struct {
		Success bool `json:"success"`
		Error   struct {
			Message string `json:"message"`
			Code    string `json:"code"`
		} `json:"error"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	if !response.Success {
		return fmt.Errorf("push gateway rejected alert: %s (code: %s)", response.Error.Message, response.Error.Code)
	}

	r.logger.Debug("Alert accepted by push gateway", "alertId", alert.ID)
	return nil
}
