package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/oauth2"

	"placewatch-service/internal/domain/entity"
	"placewatch-service/internal/domain/repository"
	"placewatch-service/pkg/logger"
)

// HTTPDirectoryRepository talks to the remote directory service over HTTP.
// The client it builds owns the request timeout, so every fetch completes
// or fails in bounded time.
type HTTPDirectoryRepository struct {
	logger  logger.Logger
	baseURL string
	client  *http.Client
}

// NewHTTPDirectoryRepository creates a new directory repository. The bearer
// token rides on an oauth2 static token source.
func NewHTTPDirectoryRepository(baseURL, token string, timeout time.Duration, logger logger.Logger) repository.DirectoryRepository {
	tokenSource := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	client := oauth2.NewClient(context.Background(), tokenSource)
	client.Timeout = timeout

	return &HTTPDirectoryRepository{
		logger:  logger,
		baseURL: baseURL,
		client:  client,
	}
}

// FetchPlace fetches one place payload by its remote identifier.
func (r *HTTPDirectoryRepository) FetchPlace(ctx context.Context, remoteID string) (*entity.RemotePlacePayload, error) {
	endpoint := fmt.Sprintf("%s/api/v1/places/%s", r.baseURL, url.PathEscape(remoteID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("place %s not found in directory", remoteID)
	}
	if resp.StatusCode != http.StatusOK {
		var errorBody map[string]interface{}
		json.NewDecoder(resp.Body).Decode(&errorBody)
		return nil, fmt.Errorf("directory service returned status %d: %v", resp.StatusCode, errorBody)
	}

	var response struct {
		Success bool                      `json:"success"`
		Data    entity.RemotePlacePayload `json:"data"`
		Error   struct {
			Message string `json:"message"`
			Code    string `json:"code"`
		} `json:"error"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if !response.Success {
		return nil, fmt.Errorf("directory lookup failed: %s (code: %s)", response.Error.Message, response.Error.Code)
	}

	r.logger.Debug("Fetched place from directory",
		"remoteId", remoteID,
		"periods", len(response.Data.Periods))

	return &response.Data, nil
}
