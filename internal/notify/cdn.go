// Package notify purges the content-delivery cache and announces quiz data changes.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"newsquiz/internal/config"
	"newsquiz/internal/domain"
	"newsquiz/internal/util"

	"go.uber.org/zap"
)

const callerReferencePrefix = "auto-deploy-"

type invalidationRequest struct {
	DistributionID  string   `json:"distributionId"`
	Paths           []string `json:"paths"`
	CallerReference string   `json:"callerReference"`
}

type invalidationResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// CDNInvalidator creates cache invalidations through an HTTP purge endpoint.
type CDNInvalidator struct {
	endpoint       string
	distributionID string
	token          string
	httpClient     *http.Client
	logger         *zap.Logger
}

func NewCDNInvalidator(cfg config.CDNConfig, logger *zap.Logger) (*CDNInvalidator, error) {
	if cfg.InvalidationURL == "" {
		return nil, fmt.Errorf("cdn invalidation url is not configured")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &CDNInvalidator{
		endpoint:       cfg.InvalidationURL,
		distributionID: cfg.DistributionID,
		token:          cfg.Token,
		httpClient:     &http.Client{Timeout: timeout},
		logger:         logger,
	}, nil
}

// Invalidate drops paths from the CDN cache and returns the invalidation id.
// Every call carries a fresh caller reference, so retries create new invalidations.
func (i *CDNInvalidator) Invalidate(ctx context.Context, paths []string) (string, error) {
	payload, err := json.Marshal(invalidationRequest{
		DistributionID:  i.distributionID,
		Paths:           paths,
		CallerReference: callerReferencePrefix + util.NewULID(),
	})
	if err != nil {
		return "", domain.NewInternalError("failed to encode invalidation request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, i.endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", domain.NewInternalError("failed to build invalidation request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if i.token != "" {
		req.Header.Set("Authorization", "Bearer "+i.token)
	}

	resp, err := i.httpClient.Do(req)
	if err != nil {
		return "", domain.NewUpstreamError("cdn invalidation request failed", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", domain.NewUpstreamError("failed to read invalidation response", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", domain.NewUpstreamError(fmt.Sprintf("cdn invalidation returned status %d", resp.StatusCode), nil).
			WithContext("body", string(body))
	}

	var out invalidationResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return "", domain.NewUpstreamError("cdn invalidation returned a non-JSON body", err)
	}

	i.logger.Info("CDN invalidation created",
		zap.String("id", out.ID),
		zap.String("status", out.Status),
		zap.Strings("paths", paths),
	)
	return out.ID, nil
}
