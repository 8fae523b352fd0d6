package client

import (
	"context"
	"net/http"
	"net/url"

	"github.com/fivetwenty-io/cdek/internal/constants"
	internalhttp "github.com/fivetwenty-io/cdek/internal/http"
	"github.com/fivetwenty-io/cdek/pkg/cdek"
)

// PreAlertsClient implements cdek.PreAlertClient.
type PreAlertsClient struct {
	httpClient *internalhttp.Client
}

// NewPreAlertsClient creates a new pre-alerts client.
func NewPreAlertsClient(httpClient *internalhttp.Client) *PreAlertsClient {
	return &PreAlertsClient{
		httpClient: httpClient,
	}
}

// CreatePreAlert registers a pre-alert.
func (c *PreAlertsClient) CreatePreAlert(ctx context.Context, preAlert *cdek.PreAlert) (*cdek.Response, error) {
	err := preAlert.Validate()
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Execute(ctx, http.MethodPost, constants.APIPathPreAlert, preAlert.Document())

	return toResponse("creating pre-alert", resp, err)
}

// GetPreAlert fetches a pre-alert by UUID.
func (c *PreAlertsClient) GetPreAlert(ctx context.Context, uuid string) (*cdek.Response, error) {
	if uuid == "" {
		return nil, &cdek.ValidationError{Field: "uuid", Message: "is required"}
	}

	resp, err := c.httpClient.Execute(ctx, http.MethodGet, constants.APIPathPreAlert+"/"+url.PathEscape(uuid), nil)

	return toResponse("getting pre-alert", resp, err)
}
