package client

import (
	"context"
	"net/http"

	"github.com/fivetwenty-io/cdek/internal/constants"
	internalhttp "github.com/fivetwenty-io/cdek/internal/http"
	"github.com/fivetwenty-io/cdek/pkg/cdek"
)

// LocationsClient implements cdek.LocationClient.
type LocationsClient struct {
	httpClient *internalhttp.Client
}

// NewLocationsClient creates a new locations client.
func NewLocationsClient(httpClient *internalhttp.Client) *LocationsClient {
	return &LocationsClient{
		httpClient: httpClient,
	}
}

// ListCities queries the city directory. A nil filter lists without criteria.
func (c *LocationsClient) ListCities(ctx context.Context, filter *cdek.CityFilter) (*cdek.Response, error) {
	resp, err := c.httpClient.Execute(ctx, http.MethodGet, constants.APIPathCities, filter.Document())

	return toResponse("listing cities", resp, err)
}
