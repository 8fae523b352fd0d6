package client

import (
	"context"
	"net/http"

	"github.com/fivetwenty-io/cdek/internal/constants"
	internalhttp "github.com/fivetwenty-io/cdek/internal/http"
	"github.com/fivetwenty-io/cdek/pkg/cdek"
)

// TariffsClient implements cdek.TariffClient.
type TariffsClient struct {
	httpClient *internalhttp.Client
}

// NewTariffsClient creates a new tariffs client.
func NewTariffsClient(httpClient *internalhttp.Client) *TariffsClient {
	return &TariffsClient{
		httpClient: httpClient,
	}
}

// CalculateTariff posts the request to the tariff calculator.
func (c *TariffsClient) CalculateTariff(ctx context.Context, request *cdek.TariffRequest) (*cdek.Response, error) {
	err := request.Validate()
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Execute(ctx, http.MethodPost, constants.APIPathTariff, request.Document())

	return toResponse("calculating tariff", resp, err)
}
