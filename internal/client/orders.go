package client

import (
	"context"
	"net/http"
	"net/url"

	"github.com/fivetwenty-io/cdek/internal/constants"
	internalhttp "github.com/fivetwenty-io/cdek/internal/http"
	"github.com/fivetwenty-io/cdek/pkg/cdek"
)

// OrdersClient implements cdek.OrdersClient.
type OrdersClient struct {
	httpClient *internalhttp.Client
}

// NewOrdersClient creates a new orders client.
func NewOrdersClient(httpClient *internalhttp.Client) *OrdersClient {
	return &OrdersClient{
		httpClient: httpClient,
	}
}

// CreateOrder registers the order assembled by request. Null fields are
// removed before sending.
func (c *OrdersClient) CreateOrder(ctx context.Context, request *cdek.DeliveryRequest) (*cdek.Response, error) {
	err := request.Validate()
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Execute(ctx, http.MethodPost, constants.APIPathOrders, request.Document())

	return toResponse("creating order", resp, err)
}

// GetOrder looks an order up by UUID, CDEK number or store number, in that
// order of precedence. An empty selector fails without a request.
func (c *OrdersClient) GetOrder(ctx context.Context, selector cdek.OrderSelector) (*cdek.Response, error) {
	err := selector.Validate()
	if err != nil {
		return nil, err
	}

	var (
		path   = constants.APIPathOrders
		params cdek.Document
	)

	switch {
	case selector.UUID != "":
		path = orderPath(selector.UUID)
	case selector.CDEKNumber != 0:
		params = cdek.Document{"cdek_number": selector.CDEKNumber}
	default:
		params = cdek.Document{"im_number": selector.IMNumber}
	}

	resp, err := c.httpClient.Execute(ctx, http.MethodGet, path, params)

	return toResponse("getting order", resp, err)
}

// DeleteOrder deletes an order by UUID.
func (c *OrdersClient) DeleteOrder(ctx context.Context, uuid string) (*cdek.Response, error) {
	if uuid == "" {
		return nil, &cdek.ValidationError{Field: "uuid", Message: "is required"}
	}

	resp, err := c.httpClient.Execute(ctx, http.MethodDelete, orderPath(uuid), nil)

	return toResponse("deleting order", resp, err)
}

func orderPath(uuid string) string {
	return constants.APIPathOrders + "/" + url.PathEscape(uuid)
}
