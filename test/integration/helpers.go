//go:build integration

package integration

import (
	"context"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/cdek/pkg/cdek"
	"github.com/fivetwenty-io/cdek/pkg/cdekclient"
)

// Public credentials of the CDEK education sandbox.
const (
	sandboxClientID     = "EMscd6r9JnFiQ3bLoyjJY6eM78JrJceI"
	sandboxClientSecret = "PjLZkKBHEiLK3YsjtNrt3TGNG0ahs3kG"
)

// TestConfig holds configuration for integration tests.
type TestConfig struct {
	ClientID     string
	ClientSecret string
	BaseURL      string
}

// LoadTestConfig loads configuration from environment variables, falling
// back to the sandbox account.
func LoadTestConfig() *TestConfig {
	config := &TestConfig{
		ClientID:     os.Getenv("CDEK_CLIENT_ID"),
		ClientSecret: os.Getenv("CDEK_CLIENT_SECRET"),
		BaseURL:      os.Getenv("CDEK_BASE_URL"),
	}

	if config.ClientID == "" && config.ClientSecret == "" {
		config.ClientID = sandboxClientID
		config.ClientSecret = sandboxClientSecret
	}

	return config
}

// SkipIfShort skips sandbox tests under -short.
func SkipIfShort(t *testing.T) {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping sandbox test in short mode")
	}
}

// NewClient builds a test-environment client for the sandbox.
func (config *TestConfig) NewClient(t *testing.T) cdek.Client {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := cdekclient.New(ctx, &cdek.Config{
		ClientID:     config.ClientID,
		ClientSecret: config.ClientSecret,
		Environment:  cdek.EnvironmentTest,
		BaseURL:      config.BaseURL,
		TokenCache:   cdek.DefaultCacheConfig(),
	})
	require.NoError(t, err)

	t.Cleanup(func() { _ = client.Close() })

	return client
}

// onlineStoreOrder builds the order used by the lifecycle tests: Moscow to
// the NSK35 pickup point with one package holding one item.
func onlineStoreOrder() *cdek.DeliveryRequest {
	stamp := strconv.FormatInt(time.Now().UnixNano(), 10)

	request := cdek.NewDeliveryRequest()
	request.AddOrder(cdek.OrderFields{
		TariffCode:    62,
		Number:        "it-" + stamp,
		DeliveryPoint: "NSK35",
		Recipient: cdek.Document{
			"name":   "Иванов Иван Иванович",
			"phones": []cdek.Document{{"number": "+79999999999"}},
		},
		Sender:                cdek.Document{"name": "Петров Петр"},
		DeliveryRecipientCost: cdek.Document{"value": cdek.MustMoney("300.0")},
	})

	moscow := 44
	_, _ = request.AddAddress(cdek.LocationFrom, cdek.Address{
		Code:    &moscow,
		City:    "Москва",
		Address: "пр. Ленинградский, д.4",
	})

	pkg := request.AddPackage(cdek.PackageFields{
		Number: stamp,
		Weight: 600,
		Length: 10,
		Width:  10,
		Height: 10,
	})
	request.AddItem(pkg, cdek.ItemFields{
		Name:    "Товар 1",
		WareKey: stamp,
		Cost:    cdek.MustMoney("1000"),
		Weight:  700,
		Amount:  2,
	})
	request.AddService("NOTIFY_ORDER_CREATED", "1")

	return request
}
