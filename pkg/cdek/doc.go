// Package cdek provides types, interfaces, and helpers for working with the
// CDEK v2 delivery API.
//
// # Overview
//
// The cdek package defines request builders (DeliveryRequest, PreAlert),
// request parameter types (TariffRequest, OrderSelector, CityFilter), the
// Response type, the error taxonomy and the Client interface. A concrete
// implementation of Client is provided by the cdekclient package, which wires
// configuration, transport and authentication.
//
// Getting a client
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/fivetwenty-io/cdek/pkg/cdek"
//	  "github.com/fivetwenty-io/cdek/pkg/cdekclient"
//	)
//
//	func example() {
//	  ctx := context.Background()
//	  cli, err := cdekclient.New(ctx, &cdek.Config{
//	    ClientID:     "account",
//	    ClientSecret: "secure-password",
//	    Environment:  cdek.EnvironmentTest,
//	  })
//	  if err != nil { log.Fatal(err) }
//
//	  resp, err := cli.ListCities(ctx, &cdek.CityFilter{City: "Москва", Size: 5})
//	  if err != nil { log.Fatal(err) }
//	  _ = resp.Body
//	}
//
// # Building orders
//
// DeliveryRequest assembles the nested order document. Optional fields left
// empty are dropped before the document is sent, and monetary values are
// written as decimal strings:
//
//	order := cdek.NewDeliveryRequest()
//	order.AddOrder(cdek.OrderFields{TariffCode: 136, Number: "A-1"})
//	_, _ = order.AddAddress(cdek.LocationTo, cdek.Address{City: "Москва", Address: "ул. Пушкина, 1"})
//	pkg := order.AddPackage(cdek.PackageFields{Number: "1", Weight: 500})
//	order.AddItem(pkg, cdek.ItemFields{Name: "Book", WareKey: "B1", Cost: cdek.MustMoney("1000.00"), Weight: 500, Amount: 1})
//
// # Normalization
//
// Normalize removes null-valued keys at any depth, including inside mappings
// held in sequences. Empty sequences and mappings pass through unchanged.
//
// # Errors
//
// Every client error matches one of ErrAuth, ErrValidation,
// ErrUnsupportedMethod or ErrRemoteAPI with errors.Is, unless it is a
// transport or context error. RemoteAPIError keeps the status and raw body;
// IsNotFound, IsConflict and IsUnauthorized branch on common cases.
//
// # Token caching
//
// Tokens are fetched per request unless Config.TokenCache is set. The cache
// can be process-local (MemoryCache) or shared between processes through a
// NATS JetStream bucket (NATSKVCache) or Redis (RedisCache).
package cdek
