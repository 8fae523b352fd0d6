// Package cdekclient provides the primary entry point for constructing a
// CDEK v2 API client that implements the cdek.Client interface.
//
// It layers configuration, HTTP transport, OAuth2 client credentials and the
// optional token cache on top of the request builders and types defined in
// the cdek package.
//
// Quick start
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
//
//	  // Sandbox account; every request performs its own token exchange.
//	  cli, err := cdekclient.NewWithClientCredentials(ctx, cdek.EnvironmentTest, "account", "secure-password")
//	  if err != nil { log.Fatal(err) }
//	  defer cli.Close()
//
//	  resp, err := cli.ListCities(ctx, &cdek.CityFilter{City: "Новосибирск", Size: 5})
//	  if err != nil { log.Fatal(err) }
//	  _ = resp.Body
//	}
//
// # Token reuse
//
// NewWithTokenCache keeps tokens until shortly before they expire. Use
// cdek.DefaultCacheConfig() for a process-local cache, or a NATS or Redis
// configuration to share tokens between processes.
//
// # Environment
//
// NewFromEnv reads CDEK_CLIENT_ID, CDEK_CLIENT_SECRET, CDEK_ENVIRONMENT and the
// other CDEK_* variables documented on cdek.ConfigFromEnv.
package cdekclient
