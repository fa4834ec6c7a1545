// Package sellsyclient provides the primary entry point for constructing a
// Sellsy API client that implements the sellsy.Client interface.
//
// It layers configuration defaults and the HTTP transport on top of the types
// defined in the sellsy package. Most applications import sellsyclient to build
// a client, then use the returned sellsy.Client to call methods directly or
// through resource collections.
//
// Quick start
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/fivetwenty-io/sellsy-client/pkg/sellsy"
//	  "github.com/fivetwenty-io/sellsy-client/pkg/sellsyclient"
//	)
//
//	func example() {
//	  ctx := context.Background()
//
//	  cli, err := sellsyclient.NewWithCredentials("https://apifeed.sellsy.com/0/",
//	    "consumer-key", "consumer-secret", "access-token", "access-token-secret")
//	  if err != nil { log.Fatal(err) }
//
//	  // Or from SELLSY_* environment variables:
//	  cli, err = sellsyclient.NewFromEnv()
//	  if err != nil { log.Fatal(err) }
//
//	  infos, err := cli.GetInfos(ctx)
//	  if err != nil { log.Fatal(err) }
//	  _ = infos
//
//	  list, err := cli.Collection(sellsy.ResourceClient).Call(ctx, "getList", nil)
//	  if err != nil { log.Fatal(err) }
//	  _ = list
//	}
//
// # Transport
//
// Unless Config.Transport is set, requests go through go-retryablehttp with
// retries disabled. TLS peer verification is on only for https URLs.
package sellsyclient
