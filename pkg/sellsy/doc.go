// Package sellsy provides types, interfaces, and helpers for working with the
// Sellsy RPC API.
//
// # Overview
//
// Sellsy exposes its business objects (clients, documents, agenda, stock, ...)
// as remote methods named "<Resource>.<method>". Every call is a POST of three
// form fields (request=1, io_mode=json, do_in=<JSON {method, params}>) signed
// with the OAuth1 PLAINTEXT method. The answer is a JSON object whose "status"
// member is "error" on failure.
//
// The package defines the public types (Credentials, Answer, Params,
// Resource, Collection), the Transport abstraction and the typed errors. A
// concrete client is provided by the sellsyclient package.
//
// Getting a client
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
//	  cli, err := sellsyclient.New(&sellsy.Config{
//	    APIURL:      "https://apifeed.sellsy.com/0/",
//	    Credentials: sellsy.NewCredentials(consumerKey, consumerSecret, token, tokenSecret),
//	  })
//	  if err != nil { log.Fatal(err) }
//
//	  params := sellsy.NewParams().Set("pagination", map[string]int{"nbperpage": 10})
//	  answer, err := cli.Collection(sellsy.ResourceClient).Call(ctx, "getList", params)
//	  if err != nil { log.Fatal(err) }
//	  _ = answer
//	}
//
// # Errors
//
// A call fails with exactly one of two error types. RequestFailureError
// means the call did not produce a usable answer (transport error, OAuth
// problem, body that is not JSON). ServiceError means Sellsy answered with an
// error status. IsRequestFailure and IsServiceError branch on them.
//
// # Interceptors and observers
//
// RequestInterceptor functions run before a request is sent and may add
// headers or abort the call. ResponseObserver functions see every completed
// exchange; built-ins log it, record Prometheus metrics or publish an audit
// record through a Publisher such as a NATS connection.
package sellsy
