// Package integrations provides HTTP clients for upstream book catalogs.
//
// # Overview
//
// This package contains the shared transport used by catalog clients. Each
// catalog has its own subpackage:
//
//   - [googlebooks]: Google Books volumes API
//
// # Client Pattern
//
// Catalog clients wrap [Client] and expose a single fetch operation:
//
//	client, err := googlebooks.NewClient(googlebooks.Options{BaseURL: url})
//	payload, err := client.Fetch(ctx, googlebooks.Query{Identifier: "9780316769488"})
//
// Clients handle:
//   - A single HTTP request per fetch, with no retries
//   - Classification of failures into coded transport faults
//   - Catalog-specific query construction
//
// Caching is not a client concern. The lookup orchestrator in [lookup]
// owns the cache-aside flow.
//
// # Failure Classification
//
// Every failure returned by [Client] is an *errors.Error wrapping [ErrNetwork]:
//
//   - TIMEOUT: the request deadline expired
//   - RATE_LIMITED: the upstream answered 429
//   - NETWORK_ERROR: connection failures and every other non-2xx status
//
// [googlebooks]: github.com/matzehuels/biblio/pkg/integrations/googlebooks
// [lookup]: github.com/matzehuels/biblio/pkg/lookup
package integrations
