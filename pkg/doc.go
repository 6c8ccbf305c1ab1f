// Package pkg provides the core libraries for biblio book lookups.
//
// # Overview
//
// Biblio resolves an ISBN to a flat book record using the Google Books
// catalog, caching successful answers so repeated lookups stay local.
//
// # Architecture
//
// The data flow of a single lookup:
//
//	raw identifier
//	     ↓
//	[books] NormalizeIdentifier
//	     ↓
//	[lookup] RecordCache.Get ── hit ──→ Result
//	     ↓ miss
//	[integrations/googlebooks] Client.Fetch
//	     ↓
//	Validate → Normalize
//	     ↓
//	[lookup] RecordCache.Put → Result
//
// # Quick Start
//
//	client, err := googlebooks.NewClient(googlebooks.Options{
//	    BaseURL: googlebooks.DefaultBaseURL,
//	})
//	if err != nil {
//	    return err
//	}
//	resolver := lookup.New(client, cache.NewMemoryCache())
//
//	res, err := resolver.ResolveByIdentifier(ctx, "9780316769488")
//	switch {
//	case err != nil:
//	    // transport, configuration or schema fault
//	case res.OK():
//	    fmt.Println(res.Book.Title)
//	default:
//	    fmt.Println(res.Err) // e.g. 404 no book found
//	}
//
// # Main Packages
//
// [books] - Record, LookupError and Result types plus identifier normalization.
//
// [cache] - Byte-level TTL cache backends: memory, file, Redis, MongoDB and a
// null cache, with key prefixing via [cache.Prefixed].
//
// [integrations] - Shared HTTP client mapping transport failures onto coded
// errors. [integrations/googlebooks] holds the catalog client, response
// validation and normalization.
//
// [lookup] - The cache-aside orchestrator.
//
// [config] - TOML configuration with environment overrides.
//
// [errors] - Coded errors shared by every layer.
//
// [observability] - Hook registry with a Prometheus implementation.
//
// # Testing
//
//	go test ./...                        # All tests
//	go test -tags integration ./pkg/...  # Include the MongoDB backend
//
// [books]: https://pkg.go.dev/github.com/matzehuels/biblio/pkg/books
// [cache]: https://pkg.go.dev/github.com/matzehuels/biblio/pkg/cache
// [cache.Prefixed]: https://pkg.go.dev/github.com/matzehuels/biblio/pkg/cache#Prefixed
// [integrations]: https://pkg.go.dev/github.com/matzehuels/biblio/pkg/integrations
// [integrations/googlebooks]: https://pkg.go.dev/github.com/matzehuels/biblio/pkg/integrations/googlebooks
// [lookup]: https://pkg.go.dev/github.com/matzehuels/biblio/pkg/lookup
// [config]: https://pkg.go.dev/github.com/matzehuels/biblio/pkg/config
// [errors]: https://pkg.go.dev/github.com/matzehuels/biblio/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/biblio/pkg/observability
package pkg
