// Package lookup resolves book identifiers to records with a cache-aside
// flow in front of the upstream catalog.
//
// # Flow
//
// [Resolver.ResolveByIdentifier] runs a linear sequence with two early exits:
//
//	normalize → cache get ──hit──────────────────────────────→ record
//	                └─miss→ fetch → validate ──LookupError───→ LookupError
//	                                  └→ normalize → cache put → record
//
// Transport, configuration and schema faults are returned as Go errors.
// A [books.LookupError] is returned inside a successful [books.Result] and is
// never cached.
//
// # Caching
//
// Records are cached as JSON under "biblio_book:<normalized identifier>" for
// [DefaultTTL]. The cache is advisory: backend failures are logged and
// treated as a miss (reads) or skipped (writes), so a broken cache never
// fails a lookup.
//
// # Concurrency
//
// A Resolver is safe for concurrent use. Concurrent misses for the same
// identifier each call the upstream; the last write wins.
//
// [books.LookupError]: github.com/matzehuels/biblio/pkg/books.LookupError
// [books.Result]: github.com/matzehuels/biblio/pkg/books.Result
package lookup
