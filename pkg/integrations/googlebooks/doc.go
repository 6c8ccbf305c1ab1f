// Package googlebooks provides a client for the Google Books volumes API.
//
// # Overview
//
// The client performs one GET per lookup against the configured volumes
// endpoint (usually https://www.googleapis.com/books/v1/volumes) with the
// query parameters:
//
//	q=<identifier>+isbn
//	maxResults=1
//	key=<api key>        (only when configured)
//
// The response body is kept as a [Payload], a shallow map of top-level keys
// to raw JSON, so that [Validate] can inspect it before anything assumes a
// result list exists.
//
// # Processing a Response
//
// A fetched payload goes through two steps:
//
//  1. [Validate] turns an empty body or an "error" field into a
//     [books.LookupError].
//  2. [Normalize] maps items[0] onto a [books.Record]. An empty result list
//     is a LookupError; a result without volumeInfo.title is a schema fault.
//
// # Usage
//
//	client, err := googlebooks.NewClient(googlebooks.Options{
//	    BaseURL: "https://www.googleapis.com/books/v1/volumes",
//	})
//	payload, err := client.Fetch(ctx, googlebooks.Query{Identifier: "9780316769488"})
//	if lerr := googlebooks.Validate(payload); lerr != nil {
//	    // catalog answered without data
//	}
//	rec, lerr, err := googlebooks.Normalize(payload)
//
// [books.LookupError]: github.com/matzehuels/biblio/pkg/books.LookupError
// [books.Record]: github.com/matzehuels/biblio/pkg/books.Record
package googlebooks
