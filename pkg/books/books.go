// Package books defines the canonical book record returned by a lookup and
// the identifier handling shared by every layer that touches it.
//
// # Records and Results
//
// A lookup resolves to a [Result], which holds exactly one of:
//   - a [Record]: the normalized metadata for the book
//   - a [LookupError]: the catalog was reachable but had no usable answer
//
// LookupError is data, not a Go error. It is rendered to API callers as an
// ordinary JSON body ({"code": ..., "error": ...}) so clients can show a
// "not found" message. Faults that mean the system itself failed (the
// catalog is unreachable, configuration is missing) travel as Go errors
// alongside the Result instead.
//
// # Identifiers
//
// Identifiers are ISBN-10 or ISBN-13 strings. [NormalizeIdentifier] is the
// only transformation applied: whitespace is trimmed and letters are
// lower-cased. Checksums are not verified; the catalog decides validity.
package books

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Record is the canonical, flat shape of a resolved book.
//
// Fields the catalog omits are represented explicitly: Subtitle, Thumbnail
// and SmallThumbnail fall back to the empty string, while Description,
// ShortDescription and Categories are nil (JSON null) when absent.
// Authors is never nil so it always encodes as a JSON array.
type Record struct {
	Title            string       `json:"title"`
	Subtitle         string       `json:"subtitle"`
	Authors          []string     `json:"authors"`
	PublishedDate    string       `json:"publishedDate"` // Free-form, as supplied upstream (e.g. "2020", "2020-05-01")
	Description      *string      `json:"description"`
	ShortDescription *string      `json:"shortDescription"` // Search snippet, distinct from Description
	PageCount        int          `json:"pageCount"`
	Identifiers      []Identifier `json:"identifiers"`
	Categories       []string     `json:"categories"`
	Thumbnail        string       `json:"thumbnail"`
	SmallThumbnail   string       `json:"smallThumbnail"`
}

// Identifier is a typed industry identifier attached to a record,
// such as {Type: "ISBN_13", Identifier: "9780316769488"}.
type Identifier struct {
	Type       string `json:"type"`
	Identifier string `json:"identifier"`
}

// LookupError is a resolved "no usable data" outcome.
//
// Code carries the upstream's numeric code when it supplied one and 0
// otherwise; NotFoundCode marks an empty result set.
type LookupError struct {
	Code    int    `json:"code"`
	Message string `json:"error"`
}

// NotFoundCode is the LookupError code used when the catalog answered but
// returned no matching volume.
const NotFoundCode = 404

// String returns a compact human-readable form of the error.
func (e *LookupError) String() string {
	if e.Code != 0 {
		return fmt.Sprintf("%s (code %d)", e.Message, e.Code)
	}
	return e.Message
}

// Result is the tagged outcome of a lookup: exactly one of Book and Err
// is non-nil.
type Result struct {
	Book *Record
	Err  *LookupError
}

// Found returns a Result holding rec.
func Found(rec *Record) Result { return Result{Book: rec} }

// Failed returns a Result holding a LookupError.
func Failed(code int, message string) Result {
	return Result{Err: &LookupError{Code: code, Message: message}}
}

// OK reports whether the result holds a record.
func (r Result) OK() bool { return r.Book != nil }

// MarshalJSON encodes whichever side of the result is set.
func (r Result) MarshalJSON() ([]byte, error) {
	if r.Err != nil {
		return json.Marshal(r.Err)
	}
	return json.Marshal(r.Book)
}

// NormalizeIdentifier canonicalizes a raw identifier for use as a cache key
// and query term. It trims surrounding whitespace and lower-cases the
// result. It is pure and idempotent.
func NormalizeIdentifier(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}
