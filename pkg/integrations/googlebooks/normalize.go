package googlebooks

import (
	"encoding/json"

	"github.com/matzehuels/biblio/pkg/books"
	"github.com/matzehuels/biblio/pkg/errors"
)

// NotFoundMessage is the LookupError message for an empty result list.
const NotFoundMessage = "no book found for identifier"

type volume struct {
	VolumeInfo *volumeInfo `json:"volumeInfo"`
	SearchInfo *searchInfo `json:"searchInfo"`
}

type volumeInfo struct {
	Title               *string            `json:"title"`
	Subtitle            string             `json:"subtitle"`
	Authors             []string           `json:"authors"`
	PublishedDate       string             `json:"publishedDate"`
	Description         *string            `json:"description"`
	PageCount           int                `json:"pageCount"`
	IndustryIdentifiers []books.Identifier `json:"industryIdentifiers"`
	Categories          []string           `json:"categories"`
	ImageLinks          *imageLinks        `json:"imageLinks"`
}

type searchInfo struct {
	TextSnippet *string `json:"textSnippet"`
}

type imageLinks struct {
	Thumbnail      string `json:"thumbnail"`
	SmallThumbnail string `json:"smallThumbnail"`
}

// Normalize maps the first volume of a validated payload onto a Record.
//
// An absent or empty items list yields a LookupError with
// [books.NotFoundCode]. A volume that cannot be decoded, or that lacks
// volumeInfo or volumeInfo.title, is a SCHEMA_VIOLATION fault: the upstream
// format changed and no LookupError can describe that.
func Normalize(p Payload) (*books.Record, *books.LookupError, error) {
	raw, ok := p["items"]
	if !ok {
		return nil, notFound(), nil
	}

	var items []volume
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, nil, errors.Wrap(errors.ErrCodeSchema, err, "cannot decode volumes items")
	}
	if len(items) == 0 {
		return nil, notFound(), nil
	}

	item := items[0]
	info := item.VolumeInfo
	if info == nil {
		return nil, nil, errors.New(errors.ErrCodeSchema, "volume is missing volumeInfo")
	}
	if info.Title == nil {
		return nil, nil, errors.New(errors.ErrCodeSchema, "volume is missing volumeInfo.title")
	}

	rec := &books.Record{
		Title:         *info.Title,
		Subtitle:      info.Subtitle,
		Authors:       info.Authors,
		PublishedDate: info.PublishedDate,
		Description:   info.Description,
		PageCount:     info.PageCount,
		Identifiers:   info.IndustryIdentifiers,
		Categories:    info.Categories,
	}
	if rec.Authors == nil {
		rec.Authors = []string{}
	}
	if rec.Identifiers == nil {
		rec.Identifiers = []books.Identifier{}
	}
	if item.SearchInfo != nil {
		rec.ShortDescription = item.SearchInfo.TextSnippet
	}
	if info.ImageLinks != nil {
		rec.Thumbnail = info.ImageLinks.Thumbnail
		rec.SmallThumbnail = info.ImageLinks.SmallThumbnail
	}
	return rec, nil, nil
}

func notFound() *books.LookupError {
	return &books.LookupError{Code: books.NotFoundCode, Message: NotFoundMessage}
}
