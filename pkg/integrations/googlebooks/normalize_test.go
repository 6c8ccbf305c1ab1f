package googlebooks

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/matzehuels/biblio/pkg/books"
	"github.com/matzehuels/biblio/pkg/errors"
)

const samplePayload = `{"items":[{"volumeInfo":{"title":"T","authors":["A"],"publishedDate":"2020","description":"D","pageCount":10,"industryIdentifiers":[{"type":"ISBN_13","identifier":"123"}],"categories":["Fiction"]},"searchInfo":{"textSnippet":"S"}}]}`

func strPtr(s string) *string { return &s }

func TestNormalizeSample(t *testing.T) {
	rec, lerr, err := Normalize(DecodePayload([]byte(samplePayload)))
	if err != nil || lerr != nil {
		t.Fatalf("Normalize() = %v, %v", lerr, err)
	}

	want := &books.Record{
		Title:            "T",
		Subtitle:         "",
		Authors:          []string{"A"},
		PublishedDate:    "2020",
		Description:      strPtr("D"),
		ShortDescription: strPtr("S"),
		PageCount:        10,
		Identifiers:      []books.Identifier{{Type: "ISBN_13", Identifier: "123"}},
		Categories:       []string{"Fiction"},
		Thumbnail:        "",
		SmallThumbnail:   "",
	}
	if !reflect.DeepEqual(rec, want) {
		t.Errorf("Normalize() =\n%+v\nwant\n%+v", rec, want)
	}

	got, _ := json.Marshal(rec)
	wantJSON := `{"title":"T","subtitle":"","authors":["A"],"publishedDate":"2020","description":"D","shortDescription":"S","pageCount":10,"identifiers":[{"type":"ISBN_13","identifier":"123"}],"categories":["Fiction"],"thumbnail":"","smallThumbnail":""}`
	if string(got) != wantJSON {
		t.Errorf("JSON =\n%s\nwant\n%s", got, wantJSON)
	}
}

func TestNormalizeOptionalFields(t *testing.T) {
	body := `{"items":[{"volumeInfo":{"title":"Nine Stories","subtitle":"A Collection",` +
		`"imageLinks":{"thumbnail":"http://img/t","smallThumbnail":"http://img/s"}}}]}`

	rec, lerr, err := Normalize(DecodePayload([]byte(body)))
	if err != nil || lerr != nil {
		t.Fatalf("Normalize() = %v, %v", lerr, err)
	}
	if rec.Subtitle != "A Collection" {
		t.Errorf("Subtitle = %q", rec.Subtitle)
	}
	if rec.Thumbnail != "http://img/t" || rec.SmallThumbnail != "http://img/s" {
		t.Errorf("thumbnails = %q, %q", rec.Thumbnail, rec.SmallThumbnail)
	}
	if rec.Authors == nil || len(rec.Authors) != 0 {
		t.Errorf("Authors = %#v, want empty non-nil slice", rec.Authors)
	}
	if rec.Description != nil || rec.ShortDescription != nil {
		t.Error("absent descriptions should stay nil")
	}
	if rec.Categories != nil {
		t.Errorf("Categories = %#v, want nil", rec.Categories)
	}

	got, _ := json.Marshal(rec)
	var m map[string]any
	_ = json.Unmarshal(got, &m)
	if m["description"] != nil || m["categories"] != nil {
		t.Errorf("absent nullable fields should encode as null: %s", got)
	}
	if _, ok := m["authors"].([]any); !ok {
		t.Errorf("authors should encode as an array: %s", got)
	}
}

func TestNormalizeShortDescriptionIsSnippet(t *testing.T) {
	body := `{"items":[{"volumeInfo":{"title":"T","description":"full text"},"searchInfo":{"textSnippet":"snippet"}}]}`
	rec, _, err := Normalize(DecodePayload([]byte(body)))
	if err != nil {
		t.Fatal(err)
	}
	if *rec.Description != "full text" || *rec.ShortDescription != "snippet" {
		t.Errorf("Description = %q, ShortDescription = %q", *rec.Description, *rec.ShortDescription)
	}
}

func TestNormalizeUsesFirstItem(t *testing.T) {
	body := `{"items":[{"volumeInfo":{"title":"first"}},{"volumeInfo":{"title":"second"}}]}`
	rec, _, err := Normalize(DecodePayload([]byte(body)))
	if err != nil {
		t.Fatal(err)
	}
	if rec.Title != "first" {
		t.Errorf("Title = %q, want first", rec.Title)
	}
}

func TestNormalizeNoItems(t *testing.T) {
	for _, body := range []string{`{"kind":"books#volumes","totalItems":0}`, `{"items":[]}`, `{"items":null}`} {
		rec, lerr, err := Normalize(DecodePayload([]byte(body)))
		if err != nil {
			t.Errorf("%s: unexpected fault %v", body, err)
			continue
		}
		if rec != nil {
			t.Errorf("%s: record = %+v, want nil", body, rec)
		}
		if lerr == nil || lerr.Code != books.NotFoundCode || lerr.Message != NotFoundMessage {
			t.Errorf("%s: LookupError = %+v", body, lerr)
		}
	}
}

func TestNormalizeSchemaViolations(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing volumeInfo", `{"items":[{"searchInfo":{"textSnippet":"S"}}]}`},
		{"missing title", `{"items":[{"volumeInfo":{"authors":["A"]}}]}`},
		{"items not a list", `{"items":{"volumeInfo":{}}}`},
		{"wrong field type", `{"items":[{"volumeInfo":{"title":"T","pageCount":"many"}}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, lerr, err := Normalize(DecodePayload([]byte(tt.body)))
			if rec != nil || lerr != nil {
				t.Errorf("Normalize() = %+v, %+v; want fault only", rec, lerr)
			}
			if got := errors.GetCode(err); got != errors.ErrCodeSchema {
				t.Errorf("code = %s, want %s", got, errors.ErrCodeSchema)
			}
		})
	}
}
