package main

import (
	"fmt"
	"image"
	"unicode/utf8"

	"gopkg.in/yaml.v2"

	"github.com/gogpu/textatlas"
	"github.com/gogpu/textatlas/text"
)

// RequestMeta is one entry of a request file.
type RequestMeta struct {
	Text       string `yaml:"text"`
	X          int    `yaml:"x"`
	Y          int    `yaml:"y"`
	Wrap       int    `yaml:"wrap"`
	LineHeight int    `yaml:"lineHeight"`
}

// RequestFile is the document form of a request file. A file may also be a
// bare list of requests.
type RequestFile struct {
	Tint     []uint8       `yaml:"tint"`
	Requests []RequestMeta `yaml:"requests"`
}

// ReadRequestsData parses a request file in either list or document form.
func ReadRequestsData(data []byte) (RequestFile, error) {
	list := []RequestMeta{}
	if err := yaml.Unmarshal(data, &list); err == nil {
		return RequestFile{Requests: list}, nil
	}

	doc := RequestFile{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return RequestFile{}, err
	}
	if doc.Tint != nil && len(doc.Tint) != 3 {
		return RequestFile{}, fmt.Errorf("tint must have 3 components, got %d", len(doc.Tint))
	}
	return doc, nil
}

// TintOr returns the file's tint, or def if none is set.
func (f RequestFile) TintOr(def text.Tint) text.Tint {
	if len(f.Tint) != 3 {
		return def
	}
	return text.Tint{R: f.Tint[0], G: f.Tint[1], B: f.Tint[2]}
}

// ToTextRequests converts entries to compositor requests. A zero wrap
// disables wrapping and a zero line height uses defaultLineHeight.
func (f RequestFile) ToTextRequests(defaultLineHeight int) []textatlas.TextRequest {
	out := make([]textatlas.TextRequest, 0, len(f.Requests))
	for _, r := range f.Requests {
		wrap := r.Wrap
		if wrap == 0 {
			wrap = max(1, utf8.RuneCountInString(r.Text))
		}
		lineHeight := r.LineHeight
		if lineHeight == 0 {
			lineHeight = defaultLineHeight
		}
		out = append(out, textatlas.TextRequest{
			Text:       r.Text,
			Origin:     image.Pt(r.X, r.Y),
			WrapWidth:  wrap,
			LineHeight: lineHeight,
		})
	}
	return out
}
