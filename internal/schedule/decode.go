package schedule

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"strings"
)

// Elements that always decode to arrays, even with a single occurrence.
var xmlListElements = map[string]struct{}{
	"Show":        {},
	"TheatreArea": {},
	"Event":       {},
}

const xmlTextKey = "#text"

// DecodeJSON decodes a JSON document into a generic tree. Numbers decode as float64.
func DecodeJSON(r io.Reader) (any, error) {
	var payload any
	dec := json.NewDecoder(r)
	if err := dec.Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode json payload: %w", err)
	}
	return payload, nil
}

// DecodeXML decodes an XML document into the same generic tree shape JSON
// produces. The root element becomes the single top-level key. Child
// elements become keys of their parent; repeated names and the list elements
// Show, TheatreArea, and Event become arrays. Attributes become keys, leaf
// text becomes a string, and text mixed with child elements is kept under "#text".
func DecodeXML(r io.Reader) (any, error) {
	dec := xml.NewDecoder(r)

	type frame struct {
		name     string
		fields   map[string]any
		text     strings.Builder
		hasChild bool
	}

	var (
		stack []*frame
		root  map[string]any
	)

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("decode xml payload: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			f := &frame{name: t.Name.Local, fields: map[string]any{}}
			for _, attr := range t.Attr {
				if attr.Name.Space == "xmlns" || attr.Name.Local == "xmlns" {
					continue
				}
				f.fields[attr.Name.Local] = attr.Value
			}
			if len(stack) > 0 {
				stack[len(stack)-1].hasChild = true
			}
			stack = append(stack, f)
		case xml.CharData:
			if len(stack) > 0 {
				stack[len(stack)-1].text.Write(t)
			}
		case xml.EndElement:
			if len(stack) == 0 {
				return nil, fmt.Errorf("decode xml payload: unexpected </%s>", t.Name.Local)
			}
			f := stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			text := strings.TrimSpace(f.text.String())
			var value any
			if len(f.fields) == 0 && !f.hasChild {
				value = text
			} else {
				if text != "" {
					f.fields[xmlTextKey] = text
				}
				value = f.fields
			}

			if len(stack) == 0 {
				root = map[string]any{f.name: value}
				continue
			}
			addXMLChild(stack[len(stack)-1].fields, f.name, value)
		}
	}

	if root == nil {
		return nil, errors.New("decode xml payload: no root element")
	}
	return root, nil
}

func addXMLChild(parent map[string]any, name string, value any) {
	existing, ok := parent[name]
	if !ok {
		if _, list := xmlListElements[name]; list {
			parent[name] = []any{value}
			return
		}
		parent[name] = value
		return
	}
	if items, isList := existing.([]any); isList {
		parent[name] = append(items, value)
		return
	}
	parent[name] = []any{existing, value}
}

// Decode picks a decoder from contentType, falling back to sniffing the first
// non-space byte of body.
func Decode(contentType string, body []byte) (any, error) {
	switch detectFormat(contentType, body) {
	case "xml":
		return DecodeXML(bytes.NewReader(body))
	default:
		return DecodeJSON(bytes.NewReader(body))
	}
}

// ReadFile decodes a payload from disk, choosing the decoder by extension.
func ReadFile(path string) (any, error) {
	body, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read payload: %w", err)
	}
	contentType := ""
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xml":
		contentType = "application/xml"
	case ".json":
		contentType = "application/json"
	}
	return Decode(contentType, body)
}

func detectFormat(contentType string, body []byte) string {
	if mediaType, _, err := mime.ParseMediaType(contentType); err == nil {
		switch {
		case strings.HasSuffix(mediaType, "xml"):
			return "xml"
		case strings.HasSuffix(mediaType, "json"):
			return "json"
		}
	}
	trimmed := bytes.TrimLeft(body, " \t\r\n\ufeff")
	if len(trimmed) > 0 && trimmed[0] == '<' {
		return "xml"
	}
	return "json"
}
