package source

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"math/big"
	"slices"
	"strconv"
	"strings"

	j "github.com/goccy/go-json"
)

// Reserved keys of the XML element tree.
const (
	XMLAttrKey = "$"
	XMLTextKey = "_"
)

// DecodeXML reads the first element of r and returns its local name and value.
// Leaf elements without attributes become strings; every other element becomes
// a map[string]any.
func DecodeXML(r io.Reader) (string, any, error) {
	dec := xml.NewDecoder(r)
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return "", nil, errors.New("source: decode xml: no root element")
		}
		if err != nil {
			return "", nil, fmt.Errorf("source: decode xml: %w", err)
		}
		if se, ok := tok.(xml.StartElement); ok {
			v, err := decodeElement(dec, se)
			if err != nil {
				return "", nil, fmt.Errorf("source: decode xml: %w", err)
			}
			return se.Name.Local, v, nil
		}
	}
}

func decodeElement(dec *xml.Decoder, start xml.StartElement) (any, error) {
	var attrs map[string]any
	for _, a := range start.Attr {
		if a.Name.Space == "xmlns" || a.Name.Local == "xmlns" {
			continue
		}
		if attrs == nil {
			attrs = map[string]any{}
		}
		attrs[a.Name.Local] = a.Value
	}
	var children map[string]any
	var text strings.Builder
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			v, err := decodeElement(dec, t)
			if err != nil {
				return nil, err
			}
			if children == nil {
				children = map[string]any{}
			}
			name := t.Name.Local
			switch prev := children[name].(type) {
			case nil:
				children[name] = v
			case []any:
				children[name] = append(prev, v)
			default:
				children[name] = []any{prev, v}
			}
		case xml.CharData:
			text.Write(t)
		case xml.EndElement:
			if attrs == nil && children == nil {
				return text.String(), nil
			}
			out := make(map[string]any, len(children)+2)
			for k, v := range children {
				out[k] = v
			}
			if attrs != nil {
				out[XMLAttrKey] = attrs
			}
			if s := strings.TrimSpace(text.String()); s != "" {
				out[XMLTextKey] = s
			}
			return out, nil
		}
	}
}

// EncodeXML writes v as an element named name. Map keys are written in sorted
// order; nil values are omitted.
func EncodeXML(w io.Writer, name string, v any) error {
	enc := xml.NewEncoder(w)
	if err := encodeElement(enc, name, v); err != nil {
		return fmt.Errorf("source: encode xml: %w", err)
	}
	return enc.Flush()
}

func encodeElement(enc *xml.Encoder, name string, v any) error {
	switch t := v.(type) {
	case nil:
		return nil
	case []any:
		for _, item := range t {
			if err := encodeElement(enc, name, item); err != nil {
				return err
			}
		}
		return nil
	case map[string]any:
		start := xml.StartElement{Name: xml.Name{Local: name}}
		if attrs, ok := t[XMLAttrKey].(map[string]any); ok {
			for _, k := range sortedKeys(attrs) {
				if attrs[k] == nil {
					continue
				}
				start.Attr = append(start.Attr, xml.Attr{Name: xml.Name{Local: k}, Value: scalarText(attrs[k])})
			}
		}
		if err := enc.EncodeToken(start); err != nil {
			return err
		}
		if txt, ok := t[XMLTextKey]; ok && txt != nil {
			if err := enc.EncodeToken(xml.CharData(scalarText(txt))); err != nil {
				return err
			}
		}
		for _, k := range sortedKeys(t) {
			if k == XMLAttrKey || k == XMLTextKey {
				continue
			}
			if err := encodeElement(enc, k, t[k]); err != nil {
				return err
			}
		}
		return enc.EncodeToken(start.End())
	default:
		start := xml.StartElement{Name: xml.Name{Local: name}}
		if err := enc.EncodeToken(start); err != nil {
			return err
		}
		if err := enc.EncodeToken(xml.CharData(scalarText(t))); err != nil {
			return err
		}
		return enc.EncodeToken(start.End())
	}
}

func scalarText(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case j.Number:
		return t.String()
	case *big.Int:
		return t.String()
	default:
		return fmt.Sprint(t)
	}
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
