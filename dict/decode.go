package dict

import (
	"bytes"
	"encoding/json"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// DecodeJSON reads one JSON document keeping object key order.
// Objects become *Dict, arrays []any, integral numbers int and other numbers float64.
func DecodeJSON(r io.Reader) (any, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	return decodeJSONValue(dec)
}

// DecodeJSONAll reads a stream of concatenated JSON documents.
func DecodeJSONAll(r io.Reader) ([]any, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	var docs []any
	for dec.More() {
		doc, err := decodeJSONValue(dec)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

func decodeJSONValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, errors.Wrap(err, "json token")
	}
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			d := New()
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, errors.Wrap(err, "json object key")
				}
				key, ok := keyTok.(string)
				if !ok {
					return nil, errors.Errorf("unexpected json object key %v", keyTok)
				}
				value, err := decodeJSONValue(dec)
				if err != nil {
					return nil, errors.Wrapf(err, "key %s", key)
				}
				d.Set(key, value)
			}
			if _, err := dec.Token(); err != nil {
				return nil, errors.Wrap(err, "json object end")
			}
			return d, nil
		case '[':
			list := []any{}
			for dec.More() {
				value, err := decodeJSONValue(dec)
				if err != nil {
					return nil, errors.Wrapf(err, "index %d", len(list))
				}
				list = append(list, value)
			}
			if _, err := dec.Token(); err != nil {
				return nil, errors.Wrap(err, "json array end")
			}
			return list, nil
		default:
			return nil, errors.Errorf("unexpected json delimiter %v", t)
		}
	case json.Number:
		return number(t)
	default:
		return t, nil
	}
}

func number(n json.Number) (any, error) {
	s := n.String()
	if !strings.ContainsAny(s, ".eE") {
		if i, err := strconv.Atoi(s); err == nil {
			return i, nil
		}
	}
	f, err := n.Float64()
	if err != nil {
		return nil, errors.Wrapf(err, "json number %s", s)
	}
	return f, nil
}

// DecodeYAML reads every document of a YAML stream keeping mapping key order.
// Values are converted the same way as by DecodeJSON.
func DecodeYAML(data []byte) ([]any, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	var docs []any
	for {
		var node yaml.Node
		if err := dec.Decode(&node); errors.Is(err, io.EOF) {
			return docs, nil
		} else if err != nil {
			return nil, errors.Wrap(err, "yaml decode")
		}
		doc, err := fromYAML(&node)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
}

func fromYAML(node *yaml.Node) (any, error) {
	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			return nil, nil
		}
		return fromYAML(node.Content[0])
	case yaml.AliasNode:
		return fromYAML(node.Alias)
	case yaml.MappingNode:
		d := New()
		for i := 0; i+1 < len(node.Content); i += 2 {
			key, value := node.Content[i], node.Content[i+1]
			v, err := fromYAML(value)
			if err != nil {
				return nil, errors.Wrapf(err, "key %s", key.Value)
			}
			d.Set(key.Value, v)
		}
		return d, nil
	case yaml.SequenceNode:
		list := make([]any, 0, len(node.Content))
		for i, item := range node.Content {
			v, err := fromYAML(item)
			if err != nil {
				return nil, errors.Wrapf(err, "index %d", i)
			}
			list = append(list, v)
		}
		return list, nil
	case yaml.ScalarNode:
		return yamlScalar(node)
	default:
		return nil, errors.Errorf("unsupported yaml node kind %v at line %d", node.Kind, node.Line)
	}
}

func yamlScalar(node *yaml.Node) (any, error) {
	switch node.ShortTag() {
	case "!!null":
		return nil, nil
	case "!!bool":
		var b bool
		err := node.Decode(&b)
		return b, errors.Wrapf(err, "line %d", node.Line)
	case "!!int":
		var i int
		err := node.Decode(&i)
		return i, errors.Wrapf(err, "line %d", node.Line)
	case "!!float":
		var f float64
		err := node.Decode(&f)
		return f, errors.Wrapf(err, "line %d", node.Line)
	default:
		return node.Value, nil
	}
}
