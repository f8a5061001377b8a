// Package source decodes caller-supplied JSON or YAML into the generic
// values (map[string]any, []any, json.Number, ...) the verity engine
// validates. The JSON driver is pluggable; the default is backed by
// goccy/go-json with numbers preserved as json.Number so range predicates
// never lose precision.
package source

import (
	"bytes"
	"io"

	gojson "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// Driver converts raw JSON bytes into a generic value.
type Driver interface {
	Decode(data []byte) (any, error)
	DecodeReader(r io.Reader) (any, error)
	Name() string
}

var currentDriver Driver = goJSONDriver{}

// SetDriver replaces the global JSON driver; nil values are ignored.
func SetDriver(d Driver) {
	if d != nil {
		currentDriver = d
	}
}

// UseDefaultDriver restores the goccy/go-json backed driver.
func UseDefaultDriver() { currentDriver = goJSONDriver{} }

// JSON decodes a JSON document into a generic value using the current
// driver.
func JSON(data []byte) (any, error) { return currentDriver.Decode(data) }

// JSONReader decodes a JSON document from r using the current driver.
func JSONReader(r io.Reader) (any, error) { return currentDriver.DecodeReader(r) }

// YAML decodes a YAML document into a generic value. Mappings come back as
// map[string]any per yaml.v3 semantics.
func YAML(data []byte) (any, error) {
	var v any
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return v, nil
}

// YAMLReader decodes a single YAML document from r.
func YAMLReader(r io.Reader) (any, error) {
	var v any
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}

// goJSONDriver is the default go-json backed driver.
type goJSONDriver struct{}

func (goJSONDriver) Decode(data []byte) (any, error) {
	return decodeGoJSON(bytes.NewReader(data))
}

func (goJSONDriver) DecodeReader(r io.Reader) (any, error) {
	return decodeGoJSON(r)
}

func (goJSONDriver) Name() string { return "go-json" }

func decodeGoJSON(r io.Reader) (any, error) {
	dec := gojson.NewDecoder(r)
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}
