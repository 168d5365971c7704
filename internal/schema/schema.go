// Package schema wraps JSON Schema contracts for action inputs.
//
// A Contract is built once at registration time, resolved eagerly so a
// malformed schema fails at load rather than on first invocation, and then
// used to validate every raw input before the action handler runs. Contracts
// built with Object are strict: fields not declared in the contract are
// rejected.
package schema

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"
)

// Contract validates raw action input against a structural contract.
type Contract struct {
	schema   *jsonschema.Schema
	resolved *jsonschema.Resolved
}

// New resolves s into a Contract. The schema must be fully resolvable;
// resolution errors are registration-time failures.
func New(s *jsonschema.Schema) (*Contract, error) {
	if s == nil {
		return nil, fmt.Errorf("schema is required")
	}
	resolved, err := s.Resolve(nil)
	if err != nil {
		return nil, fmt.Errorf("resolve schema: %w", err)
	}
	return &Contract{schema: s, resolved: resolved}, nil
}

// MustNew resolves s and panics on failure. Intended for package-level
// action registration where a bad schema is a programming error.
func MustNew(s *jsonschema.Schema) *Contract {
	c, err := New(s)
	if err != nil {
		panic(err)
	}
	return c
}

// For infers a strict object contract from the struct type T, using the
// same json/jsonschema struct tags the MCP SDK understands.
func For[T any]() (*Contract, error) {
	s, err := jsonschema.For[T](nil)
	if err != nil {
		return nil, fmt.Errorf("infer schema: %w", err)
	}
	s.AdditionalProperties = falseSchema()
	return New(s)
}

// MustFor infers a contract from T and panics on failure.
func MustFor[T any]() *Contract {
	c, err := For[T]()
	if err != nil {
		panic(err)
	}
	return c
}

// Validate checks raw against the contract. A nil or empty raw value is
// treated as an empty object. The returned error carries the field and
// constraint that failed; the caller wraps it with the action name.
func (c *Contract) Validate(raw json.RawMessage) error {
	data := bytes.TrimSpace(raw)
	if len(data) == 0 {
		data = []byte("{}")
	}
	var value any
	if err := json.Unmarshal(data, &value); err != nil {
		return fmt.Errorf("decode input: %w", err)
	}
	if err := c.resolved.Validate(value); err != nil {
		return err
	}
	return nil
}

// JSON returns the underlying schema for host introspection. Callers must
// treat it as read-only.
func (c *Contract) JSON() *jsonschema.Schema {
	if c == nil {
		return nil
	}
	return c.schema
}

// Object builds a strict object schema from named property schemas.
// Properties absent from props are rejected at validation time.
func Object(props map[string]*jsonschema.Schema, required []string) *jsonschema.Schema {
	return &jsonschema.Schema{
		Type:                 "object",
		Properties:           props,
		Required:             required,
		AdditionalProperties: falseSchema(),
	}
}

// String builds a string property schema with length bounds. A maxLen of 0
// leaves the upper bound open.
func String(description string, minLen, maxLen int) *jsonschema.Schema {
	s := &jsonschema.Schema{
		Type:        "string",
		Description: description,
		MinLength:   intPtr(minLen),
	}
	if maxLen > 0 {
		s.MaxLength = intPtr(maxLen)
	}
	return s
}

// Pattern builds a string property schema constrained by a regular expression.
func Pattern(description, pattern string) *jsonschema.Schema {
	return &jsonschema.Schema{
		Type:        "string",
		Description: description,
		Pattern:     pattern,
	}
}

// Int builds an integer property schema bounded to [min, max].
func Int(description string, min, max int64) *jsonschema.Schema {
	return &jsonschema.Schema{
		Type:        "integer",
		Description: description,
		Minimum:     floatPtr(float64(min)),
		Maximum:     floatPtr(float64(max)),
	}
}

// falseSchema matches no instance; assigning it to additionalProperties
// rejects undeclared fields.
func falseSchema() *jsonschema.Schema {
	return &jsonschema.Schema{Not: &jsonschema.Schema{}}
}

func intPtr(v int) *int { return &v }

func floatPtr(v float64) *float64 { return &v }
