// Package documenter implements the search index wire format written by
// Documenter: a {"docs": [...]} object, usually assigned to a JavaScript
// variable in search_index.js.
package documenter

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"regexp"
	"strings"
	"sync"

	"github.com/fwojciec/docidx"
	"github.com/santhosh-tekuri/jsonschema/v6"
)

// DefaultVariable is the variable Documenter assigns the index to.
const DefaultVariable = "documenterSearchIndex"

const schemaURL = "https://docidx.dev/schema/search_index.json"

//go:embed schema.json
var schemaJSON []byte

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

// assignmentPrefix matches a leading `var name =` (or let/const) statement.
var assignmentPrefix = regexp.MustCompile(`^(?:var|let|const)\s+[A-Za-z_$][A-Za-z0-9_$]*\s*=\s*`)

// Ensure Codec implements docidx.Codec at compile time.
var _ docidx.Codec = (*Codec)(nil)

// Codec reads and writes Documenter search indexes.
type Codec struct {
	variable string
}

// Option configures a Codec.
type Option func(*Codec)

// WithVariable sets the JavaScript variable Encode assigns the index to.
// An empty name makes Encode write plain JSON.
func WithVariable(name string) Option {
	return func(c *Codec) {
		c.variable = name
	}
}

// NewCodec creates a Codec that writes search_index.js files.
func NewCodec(opts ...Option) *Codec {
	c := &Codec{variable: DefaultVariable}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Decode parses a search index from r. Both the JavaScript form and plain
// JSON are accepted. Any shape violation is reported as EPARSE.
func (c *Codec) Decode(r io.Reader) (*docidx.Index, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read search index: %w", err)
	}

	data := StripAssignment(raw)
	if len(data) == 0 {
		return nil, docidx.Errorf(docidx.EPARSE, "empty search index")
	}

	sch, err := compiledSchema()
	if err != nil {
		return nil, err
	}

	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return nil, docidx.Errorf(docidx.EPARSE, "invalid JSON: %v", err)
	}
	if err := sch.Validate(inst); err != nil {
		return nil, docidx.Errorf(docidx.EPARSE, "unexpected search index shape: %s", describeValidationError(err))
	}

	var idx docidx.Index
	if err := json.Unmarshal(data, &idx); err != nil {
		return nil, docidx.Errorf(docidx.EPARSE, "invalid search index: %v", err)
	}
	if idx.Entries == nil {
		idx.Entries = []*docidx.SearchEntry{}
	}
	if err := idx.Validate(); err != nil {
		return nil, docidx.Errorf(docidx.EPARSE, "%s", docidx.ErrorMessage(err))
	}

	return &idx, nil
}

// Encode writes idx in Documenter's layout: one line opening the docs
// array, the entries, and the closing brace.
func (c *Codec) Encode(w io.Writer, idx *docidx.Index) error {
	entries := []*docidx.SearchEntry{}
	if idx != nil && idx.Entries != nil {
		entries = idx.Entries
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(entries); err != nil {
		return fmt.Errorf("failed to encode entries: %w", err)
	}
	body := bytes.TrimRight(buf.Bytes(), "\n")

	var out bytes.Buffer
	if c.variable != "" {
		fmt.Fprintf(&out, "var %s = ", c.variable)
	}
	out.WriteString("{\"docs\":\n")
	out.Write(body)
	out.WriteString("\n}\n")

	_, err := w.Write(out.Bytes())
	return err
}

// StripAssignment removes a JavaScript variable assignment around a JSON
// value, returning the JSON text.
func StripAssignment(raw []byte) []byte {
	data := bytes.TrimSpace(raw)
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	if loc := assignmentPrefix.FindIndex(data); loc != nil {
		data = data[loc[1]:]
	}
	data = bytes.TrimSpace(data)
	data = bytes.TrimSuffix(data, []byte(";"))
	return bytes.TrimSpace(data)
}

func compiledSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaJSON))
		if err != nil {
			schemaErr = fmt.Errorf("failed to parse embedded schema: %w", err)
			return
		}
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource(schemaURL, doc); err != nil {
			schemaErr = fmt.Errorf("failed to add embedded schema: %w", err)
			return
		}
		schema, schemaErr = compiler.Compile(schemaURL)
	})
	return schema, schemaErr
}

// describeValidationError flattens a schema validation error to its leaf
// causes, each prefixed with the JSON pointer of the offending value.
func describeValidationError(err error) string {
	verr, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return err.Error()
	}

	var msgs []string
	var walk func(*jsonschema.ValidationError)
	walk = func(e *jsonschema.ValidationError) {
		if len(e.Causes) == 0 {
			path := "/" + strings.Join(e.InstanceLocation, "/")
			msgs = append(msgs, fmt.Sprintf("at %s: %s", path, leafMessage(e)))
			return
		}
		for _, cause := range e.Causes {
			walk(cause)
		}
	}
	walk(verr)

	if len(msgs) == 0 {
		return verr.Error()
	}
	return strings.Join(msgs, "; ")
}

// leafMessage returns the last line of a leaf error, which jsonschema
// renders as "at '<path>': <message>".
func leafMessage(e *jsonschema.ValidationError) string {
	msg := strings.TrimSpace(e.Error())
	if i := strings.LastIndex(msg, "\n"); i >= 0 {
		msg = strings.TrimSpace(msg[i+1:])
	}
	if _, after, ok := strings.Cut(msg, "': "); ok {
		msg = after
	}
	return strings.TrimPrefix(msg, "- ")
}
