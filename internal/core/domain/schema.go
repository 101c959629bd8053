package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// FieldType classifies a schema field's data type.
type FieldType string

// Recognised field types.
const (
	FieldTypeString  FieldType = "String"
	FieldTypeInteger FieldType = "Integer"
	FieldTypeDecimal FieldType = "Decimal"
	FieldTypeDate    FieldType = "Date"
	FieldTypeBoolean FieldType = "Boolean"
)

// IsValid returns true if the field type is recognised.
func (t FieldType) IsValid() bool {
	switch t {
	case FieldTypeString, FieldTypeInteger, FieldTypeDecimal, FieldTypeDate, FieldTypeBoolean:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (t FieldType) String() string {
	return string(t)
}

// ParseFieldType resolves a type name case-insensitively.
// Unrecognised names resolve to String rather than failing; schema
// documents arrive from an AI backend and from hand-edited text, and a
// wrong type must not make the whole document unusable.
func ParseFieldType(s string) FieldType {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "integer", "int":
		return FieldTypeInteger
	case "decimal", "float", "number":
		return FieldTypeDecimal
	case "date", "datetime":
		return FieldTypeDate
	case "boolean", "bool":
		return FieldTypeBoolean
	default:
		return FieldTypeString
	}
}

// FieldDescriptor carries per-field type and sample metadata.
type FieldDescriptor struct {
	Type   FieldType `json:"type"`
	Sample string    `json:"sample"`
}

// descriptorJSON is the canonical wire form of a descriptor.
type descriptorJSON struct {
	Type   string `json:"type"`
	Sample any    `json:"sample"`
}

// UnmarshalJSON resolves the shape-shifting field value used across the
// assistant contract and sniffed samples into one descriptor form:
//
//   - {"type": "Integer", "sample": "7"} - full descriptor
//   - "Integer"                          - bare type name (target discovery)
//   - 7, 3.5, true, "x"                  - literal sample value (sniffed data)
//
// The union is resolved exactly once, here, at ingestion.
func (d *FieldDescriptor) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return fmt.Errorf("%w: empty field descriptor", ErrParse)
	}

	if trimmed[0] == '{' {
		var obj descriptorJSON
		if err := json.Unmarshal(trimmed, &obj); err != nil {
			return fmt.Errorf("%w: %v", ErrParse, err)
		}
		d.Type = ParseFieldType(obj.Type)
		d.Sample = literalToSample(obj.Sample)
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.UseNumber()
	var literal any
	if err := dec.Decode(&literal); err != nil {
		return fmt.Errorf("%w: %v", ErrParse, err)
	}

	// A bare string naming a known type is a type annotation,
	// anything else is a sample literal.
	if s, ok := literal.(string); ok {
		if typed := ParseFieldType(s); typed != FieldTypeString || isStringTypeName(s) {
			d.Type = typed
			d.Sample = ""
			return nil
		}
		d.Type = FieldTypeString
		d.Sample = s
		return nil
	}

	d.Type = literalType(literal)
	d.Sample = literalToSample(literal)
	return nil
}

func isStringTypeName(s string) bool {
	return strings.EqualFold(strings.TrimSpace(s), "string")
}

// literalType infers a field type from a decoded JSON literal.
func literalType(v any) FieldType {
	switch n := v.(type) {
	case json.Number:
		if strings.ContainsAny(n.String(), ".eE") {
			return FieldTypeDecimal
		}
		return FieldTypeInteger
	case bool:
		return FieldTypeBoolean
	default:
		return FieldTypeString
	}
}

// literalToSample renders a decoded JSON literal as a sample string.
func literalToSample(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case json.Number:
		return s.String()
	case float64:
		// Sample came through a plain decode; keep integral values clean.
		if s == float64(int64(s)) {
			return fmt.Sprintf("%d", int64(s))
		}
		return fmt.Sprintf("%g", s)
	default:
		return fmt.Sprintf("%v", s)
	}
}

// LineTemplate describes the shape of one repeating line-item group.
type LineTemplate map[string]FieldDescriptor

// SchemaDocument is the canonical header/lines shape shared by target
// schemas and analysed source fields.
//
// Lines holds zero or one template. Multiple distinct line shapes are not
// representable; producers collapse repeating structures into a single
// template. This mirrors a real limitation in the mapping flow and is
// deliberate - see DESIGN.md.
type SchemaDocument struct {
	Header map[string]FieldDescriptor `json:"header"`
	Lines  []LineTemplate             `json:"lines"`
}

// schemaDocumentJSON tolerates the two line encodings seen in the wild:
// an array of templates or a single bare template object.
type schemaDocumentJSON struct {
	Header map[string]FieldDescriptor `json:"header"`
	Lines  json.RawMessage            `json:"lines"`
}

// UnmarshalJSON decodes a schema document, accepting lines as either an
// array or a single object, and collapsing to at most one template.
func (s *SchemaDocument) UnmarshalJSON(data []byte) error {
	var raw schemaDocumentJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%w: %v", ErrParse, err)
	}

	s.Header = raw.Header
	s.Lines = nil

	trimmed := bytes.TrimSpace(raw.Lines)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}

	switch trimmed[0] {
	case '[':
		var templates []LineTemplate
		if err := json.Unmarshal(trimmed, &templates); err != nil {
			return fmt.Errorf("%w: %v", ErrParse, err)
		}
		s.Lines = templates
	case '{':
		var template LineTemplate
		if err := json.Unmarshal(trimmed, &template); err != nil {
			return fmt.Errorf("%w: %v", ErrParse, err)
		}
		s.Lines = []LineTemplate{template}
	default:
		return fmt.Errorf("%w: lines must be an array or object", ErrParse)
	}

	s.Normalize()
	return nil
}

// ParseSchemaDocument decodes and normalizes a schema document from JSON.
func ParseSchemaDocument(data []byte) (*SchemaDocument, error) {
	var doc SchemaDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	doc.Normalize()
	return &doc, nil
}

// Normalize enforces the single-template invariant and ensures Header
// is non-nil. Extra templates beyond the first are merged into it:
// unseen field names are added, first-seen descriptors win.
func (s *SchemaDocument) Normalize() {
	if s.Header == nil {
		s.Header = map[string]FieldDescriptor{}
	}
	if len(s.Lines) <= 1 {
		return
	}
	merged := LineTemplate{}
	for _, template := range s.Lines {
		for name, desc := range template {
			if _, seen := merged[name]; !seen {
				merged[name] = desc
			}
		}
	}
	s.Lines = []LineTemplate{merged}
}

// LineTemplate returns the single line template, if present.
func (s *SchemaDocument) LineTemplate() (LineTemplate, bool) {
	if len(s.Lines) == 0 || len(s.Lines[0]) == 0 {
		return nil, false
	}
	return s.Lines[0], true
}

// SetLineTemplate replaces the line template, preserving the invariant.
func (s *SchemaDocument) SetLineTemplate(template LineTemplate) {
	if len(template) == 0 {
		s.Lines = nil
		return
	}
	s.Lines = []LineTemplate{template}
}

// IsEmpty reports whether the document carries no fields at all.
func (s *SchemaDocument) IsEmpty() bool {
	if s == nil {
		return true
	}
	_, hasLines := s.LineTemplate()
	return len(s.Header) == 0 && !hasLines
}

// FieldRefs returns every field reference in display form: header fields
// by name, line fields namespaced with the LinesPrefix. Sorted within each
// section so output is deterministic.
func (s *SchemaDocument) FieldRefs() []string {
	if s == nil {
		return nil
	}
	refs := make([]string, 0, len(s.Header))
	for name := range s.Header {
		refs = append(refs, name)
	}
	sort.Strings(refs)

	if template, ok := s.LineTemplate(); ok {
		lineRefs := make([]string, 0, len(template))
		for name := range template {
			lineRefs = append(lineRefs, LinesPrefix+name)
		}
		sort.Strings(lineRefs)
		refs = append(refs, lineRefs...)
	}
	return refs
}

// TypedProjection is the bare-types view of a schema document used for
// the source schema export: descriptors stripped down to type names.
type TypedProjection struct {
	Header map[string]string   `json:"header"`
	Lines  []map[string]string `json:"lines"`
}

// TypesOnly projects the document down to bare type strings.
func (s *SchemaDocument) TypesOnly() TypedProjection {
	projection := TypedProjection{
		Header: make(map[string]string, len(s.Header)),
		Lines:  []map[string]string{},
	}
	for name, desc := range s.Header {
		projection.Header[name] = typeOrDefault(desc.Type)
	}
	if template, ok := s.LineTemplate(); ok {
		lines := make(map[string]string, len(template))
		for name, desc := range template {
			lines[name] = typeOrDefault(desc.Type)
		}
		projection.Lines = append(projection.Lines, lines)
	}
	return projection
}

func typeOrDefault(t FieldType) string {
	if !t.IsValid() {
		return FieldTypeString.String()
	}
	return t.String()
}

// Clone returns a deep copy of the document.
func (s *SchemaDocument) Clone() *SchemaDocument {
	if s == nil {
		return nil
	}
	clone := &SchemaDocument{
		Header: make(map[string]FieldDescriptor, len(s.Header)),
	}
	for name, desc := range s.Header {
		clone.Header[name] = desc
	}
	if template, ok := s.LineTemplate(); ok {
		copied := make(LineTemplate, len(template))
		for name, desc := range template {
			copied[name] = desc
		}
		clone.Lines = []LineTemplate{copied}
	}
	return clone
}
