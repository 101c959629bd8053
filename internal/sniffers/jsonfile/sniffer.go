package jsonfile

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/dextr-labs/dextr-cli/internal/core/domain"
	"github.com/dextr-labs/dextr-cli/internal/core/ports/driven"
)

// Ensure Sniffer implements the interface.
var _ driven.Sniffer = (*Sniffer)(nil)

// Sniffer handles JSON samples. Top-level keys are partitioned: scalar
// values become header fields carrying the literal as sample, the first
// array value becomes the repeating line-item group, and nested
// non-array objects are silently skipped.
//
// Only one array is retained even when several exist - the document
// model holds a single line template by design. Key order in JSON
// objects is not observable through a Go map, so "first array wins"
// means first in the document's byte order.
type Sniffer struct{}

// New creates a new JSON sniffer.
func New() *Sniffer {
	return &Sniffer{}
}

// Extensions returns the file extensions this sniffer handles.
func (s *Sniffer) Extensions() []string {
	return []string{"json"}
}

// Sniff derives a schema document from the sample.
func (s *Sniffer) Sniff(_ context.Context, file driven.SampleFile) (*domain.SchemaDocument, error) {
	dec := json.NewDecoder(strings.NewReader(file.Content))
	dec.UseNumber()

	var data map[string]any
	if err := dec.Decode(&data); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrParse, err)
	}

	doc := &domain.SchemaDocument{Header: map[string]domain.FieldDescriptor{}}

	arrayKey := firstArrayKey(file.Content, data)
	for key, value := range data {
		switch v := value.(type) {
		case []any:
			if key != arrayKey {
				continue // design limitation: a single repeating group
			}
			doc.SetLineTemplate(collapseRows(v))
		case map[string]any:
			// Nested objects are neither header nor lines; skipped.
		default:
			doc.Header[key] = literalDescriptor(v)
		}
	}

	return doc, nil
}

// firstArrayKey finds the array-valued key appearing earliest in the
// raw document text, so the retained group matches document order.
func firstArrayKey(raw string, data map[string]any) string {
	var keys []string
	for key, value := range data {
		if _, ok := value.([]any); ok {
			keys = append(keys, key)
		}
	}
	if len(keys) == 0 {
		return ""
	}
	sort.Slice(keys, func(i, j int) bool {
		return keyOffset(raw, keys[i]) < keyOffset(raw, keys[j])
	})
	return keys[0]
}

func keyOffset(raw, key string) int {
	quoted, err := json.Marshal(key)
	if err != nil {
		return len(raw)
	}
	if idx := strings.Index(raw, string(quoted)); idx >= 0 {
		return idx
	}
	return len(raw)
}

// collapseRows folds the repeating rows into one line template: union
// of keys across object rows, first-seen descriptor wins. Non-object
// rows carry no field names and are skipped.
func collapseRows(rows []any) domain.LineTemplate {
	template := domain.LineTemplate{}
	for _, row := range rows {
		obj, ok := row.(map[string]any)
		if !ok {
			continue
		}
		for key, value := range obj {
			if _, seen := template[key]; seen {
				continue
			}
			switch value.(type) {
			case map[string]any, []any:
				// Line records are flat; nested structure is skipped.
			default:
				template[key] = literalDescriptor(value)
			}
		}
	}
	return template
}

// literalDescriptor resolves a decoded JSON literal into a descriptor.
func literalDescriptor(v any) domain.FieldDescriptor {
	switch value := v.(type) {
	case nil:
		return domain.FieldDescriptor{Type: domain.FieldTypeString}
	case bool:
		return domain.FieldDescriptor{Type: domain.FieldTypeBoolean, Sample: fmt.Sprintf("%t", value)}
	case json.Number:
		t := domain.FieldTypeInteger
		if strings.ContainsAny(value.String(), ".eE") {
			t = domain.FieldTypeDecimal
		}
		return domain.FieldDescriptor{Type: t, Sample: value.String()}
	case string:
		return domain.FieldDescriptor{Type: domain.FieldTypeString, Sample: value}
	default:
		return domain.FieldDescriptor{Type: domain.FieldTypeString, Sample: fmt.Sprintf("%v", value)}
	}
}
