package xmlfile

import (
	"context"
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/dextr-labs/dextr-cli/internal/core/domain"
	"github.com/dextr-labs/dextr-cli/internal/core/ports/driven"
)

// Ensure Sniffer implements the interface.
var _ driven.Sniffer = (*Sniffer)(nil)

// Sniffer handles XML samples. The document root's immediate children
// are classified in document order:
//
//   - two or more same-tag children inside an element form a repeating
//     line-item group: one row per occurrence, columns named by child
//     tags, values from child text
//   - a single nested object is flattened into header fields named
//     "ParentTag/ChildTag"
//   - a childless element is a scalar header field named by its own tag
//
// Only the first repeating group encountered is kept; the document
// model holds a single line template by design.
type Sniffer struct{}

// New creates a new XML sniffer.
func New() *Sniffer {
	return &Sniffer{}
}

// Extensions returns the file extensions this sniffer handles.
func (s *Sniffer) Extensions() []string {
	return []string{"xml"}
}

// node is a generic DOM-ish element: tag, text content, child elements.
type node struct {
	XMLName  xml.Name
	Text     string `xml:",chardata"`
	Children []node `xml:",any"`
}

func (n *node) tag() string {
	return n.XMLName.Local
}

func (n *node) text() string {
	return strings.TrimSpace(n.Text)
}

// Sniff derives a schema document from the sample.
func (s *Sniffer) Sniff(_ context.Context, file driven.SampleFile) (*domain.SchemaDocument, error) {
	var root node
	if err := xml.Unmarshal([]byte(file.Content), &root); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrParse, err)
	}

	doc := &domain.SchemaDocument{Header: map[string]domain.FieldDescriptor{}}
	haveLines := false

	for i := range root.Children {
		child := &root.Children[i]

		if len(child.Children) == 0 {
			doc.Header[child.tag()] = domain.FieldDescriptor{
				Type:   domain.FieldTypeString,
				Sample: child.text(),
			}
			continue
		}

		if isRepeatingGroup(child) {
			if haveLines {
				continue // first group wins
			}
			doc.SetLineTemplate(collapseGroup(child))
			haveLines = true
			continue
		}

		// Single nested object: flatten into Parent/Child header keys.
		for j := range child.Children {
			sub := &child.Children[j]
			name := child.tag() + "/" + sub.tag()
			doc.Header[name] = domain.FieldDescriptor{
				Type:   domain.FieldTypeString,
				Sample: sub.text(),
			}
		}
	}

	return doc, nil
}

// isRepeatingGroup reports whether an element's children form a
// repeating line-item group: at least two children sharing a tag name.
func isRepeatingGroup(n *node) bool {
	return len(n.Children) >= 2 && n.Children[0].tag() == n.Children[1].tag()
}

// collapseGroup folds the group's rows into one line template: union of
// column names across occurrences, first-seen sample wins.
func collapseGroup(group *node) domain.LineTemplate {
	template := domain.LineTemplate{}
	for i := range group.Children {
		row := &group.Children[i]
		for j := range row.Children {
			column := &row.Children[j]
			if _, seen := template[column.tag()]; seen {
				continue
			}
			template[column.tag()] = domain.FieldDescriptor{
				Type:   domain.FieldTypeString,
				Sample: column.text(),
			}
		}
	}
	return template
}
