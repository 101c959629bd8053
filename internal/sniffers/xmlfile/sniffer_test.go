package xmlfile

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dextr-labs/dextr-cli/internal/core/domain"
	"github.com/dextr-labs/dextr-cli/internal/core/ports/driven"
)

func sniff(t *testing.T, content string) *domain.SchemaDocument {
	t.Helper()
	doc, err := New().Sniff(context.Background(), driven.SampleFile{Name: "order.xml", Content: content})
	require.NoError(t, err)
	return doc
}

// TestSniff_ScalarHeaderFields tests childless root children
func TestSniff_ScalarHeaderFields(t *testing.T) {
	doc := sniff(t, `<Order><InvoiceNo>100</InvoiceNo><Customer>ACME</Customer></Order>`)

	require.Len(t, doc.Header, 2)
	assert.Equal(t, "100", doc.Header["InvoiceNo"].Sample)
	assert.Equal(t, "ACME", doc.Header["Customer"].Sample)
	assert.Empty(t, doc.Lines)
}

// TestSniff_RepeatingGroup tests same-tag children forming lines
func TestSniff_RepeatingGroup(t *testing.T) {
	doc := sniff(t, `<Order>
		<InvoiceNo>100</InvoiceNo>
		<Items>
			<Item><SKU>A</SKU><Qty>5</Qty></Item>
			<Item><SKU>B</SKU><Qty>3</Qty></Item>
		</Items>
	</Order>`)

	assert.Equal(t, "100", doc.Header["InvoiceNo"].Sample)

	template, ok := doc.LineTemplate()
	require.True(t, ok)
	assert.Len(t, template, 2)
	assert.Equal(t, "A", template["SKU"].Sample, "first occurrence wins")
	assert.Equal(t, "5", template["Qty"].Sample)
}

// TestSniff_SingleNestedObjectFlattened tests Parent/Child flattening
func TestSniff_SingleNestedObjectFlattened(t *testing.T) {
	doc := sniff(t, `<Order>
		<BillTo><Name>ACME</Name><City>Oslo</City></BillTo>
	</Order>`)

	require.Len(t, doc.Header, 2)
	assert.Equal(t, "ACME", doc.Header["BillTo/Name"].Sample)
	assert.Equal(t, "Oslo", doc.Header["BillTo/City"].Sample)
	assert.Empty(t, doc.Lines)
}

// TestSniff_FirstGroupWins tests the single-repeating-group limitation
func TestSniff_FirstGroupWins(t *testing.T) {
	doc := sniff(t, `<Order>
		<Items>
			<Item><SKU>A</SKU></Item>
			<Item><SKU>B</SKU></Item>
		</Items>
		<Taxes>
			<Tax><Code>VAT</Code></Tax>
			<Tax><Code>ENV</Code></Tax>
		</Taxes>
	</Order>`)

	require.Len(t, doc.Lines, 1)
	template := doc.Lines[0]
	assert.Contains(t, template, "SKU")
	assert.NotContains(t, template, "Code")
}

// TestSniff_ColumnUnionAcrossRows tests template collapse over uneven rows
func TestSniff_ColumnUnionAcrossRows(t *testing.T) {
	doc := sniff(t, `<Order>
		<Items>
			<Item><SKU>A</SKU></Item>
			<Item><SKU>B</SKU><Discount>0.1</Discount></Item>
		</Items>
	</Order>`)

	template, ok := doc.LineTemplate()
	require.True(t, ok)
	assert.Len(t, template, 2)
	assert.Equal(t, "A", template["SKU"].Sample)
	assert.Equal(t, "0.1", template["Discount"].Sample)
}

// TestSniff_Malformed tests parse failure wrapping
func TestSniff_Malformed(t *testing.T) {
	_, err := New().Sniff(context.Background(), driven.SampleFile{Name: "x.xml", Content: `<Order><Open></Order>`})
	assert.ErrorIs(t, err, domain.ErrParse)
}

// TestSniff_MixedDocument tests scalars, nested object and group together
func TestSniff_MixedDocument(t *testing.T) {
	doc := sniff(t, `<Invoice>
		<No>42</No>
		<Seller><Name>North</Name></Seller>
		<Lines>
			<Line><Item>X</Item></Line>
			<Line><Item>Y</Item></Line>
		</Lines>
	</Invoice>`)

	assert.Equal(t, "42", doc.Header["No"].Sample)
	assert.Equal(t, "North", doc.Header["Seller/Name"].Sample)

	template, ok := doc.LineTemplate()
	require.True(t, ok)
	assert.Equal(t, "X", template["Item"].Sample)
	assert.LessOrEqual(t, len(doc.Lines), 1)
}

// TestExtensions tests extension registration
func TestExtensions(t *testing.T) {
	assert.Equal(t, []string{"xml"}, New().Extensions())
}
