package domain

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNormalizeFieldRef tests prefix stripping and case folding
func TestNormalizeFieldRef(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain name", "CustomerName", "customername"},
		{"lines display prefix", "Lines / SKU", "sku"},
		{"lines slash no spaces", "Lines/SKU", "sku"},
		{"lines dot", "lines.sku", "sku"},
		{"header prefix", "HEADER.invoice_no", "invoice_no"},
		{"line items prefix", "LINE_ITEMS.qty", "qty"},
		{"mixed case prefix", "LiNeS / Qty", "qty"},
		{"surrounding whitespace", "  Lines / SKU  ", "sku"},
		{"punctuation preserved", "No.", "no."},
		{"only first segment stripped", "Lines / Lines / SKU", "lines / sku"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeFieldRef(tt.input))
		})
	}
}

// TestSameFieldRef tests normalized equality across namespaces
func TestSameFieldRef(t *testing.T) {
	assert.True(t, SameFieldRef("Lines / SKU", "LINE_ITEMS.sku"))
	assert.True(t, SameFieldRef("HEADER.OrderID", "orderid"))
	assert.False(t, SameFieldRef("No_", "No."))
}

// TestMappingSet_SetLink_Insert tests a simple insert
func TestMappingSet_SetLink_Insert(t *testing.T) {
	var set MappingSet

	result := set.SetLink(Link{Source: "CustName", Target: "Customer", Rule: "direct", Confidence: 0.4})

	require.Len(t, result, 1)
	assert.Equal(t, "CustName", result[0].Source)
	assert.Equal(t, "Customer", result[0].Target)
	assert.Equal(t, 1.0, result[0].Confidence, "manual edits are full confidence")
}

// TestMappingSet_SetLink_EvictsBothPartners tests dual eviction
func TestMappingSet_SetLink_EvictsBothPartners(t *testing.T) {
	set := MappingSet{
		{Source: "A", Target: "X", Confidence: 1},
		{Source: "B", Target: "Y", Confidence: 1},
	}

	// Candidate steals its source from the first link and its target
	// from the second; both must be evicted.
	result := set.SetLink(Link{Source: "A", Target: "Y"})

	require.Len(t, result, 1)
	assert.Equal(t, "A", result[0].Source)
	assert.Equal(t, "Y", result[0].Target)
	assert.NoError(t, result.Validate())
}

// TestMappingSet_SetLink_Unmap tests sentinel-driven removal
func TestMappingSet_SetLink_Unmap(t *testing.T) {
	set := MappingSet{
		{Source: "A", Target: "X", Confidence: 1},
		{Source: "B", Target: "Y", Confidence: 1},
	}

	result := set.SetLink(Link{Source: Unmapped, Target: "X"})

	require.Len(t, result, 1)
	assert.Equal(t, "B", result[0].Source)

	result = result.SetLink(Link{Source: "B", Target: Unmapped})
	assert.Empty(t, result)
}

// TestMappingSet_SetLink_Idempotent tests repeat application
func TestMappingSet_SetLink_Idempotent(t *testing.T) {
	set := MappingSet{{Source: "A", Target: "X", Confidence: 1}}
	candidate := Link{Source: "B", Target: "Y", Rule: "copy"}

	once := set.SetLink(candidate)
	twice := once.SetLink(candidate)

	assert.ElementsMatch(t, once, twice)
}

// TestMappingSet_SetLink_DoesNotMutateReceiver tests copy-on-write semantics
func TestMappingSet_SetLink_DoesNotMutateReceiver(t *testing.T) {
	set := MappingSet{{Source: "A", Target: "X", Confidence: 1}}

	_ = set.SetLink(Link{Source: "A", Target: "Z"})

	require.Len(t, set, 1)
	assert.Equal(t, "X", set[0].Target)
}

// TestMappingSet_SetLink_NormalizedEviction tests eviction across namespaces
func TestMappingSet_SetLink_NormalizedEviction(t *testing.T) {
	set := MappingSet{{Source: "LINE_ITEMS.sku", Target: "Lines / SKU", Confidence: 0.9}}

	result := set.SetLink(Link{Source: "Lines / sku", Target: "Lines / SKU"})

	require.Len(t, result, 1)
	assert.Equal(t, "Lines / sku", result[0].Source)
}

// TestMappingSet_SetLink_UniquenessProperty tests the invariant under
// random insertion sequences: after every step no two links may share a
// normalized source or target.
func TestMappingSet_SetLink_UniquenessProperty(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	sources := []string{"a", "HEADER.a", "b", "c", "Lines / d", "lines.d", "e", Unmapped}
	targets := []string{"X", "HEADER.x", "Y", "Z", "Lines / W", "LINE_ITEMS.w", "V", Unmapped}

	var set MappingSet
	for i := 0; i < 500; i++ {
		candidate := Link{
			Source: sources[rng.Intn(len(sources))],
			Target: targets[rng.Intn(len(targets))],
			Rule:   fmt.Sprintf("step-%d", i),
		}
		set = set.SetLink(candidate)

		require.NoError(t, set.Validate(), "invariant violated at step %d by %+v", i, candidate)
	}
}

// TestMappingSet_LinkTouching tests lookup on either side
func TestMappingSet_LinkTouching(t *testing.T) {
	set := MappingSet{
		{Source: "CustName", Target: "Customer", Rule: "direct", Confidence: 0.95},
		{Source: "Lines / SKU", Target: "Lines / ItemNo", Confidence: 0.8},
	}

	link, found := set.LinkTouching("customer")
	require.True(t, found)
	assert.Equal(t, "CustName", link.Source)

	link, found = set.LinkTouching("LINE_ITEMS.itemno")
	require.True(t, found)
	assert.Equal(t, "Lines / SKU", link.Source)

	_, found = set.LinkTouching("missing")
	assert.False(t, found)
}

// TestReplaceAll tests wholesale suggestion merge
func TestReplaceAll(t *testing.T) {
	proposed := []Link{
		{Source: "CustName", Target: "Customer", Confidence: 0.9},
		{Source: "", Target: "Email", Confidence: 0.5},
		{Source: Unmapped, Target: "Phone", Confidence: 0.5},
		{Source: "custname", Target: "ContactName", Confidence: 0.7}, // duplicate source
		{Source: "City", Target: "customer", Confidence: 0.7},        // duplicate target
		{Source: "Zip", Target: "PostalCode", Confidence: 0.6},
	}

	set := ReplaceAll(proposed)

	require.Len(t, set, 2)
	assert.Equal(t, "CustName", set[0].Source)
	assert.Equal(t, "Zip", set[1].Source)
	assert.NoError(t, set.Validate())
}

// TestResolveDisplayRefs tests resolution back to technical names
func TestResolveDisplayRefs(t *testing.T) {
	sourceRefs := []string{"No_", "Qty", "Lines / SKU"}
	targetRefs := []string{"No.", "Qty", "Lines / ItemNo"}

	resolved := ResolveDisplayRefs(
		Link{Source: "LINE_ITEMS.sku", Target: "lines.itemno", Rule: "r", Confidence: 0.8},
		sourceRefs, targetRefs,
	)

	assert.Equal(t, "Lines / SKU", resolved.Source)
	assert.Equal(t, "Lines / ItemNo", resolved.Target)

	// A side with no match resolves to the sentinel.
	resolved = ResolveDisplayRefs(Link{Source: "ghost", Target: "Qty"}, sourceRefs, targetRefs)
	assert.Equal(t, Unmapped, resolved.Source)
	assert.Equal(t, "Qty", resolved.Target)
}

// TestPrefillLink tests edit-dialog prefill for unmapped fields
func TestPrefillLink(t *testing.T) {
	targetRefs := []string{"No.", "Qty"}

	link := PrefillLink("No.", targetRefs)
	assert.Equal(t, Unmapped, link.Source)
	assert.Equal(t, "No.", link.Target)

	link = PrefillLink("No_", targetRefs)
	assert.Equal(t, "No_", link.Source)
	assert.Equal(t, Unmapped, link.Target)
}

// TestManualMappingBypassesSimilarity tests the end-to-end punctuation
// scenario: No_ maps to No. by explicit edit even though the normalized
// names differ, and Qty maps to Qty.
func TestManualMappingBypassesSimilarity(t *testing.T) {
	var set MappingSet

	set = set.SetLink(Link{Source: "No_", Target: "No.", Rule: "strip underscore"})
	set = set.SetLink(Link{Source: "Qty", Target: "Qty", Rule: "direct"})

	require.Len(t, set, 2)
	for _, link := range set {
		assert.Equal(t, 1.0, link.Confidence)
	}

	link, found := set.LinkTouching("No.")
	require.True(t, found)
	assert.Equal(t, "No_", link.Source)
}

// TestMappingSet_Validate tests invariant detection on loaded data
func TestMappingSet_Validate(t *testing.T) {
	good := MappingSet{{Source: "a", Target: "x"}, {Source: "b", Target: "y"}}
	assert.NoError(t, good.Validate())

	dupSource := MappingSet{{Source: "a", Target: "x"}, {Source: "HEADER.a", Target: "y"}}
	assert.ErrorIs(t, dupSource.Validate(), ErrInvalidInput)

	sentinel := MappingSet{{Source: Unmapped, Target: "x"}}
	assert.ErrorIs(t, sentinel.Validate(), ErrInvalidInput)
}
