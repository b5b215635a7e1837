package linkitems

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wadjakorntonsri/fanlink/pkg/core/domain"
)

func TestKey(t *testing.T) {
	tests := []struct {
		name string
		item domain.LinkItem
		want string
	}{
		{
			name: "text uses first 20 characters of trimmed content",
			item: domain.LinkItem{Type: domain.LinkTypeText, Content: "  abcdefghijklmnopqrstuvwxyz"},
			want: "text:abcdefghijklmnopqrst",
		},
		{
			name: "text counts characters, not bytes",
			item: domain.LinkItem{Type: domain.LinkTypeText, Content: "文字方塊文字方塊文字方塊文字方塊文字方塊文字"},
			want: "text:文字方塊文字方塊文字方塊文字方塊文字方塊",
		},
		{
			name: "objekt",
			item: domain.LinkItem{ID: "o1", Type: domain.LinkTypeObjekt, Objekts: make([]domain.ObjektNFT, 3)},
			want: "objekt:o1:3",
		},
		{
			name: "link lower-cases platform only",
			item: domain.LinkItem{Type: domain.LinkTypeSocial, Platform: "Instagram", URL: "https://instagram.com/Me"},
			want: "social:instagram:https://instagram.com/Me",
		},
		{
			name: "link without platform",
			item: domain.LinkItem{Type: domain.LinkTypeCustom, URL: "https://example.com"},
			want: "custom::https://example.com",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Key(tt.item))
		})
	}
}

func TestDedupe_NonLegacyWins(t *testing.T) {
	legacy := domain.LinkItem{ID: "social-Instagram-legacy", Type: domain.LinkTypeSocial, Platform: "Instagram", URL: "https://instagram.com/me", Order: 0}
	current := domain.LinkItem{ID: "ig", Type: domain.LinkTypeSocial, Platform: "instagram", URL: "https://instagram.com/me", Order: 5}

	for _, input := range [][]domain.LinkItem{{legacy, current}, {current, legacy}} {
		out := Dedupe(input)
		require.Len(t, out, 1)
		assert.Equal(t, "ig", out[0].ID)
	}
}

func TestDedupe_LowerOrderWinsWithinPartition(t *testing.T) {
	items := []domain.LinkItem{
		{ID: "late", Type: domain.LinkTypeText, Content: "same text", Order: 4},
		{ID: "early", Type: domain.LinkTypeText, Content: "same text", Order: 1},
	}

	out := Dedupe(items)

	require.Len(t, out, 1)
	assert.Equal(t, "early", out[0].ID)
}

func TestDedupe_KeepsInputPositions(t *testing.T) {
	items := []domain.LinkItem{
		{ID: "c", Type: domain.LinkTypeText, Content: "c", Order: 2},
		{ID: "a-legacy", Type: domain.LinkTypeText, Content: "a", Order: 0},
		{ID: "b", Type: domain.LinkTypeText, Content: "b", Order: 1},
	}

	out := Dedupe(items)

	require.Len(t, out, 3)
	assert.Equal(t, "c", out[0].ID)
	assert.Equal(t, "a-legacy", out[1].ID)
	assert.Equal(t, "b", out[2].ID)
}

func TestDedupe_ObjektNeedsSameIDAndCount(t *testing.T) {
	nfts := []domain.ObjektNFT{{ID: "1", Name: "n", Image: "i"}}
	items := []domain.LinkItem{
		{ID: "o", Type: domain.LinkTypeObjekt, Objekts: nfts},
		{ID: "o", Type: domain.LinkTypeObjekt, Objekts: append(nfts, nfts[0])},
		{ID: "p", Type: domain.LinkTypeObjekt, Objekts: nfts},
		{ID: "o", Type: domain.LinkTypeObjekt, Objekts: nfts},
	}

	assert.Len(t, Dedupe(items), 3)
}

func TestSort_Stable(t *testing.T) {
	items := []domain.LinkItem{
		{ID: "x", Order: 2},
		{ID: "y", Order: 0},
		{ID: "z", Order: 1},
		{ID: "w", Order: 0},
	}

	Sort(items)

	assert.Equal(t, "y", items[0].ID)
	assert.Equal(t, "w", items[1].ID)
	assert.Equal(t, "z", items[2].ID)
	assert.Equal(t, "x", items[3].ID)
}

func TestSort_ExtremeOrders(t *testing.T) {
	items := []domain.LinkItem{
		{ID: "max", Order: math.MaxInt},
		{ID: "min", Order: math.MinInt},
		{ID: "zero", Order: 0},
	}

	Sort(items)

	assert.Equal(t, []string{"min", "zero", "max"}, []string{items[0].ID, items[1].ID, items[2].ID})
}

func TestDedupe_ExtremeOrders(t *testing.T) {
	items := []domain.LinkItem{
		{ID: "high", Type: domain.LinkTypeText, Content: "same", Order: math.MaxInt},
		{ID: "low", Type: domain.LinkTypeText, Content: "same", Order: math.MinInt},
	}

	out := Dedupe(items)

	require.Len(t, out, 1)
	assert.Equal(t, "low", out[0].ID)
}

func TestDedupe_KeepsIncompleteItems(t *testing.T) {
	items := []domain.LinkItem{
		{ID: "t1", Type: domain.LinkTypeText},
		{ID: "t2", Type: domain.LinkTypeText, Content: "  "},
		{ID: "l1", Type: domain.LinkTypeSocial},
		{ID: "l2", Type: domain.LinkTypeSocial},
	}

	assert.Len(t, Dedupe(items), 4)
}
