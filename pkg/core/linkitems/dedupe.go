package linkitems

import (
	"cmp"
	"slices"
	"strconv"
	"strings"

	"github.com/wadjakorntonsri/fanlink/pkg/core/domain"
)

// textKeyLength is how much of a text block's content takes part in its
// identity key. Blocks sharing this prefix collide.
const textKeyLength = 20

// Key returns the identity key used to detect duplicate items.
func Key(item domain.LinkItem) string {
	switch item.Type {
	case domain.LinkTypeText:
		content := []rune(strings.TrimSpace(item.Content))
		if len(content) > textKeyLength {
			content = content[:textKeyLength]
		}
		return "text:" + string(content)
	case domain.LinkTypeObjekt:
		return "objekt:" + item.ID + ":" + strconv.Itoa(len(item.Objekts))
	default:
		return string(item.Type) + ":" + strings.ToLower(item.Platform) + ":" + item.URL
	}
}

// Dedupe drops items whose identity key was already taken. Non-legacy items
// claim keys before legacy ones, lower order before higher. Survivors keep
// their relative input positions. Incomplete items have no identity yet and
// are always kept.
func Dedupe(items []domain.LinkItem) []domain.LinkItem {
	idx := make([]int, len(items))
	for i := range idx {
		idx[i] = i
	}
	slices.SortStableFunc(idx, func(a, b int) int {
		la, lb := items[a].IsLegacy(), items[b].IsLegacy()
		if la != lb {
			if la {
				return 1
			}
			return -1
		}
		return cmp.Compare(items[a].Order, items[b].Order)
	})

	keep := make([]bool, len(items))
	seen := make(map[string]struct{}, len(items))
	for _, i := range idx {
		if !Complete(items[i]) {
			keep[i] = true
			continue
		}
		key := Key(items[i])
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		keep[i] = true
	}

	out := make([]domain.LinkItem, 0, len(items))
	for i, item := range items {
		if keep[i] {
			out = append(out, item)
		}
	}
	return out
}
