package linkitems

import (
	"cmp"
	"slices"

	"github.com/wadjakorntonsri/fanlink/pkg/core/domain"
)

// Sort orders items by Order ascending, keeping input order on ties.
func Sort(items []domain.LinkItem) {
	slices.SortStableFunc(items, func(a, b domain.LinkItem) int {
		return cmp.Compare(a.Order, b.Order)
	})
}

// Renumber sets every item's Order to its index.
func Renumber(items []domain.LinkItem) {
	for i := range items {
		items[i].Order = i
	}
}
