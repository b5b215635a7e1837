package linkitems

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/wadjakorntonsri/fanlink/pkg/core/domain"
)

// Clean reduces item to the fields of its variant. Fields left over from a
// previous type are cleared and invalid objekts are removed. Required fields
// that are missing stay as empty values; LinkItem's JSON form always writes
// them.
func Clean(item domain.LinkItem) domain.LinkItem {
	out := domain.LinkItem{
		ID:    item.ID,
		Type:  item.Type,
		Order: item.Order,
		Title: item.Title,
	}
	switch item.Type {
	case domain.LinkTypeText:
		out.Content = item.Content
	case domain.LinkTypeObjekt:
		out.Objekts = make([]domain.ObjektNFT, 0, len(item.Objekts))
		for _, o := range item.Objekts {
			if o.Valid() {
				out.Objekts = append(out.Objekts, o)
			}
		}
	default:
		out.Platform = item.Platform
		out.URL = strings.TrimSpace(item.URL)
	}
	return out
}

// CleanAll cleans every item in place.
func CleanAll(items []domain.LinkItem) {
	for i := range items {
		items[i] = Clean(items[i])
	}
}

// IDGenerator returns a fresh id for an item of the given type.
type IDGenerator func(domain.LinkType) string

// NewID returns "{type}-{unix millis}-{random suffix}".
func NewID(t domain.LinkType) string {
	suffix := strings.SplitN(uuid.NewString(), "-", 2)[0]
	return fmt.Sprintf("%s-%d-%s", t, time.Now().UnixMilli(), suffix)
}

// AssignIDs gives a new id to every item whose id is empty or was already
// used by an earlier item.
func AssignIDs(items []domain.LinkItem, gen IDGenerator) {
	if gen == nil {
		gen = NewID
	}
	seen := make(map[string]struct{}, len(items))
	for i := range items {
		id := items[i].ID
		if _, dup := seen[id]; id == "" || dup {
			id = gen(items[i].Type)
			for {
				if _, dup := seen[id]; !dup {
					break
				}
				id = gen(items[i].Type)
			}
			items[i].ID = id
		}
		seen[id] = struct{}{}
	}
}

// Prepare readies an edited list for persistence: variant-only fields,
// unique ids, and Order equal to position.
func Prepare(items []domain.LinkItem, gen IDGenerator) []domain.LinkItem {
	out := make([]domain.LinkItem, len(items))
	copy(out, items)
	CleanAll(out)
	AssignIDs(out, gen)
	Renumber(out)
	return out
}

// Compact returns a copy of doc without nil values, descending into nested
// maps. Slices are kept as they are.
func Compact(doc map[string]any) map[string]any {
	out := make(map[string]any, len(doc))
	for k, v := range doc {
		switch val := v.(type) {
		case nil:
			continue
		case map[string]any:
			out[k] = Compact(val)
		default:
			out[k] = v
		}
	}
	return out
}
