// Package linkitems turns stored profile documents into the ordered,
// deduplicated list of items a profile page renders, and prepares edited
// items for persistence. It is the only package that reads raw link fields.
package linkitems

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/wadjakorntonsri/fanlink/pkg/core/domain"
)

var (
	youtubePattern = regexp.MustCompile(`youtu\.?be`)
	spotifyPattern = regexp.MustCompile(`spotify\.com`)
)

// DetectType guesses a link variant from its URL.
func DetectType(url string) domain.LinkType {
	switch {
	case youtubePattern.MatchString(url):
		return domain.LinkTypeYouTube
	case spotifyPattern.MatchString(url):
		return domain.LinkTypeSpotify
	default:
		return domain.LinkTypeSocial
	}
}

// ResolveType picks the variant of a raw item: an explicit known type wins,
// then a non-empty objekts array, then a missing url means text, and
// otherwise the url is sniffed.
func ResolveType(raw domain.RawLinkItem) domain.LinkType {
	if t, ok := domain.ParseLinkType(raw.Type); ok {
		return t
	}
	if len(raw.Objekts) > 0 {
		return domain.LinkTypeObjekt
	}
	if raw.URL == "" {
		return domain.LinkTypeText
	}
	return DetectType(raw.URL)
}

// CleanObjekts decodes raw NFT entries, dropping any that are not objects
// with non-empty string id, name and image.
func CleanObjekts(raw []json.RawMessage) []domain.ObjektNFT {
	cleaned := make([]domain.ObjektNFT, 0, len(raw))
	for _, r := range raw {
		var o domain.ObjektNFT
		if err := json.Unmarshal(r, &o); err != nil {
			continue
		}
		if !o.Valid() {
			continue
		}
		cleaned = append(cleaned, o)
	}
	return cleaned
}

// Normalize converts the raw item found at position into a LinkItem. It
// reports false when the item lacks what its type requires.
func Normalize(raw domain.RawLinkItem, position int) (domain.LinkItem, bool) {
	item, reason := normalize(raw, position)
	if reason != "" {
		return domain.LinkItem{}, false
	}
	return item, true
}

// normalize fills in defaults and returns the item even when it is
// incomplete, together with the reason it cannot be rendered.
func normalize(raw domain.RawLinkItem, position int) (domain.LinkItem, string) {
	if raw.Malformed {
		return domain.LinkItem{}, "not an object"
	}
	t := ResolveType(raw)

	order := position
	if raw.Order != nil {
		order = *raw.Order
	}

	item := domain.LinkItem{
		ID:    raw.ID,
		Type:  t,
		Order: order,
		Title: raw.Title,
	}

	var reason string
	switch t {
	case domain.LinkTypeText:
		item.Content = raw.Content
		if item.ID == "" {
			item.ID = fmt.Sprintf("text-%d", position)
		}
		if strings.TrimSpace(raw.Content) == "" {
			reason = "empty text content"
		}

	case domain.LinkTypeObjekt:
		item.Objekts = CleanObjekts(raw.Objekts)
		if item.ID == "" {
			item.ID = fmt.Sprintf("objekt-%d", position)
		}
		if len(item.Objekts) == 0 {
			reason = "no valid objekts"
		} else if item.Title == "" {
			item.Title = fmt.Sprintf("%d Objekt NFT", len(item.Objekts))
		}

	default:
		item.URL = strings.TrimSpace(raw.URL)
		item.Platform = raw.Platform
		if item.ID == "" {
			item.ID = fmt.Sprintf("link-%d", position)
		}
		if item.Title == "" {
			item.Title = raw.Platform
		}
		if item.URL == "" {
			reason = "empty url"
		}
	}

	return item, reason
}

// Complete reports whether item has what its type requires to render.
func Complete(item domain.LinkItem) bool {
	switch item.Type {
	case domain.LinkTypeText:
		return strings.TrimSpace(item.Content) != ""
	case domain.LinkTypeObjekt:
		return len(item.Objekts) > 0
	default:
		return strings.TrimSpace(item.URL) != ""
	}
}
