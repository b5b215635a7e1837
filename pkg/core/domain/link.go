package domain

import (
	"encoding/json"
	"strings"
)

// LinkType tags the variant of a LinkItem
type LinkType string

const (
	LinkTypeSocial  LinkType = "social"
	LinkTypeYouTube LinkType = "youtube"
	LinkTypeSpotify LinkType = "spotify"
	LinkTypeCustom  LinkType = "custom"
	LinkTypeText    LinkType = "text"
	LinkTypeObjekt  LinkType = "objekt"
)

// LegacySuffix marks items derived from deprecated profile fields.
const LegacySuffix = "-legacy"

var knownTypes = map[string]LinkType{
	"social":  LinkTypeSocial,
	"youtube": LinkTypeYouTube,
	"spotify": LinkTypeSpotify,
	"custom":  LinkTypeCustom,
	"text":    LinkTypeText,
	"objekt":  LinkTypeObjekt,
}

// ParseLinkType matches raw case-insensitively against the known type tags.
func ParseLinkType(raw string) (LinkType, bool) {
	t, ok := knownTypes[strings.ToLower(raw)]
	return t, ok
}

// IsLink reports whether t is one of the url-carrying variants.
func (t LinkType) IsLink() bool {
	switch t {
	case LinkTypeSocial, LinkTypeYouTube, LinkTypeSpotify, LinkTypeCustom:
		return true
	}
	return false
}

// ObjektNFT is a collectible shown inside an objekt block
type ObjektNFT struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Image string `json:"image"`
}

// Valid reports whether every field is non-empty.
func (o ObjektNFT) Valid() bool {
	return o.ID != "" && o.Name != "" && o.Image != ""
}

// LinkItem is one renderable entry of a profile page. Which of Platform/URL,
// Content or Objekts is meaningful depends on Type.
type LinkItem struct {
	ID       string      `json:"id"`
	Type     LinkType    `json:"type"`
	Order    int         `json:"order"`
	Title    string      `json:"title,omitempty"`
	Platform string      `json:"platform,omitempty"`
	URL      string      `json:"url,omitempty"`
	Content  string      `json:"content,omitempty"`
	Objekts  []ObjektNFT `json:"objekts,omitempty"`
}

// IsLegacy reports whether the item came from a deprecated profile field.
func (l LinkItem) IsLegacy() bool {
	return strings.HasSuffix(l.ID, LegacySuffix)
}

// MarshalJSON writes only the fields of the item's variant. Required fields
// are always present, even when empty.
func (l LinkItem) MarshalJSON() ([]byte, error) {
	type common struct {
		ID    string   `json:"id"`
		Type  LinkType `json:"type"`
		Order int      `json:"order"`
		Title string   `json:"title,omitempty"`
	}
	c := common{ID: l.ID, Type: l.Type, Order: l.Order, Title: l.Title}

	switch l.Type {
	case LinkTypeText:
		return json.Marshal(struct {
			common
			Content string `json:"content"`
		}{c, l.Content})
	case LinkTypeObjekt:
		objekts := l.Objekts
		if objekts == nil {
			objekts = []ObjektNFT{}
		}
		return json.Marshal(struct {
			common
			Objekts []ObjektNFT `json:"objekts"`
		}{c, objekts})
	default:
		return json.Marshal(struct {
			common
			Platform string `json:"platform"`
			URL      string `json:"url"`
		}{c, l.Platform, l.URL})
	}
}
