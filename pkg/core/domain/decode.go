package domain

import (
	"bytes"
	"encoding/json"
	"math"
	"time"
)

// Stored documents come from older clients and hand edits, so decoding reads
// them field by field. A field of the wrong JSON type is treated as missing
// instead of failing the whole document.

// UnmarshalJSON decodes a stored profile. Only a document that is not a JSON
// object is an error.
func (d *ProfileDocument) UnmarshalJSON(b []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(b, &fields); err != nil {
		return err
	}
	*d = ProfileDocument{
		OwnerID:      looseString(fields["ownerId"]),
		SiteID:       looseString(fields["siteID"]),
		AvatarURL:    looseString(fields["avatarUrl"]),
		BioTitle:     looseString(fields["bioTitle"]),
		Bio:          looseString(fields["bio"]),
		Introduction: looseString(fields["introduction"]),
		Template:     looseString(fields["template"]),
		Links:        looseItems(fields["links"]),
		UnifiedLinks: looseItems(fields["unifiedLinks"]),
		SocialLinks:  looseStringMap(fields["socialLinks"]),
		YoutubeURL:   looseString(fields["youtubeUrl"]),
		SpotifyURL:   looseString(fields["spotifyUrl"]),
		LegacyLinks:  looseLegacyLinks(fields["legacyLinks"]),
		CreatedAt:    looseTime(fields["createdAt"]),
		UpdatedAt:    looseTime(fields["updatedAt"]),
	}
	return nil
}

// UnmarshalJSON decodes one stored link entry. An entry that is not an
// object is kept with Malformed set so the normalizer can drop it in place.
func (r *RawLinkItem) UnmarshalJSON(b []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(b, &fields); err != nil || fields == nil {
		*r = RawLinkItem{Malformed: true}
		return nil
	}
	*r = RawLinkItem{
		ID:       looseString(fields["id"]),
		URL:      looseString(fields["url"]),
		Platform: looseString(fields["platform"]),
		Type:     looseString(fields["type"]),
		Title:    looseString(fields["title"]),
		Content:  looseString(fields["content"]),
		Objekts:  looseList(fields["objekts"]),
		Order:    looseInt(fields["order"]),
	}
	return nil
}

func looseString(raw json.RawMessage) string {
	var s string
	if json.Unmarshal(raw, &s) != nil {
		return ""
	}
	return s
}

// looseInt accepts integers, integral floats and numeric strings.
func looseInt(raw json.RawMessage) *int {
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil
	}
	var n json.Number
	if json.Unmarshal(raw, &n) != nil {
		return nil
	}
	if i, err := n.Int64(); err == nil && i >= math.MinInt && i <= math.MaxInt {
		v := int(i)
		return &v
	}
	f, err := n.Float64()
	if err != nil || f != math.Trunc(f) || f < math.MinInt32 || f > math.MaxInt32 {
		return nil
	}
	v := int(f)
	return &v
}

func looseList(raw json.RawMessage) []json.RawMessage {
	var list []json.RawMessage
	if json.Unmarshal(raw, &list) != nil {
		return nil
	}
	return list
}

func looseItems(raw json.RawMessage) []RawLinkItem {
	list := looseList(raw)
	if len(list) == 0 {
		return nil
	}
	items := make([]RawLinkItem, len(list))
	for i, entry := range list {
		_ = items[i].UnmarshalJSON(entry)
	}
	return items
}

func looseStringMap(raw json.RawMessage) map[string]string {
	var fields map[string]json.RawMessage
	if json.Unmarshal(raw, &fields) != nil || len(fields) == 0 {
		return nil
	}
	out := make(map[string]string, len(fields))
	for k, v := range fields {
		if s := looseString(v); s != "" {
			out[k] = s
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func looseLegacyLinks(raw json.RawMessage) []LegacyLink {
	list := looseList(raw)
	if len(list) == 0 {
		return nil
	}
	out := make([]LegacyLink, 0, len(list))
	for _, entry := range list {
		var fields map[string]json.RawMessage
		if json.Unmarshal(entry, &fields) != nil || fields == nil {
			continue
		}
		out = append(out, LegacyLink{Title: looseString(fields["title"]), URL: looseString(fields["url"])})
	}
	return out
}

func looseTime(raw json.RawMessage) time.Time {
	var t time.Time
	if json.Unmarshal(raw, &t) != nil {
		return time.Time{}
	}
	return t
}
