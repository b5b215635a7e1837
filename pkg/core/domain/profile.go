package domain

import (
	"encoding/json"
	"time"
)

// RawLinkItem is a link entry as it sits in a stored profile document. Any
// field may be missing; objekt entries are kept raw so malformed ones can be
// dropped one by one. Malformed marks an entry that was not a JSON object.
type RawLinkItem struct {
	ID       string            `json:"id,omitempty"`
	URL      string            `json:"url,omitempty"`
	Platform string            `json:"platform,omitempty"`
	Type     string            `json:"type,omitempty"`
	Title    string            `json:"title,omitempty"`
	Content  string            `json:"content,omitempty"`
	Objekts  []json.RawMessage `json:"objekts,omitempty"`
	Order    *int              `json:"order,omitempty"`

	Malformed bool `json:"-"`
}

// LegacyLink is an entry of the deprecated legacyLinks field
type LegacyLink struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// ProfileDocument is the persisted profile, legacy fields included
type ProfileDocument struct {
	OwnerID      string            `json:"ownerId,omitempty"`
	SiteID       string            `json:"siteID"`
	AvatarURL    string            `json:"avatarUrl,omitempty"`
	BioTitle     string            `json:"bioTitle,omitempty"`
	Bio          string            `json:"bio,omitempty"`
	Introduction string            `json:"introduction,omitempty"`
	Template     string            `json:"template,omitempty"`
	Links        []RawLinkItem     `json:"links,omitempty"`
	UnifiedLinks []RawLinkItem     `json:"unifiedLinks,omitempty"`
	SocialLinks  map[string]string `json:"socialLinks,omitempty"`
	YoutubeURL   string            `json:"youtubeUrl,omitempty"`
	SpotifyURL   string            `json:"spotifyUrl,omitempty"`
	LegacyLinks  []LegacyLink      `json:"legacyLinks,omitempty"`
	CreatedAt    time.Time         `json:"createdAt"`
	UpdatedAt    time.Time         `json:"updatedAt"`
}

// HasLegacyFields reports whether any deprecated link field is still set.
func (d *ProfileDocument) HasLegacyFields() bool {
	return len(d.SocialLinks) > 0 || d.YoutubeURL != "" || d.SpotifyURL != "" ||
		len(d.LegacyLinks) > 0 || len(d.UnifiedLinks) > 0
}

// Intro returns introduction, falling back to bio.
func (d *ProfileDocument) Intro() string {
	if d.Introduction != "" {
		return d.Introduction
	}
	return d.Bio
}

// LegacyFields are the document keys folded into links on the next write.
var LegacyFields = []string{"unifiedLinks", "socialLinks", "youtubeUrl", "spotifyUrl", "legacyLinks"}

// Profile is a profile ready for rendering
type Profile struct {
	SiteID       string     `json:"siteID"`
	AvatarURL    string     `json:"avatarUrl"`
	BioTitle     string     `json:"bioTitle"`
	Introduction string     `json:"introduction"`
	Template     string     `json:"template"`
	Links        []LinkItem `json:"links"`
}

// PublicPage is what the public profile route renders
type PublicPage struct {
	Profile  Profile  `json:"profile"`
	Template Template `json:"template"`
}

// Patch is a partial document update. Set values are compacted before they
// are merged; Unset removes keys.
type Patch struct {
	Set   map[string]any
	Unset []string
}

// MigrationReport summarizes a links migration run
type MigrationReport struct {
	Scanned      int `json:"scanned"`
	Updated      int `json:"updated"`
	ItemsWritten int `json:"items_written"`
}

// Fields returns the document as a generic field map for storage.
func (d *ProfileDocument) Fields() (map[string]any, error) {
	b, err := json.Marshal(d)
	if err != nil {
		return nil, err
	}
	var fields map[string]any
	if err := json.Unmarshal(b, &fields); err != nil {
		return nil, err
	}
	delete(fields, "ownerId")
	delete(fields, "createdAt")
	delete(fields, "updatedAt")
	return fields, nil
}
