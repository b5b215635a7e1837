package linkitems

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/wadjakorntonsri/fanlink/pkg/core/domain"
)

// LegacyOrder places items derived from deprecated fields after everything
// the owner has ordered explicitly.
const LegacyOrder = 999

// Pipeline runs normalization, deduplication and ordering over a profile
// document.
type Pipeline struct {
	logger *slog.Logger
}

// New returns a Pipeline that logs dropped items at debug level. A nil
// logger uses slog.Default().
func New(logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{logger: logger.With("component", "linkitems")}
}

// Build merges the canonical and legacy link fields of doc into one ordered,
// duplicate-free list. It never fails; unusable entries are left out.
func (p *Pipeline) Build(doc *domain.ProfileDocument) []domain.LinkItem {
	if doc == nil {
		return []domain.LinkItem{}
	}

	items := p.NormalizeAll(append(slices.Clone(doc.Links), doc.UnifiedLinks...))
	items = append(items, legacyItems(doc, items)...)

	items = Dedupe(items)
	Sort(items)
	return items
}

// Editable is Build for the editor. Incomplete items are kept with their
// empty required fields so the owner can still find and finish them;
// only entries that are not objects are dropped.
func (p *Pipeline) Editable(doc *domain.ProfileDocument) []domain.LinkItem {
	if doc == nil {
		return []domain.LinkItem{}
	}

	raw := append(slices.Clone(doc.Links), doc.UnifiedLinks...)
	items := make([]domain.LinkItem, 0, len(raw))
	for i, r := range raw {
		item, reason := normalize(r, i)
		if r.Malformed {
			p.logger.Debug("dropping link item", "position", i, "reason", reason)
			continue
		}
		items = append(items, Clean(item))
	}
	items = append(items, legacyItems(doc, items)...)

	items = Dedupe(items)
	Sort(items)
	return items
}

// NormalizeAll normalizes raw items by position, dropping invalid ones.
func (p *Pipeline) NormalizeAll(raw []domain.RawLinkItem) []domain.LinkItem {
	items := make([]domain.LinkItem, 0, len(raw))
	for i, r := range raw {
		item, reason := normalize(r, i)
		if reason != "" {
			p.logger.Debug("dropping link item", "position", i, "id", r.ID, "type", r.Type, "reason", reason)
			continue
		}
		items = append(items, item)
	}
	return items
}

// legacyItems derives items from socialLinks, legacyLinks, youtubeUrl and
// spotifyUrl, in that order. A socialLinks platform already present in
// current is skipped.
func legacyItems(doc *domain.ProfileDocument, current []domain.LinkItem) []domain.LinkItem {
	var out []domain.LinkItem

	present := make(map[string]struct{}, len(current))
	for _, item := range current {
		if item.Type.IsLink() && item.Platform != "" {
			present[strings.ToLower(item.Platform)] = struct{}{}
		}
	}

	platforms := make([]string, 0, len(doc.SocialLinks))
	for platform := range doc.SocialLinks {
		platforms = append(platforms, platform)
	}
	slices.Sort(platforms)

	for _, platform := range platforms {
		url := strings.TrimSpace(doc.SocialLinks[platform])
		if url == "" {
			continue
		}
		if _, ok := present[strings.ToLower(platform)]; ok {
			continue
		}
		present[strings.ToLower(platform)] = struct{}{}
		out = append(out, domain.LinkItem{
			ID:       "social-" + platform + domain.LegacySuffix,
			Type:     domain.LinkTypeSocial,
			Order:    LegacyOrder,
			Title:    platform,
			Platform: platform,
			URL:      url,
		})
	}

	for i, l := range doc.LegacyLinks {
		url := strings.TrimSpace(l.URL)
		if url == "" {
			continue
		}
		out = append(out, domain.LinkItem{
			ID:       fmt.Sprintf("link-%d%s", i, domain.LegacySuffix),
			Type:     DetectType(url),
			Order:    LegacyOrder,
			Title:    l.Title,
			Platform: l.Title,
			URL:      url,
		})
	}

	if url := strings.TrimSpace(doc.YoutubeURL); url != "" {
		out = append(out, domain.LinkItem{
			ID:       "youtube" + domain.LegacySuffix,
			Type:     domain.LinkTypeYouTube,
			Order:    LegacyOrder,
			Title:    "YouTube",
			Platform: "YouTube",
			URL:      url,
		})
	}
	if url := strings.TrimSpace(doc.SpotifyURL); url != "" {
		out = append(out, domain.LinkItem{
			ID:       "spotify" + domain.LegacySuffix,
			Type:     domain.LinkTypeSpotify,
			Order:    LegacyOrder,
			Title:    "Spotify",
			Platform: "Spotify",
			URL:      url,
		})
	}

	return out
}
