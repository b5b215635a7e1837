package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/wadjakorntonsri/fanlink/pkg/core/domain"
	"github.com/wadjakorntonsri/fanlink/pkg/core/linkitems"
	"github.com/wadjakorntonsri/fanlink/pkg/ports"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

var siteIDPattern = regexp.MustCompile(`^[a-z0-9_-]{3,30}$`)

// fold lower-cases s. Casers keep state, so each call gets its own.
func fold(s string) string {
	return cases.Lower(language.Und).String(s)
}

// NormalizeSiteID folds a requested site id to its stored form.
func NormalizeSiteID(raw string) (string, error) {
	siteID := fold(norm.NFKC.String(strings.TrimSpace(raw)))
	if !siteIDPattern.MatchString(siteID) {
		return "", domain.ErrInvalidSiteID
	}
	return siteID, nil
}

func templateKey(raw string) string {
	key := fold(strings.TrimSpace(raw))
	if key == "" {
		return domain.DefaultTemplateKey
	}
	return key
}

type ProfileService struct {
	repo      ports.ProfileRepository
	templates ports.TemplateRepository
	cache     ports.PageCache
	pipeline  *linkitems.Pipeline
	logger    *slog.Logger
	newID     linkitems.IDGenerator

	reordering sync.Map
}

// NewProfileService wires the profile service. cache may be nil.
func NewProfileService(repo ports.ProfileRepository, templates ports.TemplateRepository, cache ports.PageCache, logger *slog.Logger) *ProfileService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ProfileService{
		repo:      repo,
		templates: templates,
		cache:     cache,
		pipeline:  linkitems.New(logger),
		logger:    logger.With("component", "profile_service"),
		newID:     linkitems.NewID,
	}
}

func (s *ProfileService) GetPublicPage(ctx context.Context, siteID string) (*domain.PublicPage, bool, error) {
	siteID, err := NormalizeSiteID(siteID)
	if err != nil {
		return nil, false, domain.ErrProfileNotFound
	}

	if s.cache != nil {
		page, hit, err := s.cache.Get(ctx, siteID)
		if err != nil {
			s.logger.Warn("page cache read failed", "site_id", siteID, "error", err)
		} else if hit {
			return page, true, nil
		}
	}

	doc, err := s.repo.GetBySiteID(ctx, siteID)
	if err != nil {
		return nil, false, err
	}
	if doc == nil {
		return nil, false, domain.ErrProfileNotFound
	}

	page := &domain.PublicPage{
		Profile:  s.render(doc, s.pipeline.Build(doc)),
		Template: s.resolveTemplate(ctx, doc.Template),
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, siteID, page); err != nil {
			s.logger.Warn("page cache write failed", "site_id", siteID, "error", err)
		}
	}
	return page, false, nil
}

func (s *ProfileService) GetDashboard(ctx context.Context, ownerID string) (*domain.Profile, error) {
	doc, err := s.getOwned(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	profile := s.render(doc, s.pipeline.Editable(doc))
	return &profile, nil
}

func (s *ProfileService) CreateProfile(ctx context.Context, ownerID string, input ports.ProfileInput) (*domain.Profile, error) {
	existing, err := s.repo.GetByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrProfileExists
	}

	siteID, err := s.claimSiteID(ctx, input.SiteID)
	if err != nil {
		return nil, err
	}
	tpl, err := s.checkTemplate(ctx, input.Template)
	if err != nil {
		return nil, err
	}
	if err := checkTypes(input.Links); err != nil {
		return nil, err
	}

	links := linkitems.Prepare(input.Links, s.newID)
	fields := linkitems.Compact(map[string]any{
		"siteID":       siteID,
		"avatarUrl":    input.AvatarURL,
		"bioTitle":     input.BioTitle,
		"bio":          input.Bio,
		"introduction": input.Bio,
		"template":     tpl,
		"links":        links,
	})
	if err := s.repo.Create(ctx, ownerID, siteID, fields); err != nil {
		return nil, fmt.Errorf("create profile: %w", err)
	}

	s.logger.Info("profile created", "owner_id", ownerID, "site_id", siteID, "items", len(links))
	return s.GetDashboard(ctx, ownerID)
}

func (s *ProfileService) UpdateProfile(ctx context.Context, ownerID string, input ports.ProfileInput) (*domain.Profile, error) {
	doc, err := s.getOwned(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	set := map[string]any{
		"avatarUrl":    input.AvatarURL,
		"bioTitle":     input.BioTitle,
		"bio":          input.Bio,
		"introduction": input.Bio,
	}
	stale := []string{doc.SiteID}

	if input.SiteID != "" {
		siteID, err := NormalizeSiteID(input.SiteID)
		if err != nil {
			return nil, err
		}
		if siteID != doc.SiteID {
			if siteID, err = s.claimSiteID(ctx, siteID); err != nil {
				return nil, err
			}
			set["siteID"] = siteID
			stale = append(stale, siteID)
		}
	}
	if input.Template != "" {
		tpl, err := s.checkTemplate(ctx, input.Template)
		if err != nil {
			return nil, err
		}
		set["template"] = tpl
	}

	patch := domain.Patch{Set: set}
	switch {
	case input.Links != nil:
		if err := checkTypes(input.Links); err != nil {
			return nil, err
		}
		set["links"] = linkitems.Prepare(input.Links, s.newID)
		patch.Unset = domain.LegacyFields
	case doc.HasLegacyFields():
		set["links"] = linkitems.Prepare(s.pipeline.Editable(doc), s.newID)
		patch.Unset = domain.LegacyFields
	}

	if err := s.repo.Update(ctx, ownerID, patch); err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	s.invalidate(ctx, stale...)
	return s.GetDashboard(ctx, ownerID)
}

func (s *ProfileService) AddItem(ctx context.Context, ownerID string, item domain.LinkItem) (*domain.LinkItem, error) {
	if err := checkTypes([]domain.LinkItem{item}); err != nil {
		return nil, err
	}
	doc, items, err := s.loadItems(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	saved, err := s.saveItems(ctx, doc, append(items, item))
	if err != nil {
		return nil, err
	}
	return &saved[len(saved)-1], nil
}

func (s *ProfileService) UpdateItem(ctx context.Context, ownerID, itemID string, item domain.LinkItem) (*domain.LinkItem, error) {
	if err := checkTypes([]domain.LinkItem{item}); err != nil {
		return nil, err
	}
	doc, items, err := s.loadItems(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	idx := indexOf(items, itemID)
	if idx < 0 {
		return nil, domain.ErrItemNotFound
	}

	item.ID = itemID
	items[idx] = item
	saved, err := s.saveItems(ctx, doc, items)
	if err != nil {
		return nil, err
	}
	return &saved[idx], nil
}

func (s *ProfileService) RemoveItem(ctx context.Context, ownerID, itemID string) error {
	doc, items, err := s.loadItems(ctx, ownerID)
	if err != nil {
		return err
	}
	idx := indexOf(items, itemID)
	if idx < 0 {
		return domain.ErrItemNotFound
	}

	_, err = s.saveItems(ctx, doc, append(items[:idx], items[idx+1:]...))
	return err
}

// ReorderItems moves the listed items to the front in the given order; items
// not listed keep their relative order after them. Only one reorder per owner
// runs at a time.
func (s *ProfileService) ReorderItems(ctx context.Context, ownerID string, itemIDs []string) ([]domain.LinkItem, error) {
	if _, busy := s.reordering.LoadOrStore(ownerID, struct{}{}); busy {
		return nil, domain.ErrReorderInProgress
	}
	defer s.reordering.Delete(ownerID)

	doc, items, err := s.loadItems(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	used := make([]bool, len(items))
	reordered := make([]domain.LinkItem, 0, len(items))
	for _, id := range itemIDs {
		found := false
		for i, item := range items {
			if !used[i] && item.ID == id {
				used[i] = true
				reordered = append(reordered, item)
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("reorder %q: %w", id, domain.ErrItemNotFound)
		}
	}
	for i, item := range items {
		if !used[i] {
			reordered = append(reordered, item)
		}
	}

	return s.saveItems(ctx, doc, reordered)
}

// MigrateLinks rewrites every profile whose stored links differ from what the
// pipeline produces, folding legacy fields into links.
func (s *ProfileService) MigrateLinks(ctx context.Context, dryRun bool) (*domain.MigrationReport, error) {
	docs, err := s.repo.Dump(ctx)
	if err != nil {
		return nil, err
	}

	report := &domain.MigrationReport{}
	for i := range docs {
		doc := &docs[i]
		report.Scanned++

		links := linkitems.Prepare(s.pipeline.Editable(doc), s.newID)
		same, err := sameLinks(doc.Links, links)
		if err != nil {
			return report, err
		}
		if same && !doc.HasLegacyFields() {
			continue
		}

		report.Updated++
		report.ItemsWritten += len(links)
		s.logger.Info("migrating links", "owner_id", doc.OwnerID, "site_id", doc.SiteID, "items", len(links), "dry_run", dryRun)
		if dryRun {
			continue
		}

		patch := domain.Patch{Set: map[string]any{"links": links}, Unset: domain.LegacyFields}
		if err := s.repo.Update(ctx, doc.OwnerID, patch); err != nil {
			return report, fmt.Errorf("migrate %s: %w", doc.OwnerID, err)
		}
		s.invalidate(ctx, doc.SiteID)
	}
	return report, nil
}

func (s *ProfileService) render(doc *domain.ProfileDocument, links []domain.LinkItem) domain.Profile {
	return domain.Profile{
		SiteID:       doc.SiteID,
		AvatarURL:    doc.AvatarURL,
		BioTitle:     doc.BioTitle,
		Introduction: doc.Intro(),
		Template:     doc.Template,
		Links:        links,
	}
}

func (s *ProfileService) resolveTemplate(ctx context.Context, key string) domain.Template {
	key = templateKey(key)
	tpl, err := s.templates.GetTemplate(ctx, key)
	if err != nil {
		s.logger.Error("template lookup failed, using fallback", "template", key, "error", err)
		return domain.FallbackTemplate
	}
	if tpl == nil {
		s.logger.Warn("template not found, using fallback", "template", key)
		return domain.FallbackTemplate
	}
	return *tpl
}

func (s *ProfileService) checkTemplate(ctx context.Context, raw string) (string, error) {
	key := templateKey(raw)
	tpl, err := s.templates.GetTemplate(ctx, key)
	if err != nil {
		return "", err
	}
	if tpl == nil && key != domain.DefaultTemplateKey {
		return "", domain.ErrTemplateNotFound
	}
	return key, nil
}

func (s *ProfileService) claimSiteID(ctx context.Context, raw string) (string, error) {
	siteID, err := NormalizeSiteID(raw)
	if err != nil {
		return "", err
	}
	taken, err := s.repo.GetBySiteID(ctx, siteID)
	if err != nil {
		return "", err
	}
	if taken != nil {
		return "", domain.ErrSiteIDTaken
	}
	return siteID, nil
}

func (s *ProfileService) getOwned(ctx context.Context, ownerID string) (*domain.ProfileDocument, error) {
	doc, err := s.repo.GetByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, domain.ErrProfileNotFound
	}
	return doc, nil
}

func (s *ProfileService) loadItems(ctx context.Context, ownerID string) (*domain.ProfileDocument, []domain.LinkItem, error) {
	doc, err := s.getOwned(ctx, ownerID)
	if err != nil {
		return nil, nil, err
	}
	return doc, s.pipeline.Editable(doc), nil
}

// saveItems persists items as the canonical links and drops legacy fields,
// so removed entries cannot come back from them.
func (s *ProfileService) saveItems(ctx context.Context, doc *domain.ProfileDocument, items []domain.LinkItem) ([]domain.LinkItem, error) {
	prepared := linkitems.Prepare(items, s.newID)
	patch := domain.Patch{
		Set:   map[string]any{"links": prepared},
		Unset: domain.LegacyFields,
	}
	if err := s.repo.Update(ctx, doc.OwnerID, patch); err != nil {
		return nil, fmt.Errorf("save items: %w", err)
	}
	s.invalidate(ctx, doc.SiteID)
	return prepared, nil
}

func (s *ProfileService) invalidate(ctx context.Context, siteIDs ...string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, siteIDs...); err != nil {
		s.logger.Warn("page cache invalidation failed", "site_ids", siteIDs, "error", err)
	}
}

func checkTypes(items []domain.LinkItem) error {
	for _, item := range items {
		if _, ok := domain.ParseLinkType(string(item.Type)); !ok {
			return fmt.Errorf("type %q: %w", item.Type, domain.ErrInvalidItem)
		}
	}
	return nil
}

func indexOf(items []domain.LinkItem, id string) int {
	for i, item := range items {
		if item.ID == id {
			return i
		}
	}
	return -1
}

func sameLinks(stored []domain.RawLinkItem, links []domain.LinkItem) (bool, error) {
	if len(stored) == 0 && len(links) == 0 {
		return true, nil
	}
	b, err := json.Marshal(links)
	if err != nil {
		return false, err
	}
	var asRaw []domain.RawLinkItem
	if err := json.Unmarshal(b, &asRaw); err != nil {
		return false, err
	}
	return reflect.DeepEqual(stored, asRaw), nil
}
