package services

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"sync"

	"github.com/wadjakorntonsri/fanlink/pkg/core/domain"
	"github.com/wadjakorntonsri/fanlink/pkg/core/linkitems"
	"github.com/wadjakorntonsri/fanlink/pkg/ports"
)

// memoryProfiles keeps documents as JSON field maps, like the sqlite store.
type memoryProfiles struct {
	mu      sync.Mutex
	docs    map[string]map[string]any
	updates int
	failOn  string
}

func newMemoryProfiles() *memoryProfiles {
	return &memoryProfiles{docs: map[string]map[string]any{}}
}

// seed stores doc as raw JSON, legacy fields included.
func (m *memoryProfiles) seed(ownerID string, doc map[string]any) {
	b, _ := json.Marshal(doc)
	var fields map[string]any
	_ = json.Unmarshal(b, &fields)
	m.docs[ownerID] = fields
}

func (m *memoryProfiles) Create(ctx context.Context, ownerID, siteID string, fields map[string]any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.docs[ownerID]; ok {
		return errors.New("duplicate owner")
	}
	doc := roundTrip(fields)
	doc["siteID"] = siteID
	m.docs[ownerID] = doc
	return nil
}

func (m *memoryProfiles) GetByOwner(ctx context.Context, ownerID string) (*domain.ProfileDocument, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	fields, ok := m.docs[ownerID]
	if !ok {
		return nil, nil
	}
	return decode(ownerID, fields), nil
}

func (m *memoryProfiles) GetBySiteID(ctx context.Context, siteID string) (*domain.ProfileDocument, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for owner, fields := range m.docs {
		if fields["siteID"] == siteID {
			return decode(owner, fields), nil
		}
	}
	return nil, nil
}

func (m *memoryProfiles) Update(ctx context.Context, ownerID string, patch domain.Patch) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failOn == ownerID {
		return errors.New("write failed")
	}
	fields, ok := m.docs[ownerID]
	if !ok {
		return domain.ErrProfileNotFound
	}
	for _, key := range patch.Unset {
		delete(fields, key)
	}
	for k, v := range roundTrip(linkitems.Compact(patch.Set)) {
		fields[k] = v
	}
	m.updates++
	return nil
}

func (m *memoryProfiles) Dump(ctx context.Context) ([]domain.ProfileDocument, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	owners := make([]string, 0, len(m.docs))
	for owner := range m.docs {
		owners = append(owners, owner)
	}
	sort.Strings(owners)
	out := make([]domain.ProfileDocument, 0, len(owners))
	for _, owner := range owners {
		out = append(out, *decode(owner, m.docs[owner]))
	}
	return out, nil
}

func (m *memoryProfiles) raw(ownerID string) map[string]any {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.docs[ownerID]
}

func roundTrip(v any) map[string]any {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	var out map[string]any
	if err := json.Unmarshal(b, &out); err != nil {
		panic(err)
	}
	return out
}

func decode(ownerID string, fields map[string]any) *domain.ProfileDocument {
	b, _ := json.Marshal(fields)
	var doc domain.ProfileDocument
	if err := json.Unmarshal(b, &doc); err != nil {
		panic(err)
	}
	doc.OwnerID = ownerID
	return &doc
}

type memoryTemplates struct {
	templates map[string]domain.Template
	err       error
}

func newMemoryTemplates(keys ...string) *memoryTemplates {
	m := &memoryTemplates{templates: map[string]domain.Template{}}
	for _, key := range keys {
		m.templates[key] = domain.Template{Name: key, TemplateEngName: key, Border: domain.TemplateBorder{Style: "solid"}}
	}
	return m
}

func (m *memoryTemplates) GetTemplate(ctx context.Context, key string) (*domain.Template, error) {
	if m.err != nil {
		return nil, m.err
	}
	tpl, ok := m.templates[key]
	if !ok {
		return nil, nil
	}
	return &tpl, nil
}

func (m *memoryTemplates) ListTemplates(ctx context.Context) ([]domain.Template, error) {
	out := make([]domain.Template, 0, len(m.templates))
	for _, tpl := range m.templates {
		out = append(out, tpl)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TemplateEngName < out[j].TemplateEngName })
	return out, m.err
}

func (m *memoryTemplates) CreateTemplate(ctx context.Context, t *domain.Template) (bool, error) {
	if _, ok := m.templates[t.TemplateEngName]; ok {
		return false, nil
	}
	m.templates[t.TemplateEngName] = *t
	return true, nil
}

type memoryCache struct {
	pages   map[string]*domain.PublicPage
	deleted []string
}

func newMemoryCache() *memoryCache {
	return &memoryCache{pages: map[string]*domain.PublicPage{}}
}

func (c *memoryCache) Get(ctx context.Context, siteID string) (*domain.PublicPage, bool, error) {
	page, ok := c.pages[siteID]
	return page, ok, nil
}

func (c *memoryCache) Set(ctx context.Context, siteID string, page *domain.PublicPage) error {
	c.pages[siteID] = page
	return nil
}

func (c *memoryCache) Delete(ctx context.Context, siteIDs ...string) error {
	for _, id := range siteIDs {
		delete(c.pages, id)
	}
	c.deleted = append(c.deleted, siteIDs...)
	return nil
}

type stubObjekts struct {
	page *ports.ObjektPage
	err  error
	got  []string
}

func (s *stubObjekts) Search(ctx context.Context, nickname, continuation string) (*ports.ObjektPage, error) {
	s.got = append(s.got, nickname, continuation)
	return s.page, s.err
}

var (
	_ ports.ProfileRepository  = (*memoryProfiles)(nil)
	_ ports.TemplateRepository = (*memoryTemplates)(nil)
	_ ports.PageCache          = (*memoryCache)(nil)
	_ ports.ObjektSource       = (*stubObjekts)(nil)
)
