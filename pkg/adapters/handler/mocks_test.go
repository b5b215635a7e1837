package handler

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/wadjakorntonsri/fanlink/pkg/core/domain"
	"github.com/wadjakorntonsri/fanlink/pkg/ports"
)

type mockProfileService struct{ mock.Mock }

func (m *mockProfileService) GetPublicPage(ctx context.Context, siteID string) (*domain.PublicPage, bool, error) {
	args := m.Called(ctx, siteID)
	page, _ := args.Get(0).(*domain.PublicPage)
	return page, args.Bool(1), args.Error(2)
}

func (m *mockProfileService) GetDashboard(ctx context.Context, ownerID string) (*domain.Profile, error) {
	args := m.Called(ctx, ownerID)
	profile, _ := args.Get(0).(*domain.Profile)
	return profile, args.Error(1)
}

func (m *mockProfileService) CreateProfile(ctx context.Context, ownerID string, input ports.ProfileInput) (*domain.Profile, error) {
	args := m.Called(ctx, ownerID, input)
	profile, _ := args.Get(0).(*domain.Profile)
	return profile, args.Error(1)
}

func (m *mockProfileService) UpdateProfile(ctx context.Context, ownerID string, input ports.ProfileInput) (*domain.Profile, error) {
	args := m.Called(ctx, ownerID, input)
	profile, _ := args.Get(0).(*domain.Profile)
	return profile, args.Error(1)
}

func (m *mockProfileService) AddItem(ctx context.Context, ownerID string, item domain.LinkItem) (*domain.LinkItem, error) {
	args := m.Called(ctx, ownerID, item)
	out, _ := args.Get(0).(*domain.LinkItem)
	return out, args.Error(1)
}

func (m *mockProfileService) UpdateItem(ctx context.Context, ownerID, itemID string, item domain.LinkItem) (*domain.LinkItem, error) {
	args := m.Called(ctx, ownerID, itemID, item)
	out, _ := args.Get(0).(*domain.LinkItem)
	return out, args.Error(1)
}

func (m *mockProfileService) RemoveItem(ctx context.Context, ownerID, itemID string) error {
	return m.Called(ctx, ownerID, itemID).Error(0)
}

func (m *mockProfileService) ReorderItems(ctx context.Context, ownerID string, itemIDs []string) ([]domain.LinkItem, error) {
	args := m.Called(ctx, ownerID, itemIDs)
	items, _ := args.Get(0).([]domain.LinkItem)
	return items, args.Error(1)
}

func (m *mockProfileService) MigrateLinks(ctx context.Context, dryRun bool) (*domain.MigrationReport, error) {
	args := m.Called(ctx, dryRun)
	report, _ := args.Get(0).(*domain.MigrationReport)
	return report, args.Error(1)
}

type mockTemplateService struct{ mock.Mock }

func (m *mockTemplateService) ListTemplates(ctx context.Context) ([]domain.Template, error) {
	args := m.Called(ctx)
	templates, _ := args.Get(0).([]domain.Template)
	return templates, args.Error(1)
}

func (m *mockTemplateService) GetTemplate(ctx context.Context, key string) (*domain.Template, error) {
	args := m.Called(ctx, key)
	tpl, _ := args.Get(0).(*domain.Template)
	return tpl, args.Error(1)
}

func (m *mockTemplateService) SeedTemplates(ctx context.Context, templates []domain.Template) (int, error) {
	args := m.Called(ctx, templates)
	return args.Int(0), args.Error(1)
}

type mockObjektService struct{ mock.Mock }

func (m *mockObjektService) Search(ctx context.Context, nickname, continuation string) (*ports.ObjektPage, error) {
	args := m.Called(ctx, nickname, continuation)
	page, _ := args.Get(0).(*ports.ObjektPage)
	return page, args.Error(1)
}

var (
	_ ports.ProfileService  = (*mockProfileService)(nil)
	_ ports.TemplateService = (*mockTemplateService)(nil)
	_ ports.ObjektService   = (*mockObjektService)(nil)
)
