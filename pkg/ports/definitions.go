package ports

import (
	"context"

	"github.com/wadjakorntonsri/fanlink/pkg/core/domain"
)

// ProfileRepository defines storage operations for profile documents.
// Lookups return (nil, nil) when nothing matches.
type ProfileRepository interface {
	// Create stores a new document built from fields, keyed by owner.
	Create(ctx context.Context, ownerID, siteID string, fields map[string]any) error
	GetByOwner(ctx context.Context, ownerID string) (*domain.ProfileDocument, error)
	GetBySiteID(ctx context.Context, siteID string) (*domain.ProfileDocument, error)
	Update(ctx context.Context, ownerID string, patch domain.Patch) error
	Dump(ctx context.Context) ([]domain.ProfileDocument, error) // For export and migration
}

// TemplateRepository defines storage operations for templates
type TemplateRepository interface {
	GetTemplate(ctx context.Context, key string) (*domain.Template, error)
	ListTemplates(ctx context.Context) ([]domain.Template, error)
	// CreateTemplate stores t unless its key exists and reports whether it wrote.
	CreateTemplate(ctx context.Context, t *domain.Template) (bool, error)
}

// PageCache stores rendered public pages by site id
type PageCache interface {
	Get(ctx context.Context, siteID string) (*domain.PublicPage, bool, error)
	Set(ctx context.Context, siteID string, page *domain.PublicPage) error
	Delete(ctx context.Context, siteIDs ...string) error
}

// ObjektSource looks up the NFTs a Cosmo user holds
type ObjektSource interface {
	Search(ctx context.Context, nickname, continuation string) (*ObjektPage, error)
}

// ObjektPage is one page of search results
type ObjektPage struct {
	Objekts      []domain.ObjektNFT `json:"objekts"`
	Continuation string             `json:"continuation,omitempty"`
}

// ProfileInput carries the editable profile fields
type ProfileInput struct {
	SiteID    string
	AvatarURL string
	BioTitle  string
	Bio       string
	Template  string
	Links     []domain.LinkItem
}

// ProfileService defines the business logic for profiles and their items
type ProfileService interface {
	GetPublicPage(ctx context.Context, siteID string) (*domain.PublicPage, bool, error)
	GetDashboard(ctx context.Context, ownerID string) (*domain.Profile, error)
	CreateProfile(ctx context.Context, ownerID string, input ProfileInput) (*domain.Profile, error)
	UpdateProfile(ctx context.Context, ownerID string, input ProfileInput) (*domain.Profile, error)

	AddItem(ctx context.Context, ownerID string, item domain.LinkItem) (*domain.LinkItem, error)
	UpdateItem(ctx context.Context, ownerID, itemID string, item domain.LinkItem) (*domain.LinkItem, error)
	RemoveItem(ctx context.Context, ownerID, itemID string) error
	ReorderItems(ctx context.Context, ownerID string, itemIDs []string) ([]domain.LinkItem, error)

	MigrateLinks(ctx context.Context, dryRun bool) (*domain.MigrationReport, error)
}

// TemplateService defines template lookups and seeding
type TemplateService interface {
	ListTemplates(ctx context.Context) ([]domain.Template, error)
	GetTemplate(ctx context.Context, key string) (*domain.Template, error)
	SeedTemplates(ctx context.Context, templates []domain.Template) (int, error)
}

// ObjektService searches NFTs for the objekt editor
type ObjektService interface {
	Search(ctx context.Context, nickname, continuation string) (*ObjektPage, error)
}
