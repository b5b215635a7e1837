package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/wadjakorntonsri/fanlink/pkg/core/domain"
	"github.com/wadjakorntonsri/fanlink/pkg/ports"
	"github.com/wadjakorntonsri/fanlink/pkg/validation"
)

type TemplateService struct {
	repo     ports.TemplateRepository
	validate *validation.Validator
	logger   *slog.Logger
}

func NewTemplateService(repo ports.TemplateRepository, logger *slog.Logger) *TemplateService {
	if logger == nil {
		logger = slog.Default()
	}
	return &TemplateService{
		repo:     repo,
		validate: validation.New(),
		logger:   logger.With("component", "template_service"),
	}
}

func (s *TemplateService) ListTemplates(ctx context.Context) ([]domain.Template, error) {
	templates, err := s.repo.ListTemplates(ctx)
	if err != nil {
		return nil, err
	}
	if len(templates) == 0 {
		return []domain.Template{domain.FallbackTemplate}, nil
	}
	return templates, nil
}

// GetTemplate returns the named template, or the fallback when none is stored
// under key.
func (s *TemplateService) GetTemplate(ctx context.Context, key string) (*domain.Template, error) {
	key = templateKey(key)
	tpl, err := s.repo.GetTemplate(ctx, key)
	if err != nil {
		return nil, err
	}
	if tpl == nil {
		s.logger.Warn("template not found, using fallback", "template", key)
		fallback := domain.FallbackTemplate
		return &fallback, nil
	}
	return tpl, nil
}

// SeedTemplates stores each template whose key is not taken yet and returns
// how many were written.
func (s *TemplateService) SeedTemplates(ctx context.Context, templates []domain.Template) (int, error) {
	written := 0
	for i := range templates {
		tpl := templates[i]
		if err := s.validate.Struct(tpl); err != nil {
			return written, fmt.Errorf("template %q: %w", tpl.TemplateEngName, err)
		}
		tpl.TemplateEngName = templateKey(tpl.TemplateEngName)

		created, err := s.repo.CreateTemplate(ctx, &tpl)
		if err != nil {
			return written, fmt.Errorf("template %q: %w", tpl.TemplateEngName, err)
		}
		if !created {
			s.logger.Info("template exists, skipping", "template", tpl.TemplateEngName)
			continue
		}
		s.logger.Info("template seeded", "template", tpl.TemplateEngName)
		written++
	}
	return written, nil
}
