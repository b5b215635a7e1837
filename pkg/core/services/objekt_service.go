package services

import (
	"context"
	"log/slog"
	"strings"

	"github.com/wadjakorntonsri/fanlink/pkg/core/domain"
	"github.com/wadjakorntonsri/fanlink/pkg/ports"
)

// hiddenObjektNames are collection-level tokens that are not objekts.
var hiddenObjektNames = map[string]struct{}{
	"tripleS": {},
	"ARTMS":   {},
}

type ObjektService struct {
	source ports.ObjektSource
	logger *slog.Logger
}

func NewObjektService(source ports.ObjektSource, logger *slog.Logger) *ObjektService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ObjektService{source: source, logger: logger.With("component", "objekt_service")}
}

// Search returns one page of the objekts held by nickname, without entries
// that could not be rendered.
func (s *ObjektService) Search(ctx context.Context, nickname, continuation string) (*ports.ObjektPage, error) {
	nickname = strings.TrimSpace(nickname)
	if nickname == "" {
		return nil, domain.ErrObjektOwnerNotFound
	}

	page, err := s.source.Search(ctx, nickname, continuation)
	if err != nil {
		s.logger.Warn("objekt search failed", "nickname", nickname, "error", err)
		return nil, err
	}

	kept := make([]domain.ObjektNFT, 0, len(page.Objekts))
	for _, o := range page.Objekts {
		if !o.Valid() {
			continue
		}
		if _, hidden := hiddenObjektNames[o.Name]; hidden {
			continue
		}
		kept = append(kept, o)
	}
	s.logger.Debug("objekt search", "nickname", nickname, "found", len(page.Objekts), "kept", len(kept))
	return &ports.ObjektPage{Objekts: kept, Continuation: page.Continuation}, nil
}
