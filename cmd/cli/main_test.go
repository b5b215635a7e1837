package main

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wadjakorntonsri/fanlink/pkg/adapters/repository/sqlite"
	"github.com/wadjakorntonsri/fanlink/pkg/core/domain"
	"github.com/wadjakorntonsri/fanlink/pkg/core/services"
	"github.com/wadjakorntonsri/fanlink/pkg/logging"
)

func newRepo(t *testing.T) *sqlite.SQLiteRepository {
	t.Helper()
	repo, err := sqlite.NewSQLiteRepository("file:" + t.Name() + "?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

const exported = `[
  {"ownerId": "g-1", "siteID": "legacy-fan", "bio": "hi",
   "socialLinks": {"instagram": "https://instagram.com/fan"},
   "youtubeUrl": "https://youtu.be/abc"},
  {"ownerId": "g-2", "siteID": "modern",
   "links": [{"id": "t", "type": "text", "content": "hello", "order": 0}]},
  {"siteID": "orphan"}
]`

func TestImportExportMigrate(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)
	logger := logging.Discard()

	count, err := doImport(ctx, repo, strings.NewReader(exported), logger)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	count, err = doImport(ctx, repo, strings.NewReader(exported), logger)
	require.NoError(t, err)
	assert.Zero(t, count)

	var out bytes.Buffer
	require.NoError(t, doExport(ctx, repo, &out))
	var docs []domain.ProfileDocument
	require.NoError(t, json.Unmarshal(out.Bytes(), &docs))
	require.Len(t, docs, 2)

	profiles := services.NewProfileService(repo, repo, nil, logger)
	out.Reset()
	require.NoError(t, doMigrate(ctx, profiles, true, &out))
	assert.Equal(t, "scanned=2 updated=1 items=2 dry_run=true\n", out.String())

	out.Reset()
	require.NoError(t, doMigrate(ctx, profiles, false, &out))
	assert.Equal(t, "scanned=2 updated=1 items=2 dry_run=false\n", out.String())

	doc, err := repo.GetByOwner(ctx, "g-1")
	require.NoError(t, err)
	assert.False(t, doc.HasLegacyFields())
	require.Len(t, doc.Links, 2)
	assert.Equal(t, "social-instagram-legacy", doc.Links[0].ID)
	assert.Equal(t, "youtube-legacy", doc.Links[1].ID)

	out.Reset()
	require.NoError(t, doMigrate(ctx, profiles, false, &out))
	assert.Equal(t, "scanned=2 updated=0 items=0 dry_run=false\n", out.String())
}

func TestSeed(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)
	templates := services.NewTemplateService(repo, logging.Discard())

	require.NoError(t, doSeed(ctx, templates, logging.Discard()))
	require.NoError(t, doSeed(ctx, templates, logging.Discard()))

	list, err := repo.ListTemplates(ctx)
	require.NoError(t, err)
	assert.Len(t, list, len(domain.BuiltinTemplates))
}
