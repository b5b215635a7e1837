package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wadjakorntonsri/fanlink/pkg/core/domain"
)

type item struct {
	Type  string `json:"type" validate:"required,linktype"`
	Title string `json:"title" validate:"max=5"`
}

type wrapper struct {
	Items []item `json:"items" validate:"dive"`
}

func TestStruct_Valid(t *testing.T) {
	v := New()
	assert.NoError(t, v.Struct(item{Type: "YouTube", Title: "ok"}))
	assert.NoError(t, v.Struct(domain.BuiltinTemplates[0]))
}

func TestStruct_FieldErrors(t *testing.T) {
	v := New()

	err := v.Struct(item{Type: "video", Title: "too long"})
	var verr *Error
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "must be one of: social, youtube, spotify, custom, text, objekt", verr.Errors["type"])
	assert.Equal(t, "must be at most 5", verr.Errors["title"])
	assert.Contains(t, err.Error(), "title: must be at most 5")
}

func TestStruct_NestedPaths(t *testing.T) {
	v := New()

	err := v.Struct(wrapper{Items: []item{{Type: "text"}, {}}})
	var verr *Error
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, map[string]string{"items[1].type": "is required"}, verr.Errors)
}

func TestStruct_TemplateRules(t *testing.T) {
	v := New()
	tpl := domain.Template{Name: "X", TemplateEngName: "x", Border: domain.TemplateBorder{Style: "dotted", Radius: -1}}

	err := v.Struct(tpl)
	var verr *Error
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "must be one of: solid, dashed, none", verr.Errors["border.style"])
	assert.Equal(t, "must be 0 or more", verr.Errors["border.radius"])
}
