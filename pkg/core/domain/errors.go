package domain

import "errors"

var (
	ErrProfileNotFound     = errors.New("profile not found")
	ErrProfileExists       = errors.New("profile already exists")
	ErrSiteIDTaken         = errors.New("site id already exists")
	ErrInvalidSiteID       = errors.New("site id must be 3-30 characters of a-z, 0-9, '-' or '_'")
	ErrTemplateNotFound    = errors.New("template not found")
	ErrItemNotFound        = errors.New("item not found")
	ErrInvalidItem         = errors.New("item is missing required fields for its type")
	ErrReorderInProgress   = errors.New("a reorder is already in progress")
	ErrObjektOwnerNotFound = errors.New("objekt owner not found")
)
