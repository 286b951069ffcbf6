// Package notes wires the demo "notes" resource: a crud.Model over the
// notes table with client-generated UUID keys and a declarative rule
// set gating writes.
package notes

import (
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/armature-dev/armature/crud"
	"github.com/armature-dev/armature/validate"
)

// Statuses a note may carry; mirrored by the status rule below.
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
	StatusArchived  = "archived"
)

// NewModel returns the notes model. The primary key is excluded from
// the fillable set so clients cannot mass-assign ids; KeyGen supplies
// them instead.
func NewModel(db *sqlx.DB) *crud.Model {
	m := crud.NewModel(db, "notes", "id",
		[]string{"title", "body", "status"},
		validate.RuleSet{
			validate.Rules("title", "required", "string", "min:3", "max:120"),
			validate.Rules("body", "string", "max:10000"),
			validate.Rules("status", "string", "in:draft:published:archived"),
		},
	)
	m.KeyGen = func() any { return uuid.New().String() }
	return m
}

// NewController returns the JSON controller for the notes resource.
func NewController(db *sqlx.DB) *crud.Controller {
	return crud.NewController(NewModel(db))
}
