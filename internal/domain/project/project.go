// Package project contains team-scoped projects.
package project

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/teamhub/server/internal/domain/collaboration"
)

const (
	MaxNameLength        = 100
	MaxDescriptionLength = 1000
)

// ID identifies a project.
type ID uuid.UUID

func NewID() ID               { return ID(uuid.New()) }
func (id ID) UUID() uuid.UUID { return uuid.UUID(id) }
func (id ID) String() string  { return uuid.UUID(id).String() }

// ParseID parses a project identifier.
func ParseID(s string) (ID, error) {
	id, err := collaboration.ParseUUID(s)
	return ID(id), err
}

// Project is a unit of work owned by a team.
type Project struct {
	id          ID
	teamID      collaboration.TeamID
	name        string
	description *string
	position    int
	archivedAt  *time.Time
	createdBy   collaboration.UserID
	createdAt   time.Time
	updatedAt   time.Time
}

// NewProject validates the input and creates an active project at position.
func NewProject(
	teamID collaboration.TeamID,
	name string,
	description *string,
	position int,
	createdBy collaboration.UserID,
	now time.Time,
) (*Project, error) {
	n, err := normalizeName(name)
	if err != nil {
		return nil, err
	}
	d, err := normalizeDescription(description)
	if err != nil {
		return nil, err
	}
	return &Project{
		id:          NewID(),
		teamID:      teamID,
		name:        n,
		description: d,
		position:    position,
		createdBy:   createdBy,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

// Reconstruct reconstructs a project from persistence.
func Reconstruct(
	id ID,
	teamID collaboration.TeamID,
	name string,
	description *string,
	position int,
	archivedAt *time.Time,
	createdBy collaboration.UserID,
	createdAt time.Time,
	updatedAt time.Time,
) *Project {
	return &Project{
		id:          id,
		teamID:      teamID,
		name:        name,
		description: description,
		position:    position,
		archivedAt:  archivedAt,
		createdBy:   createdBy,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

// Getters
func (p *Project) ID() ID                          { return p.id }
func (p *Project) TeamID() collaboration.TeamID    { return p.teamID }
func (p *Project) Name() string                    { return p.name }
func (p *Project) Description() *string            { return p.description }
func (p *Project) Position() int                   { return p.position }
func (p *Project) ArchivedAt() *time.Time          { return p.archivedAt }
func (p *Project) CreatedBy() collaboration.UserID { return p.createdBy }
func (p *Project) CreatedAt() time.Time            { return p.createdAt }
func (p *Project) UpdatedAt() time.Time            { return p.updatedAt }

// IsArchived reports whether the project is archived.
func (p *Project) IsArchived() bool {
	return p.archivedAt != nil
}

// Patch lists the fields to change. An empty Description clears it.
type Patch struct {
	Name        *string
	Description *string
}

// Update returns a copy with the patch applied. Archived projects are read-only.
func (p *Project) Update(patch Patch, now time.Time) (*Project, error) {
	if p.IsArchived() {
		return nil, ErrProjectArchived
	}
	c := *p
	if patch.Name != nil {
		n, err := normalizeName(*patch.Name)
		if err != nil {
			return nil, err
		}
		c.name = n
	}
	if patch.Description != nil {
		d, err := normalizeDescription(patch.Description)
		if err != nil {
			return nil, err
		}
		c.description = d
	}
	c.updatedAt = now
	return &c, nil
}

// Archive returns an archived copy.
func (p *Project) Archive(now time.Time) (*Project, error) {
	if p.IsArchived() {
		return nil, ErrProjectArchived
	}
	c := *p
	c.archivedAt = &now
	c.updatedAt = now
	return &c, nil
}

// Restore returns an active copy placed at position.
func (p *Project) Restore(position int, now time.Time) (*Project, error) {
	if !p.IsArchived() {
		return nil, ErrProjectNotArchived
	}
	c := *p
	c.archivedAt = nil
	c.position = position
	c.updatedAt = now
	return &c, nil
}

// MoveTo returns a copy at position.
func (p *Project) MoveTo(position int, now time.Time) *Project {
	c := *p
	c.position = position
	c.updatedAt = now
	return &c
}

func normalizeName(name string) (string, error) {
	n := strings.TrimSpace(name)
	if n == "" || utf8.RuneCountInString(n) > MaxNameLength {
		return "", ErrInvalidProjectName
	}
	return n, nil
}

func normalizeDescription(description *string) (*string, error) {
	if description == nil {
		return nil, nil
	}
	d := strings.TrimSpace(*description)
	if d == "" {
		return nil, nil
	}
	if utf8.RuneCountInString(d) > MaxDescriptionLength {
		return nil, collaboration.ErrInvalidDescription
	}
	return &d, nil
}

// Reorder checks that ordered is exactly the set of active project ids
// and returns the projects whose position changes.
func Reorder(active []*Project, ordered []ID, now time.Time) ([]*Project, error) {
	if len(ordered) != len(active) {
		return nil, ErrReorderSetMismatch
	}
	byID := make(map[ID]*Project, len(active))
	for _, p := range active {
		byID[p.ID()] = p
	}

	seen := make(map[ID]struct{}, len(ordered))
	var moved []*Project
	for i, id := range ordered {
		p, ok := byID[id]
		if !ok {
			return nil, ErrReorderSetMismatch
		}
		if _, dup := seen[id]; dup {
			return nil, ErrReorderSetMismatch
		}
		seen[id] = struct{}{}
		if p.Position() != i {
			moved = append(moved, p.MoveTo(i, now))
		}
	}
	return moved, nil
}
