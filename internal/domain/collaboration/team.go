package collaboration

import (
	"strings"
	"time"
	"unicode/utf8"
)

const (
	MaxTeamNameLength    = 100
	MaxDescriptionLength = 1000
)

// Team is a tenant grouping users and projects. Memberships and invitations
// reference a team by id and are owned by persistence.
type Team struct {
	id          TeamID
	name        string
	description *string
	createdAt   time.Time
	updatedAt   time.Time
}

// NewTeam validates the metadata and creates a team.
func NewTeam(name string, description *string, now time.Time) (*Team, error) {
	n, err := normalizeTeamName(name)
	if err != nil {
		return nil, err
	}
	d, err := normalizeDescription(description)
	if err != nil {
		return nil, err
	}
	return &Team{
		id:          NewTeamID(),
		name:        n,
		description: d,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

// ReconstructTeam reconstructs a team from persistence.
func ReconstructTeam(id TeamID, name string, description *string, createdAt, updatedAt time.Time) *Team {
	return &Team{
		id:          id,
		name:        name,
		description: description,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

// Getters
func (t *Team) ID() TeamID           { return t.id }
func (t *Team) Name() string         { return t.name }
func (t *Team) Description() *string { return t.description }
func (t *Team) CreatedAt() time.Time { return t.createdAt }
func (t *Team) UpdatedAt() time.Time { return t.updatedAt }

// TeamPatch lists the fields to change. A nil field is left untouched; an
// empty Description clears it.
type TeamPatch struct {
	Name        *string
	Description *string
}

// IsEmpty reports whether the patch changes nothing.
func (p TeamPatch) IsEmpty() bool {
	return p.Name == nil && p.Description == nil
}

// Update returns a copy of the team with the patch applied.
func (t *Team) Update(p TeamPatch, now time.Time) (*Team, error) {
	c := *t
	if p.Name != nil {
		n, err := normalizeTeamName(*p.Name)
		if err != nil {
			return nil, err
		}
		c.name = n
	}
	if p.Description != nil {
		d, err := normalizeDescription(p.Description)
		if err != nil {
			return nil, err
		}
		c.description = d
	}
	c.updatedAt = now
	return &c, nil
}

func normalizeTeamName(name string) (string, error) {
	n := strings.TrimSpace(name)
	if n == "" || utf8.RuneCountInString(n) > MaxTeamNameLength {
		return "", ErrInvalidTeamName
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
		return nil, ErrInvalidDescription
	}
	return &d, nil
}
