package project

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teamhub/server/internal/domain/collaboration"
)

var now = time.Date(2026, 2, 2, 10, 0, 0, 0, time.UTC)

func newProject(t *testing.T, teamID collaboration.TeamID, position int) *Project {
	t.Helper()
	p, err := NewProject(teamID, "Roadmap", nil, position, collaboration.UserID(uuid.New()), now)
	require.NoError(t, err)
	return p
}

func TestNewProject_Validation(t *testing.T) {
	teamID := collaboration.NewTeamID()
	user := collaboration.UserID(uuid.New())

	_, err := NewProject(teamID, "  ", nil, 0, user, now)
	assert.ErrorIs(t, err, ErrInvalidProjectName)

	_, err = NewProject(teamID, strings.Repeat("n", 101), nil, 0, user, now)
	assert.ErrorIs(t, err, ErrInvalidProjectName)

	long := strings.Repeat("d", 1001)
	_, err = NewProject(teamID, "ok", &long, 0, user, now)
	assert.ErrorIs(t, err, collaboration.ErrInvalidDescription)
}

func TestProject_ArchiveLifecycle(t *testing.T) {
	p := newProject(t, collaboration.NewTeamID(), 0)

	archived, err := p.Archive(now.Add(time.Hour))
	require.NoError(t, err)
	assert.True(t, archived.IsArchived())
	assert.False(t, p.IsArchived())

	_, err = archived.Archive(now)
	assert.ErrorIs(t, err, ErrProjectArchived)

	name := "Renamed"
	_, err = archived.Update(Patch{Name: &name}, now)
	assert.ErrorIs(t, err, ErrProjectArchived)

	restored, err := archived.Restore(4, now.Add(2*time.Hour))
	require.NoError(t, err)
	assert.False(t, restored.IsArchived())
	assert.Equal(t, 4, restored.Position())

	_, err = restored.Restore(0, now)
	assert.ErrorIs(t, err, ErrProjectNotArchived)
}

func TestReorder(t *testing.T) {
	teamID := collaboration.NewTeamID()
	a, b, c := newProject(t, teamID, 0), newProject(t, teamID, 1), newProject(t, teamID, 2)
	active := []*Project{a, b, c}

	t.Run("returns moved projects", func(t *testing.T) {
		moved, err := Reorder(active, []ID{c.ID(), b.ID(), a.ID()}, now)
		require.NoError(t, err)
		require.Len(t, moved, 2)
		assert.Equal(t, c.ID(), moved[0].ID())
		assert.Equal(t, 0, moved[0].Position())
		assert.Equal(t, a.ID(), moved[1].ID())
		assert.Equal(t, 2, moved[1].Position())
	})

	t.Run("unchanged order moves nothing", func(t *testing.T) {
		moved, err := Reorder(active, []ID{a.ID(), b.ID(), c.ID()}, now)
		require.NoError(t, err)
		assert.Empty(t, moved)
	})

	t.Run("set mismatches", func(t *testing.T) {
		cases := map[string][]ID{
			"missing":   {a.ID(), b.ID()},
			"duplicate": {a.ID(), a.ID(), b.ID()},
			"foreign":   {a.ID(), b.ID(), NewID()},
			"too many":  {a.ID(), b.ID(), c.ID(), NewID()},
		}
		for name, ordered := range cases {
			_, err := Reorder(active, ordered, now)
			assert.ErrorIs(t, err, ErrReorderSetMismatch, name)
			info, ok := Classify(err)
			assert.True(t, ok)
			assert.Equal(t, collaboration.KindConflict, info.Kind)
		}
	})
}

func TestClassify_FallsBackToCollaboration(t *testing.T) {
	info, ok := Classify(collaboration.Deny("archive project"))
	require.True(t, ok)
	assert.Equal(t, collaboration.KindPermission, info.Kind)
}
