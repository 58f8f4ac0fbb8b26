package collaboration

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/teamhub/server/internal/domain/collaboration"
)

func TestCreateTeamHandler(t *testing.T) {
	ctx := context.Background()

	t.Run("creates team with owner", func(t *testing.T) {
		owner := newUserID()
		repo := new(mockTeamRepo)
		repo.On("Create", mock.Anything, mock.AnythingOfType("*collaboration.Team"), owner).
			Return(func(_ context.Context, team *collaboration.Team, _ collaboration.UserID) *collaboration.Team { return team }, nil)

		pub := &recordingPublisher{}
		h := NewCreateTeamHandler(repo, pub)
		h.now = fixedClock
		desc := "  tools  "
		res, err := h.Handle(ctx, CreateTeamCommand{ActorID: owner.String(), Name: " Acme ", Description: &desc})
		require.NoError(t, err)
		assert.Equal(t, "Acme", res.Team.Name)
		assert.Equal(t, "tools", *res.Team.Description)
		assert.Equal(t, "owner", res.Team.MyRole)
		assert.Equal(t, int64(1), res.Team.MemberCount)
		assert.Equal(t, []string{collaboration.EventTeamCreated}, pub.types())
	})

	t.Run("invalid name never reaches repository", func(t *testing.T) {
		repo := new(mockTeamRepo)
		_, err := NewCreateTeamHandler(repo, &recordingPublisher{}).Handle(ctx, CreateTeamCommand{ActorID: newUserID().String(), Name: "   "})
		assert.ErrorIs(t, err, collaboration.ErrInvalidTeamName)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestUpdateTeamHandler(t *testing.T) {
	ctx := context.Background()
	name := "Renamed"

	tests := []struct {
		role    collaboration.TeamRole
		wantErr error
	}{
		{collaboration.RoleOwner, nil},
		{collaboration.RoleAdmin, nil},
		{collaboration.RoleMember, collaboration.ErrInsufficientPermission},
	}

	for _, tt := range tests {
		t.Run(tt.role.String(), func(t *testing.T) {
			team := newTestTeam(t)
			actor := newUserID()
			repo := new(mockTeamRepo)
			repo.On("FindByIDWithMembership", mock.Anything, team.ID(), actor).Return(team, membershipIn(team, actor, tt.role), nil)
			repo.On("Update", mock.Anything, mock.MatchedBy(func(tm *collaboration.Team) bool { return tm.Name() == name })).Return(nil)

			res, err := NewUpdateTeamHandler(repo, &recordingPublisher{}).Handle(ctx, UpdateTeamCommand{
				ActorID: actor.String(), TeamID: team.ID().String(), Name: &name,
			})
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, name, res.Team.Name)
			assert.Equal(t, "Acme", team.Name())
		})
	}
}

func TestDeleteTeamHandler(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		role    collaboration.TeamRole
		wantErr error
	}{
		{collaboration.RoleOwner, nil},
		{collaboration.RoleAdmin, collaboration.ErrInsufficientPermission},
		{collaboration.RoleMember, collaboration.ErrInsufficientPermission},
	}

	for _, tt := range tests {
		t.Run(tt.role.String(), func(t *testing.T) {
			team := newTestTeam(t)
			actor := newUserID()
			repo := new(mockTeamRepo)
			repo.On("FindByIDWithMembership", mock.Anything, team.ID(), actor).Return(team, membershipIn(team, actor, tt.role), nil)
			repo.On("Delete", mock.Anything, team.ID()).Return(nil)

			err := NewDeleteTeamHandler(repo, &recordingPublisher{}).Handle(ctx, DeleteTeamCommand{ActorID: actor.String(), TeamID: team.ID().String()})
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Contains(t, err.Error(), "delete team")
				repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
				return
			}
			require.NoError(t, err)
			repo.AssertCalled(t, "Delete", mock.Anything, team.ID())
		})
	}
}
