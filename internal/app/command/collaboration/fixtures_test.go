package collaboration

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/teamhub/server/internal/domain/collaboration"
)

var fixedNow = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

func newUserID() collaboration.UserID { return collaboration.UserID(uuid.New()) }

func newTestTeam(t *testing.T) *collaboration.Team {
	t.Helper()
	team, err := collaboration.NewTeam("Acme", nil, fixedNow)
	require.NoError(t, err)
	return team
}

func membershipIn(team *collaboration.Team, user collaboration.UserID, role collaboration.TeamRole) *collaboration.TeamMembership {
	return collaboration.NewTeamMembership(team.ID(), user, role, fixedNow)
}

func pendingInvitation(t *testing.T, team *collaboration.Team, email collaboration.Email, inviter collaboration.UserID) *collaboration.TeamInvitation {
	t.Helper()
	inv, err := collaboration.NewTeamInvitation(team.ID(), email, collaboration.RoleMember, "tok", inviter, fixedNow, 7*24*time.Hour)
	require.NoError(t, err)
	return inv
}
