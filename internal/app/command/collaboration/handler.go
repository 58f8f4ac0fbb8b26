package collaboration

import (
	"context"
	"time"

	"github.com/teamhub/server/internal/domain/collaboration"
	"github.com/teamhub/server/internal/infra/events"
)

// EventPublisher delivers domain events after a mutation commits.
type EventPublisher interface {
	Publish(event events.Event)
}

// Clock returns the current time.
type Clock func() time.Time

// authorize loads the team and the actor's membership, then applies allowed.
// A non-member actor is denied the action.
func authorize(
	ctx context.Context,
	teams collaboration.TeamRepository,
	teamID collaboration.TeamID,
	actorID collaboration.UserID,
	action string,
	allowed func(*collaboration.TeamMembership) bool,
) (*collaboration.Team, *collaboration.TeamMembership, error) {
	team, membership, err := teams.FindByIDWithMembership(ctx, teamID, actorID)
	if err != nil {
		return nil, nil, err
	}
	if membership == nil || (allowed != nil && !allowed(membership)) {
		return nil, nil, collaboration.Deny(action)
	}
	return team, membership, nil
}

func canManageMembers(m *collaboration.TeamMembership) bool { return m.CanManageMembers() }
func canModifyTeam(m *collaboration.TeamMembership) bool    { return m.CanModifyTeam() }
func canDeleteTeam(m *collaboration.TeamMembership) bool    { return m.CanDeleteTeam() }
