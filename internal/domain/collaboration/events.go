package collaboration

import (
	"time"

	"github.com/google/uuid"
)

// Event types published after a successful mutation.
const (
	EventTeamCreated         = "team.created"
	EventTeamUpdated         = "team.updated"
	EventTeamDeleted         = "team.deleted"
	EventInvitationCreated   = "invitation.created"
	EventInvitationAccepted  = "invitation.accepted"
	EventInvitationRejected  = "invitation.rejected"
	EventInvitationCancelled = "invitation.cancelled"
	EventMemberRoleChanged   = "member.role_changed"
	EventMemberRemoved       = "member.removed"
	EventMemberLeft          = "member.left"
)

// EventTypes lists every collaboration event type.
func EventTypes() []string {
	return []string{
		EventTeamCreated, EventTeamUpdated, EventTeamDeleted,
		EventInvitationCreated, EventInvitationAccepted, EventInvitationRejected, EventInvitationCancelled,
		EventMemberRoleChanged, EventMemberRemoved, EventMemberLeft,
	}
}

// TeamEvent records something that happened to a team.
type TeamEvent struct {
	id         uuid.UUID
	eventType  string
	teamID     TeamID
	actorID    UserID
	occurredAt time.Time
	attributes map[string]string
}

// NewTeamEvent creates an event. attributes may be nil.
func NewTeamEvent(eventType string, teamID TeamID, actorID UserID, now time.Time, attributes map[string]string) TeamEvent {
	return TeamEvent{
		id:         uuid.New(),
		eventType:  eventType,
		teamID:     teamID,
		actorID:    actorID,
		occurredAt: now,
		attributes: attributes,
	}
}

func (e TeamEvent) EventID() uuid.UUID            { return e.id }
func (e TeamEvent) EventType() string             { return e.eventType }
func (e TeamEvent) OccurredAt() time.Time         { return e.occurredAt }
func (e TeamEvent) AggregateID() uuid.UUID        { return e.teamID.UUID() }
func (e TeamEvent) AggregateType() string         { return "team" }
func (e TeamEvent) TeamID() TeamID                { return e.teamID }
func (e TeamEvent) ActorID() UserID               { return e.actorID }
func (e TeamEvent) Attributes() map[string]string { return e.attributes }
func (e TeamEvent) Actor() string                 { return e.actorID.String() }
