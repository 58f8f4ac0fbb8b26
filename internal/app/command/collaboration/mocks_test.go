package collaboration

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/teamhub/server/internal/domain/collaboration"
	"github.com/teamhub/server/internal/infra/events"
)

type mockTeamRepo struct {
	mock.Mock
}

func (m *mockTeamRepo) Create(ctx context.Context, team *collaboration.Team, ownerID collaboration.UserID) (*collaboration.Team, error) {
	args := m.Called(ctx, team, ownerID)
	if fn, ok := args.Get(0).(func(context.Context, *collaboration.Team, collaboration.UserID) *collaboration.Team); ok {
		return fn(ctx, team, ownerID), args.Error(1)
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*collaboration.Team), args.Error(1)
}

func (m *mockTeamRepo) FindByID(ctx context.Context, id collaboration.TeamID) (*collaboration.Team, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*collaboration.Team), args.Error(1)
}

func (m *mockTeamRepo) FindByIDWithMembership(ctx context.Context, teamID collaboration.TeamID, userID collaboration.UserID) (*collaboration.Team, *collaboration.TeamMembership, error) {
	args := m.Called(ctx, teamID, userID)
	var team *collaboration.Team
	var membership *collaboration.TeamMembership
	if v := args.Get(0); v != nil {
		team = v.(*collaboration.Team)
	}
	if v := args.Get(1); v != nil {
		membership = v.(*collaboration.TeamMembership)
	}
	return team, membership, args.Error(2)
}

func (m *mockTeamRepo) Update(ctx context.Context, team *collaboration.Team) error {
	return m.Called(ctx, team).Error(0)
}

func (m *mockTeamRepo) Delete(ctx context.Context, id collaboration.TeamID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockTeamRepo) FindByUserID(ctx context.Context, userID collaboration.UserID) ([]*collaboration.TeamWithRole, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*collaboration.TeamWithRole), args.Error(1)
}

func (m *mockTeamRepo) GetMemberships(ctx context.Context, teamID collaboration.TeamID) ([]*collaboration.MemberWithUser, error) {
	args := m.Called(ctx, teamID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*collaboration.MemberWithUser), args.Error(1)
}

func (m *mockTeamRepo) GetMembership(ctx context.Context, teamID collaboration.TeamID, userID collaboration.UserID) (*collaboration.TeamMembership, error) {
	args := m.Called(ctx, teamID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*collaboration.TeamMembership), args.Error(1)
}

func (m *mockTeamRepo) AddMembership(ctx context.Context, membership *collaboration.TeamMembership) error {
	return m.Called(ctx, membership).Error(0)
}

func (m *mockTeamRepo) UpdateMembership(ctx context.Context, membership *collaboration.TeamMembership, previous collaboration.TeamRole) error {
	return m.Called(ctx, membership, previous).Error(0)
}

func (m *mockTeamRepo) RemoveMembership(ctx context.Context, teamID collaboration.TeamID, userID collaboration.UserID) error {
	return m.Called(ctx, teamID, userID).Error(0)
}

func (m *mockTeamRepo) CountMembers(ctx context.Context, teamID collaboration.TeamID) (int64, error) {
	args := m.Called(ctx, teamID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockTeamRepo) IsMember(ctx context.Context, teamID collaboration.TeamID, userID collaboration.UserID) (bool, error) {
	args := m.Called(ctx, teamID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *mockTeamRepo) IsEmailMember(ctx context.Context, teamID collaboration.TeamID, email collaboration.Email) (bool, error) {
	args := m.Called(ctx, teamID, email)
	return args.Bool(0), args.Error(1)
}

type mockInvitationRepo struct {
	mock.Mock
}

func (m *mockInvitationRepo) Create(ctx context.Context, inv *collaboration.TeamInvitation) error {
	return m.Called(ctx, inv).Error(0)
}

func (m *mockInvitationRepo) FindByID(ctx context.Context, id collaboration.InvitationID) (*collaboration.TeamInvitation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*collaboration.TeamInvitation), args.Error(1)
}

func (m *mockInvitationRepo) FindByToken(ctx context.Context, token collaboration.InvitationToken) (*collaboration.TeamInvitation, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*collaboration.TeamInvitation), args.Error(1)
}

func (m *mockInvitationRepo) Update(ctx context.Context, inv *collaboration.TeamInvitation, expected collaboration.InvitationStatus) error {
	return m.Called(ctx, inv, expected).Error(0)
}

func (m *mockInvitationRepo) Delete(ctx context.Context, id collaboration.InvitationID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockInvitationRepo) FindPendingByEmail(ctx context.Context, email collaboration.Email) ([]*collaboration.InvitationWithDetails, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*collaboration.InvitationWithDetails), args.Error(1)
}

func (m *mockInvitationRepo) FindPendingByTeamAndEmail(ctx context.Context, teamID collaboration.TeamID, email collaboration.Email) (*collaboration.TeamInvitation, error) {
	args := m.Called(ctx, teamID, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*collaboration.TeamInvitation), args.Error(1)
}

func (m *mockInvitationRepo) FindByTeam(ctx context.Context, teamID collaboration.TeamID, status *collaboration.InvitationStatus) ([]*collaboration.TeamInvitation, error) {
	args := m.Called(ctx, teamID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*collaboration.TeamInvitation), args.Error(1)
}

type mockUserLookup struct {
	mock.Mock
}

func (m *mockUserLookup) FindByID(ctx context.Context, id collaboration.UserID) (*collaboration.UserInfo, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*collaboration.UserInfo), args.Error(1)
}

// inlineTx runs fn with the caller's context.
type inlineTx struct{}

func (inlineTx) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type staticTokens struct {
	token collaboration.InvitationToken
}

func (s staticTokens) Generate() (collaboration.InvitationToken, error) {
	return s.token, nil
}

type recordingPublisher struct {
	events []events.Event
}

func (p *recordingPublisher) Publish(event events.Event) {
	p.events = append(p.events, event)
}

func (p *recordingPublisher) types() []string {
	out := make([]string, len(p.events))
	for i, e := range p.events {
		out[i] = e.EventType()
	}
	return out
}
