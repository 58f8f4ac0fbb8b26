package collaboration

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/teamhub/server/internal/domain/collaboration"
)

// Only the methods exercised by queries are mocked; the embedded
// interfaces panic if anything else is called.
type mockTeamRepo struct {
	mock.Mock
	collaboration.TeamRepository
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

func (m *mockTeamRepo) CountMembers(ctx context.Context, teamID collaboration.TeamID) (int64, error) {
	args := m.Called(ctx, teamID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockTeamRepo) GetMemberships(ctx context.Context, teamID collaboration.TeamID) ([]*collaboration.MemberWithUser, error) {
	args := m.Called(ctx, teamID)
	return args.Get(0).([]*collaboration.MemberWithUser), args.Error(1)
}

type mockInvitationRepo struct {
	mock.Mock
	collaboration.InvitationRepository
}

func (m *mockInvitationRepo) FindByToken(ctx context.Context, token collaboration.InvitationToken) (*collaboration.TeamInvitation, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*collaboration.TeamInvitation), args.Error(1)
}

func (m *mockInvitationRepo) FindPendingByEmail(ctx context.Context, email collaboration.Email) ([]*collaboration.InvitationWithDetails, error) {
	args := m.Called(ctx, email)
	return args.Get(0).([]*collaboration.InvitationWithDetails), args.Error(1)
}

func (m *mockInvitationRepo) FindByTeam(ctx context.Context, teamID collaboration.TeamID, status *collaboration.InvitationStatus) ([]*collaboration.TeamInvitation, error) {
	args := m.Called(ctx, teamID, status)
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

var now = time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)

func setupTeam(t *testing.T) (*collaboration.Team, collaboration.UserID) {
	t.Helper()
	team, err := collaboration.NewTeam("Acme", nil, now)
	require.NoError(t, err)
	return team, collaboration.UserID(uuid.New())
}

func TestGetTeamHandler(t *testing.T) {
	ctx := context.Background()

	t.Run("member sees team", func(t *testing.T) {
		team, user := setupTeam(t)
		repo := new(mockTeamRepo)
		repo.On("FindByIDWithMembership", mock.Anything, team.ID(), user).
			Return(team, collaboration.NewTeamMembership(team.ID(), user, collaboration.RoleAdmin, now), nil)
		repo.On("CountMembers", mock.Anything, team.ID()).Return(int64(3), nil)

		res, err := NewGetTeamHandler(repo).Handle(ctx, GetTeamQuery{RequesterID: user.String(), TeamID: team.ID().String()})
		require.NoError(t, err)
		assert.Equal(t, "admin", res.Team.MyRole)
		assert.Equal(t, int64(3), res.Team.MemberCount)
	})

	t.Run("outsider gets not found", func(t *testing.T) {
		team, user := setupTeam(t)
		repo := new(mockTeamRepo)
		repo.On("FindByIDWithMembership", mock.Anything, team.ID(), user).Return(team, nil, nil)

		_, err := NewGetTeamHandler(repo).Handle(ctx, GetTeamQuery{RequesterID: user.String(), TeamID: team.ID().String()})
		assert.ErrorIs(t, err, collaboration.ErrTeamNotFound)
	})
}

func TestListMembersHandler_Order(t *testing.T) {
	team, user := setupTeam(t)
	owner := collaboration.NewTeamMembership(team.ID(), user, collaboration.RoleOwner, now)
	early := collaboration.NewTeamMembership(team.ID(), collaboration.UserID(uuid.New()), collaboration.RoleMember, now.Add(time.Hour))
	late := collaboration.NewTeamMembership(team.ID(), collaboration.UserID(uuid.New()), collaboration.RoleMember, now.Add(2*time.Hour))
	admin := collaboration.NewTeamMembership(team.ID(), collaboration.UserID(uuid.New()), collaboration.RoleAdmin, now.Add(3*time.Hour))

	repo := new(mockTeamRepo)
	repo.On("FindByIDWithMembership", mock.Anything, team.ID(), user).Return(team, owner, nil)
	repo.On("GetMemberships", mock.Anything, team.ID()).Return([]*collaboration.MemberWithUser{
		{Membership: late}, {Membership: admin}, {Membership: owner, UserName: "Olive"}, {Membership: early},
	}, nil)

	res, err := NewListMembersHandler(repo).Handle(context.Background(), ListMembersQuery{RequesterID: user.String(), TeamID: team.ID().String()})
	require.NoError(t, err)
	require.Len(t, res.Members, 4)
	assert.Equal(t, "Olive", res.Members[0].Name)
	assert.Equal(t, admin.ID().String(), res.Members[1].ID)
	assert.Equal(t, early.ID().String(), res.Members[2].ID)
	assert.Equal(t, late.ID().String(), res.Members[3].ID)
}

func TestListTeamInvitationsHandler(t *testing.T) {
	ctx := context.Background()
	team, user := setupTeam(t)

	t.Run("member denied", func(t *testing.T) {
		repo := new(mockTeamRepo)
		repo.On("FindByIDWithMembership", mock.Anything, team.ID(), user).
			Return(team, collaboration.NewTeamMembership(team.ID(), user, collaboration.RoleMember, now), nil)

		_, err := NewListTeamInvitationsHandler(repo, new(mockInvitationRepo)).Handle(ctx, ListTeamInvitationsQuery{
			RequesterID: user.String(), TeamID: team.ID().String(),
		})
		assert.ErrorIs(t, err, collaboration.ErrInsufficientPermission)
	})

	t.Run("status filter and hidden tokens", func(t *testing.T) {
		repo := new(mockTeamRepo)
		repo.On("FindByIDWithMembership", mock.Anything, team.ID(), user).
			Return(team, collaboration.NewTeamMembership(team.ID(), user, collaboration.RoleOwner, now), nil)
		inv, err := collaboration.NewTeamInvitation(team.ID(), "bob@example.com", collaboration.RoleMember, "tok", user, now, time.Hour)
		require.NoError(t, err)
		invitations := new(mockInvitationRepo)
		invitations.On("FindByTeam", mock.Anything, team.ID(), mock.MatchedBy(func(s *collaboration.InvitationStatus) bool {
			return s != nil && *s == collaboration.InvitationStatusPending
		})).Return([]*collaboration.TeamInvitation{inv}, nil)

		h := NewListTeamInvitationsHandler(repo, invitations)
		h.now = func() time.Time { return now.Add(2 * time.Hour) }
		res, err := h.Handle(ctx, ListTeamInvitationsQuery{RequesterID: user.String(), TeamID: team.ID().String(), Status: "pending"})
		require.NoError(t, err)
		require.Len(t, res.Invitations, 1)
		assert.Empty(t, res.Invitations[0].Token)
		assert.Equal(t, "expired", res.Invitations[0].Status)
	})

	t.Run("invalid status", func(t *testing.T) {
		_, err := NewListTeamInvitationsHandler(new(mockTeamRepo), new(mockInvitationRepo)).Handle(ctx, ListTeamInvitationsQuery{
			RequesterID: user.String(), TeamID: team.ID().String(), Status: "revoked",
		})
		assert.ErrorIs(t, err, collaboration.ErrInvalidInvitationStatus)
	})
}

func TestListMyInvitationsHandler_SkipsExpired(t *testing.T) {
	team, user := setupTeam(t)
	live, err := collaboration.NewTeamInvitation(team.ID(), "bob@example.com", collaboration.RoleMember, "a", user, now, 48*time.Hour)
	require.NoError(t, err)
	stale, err := collaboration.NewTeamInvitation(team.ID(), "bob@example.com", collaboration.RoleAdmin, "b", user, now.Add(-72*time.Hour), 48*time.Hour)
	require.NoError(t, err)

	users := new(mockUserLookup)
	users.On("FindByID", mock.Anything, user).Return(&collaboration.UserInfo{ID: user, Email: "bob@example.com"}, nil)
	invitations := new(mockInvitationRepo)
	invitations.On("FindPendingByEmail", mock.Anything, collaboration.Email("bob@example.com")).Return([]*collaboration.InvitationWithDetails{
		{Invitation: live, TeamName: "Acme", InviterName: "Olive"},
		{Invitation: stale, TeamName: "Acme", InviterName: "Olive"},
	}, nil)

	h := NewListMyInvitationsHandler(invitations, users)
	h.now = func() time.Time { return now }
	res, err := h.Handle(context.Background(), ListMyInvitationsQuery{RequesterID: user.String()})
	require.NoError(t, err)
	require.Len(t, res.Invitations, 1)
	assert.Equal(t, live.ID().String(), res.Invitations[0].ID)
	assert.Equal(t, "Olive", res.Invitations[0].InviterName)
	assert.Equal(t, "a", res.Invitations[0].Token)
}

func TestGetInvitationByTokenHandler(t *testing.T) {
	team, user := setupTeam(t)
	inv, err := collaboration.NewTeamInvitation(team.ID(), "bob@example.com", collaboration.RoleMember, "tok", user, now, time.Hour)
	require.NoError(t, err)

	teams := new(mockTeamRepo)
	teams.On("FindByID", mock.Anything, team.ID()).Return(team, nil)
	invitations := new(mockInvitationRepo)
	invitations.On("FindByToken", mock.Anything, collaboration.InvitationToken("tok")).Return(inv, nil)
	invitations.On("FindByToken", mock.Anything, collaboration.InvitationToken("nope")).Return(nil, collaboration.ErrInvitationNotFound)
	users := new(mockUserLookup)
	users.On("FindByID", mock.Anything, user).Return(nil, collaboration.ErrUserNotFound)

	h := NewGetInvitationByTokenHandler(teams, invitations, users)
	h.now = func() time.Time { return now }

	res, err := h.Handle(context.Background(), GetInvitationByTokenQuery{Token: "tok"})
	require.NoError(t, err)
	assert.Equal(t, "Acme", res.Invitation.TeamName)
	assert.Empty(t, res.Invitation.InviterName)
	assert.Equal(t, "pending", res.Invitation.Status)

	_, err = h.Handle(context.Background(), GetInvitationByTokenQuery{Token: "nope"})
	assert.ErrorIs(t, err, collaboration.ErrInvitationNotFound)
}
