package collaboration

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/teamhub/server/internal/domain/collaboration"
)

// memoryStore is an in-memory backing store for end-to-end flows.
type memoryStore struct {
	mu          sync.Mutex
	teams       map[collaboration.TeamID]*collaboration.Team
	memberships map[collaboration.TeamID]map[collaboration.UserID]*collaboration.TeamMembership
	invitations map[collaboration.InvitationID]*collaboration.TeamInvitation
	users       map[collaboration.UserID]*collaboration.UserInfo
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		teams:       make(map[collaboration.TeamID]*collaboration.Team),
		memberships: make(map[collaboration.TeamID]map[collaboration.UserID]*collaboration.TeamMembership),
		invitations: make(map[collaboration.InvitationID]*collaboration.TeamInvitation),
		users:       make(map[collaboration.UserID]*collaboration.UserInfo),
	}
}

func (s *memoryStore) addUser(email string) collaboration.UserID {
	id := collaboration.UserID(uuid.New())
	s.users[id] = &collaboration.UserInfo{ID: id, Email: collaboration.Email(email), Name: email}
	return id
}

func (s *memoryStore) teamRepo() *memTeams             { return &memTeams{s} }
func (s *memoryStore) invitationRepo() *memInvitations { return &memInvitations{s} }
func (s *memoryStore) userLookup() *memUsers           { return &memUsers{s} }

type memTeams struct{ s *memoryStore }

func (r *memTeams) Create(_ context.Context, team *collaboration.Team, ownerID collaboration.UserID) (*collaboration.Team, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.teams[team.ID()] = team
	r.s.memberships[team.ID()] = map[collaboration.UserID]*collaboration.TeamMembership{
		ownerID: collaboration.NewTeamMembership(team.ID(), ownerID, collaboration.RoleOwner, team.CreatedAt()),
	}
	return team, nil
}

func (r *memTeams) FindByID(_ context.Context, id collaboration.TeamID) (*collaboration.Team, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.teams[id]
	if !ok {
		return nil, collaboration.ErrTeamNotFound
	}
	return t, nil
}

func (r *memTeams) FindByIDWithMembership(ctx context.Context, teamID collaboration.TeamID, userID collaboration.UserID) (*collaboration.Team, *collaboration.TeamMembership, error) {
	t, err := r.FindByID(ctx, teamID)
	if err != nil {
		return nil, nil, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return t, r.s.memberships[teamID][userID], nil
}

func (r *memTeams) Update(_ context.Context, team *collaboration.Team) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.teams[team.ID()]; !ok {
		return collaboration.ErrTeamNotFound
	}
	r.s.teams[team.ID()] = team
	return nil
}

func (r *memTeams) Delete(_ context.Context, id collaboration.TeamID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.teams[id]; !ok {
		return collaboration.ErrTeamNotFound
	}
	delete(r.s.teams, id)
	delete(r.s.memberships, id)
	for invID, inv := range r.s.invitations {
		if inv.TeamID() == id {
			delete(r.s.invitations, invID)
		}
	}
	return nil
}

func (r *memTeams) FindByUserID(_ context.Context, userID collaboration.UserID) ([]*collaboration.TeamWithRole, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*collaboration.TeamWithRole
	for teamID, members := range r.s.memberships {
		if m, ok := members[userID]; ok {
			out = append(out, &collaboration.TeamWithRole{Team: r.s.teams[teamID], Role: m.Role()})
		}
	}
	return out, nil
}

func (r *memTeams) GetMemberships(_ context.Context, teamID collaboration.TeamID) ([]*collaboration.MemberWithUser, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*collaboration.MemberWithUser
	for userID, m := range r.s.memberships[teamID] {
		mw := &collaboration.MemberWithUser{Membership: m}
		if u, ok := r.s.users[userID]; ok {
			mw.UserName = u.Name
			mw.UserEmail = u.Email.String()
		}
		out = append(out, mw)
	}
	return out, nil
}

func (r *memTeams) GetMembership(_ context.Context, teamID collaboration.TeamID, userID collaboration.UserID) (*collaboration.TeamMembership, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	m, ok := r.s.memberships[teamID][userID]
	if !ok {
		return nil, collaboration.ErrMembershipNotFound
	}
	return m, nil
}

func (r *memTeams) AddMembership(_ context.Context, m *collaboration.TeamMembership) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	members, ok := r.s.memberships[m.TeamID()]
	if !ok {
		return collaboration.ErrTeamNotFound
	}
	if _, exists := members[m.UserID()]; exists {
		return collaboration.ErrAlreadyMember
	}
	members[m.UserID()] = m
	return nil
}

func (r *memTeams) UpdateMembership(_ context.Context, m *collaboration.TeamMembership, previous collaboration.TeamRole) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	current, ok := r.s.memberships[m.TeamID()][m.UserID()]
	if !ok {
		return collaboration.ErrMembershipNotFound
	}
	if current.Role() != previous {
		return collaboration.ErrConcurrentUpdate
	}
	r.s.memberships[m.TeamID()][m.UserID()] = m
	return nil
}

func (r *memTeams) RemoveMembership(_ context.Context, teamID collaboration.TeamID, userID collaboration.UserID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.memberships[teamID][userID]; !ok {
		return collaboration.ErrMembershipNotFound
	}
	delete(r.s.memberships[teamID], userID)
	return nil
}

func (r *memTeams) CountMembers(_ context.Context, teamID collaboration.TeamID) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return int64(len(r.s.memberships[teamID])), nil
}

func (r *memTeams) IsMember(_ context.Context, teamID collaboration.TeamID, userID collaboration.UserID) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	_, ok := r.s.memberships[teamID][userID]
	return ok, nil
}

func (r *memTeams) IsEmailMember(_ context.Context, teamID collaboration.TeamID, email collaboration.Email) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for userID := range r.s.memberships[teamID] {
		if u, ok := r.s.users[userID]; ok && u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

type memInvitations struct{ s *memoryStore }

func (r *memInvitations) Create(_ context.Context, inv *collaboration.TeamInvitation) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.invitations[inv.ID()] = inv
	return nil
}

func (r *memInvitations) FindByID(_ context.Context, id collaboration.InvitationID) (*collaboration.TeamInvitation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	inv, ok := r.s.invitations[id]
	if !ok {
		return nil, collaboration.ErrInvitationNotFound
	}
	return inv, nil
}

func (r *memInvitations) FindByToken(_ context.Context, token collaboration.InvitationToken) (*collaboration.TeamInvitation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, inv := range r.s.invitations {
		if inv.Token() == token {
			return inv, nil
		}
	}
	return nil, collaboration.ErrInvitationNotFound
}

func (r *memInvitations) Update(_ context.Context, inv *collaboration.TeamInvitation, expected collaboration.InvitationStatus) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	current, ok := r.s.invitations[inv.ID()]
	if !ok {
		return collaboration.ErrInvitationNotFound
	}
	if current.Status() != expected {
		return collaboration.ErrInvitationNotPending
	}
	r.s.invitations[inv.ID()] = inv
	return nil
}

func (r *memInvitations) Delete(_ context.Context, id collaboration.InvitationID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.invitations[id]; !ok {
		return collaboration.ErrInvitationNotFound
	}
	delete(r.s.invitations, id)
	return nil
}

func (r *memInvitations) FindPendingByEmail(_ context.Context, email collaboration.Email) ([]*collaboration.InvitationWithDetails, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*collaboration.InvitationWithDetails
	for _, inv := range r.s.invitations {
		if inv.IsPending() && inv.Email() == email {
			d := &collaboration.InvitationWithDetails{Invitation: inv}
			if t, ok := r.s.teams[inv.TeamID()]; ok {
				d.TeamName = t.Name()
			}
			if u, ok := r.s.users[inv.InvitedBy()]; ok {
				d.InviterName = u.Name
			}
			out = append(out, d)
		}
	}
	return out, nil
}

func (r *memInvitations) FindPendingByTeamAndEmail(_ context.Context, teamID collaboration.TeamID, email collaboration.Email) (*collaboration.TeamInvitation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, inv := range r.s.invitations {
		if inv.IsPending() && inv.TeamID() == teamID && inv.Email() == email {
			return inv, nil
		}
	}
	return nil, collaboration.ErrInvitationNotFound
}

func (r *memInvitations) FindByTeam(_ context.Context, teamID collaboration.TeamID, status *collaboration.InvitationStatus) ([]*collaboration.TeamInvitation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*collaboration.TeamInvitation
	for _, inv := range r.s.invitations {
		if inv.TeamID() == teamID && (status == nil || inv.Status() == *status) {
			out = append(out, inv)
		}
	}
	return out, nil
}

type memUsers struct{ s *memoryStore }

func (r *memUsers) FindByID(_ context.Context, id collaboration.UserID) (*collaboration.UserInfo, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, collaboration.ErrUserNotFound
	}
	return u, nil
}
