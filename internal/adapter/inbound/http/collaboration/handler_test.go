package collabhttp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teamhub/server/internal/app/command"
	collabcmd "github.com/teamhub/server/internal/app/command/collaboration"
	"github.com/teamhub/server/internal/app/query"
	collabquery "github.com/teamhub/server/internal/app/query/collaboration"
	"github.com/teamhub/server/internal/domain/collaboration"
	"github.com/teamhub/server/internal/utils/middleware"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var actorID = collaboration.NewUserID()

func asActor(c *gin.Context) {
	c.Set(middleware.UserIDKey, actorID)
	c.Next()
}

func passThrough(c *gin.Context) { c.Next() }

func newRouter(commands Commands, queries Queries, auth gin.HandlerFunc) *gin.Engine {
	router := gin.New()
	NewHandler(commands, queries).RegisterRoutes(router.Group("/api/v1"), auth, passThrough)
	return router
}

func do(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

type errorBody struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) errorBody {
	t.Helper()
	var body errorBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestCreateTeam(t *testing.T) {
	var got collabcmd.CreateTeamCommand
	commands := Commands{
		CreateTeam: command.HandlerFunc[collabcmd.CreateTeamCommand, *collabcmd.CreateTeamResult](
			func(_ context.Context, cmd collabcmd.CreateTeamCommand) (*collabcmd.CreateTeamResult, error) {
				got = cmd
				if cmd.Name == "bad" {
					return nil, collaboration.ErrInvalidTeamName
				}
				return &collabcmd.CreateTeamResult{Team: &collabcmd.TeamDTO{ID: "t-1", Name: cmd.Name, MyRole: "owner"}}, nil
			}),
	}

	t.Run("creates team as the actor", func(t *testing.T) {
		w := do(newRouter(commands, Queries{}, asActor), "POST", "/api/v1/teams", `{"name":"Platform","description":"infra"}`)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, actorID.String(), got.ActorID)
		require.NotNil(t, got.Description)
		assert.Equal(t, "infra", *got.Description)
		assert.JSONEq(t, `{"id":"t-1","name":"Platform","description":null,"my_role":"owner","created_at":0,"updated_at":0}`, w.Body.String())
	})

	t.Run("maps validation errors to 400", func(t *testing.T) {
		w := do(newRouter(commands, Queries{}, asActor), "POST", "/api/v1/teams", `{"name":"bad"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "invalid_team_name", decodeError(t, w).Error.Code)
	})

	t.Run("rejects undecodable body", func(t *testing.T) {
		w := do(newRouter(commands, Queries{}, asActor), "POST", "/api/v1/teams", `{"description":"no name"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "BAD_REQUEST", decodeError(t, w).Error.Code)
	})

	t.Run("requires an authenticated actor", func(t *testing.T) {
		w := do(newRouter(commands, Queries{}, passThrough), "POST", "/api/v1/teams", `{"name":"Platform"}`)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "UNAUTHORIZED", decodeError(t, w).Error.Code)
	})
}

func TestMemberRoutes_ErrorMapping(t *testing.T) {
	commands := Commands{
		ChangeMemberRole: command.HandlerFunc[collabcmd.ChangeMemberRoleCommand, *collabcmd.ChangeMemberRoleResult](
			func(_ context.Context, cmd collabcmd.ChangeMemberRoleCommand) (*collabcmd.ChangeMemberRoleResult, error) {
				switch cmd.Role {
				case "owner":
					return nil, collaboration.ErrOwnerRoleNotAssignable
				case "member":
					return nil, collaboration.Deny("change member role")
				}
				return &collabcmd.ChangeMemberRoleResult{Member: &collabcmd.MemberDTO{UserID: cmd.TargetUserID, Role: cmd.Role}, Changed: true}, nil
			}),
		RemoveMember: command.Exec(func(_ context.Context, cmd collabcmd.RemoveMemberCommand) error {
			return collaboration.ErrCannotRemoveOwner
		}),
		LeaveTeam: command.Exec(func(_ context.Context, cmd collabcmd.LeaveTeamCommand) error {
			if cmd.TeamID == "missing" {
				return collaboration.ErrTeamNotFound
			}
			return nil
		}),
	}
	router := newRouter(commands, Queries{}, asActor)

	t.Run("role change succeeds", func(t *testing.T) {
		w := do(router, "PATCH", "/api/v1/teams/t-1/members/u-2", `{"role":"admin"}`)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"changed":true`)
		assert.Contains(t, w.Body.String(), `"user_id":"u-2"`)
	})

	t.Run("owner role is a validation error", func(t *testing.T) {
		w := do(router, "PATCH", "/api/v1/teams/t-1/members/u-2", `{"role":"owner"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("permission errors name the action", func(t *testing.T) {
		w := do(router, "PATCH", "/api/v1/teams/t-1/members/u-2", `{"role":"member"}`)
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Equal(t, "insufficient permission: change member role", decodeError(t, w).Error.Message)
	})

	t.Run("invariants map to 422", func(t *testing.T) {
		w := do(router, "DELETE", "/api/v1/teams/t-1/members/u-2", "")
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Equal(t, "cannot_remove_owner", decodeError(t, w).Error.Code)
	})

	t.Run("leave returns 204", func(t *testing.T) {
		assert.Equal(t, http.StatusNoContent, do(router, "POST", "/api/v1/teams/t-1/leave", "").Code)
		assert.Equal(t, http.StatusNotFound, do(router, "POST", "/api/v1/teams/missing/leave", "").Code)
	})
}

func TestInvitationRoutes(t *testing.T) {
	var accepted collabcmd.AcceptInvitationByTokenCommand
	var listed collabquery.ListTeamInvitationsQuery
	commands := Commands{
		CreateInvitation: command.HandlerFunc[collabcmd.CreateInvitationCommand, *collabcmd.CreateInvitationResult](
			func(_ context.Context, cmd collabcmd.CreateInvitationCommand) (*collabcmd.CreateInvitationResult, error) {
				if cmd.Email == "dup@example.com" {
					return nil, collaboration.ErrInvitationAlreadyExists
				}
				return &collabcmd.CreateInvitationResult{Invitation: &collabcmd.InvitationDTO{ID: "i-1", Email: cmd.Email, Role: cmd.Role, Token: "tok"}}, nil
			}),
		AcceptByToken: command.HandlerFunc[collabcmd.AcceptInvitationByTokenCommand, *collabcmd.AcceptInvitationResult](
			func(_ context.Context, cmd collabcmd.AcceptInvitationByTokenCommand) (*collabcmd.AcceptInvitationResult, error) {
				accepted = cmd
				return &collabcmd.AcceptInvitationResult{TeamID: "t-1", TeamName: "Platform", Role: "member"}, nil
			}),
		RejectInvitation: command.Exec(func(_ context.Context, cmd collabcmd.RejectInvitationCommand) error {
			return collaboration.ErrInvitationExpired
		}),
		CancelInvitation: command.Exec(func(_ context.Context, cmd collabcmd.CancelInvitationCommand) error {
			return nil
		}),
	}
	queries := Queries{
		ListTeamInvitations: query.HandlerFunc[collabquery.ListTeamInvitationsQuery, *collabquery.ListInvitationsResult](
			func(_ context.Context, q collabquery.ListTeamInvitationsQuery) (*collabquery.ListInvitationsResult, error) {
				listed = q
				return &collabquery.ListInvitationsResult{Invitations: []*collabcmd.InvitationDTO{}}, nil
			}),
		GetInvitationByToken: query.HandlerFunc[collabquery.GetInvitationByTokenQuery, *collabquery.GetInvitationResult](
			func(_ context.Context, q collabquery.GetInvitationByTokenQuery) (*collabquery.GetInvitationResult, error) {
				return nil, collaboration.ErrInvitationNotFound
			}),
	}
	router := newRouter(commands, queries, asActor)

	t.Run("send returns the token once", func(t *testing.T) {
		w := do(router, "POST", "/api/v1/teams/t-1/invitations", `{"email":"new@example.com","role":"admin"}`)
		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), `"token":"tok"`)
	})

	t.Run("duplicate pending invitation conflicts", func(t *testing.T) {
		w := do(router, "POST", "/api/v1/teams/t-1/invitations", `{"email":"dup@example.com"}`)
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("list passes status filter", func(t *testing.T) {
		w := do(router, "GET", "/api/v1/teams/t-1/invitations?status=pending", "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "pending", listed.Status)
		assert.Equal(t, "t-1", listed.TeamID)
		assert.JSONEq(t, `{"invitations":[]}`, w.Body.String())
	})

	t.Run("accept by token", func(t *testing.T) {
		w := do(router, "POST", "/api/v1/invitations/token/abc/accept", "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "abc", accepted.Token)
		assert.Equal(t, actorID.String(), accepted.ActorID)
		assert.JSONEq(t, `{"team_id":"t-1","team_name":"Platform","role":"member"}`, w.Body.String())
	})

	t.Run("reject expired invitation", func(t *testing.T) {
		w := do(router, "POST", "/api/v1/invitations/i-1/reject", "")
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Equal(t, "invitation_expired", decodeError(t, w).Error.Code)
	})

	t.Run("cancel", func(t *testing.T) {
		assert.Equal(t, http.StatusNoContent, do(router, "DELETE", "/api/v1/invitations/i-1", "").Code)
	})

	t.Run("unknown token", func(t *testing.T) {
		w := do(router, "GET", "/api/v1/invitations/token/zzz", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
