package app

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/wire"
	"github.com/prometheus/client_golang/prometheus"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	// Domains
	"github.com/teamhub/server/internal/domain/auth"
	"github.com/teamhub/server/internal/domain/collaboration"
	"github.com/teamhub/server/internal/domain/project"
	"github.com/teamhub/server/internal/domain/user"

	// Application
	"github.com/teamhub/server/internal/app/command"
	authcmd "github.com/teamhub/server/internal/app/command/auth"
	collabcmd "github.com/teamhub/server/internal/app/command/collaboration"
	projectcmd "github.com/teamhub/server/internal/app/command/project"
	usercmd "github.com/teamhub/server/internal/app/command/user"
	"github.com/teamhub/server/internal/app/query"
	collabquery "github.com/teamhub/server/internal/app/query/collaboration"
	projectquery "github.com/teamhub/server/internal/app/query/project"
	userquery "github.com/teamhub/server/internal/app/query/user"

	// Inbound adapters
	authhttp "github.com/teamhub/server/internal/adapter/inbound/http/auth"
	collabhttp "github.com/teamhub/server/internal/adapter/inbound/http/collaboration"
	projecthttp "github.com/teamhub/server/internal/adapter/inbound/http/project"
	userhttp "github.com/teamhub/server/internal/adapter/inbound/http/user"

	// Outbound adapters
	redisadapter "github.com/teamhub/server/internal/adapter/outbound/redis"
	"github.com/teamhub/server/internal/adapter/outbound/security"

	// Infrastructure
	"github.com/teamhub/server/internal/infra/config"
	"github.com/teamhub/server/internal/infra/database"
	"github.com/teamhub/server/internal/infra/events"
	"github.com/teamhub/server/internal/infra/persistence"

	// Utils
	"github.com/teamhub/server/internal/utils/logger"
	"github.com/teamhub/server/internal/utils/metrics"
	"github.com/teamhub/server/internal/utils/middleware"
	"github.com/teamhub/server/internal/utils/random"
)

// ===== Infrastructure Providers =====

// InfraSet provides infrastructure dependencies.
var InfraSet = wire.NewSet(
	ProvideZapLogger,
	ProvideDatabase,
	ProvideRedisClient,
	ProvideMetrics,
	ProvideEventBus,
	wire.Bind(new(collabcmd.EventPublisher), new(*events.Bus)),
)

// ProvideZapLogger creates the process logger.
func ProvideZapLogger(cfg *config.Config) (*zap.Logger, func(), error) {
	log, err := logger.NewZapLogger(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("init zap logger: %w", err)
	}
	return log, func() { _ = log.Sync() }, nil
}

// ProvideDatabase creates a database connection.
func ProvideDatabase(cfg *config.Config, log *zap.Logger) (*gorm.DB, func(), error) {
	db, err := database.New(&cfg.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("init database: %w", err)
	}
	cleanup := func() {
		if err := database.Close(db); err != nil {
			log.Warn("close database", zap.Error(err))
		}
	}
	return db, cleanup, nil
}

// ProvideRedisClient creates a Redis client. Sessions live in Redis, so
// an unreachable server fails startup.
func ProvideRedisClient(cfg *config.Config, log *zap.Logger) (goredis.UniversalClient, func(), error) {
	client, err := database.NewRedisClient(context.Background(), &cfg.Redis)
	if err != nil {
		return nil, nil, fmt.Errorf("init redis: %w", err)
	}
	cleanup := func() {
		if err := client.Close(); err != nil {
			log.Warn("close redis", zap.Error(err))
		}
	}
	return client, cleanup, nil
}

// ProvideMetrics registers the application metrics on the default registerer.
func ProvideMetrics() *metrics.Metrics {
	return metrics.New("teamhub", prometheus.DefaultRegisterer)
}

// ProvideEventBus creates the event bus with the audit log and event counters attached.
func ProvideEventBus(log *zap.Logger, m *metrics.Metrics) *events.Bus {
	bus := events.NewBus(log)
	types := collaboration.EventTypes()
	bus.Register(events.NewAuditHandler(types, log.Named("audit")))
	bus.Register(events.NewCounterHandler(types, m.CollaborationEventsTotal))
	return bus
}

// ===== Repository Providers =====

// RepositorySet provides all repository implementations.
var RepositorySet = wire.NewSet(
	persistence.NewUserRepository,
	wire.Bind(new(user.Repository), new(*persistence.UserRepository)),

	persistence.NewTeamRepository,
	wire.Bind(new(collaboration.TeamRepository), new(*persistence.TeamRepository)),

	persistence.NewInvitationRepository,
	wire.Bind(new(collaboration.InvitationRepository), new(*persistence.InvitationRepository)),

	persistence.NewProjectRepository,
	wire.Bind(new(project.Repository), new(*persistence.ProjectRepository)),

	persistence.NewTransactor,
	wire.Bind(new(collaboration.Transactor), new(*persistence.Transactor)),

	usercmd.NewDirectory,
	wire.Bind(new(collaboration.UserLookup), new(*usercmd.Directory)),
)

// ===== Security Providers =====

// SecuritySet provides credential, token and throttling adapters.
var SecuritySet = wire.NewSet(
	ProvideJWTManager,
	wire.Bind(new(auth.TokenIssuer), new(*security.JWTManager)),
	wire.Bind(new(middleware.TokenValidator), new(*security.JWTManager)),

	ProvidePasswordHasher,
	wire.Bind(new(auth.PasswordHasher), new(*security.BcryptHasher)),

	ProvideRefreshTokenStore,
	ProvideInvitationTokens,
	wire.Bind(new(collaboration.TokenGenerator), new(*random.InvitationTokens)),

	ProvideCollaborationConfig,
	redisadapter.NewRateLimiter,
	ProvideRouteLimits,
)

// ProvideJWTManager creates the access token issuer and validator.
func ProvideJWTManager(cfg *config.Config) *security.JWTManager {
	return security.NewJWTManager(&security.JWTConfig{
		Secret:             cfg.Auth.JWTSecret,
		Issuer:             cfg.Auth.Issuer,
		AccessTokenExpiry:  cfg.Auth.AccessTokenExpiry,
		RefreshTokenExpiry: cfg.Auth.RefreshTokenExpiry,
	})
}

// ProvidePasswordHasher creates the bcrypt hasher.
func ProvidePasswordHasher(cfg *config.Config) *security.BcryptHasher {
	return security.NewBcryptHasher(cfg.Auth.BcryptCost)
}

// ProvideRefreshTokenStore creates the breaker guarded session store.
func ProvideRefreshTokenStore(cfg *config.Config, client goredis.UniversalClient) auth.RefreshTokenStore {
	return redisadapter.NewRefreshTokenStore(client, redisadapter.BreakerConfig{
		FailureThreshold: cfg.Redis.FailureThreshold,
		Interval:         cfg.Redis.BreakerInterval,
		Timeout:          cfg.Redis.BreakerTimeout,
	})
}

// ProvideInvitationTokens creates the invitation token generator.
func ProvideInvitationTokens(cfg *collaboration.Config) *random.InvitationTokens {
	return random.NewInvitationTokens(cfg.InvitationTokenLength)
}

// ProvideCollaborationConfig maps the collaboration section onto domain settings.
func ProvideCollaborationConfig(cfg *config.Config) (*collaboration.Config, error) {
	c := &collaboration.Config{
		InvitationExpiry:      cfg.Collaboration.InvitationExpiry,
		InvitationTokenLength: cfg.Collaboration.InvitationTokenLength,
		AcceptBaseURL:         cfg.Collaboration.AcceptBaseURL,
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("collaboration config: %w", err)
	}
	return c, nil
}

// RouteLimits holds the throttles for sensitive routes.
type RouteLimits struct {
	Auth       gin.HandlerFunc
	Invitation gin.HandlerFunc
}

// ProvideRouteLimits builds per-route throttles. Disabled limits pass through.
func ProvideRouteLimits(cfg *config.Config, limiter *redisadapter.RateLimiter) RouteLimits {
	if !cfg.RateLimit.Enabled {
		return RouteLimits{Auth: passThrough, Invitation: passThrough}
	}
	rl := cfg.RateLimit
	return RouteLimits{
		Auth:       middleware.RateLimitByIP(limiter, "auth", rl.AuthLimit, rl.Window),
		Invitation: middleware.RateLimitByUser(limiter, "invite", rl.InvitationLimit, rl.Window),
	}
}

func passThrough(c *gin.Context) { c.Next() }

// ===== HTTP Providers =====

// HTTPSet provides the inbound HTTP handlers.
var HTTPSet = wire.NewSet(
	ProvideAuthHTTP,
	ProvideUserHTTP,
	ProvideCollaborationHTTP,
	ProvideProjectHTTP,
)

// ProvideAuthHTTP wires registration and session handlers.
func ProvideAuthHTTP(
	users user.Repository,
	hasher auth.PasswordHasher,
	issuer auth.TokenIssuer,
	store auth.RefreshTokenStore,
	log *zap.Logger,
	m *metrics.Metrics,
) *authhttp.Handler {
	return authhttp.NewHandler(authhttp.Commands{
		Register: usercmd.NewRegisterHandler(users, hasher, log),
		Login:    authcmd.NewLoginHandler(users, hasher, issuer, store, log),
		Refresh:  authcmd.NewRefreshTokensHandler(users, issuer, store),
		Logout:   command.Exec(authcmd.NewLogoutHandler(store).Handle),
	}, m)
}

// ProvideUserHTTP wires the profile handlers.
func ProvideUserHTTP(users user.Repository) *userhttp.Handler {
	return userhttp.NewHandler(
		userquery.NewGetUserHandler(users),
		usercmd.NewUpdateProfileHandler(users),
	)
}

// ProvideCollaborationHTTP wires team, membership and invitation handlers.
func ProvideCollaborationHTTP(
	teams collaboration.TeamRepository,
	invitations collaboration.InvitationRepository,
	users collaboration.UserLookup,
	tx collaboration.Transactor,
	tokens collaboration.TokenGenerator,
	publisher collabcmd.EventPublisher,
	cfg *collaboration.Config,
	log *zap.Logger,
) *collabhttp.Handler {
	accept := collabcmd.NewAcceptInvitationHandler(teams, invitations, users, tx, publisher, log)
	reject := collabcmd.NewRejectInvitationHandler(invitations, users, publisher)

	commands := collabhttp.Commands{
		CreateTeam:       collabcmd.NewCreateTeamHandler(teams, publisher),
		UpdateTeam:       collabcmd.NewUpdateTeamHandler(teams, publisher),
		DeleteTeam:       command.Exec(collabcmd.NewDeleteTeamHandler(teams, publisher).Handle),
		ChangeMemberRole: collabcmd.NewChangeMemberRoleHandler(teams, publisher),
		RemoveMember:     command.Exec(collabcmd.NewRemoveMemberHandler(teams, publisher).Handle),
		LeaveTeam:        command.Exec(collabcmd.NewLeaveTeamHandler(teams, publisher).Handle),
		CreateInvitation: collabcmd.NewCreateInvitationHandler(teams, invitations, tokens, publisher, cfg),
		CancelInvitation: command.Exec(collabcmd.NewCancelInvitationHandler(teams, invitations, publisher).Handle),
		AcceptInvitation: accept,
		AcceptByToken:    command.HandlerFunc[collabcmd.AcceptInvitationByTokenCommand, *collabcmd.AcceptInvitationResult](accept.HandleByToken),
		RejectInvitation: command.Exec(reject.Handle),
		RejectByToken:    command.Exec(reject.HandleByToken),
	}
	queries := collabhttp.Queries{
		GetTeam:              collabquery.NewGetTeamHandler(teams),
		ListMyTeams:          collabquery.NewListMyTeamsHandler(teams),
		ListMembers:          collabquery.NewListMembersHandler(teams),
		ListTeamInvitations:  collabquery.NewListTeamInvitationsHandler(teams, invitations),
		ListMyInvitations:    collabquery.NewListMyInvitationsHandler(invitations, users),
		GetInvitationByToken: collabquery.NewGetInvitationByTokenHandler(teams, invitations, users),
	}
	return collabhttp.NewHandler(commands, queries)
}

// ProvideProjectHTTP wires the project handlers.
func ProvideProjectHTTP(
	teams collaboration.TeamRepository,
	projects project.Repository,
	tx collaboration.Transactor,
) *projecthttp.Handler {
	archive := projectcmd.NewArchiveProjectHandler(teams, projects)
	type dtoHandler = command.HandlerFunc[projectcmd.ProjectCommand, *projectcmd.ProjectDTO]

	commands := projecthttp.Commands{
		Create:  projectcmd.NewCreateProjectHandler(teams, projects),
		Update:  projectcmd.NewUpdateProjectHandler(teams, projects),
		Archive: dtoHandler(archive.Archive),
		Restore: dtoHandler(archive.Restore),
		Delete:  command.Exec(projectcmd.NewDeleteProjectHandler(teams, projects).Handle),
		Reorder: projectcmd.NewReorderProjectsHandler(teams, projects, tx),
	}
	var list query.Handler[projectquery.ListProjectsQuery, []*projectcmd.ProjectDTO] = projectquery.NewListProjectsHandler(teams, projects)
	return projecthttp.NewHandler(commands, list)
}
