//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"

	"github.com/teamhub/server/internal/infra/config"
)

// AppSet is the full provider graph.
var AppSet = wire.NewSet(
	InfraSet,
	RepositorySet,
	SecuritySet,
	HTTPSet,
)

// InitializeDependencies builds every dependency of the server from cfg.
func InitializeDependencies(cfg *config.Config) (*Dependencies, func(), error) {
	wire.Build(
		AppSet,
		wire.Struct(new(Dependencies), "*"),
	)
	return nil, nil, nil
}
