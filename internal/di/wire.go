//go:build wireinject
// +build wireinject

package di

import (
	"context"

	"github.com/google/wire"

	"mboard/internal/domain/service"
)

// InitializeContainer sets up all dependencies
func InitializeContainer(ctx context.Context, configPath ConfigPath) (*Container, func(), error) {
	wire.Build(
		// Config
		ProvideConfigLoader,
		ProvideConfig,

		// Persistence
		ProvideStateStorage,
		ProvideSnapshotRepository,

		// Domain Services
		ProvideHistory,
		ProvideIDGenerator,
		service.NewBoardStore,
		ProvideDragSession,

		// Use Cases
		ProvideBoardUseCase,

		// Wire the container
		wire.Struct(new(Container), "*"),
	)
	return nil, nil, nil
}
