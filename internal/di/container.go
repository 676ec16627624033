package di

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"mboard/internal/application/usecase/board"
	"mboard/internal/domain/repository"
	"mboard/internal/domain/service"
	"mboard/internal/domain/valueobject"
	"mboard/internal/infrastructure/config"
	"mboard/internal/infrastructure/persistence"
	"mboard/internal/infrastructure/persistence/filesystem"
	"mboard/internal/infrastructure/persistence/memory"
	redisstore "mboard/internal/infrastructure/persistence/redis"
)

// ConfigPath is an explicit config file location; empty uses the defaults
type ConfigPath string

// Container holds all application dependencies
type Container struct {
	// Config
	ConfigLoader *config.Loader
	Config       *config.Config

	// Persistence
	StateStorage repository.StateStorage
	SnapshotRepo repository.SnapshotRepository

	// Domain Services
	History     *service.History
	BoardStore  *service.BoardStore
	DragSession *service.DragSession

	// Use Cases
	BoardUseCase *board.BoardUseCase
}

// Provider functions

func ProvideConfigLoader(path ConfigPath) (*config.Loader, error) {
	return config.NewLoader(string(path))
}

func ProvideConfig(loader *config.Loader) (*config.Config, error) {
	return loader.Load()
}

func ProvideStateStorage(ctx context.Context, cfg *config.Config) (repository.StateStorage, func(), error) {
	switch cfg.Storage.Backend {
	case config.BackendMemory:
		return memory.NewStateStorage(), func() {}, nil
	case config.BackendRedis:
		rc := cfg.Storage.Redis
		storage, err := redisstore.New(ctx, rc.Addr, rc.Password, rc.DB, rc.KeyPrefix)
		if err != nil {
			return nil, nil, err
		}
		cleanup := func() {
			if err := storage.Close(); err != nil {
				log.Warn().Err(err).Msg("failed to close redis client")
			}
		}
		return storage, cleanup, nil
	default:
		storage, err := filesystem.NewStateStorage(cfg.Storage.DataPath)
		if err != nil {
			return nil, nil, err
		}
		return storage, func() {}, nil
	}
}

func ProvideSnapshotRepository(storage repository.StateStorage, cfg *config.Config) (repository.SnapshotRepository, error) {
	return persistence.NewSnapshotRepository(storage, cfg.Storage.StateKey)
}

func ProvideHistory(repo repository.SnapshotRepository, cfg *config.Config) *service.History {
	return service.NewHistory(repo, cfg.History.Capacity)
}

func ProvideIDGenerator(cfg *config.Config) valueobject.IDGenerator {
	if cfg.IDs.Strategy == config.IDStrategySequence {
		return valueobject.NewSequenceGenerator()
	}
	return valueobject.NewUUIDGenerator()
}

func ProvideDragSession(store *service.BoardStore, cfg *config.Config) *service.DragSession {
	return service.NewDragSession(store, cfg.History.RecordDragTicks)
}

// ProvideBoardUseCase opens the persisted board before handing out the use case
func ProvideBoardUseCase(ctx context.Context, store *service.BoardStore, drag *service.DragSession) (*board.BoardUseCase, error) {
	uc := board.NewBoardUseCase(store, drag)
	if err := uc.Open(ctx); err != nil {
		return nil, fmt.Errorf("failed to open board: %w", err)
	}
	return uc, nil
}

// WatchState starts watching the state file for writes by other processes.
// It returns nil when the storage backend is not file based. The caller
// closes the watcher.
func (c *Container) WatchState() (*filesystem.StateWatcher, error) {
	fileStorage, ok := c.StateStorage.(*filesystem.StateStorageImpl)
	if !ok {
		return nil, nil
	}
	return filesystem.NewStateWatcher(fileStorage.PathBuilder(), c.Config.Storage.StateKey)
}
