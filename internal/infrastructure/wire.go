package infrastructure

import (
	"github.com/google/wire"
	"github.com/taskboard/backend/internal/infrastructure/config"
	"github.com/taskboard/backend/internal/infrastructure/notification"
	"github.com/taskboard/backend/internal/infrastructure/storage"
	"github.com/taskboard/backend/internal/infrastructure/watcher"
	"github.com/taskboard/backend/internal/infrastructure/websocket"
)

// ProviderSet Infrastructure 层总 ProviderSet
var ProviderSet = wire.NewSet(
	config.ProviderSet,
	storage.ProviderSet,
	watcher.ProviderSet,
	websocket.ProviderSet,
	notification.ProviderSet,
)
