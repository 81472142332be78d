package application

import (
	"github.com/google/wire"
	"github.com/taskboard/backend/internal/application/todo"
)

// ProviderSet Application 层总 ProviderSet
var ProviderSet = wire.NewSet(
	todo.ProviderSet,
)
