//go:build wireinject
// +build wireinject

package wire

import (
	"github.com/google/wire"
	"github.com/taskboard/backend/internal/application"
	"github.com/taskboard/backend/internal/domain/todo"
	"github.com/taskboard/backend/internal/infrastructure"
	"github.com/taskboard/backend/internal/infrastructure/config"
	"github.com/taskboard/backend/internal/interfaces"
)

// InitializeAll 初始化所有服务（HTTP + MCP），cleanup 按创建逆序释放资源
func InitializeAll(cfg *config.Config) (*App, func(), error) {
	wire.Build(
		// 按层组合 ProviderSet
		infrastructure.ProviderSet, // 基础设施层
		todo.ProviderSet,           // 领域层
		application.ProviderSet,    // 应用层
		interfaces.ProviderSet,     // 接口层
		NewApp,                     // 组合所有服务的应用结构
	)
	return nil, nil, nil
}
