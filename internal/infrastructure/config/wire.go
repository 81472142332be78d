package config

import "github.com/google/wire"

// ProviderSet 配置 ProviderSet（*Config 由 main 加载后注入）
var ProviderSet = wire.NewSet(
	NewStorageConfig,
	NewServerConfig,
)
