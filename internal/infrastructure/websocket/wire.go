package websocket

import "github.com/google/wire"

// ProviderSet WebSocket Provider 集合
var ProviderSet = wire.NewSet(ProvideHub)

// ProvideHub 创建并启动 Hub，cleanup 时停止
func ProvideHub() (*Hub, func()) {
	hub := NewHub()
	hub.Start()
	return hub, hub.Stop
}
