package singleton

import (
	"errors"
	"fmt"
	"net"
	"syscall"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	// HealthCheckTimeout 健康检查超时时间
	HealthCheckTimeout = 2 * time.Second
	// healthPath 健康检查路径
	healthPath = "/health"
	// wsaeAddrInUse Windows 下的 WSAEADDRINUSE
	wsaeAddrInUse = syscall.Errno(10048)
)

// ErrUnhealthyInstance 端口被占用但占用方不是健康的 taskboard 实例
var ErrUnhealthyInstance = errors.New("port is in use by an unhealthy instance")

// healthResponse /health 响应
type healthResponse struct {
	Status string `json:"status"`
}

// CheckAndLock 检查端口是否被占用，如果被占用则检查是否有实例在运行
// 端口可用时返回 listener；已有健康实例时返回 nil listener 和 nil error（调用者应退出）
func CheckAndLock(addr string) (net.Listener, error) {
	listener, err := net.Listen("tcp", addr)
	if err == nil {
		return listener, nil
	}

	if !isAddrInUse(err) {
		return nil, fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	if isInstanceRunning(addr) {
		return nil, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnhealthyInstance, addr)
}

// isAddrInUse 检查错误是否是地址已在使用
func isAddrInUse(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, syscall.EADDRINUSE) || errors.Is(err, wsaeAddrInUse)
}

// isInstanceRunning 请求 /health 判断是否已有实例
func isInstanceRunning(addr string) bool {
	url, err := healthURL(addr)
	if err != nil {
		return false
	}

	var body healthResponse
	resp, err := resty.New().
		SetTimeout(HealthCheckTimeout).
		R().
		SetResult(&body).
		Get(url)
	if err != nil {
		return false
	}
	return resp.StatusCode() == 200 && body.Status == "ok"
}

// healthURL 监听地址转换为健康检查 URL，未指定主机时使用 localhost
func healthURL(addr string) (string, error) {
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return "", err
	}
	if host == "" || host == "0.0.0.0" || host == "::" {
		host = "localhost"
	}
	return "http://" + net.JoinHostPort(host, port) + healthPath, nil
}
