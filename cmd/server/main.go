// @title taskboard API
// @version 1.0
// @description taskboard 待办事项服务 API
// @host localhost:9090
// @BasePath /api/v1
// @schemes http
package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/taskboard/backend/internal/infrastructure/config"
	applog "github.com/taskboard/backend/internal/infrastructure/log"
	"github.com/taskboard/backend/internal/infrastructure/singleton"
	"github.com/taskboard/backend/internal/wire"
)

func main() {
	// 加载工作目录下的 .env（不存在时忽略）
	_ = godotenv.Load()

	// 加载配置（默认值 -> YAML -> 环境变量）
	cfg, err := config.LoadDefault()
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	// 初始化日志系统，配置文件中的级别和格式优先
	applog.Init(applog.NewConfigFromEnv().Override(cfg.Log.Level, cfg.Log.Format))

	// 单例锁检查：尝试获取端口锁
	listener, err := singleton.CheckAndLock(cfg.Server.HTTPPort)
	if err != nil {
		log.Fatalf("单例锁检查失败: %v", err)
	}
	if listener == nil {
		// 已有实例运行，直接退出
		log.Println("检测到已有实例在运行，当前进程退出")
		os.Exit(0)
	}
	// 关闭临时 listener，实际监听由 HTTP 服务器负责
	_ = listener.Close()

	// Wire 自动生成的初始化函数
	app, cleanup, err := wire.InitializeAll(cfg)
	if err != nil {
		applog.GetLogger().Error("Failed to initialize application",
			"error", err,
		)
		os.Exit(1)
	}

	// 启动所有服务
	if err := app.Start(); err != nil {
		applog.GetLogger().Error("Failed to start application",
			"error", err,
		)
		cleanup()
		os.Exit(1)
	}

	// 优雅关闭
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	exitCode := 0
	select {
	case <-sigChan:
		applog.GetLogger().Info("Shutting down application...")
	case err := <-app.Errors():
		applog.GetLogger().Error("HTTP server exited unexpectedly",
			"error", err,
		)
		exitCode = 1
	}

	if err := app.Stop(); err != nil {
		applog.GetLogger().Error("Error during application shutdown",
			"error", err,
		)
	}
	cleanup()
	applog.GetLogger().Info("Application stopped")
	os.Exit(exitCode)
}
