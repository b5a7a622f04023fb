package main

import (
	"time"

	"impostor-party-be/internal/api/http"
	"impostor-party-be/internal/config"
	"impostor-party-be/internal/logger"
	"impostor-party-be/internal/service"
	"impostor-party-be/internal/service/game"
	"impostor-party-be/internal/state"
)

func main() {
	// 加载配置
	cfg := config.InitConfig()

	// 初始化日志器
	logger.InitLogger(cfg.LogLevel)

	// 组装游戏组件
	bank := game.NewWordBank(cfg.Words)
	engine := game.NewEngine(bank, cfg.DiscussionSeconds)
	registry := service.NewRoomRegistry()
	timers := service.NewTimerService(engine)

	gateway := service.NewSessionGateway(
		registry,
		engine,
		timers,
		time.Duration(cfg.RevealDelaySeconds)*time.Second,
	)

	// 组装应用状态
	appState := state.NewAppState(cfg, gateway)

	// 启动服务器
	http.RunServer(appState)
}
