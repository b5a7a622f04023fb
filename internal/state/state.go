package state

import (
	"impostor-party-be/internal/config"
	"impostor-party-be/internal/service"
)

type AppState struct {
	Cfg     *config.AppConfig
	Gateway *service.SessionGateway
}

func NewAppState(
	cfg *config.AppConfig,
	gateway *service.SessionGateway,
) *AppState {
	return &AppState{
		Cfg:     cfg,
		Gateway: gateway,
	}
}
