package http

import (
	"fmt"

	"impostor-party-be/internal/api/http/websocket"
	"impostor-party-be/internal/state"

	"github.com/kataras/iris/v12"
)

func RunServer(appState *state.AppState) {
	app := iris.Default()

	app.HandleDir(
		"/",
		iris.Dir("./impostor-party-fe"),
		iris.DirOptions{
			IndexName: "index.html",
			SPA:       true,
			Compress:  true,
		},
	)

	api := app.Party("/api/v1")

	api.Get("/rooms/{code}", PeekRoom(appState))
	api.Get("/rooms/{code}/qr", RoomJoinQR(appState))

	api.Get("/ws", websocket.Serve(appState))

	addr := fmt.Sprintf(
		"%s:%d",
		appState.Cfg.Host,
		appState.Cfg.Port,
	)

	app.Listen(addr)
}
