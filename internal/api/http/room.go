package http

import (
	"fmt"
	"strings"

	"impostor-party-be/internal/service/game"
	"impostor-party-be/internal/state"

	"github.com/kataras/iris/v12"
	"github.com/skip2/go-qrcode"
	"go.uber.org/zap"
)

// PeekRoom 给加入页面用的房间预览，不暴露对局内部状态
func PeekRoom(appState *state.AppState) iris.Handler {
	return func(ctx iris.Context) {
		code := strings.ToUpper(ctx.Params().Get("code"))

		room, ok := appState.Gateway.Registry().Get(code)
		if !ok {
			ctx.StatusCode(iris.StatusNotFound)
			ctx.JSON(iris.Map{
				"error": "房间不存在",
			})
			return
		}

		room.Lock()
		resp := iris.Map{
			"room_code":    room.Code,
			"phase":        room.Phase,
			"player_count": len(room.Players),
			"joinable":     room.Phase == game.PHASE_LOBBY && len(room.Players) < game.MAX_PLAYERS,
		}
		room.Unlock()

		ctx.JSON(resp)
	}
}

// RoomJoinQR 生成指向加入页面的二维码，方便线下扫码进房
func RoomJoinQR(appState *state.AppState) iris.Handler {
	return func(ctx iris.Context) {
		code := strings.ToUpper(ctx.Params().Get("code"))

		if _, ok := appState.Gateway.Registry().Get(code); !ok {
			ctx.StatusCode(iris.StatusNotFound)
			ctx.JSON(iris.Map{
				"error": "房间不存在",
			})
			return
		}

		joinURL := fmt.Sprintf(
			"http://%s:%d/?room=%s",
			appState.Cfg.Host,
			appState.Cfg.Port,
			code,
		)

		png, err := qrcode.Encode(joinURL, qrcode.Medium, 256)
		if err != nil {
			zap.L().Error("生成二维码失败", zap.Error(err))
			ctx.StatusCode(iris.StatusInternalServerError)
			return
		}

		ctx.ContentType("image/png")
		ctx.Write(png)
	}
}
