package websocket

import (
	"encoding/json"
	"time"

	"impostor-party-be/internal/service"
	"impostor-party-be/internal/service/dto"
	"impostor-party-be/internal/state"

	"github.com/gorilla/websocket"
	"github.com/kataras/iris/v12"
	"go.uber.org/zap"
)

// Serve 把升级后的连接接入会话网关。
// 首帧必须是 CreateRoom 或 JoinRoom，完成连接到房间的绑定；
// 之后读循环把请求交给网关分发，读循环退出即视为断开。
func Serve(appState *state.AppState) iris.Handler {
	return func(ctx iris.Context) {
		conn, err := upgrader.Upgrade(
			ctx.ResponseWriter(),
			ctx.Request(),
			nil,
		)
		if err != nil {
			zap.L().Error("升级到WebSocket失败", zap.Error(err))
			ctx.StatusCode(iris.StatusBadRequest)
			return
		}

		defer conn.Close()

		conn.SetReadDeadline(time.Now().Add(HEARTBEAT_TIMEOUT))
		conn.SetPongHandler(heartbeatHandler(conn))

		clientIP := ctx.RemoteAddr()
		connID := service.GenPlayerID()
		gw := appState.Gateway

		sendCh := make(chan dto.ResponseWrapper, 64)

		// 写协程的退出信号
		writeDoneCh := make(chan struct{})
		defer close(writeDoneCh)

		go writePump(conn, sendCh, writeDoneCh, clientIP)

		bound := false

		for {
			_, msg, err := conn.ReadMessage()
			if err != nil {
				if websocket.IsUnexpectedCloseError(
					err,
					websocket.CloseGoingAway,
					websocket.CloseAbnormalClosure,
				) {
					zap.L().Error(
						"读取消息失败",
						zap.String("client_ip", clientIP),
						zap.Error(err),
					)
				}

				break
			}

			var wrapper dto.RequestWrapper

			if err := json.Unmarshal(msg, &wrapper); err != nil {
				zap.L().Error(
					"解析消息失败",
					zap.String("client_ip", clientIP),
					zap.Error(err),
				)

				sendCh <- dto.WrapErrResponse("无效的请求格式")

				continue
			}

			if !bound {
				switch wrapper.ReqType {
				case dto.REQ_CREATE_ROOM:
					req := dto.TryUnwrapCreateRoomRequest(wrapper)
					if req == nil {
						sendCh <- dto.WrapErrResponse("无效的请求格式")
						continue
					}

					if err := gw.HandleCreateRoom(connID, *req, sendCh); err == nil {
						bound = true
					}

				case dto.REQ_JOIN_ROOM:
					req := dto.TryUnwrapJoinRoomRequest(wrapper)
					if req == nil {
						sendCh <- dto.WrapErrResponse("无效的请求格式")
						continue
					}

					if err := gw.HandleJoinRoom(connID, *req, sendCh); err == nil {
						bound = true

						zap.L().Info(
							"玩家成功加入房间",
							zap.String("client_ip", clientIP),
							zap.String("player_id", connID),
						)
					}

				default:
					sendCh <- dto.WrapErrResponse("请先创建或加入房间")
				}

				continue
			}

			gw.Dispatch(connID, wrapper, sendCh)
		}

		// 读循环退出表示客户端断开，交给网关清理玩家
		if bound {
			gw.HandleDisconnect(connID)
		}

		zap.L().Info(
			"WebSocket连接处理完成",
			zap.String("client_ip", clientIP),
			zap.String("conn_id", connID),
		)
	}
}
