package websocket

import (
	"net/http"
	"time"

	"impostor-party-be/internal/service/dto"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// NOTE: 暂时允许所有来源
		return true
	},
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

const (
	// 心跳间隔
	HEARTBEAT_INTERVAL = 30 * time.Second
	// 心跳超时时间
	HEARTBEAT_TIMEOUT = 45 * time.Second
)

var heartbeatHandler = func(conn *websocket.Conn) func(string) error {
	return func(string) error {
		conn.SetReadDeadline(time.Now().Add(HEARTBEAT_TIMEOUT))
		return nil
	}
}

// writePump 负责单个连接的全部写入：心跳和出站消息
func writePump(
	conn *websocket.Conn,
	sendCh <-chan dto.ResponseWrapper,
	done <-chan struct{},
	clientIP string,
) {
	ticker := time.NewTicker(HEARTBEAT_INTERVAL)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			zap.L().Info(
				"WebSocket写入协程退出",
				zap.String("client_ip", clientIP),
			)
			return

		case <-ticker.C:
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				zap.L().Error(
					"发送心跳失败",
					zap.String("client_ip", clientIP),
					zap.Error(err),
				)
				return
			}

			conn.SetWriteDeadline(time.Now().Add(HEARTBEAT_TIMEOUT))

		case resp := <-sendCh:
			if err := conn.WriteJSON(resp); err != nil {
				zap.L().Error(
					"发送消息失败",
					zap.String("client_ip", clientIP),
					zap.Error(err),
				)
				return
			}

			zap.L().Debug(
				"发送消息",
				zap.String("client_ip", clientIP),
				zap.Any("response", resp),
			)
		}
	}
}
