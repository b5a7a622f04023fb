package service

import (
	"sync"
	"time"

	"impostor-party-be/internal/service/dto"
	"impostor-party-be/internal/service/game"

	"go.uber.org/zap"
)

// SessionGateway 把客户端事件翻译成房间操作，并把状态变化
// 广播给房间成员。连接身份即玩家 ID，连接到房间码的反向索引
// 让断开清理不用全表扫描。
type SessionGateway struct {
	registry *RoomRegistry
	engine   *game.Engine
	timers   *TimerService

	mu     sync.RWMutex
	byConn map[string]string

	// 亮牌到讨论开始的延迟，测试中会缩短
	revealDelay time.Duration
}

func NewSessionGateway(
	registry *RoomRegistry,
	engine *game.Engine,
	timers *TimerService,
	revealDelay time.Duration,
) *SessionGateway {
	return &SessionGateway{
		registry:    registry,
		engine:      engine,
		timers:      timers,
		byConn:      make(map[string]string),
		revealDelay: revealDelay,
	}
}

func (sg *SessionGateway) Registry() *RoomRegistry {
	return sg.registry
}

// HandleCreateRoom 处理建房事件，创建者成为房主并绑定连接
func (sg *SessionGateway) HandleCreateRoom(
	connID string,
	req dto.CreateRoomRequest,
	sendCh chan dto.ResponseWrapper,
) error {
	if req.PlayerName == "" {
		sg.reply(sendCh, dto.WrapErrResponse(game.ErrEmptyName.Error()))
		return game.ErrEmptyName
	}

	host := &game.Player{
		ID:     connID,
		Name:   req.PlayerName,
		IsHost: true,
		SendCh: sendCh,
	}

	room := sg.registry.CreateRoom(host)

	sg.mu.Lock()
	sg.byConn[connID] = room.Code
	sg.mu.Unlock()

	room.Lock()
	resp := dto.WrapResponse(
		dto.RESP_ROOM_CREATED,
		dto.RoomCreatedResponse{
			RoomCode: room.Code,
			PlayerID: host.ID,
			Players:  room.PlayerInfos(),
		},
	)
	room.Unlock()

	sg.reply(sendCh, resp)

	return nil
}

// HandleJoinRoom 处理加入事件，只在大厅阶段且房间未满时接纳
func (sg *SessionGateway) HandleJoinRoom(
	connID string,
	req dto.JoinRoomRequest,
	sendCh chan dto.ResponseWrapper,
) error {
	if req.PlayerName == "" {
		sg.reply(sendCh, dto.WrapErrResponse(game.ErrEmptyName.Error()))
		return game.ErrEmptyName
	}

	room, ok := sg.registry.Get(req.RoomCode)
	if !ok {
		sg.reply(sendCh, dto.WrapErrResponse(game.ErrRoomNotFound.Error()))
		return game.ErrRoomNotFound
	}

	room.Lock()

	if room.Closed {
		room.Unlock()
		sg.reply(sendCh, dto.WrapErrResponse(game.ErrRoomNotFound.Error()))
		return game.ErrRoomNotFound
	}

	if room.Phase != game.PHASE_LOBBY {
		room.Unlock()
		sg.reply(sendCh, dto.WrapErrResponse(game.ErrGameInProgress.Error()))
		return game.ErrGameInProgress
	}

	if len(room.Players) >= game.MAX_PLAYERS {
		room.Unlock()
		sg.reply(sendCh, dto.WrapErrResponse(game.ErrRoomFull.Error()))
		return game.ErrRoomFull
	}

	player := &game.Player{
		ID:     connID,
		Name:   req.PlayerName,
		SendCh: sendCh,
	}

	room.Players = append(room.Players, player)
	infos := room.PlayerInfos()

	// 先回给加入者，再广播新的玩家列表（广播也会到达加入者）
	room.Unicast(player.ID, dto.WrapResponse(
		dto.RESP_JOINED_ROOM,
		dto.JoinedRoomResponse{
			RoomCode: room.Code,
			PlayerID: player.ID,
			Players:  infos,
		},
	))

	room.Broadcast(dto.WrapResponse(
		dto.RESP_PLAYER_UPDATE,
		dto.PlayerUpdateResponse{Players: infos},
	))

	room.Unlock()

	sg.mu.Lock()
	sg.byConn[connID] = room.Code
	sg.mu.Unlock()

	zap.S().Infof("房间 %s 接纳玩家 %s", room.Code, player.Name)

	return nil
}

// HandleStartGame 处理开局事件，只有房主且人数足够时生效
func (sg *SessionGateway) HandleStartGame(
	connID string,
	req dto.StartGameRequest,
	sendCh chan dto.ResponseWrapper,
) error {
	room, ok := sg.registry.Get(req.RoomCode)
	if !ok {
		sg.reply(sendCh, dto.WrapErrResponse(game.ErrRoomNotFound.Error()))
		return game.ErrRoomNotFound
	}

	room.Lock()
	defer room.Unlock()

	caller := room.FindPlayer(connID)
	if caller == nil || !caller.IsHost {
		sg.reply(sendCh, dto.WrapErrResponse(game.ErrNotHost.Error()))
		return game.ErrNotHost
	}

	if len(room.Players) < game.MIN_PLAYERS {
		sg.reply(sendCh, dto.WrapErrResponse(game.ErrNotEnoughPlayers.Error()))
		return game.ErrNotEnoughPlayers
	}

	if room.Phase != game.PHASE_LOBBY && room.Phase != game.PHASE_ENDED {
		sg.reply(sendCh, dto.WrapErrResponse(game.ErrGameInProgress.Error()))
		return game.ErrGameInProgress
	}

	sg.engine.AssignRoles(room, req.NumImpostors)

	room.Broadcast(dto.WrapResponse(
		dto.RESP_PHASE_CHANGE,
		dto.PhaseChangeResponse{Phase: game.PHASE_REVEAL},
	))

	// 每个玩家单播各自的身份：平民看到谜底词，卧底只看到占位词
	infos := room.PlayerInfos()
	for _, p := range room.Players {
		word := room.SecretWord
		if p.Role == game.ROLE_IMPOSTOR {
			word = game.IMPOSTOR_PLACEHOLDER
		}

		room.Unicast(p.ID, dto.WrapResponse(
			dto.RESP_GAME_START,
			dto.GameStartResponse{
				Word:    word,
				Role:    p.Role,
				Players: infos,
			},
		))
	}

	// 延迟之后进入讨论阶段，期间玩家私下查看身份
	room.RevealTimer = time.AfterFunc(sg.revealDelay, func() {
		sg.beginDiscussion(room)
	})

	zap.S().Infof("房间 %s 开局，%d 名玩家", room.Code, len(room.Players))

	return nil
}

// beginDiscussion 是亮牌延迟到期后的回调。
// 房间此时可能已经解散或提前结束，必须先验阶段再动手。
func (sg *SessionGateway) beginDiscussion(room *game.Room) {
	room.Lock()
	defer room.Unlock()

	if room.Closed || room.Phase != game.PHASE_REVEAL {
		return
	}

	room.RevealTimer = nil

	sg.engine.StartDiscussion(room)

	room.Broadcast(dto.WrapResponse(
		dto.RESP_PHASE_CHANGE,
		dto.PhaseChangeResponse{Phase: game.PHASE_DISCUSSION},
	))

	sg.timers.Start(room)
}

// HandleRequestVote 处理表决事件：讨论阶段内立即结束对局，
// 判平民获胜；其余阶段静默忽略。
func (sg *SessionGateway) HandleRequestVote(connID string, req dto.RequestVoteRequest) {
	room, ok := sg.registry.Get(req.RoomCode)
	if !ok {
		return
	}

	room.Lock()
	defer room.Unlock()

	if room.Phase != game.PHASE_DISCUSSION {
		return
	}

	finals := sg.engine.EndGame(room, game.TEAM_CITIZENS)

	room.Broadcast(dto.WrapResponse(
		dto.RESP_GAME_ENDED,
		dto.GameEndedResponse{
			WinningTeam: game.TEAM_CITIZENS,
			FinalRoles:  finals,
		},
	))
}

// HandleDisconnect 在连接断开时清理玩家，永远不会失败。
// 房主离开时顺位第一个玩家继任；房间空了就从注册表移除。
func (sg *SessionGateway) HandleDisconnect(connID string) {
	sg.mu.Lock()
	code, ok := sg.byConn[connID]
	if ok {
		delete(sg.byConn, connID)
	}
	sg.mu.Unlock()

	if !ok {
		return
	}

	room, found := sg.registry.Get(code)
	if !found {
		return
	}

	room.Lock()

	removed, wasHost := room.RemovePlayer(connID)
	if removed == nil {
		room.Unlock()
		return
	}

	if len(room.Players) == 0 {
		sg.timers.Cancel(room)
		room.Unlock()
		sg.registry.Remove(code)
		return
	}

	if wasHost {
		next := room.Players[0]
		next.IsHost = true

		// 只在大厅阶段通知新房主，对局中保持沉默
		if room.Phase == game.PHASE_LOBBY {
			room.Unicast(next.ID, dto.WrapResponse(dto.RESP_HOST_PROMOTED, nil))
		}

		zap.S().Infof("房间 %s 房主交接给 %s", code, next.Name)
	}

	room.Broadcast(dto.WrapResponse(
		dto.RESP_PLAYER_UPDATE,
		dto.PlayerUpdateResponse{Players: room.PlayerInfos()},
	))

	room.Unlock()

	zap.S().Infof("房间 %s 玩家 %s 断开", code, removed.Name)
}

// Dispatch 处理已绑定房间的连接发来的后续请求
func (sg *SessionGateway) Dispatch(
	connID string,
	wrapper dto.RequestWrapper,
	sendCh chan dto.ResponseWrapper,
) {
	switch wrapper.ReqType {
	case dto.REQ_START_GAME:
		if req := dto.TryUnwrapStartGameRequest(wrapper); req != nil {
			sg.HandleStartGame(connID, *req, sendCh)
			return
		}

	case dto.REQ_REQUEST_VOTE:
		if req := dto.TryUnwrapRequestVoteRequest(wrapper); req != nil {
			sg.HandleRequestVote(connID, *req)
			return
		}

	case dto.REQ_CREATE_ROOM, dto.REQ_JOIN_ROOM:
		sg.reply(sendCh, dto.WrapErrResponse("连接已绑定房间"))
		return
	}

	sg.reply(sendCh, dto.WrapErrResponse("无效的请求格式"))
}

func (sg *SessionGateway) reply(sendCh chan<- dto.ResponseWrapper, resp dto.ResponseWrapper) {
	select {
	case sendCh <- resp:
	default:
		zap.L().Warn("发送响应失败：连接通道已满")
	}
}
