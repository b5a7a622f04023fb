package game

import (
	"sync"
	"time"

	"impostor-party-be/internal/service/dto"

	"go.uber.org/zap"
)

// 游戏整体分为 4 个阶段：
// 1. 大厅阶段（LOBBY）：玩家可以加入房间，等待房主开始游戏
// 2. 亮牌阶段（REVEAL）：每个玩家私下查看自己的身份和词语
// 3. 讨论阶段（DISCUSSION）：玩家自由讨论，倒计时每秒同步一次
// 4. 结束阶段（ENDED）：公布身份和胜利方，房间保留可再来一局
const (
	PHASE_LOBBY      = "LOBBY"
	PHASE_REVEAL     = "REVEAL"
	PHASE_DISCUSSION = "DISCUSSION"
	PHASE_ENDED      = "ENDED"
)

// 玩家身份
const (
	ROLE_UNSET    = "Unset"
	ROLE_CITIZEN  = "Citizen"
	ROLE_IMPOSTOR = "Impostor"
)

// 胜利方
const (
	TEAM_CITIZENS  = "Citizens"
	TEAM_IMPOSTORS = "Impostors"
)

// 卧底收到的占位词，表示"没有词"
const IMPOSTOR_PLACEHOLDER = "???"

const (
	MIN_PLAYERS = 3
	MAX_PLAYERS = 10
)

type Player struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	IsHost bool   `json:"is_host"`
	Role   string `json:"-"`

	// 出站消息通道，由网关写入，连接的写协程读取
	SendCh chan dto.ResponseWrapper `json:"-"`
}

// Room 是单个房间的全部可变状态，除构造外的一切读写都要持有锁
type Room struct {
	sync.Mutex

	Code             string
	Phase            string
	SecretWord       string
	ImpostorCount    int
	RemainingSeconds int

	// 按加入顺序排列，房主交接时顺位第一个继任
	Players []*Player

	// 房间从注册表移除后置位，拦截迟到的回调和加入请求
	Closed bool

	// 亮牌到讨论的延迟任务，仅在 REVEAL 阶段存在
	RevealTimer *time.Timer
	// 讨论倒计时的停止通道，仅在倒计时运行时存在
	CountdownStop chan struct{}
}

func NewRoom(code string, host *Player) *Room {
	return &Room{
		Code:    code,
		Phase:   PHASE_LOBBY,
		Players: []*Player{host},
	}
}

// FindPlayer 返回指定 ID 的玩家，不存在时为 nil
func (r *Room) FindPlayer(id string) *Player {
	for _, p := range r.Players {
		if p.ID == id {
			return p
		}
	}

	return nil
}

// RemovePlayer 按 ID 移除玩家，返回被移除的玩家及其是否为房主
func (r *Room) RemovePlayer(id string) (*Player, bool) {
	for i, p := range r.Players {
		if p.ID == id {
			r.Players = append(r.Players[:i], r.Players[i+1:]...)
			return p, p.IsHost
		}
	}

	return nil, false
}

// PlayerInfos 生成广播用的玩家列表快照
func (r *Room) PlayerInfos() []dto.PlayerInfo {
	infos := make([]dto.PlayerInfo, 0, len(r.Players))

	for _, p := range r.Players {
		infos = append(infos, dto.PlayerInfo{
			ID:     p.ID,
			Name:   p.Name,
			IsHost: p.IsHost,
		})
	}

	return infos
}

// Broadcast 向房间内所有玩家发送响应，通道满时丢弃并告警
func (r *Room) Broadcast(resp dto.ResponseWrapper) {
	for _, p := range r.Players {
		select {
		case p.SendCh <- resp:
		default:
			zap.L().Warn(
				"发送广播响应失败：玩家响应通道已满",
				zap.String("player_id", p.ID),
			)
		}
	}
}

// Unicast 向单个玩家发送响应
func (r *Room) Unicast(playerID string, resp dto.ResponseWrapper) {
	player := r.FindPlayer(playerID)
	if player == nil {
		zap.L().Warn(
			"无法找到玩家进行单播响应",
			zap.String("player_id", playerID),
		)
		return
	}

	select {
	case player.SendCh <- resp:
		zap.L().Debug(
			"发送单播响应成功",
			zap.String("player_id", playerID),
			zap.Any("response", resp),
		)
	default:
		zap.L().Warn(
			"发送单播响应失败：玩家响应通道已满",
			zap.String("player_id", playerID),
		)
	}
}

// CancelTimers 撤销亮牌延迟和讨论倒计时，可重复调用
func (r *Room) CancelTimers() {
	if r.RevealTimer != nil {
		r.RevealTimer.Stop()
		r.RevealTimer = nil
	}

	if r.CountdownStop != nil {
		close(r.CountdownStop)
		r.CountdownStop = nil
	}
}
