package game

import (
	"math/rand"
	"strings"

	"impostor-party-be/internal/service/dto"

	"go.uber.org/zap"
)

// Engine 是无状态的对局逻辑，持有词库，对传入的单个房间做变更。
// 所有方法都要求调用方已持有该房间的锁。
type Engine struct {
	bank *WordBank

	// 讨论阶段时长（秒），开局和结束复位时写入房间
	discussionSeconds int
}

func NewEngine(bank *WordBank, discussionSeconds int) *Engine {
	if discussionSeconds <= 0 {
		discussionSeconds = 300
	}

	return &Engine{
		bank:              bank,
		discussionSeconds: discussionSeconds,
	}
}

// AssignRoles 抽词并给所有玩家分配身份，进入亮牌阶段。
// 卧底数量被收敛到 [1, 玩家数-1]，保证双方都有人。
func (e *Engine) AssignRoles(room *Room, impostorCount int) {
	if impostorCount < 1 {
		impostorCount = 1
	}
	if impostorCount > len(room.Players)-1 {
		impostorCount = len(room.Players) - 1
	}

	room.SecretWord = strings.ToUpper(e.bank.Pick())
	room.ImpostorCount = impostorCount

	roles := make([]string, len(room.Players))
	for i := range roles {
		if i < impostorCount {
			roles[i] = ROLE_IMPOSTOR
		} else {
			roles[i] = ROLE_CITIZEN
		}
	}

	// Fisher–Yates 洗牌，身份到玩家的映射必须均匀
	for i := len(roles) - 1; i >= 1; i-- {
		j := rand.Intn(i + 1)
		roles[i], roles[j] = roles[j], roles[i]
	}

	for i, p := range room.Players {
		p.Role = roles[i]
	}

	room.Phase = PHASE_REVEAL
	room.RemainingSeconds = e.discussionSeconds

	zap.L().Info(
		"分配身份完成",
		zap.String("room_code", room.Code),
		zap.Int("player_count", len(room.Players)),
		zap.Int("impostor_count", impostorCount),
	)
}

// StartDiscussion 进入讨论阶段，倒计时由调用方启动
func (e *Engine) StartDiscussion(room *Room) {
	room.Phase = PHASE_DISCUSSION
}

// EndGame 结束本局：撤销定时任务，公布身份，复位对局字段。
// 房间和玩家列表保留，可以直接再开一局。
func (e *Engine) EndGame(room *Room, winner string) []dto.FinalRole {
	room.CancelTimers()

	room.Phase = PHASE_ENDED

	finals := make([]dto.FinalRole, 0, len(room.Players))
	for _, p := range room.Players {
		finals = append(finals, dto.FinalRole{
			Name: p.Name,
			Role: p.Role,
		})

		p.Role = ROLE_UNSET
	}

	room.SecretWord = ""
	room.ImpostorCount = 0
	room.RemainingSeconds = e.discussionSeconds

	zap.S().Infof("房间 %s 对局结束，%s 获胜", room.Code, winner)

	return finals
}
