package service

import (
	"time"

	"impostor-party-be/internal/service/dto"
	"impostor-party-be/internal/service/game"

	"go.uber.org/zap"
)

// TimerService 负责讨论阶段的倒计时：每秒递减剩余时间并广播，
// 归零时自动结束对局，判卧底获胜。
// 每个房间同一时刻最多只有一个倒计时在运行。
type TimerService struct {
	engine *game.Engine

	// 递减间隔，正常为 1 秒，测试中会缩短
	interval time.Duration
}

func NewTimerService(engine *game.Engine) *TimerService {
	return &TimerService{
		engine:   engine,
		interval: time.Second,
	}
}

// Start 为房间启动倒计时，调用方需持有房间锁。
// 已有倒计时在运行时会先被撤销。
func (ts *TimerService) Start(room *game.Room) {
	if room.CountdownStop != nil {
		close(room.CountdownStop)
	}

	stop := make(chan struct{})
	room.CountdownStop = stop

	go ts.run(room, stop)
}

// Cancel 撤销倒计时，可重复调用，调用方需持有房间锁
func (ts *TimerService) Cancel(room *game.Room) {
	if room.CountdownStop != nil {
		close(room.CountdownStop)
		room.CountdownStop = nil
	}
}

func (ts *TimerService) run(room *game.Room, stop chan struct{}) {
	ticker := time.NewTicker(ts.interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return

		case <-ticker.C:
			if !ts.tick(room, stop) {
				return
			}
		}
	}
}

// tick 处理一次递减，返回 false 表示倒计时应当结束
func (ts *TimerService) tick(room *game.Room, stop chan struct{}) bool {
	room.Lock()
	defer room.Unlock()

	// 房间可能已经因为投票或解散离开了讨论阶段
	if room.Phase != game.PHASE_DISCUSSION || room.CountdownStop != stop {
		return false
	}

	room.RemainingSeconds--

	room.Broadcast(dto.WrapResponse(
		dto.RESP_SYNC_TIMER,
		dto.SyncTimerResponse{TimeRemaining: room.RemainingSeconds},
	))

	if room.RemainingSeconds > 0 {
		return true
	}

	// 时间耗尽，默认卧底获胜
	finals := ts.engine.EndGame(room, game.TEAM_IMPOSTORS)

	room.Broadcast(dto.WrapResponse(
		dto.RESP_GAME_ENDED,
		dto.GameEndedResponse{
			WinningTeam: game.TEAM_IMPOSTORS,
			FinalRoles:  finals,
		},
	))

	zap.S().Infof("房间 %s 讨论时间耗尽，卧底获胜", room.Code)

	return false
}
