package game

// 错误类别：
// 输入无效（Validation）、房间不存在（NotFound）、
// 前置条件不满足（Precondition）
// 三类都只回给发起请求的连接，不影响其他玩家
type ErrKind int

const (
	KindValidation ErrKind = iota
	KindNotFound
	KindPrecondition
)

type GameError struct {
	Kind ErrKind
	Msg  string
}

func (e *GameError) Error() string {
	return e.Msg
}

var (
	ErrEmptyName = &GameError{Kind: KindValidation, Msg: "玩家名称不能为空"}

	ErrRoomNotFound = &GameError{Kind: KindNotFound, Msg: "房间不存在"}

	ErrRoomFull         = &GameError{Kind: KindPrecondition, Msg: "房间已满"}
	ErrGameInProgress   = &GameError{Kind: KindPrecondition, Msg: "游戏已经开始"}
	ErrNotHost          = &GameError{Kind: KindPrecondition, Msg: "只有房主可以开始游戏"}
	ErrNotEnoughPlayers = &GameError{Kind: KindPrecondition, Msg: "玩家数量不足，至少需要 3 人"}
)
