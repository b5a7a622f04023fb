package dto

// 广播给房间成员的玩家信息快照
type PlayerInfo struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	IsHost bool   `json:"is_host"`
}

// 对局结束时按加入顺序公布的身份
type FinalRole struct {
	Name string `json:"name"`
	Role string `json:"role"`
}
