package service

import (
	"math/rand"
	"sync"

	"impostor-party-be/internal/service/game"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// 房间码字符集，去掉了容易混淆的字符
const (
	roomCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	roomCodeLength   = 4
)

// RoomRegistry 是进程内唯一的房间表，负责房间码的生成和唯一性
type RoomRegistry struct {
	mu    sync.RWMutex
	rooms map[string]*game.Room
}

func NewRoomRegistry() *RoomRegistry {
	return &RoomRegistry{
		rooms: make(map[string]*game.Room),
	}
}

// GenPlayerID 基于 UUIDv7 生成 8 位玩家 ID
func GenPlayerID() string {
	id, err := uuid.NewV7()
	if err != nil {
		panic("生成 UUID 失败: " + err.Error())
	}

	s := id.String()

	return s[len(s)-8:]
}

func genRoomCode() string {
	buf := make([]byte, roomCodeLength)
	for i := range buf {
		buf[i] = roomCodeAlphabet[rand.Intn(len(roomCodeAlphabet))]
	}

	return string(buf)
}

// CreateRoom 生成未被占用的房间码并登记新房间，创建者即房主
func (rr *RoomRegistry) CreateRoom(host *game.Player) *game.Room {
	rr.mu.Lock()
	defer rr.mu.Unlock()

	code := genRoomCode()
	for {
		if _, exists := rr.rooms[code]; !exists {
			break
		}
		code = genRoomCode()
	}

	room := game.NewRoom(code, host)
	rr.rooms[code] = room

	zap.S().Infof("房间 %s 由 %s 创建", code, host.Name)

	return room
}

func (rr *RoomRegistry) Get(code string) (*game.Room, bool) {
	rr.mu.RLock()
	defer rr.mu.RUnlock()

	room, ok := rr.rooms[code]

	return room, ok
}

func (rr *RoomRegistry) Count() int {
	rr.mu.RLock()
	defer rr.mu.RUnlock()

	return len(rr.rooms)
}

// Remove 把房间从注册表摘除并撤销其所有定时任务
func (rr *RoomRegistry) Remove(code string) {
	rr.mu.Lock()
	room, ok := rr.rooms[code]
	if ok {
		delete(rr.rooms, code)
	}
	rr.mu.Unlock()

	if !ok {
		return
	}

	room.Lock()
	room.Closed = true
	room.CancelTimers()
	room.Unlock()

	zap.S().Infof("房间 %s 已移除", code)
}
