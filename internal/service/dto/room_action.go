package dto

import (
	"encoding/json"

	"go.uber.org/zap"
)

// 客户端请求类型
const (
	REQ_CREATE_ROOM  = "CreateRoom"
	REQ_JOIN_ROOM    = "JoinRoom"
	REQ_START_GAME   = "StartGame"
	REQ_REQUEST_VOTE = "RequestVote"
)

type RequestWrapper struct {
	ReqType string          `json:"request_type"`
	Data    json.RawMessage `json:"data"`
}

type CreateRoomRequest struct {
	PlayerName string `json:"player_name"`
}

type JoinRoomRequest struct {
	RoomCode   string `json:"room_code"`
	PlayerName string `json:"player_name"`
}

type StartGameRequest struct {
	RoomCode     string `json:"room_code"`
	NumImpostors int    `json:"num_impostors"`
}

type RequestVoteRequest struct {
	RoomCode string `json:"room_code"`
}

func TryUnwrapCreateRoomRequest(wrapper RequestWrapper) *CreateRoomRequest {
	if wrapper.ReqType != REQ_CREATE_ROOM {
		return nil
	}

	var createRoomRequest CreateRoomRequest

	err := json.Unmarshal(wrapper.Data, &createRoomRequest)
	if err != nil {
		zap.L().Error(
			"Failed to unwrap CreateRoomRequest",
			zap.Error(err),
			zap.Any("wrapper", wrapper),
		)
		return nil
	}

	return &createRoomRequest
}

func TryUnwrapJoinRoomRequest(wrapper RequestWrapper) *JoinRoomRequest {
	if wrapper.ReqType != REQ_JOIN_ROOM {
		return nil
	}

	var joinRoomRequest JoinRoomRequest

	err := json.Unmarshal(wrapper.Data, &joinRoomRequest)
	if err != nil {
		zap.L().Error(
			"Failed to unwrap JoinRoomRequest",
			zap.Error(err),
			zap.Any("wrapper", wrapper),
		)
		return nil
	}

	return &joinRoomRequest
}

func TryUnwrapStartGameRequest(wrapper RequestWrapper) *StartGameRequest {
	if wrapper.ReqType != REQ_START_GAME {
		return nil
	}

	var startGameRequest StartGameRequest

	err := json.Unmarshal(wrapper.Data, &startGameRequest)
	if err != nil {
		zap.L().Error(
			"Failed to unwrap StartGameRequest",
			zap.Error(err),
			zap.Any("wrapper", wrapper),
		)
		return nil
	}

	return &startGameRequest
}

func TryUnwrapRequestVoteRequest(wrapper RequestWrapper) *RequestVoteRequest {
	if wrapper.ReqType != REQ_REQUEST_VOTE {
		return nil
	}

	var requestVoteRequest RequestVoteRequest

	err := json.Unmarshal(wrapper.Data, &requestVoteRequest)
	if err != nil {
		zap.L().Error(
			"Failed to unwrap RequestVoteRequest",
			zap.Error(err),
			zap.Any("wrapper", wrapper),
		)
		return nil
	}

	return &requestVoteRequest
}

// 服务器响应类型
const (
	RESP_ERROR = "Error"

	RESP_ROOM_CREATED  = "RoomCreated"
	RESP_JOINED_ROOM   = "JoinedRoom"
	RESP_PLAYER_UPDATE = "PlayerUpdate"
	RESP_PHASE_CHANGE  = "PhaseChange"
	RESP_GAME_START    = "GameStart"
	RESP_SYNC_TIMER    = "SyncTimer"
	RESP_GAME_ENDED    = "GameEnded"
	RESP_HOST_PROMOTED = "HostPromoted"
)

type ResponseWrapper struct {
	RespType string `json:"response_type"`
	Data     any    `json:"data,omitempty"`
	ErrMsg   string `json:"error_message,omitempty"`
}

func WrapResponse(respType string, data any) ResponseWrapper {
	return ResponseWrapper{
		RespType: respType,
		Data:     data,
	}
}

func WrapErrResponse(errMsg string) ResponseWrapper {
	return ResponseWrapper{
		RespType: RESP_ERROR,
		ErrMsg:   errMsg,
	}
}

type RoomCreatedResponse struct {
	RoomCode string       `json:"room_code"`
	PlayerID string       `json:"player_id"`
	Players  []PlayerInfo `json:"players"`
}

type JoinedRoomResponse struct {
	RoomCode string       `json:"room_code"`
	PlayerID string       `json:"player_id"`
	Players  []PlayerInfo `json:"players"`
}

type PlayerUpdateResponse struct {
	Players []PlayerInfo `json:"players"`
}

type PhaseChangeResponse struct {
	Phase string `json:"phase"`
}

// 开局时单播给每个玩家，平民拿到谜底词，卧底拿到占位词
type GameStartResponse struct {
	Word    string       `json:"word"`
	Role    string       `json:"role"`
	Players []PlayerInfo `json:"players"`
}

type SyncTimerResponse struct {
	TimeRemaining int `json:"time_remaining"`
}

type GameEndedResponse struct {
	WinningTeam string      `json:"winning_team"`
	FinalRoles  []FinalRole `json:"final_roles"`
}
