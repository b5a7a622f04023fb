package game

import (
	"fmt"
	"testing"

	"impostor-party-be/internal/service/dto"
)

func newTestRoom(playerCount int) *Room {
	host := &Player{
		ID:     "p0",
		Name:   "Host",
		IsHost: true,
		SendCh: make(chan dto.ResponseWrapper, 64),
	}

	room := NewRoom("AB12", host)

	for i := 1; i < playerCount; i++ {
		room.Players = append(room.Players, &Player{
			ID:     fmt.Sprintf("p%d", i),
			Name:   fmt.Sprintf("Player%d", i),
			SendCh: make(chan dto.ResponseWrapper, 64),
		})
	}

	return room
}

func TestAssignRolesImpostorCount(t *testing.T) {
	engine := NewEngine(NewWordBank([]string{"pizza"}), 300)

	for playerCount := MIN_PLAYERS; playerCount <= MAX_PLAYERS; playerCount++ {
		for impostors := 1; impostors < playerCount; impostors++ {
			room := newTestRoom(playerCount)

			engine.AssignRoles(room, impostors)

			gotImpostors := 0
			gotCitizens := 0
			for _, p := range room.Players {
				switch p.Role {
				case ROLE_IMPOSTOR:
					gotImpostors++
				case ROLE_CITIZEN:
					gotCitizens++
				default:
					t.Fatalf("player %s has unassigned role %q", p.ID, p.Role)
				}
			}

			if gotImpostors != impostors {
				t.Fatalf("players=%d impostors=%d: got %d impostor roles", playerCount, impostors, gotImpostors)
			}
			if gotCitizens != playerCount-impostors {
				t.Fatalf("players=%d impostors=%d: got %d citizen roles", playerCount, impostors, gotCitizens)
			}

			if room.Phase != PHASE_REVEAL {
				t.Fatalf("phase after AssignRoles should be REVEAL, got %s", room.Phase)
			}
			if room.SecretWord != "PIZZA" {
				t.Fatalf("secret word should be uppercased, got %q", room.SecretWord)
			}
			if room.RemainingSeconds != 300 {
				t.Fatalf("remaining seconds should be 300, got %d", room.RemainingSeconds)
			}
		}
	}
}

func TestAssignRolesClampsImpostorCount(t *testing.T) {
	engine := NewEngine(NewWordBank([]string{"pizza"}), 300)

	room := newTestRoom(4)
	engine.AssignRoles(room, 0)
	if room.ImpostorCount != 1 {
		t.Fatalf("impostor count 0 should clamp to 1, got %d", room.ImpostorCount)
	}

	room = newTestRoom(4)
	engine.AssignRoles(room, 9)
	if room.ImpostorCount != 3 {
		t.Fatalf("impostor count 9 should clamp to 3, got %d", room.ImpostorCount)
	}
}

func TestEndGameRevealsAndResets(t *testing.T) {
	engine := NewEngine(NewWordBank([]string{"pizza"}), 300)

	room := newTestRoom(5)
	engine.AssignRoles(room, 2)
	room.RemainingSeconds = 17

	assigned := make([]string, 0, len(room.Players))
	for _, p := range room.Players {
		assigned = append(assigned, p.Role)
	}

	finals := engine.EndGame(room, TEAM_CITIZENS)

	if len(finals) != 5 {
		t.Fatalf("final roles should cover all players, got %d", len(finals))
	}

	// 公布顺序必须是加入顺序，身份是本局分配的身份
	for i, fr := range finals {
		if fr.Name != room.Players[i].Name {
			t.Fatalf("final role %d should be %s, got %s", i, room.Players[i].Name, fr.Name)
		}
		if fr.Role != assigned[i] {
			t.Fatalf("final role for %s should be %s, got %s", fr.Name, assigned[i], fr.Role)
		}
	}

	if room.Phase != PHASE_ENDED {
		t.Fatalf("phase after EndGame should be ENDED, got %s", room.Phase)
	}
	if room.SecretWord != "" {
		t.Fatalf("secret word should be cleared, got %q", room.SecretWord)
	}
	if room.ImpostorCount != 0 {
		t.Fatalf("impostor count should be reset, got %d", room.ImpostorCount)
	}
	if room.RemainingSeconds != 300 {
		t.Fatalf("remaining seconds should be reset to 300, got %d", room.RemainingSeconds)
	}

	for _, p := range room.Players {
		if p.Role != ROLE_UNSET {
			t.Fatalf("player %s role should be unset after EndGame, got %s", p.ID, p.Role)
		}
	}
}

func TestCancelTimersIdempotent(t *testing.T) {
	room := newTestRoom(3)
	room.CountdownStop = make(chan struct{})

	room.CancelTimers()
	room.CancelTimers()

	if room.CountdownStop != nil {
		t.Fatalf("countdown stop channel should be nil after cancel")
	}
	if room.RevealTimer != nil {
		t.Fatalf("reveal timer should be nil after cancel")
	}
}

func TestWordBankFallback(t *testing.T) {
	bank := NewWordBank(nil)

	if bank.Size() == 0 {
		t.Fatalf("empty config should fall back to built-in words")
	}
	if bank.Pick() == "" {
		t.Fatalf("picked word should never be empty")
	}
}
