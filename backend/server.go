package main

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type StatusResponse struct {
	GameID          string            `json:"game_id"`
	Settings        GameSettingsDTO   `json:"settings"`
	Board           [][]int           `json:"board"`
	NextPlayer      int               `json:"next_player"`
	Winner          int               `json:"winner"`
	Status          string            `json:"status"`
	BlackCaptures   int               `json:"black_captures"`
	WhiteCaptures   int               `json:"white_captures"`
	History         []historyEntryDTO `json:"history"`
	WinReason       string            `json:"win_reason"`
	WinningLine     []Move            `json:"winning_line"`
	LastMove        *Move             `json:"last_move,omitempty"`
	AiThinking      bool              `json:"ai_thinking"`
	TurnStartedAtMs int64             `json:"turn_started_at_ms"`
	LastSearch      *searchStatsDTO   `json:"last_search,omitempty"`
}

type searchStatsDTO struct {
	Move       Move    `json:"move"`
	Score      int64   `json:"score"`
	Depth      int     `json:"depth"`
	Candidates int     `json:"candidates"`
	Nodes      int64   `json:"nodes"`
	Cutoffs    int64   `json:"cutoffs"`
	ElapsedMs  float64 `json:"elapsed_ms"`
}

type GameSettingsDTO struct {
	Mode        string `json:"mode"`
	HumanPlayer int    `json:"human_player"`
}

type apiMove struct {
	X int `json:"x"`
	Y int `json:"y"`
}

type historyEntryDTO struct {
	X                 int          `json:"x"`
	Y                 int          `json:"y"`
	Player            int          `json:"player"`
	ElapsedMs         float64      `json:"elapsed_ms"`
	IsAi              bool         `json:"is_ai"`
	CapturedPositions []Move       `json:"captured_positions"`
	Changes           []cellChange `json:"changes"`
}

type historyPayload struct {
	History []historyEntryDTO `json:"history"`
}

type cellChange struct {
	X     int `json:"x"`
	Y     int `json:"y"`
	Value int `json:"value"`
}

// newRouter serves the single game held by controller.
func newRouter(controller *GameController, hub *Hub) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/api/ping", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})

	r.Get("/api/status", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, controllerStatus(controller))
	})

	r.Post("/api/start", func(w http.ResponseWriter, r *http.Request) {
		var payload struct {
			Settings GameSettingsDTO `json:"settings"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
			return
		}
		controller.StartGame(settingsFromDTO(payload.Settings, controller.Settings()))
		status := controllerStatus(controller)
		hub.PublishReset(status)
		writeJSON(w, http.StatusOK, status)
	})

	r.Post("/api/settings", func(w http.ResponseWriter, r *http.Request) {
		var payload struct {
			Settings *GameSettingsDTO `json:"settings"`
			Config   json.RawMessage  `json:"config"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
			return
		}
		if len(payload.Config) > 0 {
			// Fields left out keep their current value.
			cfg := GetConfig()
			if err := json.Unmarshal(payload.Config, &cfg); err != nil {
				writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid config"})
				return
			}
			if err := cfg.Validate(); err != nil {
				writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
				return
			}
			configStore.Update(cfg)
		}
		if payload.Settings != nil {
			controller.UpdateSettings(settingsFromDTO(*payload.Settings, controller.Settings()), false)
		}
		status := controllerStatus(controller)
		hub.PublishStatus(status)
		writeJSON(w, http.StatusOK, status)
	})

	r.Post("/api/move", func(w http.ResponseWriter, r *http.Request) {
		var payload apiMove
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
			return
		}
		if _, err := controller.ApplyHumanMove(Move{X: payload.X, Y: payload.Y}); err != nil {
			code := http.StatusBadRequest
			if errors.Is(err, ErrGameOver) || errors.Is(err, errNotHumanTurn) {
				code = http.StatusConflict
			}
			writeJSON(w, code, map[string]string{"error": err.Error()})
			return
		}
		if entry, ok := controller.LatestHistoryEntry(); ok {
			hub.PublishHistory(historyPayload{History: []historyEntryDTO{historyEntryToDTO(entry)}})
		}
		status := controllerStatus(controller)
		hub.PublishStatus(status)
		writeJSON(w, http.StatusOK, status)
	})

	r.Get("/ws/", func(w http.ResponseWriter, r *http.Request) {
		serveWS(hub, controller, w, r)
	})
	return r
}

func controllerStatus(controller *GameController) StatusResponse {
	state := controller.State()
	winner := 0
	if color, ok := state.Winner(); ok {
		winner = playerToInt(color)
	}
	var lastMove *Move
	if state.HasLastMove {
		move := state.LastMove
		lastMove = &move
	}
	var lastSearch *searchStatsDTO
	if result, ok := controller.LastSearch(); ok {
		lastSearch = &searchStatsDTO{
			Move:       result.Move,
			Score:      result.Score,
			Depth:      result.Depth,
			Candidates: result.Candidates,
			Nodes:      result.Nodes,
			Cutoffs:    result.Cutoffs,
			ElapsedMs:  float64(result.Elapsed.Microseconds()) / 1000,
		}
	}
	return StatusResponse{
		GameID:          controller.GameID(),
		Settings:        controllerSettingsDTO(controller.Settings()),
		Board:           boardToSlice(state.Board),
		NextPlayer:      playerToInt(state.ToMove),
		Winner:          winner,
		Status:          statusToString(state.Status),
		BlackCaptures:   state.CapturedBlack,
		WhiteCaptures:   state.CapturedWhite,
		History:         historyToDTO(controller.History()),
		WinReason:       state.WinReason.String(),
		WinningLine:     append([]Move(nil), state.WinningLine...),
		LastMove:        lastMove,
		AiThinking:      controller.AiThinking(),
		TurnStartedAtMs: controller.CurrentTurnStartedAtMs(),
		LastSearch:      lastSearch,
	}
}

func settingsFromDTO(dto GameSettingsDTO, base GameSettings) GameSettings {
	settings := base
	switch dto.Mode {
	case "ai_vs_ai":
		settings.BlackType = PlayerAI
		settings.WhiteType = PlayerAI
	case "human_vs_human":
		settings.BlackType = PlayerHuman
		settings.WhiteType = PlayerHuman
	case "ai_vs_human":
		if dto.HumanPlayer == 1 {
			settings.BlackType = PlayerHuman
			settings.WhiteType = PlayerAI
		} else {
			settings.BlackType = PlayerAI
			settings.WhiteType = PlayerHuman
		}
	}
	return settings
}

func controllerSettingsDTO(settings GameSettings) GameSettingsDTO {
	switch {
	case settings.BlackType == PlayerAI && settings.WhiteType == PlayerAI:
		return GameSettingsDTO{Mode: "ai_vs_ai"}
	case settings.BlackType == PlayerHuman && settings.WhiteType == PlayerHuman:
		return GameSettingsDTO{Mode: "human_vs_human", HumanPlayer: 2}
	case settings.BlackType == PlayerHuman:
		return GameSettingsDTO{Mode: "ai_vs_human", HumanPlayer: 1}
	default:
		return GameSettingsDTO{Mode: "ai_vs_human", HumanPlayer: 2}
	}
}

func boardToSlice(board Board) [][]int {
	rows := make([][]int, BoardSize)
	for y := 0; y < BoardSize; y++ {
		rows[y] = make([]int, BoardSize)
		for x := 0; x < BoardSize; x++ {
			rows[y][x] = cellToInt(board.At(x, y))
		}
	}
	return rows
}

func cellToInt(cell Cell) int {
	switch cell {
	case CellBlack:
		return 1
	case CellWhite:
		return 2
	default:
		return 0
	}
}

func playerToInt(player PlayerColor) int {
	if player == PlayerBlack {
		return 1
	}
	return 2
}

func statusToString(status GameStatus) string {
	switch status {
	case StatusBlackWon:
		return "black_won"
	case StatusWhiteWon:
		return "white_won"
	default:
		return "running"
	}
}

func historyToDTO(history MoveHistory) []historyEntryDTO {
	entries := history.All()
	result := make([]historyEntryDTO, 0, len(entries))
	for _, entry := range entries {
		result = append(result, historyEntryToDTO(entry))
	}
	return result
}

func historyEntryToDTO(entry HistoryEntry) historyEntryDTO {
	changes := []cellChange{{X: entry.Move.X, Y: entry.Move.Y, Value: playerToInt(entry.Player)}}
	for _, captured := range entry.CapturedPositions {
		changes = append(changes, cellChange{X: captured.X, Y: captured.Y, Value: 0})
	}
	return historyEntryDTO{
		X:                 entry.Move.X,
		Y:                 entry.Move.Y,
		Player:            playerToInt(entry.Player),
		ElapsedMs:         entry.ElapsedMs,
		IsAi:              entry.IsAi,
		CapturedPositions: append([]Move(nil), entry.CapturedPositions...),
		Changes:           changes,
	}
}

func mustMarshal(v any) json.RawMessage {
	data, _ := json.Marshal(v)
	return data
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
