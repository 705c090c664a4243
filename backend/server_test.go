package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newTestRouter(t *testing.T, settings GameSettings) (*GameController, http.Handler) {
	t.Helper()
	controller := NewGameController(settings, nil)
	return controller, newRouter(controller, NewHub(nil))
}

func twoHumanSettings() GameSettings {
	settings := DefaultGameSettings()
	settings.BlackType = PlayerHuman
	settings.WhiteType = PlayerHuman
	return settings
}

func doRequest(t *testing.T, handler http.Handler, method, path, body string) (*httptest.ResponseRecorder, StatusResponse) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	var status StatusResponse
	if rec.Code == http.StatusOK && path != "/api/ping" {
		if err := json.Unmarshal(rec.Body.Bytes(), &status); err != nil {
			t.Fatalf("%s %s: decode: %v", method, path, err)
		}
	}
	return rec, status
}

func TestPing(t *testing.T) {
	_, router := newTestRouter(t, twoHumanSettings())
	rec, _ := doRequest(t, router, http.MethodGet, "/api/ping", "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"ok":true`) {
		t.Fatalf("unexpected ping response %d %s", rec.Code, rec.Body.String())
	}
}

func TestMoveEndpointPlaysAndReports(t *testing.T) {
	_, router := newTestRouter(t, twoHumanSettings())

	_, status := doRequest(t, router, http.MethodGet, "/api/status", "")
	if status.LastMove != nil {
		t.Fatalf("expected no last move before the first move, got %v", *status.LastMove)
	}

	rec, status := doRequest(t, router, http.MethodPost, "/api/move", `{"x":9,"y":9}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d %s", rec.Code, rec.Body.String())
	}
	if status.LastMove == nil || *status.LastMove != (Move{X: 9, Y: 9}) {
		t.Fatalf("expected last move (9,9), got %v", status.LastMove)
	}
	if status.Board[9][9] != 2 || status.NextPlayer != 1 || status.Status != "running" {
		t.Fatalf("unexpected status after white move: %+v", status)
	}

	rec, _ = doRequest(t, router, http.MethodPost, "/api/move", `{"x":9,"y":9}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("occupied cell: expected 400, got %d", rec.Code)
	}
	rec, _ = doRequest(t, router, http.MethodPost, "/api/move", `{"x":19,"y":0}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("off board: expected 400, got %d", rec.Code)
	}
	rec, _ = doRequest(t, router, http.MethodPost, "/api/move", `{"x":`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("bad json: expected 400, got %d", rec.Code)
	}

	_, status = doRequest(t, router, http.MethodGet, "/api/status", "")
	if len(status.History) != 1 || status.History[0].Player != 2 {
		t.Fatalf("expected one white move in history, got %+v", status.History)
	}
}

func TestMoveEndpointReportsCaptures(t *testing.T) {
	_, router := newTestRouter(t, twoHumanSettings())
	// Black brackets the white pair on (1,0),(2,0).
	moves := []string{`{"x":1,"y":0}`, `{"x":3,"y":0}`, `{"x":2,"y":0}`, `{"x":0,"y":0}`}
	var status StatusResponse
	for _, body := range moves {
		var rec *httptest.ResponseRecorder
		rec, status = doRequest(t, router, http.MethodPost, "/api/move", body)
		if rec.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d %s", body, rec.Code, rec.Body.String())
		}
	}
	if status.BlackCaptures != 1 || status.Board[0][1] != 0 || status.Board[0][2] != 0 {
		t.Fatalf("expected the white pair to be captured: %+v", status)
	}
	last := status.History[len(status.History)-1]
	if len(last.CapturedPositions) != 2 || len(last.Changes) != 3 {
		t.Fatalf("expected capture details in history, got %+v", last)
	}
}

func TestMoveEndpointRefusesComputerTurn(t *testing.T) {
	_, router := newTestRouter(t, DefaultGameSettings())
	if rec, _ := doRequest(t, router, http.MethodPost, "/api/move", `{"x":9,"y":9}`); rec.Code != http.StatusOK {
		t.Fatalf("expected white human move to apply, got %d", rec.Code)
	}
	if rec, _ := doRequest(t, router, http.MethodPost, "/api/move", `{"x":10,"y":9}`); rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 on the computer's turn, got %d", rec.Code)
	}
}

func TestStartEndpointResetsGame(t *testing.T) {
	controller, router := newTestRouter(t, twoHumanSettings())
	firstID := controller.GameID()
	doRequest(t, router, http.MethodPost, "/api/move", `{"x":9,"y":9}`)

	rec, status := doRequest(t, router, http.MethodPost, "/api/start", `{"settings":{"mode":"human_vs_human"}}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if status.GameID == firstID || status.GameID == "" {
		t.Fatalf("expected a new game id, got %q", status.GameID)
	}
	if status.Board[9][9] != 0 || len(status.History) != 0 || status.NextPlayer != 2 {
		t.Fatalf("expected a fresh board with white to move: %+v", status)
	}
	if status.Settings.Mode != "human_vs_human" {
		t.Fatalf("unexpected settings %+v", status.Settings)
	}
}

func TestSettingsEndpoint(t *testing.T) {
	prev := GetConfig()
	defer configStore.Update(prev)

	controller, router := newTestRouter(t, twoHumanSettings())
	doRequest(t, router, http.MethodPost, "/api/move", `{"x":9,"y":9}`)

	rec, status := doRequest(t, router, http.MethodPost, "/api/settings",
		`{"settings":{"mode":"ai_vs_human","human_player":2},"config":{"ai_depth":2}}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d %s", rec.Code, rec.Body.String())
	}
	if GetConfig().AiDepth != 2 || GetConfig().Mode != prev.Mode {
		t.Fatalf("expected only ai_depth to change, got %+v", GetConfig())
	}
	if got := controller.Settings(); got.BlackType != PlayerAI || got.WhiteType != PlayerHuman {
		t.Fatalf("expected black to be the computer, got %+v", got)
	}
	if status.Board[9][9] != 2 {
		t.Fatalf("reseating players must keep the position")
	}

	rec, _ = doRequest(t, router, http.MethodPost, "/api/settings", `{"config":{"ai_depth":0}}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected invalid config to be rejected, got %d", rec.Code)
	}
}
