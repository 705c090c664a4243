package main

type PlayerType int

const (
	PlayerHuman PlayerType = iota
	PlayerAI
)

type GameSettings struct {
	WinLength       int        `json:"win_length"`
	CaptureWinPairs int        `json:"capture_win_pairs"`
	BlackType       PlayerType `json:"-"`
	WhiteType       PlayerType `json:"-"`
}

// DefaultGameSettings is the classic setup: White (human) opens, the computer plays Black.
func DefaultGameSettings() GameSettings {
	return GameSettings{
		WinLength:       5,
		CaptureWinPairs: 5,
		BlackType:       PlayerAI,
		WhiteType:       PlayerHuman,
	}
}

func (s GameSettings) TypeFor(player PlayerColor) PlayerType {
	if player == PlayerBlack {
		return s.BlackType
	}
	return s.WhiteType
}
