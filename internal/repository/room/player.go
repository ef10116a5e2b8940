package room

type Player struct {
	IsPlaying   bool    `json:"is_playing" redis:"is_playing"`
	CurrentTime float64 `json:"current_time" redis:"current_time"`
	UpdatedAt   int64   `json:"updated_at" redis:"updated_at"`
}

type SetPlayerParams struct {
	IsPlaying   bool
	CurrentTime float64
	UpdatedAt   int64
	RoomId      string
}

type UpdatePlayerStateParams struct {
	// IsPlaying is left unchanged when nil.
	IsPlaying   *bool
	CurrentTime float64
	UpdatedAt   int64
	RoomId      string
}
