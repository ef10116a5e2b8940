package room

const (
	MessageTypeJoinSuccess   = "JOIN_SUCCESS"
	MessageTypePartnerUpdate = "PARTNER_UPDATE"
	MessageTypeReadyUpdate   = "READY_UPDATE"
	MessageTypeSync          = "SYNC"
	MessageTypeChat          = "CHAT"
	MessageTypeEmoji         = "EMOJI"
	MessageTypeTyping        = "TYPING"
	MessageTypeImage         = "IMAGE"
	MessageTypeHeart         = "HEART"
)

type JoinSuccessMessage struct {
	Type string `json:"type"`
	MyId string `json:"myId"`
}

type PartnerUpdateMessage struct {
	Type  string `json:"type"`
	Count int    `json:"count"`
}

type ReadyUpdateMessage struct {
	Type        string `json:"type"`
	ClientCount int    `json:"clientCount"`
	AllReady    bool   `json:"allReady"`
}

type SyncMessage struct {
	Type        string  `json:"type"`
	IsPlaying   bool    `json:"isPlaying"`
	CurrentTime float64 `json:"currentTime"`
	// Timestamp is the server time in unix milliseconds at which the state
	// was accepted.
	Timestamp int64 `json:"timestamp"`
}

type ChatMessage struct {
	Type     string `json:"type"`
	SenderId string `json:"senderId"`
	Text     string `json:"text"`
}

type EmojiMessage struct {
	Type     string `json:"type"`
	SenderId string `json:"senderId"`
	Emoji    string `json:"emoji"`
}

type TypingMessage struct {
	Type     string `json:"type"`
	SenderId string `json:"senderId"`
}

type ImageMessage struct {
	Type     string `json:"type"`
	SenderId string `json:"senderId"`
	Src      string `json:"src"`
}

type HeartMessage struct {
	Type     string `json:"type"`
	SenderId string `json:"senderId"`
}

type Player struct {
	IsPlaying   bool    `json:"is_playing"`
	CurrentTime float64 `json:"current_time"`
	UpdatedAt   int64   `json:"updated_at"`
}

type RoomStatus struct {
	RoomId      string `json:"room_id"`
	ClientCount int    `json:"client_count"`
	AllReady    bool   `json:"all_ready"`
	Player      Player `json:"player"`
}
