package room

import "context"

// relay forwards msg to every member of the sender's room except the sender.
func (s service) relay(ctx context.Context, senderId string, msg any) error {
	_, rm, err := s.lockMemberRoom(senderId)
	if err != nil {
		return err
	}
	defer rm.Unlock()

	return s.broadcast(ctx, rm, msg, senderId)
}

type SendChatParams struct {
	SenderId string
	Text     string
}

func (s service) SendChat(ctx context.Context, params *SendChatParams) error {
	return s.relay(ctx, params.SenderId, ChatMessage{
		Type:     MessageTypeChat,
		SenderId: params.SenderId,
		Text:     params.Text,
	})
}

type SendEmojiParams struct {
	SenderId string
	Emoji    string
}

func (s service) SendEmoji(ctx context.Context, params *SendEmojiParams) error {
	return s.relay(ctx, params.SenderId, EmojiMessage{
		Type:     MessageTypeEmoji,
		SenderId: params.SenderId,
		Emoji:    params.Emoji,
	})
}

type SendImageParams struct {
	SenderId string
	Src      string
}

func (s service) SendImage(ctx context.Context, params *SendImageParams) error {
	return s.relay(ctx, params.SenderId, ImageMessage{
		Type:     MessageTypeImage,
		SenderId: params.SenderId,
		Src:      params.Src,
	})
}

func (s service) SendTyping(ctx context.Context, senderId string) error {
	return s.relay(ctx, senderId, TypingMessage{
		Type:     MessageTypeTyping,
		SenderId: senderId,
	})
}

func (s service) SendHeart(ctx context.Context, senderId string) error {
	return s.relay(ctx, senderId, HeartMessage{
		Type:     MessageTypeHeart,
		SenderId: senderId,
	})
}
