package controller

import (
	"github.com/sharetube/relay/pkg/wsrouter"
)

const (
	MessageTypeJoin     = "JOIN"
	MessageTypeReady    = "READY"
	MessageTypeSync     = "SYNC"
	MessageTypePlay     = "PLAY"
	MessageTypePause    = "PAUSE"
	MessageTypeSeek     = "SEEK"
	MessageTypeChat     = "CHAT"
	MessageTypeEmoji    = "EMOJI"
	MessageTypeTyping   = "TYPING"
	MessageTypeImage    = "IMAGE"
	MessageTypeHeart    = "HEART"
	MessageTypeGetState = "GET_STATE"
	MessageTypeAlive    = "ALIVE"
)

func (c controller) getWSRouter() *wsrouter.WSRouter {
	mux := wsrouter.New(
		wsrouter.WithValidator(c.validate),
		wsrouter.WithErrorHandler(c.handleWSError),
	)
	mux.Use(c.wsRequestIdWSMw(), c.loggerWSMw(), c.rateLimitWSMw())

	wsrouter.Handle(mux, MessageTypeAlive, c.handleAlive)

	// membership
	wsrouter.Handle(mux, MessageTypeJoin, c.handleJoin)
	wsrouter.Handle(mux, MessageTypeReady, c.handleReady)

	// player
	wsrouter.Handle(mux, MessageTypeSync, c.handleSync)
	wsrouter.Handle(mux, MessageTypePlay, c.handlePlay)
	wsrouter.Handle(mux, MessageTypePause, c.handlePause)
	wsrouter.Handle(mux, MessageTypeSeek, c.handleSeek)
	wsrouter.Handle(mux, MessageTypeGetState, c.handleGetState)

	// relay
	wsrouter.Handle(mux, MessageTypeChat, c.handleChat)
	wsrouter.Handle(mux, MessageTypeEmoji, c.handleEmoji)
	wsrouter.Handle(mux, MessageTypeTyping, c.handleTyping)
	wsrouter.Handle(mux, MessageTypeImage, c.handleImage)
	wsrouter.Handle(mux, MessageTypeHeart, c.handleHeart)

	return mux
}
