package connection

import "sync"

// Connection is one live client session. Its outbound queue is drained by the
// transport; every other field is guarded by mu.
type Connection struct {
	Id string

	mu      sync.Mutex
	roomId  string
	isReady bool
	closed  bool
	send    chan []byte
}

func New(id string, sendBuffer int) *Connection {
	return &Connection{
		Id:   id,
		send: make(chan []byte, sendBuffer),
	}
}

// RoomId is empty until the connection joined a room.
func (c *Connection) RoomId() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.roomId
}

// BindRoom sets the room once. It returns false if the connection is already
// bound or closed.
func (c *Connection) BindRoom(roomId string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.roomId != "" || c.closed {
		return false
	}
	c.roomId = roomId

	return true
}

func (c *Connection) IsReady() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.isReady
}

func (c *Connection) SetReady() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.isReady = true
}

func (c *Connection) IsClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.closed
}

// Enqueue hands data to the writer without blocking. It returns false when
// the queue is full or the connection is closed.
func (c *Connection) Enqueue(data []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return false
	}

	select {
	case c.send <- data:
		return true
	default:
		return false
	}
}

// Outbound is closed once the connection is closed.
func (c *Connection) Outbound() <-chan []byte {
	return c.send
}

// Close is idempotent.
func (c *Connection) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.closed = true
	close(c.send)
}
