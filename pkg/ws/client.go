package ws

import (
	"errors"
	"sync"

	"github.com/gorilla/websocket"
)

var ErrClosed = errors.New("connection is closed")

type messageInfo struct {
	msg             []byte
	needCompression bool
}

type Client struct {
	Conn *websocket.Conn
	R    chan []byte

	w          chan messageInfo
	closed     chan struct{}
	closeOnce  sync.Once
	readerDone chan struct{}
}

func NewClient(conn *websocket.Conn) *Client {
	if conn == nil {
		return nil
	}

	c := &Client{
		Conn:       conn,
		R:          make(chan []byte, 128),
		w:          make(chan messageInfo, 128),
		closed:     make(chan struct{}),
		readerDone: make(chan struct{}),
	}

	go c.runReader()
	go c.runWriter()
	return c
}

func (c *Client) runReader() {
	defer close(c.readerDone)
	defer close(c.R)
	defer c.Close()

	for {
		t, msg, err := c.Conn.ReadMessage()
		if err != nil {
			return
		}

		switch t {
		case websocket.CloseMessage:
			return
		case websocket.TextMessage:
			if !c.deliver(msg) {
				return
			}
		case websocket.BinaryMessage:
			originMsg, err := Decompress(msg)
			if err != nil {
				continue
			}

			if !c.deliver(originMsg) {
				return
			}
		}
	}
}

// deliver hands msg to the consumer of R, giving up once the client is closed
// so that a consumer which stopped reading never blocks the reader.
func (c *Client) deliver(msg []byte) bool {
	select {
	case c.R <- msg:
		return true
	case <-c.closed:
		return false
	}
}

func (c *Client) runWriter() {
	for {
		select {
		case <-c.closed:
			return
		case info := <-c.w:
			msgType := websocket.TextMessage
			msg := info.msg
			if info.needCompression {
				var err error
				msg, err = Compress(info.msg)
				if err != nil {
					continue
				}
				msgType = websocket.BinaryMessage
			}

			if err := c.Conn.WriteMessage(msgType, msg); err != nil {
				c.Close()
				return
			}
		}
	}
}

// Write queues a message. It never blocks: a full buffer returns an error so
// the caller can drop the message.
func (c *Client) Write(msg []byte, needCompression bool) error {
	select {
	case <-c.closed:
		return ErrClosed
	default:
	}

	select {
	case c.w <- messageInfo{msg: msg, needCompression: needCompression}:
		return nil
	default:
		return errors.New("write buffer is full")
	}
}

func (c *Client) Close() {
	c.closeOnce.Do(func() {
		close(c.closed)
		c.Conn.Close()
	})
}
