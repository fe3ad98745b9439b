package detector

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
	"github.com/lox/handcricket/internal/gesture"
)

// ErrNotConnected is returned when sending on a closed client
var ErrNotConnected = errors.New("not connected")

// EventHandler handles messages sent back by the game
type EventHandler func(*Message)

// Client streams readings to a detector server
type Client struct {
	conn          *websocket.Conn
	logger        *log.Logger
	mu            sync.RWMutex
	writeMu       sync.Mutex
	eventHandlers map[MessageType][]EventHandler
	connected     bool
	done          chan struct{}
}

// Dial connects to a detector server. serverURL may be a host:port, an
// http(s) URL or a ws(s) URL; the path defaults to /ws.
func Dial(ctx context.Context, serverURL string, logger *log.Logger) (*Client, error) {
	u, err := wsURL(serverURL)
	if err != nil {
		return nil, err
	}

	logger = logger.WithPrefix("feed")
	logger.Info("Connecting to detector server", "url", u)

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to connect: %w", err)
	}

	c := &Client{
		conn:          conn,
		logger:        logger,
		eventHandlers: make(map[MessageType][]EventHandler),
		connected:     true,
		done:          make(chan struct{}),
	}
	go c.readMessages()
	return c, nil
}

func wsURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		// bare host:port
		u, err = url.Parse("ws://" + raw)
		if err != nil {
			return "", fmt.Errorf("invalid server URL: %w", err)
		}
	}

	switch u.Scheme {
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	case "ws", "wss":
	default:
		u.Scheme = "ws"
	}
	if u.Path == "" || u.Path == "/" {
		u.Path = "/ws"
	}
	return u.String(), nil
}

// Close sends a close frame and shuts the connection
func (c *Client) Close() error {
	c.mu.Lock()
	if !c.connected {
		c.mu.Unlock()
		return nil
	}
	c.connected = false
	c.mu.Unlock()

	c.writeMu.Lock()
	_ = c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	c.writeMu.Unlock()
	err := c.conn.Close()
	<-c.done
	return err
}

// Done is closed once the connection has stopped reading
func (c *Client) Done() <-chan struct{} { return c.done }

// SendMessage writes msg to the server
func (c *Client) SendMessage(msg *Message) error {
	c.mu.RLock()
	connected := c.connected
	c.mu.RUnlock()
	if !connected {
		return ErrNotConnected
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.conn.WriteJSON(msg)
}

func (c *Client) send(t MessageType, data any) error {
	msg, err := NewMessage(t, data)
	if err != nil {
		return err
	}
	return c.SendMessage(msg)
}

// SendCount reports a counted gesture
func (c *Client) SendCount(count int) error {
	return c.send(MessageTypeCount, CountData{Count: count, Confidence: 1})
}

// SendNone reports that no hand is visible
func (c *Client) SendNone() error {
	return c.send(MessageTypeNone, nil)
}

// SendHands reports raw skeletons for the server to count
func (c *Client) SendHands(hands []gesture.HandLandmarks) error {
	return c.send(MessageTypeHands, HandsData{Hands: hands})
}

// SendCommand asks the game to start, restart or quit
func (c *Client) SendCommand(command string) error {
	return c.send(MessageTypeCommand, CommandData{Command: command})
}

// AddEventHandler registers a handler for a specific message type
func (c *Client) AddEventHandler(msgType MessageType, handler EventHandler) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.eventHandlers[msgType] = append(c.eventHandlers[msgType], handler)
}

// IsConnected returns whether the client is connected
func (c *Client) IsConnected() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.connected
}

func (c *Client) readMessages() {
	defer func() {
		c.mu.Lock()
		c.connected = false
		c.mu.Unlock()
		close(c.done)
	}()

	for {
		var msg Message
		if err := c.conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				c.logger.Error("WebSocket error", "error", err)
			}
			return
		}

		if msg.Type == MessageTypeError {
			c.logger.Warn("Server rejected message", "data", string(msg.Data))
		}

		c.mu.RLock()
		handlers := c.eventHandlers[msg.Type]
		c.mu.RUnlock()
		for _, handler := range handlers {
			handler(&msg)
		}
	}
}
