package venue

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// WSReconnectConfig tunes the reconnect backoff shared by the Polymarket
// and Kalshi realtime stream clients.
type WSReconnectConfig struct {
	InitialDelay time.Duration
	MaxDelay time.Duration
	MaxRetries int // 0 = unlimited
	ConnectTimeout time.Duration
	PingInterval time.Duration
	PongTimeout time.Duration
}

// DefaultWSReconnectConfig reconnects after a fixed 5s delay: InitialDelay
// equals MaxDelay, so the doubling in reconnectLoop stays at 5s.
func DefaultWSReconnectConfig() WSReconnectConfig {
	return WSReconnectConfig{
		InitialDelay: 5 * time.Second,
		MaxDelay: 5 * time.Second,
		MaxRetries: 0,
		ConnectTimeout: 10 * time.Second,
		PingInterval: 30 * time.Second,
		PongTimeout: 10 * time.Second,
	}
}

type WSConnectionState int32

const (
	WSStateDisconnected WSConnectionState = iota
	WSStateConnecting
	WSStateConnected
	WSStateReconnecting
	WSStateClosed
)

func (s WSConnectionState) String() string {
	switch s {
	case WSStateDisconnected:
		return "disconnected"
	case WSStateConnecting:
		return "connecting"
	case WSStateConnected:
		return "connected"
	case WSStateReconnecting:
		return "reconnecting"
	case WSStateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// WSReconnectManager owns one WebSocket connection to a venue's stream
// endpoint, reconnecting with exponential backoff and replaying
// subscriptions once the socket is back up. Used by both the Polymarket
// and Kalshi stream clients in realtime mode; each caller
// supplies its own subscribe-replay payloads and message handler.
type WSReconnectManager struct {
	venueName string
	wsURL string
	config WSReconnectConfig
	log *zap.Logger

	conn *websocket.Conn
	connMu sync.RWMutex

	state int32 // atomic WSConnectionState
	retryCount int32

	closeChan chan struct{}
	closeOnce sync.Once

	onMessage func([]byte)
	onConnect func()
	onDisconnect func(error)
	callbackMu sync.RWMutex

	subscriptions []interface{}
	subscriptionsMu sync.RWMutex

	authFunc func(*websocket.Conn) error
	headerFunc func() (http.Header, error)
}

func NewWSReconnectManager(venueName, wsURL string, config WSReconnectConfig, logger *zap.Logger) *WSReconnectManager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WSReconnectManager{
		venueName: venueName,
		wsURL: wsURL,
		config: config,
		log: logger,
		closeChan: make(chan struct{}),
	}
}

func (m *WSReconnectManager) SetOnMessage(handler func([]byte)) {
	m.callbackMu.Lock()
	m.onMessage = handler
	m.callbackMu.Unlock()
}

func (m *WSReconnectManager) SetOnConnect(handler func()) {
	m.callbackMu.Lock()
	m.onConnect = handler
	m.callbackMu.Unlock()
}

func (m *WSReconnectManager) SetOnDisconnect(handler func(error)) {
	m.callbackMu.Lock()
	m.onDisconnect = handler
	m.callbackMu.Unlock()
}

// SetAuthFunc installs a handshake performed right after dial (a message
// exchange over the already-open socket).
func (m *WSReconnectManager) SetAuthFunc(authFunc func(*websocket.Conn) error) {
	m.authFunc = authFunc
}

// SetHeaderFunc installs a provider of per-dial HTTP headers, used by
// Kalshi to attach its RSA-PSS signature headers before the handshake;
// regenerated on every (re)connect since the signature embeds the
// current timestamp.
func (m *WSReconnectManager) SetHeaderFunc(headerFunc func() (http.Header, error)) {
	m.headerFunc = headerFunc
}

func (m *WSReconnectManager) AddSubscription(sub interface{}) {
	m.subscriptionsMu.Lock()
	m.subscriptions = append(m.subscriptions, sub)
	m.subscriptionsMu.Unlock()
}

func (m *WSReconnectManager) GetState() WSConnectionState {
	return WSConnectionState(atomic.LoadInt32(&m.state))
}

func (m *WSReconnectManager) IsConnected() bool {
	return m.GetState() == WSStateConnected
}

func (m *WSReconnectManager) Connect() error {
	select {
	case <-m.closeChan:
		return fmt.Errorf("venue: manager is closed")
	default:
	}

	atomic.StoreInt32(&m.state, int32(WSStateConnecting))

	if err := m.dial(); err != nil {
		atomic.StoreInt32(&m.state, int32(WSStateDisconnected))
		return err
	}

	atomic.StoreInt32(&m.state, int32(WSStateConnected))
	atomic.StoreInt32(&m.retryCount, 0)

	m.callbackMu.RLock()
	onConnect := m.onConnect
	m.callbackMu.RUnlock()
	if onConnect != nil {
		onConnect()
	}

	go m.readPump()
	go m.pingPump()

	m.log.Info("websocket connected", zap.String("venue", m.venueName), zap.String("url", m.wsURL))
	return nil
}

func (m *WSReconnectManager) dial() error {
	ctx, cancel := context.WithTimeout(context.Background(), m.config.ConnectTimeout)
	defer cancel()

	var headers http.Header
	if m.headerFunc != nil {
		h, err := m.headerFunc()
		if err != nil {
			return fmt.Errorf("venue: header func %s: %w", m.venueName, err)
		}
		headers = h
	}

	dialer := websocket.Dialer{HandshakeTimeout: m.config.ConnectTimeout}
	conn, _, err := dialer.DialContext(ctx, m.wsURL, headers)
	if err != nil {
		return fmt.Errorf("venue: dial %s: %w", m.venueName, err)
	}

	m.connMu.Lock()
	m.conn = conn
	m.connMu.Unlock()

	if m.authFunc != nil {
		if err := m.authFunc(conn); err != nil {
			conn.Close()
			m.connMu.Lock()
			m.conn = nil
			m.connMu.Unlock()
			return fmt.Errorf("venue: auth %s: %w", m.venueName, err)
		}
	}

	if err := m.resubscribe(); err != nil {
		m.log.Warn("resubscribe failed", zap.String("venue", m.venueName), zap.Error(err))
	}

	return nil
}

func (m *WSReconnectManager) resubscribe() error {
	m.subscriptionsMu.RLock()
	subs := make([]interface{}, len(m.subscriptions))
	copy(subs, m.subscriptions)
	m.subscriptionsMu.RUnlock()

	m.connMu.RLock()
	conn := m.conn
	m.connMu.RUnlock()
	if conn == nil {
		return fmt.Errorf("venue: no connection")
	}

	for _, sub := range subs {
		if err := conn.WriteJSON(sub); err != nil {
			return fmt.Errorf("venue: resubscribe: %w", err)
		}
	}
	return nil
}

func (m *WSReconnectManager) readPump() {
	defer m.handleDisconnect(nil)

	for {
		select {
		case <-m.closeChan:
			return
		default:
		}

		m.connMu.RLock()
		conn := m.conn
		m.connMu.RUnlock()
		if conn == nil {
			return
		}

		_, message, err := conn.ReadMessage()
		if err != nil {
			m.handleDisconnect(err)
			return
		}

		m.callbackMu.RLock()
		onMessage := m.onMessage
		m.callbackMu.RUnlock()
		if onMessage != nil {
			onMessage(message)
		}
	}
}

func (m *WSReconnectManager) pingPump() {
	ticker := time.NewTicker(m.config.PingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-m.closeChan:
			return
		case <-ticker.C:
			m.connMu.RLock()
			conn := m.conn
			m.connMu.RUnlock()
			if conn == nil || m.GetState() != WSStateConnected {
				return
			}

			conn.SetWriteDeadline(time.Now().Add(m.config.PongTimeout))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				m.log.Warn("ping failed", zap.String("venue", m.venueName), zap.Error(err))
				m.handleDisconnect(err)
				return
			}
		}
	}
}

func (m *WSReconnectManager) handleDisconnect(err error) {
	select {
	case <-m.closeChan:
		return
	default:
	}

	state := m.GetState()
	if state == WSStateReconnecting || state == WSStateClosed {
		return
	}
	atomic.StoreInt32(&m.state, int32(WSStateReconnecting))

	m.connMu.Lock()
	if m.conn != nil {
		m.conn.Close()
		m.conn = nil
	}
	m.connMu.Unlock()

	m.callbackMu.RLock()
	onDisconnect := m.onDisconnect
	m.callbackMu.RUnlock()
	if onDisconnect != nil {
		onDisconnect(err)
	}
	if err != nil {
		m.log.Warn("websocket disconnected", zap.String("venue", m.venueName), zap.Error(err))
	}

	go m.reconnectLoop()
}

func (m *WSReconnectManager) reconnectLoop() {
	delay := m.config.InitialDelay

	for {
		select {
		case <-m.closeChan:
			return
		default:
		}

		retryCount := atomic.AddInt32(&m.retryCount, 1)
		if m.config.MaxRetries > 0 && int(retryCount) > m.config.MaxRetries {
			m.log.Error("max reconnect attempts reached", zap.String("venue", m.venueName), zap.Int("max", m.config.MaxRetries))
			atomic.StoreInt32(&m.state, int32(WSStateDisconnected))
			return
		}

		select {
		case <-m.closeChan:
			return
		case <-time.After(delay):
		}

		if err := m.dial(); err != nil {
			m.log.Warn("reconnect failed", zap.String("venue", m.venueName), zap.Int32("attempt", retryCount), zap.Error(err))
			delay *= 2
			if delay > m.config.MaxDelay {
				delay = m.config.MaxDelay
			}
			continue
		}

		atomic.StoreInt32(&m.state, int32(WSStateConnected))
		atomic.StoreInt32(&m.retryCount, 0)

		m.callbackMu.RLock()
		onConnect := m.onConnect
		m.callbackMu.RUnlock()
		if onConnect != nil {
			onConnect()
		}

		m.log.Info("websocket reconnected", zap.String("venue", m.venueName))
		go m.readPump()
		go m.pingPump()
		return
	}
}

func (m *WSReconnectManager) Send(msg interface{}) error {
	if m.GetState() != WSStateConnected {
		return fmt.Errorf("venue: %s not connected (state: %s)", m.venueName, m.GetState())
	}
	m.connMu.RLock()
	conn := m.conn
	m.connMu.RUnlock()
	if conn == nil {
		return fmt.Errorf("venue: %s no connection", m.venueName)
	}
	return conn.WriteJSON(msg)
}

func (m *WSReconnectManager) Close() error {
	m.closeOnce.Do(func() { close(m.closeChan) })
	atomic.StoreInt32(&m.state, int32(WSStateClosed))

	m.connMu.Lock()
	defer m.connMu.Unlock()
	if m.conn != nil {
		err := m.conn.Close()
		m.conn = nil
		return err
	}
	return nil
}
