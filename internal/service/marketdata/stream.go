package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	drepo "NewsPulse/internal/domain/repository"
	"NewsPulse/pkg/logger"

	"github.com/gorilla/websocket"
)

// Stream keeps a live last-price tape over WebSocket. The screener stage
// uses it to stamp current prices on the ticker universe.
type Stream struct {
	apiKey         string
	websocketURL   string
	reconnectDelay time.Duration
	pingInterval   time.Duration
	log            *logger.Logger
	metrics        drepo.Metrics

	mu        sync.RWMutex
	conn      *websocket.Conn
	connected bool
	prices    map[string]float64
	tickers   []string
}

// NewStream creates a quote stream.
func NewStream(apiKey, websocketURL string, reconnectDelay, pingInterval time.Duration, log *logger.Logger, metrics drepo.Metrics) drepo.QuoteStream {
	return &Stream{
		apiKey:         apiKey,
		websocketURL:   websocketURL,
		reconnectDelay: reconnectDelay,
		pingInterval:   pingInterval,
		log:            log,
		metrics:        metrics,
		prices:         make(map[string]float64),
	}
}

// Connect establishes the WebSocket connection and starts the read and ping
// loops. Loops stop when ctx is cancelled or the connection drops; a dropped
// connection is re-dialed after reconnectDelay.
func (s *Stream) Connect(ctx context.Context) error {
	if err := s.dial(ctx); err != nil {
		return err
	}
	go s.pingLoop(ctx)
	go s.readLoop(ctx)
	return nil
}

func (s *Stream) dial(ctx context.Context) error {
	u := fmt.Sprintf("%s?token=%s", s.websocketURL, s.apiKey)
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, u, nil)
	if err != nil {
		return fmt.Errorf("quote stream connect: %w", err)
	}
	s.mu.Lock()
	s.conn = conn
	s.connected = true
	s.mu.Unlock()
	s.log.Info("quote stream connected")
	return nil
}

// Subscribe subscribes to the given tickers. The set is remembered so a
// reconnect resubscribes automatically.
func (s *Stream) Subscribe(_ context.Context, tickers []string) error {
	s.mu.Lock()
	conn := s.conn
	ok := s.connected
	s.tickers = append([]string(nil), tickers...)
	s.mu.Unlock()

	if conn == nil || !ok {
		return fmt.Errorf("quote stream not connected")
	}
	for _, t := range tickers {
		msg := map[string]string{"type": "subscribe", "symbol": t}
		if err := conn.WriteJSON(msg); err != nil {
			return fmt.Errorf("subscribe %s: %w", t, err)
		}
	}
	s.log.Info("quote stream subscribed", logger.Int("tickers", len(tickers)))
	return nil
}

// LastPrice returns the most recent traded price seen for ticker.
func (s *Stream) LastPrice(ticker string) (float64, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.prices[ticker]
	return p, ok
}

type wsTrade struct {
	S string  `json:"s"`
	P float64 `json:"p"`
	T int64   `json:"t"` // ms
}

type wsMessage struct {
	Type string    `json:"type"`
	Data []wsTrade `json:"data"`
}

func (s *Stream) pingLoop(ctx context.Context) {
	ticker := time.NewTicker(s.pingInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.mu.RLock()
			conn := s.conn
			s.mu.RUnlock()
			if conn != nil {
				_ = conn.WriteMessage(websocket.PingMessage, nil)
			}
		}
	}
}

func (s *Stream) readLoop(ctx context.Context) {
	for {
		if ctx.Err() != nil {
			return
		}

		s.mu.RLock()
		conn := s.conn
		s.mu.RUnlock()
		if conn == nil {
			return
		}

		_, b, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			s.log.Warn("quote stream read failed, reconnecting", logger.Error(err))
			if s.metrics != nil {
				s.metrics.RecordError("quote_stream")
			}
			if err := s.reconnect(ctx); err != nil {
				s.log.Error("quote stream reconnect failed", logger.Error(err))
				return
			}
			continue
		}

		var m wsMessage
		if err := json.Unmarshal(b, &m); err != nil || m.Type != "trade" {
			// ignore non-trade frames
			continue
		}
		s.mu.Lock()
		for _, d := range m.Data {
			s.prices[d.S] = d.P
		}
		s.mu.Unlock()
		if s.metrics != nil {
			for _, d := range m.Data {
				s.metrics.RecordLastPrice(d.S, d.P)
			}
		}
	}
}

func (s *Stream) reconnect(ctx context.Context) error {
	_ = s.closeConn()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(s.reconnectDelay):
	}
	if err := s.dial(ctx); err != nil {
		return err
	}
	s.mu.RLock()
	tickers := s.tickers
	s.mu.RUnlock()
	return s.Subscribe(ctx, tickers)
}

func (s *Stream) closeConn() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.connected = false
	if s.conn != nil {
		err := s.conn.Close()
		s.conn = nil
		return err
	}
	return nil
}

// Close closes the connection.
func (s *Stream) Close() error { return s.closeConn() }

// IsConnected indicates whether the stream is currently connected.
func (s *Stream) IsConnected() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.connected
}
