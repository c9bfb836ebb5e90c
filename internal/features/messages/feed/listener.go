package feed

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/lib/pq"

	"neoguard-console-backend/internal/common/logger"
)

const channelName = "message_logs"

// Event is one live message-log insert, pushed by the NOTIFY trigger.
// Delivery is at least once per insert; subscribers must tolerate
// duplicates relative to a prior full fetch.
type Event struct {
	ID        string    `json:"id"`
	ChatID    int64     `json:"chatId"`
	UserID    int64     `json:"userId"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

// Listener fans Postgres NOTIFY payloads out to per-chat subscribers.
type Listener struct {
	pq *pq.Listener

	mu   sync.Mutex
	subs map[int64]map[chan Event]struct{}
}

func NewListener(dsn string) (*Listener, error) {
	l := pq.NewListener(dsn, 10*time.Second, time.Minute, func(ev pq.ListenerEventType, err error) {
		if err != nil {
			logger.Warn().Err(err).Int("event", int(ev)).Msg("feed listener event")
		}
	})
	if err := l.Listen(channelName); err != nil {
		_ = l.Close()
		return nil, err
	}
	return &Listener{pq: l, subs: make(map[int64]map[chan Event]struct{})}, nil
}

// Run consumes notifications until the context is cancelled.
func (l *Listener) Run(ctx context.Context) {
	defer l.pq.Close()
	for {
		select {
		case <-ctx.Done():
			return
		case n := <-l.pq.Notify:
			// A nil notification signals a reconnect; rows inserted while
			// disconnected are not replayed, clients re-fetch on gap.
			if n == nil {
				continue
			}
			var event Event
			if err := json.Unmarshal([]byte(n.Extra), &event); err != nil {
				logger.Warn().Err(err).Msg("malformed feed payload")
				continue
			}
			l.publish(event)
		case <-time.After(90 * time.Second):
			if err := l.pq.Ping(); err != nil {
				logger.Warn().Err(err).Msg("feed listener ping failed")
			}
		}
	}
}

// Subscribe registers a buffered channel for one chat. The returned cancel
// must be called when the consumer goes away.
func (l *Listener) Subscribe(chatID int64) (<-chan Event, func()) {
	ch := make(chan Event, 16)

	l.mu.Lock()
	if l.subs[chatID] == nil {
		l.subs[chatID] = make(map[chan Event]struct{})
	}
	l.subs[chatID][ch] = struct{}{}
	l.mu.Unlock()

	cancel := func() {
		l.mu.Lock()
		delete(l.subs[chatID], ch)
		if len(l.subs[chatID]) == 0 {
			delete(l.subs, chatID)
		}
		l.mu.Unlock()
	}
	return ch, cancel
}

func (l *Listener) publish(event Event) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for ch := range l.subs[event.ChatID] {
		select {
		case ch <- event:
		default:
			// Slow consumer: drop rather than block the feed.
		}
	}
}
