package wsocket

import (
	"context"
	"net/http"
	"time"

	"speed_go_backend/internal/models"
	"speed_go_backend/internal/utils/broker"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

const writeWait = 10 * time.Second

type EventSource interface {
	Subscribe(topic string) <-chan broker.Event
	Unsubscribe(topic string, ch <-chan broker.Event)
}

type Handler struct {
	events       EventSource
	upgrader     websocket.Upgrader
	pingInterval time.Duration
}

type Message struct {
	Type  string        `json:"type"`
	Event *broker.Event `json:"event,omitempty"`
}

func NewHandler(events EventSource, upgrader websocket.Upgrader, pingInterval time.Duration) *Handler {
	return &Handler{
		events:       events,
		upgrader:     upgrader,
		pingInterval: pingInterval,
	}
}

// HandleWebSocket streams submission lifecycle events to one client until
// either side closes the connection.
func (h *Handler) HandleWebSocket(w http.ResponseWriter, r *http.Request, user *models.User) {
	log := zerolog.Ctx(r.Context()).With().Str("user_id", user.ID.String()).Logger()

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Msg("Error upgrading connection")
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	events := h.events.Subscribe(broker.TopicSubmissions)
	defer h.events.Unsubscribe(broker.TopicSubmissions, events)

	log.Debug().Msg("Submission stream opened")
	if err := conn.WriteJSON(Message{Type: "connected"}); err != nil {
		return
	}

	// Reads only detect the client going away.
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(h.pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Debug().Msg("Submission stream closed")
			return
		case event, ok := <-events:
			if !ok {
				return
			}
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(Message{Type: "submission_event", Event: &event}); err != nil {
				log.Debug().Err(err).Msg("Error sending submission event")
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
