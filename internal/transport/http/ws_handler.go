package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"trivia-service/internal/app"
	"trivia-service/internal/domain"
)

type WSHandler struct {
	service  *app.GameService
	log      *zap.Logger
	upgrader websocket.Upgrader
}

func NewWSHandler(service *app.GameService, log *zap.Logger) *WSHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &WSHandler{
		service: service,
		log:     log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type selectCategoryPayload struct {
	Category string `json:"category"`
}

type startPayload struct {
	Mode     string `json:"mode"`
	Category string `json:"category"`
}

type answerPayload struct {
	OptionIndex *int `json:"optionIndex"`
}

type joinPayload struct {
	Code string `json:"code"`
}

type readyPayload struct {
	Ready bool `json:"ready"`
}

type outboundMessage struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

type errorPayload struct {
	Message string `json:"message"`
}

var errInvalidPayload = errors.New("invalid payload")

// ServeWS upgrades HTTP requests to websockets and drives one game session
// per connection.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	displayName := query.Get("name")
	if displayName == "" {
		http.Error(w, "missing name", http.StatusBadRequest)
		return
	}
	req := app.OpenRequest{
		ParticipantID: query.Get("userId"),
		DisplayName:   displayName,
		Entitlements:  domain.NewEntitlements(strings.Split(query.Get("entitlements"), ",")...),
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("ws upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	sessionID, _ := h.service.Open(req)
	log := h.log.With(zap.String("session", sessionID))
	defer h.service.Close(context.Background(), sessionID)

	updates, cancel, err := h.service.Subscribe(r.Context(), sessionID)
	if err != nil {
		_ = conn.WriteJSON(outboundMessage{Type: "error", Payload: errorPayload{Message: err.Error()}})
		return
	}
	defer cancel()

	send := make(chan outboundMessage, 16)
	closeSignals := make(chan struct{})
	writerDone := make(chan struct{})
	updatesDone := make(chan struct{})

	go func() {
		defer close(writerDone)
		for msg := range send {
			if err := conn.WriteJSON(msg); err != nil {
				log.Debug("ws write error", zap.Error(err))
				return
			}
		}
	}()

	go func() {
		defer close(updatesDone)
		for {
			select {
			case snap, ok := <-updates:
				if !ok {
					return
				}
				select {
				case send <- outboundMessage{Type: "snapshot", Payload: snap}:
				case <-closeSignals:
					return
				}
			case <-closeSignals:
				return
			}
		}
	}()

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			break
		}
		if err := h.dispatch(r.Context(), sessionID, displayName, inbound); err != nil {
			log.Debug("ws command rejected", zap.String("type", inbound.Type), zap.Error(err))
			select {
			case send <- outboundMessage{Type: "error", Payload: errorPayload{Message: err.Error()}}:
			case <-writerDone:
			}
		}
	}

	close(closeSignals)
	<-updatesDone
	close(send)
	<-writerDone
}

func (h *WSHandler) dispatch(ctx context.Context, sessionID, displayName string, in inboundMessage) error {
	switch in.Type {
	case "selectCategory":
		var p selectCategoryPayload
		if err := decode(in.Payload, &p); err != nil {
			return err
		}
		c, err := domain.ParseCategory(p.Category)
		if err != nil {
			return err
		}
		return h.service.SelectCategory(ctx, sessionID, c)

	case "start":
		var p startPayload
		if err := decode(in.Payload, &p); err != nil {
			return err
		}
		mode, err := domain.ParseMode(p.Mode)
		if err != nil {
			return err
		}
		var category *domain.Category
		if p.Category != "" {
			c, err := domain.ParseCategory(p.Category)
			if err != nil {
				return err
			}
			category = &c
		}
		return h.service.Start(ctx, sessionID, mode, category)

	case "answer":
		var p answerPayload
		if err := decode(in.Payload, &p); err != nil {
			return err
		}
		if p.OptionIndex == nil {
			return errInvalidPayload
		}
		return h.service.SubmitAnswer(ctx, sessionID, *p.OptionIndex)

	case "next":
		return h.service.Advance(ctx, sessionID)

	case "join":
		var p joinPayload
		if err := decode(in.Payload, &p); err != nil {
			return err
		}
		if p.Code == "" {
			return errInvalidPayload
		}
		return h.service.Join(ctx, sessionID, p.Code, displayName)

	case "ready":
		var p readyPayload
		if err := decode(in.Payload, &p); err != nil {
			return err
		}
		return h.service.SetReady(ctx, sessionID, p.Ready)

	case "cancel":
		return h.service.Cancel(ctx, sessionID)
	}
	return errors.New("unsupported message type")
}

func decode(raw json.RawMessage, v any) error {
	if len(raw) == 0 {
		return errInvalidPayload
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return errInvalidPayload
	}
	return nil
}
