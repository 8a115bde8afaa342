package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/straye-as/sales-crm-api/internal/auth"
	"github.com/straye-as/sales-crm-api/internal/events"
	"go.uber.org/zap"
)

const defaultHeartbeat = 25 * time.Second

// Subscriber is the part of the event bus the stream needs
type Subscriber interface {
	Subscribe(topics ...events.Topic) (<-chan events.Event, func())
}

// EventHandler streams bus events to clients as server-sent events
type EventHandler struct {
	bus       Subscriber
	heartbeat time.Duration
	logger    *zap.Logger
}

func NewEventHandler(bus Subscriber, logger *zap.Logger) *EventHandler {
	return &EventHandler{
		bus:       bus,
		heartbeat: defaultHeartbeat,
		logger:    logger,
	}
}

// Stream godoc
// @Summary Stream change events
// @Description Server-sent events for organization, profile and target changes. Clients refetch affected data on receipt.
// @Description Non-admin callers only receive events for their own entity or events without an entity.
// @Tags Events
// @Produce text/event-stream
// @Param topics query string false "Comma separated topics (org-units-changed, profiles-changed, targets-changed)"
// @Success 200 {object} events.Event
// @Failure 400 {object} domain.APIError
// @Failure 401 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /events [get]
func (h *EventHandler) Stream(w http.ResponseWriter, r *http.Request) {
	userCtx, ok := auth.FromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	topics, err := parseTopics(r.URL.Query().Get("topics"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		respondWithError(w, http.StatusInternalServerError, "Streaming unsupported")
		return
	}

	ch, cancel := h.bus.Subscribe(topics...)
	defer cancel()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	ticker := time.NewTicker(h.heartbeat)
	defer ticker.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-ticker.C:
			if _, err := fmt.Fprint(w, ": ping\n\n"); err != nil {
				return
			}
			flusher.Flush()
		case ev, open := <-ch:
			if !open {
				return
			}
			if !visibleTo(userCtx, ev) {
				continue
			}
			payload, err := json.Marshal(ev)
			if err != nil {
				h.logger.Error("failed to encode event", zap.Error(err))
				continue
			}
			if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", ev.Topic, payload); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}

func visibleTo(user *auth.UserContext, ev events.Event) bool {
	if user.IsAdmin() || ev.EntityID == nil {
		return true
	}
	return user.EntityID != nil && *user.EntityID == *ev.EntityID
}

func parseTopics(raw string) ([]events.Topic, error) {
	if raw == "" {
		return nil, nil
	}
	var topics []events.Topic
	for _, part := range strings.Split(raw, ",") {
		t := events.Topic(strings.TrimSpace(part))
		known := false
		for _, k := range events.Topics {
			if k == t {
				known = true
				break
			}
		}
		if !known {
			return nil, fmt.Errorf("unknown topic %q", t)
		}
		topics = append(topics, t)
	}
	return topics, nil
}
