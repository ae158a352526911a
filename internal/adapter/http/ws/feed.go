// Package ws exposes the live allocation feed: every committed allocation
// record is pushed to subscribed ops dashboard clients.
package ws

import (
	"context"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/roamhub/booking-ref-system/internal/domain/models"
	"github.com/roamhub/booking-ref-system/pkg/logger"
	wrap "github.com/roamhub/booking-ref-system/pkg/logger/wrapper"
	"github.com/roamhub/booking-ref-system/pkg/metrics"
	"github.com/roamhub/booking-ref-system/pkg/uuid"
	"github.com/roamhub/booking-ref-system/pkg/wshub"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type Feed struct {
	hub *wshub.Hub
	l   logger.Logger
}

func NewFeed(hub *wshub.Hub, l logger.Logger) *Feed {
	return &Feed{hub: hub, l: l}
}

// HandleWS upgrades the connection and keeps it registered until the client
// goes away. Clients only listen; inbound frames are drained and ignored.
func (f *Feed) HandleWS(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "allocation_feed_connect")

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		f.l.Error(ctx, "websocket upgrade failed", err)
		return
	}

	id := uuid.MustNew()
	if err := f.hub.Add(wshub.NewConn(id, conn)); err != nil {
		f.l.Error(ctx, "failed to register feed connection", err)
		conn.Close()
		return
	}

	metrics.FeedConnectionsGauge.Inc()
	f.l.Debug(ctx, "feed client connected", "conn_id", id)

	go func() {
		defer func() {
			_ = f.hub.Delete(id)
			metrics.FeedConnectionsGauge.Dec()
			f.l.Debug(ctx, "feed client disconnected", "conn_id", id)
		}()

		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

// Publish implements the ledger writer's fan-out hook.
func (f *Feed) Publish(_ context.Context, rec models.AllocationRecord) {
	f.hub.Broadcast(models.AllocationFeedMessage{
		MsgType:     "allocation",
		BookingID:   rec.BookingID,
		ServiceType: rec.ServiceType,
		Degraded:    rec.Degraded,
		IssuedAt:    rec.IssuedAt,
	})
}

// Close drops every client, used on shutdown.
func (f *Feed) Close() {
	f.hub.CloseAll()
}
