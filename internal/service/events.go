package service

import (
	"context"

	"github.com/dafibh/brokerly/brokerly-backend/internal/domain"
	"github.com/dafibh/brokerly/brokerly-backend/internal/websocket"
	"github.com/rs/zerolog/log"
)

// notifier is embedded by services whose writes are pushed to connected clients
// and invalidate the cached dashboard
type notifier struct {
	eventPublisher websocket.EventPublisher
	dashboardCache domain.DashboardCache
}

// SetEventPublisher sets the event publisher for real-time updates
func (n *notifier) SetEventPublisher(publisher websocket.EventPublisher) {
	n.eventPublisher = publisher
}

// SetDashboardCache sets the cache dropped after writes that change dashboard figures
func (n *notifier) SetDashboardCache(cache domain.DashboardCache) {
	n.dashboardCache = cache
}

// publishEvent publishes a WebSocket event if a publisher is configured
func (n *notifier) publishEvent(workspaceID int32, event websocket.Event) {
	if n.eventPublisher != nil {
		n.eventPublisher.Publish(workspaceID, event)
	}
}

// invalidateDashboard drops cached summaries; a failure only costs staleness until the TTL
func (n *notifier) invalidateDashboard(workspaceID int32) {
	if n.dashboardCache == nil {
		return
	}
	if err := n.dashboardCache.Invalidate(context.Background(), workspaceID); err != nil {
		log.Warn().Err(err).Int32("workspace_id", workspaceID).Msg("Failed to invalidate dashboard cache")
	}
}
