package tournamentevents

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// NewPubSub returns an in-process pub/sub shared by the publisher and the audit router.
func NewPubSub(logger *slog.Logger) *gochannel.GoChannel {
	return gochannel.NewGoChannel(
		gochannel.Config{OutputChannelBuffer: 64},
		watermill.NewSlogLogger(logger),
	)
}

// AuditRouter wires the audit handler to every tournament topic.
type AuditRouter struct {
	router *message.Router
	logger *slog.Logger
}

// NewAuditRouter creates the Watermill router and registers one audit handler per topic.
func NewAuditRouter(logger *slog.Logger, subscriber message.Subscriber, handler *AuditHandler) (*AuditRouter, error) {
	router, err := message.NewRouter(message.RouterConfig{}, watermill.NewSlogLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("failed to create event router: %w", err)
	}
	router.AddMiddleware(middleware.Recoverer)

	for _, topic := range Topics {
		router.AddNoPublisherHandler("tournament.audit."+topic, topic, subscriber, handler.Handle)
	}

	logger.Info("Registered tournament audit handlers", "topics", len(Topics))
	return &AuditRouter{router: router, logger: logger}, nil
}

// Run blocks until ctx is cancelled or the router is closed.
func (r *AuditRouter) Run(ctx context.Context) error {
	return r.router.Run(ctx)
}

// Running is closed once all handlers are subscribed.
func (r *AuditRouter) Running() chan struct{} {
	return r.router.Running()
}

// Close shuts down the router.
func (r *AuditRouter) Close() error {
	return r.router.Close()
}
