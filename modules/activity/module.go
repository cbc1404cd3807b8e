package activity

import (
	"context"
	"fmt"
	"log"
	"sync/atomic"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"

	"github.com/example/chat-gateway/events"
)

// Module is an EventConsumerModule that counts chat activity. The
// counters are in-process only and reset on restart, like all gateway
// state.
type Module struct {
	messagesSent    atomic.Int64
	joins           atomic.Int64
	leaves          atomic.Int64
	privateMessages atomic.Int64
}

// Compile-time interface checks.
var _ mono.Module = (*Module)(nil)
var _ mono.EventConsumerModule = (*Module)(nil)
var _ mono.HealthCheckableModule = (*Module)(nil)

// NewModule creates a new activity module.
func NewModule() *Module {
	return &Module{}
}

// Name returns the module name.
func (m *Module) Name() string {
	return "activity"
}

// Start initializes the module.
func (m *Module) Start(_ context.Context) error {
	log.Println("[activity] Module started - counting chat events")
	return nil
}

// Stop shuts down the module.
func (m *Module) Stop(_ context.Context) error {
	log.Printf("[activity] Module stopped - %d messages, %d joins, %d leaves, %d private",
		m.messagesSent.Load(), m.joins.Load(), m.leaves.Load(), m.privateMessages.Load())
	return nil
}

// Health returns the health status with current counters.
func (m *Module) Health(_ context.Context) mono.HealthStatus {
	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{
			"messages_sent":    m.messagesSent.Load(),
			"joins":            m.joins.Load(),
			"leaves":           m.leaves.Load(),
			"private_messages": m.privateMessages.Load(),
		},
	}
}

// RegisterEventConsumers registers event handlers.
func (m *Module) RegisterEventConsumers(registry mono.EventRegistry) error {
	if err := helper.RegisterTypedEventConsumer(
		registry, events.MessageSentV1, m.handleMessageSent, m,
	); err != nil {
		return fmt.Errorf("failed to register MessageSent consumer: %w", err)
	}

	if err := helper.RegisterTypedEventConsumer(
		registry, events.UserJoinedV1, m.handleUserJoined, m,
	); err != nil {
		return fmt.Errorf("failed to register UserJoined consumer: %w", err)
	}

	if err := helper.RegisterTypedEventConsumer(
		registry, events.UserLeftV1, m.handleUserLeft, m,
	); err != nil {
		return fmt.Errorf("failed to register UserLeft consumer: %w", err)
	}

	if err := helper.RegisterTypedEventConsumer(
		registry, events.PrivateMessageSentV1, m.handlePrivateMessageSent, m,
	); err != nil {
		return fmt.Errorf("failed to register PrivateMessageSent consumer: %w", err)
	}

	log.Println("[activity] Registered event consumers: MessageSent, UserJoined, UserLeft, PrivateMessageSent")
	return nil
}

func (m *Module) handleMessageSent(_ context.Context, event events.MessageSentEvent, _ *mono.Msg) error {
	m.messagesSent.Add(1)
	log.Printf("[activity] Message %s by %s in room %s", event.MessageID, event.Author, event.Room)
	return nil
}

func (m *Module) handleUserJoined(_ context.Context, event events.UserJoinedEvent, _ *mono.Msg) error {
	m.joins.Add(1)
	log.Printf("[activity] %s joined room %s", event.Author, event.Room)
	return nil
}

func (m *Module) handleUserLeft(_ context.Context, event events.UserLeftEvent, _ *mono.Msg) error {
	m.leaves.Add(1)
	log.Printf("[activity] %s left room %s", event.Author, event.Room)
	return nil
}

func (m *Module) handlePrivateMessageSent(_ context.Context, event events.PrivateMessageSentEvent, _ *mono.Msg) error {
	m.privateMessages.Add(1)
	log.Printf("[activity] Private message %s -> %s", event.FromConnectionID, event.ToConnectionID)
	return nil
}
