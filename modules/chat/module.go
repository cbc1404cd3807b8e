package chat

import (
	"context"
	"log"

	"github.com/go-monolith/mono"

	"github.com/example/chat-gateway/events"
	"github.com/example/chat-gateway/modules/auth"
	"github.com/example/chat-gateway/modules/hub"
)

// Module owns the chat event router and publishes chat domain events on
// the application event bus.
type Module struct {
	router *Router
}

// Compile-time interface checks.
var (
	_ mono.Module              = (*Module)(nil)
	_ mono.EventBusAwareModule = (*Module)(nil)
	_ mono.EventEmitterModule  = (*Module)(nil)
)

// NewModule creates a new chat module.
func NewModule(h *hub.Hub, verifier auth.TokenVerifier) *Module {
	return &Module{
		router: NewRouter(h, verifier),
	}
}

// Name returns the module name.
func (m *Module) Name() string {
	return "chat"
}

// SetEventBus receives the EventBus from the framework.
func (m *Module) SetEventBus(bus mono.EventBus) {
	m.router.eventBus = bus
}

// EmitEvents declares the events this module can emit.
func (m *Module) EmitEvents() []mono.BaseEventDefinition {
	return []mono.BaseEventDefinition{
		events.MessageSentV1.ToBase(),
		events.UserJoinedV1.ToBase(),
		events.UserLeftV1.ToBase(),
		events.PrivateMessageSentV1.ToBase(),
	}
}

// Start initializes the module.
func (m *Module) Start(_ context.Context) error {
	log.Println("[chat] Module started - event router ready")
	return nil
}

// Stop shuts down the module.
func (m *Module) Stop(_ context.Context) error {
	log.Println("[chat] Module stopped")
	return nil
}

// Router returns the event router for the gateway module.
func (m *Module) Router() *Router {
	return m.router
}
