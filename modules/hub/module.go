package hub

import (
	"context"
	"log"

	"github.com/go-monolith/mono"
)

// Module owns the connection table for the application lifecycle.
type Module struct {
	hub *Hub
}

// Compile-time interface checks.
var _ mono.Module = (*Module)(nil)
var _ mono.HealthCheckableModule = (*Module)(nil)

// NewModule creates a new hub module.
func NewModule() *Module {
	return &Module{
		hub: NewHub(),
	}
}

// Name returns the module name.
func (m *Module) Name() string {
	return "hub"
}

// Start initializes the module.
func (m *Module) Start(_ context.Context) error {
	log.Println("[hub] Module started - connection table ready")
	return nil
}

// Stop closes all live connections.
func (m *Module) Stop(_ context.Context) error {
	clientCount := m.hub.ClientCount()
	m.hub.CloseAll()
	log.Printf("[hub] Module stopped - %d clients were connected", clientCount)
	return nil
}

// Health returns the health status.
func (m *Module) Health(_ context.Context) mono.HealthStatus {
	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{
			"connected_clients": m.hub.ClientCount(),
		},
	}
}

// GetHub returns the connection table for the chat and gateway modules.
func (m *Module) GetHub() *Hub {
	return m.hub
}
