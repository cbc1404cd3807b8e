package auth

import (
	"context"
	"log"
	"os"

	"github.com/go-monolith/mono"
)

// Module wraps the JWT manager in a mono module so the verifier shares
// the application lifecycle with the rest of the gateway.
type Module struct {
	manager *JWTManager
}

// Compile-time interface checks.
var _ mono.Module = (*Module)(nil)
var _ mono.HealthCheckableModule = (*Module)(nil)

// NewModule creates the auth module. The signing secret comes from
// CHAT_JWT_SECRET when set.
func NewModule() *Module {
	config := DefaultJWTConfig()
	if secret := os.Getenv("CHAT_JWT_SECRET"); secret != "" {
		config.SecretKey = secret
	}
	return &Module{
		manager: NewJWTManager(config),
	}
}

// Name returns the module name.
func (m *Module) Name() string {
	return "auth"
}

// Start initializes the module.
func (m *Module) Start(_ context.Context) error {
	log.Println("[auth] Module started - token verifier ready")
	return nil
}

// Stop shuts down the module.
func (m *Module) Stop(_ context.Context) error {
	log.Println("[auth] Module stopped")
	return nil
}

// Health returns the health status.
func (m *Module) Health(_ context.Context) mono.HealthStatus {
	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{
			"issuer": m.manager.config.Issuer,
		},
	}
}

// Verifier returns the token verifier consumed by the chat router.
func (m *Module) Verifier() TokenVerifier {
	return m.manager
}
