package main

import (
	"context"
	"log"
	"os"
	"time"

	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/go-monolith/mono"

	"github.com/example/chat-gateway/modules/activity"
	"github.com/example/chat-gateway/modules/auth"
	"github.com/example/chat-gateway/modules/chat"
	"github.com/example/chat-gateway/modules/gateway"
	"github.com/example/chat-gateway/modules/hub"
)

const shutdownTimeout = 30 * time.Second

func main() {
	log.Println("=== Chat Gateway - realtime room coordination ===")

	// Create mono application
	app, err := mono.NewMonoApplication(
		mono.WithShutdownTimeout(shutdownTimeout),
		mono.WithLogLevel(mono.LogLevelInfo),
		mono.WithLogFormat(mono.LogFormatText),
	)
	if err != nil {
		log.Fatalf("Failed to create application: %v", err)
	}

	// Create modules
	authModule := auth.NewModule()
	hubModule := hub.NewModule()
	chatModule := chat.NewModule(hubModule.GetHub(), authModule.Verifier())
	activityModule := activity.NewModule()
	gatewayModule := gateway.NewModule(chatModule.Router())

	// Register modules with the framework.
	// Order: independent modules first, then modules with dependencies
	// - auth: token verifier
	// - hub: connection table
	// - chat: event router (EventEmitterModule)
	// - activity: event consumer (chat activity counters)
	// - gateway: Fiber HTTP/WebSocket server
	app.Register(authModule)
	app.Register(hubModule)
	app.Register(chatModule)
	app.Register(activityModule)
	app.Register(gatewayModule)

	// Start application
	if err := app.Start(context.Background()); err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}

	printStartupInfo()

	// Graceful shutdown
	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		shutdownTimeout,
		map[string]gfshutdown.Operation{
			"mono-app": func(ctx context.Context) error {
				log.Println("Graceful shutdown initiated...")
				return app.Stop(ctx)
			},
		},
	)

	exitCode := <-wait
	log.Printf("Application exited with code: %d", exitCode)
	os.Exit(exitCode)
}

func printStartupInfo() {
	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}

	log.Println("")
	log.Println("Application started successfully!")
	log.Println("")
	log.Printf("WebSocket endpoint (ws://localhost:%s/ws):", port)
	log.Println("  Connect with: ws://localhost:3000/ws?token=<bearer token>")
	log.Println("  Inbound events: join_room, send_message, typing, stop_typing,")
	log.Println("                  message_read, react_message, private_message")
	log.Println("")
	log.Printf("Health check: http://localhost:%s/health", port)
	log.Println("")
	log.Println("Press Ctrl+C to shutdown gracefully")
}
