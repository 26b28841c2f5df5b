package main

import (
	"context"
	"log"

	"github.com/aussiebroadwan/rpcbridge/examples/greeter"
	"github.com/aussiebroadwan/rpcbridge/internal/bridge/app"
	"github.com/aussiebroadwan/rpcbridge/pkg/rpc"
)

func main() {
	cfg, err := app.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	application, err := app.New(cfg, func(resolve func(ctx context.Context, userID, secret string) (string, error)) []*rpc.Registry {
		return []*rpc.Registry{greeter.Registry(resolve)}
	})
	if err != nil {
		log.Fatalf("failed to initialize application: %v", err)
	}

	if err := application.Run(); err != nil {
		log.Fatalf("application error: %v", err)
	}
}
