// Package cache provides the Valkey client and the storefront grid cache.
package cache

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"time"

	"github.com/redis/go-redis/v9"
)

// ConnectValkey creates a Valkey client and verifies the connection with a
// ping bounded by ctx and a 5 second timeout.
func ConnectValkey(ctx context.Context, host, port, password string) (*redis.Client, error) {
	addr := net.JoinHostPort(host, port)
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("valkey ping: %w", err)
	}

	slog.Info("valkey connected", "addr", addr)
	return client, nil
}
