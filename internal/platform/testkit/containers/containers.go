// Package containers starts throwaway postgres and clickhouse servers for the
// integration tests, through testcontainers-go. Both are removed on test cleanup
package containers

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const startTimeout = 3 * time.Minute

// Postgres returns the DSN of a fresh postgres 16
func Postgres(t testing.TB) string {
	t.Helper()
	host, port := start(t, tc.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "judol",
			"POSTGRES_PASSWORD": "judol",
			"POSTGRES_DB":       "judol",
		},
		// the entrypoint restarts the server once after init, so wait for the second ready line
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(2 * time.Minute),
	}, "5432/tcp")
	return fmt.Sprintf("postgres://judol:judol@%s:%s/judol?sslmode=disable", host, port)
}

// ClickHouse returns the native protocol DSN of a fresh clickhouse server
func ClickHouse(t testing.TB) string {
	t.Helper()
	host, port := start(t, tc.ContainerRequest{
		Image:        "clickhouse/clickhouse-server:24.8-alpine",
		ExposedPorts: []string{"9000/tcp", "8123/tcp"},
		Env: map[string]string{
			"CLICKHOUSE_USER":     "judol",
			"CLICKHOUSE_PASSWORD": "judol",
			"CLICKHOUSE_DB":       "judol",
		},
		WaitingFor: wait.ForHTTP("/ping").WithPort("8123/tcp").WithStartupTimeout(2 * time.Minute),
	}, "9000/tcp")
	return fmt.Sprintf("clickhouse://judol:judol@%s:%s/judol", host, port)
}

func start(t testing.TB, req tc.ContainerRequest, port nat.Port) (string, string) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), startTimeout)
	defer cancel()

	c, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{ContainerRequest: req, Started: true})
	if err != nil {
		t.Fatalf("start %s: %v", req.Image, err)
	}
	t.Cleanup(func() {
		if err := c.Terminate(context.Background()); err != nil {
			t.Logf("terminate %s: %v", req.Image, err)
		}
	})

	host, err := c.Host(ctx)
	if err != nil {
		t.Fatalf("%s host: %v", req.Image, err)
	}
	mapped, err := c.MappedPort(ctx, port)
	if err != nil {
		t.Fatalf("%s port %s: %v", req.Image, port, err)
	}
	return host, mapped.Port()
}
