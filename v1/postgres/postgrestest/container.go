// Package postgrestest starts a disposable PostgreSQL server for integration tests.
package postgrestest

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/Aleph-Alpha/pgdoc/v1/postgres"
	"github.com/docker/docker/api/types/container"
	"github.com/docker/go-connections/nat"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	image    = "postgres:15"
	user     = "testuser"
	password = "testpass"
	dbName   = "testdb"
)

// Container is a running PostgreSQL server.
type Container struct {
	testcontainers.Container
	Config postgres.Config
	Host   string
	Port   string
}

// Start runs a postgres:15 container and waits until it accepts connections.
func Start(ctx context.Context) (*Container, error) {
	port, err := getFreePort()
	if err != nil {
		return nil, fmt.Errorf("could not get free port: %w", err)
	}

	portBindings := nat.PortMap{
		"5432/tcp": []nat.PortBinding{{HostPort: fmt.Sprintf("%d", port)}},
	}

	req := testcontainers.ContainerRequest{
		Image: image,
		Env: map[string]string{
			"POSTGRES_USER":     user,
			"POSTGRES_PASSWORD": password,
			"POSTGRES_DB":       dbName,
		},
		ExposedPorts: []string{"5432/tcp"},
		HostConfigModifier: func(cfg *container.HostConfig) {
			cfg.PortBindings = portBindings
		},
		// The server restarts once after initdb, so wait for the second message.
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}

	c, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start postgres container: %w", err)
	}

	host, err := c.Host(ctx)
	if err != nil {
		_ = c.Terminate(ctx)
		return nil, fmt.Errorf("failed to get host: %w", err)
	}

	mappedPort, err := c.MappedPort(ctx, "5432")
	if err != nil {
		_ = c.Terminate(ctx)
		return nil, fmt.Errorf("failed to get mapped port: %w", err)
	}

	return &Container{
		Container: c,
		Config: postgres.Config{
			Connection: postgres.Connection{
				Host:     host,
				Port:     mappedPort.Port(),
				User:     user,
				Password: password,
				DbName:   dbName,
				SSLMode:  "disable",
			},
		},
		Host: host,
		Port: mappedPort.Port(),
	}, nil
}

func getFreePort() (int, error) {
	addr, err := net.Listen("tcp", "localhost:0")
	if err != nil {
		return 0, err
	}
	defer func() {
		_ = addr.Close()
	}()
	return addr.Addr().(*net.TCPAddr).Port, nil
}
