//go:build integration

// Package testutil provides testcontainers helpers for integration tests.
package testutil

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
)

const mongoImage = "mongo:7.0"

// MongoContainer wraps a running MongoDB testcontainer.
type MongoContainer struct {
	Container testcontainers.Container
	URI       string
}

// StartMongo starts a MongoDB container and resolves its connection URI.
func StartMongo(ctx context.Context) (*MongoContainer, error) {
	container, err := mongodb.Run(ctx, mongoImage)
	if err != nil {
		return nil, fmt.Errorf("failed to start MongoDB container: %w", err)
	}

	uri, err := container.ConnectionString(ctx)
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, fmt.Errorf("failed to resolve connection string: %w", err)
	}

	return &MongoContainer{Container: container, URI: uri}, nil
}

// Terminate stops and removes the container.
func (m *MongoContainer) Terminate(ctx context.Context) error {
	if m.Container == nil {
		return nil
	}
	return m.Container.Terminate(ctx)
}

var (
	shared     *MongoContainer
	sharedErr  error
	sharedOnce sync.Once
)

// RunWithSharedMongo is a TestMain helper. It starts one MongoDB container
// for the whole package, runs the tests, and tears the container down.
//
//	func TestMain(m *testing.M) {
//		os.Exit(testutil.RunWithSharedMongo(context.Background(), m))
//	}
func RunWithSharedMongo(ctx context.Context, m *testing.M) int {
	sharedOnce.Do(func() {
		shared, sharedErr = StartMongo(ctx)
	})
	if sharedErr != nil {
		fmt.Fprintf(os.Stderr, "failed to start shared MongoDB container: %v\n", sharedErr)
		return 1
	}

	code := m.Run()

	if err := shared.Terminate(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to terminate shared MongoDB container: %v\n", err)
	}
	return code
}

// SharedMongoURI returns the connection URI of the package-shared container.
// It panics when called outside a RunWithSharedMongo-managed run.
func SharedMongoURI() string {
	if shared == nil {
		panic("shared MongoDB container not running; use RunWithSharedMongo in TestMain")
	}
	return shared.URI
}

// UniqueDBName derives a valid, unique MongoDB database name from a test
// name so parallel tests against the shared container stay isolated.
func UniqueDBName(testName string) string {
	name := strings.NewReplacer("/", "_", "\\", "_", " ", "_").Replace(testName)
	if len(name) > 48 {
		name = name[:48]
	}
	return fmt.Sprintf("%s_%d", name, time.Now().UnixNano()%1000000)
}
