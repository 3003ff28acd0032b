package domain

import "context"

// Embedder is the shared text vectorization contract between layers.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// HealthChecker verifies an external capability's availability.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}
