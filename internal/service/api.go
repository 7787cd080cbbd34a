package service

import (
	"context"

	"github.com/creatorhub/memberkit/internal/client"
	"github.com/creatorhub/memberkit/internal/domain"
)

// Executor sends a descriptor to the backend. *client.Client satisfies it.
type Executor interface {
	Do(ctx context.Context, d client.Descriptor) (*client.Response, error)
}

// call executes d and decodes the success envelope. Executor errors are returned unchanged.
func call[T any](ctx context.Context, exec Executor, d client.Descriptor) (*domain.Envelope[T], error) {
	resp, err := exec.Do(ctx, d)
	if err != nil {
		return nil, err
	}
	var env domain.Envelope[T]
	if err := resp.Decode(&env); err != nil {
		return nil, err
	}
	return &env, nil
}
