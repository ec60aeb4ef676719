package video_filer

import "context"

// A Resolver turns a VideoReference into complete VideoMetadata, or fails with a *ResolutionError (or a
// *ConfigurationError if it cannot be used at all). It never returns partially populated metadata.
type Resolver interface {
	Resolve(ctx context.Context, ref VideoReference) (*VideoMetadata, error)
}

// ResolverFunc adapts a plain function to the Resolver interface.
type ResolverFunc func(ctx context.Context, ref VideoReference) (*VideoMetadata, error)

func (f ResolverFunc) Resolve(ctx context.Context, ref VideoReference) (*VideoMetadata, error) {
	return f(ctx, ref)
}
