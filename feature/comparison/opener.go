package comparison

import (
	"context"
	"fmt"

	"db-compare/core/compare"
	"db-compare/core/provider"
	"db-compare/core/provider/document"
	"db-compare/core/provider/relational"
)

// Opener connects a provider for one side of a comparison.
type Opener func(ctx context.Context, settings provider.Settings) (provider.Provider, error)

// OpenProvider selects the provider implementation from the settings' database type.
func OpenProvider(ctx context.Context, settings provider.Settings) (provider.Provider, error) {
	kind, err := settings.Kind()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", compare.ErrConfiguration, err)
	}

	switch {
	case kind == provider.KindMongoDB:
		return document.Open(ctx, settings)
	case kind.IsRelational():
		return relational.Open(settings)
	default:
		return nil, fmt.Errorf("%w: %w: %s", compare.ErrConfiguration, provider.ErrUnsupportedKind, kind)
	}
}
