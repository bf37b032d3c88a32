// Package gateways defines interfaces for external service adapters.
package gateways

import (
	"context"

	"github.com/ochairo/cefrelease/internal/domain/entities"
)

// CatalogGateway fetches the upstream build index
type CatalogGateway interface {
	// FetchCatalog downloads and validates the build index once
	FetchCatalog(ctx context.Context) (entities.BuildCatalog, error)
}
