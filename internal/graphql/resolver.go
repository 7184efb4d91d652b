// Package graphql exposes the relation query engine as a read-only GraphQL API.
package graphql

import (
	"github.com/sirupsen/logrus"

	"github.com/Bama-S/capec-rel/internal/domain"
)

// Resolver is the root resolver. It carries the dependencies every field
// resolver reads from.
type Resolver struct {
	Relations domain.RelationService
	Log       *logrus.Logger
}
