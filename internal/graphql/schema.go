package graphql

import (
	"fmt"

	"github.com/graphql-go/graphql"
	"github.com/sirupsen/logrus"

	"github.com/Bama-S/capec-rel/internal/metrics"
	"github.com/Bama-S/capec-rel/internal/models"
)

var idList = graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(graphql.Int)))

var nodeType = graphql.NewObject(graphql.ObjectConfig{
	Name:        "Node",
	Description: "Every relation set computed for one node",
	Fields: graphql.Fields{
		"id":            &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		"exists":        &graphql.Field{Type: graphql.NewNonNull(graphql.Boolean)},
		"parents":       &graphql.Field{Type: idList},
		"children":      &graphql.Field{Type: idList},
		"grandparents":  &graphql.Field{Type: idList},
		"grandchildren": &graphql.Field{Type: idList},
		"peers":         &graphql.Field{Type: idList},
		"canPrecede":    &graphql.Field{Type: idList},
		"canFollow":     &graphql.Field{Type: idList},
		"ancestors":     &graphql.Field{Type: idList},
		"descendants":   &graphql.Field{Type: idList},
		"isRoot":        &graphql.Field{Type: graphql.NewNonNull(graphql.Boolean)},
		"isLeaf":        &graphql.Field{Type: graphql.NewNonNull(graphql.Boolean)},
		"related":       &graphql.Field{Type: idList},
	},
})

var edgeType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Edge",
	Fields: graphql.Fields{
		"source": &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		"target": &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		"kind":   &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
	},
})

var subgraphType = graphql.NewObject(graphql.ObjectConfig{
	Name:        "Subgraph",
	Description: "Induced neighborhood of a node",
	Fields: graphql.Fields{
		"focus": &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		"nodes": &graphql.Field{Type: idList},
		"edges": &graphql.Field{Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(edgeType)))},
	},
})

var kindCountType = graphql.NewObject(graphql.ObjectConfig{
	Name: "KindCount",
	Fields: graphql.Fields{
		"kind":  &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"count": &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
	},
})

var statsType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Stats",
	Fields: graphql.Fields{
		"nodes":          &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		"edges":          &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		"collapsedEdges": &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		"roots":          &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		"leaves":         &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		"edgesByKind":    &graphql.Field{Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(kindCountType)))},
	},
})

// NewSchema builds the query schema over r.Relations.
func NewSchema(r *Resolver) (graphql.Schema, error) {
	idArgs := graphql.FieldConfigArgument{
		"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
	}

	query := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"node": &graphql.Field{
				Type:    graphql.NewNonNull(nodeType),
				Args:    idArgs,
				Resolve: r.resolveNode,
			},
			"subgraph": &graphql.Field{
				Type:    graphql.NewNonNull(subgraphType),
				Args:    idArgs,
				Resolve: r.resolveSubgraph,
			},
			"roots": &graphql.Field{
				Type: idList,
				Resolve: func(graphql.ResolveParams) (any, error) {
					metrics.QueriesTotal.WithLabelValues("graphql.roots").Inc()
					return idsToGQL(r.Relations.Roots()), nil
				},
			},
			"leaves": &graphql.Field{
				Type: idList,
				Resolve: func(graphql.ResolveParams) (any, error) {
					metrics.QueriesTotal.WithLabelValues("graphql.leaves").Inc()
					return idsToGQL(r.Relations.Leaves()), nil
				},
			},
			"stats": &graphql.Field{
				Type: graphql.NewNonNull(statsType),
				Resolve: func(graphql.ResolveParams) (any, error) {
					return statsToGQL(r.Relations.Stats()), nil
				},
			},
		},
	})

	schema, err := graphql.NewSchema(graphql.SchemaConfig{Query: query})
	if err != nil {
		return graphql.Schema{}, fmt.Errorf("creating graphql schema: %w", err)
	}

	return schema, nil
}

func (r *Resolver) resolveNode(p graphql.ResolveParams) (any, error) {
	id, err := nodeIDArg(p)
	if err != nil {
		return nil, err
	}

	metrics.QueriesTotal.WithLabelValues("graphql.node").Inc()
	r.Log.WithFields(logrus.Fields{"action": "graphql.node", "node_id": id}).Debug("resolving")

	return analysisToGQL(r.Relations.Analyze(id)), nil
}

func (r *Resolver) resolveSubgraph(p graphql.ResolveParams) (any, error) {
	id, err := nodeIDArg(p)
	if err != nil {
		return nil, err
	}

	metrics.QueriesTotal.WithLabelValues("graphql.subgraph").Inc()
	r.Log.WithFields(logrus.Fields{"action": "graphql.subgraph", "node_id": id}).Debug("resolving")

	return subgraphToGQL(r.Relations.Subgraph(id)), nil
}

func nodeIDArg(p graphql.ResolveParams) (models.NodeID, error) {
	raw, ok := p.Args["id"].(int)
	if !ok || raw < 0 {
		return 0, errNodeIDRange
	}

	return models.NodeID(raw), nil
}
