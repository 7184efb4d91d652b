package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// Analyze returns every relation set computed for id. Unknown ids are not an
// error: the response reports Exists=false with empty sets.
func (c *Client) Analyze(ctx context.Context, id NodeID) (*NodeAnalysis, error) {
	var resp NodeAnalysis
	if err := c.get(ctx, nodePath(id), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Subgraph returns the induced neighborhood of id as structured data.
func (c *Client) Subgraph(ctx context.Context, id NodeID) (*Subgraph, error) {
	var resp Subgraph
	params := url.Values{"format": {"json"}}
	if err := c.get(ctx, nodePath(id)+"/subgraph", params, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// RenderSubgraph returns the neighborhood of id rendered as svg, dot or mermaid.
func (c *Client) RenderSubgraph(ctx context.Context, id NodeID, format string) ([]byte, error) {
	path := nodePath(id) + "/subgraph?" + url.Values{"format": {format}}.Encode()
	out, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, fmt.Errorf("render subgraph: %w", err)
	}
	return out, nil
}

// Roots returns every node with no parent.
func (c *Client) Roots(ctx context.Context) ([]NodeID, error) {
	var resp rootsResponse
	if err := c.get(ctx, "/api/v1/roots", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Roots, nil
}

// Leaves returns every node with no child.
func (c *Client) Leaves(ctx context.Context) ([]NodeID, error) {
	var resp leavesResponse
	if err := c.get(ctx, "/api/v1/leaves", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Leaves, nil
}

func nodePath(id NodeID) string {
	return "/api/v1/nodes/" + strconv.FormatInt(int64(id), 10)
}
