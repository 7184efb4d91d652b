package graphql_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"reflect"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	gql "github.com/Bama-S/capec-rel/internal/graphql"
	"github.com/Bama-S/capec-rel/internal/ingest"
	"github.com/Bama-S/capec-rel/internal/models"
	"github.com/Bama-S/capec-rel/internal/service"
)

// 1 > 2, 2 ~ 3, 3 -> 4.
const chainTable = `id,relation_1,relation_2
2,childof 1,peerof 3
3,canprecede 4,
`

func init() {
	gin.SetMode(gin.TestMode)
}

func testLogger() *logrus.Logger {
	l := logrus.New()
	l.SetLevel(logrus.ErrorLevel)

	return l
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()

	mg, _, err := ingest.LoadReader(context.Background(), strings.NewReader(chainTable), models.ModeLenient, testLogger())
	if err != nil {
		t.Fatalf("LoadReader: %v", err)
	}

	svc, err := service.NewQueryService(mg, testLogger())
	if err != nil {
		t.Fatalf("NewQueryService: %v", err)
	}

	schema, err := gql.NewSchema(&gql.Resolver{Relations: svc, Log: testLogger()})
	if err != nil {
		t.Fatalf("NewSchema: %v", err)
	}

	r := gin.New()
	r.POST("/graphql", gql.Handler(schema, testLogger()))
	r.GET("/graphql", gql.Handler(schema, testLogger()))

	return r
}

type response struct {
	Data   map[string]json.RawMessage `json:"data"`
	Errors []struct {
		Message    string            `json:"message"`
		Extensions map[string]string `json:"extensions"`
	} `json:"errors"`
}

func post(t *testing.T, r *gin.Engine, req gql.Request) (*httptest.ResponseRecorder, response) {
	t.Helper()

	body, err := json.Marshal(req)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	hr := httptest.NewRequest(http.MethodPost, "/graphql", strings.NewReader(string(body)))
	hr.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, hr)

	var resp response
	if w.Code == http.StatusOK {
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("invalid JSON: %v: %s", err, w.Body.String())
		}
	}

	return w, resp
}

func TestNodeQuery(t *testing.T) {
	t.Parallel()

	r := newTestRouter(t)

	w, resp := post(t, r, gql.Request{Query: `{
		node(id: 2) { id exists parents children peers canPrecede canFollow ancestors descendants isRoot isLeaf related }
	}`})

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if len(resp.Errors) > 0 {
		t.Fatalf("unexpected errors: %+v", resp.Errors)
	}

	var node struct {
		ID          int   `json:"id"`
		Exists      bool  `json:"exists"`
		Parents     []int `json:"parents"`
		Children    []int `json:"children"`
		Peers       []int `json:"peers"`
		CanPrecede  []int `json:"canPrecede"`
		CanFollow   []int `json:"canFollow"`
		Ancestors   []int `json:"ancestors"`
		Descendants []int `json:"descendants"`
		IsRoot      bool  `json:"isRoot"`
		IsLeaf      bool  `json:"isLeaf"`
		Related     []int `json:"related"`
	}
	if err := json.Unmarshal(resp.Data["node"], &node); err != nil {
		t.Fatalf("decoding node: %v", err)
	}

	if node.ID != 2 || !node.Exists {
		t.Errorf("id/exists = %d/%v", node.ID, node.Exists)
	}
	if !reflect.DeepEqual(node.Parents, []int{1}) {
		t.Errorf("parents = %v, want [1]", node.Parents)
	}
	if !reflect.DeepEqual(node.Peers, []int{3}) {
		t.Errorf("peers = %v, want [3]", node.Peers)
	}
	if len(node.Children) != 0 || len(node.CanPrecede) != 0 || len(node.CanFollow) != 0 {
		t.Errorf("expected empty children/canPrecede/canFollow, got %v %v %v", node.Children, node.CanPrecede, node.CanFollow)
	}
	if !reflect.DeepEqual(node.Ancestors, []int{1}) {
		t.Errorf("ancestors = %v, want [1]", node.Ancestors)
	}
	if !reflect.DeepEqual(node.Descendants, []int{3, 4}) {
		t.Errorf("descendants = %v, want [3 4]", node.Descendants)
	}
	if node.IsRoot || node.IsLeaf {
		t.Errorf("isRoot/isLeaf = %v/%v, want false/false", node.IsRoot, node.IsLeaf)
	}
	if !reflect.DeepEqual(node.Related, []int{1, 2, 3, 4}) {
		t.Errorf("related = %v, want [1 2 3 4]", node.Related)
	}
}

func TestNodeQuery_AbsentNode(t *testing.T) {
	t.Parallel()

	r := newTestRouter(t)

	_, resp := post(t, r, gql.Request{
		Query:     `query Q($id: Int!) { node(id: $id) { exists related } }`,
		Variables: map[string]any{"id": 999},
	})

	if len(resp.Errors) > 0 {
		t.Fatalf("unexpected errors: %+v", resp.Errors)
	}

	var node struct {
		Exists  bool  `json:"exists"`
		Related []int `json:"related"`
	}
	if err := json.Unmarshal(resp.Data["node"], &node); err != nil {
		t.Fatalf("decoding node: %v", err)
	}

	if node.Exists {
		t.Error("expected exists=false")
	}
	if !reflect.DeepEqual(node.Related, []int{999}) {
		t.Errorf("related = %v, want [999]", node.Related)
	}
}

func TestRootsLeavesStats(t *testing.T) {
	t.Parallel()

	r := newTestRouter(t)

	_, resp := post(t, r, gql.Request{Query: `{ roots leaves stats { nodes edges collapsedEdges roots leaves edgesByKind { kind count } } }`})
	if len(resp.Errors) > 0 {
		t.Fatalf("unexpected errors: %+v", resp.Errors)
	}

	var roots, leaves []int
	if err := json.Unmarshal(resp.Data["roots"], &roots); err != nil {
		t.Fatalf("decoding roots: %v", err)
	}
	if err := json.Unmarshal(resp.Data["leaves"], &leaves); err != nil {
		t.Fatalf("decoding leaves: %v", err)
	}

	if !reflect.DeepEqual(roots, []int{1}) {
		t.Errorf("roots = %v, want [1]", roots)
	}
	if !reflect.DeepEqual(leaves, []int{4}) {
		t.Errorf("leaves = %v, want [4]", leaves)
	}

	var stats struct {
		Nodes       int `json:"nodes"`
		Edges       int `json:"edges"`
		EdgesByKind []struct {
			Kind  string `json:"kind"`
			Count int    `json:"count"`
		} `json:"edgesByKind"`
	}
	if err := json.Unmarshal(resp.Data["stats"], &stats); err != nil {
		t.Fatalf("decoding stats: %v", err)
	}

	if stats.Nodes != 4 || stats.Edges != 3 {
		t.Errorf("nodes/edges = %d/%d, want 4/3", stats.Nodes, stats.Edges)
	}
	if len(stats.EdgesByKind) != 3 || stats.EdgesByKind[0].Kind != "canprecede" {
		t.Errorf("unexpected edgesByKind: %+v", stats.EdgesByKind)
	}
}

func TestSubgraphQuery(t *testing.T) {
	t.Parallel()

	r := newTestRouter(t)

	_, resp := post(t, r, gql.Request{Query: `{ subgraph(id: 3) { focus nodes edges { source target kind } } }`})
	if len(resp.Errors) > 0 {
		t.Fatalf("unexpected errors: %+v", resp.Errors)
	}

	var sg struct {
		Focus int   `json:"focus"`
		Nodes []int `json:"nodes"`
		Edges []struct {
			Source int    `json:"source"`
			Target int    `json:"target"`
			Kind   string `json:"kind"`
		} `json:"edges"`
	}
	if err := json.Unmarshal(resp.Data["subgraph"], &sg); err != nil {
		t.Fatalf("decoding subgraph: %v", err)
	}

	if sg.Focus != 3 {
		t.Errorf("focus = %d, want 3", sg.Focus)
	}
	if !reflect.DeepEqual(sg.Nodes, []int{1, 2, 3, 4}) {
		t.Errorf("nodes = %v, want [1 2 3 4]", sg.Nodes)
	}
	if len(sg.Edges) != 3 {
		t.Errorf("expected 3 edges, got %+v", sg.Edges)
	}
}

func TestNegativeIDIsBadRequest(t *testing.T) {
	t.Parallel()

	r := newTestRouter(t)

	_, resp := post(t, r, gql.Request{Query: `{ node(id: -1) { exists } }`})

	if len(resp.Errors) != 1 {
		t.Fatalf("expected one error, got %+v", resp.Errors)
	}
	if resp.Errors[0].Extensions["code"] != "BAD_REQUEST" {
		t.Errorf("code = %q, want BAD_REQUEST", resp.Errors[0].Extensions["code"])
	}
}

func TestSyntaxErrorIsBadRequest(t *testing.T) {
	t.Parallel()

	r := newTestRouter(t)

	_, resp := post(t, r, gql.Request{Query: `{ node(id: 1) { `})

	if len(resp.Errors) == 0 {
		t.Fatal("expected errors")
	}
	if resp.Errors[0].Extensions["code"] != "BAD_REQUEST" {
		t.Errorf("code = %q, want BAD_REQUEST", resp.Errors[0].Extensions["code"])
	}
}

func TestGetRequest(t *testing.T) {
	t.Parallel()

	r := newTestRouter(t)

	q := url.Values{}
	q.Set("query", `query Q($id: Int!) { node(id: $id) { parents } }`)
	q.Set("variables", `{"id": 2}`)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/graphql?"+q.Encode(), http.NoBody))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), `"parents":[1]`) {
		t.Errorf("unexpected body: %s", w.Body.String())
	}
}

func TestBadRequests(t *testing.T) {
	t.Parallel()

	r := newTestRouter(t)

	tests := []struct {
		name   string
		method string
		target string
		body   string
	}{
		{name: "missing query", method: http.MethodPost, target: "/graphql", body: `{}`},
		{name: "invalid body", method: http.MethodPost, target: "/graphql", body: `{not json`},
		{name: "invalid variables", method: http.MethodGet, target: "/graphql?query=%7Broots%7D&variables=oops"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(tt.method, tt.target, strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")

			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != http.StatusBadRequest {
				t.Errorf("expected 400, got %d: %s", w.Code, w.Body.String())
			}
		})
	}
}
