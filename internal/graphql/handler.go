package graphql

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/graphql-go/graphql"
	"github.com/sirupsen/logrus"

	"github.com/Bama-S/capec-rel/internal/httputil"
	"github.com/Bama-S/capec-rel/internal/metrics"
)

// Request is a GraphQL request body.
type Request struct {
	Query         string         `json:"query"`
	Variables     map[string]any `json:"variables,omitempty"`
	OperationName string         `json:"operationName,omitempty"`
}

// Response is a GraphQL response body.
type Response struct {
	Data   any             `json:"data,omitempty"`
	Errors []responseError `json:"errors,omitempty"`
}

// Handler serves GraphQL over HTTP. POST takes a JSON Request body; GET reads
// query, variables and operationName from the URL.
func Handler(schema graphql.Schema, log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		req, ok := bindRequest(c)
		if !ok {
			return
		}

		result := graphql.Do(graphql.Params{
			Schema:         schema,
			RequestString:  req.Query,
			VariableValues: req.Variables,
			OperationName:  req.OperationName,
			Context:        c.Request.Context(),
		})

		resp := Response{Data: result.Data}
		if result.HasErrors() {
			resp.Errors = toResponseErrors(result.Errors)
			metrics.ErrorsTotal.WithLabelValues("graphql").Inc()
			log.WithField("errors", len(result.Errors)).Debug("graphql query returned errors")
		}

		c.JSON(http.StatusOK, resp)
	}
}

func bindRequest(c *gin.Context) (*Request, bool) {
	var req Request

	if c.Request.Method == http.MethodGet {
		req.Query = c.Query("query")
		req.OperationName = c.Query("operationName")

		if raw := c.Query("variables"); raw != "" {
			if err := json.Unmarshal([]byte(raw), &req.Variables); err != nil {
				httputil.RespondError(c, http.StatusBadRequest, httputil.CodeInvalidRequest, "variables must be a JSON object")
				return nil, false
			}
		}
	} else if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondError(c, http.StatusBadRequest, httputil.CodeInvalidRequest, "invalid request body")
		return nil, false
	}

	if req.Query == "" {
		httputil.RespondError(c, http.StatusBadRequest, httputil.CodeInvalidRequest, "query is required")
		return nil, false
	}

	return &req, true
}
