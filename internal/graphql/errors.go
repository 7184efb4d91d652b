package graphql

import (
	"errors"
	"fmt"

	"github.com/graphql-go/graphql/gqlerrors"

	"github.com/Bama-S/capec-rel/internal/models"
)

// GraphQL error code constants.
const (
	codeBadRequest    = "BAD_REQUEST"
	codeInternalError = "INTERNAL_ERROR"
)

// errNodeIDRange is returned when an id argument cannot name a node.
var errNodeIDRange = fmt.Errorf("%w: must be non-negative", models.ErrInvalidNodeID)

// responseError is one entry of the errors array in a GraphQL response.
type responseError struct {
	Message    string            `json:"message"`
	Path       []any             `json:"path,omitempty"`
	Extensions map[string]string `json:"extensions,omitempty"`
}

// toResponseErrors maps execution errors to the response envelope. Query
// errors and known input errors keep their message. Any other resolver error
// is reported as an internal error.
func toResponseErrors(errs []gqlerrors.FormattedError) []responseError {
	out := make([]responseError, len(errs))
	for i, fe := range errs {
		out[i] = responseError{Message: fe.Message, Path: fe.Path}

		orig := fe.OriginalError()
		var located *gqlerrors.Error
		if errors.As(orig, &located) {
			orig = located.OriginalError
		}

		switch {
		case orig == nil:
			out[i].Extensions = map[string]string{"code": codeBadRequest}
		case errors.Is(orig, models.ErrInvalidNodeID):
			out[i].Extensions = map[string]string{"code": codeBadRequest}
		default:
			out[i].Message = "internal server error"
			out[i].Extensions = map[string]string{"code": codeInternalError}
		}
	}

	return out
}
