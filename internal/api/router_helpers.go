package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/Bama-S/capec-rel/internal/middleware"
	"github.com/Bama-S/capec-rel/internal/models"
)

func ginLogger(log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		fields := logrus.Fields{
			"method":   c.Request.Method,
			"path":     c.Request.URL.Path,
			"status":   c.Writer.Status(),
			"duration": time.Since(start).String(),
			"client":   c.ClientIP(),
		}
		if rid, exists := c.Get(middleware.RequestIDKey); exists {
			fields["request_id"] = rid
		}
		log.WithFields(fields).Info("request")
	}
}

// maxNodeIDLength bounds the raw id accepted from a path or query.
const maxNodeIDLength = 20

// parseNodeParam parses a node id from a request value. On failure it writes
// a 400 response and returns false.
func parseNodeParam(c *gin.Context, raw string) (models.NodeID, bool) {
	if len(raw) > maxNodeIDLength {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidNodeID, "node id exceeds maximum length")
		return 0, false
	}

	id, err := parseNodeID(raw)
	if err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidNodeID, err.Error())
		return 0, false
	}

	return id, true
}

// errNodeIDFormat is the user-facing error for any unparsable node id.
var errNodeIDFormat = errors.New("node id must be a non-negative integer")

// parseNodeID accepts the same forms as models.ParseNodeID but rejects
// negative ids, which never name a CAPEC entry.
func parseNodeID(raw string) (models.NodeID, error) {
	id, err := models.ParseNodeID(raw)
	if err != nil || id < 0 {
		return 0, errNodeIDFormat
	}

	return id, nil
}
