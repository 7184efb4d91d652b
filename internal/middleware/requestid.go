package middleware

import (
	"regexp"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	// RequestIDKey is the gin context key for the request ID.
	RequestIDKey = "request_id"

	// RequestIDHeader is the HTTP header used to propagate the request ID.
	RequestIDHeader = "X-Request-ID"

	// ClientRequestIDKey holds an accepted client-supplied X-Request-ID.
	ClientRequestIDKey = "client_request_id"
)

// clientIDPattern bounds what a caller may put in X-Request-ID before it
// reaches the logs.
var clientIDPattern = regexp.MustCompile(`^[A-Za-z0-9._:-]{1,64}$`)

// RequestID assigns every request a server-generated UUID. A well-formed
// client X-Request-ID is kept alongside it for correlation; anything else is
// discarded.
func RequestID(log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := uuid.New().String()

		if clientID := c.GetHeader(RequestIDHeader); clientID != "" {
			entry := log.WithFields(logrus.Fields{
				"request_id": id,
				"path":       c.Request.URL.Path,
			})

			if clientIDPattern.MatchString(clientID) {
				c.Set(ClientRequestIDKey, clientID)
				entry.WithField(ClientRequestIDKey, clientID).Debug("client request id")
			} else {
				entry.WithField("length", len(clientID)).Debug("client request id rejected")
			}
		}

		c.Set(RequestIDKey, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}
