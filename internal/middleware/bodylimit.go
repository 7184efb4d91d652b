package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Bama-S/capec-rel/internal/httputil"
	"github.com/Bama-S/capec-rel/internal/metrics"
)

// MaxBodySize rejects requests whose declared Content-Length exceeds maxBytes
// with 413 and caps every other body at maxBytes while it is read.
func MaxBodySize(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			metrics.ErrorsTotal.WithLabelValues(httputil.CodeBodyTooLarge).Inc()
			httputil.RespondError(c, http.StatusRequestEntityTooLarge, httputil.CodeBodyTooLarge,
				fmt.Sprintf("request body exceeds %d bytes", maxBytes))

			return
		}

		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}

		c.Next()
	}
}
