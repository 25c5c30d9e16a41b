package middleware

import (
	"compress/gzip"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// DecompressRequest unwraps gzip request bodies so handlers always see the
// plain payload. Corrupt bodies are rejected before reaching a handler.
func DecompressRequest() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !requestIsGzipped(c.Request) {
			c.Next()
			return
		}

		body := c.Request.Body
		defer body.Close()

		reader, err := gzip.NewReader(body)
		if err != nil {
			c.AbortWithStatus(http.StatusBadRequest)
			return
		}
		defer reader.Close()

		c.Request.Body = io.NopCloser(reader)
		c.Request.Header.Del("Content-Encoding")
		c.Next()
	}
}

func requestIsGzipped(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Content-Encoding"), "gzip")
}
