// Package request binds JSON request bodies for the gin handlers.
package request

import (
	stderrors "errors"
	"io"
	"net/http"

	"speed_go_backend/internal/errors"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

const MaxBodyBytes = 1 << 20

func init() {
	// Request structs are whitelists; unknown fields are rejected.
	binding.EnableDecoderDisallowUnknownFields = true
}

// BindJSON binds the body into dst with gin's JSON binding and validators,
// reporting every failure as a 400.
func BindJSON(c *gin.Context, dst any) error {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxBodyBytes)
	if err := c.ShouldBindJSON(dst); err != nil {
		if stderrors.Is(err, io.EOF) {
			return errors.New400Error("request body is required")
		}
		return errors.New400Errorf("invalid request body: %v", err)
	}
	return nil
}
