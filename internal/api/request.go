package api

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// intQuery reads an integer query parameter, treating absent or malformed
// values as zero so pagination falls back to its defaults.
func intQuery(c *gin.Context, key string) int {
	n, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return 0
	}
	return n
}
