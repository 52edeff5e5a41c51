package middleware

import (
	"net/http"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/gin-gonic/gin"

	"github.com/exvulsec/sendbot/model"
)

const APIKEY = "apikey"

// CheckAPIKEY rejects requests whose apikey query parameter is not one of
// keys. An empty key set disables the check.
func CheckAPIKEY(keys mapset.Set[string]) gin.HandlerFunc {
	return func(c *gin.Context) {
		if keys.Cardinality() > 0 && !keys.Contains(c.Query(APIKEY)) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, model.NewMessage(http.StatusUnauthorized, "invalid api key"))
			return
		}
		c.Next()
	}
}
