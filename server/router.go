package server

import (
	"fmt"
	"net/http"
	"time"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/gin-gonic/gin"

	"github.com/exvulsec/sendbot/http/controller"
	"github.com/exvulsec/sendbot/middleware"
	"github.com/exvulsec/sendbot/notifier"
)

func addRouters(r gin.IRouter, n notifier.Notifier, apiKeys []string) {
	addHealthRouter(r)
	apiV1 := setV1Group(r, apiKeys)
	ctrls := []controller.Controller{
		&controller.SayController{Notifier: n},
	}
	for _, ctrl := range ctrls {
		ctrl.Routers(apiV1)
	}
}

func setV1Group(r gin.IRouter, apiKeys []string) gin.IRouter {
	return r.Group("/api/v1", middleware.CheckAPIKEY(mapset.NewSet[string](apiKeys...)))
}

func addHealthRouter(r gin.IRouter) {
	r.GET("/health", func(context *gin.Context) {
		context.JSON(http.StatusOK, fmt.Sprintf("running on %v", time.Now()))
	})
}
