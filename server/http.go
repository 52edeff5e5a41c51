package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/exvulsec/sendbot/config"
	"github.com/exvulsec/sendbot/notifier"
)

type HTTPServer struct {
	srv     *http.Server
	routers *gin.Engine
}

func NewRouter(n notifier.Notifier, apiKeys []string) *gin.Engine {
	r := gin.Default()
	r.Use(cors.Default())
	addRouters(r, n, apiKeys)
	return r
}

func NewHTTPServer(conf config.HTTPServerConfig, n notifier.Notifier) HTTPServer {
	s := HTTPServer{routers: NewRouter(n, conf.APIKeys)}
	s.srv = &http.Server{
		Addr:    fmt.Sprintf("%s:%d", conf.Host, conf.Port),
		Handler: s.routers,
	}
	return s
}

func (s *HTTPServer) Run() {
	logrus.Info("listen addr: ", s.srv.Addr)
	go func() {
		if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Errorf("listen: %v", err)
		}
	}()
	s.gracefullyShutDown()
}

func (s *HTTPServer) gracefullyShutDown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	// in-flight requests get 5 seconds
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.srv.Shutdown(ctx); err != nil {
		logrus.Info("server forced to shutdown:", err)
	}

	logrus.Info("server closed")
}
