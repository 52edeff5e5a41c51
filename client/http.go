package client

import (
	"net/http"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/exvulsec/sendbot/config"
)

type HTTPInstance struct {
	initializer func() any
	instance    any
	once        sync.Once
}

var httpClient *HTTPInstance

func (ei *HTTPInstance) Instance() any {
	ei.once.Do(func() {
		ei.instance = ei.initializer()
	})
	return ei.instance
}

func newHTTPClient(conf config.HTTPClientConfig) *http.Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	if conf.MaxConns > 0 {
		transport.MaxConnsPerHost = conf.MaxConns
	}
	return &http.Client{
		Transport: transport,
		Timeout:   conf.Timeout,
	}
}

func initHTTPClient() any {
	logrus.Infof("init http client, timeout %s", config.Conf.HTTPClient.Timeout)
	return newHTTPClient(config.Conf.HTTPClient)
}

// HTTPClient returns the process wide client, built from config.Conf on
// first use.
func HTTPClient() *http.Client {
	return httpClient.Instance().(*http.Client)
}

func init() {
	httpClient = &HTTPInstance{initializer: initHTTPClient}
}
