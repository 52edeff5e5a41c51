package main

import (
	"github.com/sirupsen/logrus"

	"github.com/exvulsec/sendbot/cmd"
)

func main() {
	defer func() {
		if panicResp := recover(); panicResp != nil {
			logrus.Fatalf("got an panic err: %v", panicResp)
		}
	}()
	cmd.Execute()
}
