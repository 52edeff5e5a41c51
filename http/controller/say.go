package controller

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/exvulsec/sendbot/model"
	"github.com/exvulsec/sendbot/notifier"
)

var _ Controller = (*SayController)(nil)

type SayController struct {
	Notifier notifier.Notifier
}

func (sc *SayController) Routers(routers gin.IRouter) {
	routers.POST("/say", sc.Say)
}

// Say validates the posted message and hands it to the notifier. Delivery
// happens after the response is written.
func (sc *SayController) Say(c *gin.Context) {
	var body notifier.Message
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, model.NewMessage(http.StatusBadRequest, fmt.Sprintf("decode message is err %v", err)))
		return
	}

	msg, err := notifier.NewMessage(body)
	if err != nil {
		c.JSON(http.StatusBadRequest, model.NewMessage(http.StatusBadRequest, err.Error()))
		return
	}

	sc.Notifier.Notify(msg)
	c.JSON(http.StatusOK, model.Message{
		Code: http.StatusOK,
		Msg:  fmt.Sprintf("message accepted by %s", sc.Notifier.Name()),
		Data: msg,
	})
}
