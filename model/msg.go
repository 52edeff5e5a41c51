package model

// Message is the body of every relay response.
type Message struct {
	Code int64  `json:"code"`
	Msg  string `json:"msg,omitempty"`
	Data any    `json:"data,omitempty"`
}

func NewMessage(code int, msg string) Message {
	return Message{Code: int64(code), Msg: msg}
}
