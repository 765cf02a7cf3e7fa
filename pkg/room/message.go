package room

// PayloadIn is a message received from a websocket client
type PayloadIn struct {
	Action string `json:"action"`
	// Context will be passed back on any outgoing message
	Context string `json:"context"`
}

// Response is a message sent to a websocket client
type Response struct {
	Key     string      `json:"key"`
	Value   string      `json:"value,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Context string      `json:"context,omitempty"`
}

// OK returns a generic success response
func OK(ctx string) *Response {
	return &Response{
		Key:     "status",
		Value:   "OK",
		Context: ctx,
	}
}

func newErrorResponse(ctx string, err error) *Response {
	return &Response{
		Key:     "error",
		Value:   err.Error(),
		Context: ctx,
	}
}
