package response

import "github.com/gin-gonic/gin"

// Body is the uniform response envelope returned by every endpoint.
type Body struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

func OK(c *gin.Context, data any) {
	c.JSON(200, Body{Success: true, Data: data})
}

func Created(c *gin.Context, data any) {
	c.JSON(201, Body{Success: true, Data: data})
}

func Message(c *gin.Context, status int, msg string) {
	c.JSON(status, Body{Success: status < 400, Message: msg})
}

func Error(c *gin.Context, status int, msg string) {
	c.JSON(status, Body{Success: false, Message: msg})
}
