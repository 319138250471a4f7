package api

import "github.com/gin-gonic/gin"

// APIResponse — общий конверт всех ответов.
type APIResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

func success(c *gin.Context, code int, data any, message string) {
	c.JSON(code, APIResponse{Status: "success", Message: message, Data: data})
}

func fail(c *gin.Context, code int, err error, message string) {
	resp := APIResponse{Status: "error", Message: message}
	if err != nil {
		resp.Error = err.Error()
	}
	c.JSON(code, resp)
}

// failWith — ошибка с полезной нагрузкой (например, отклонённая запись).
func failWith(c *gin.Context, code int, err error, message string, data any) {
	resp := APIResponse{Status: "error", Message: message, Data: data}
	if err != nil {
		resp.Error = err.Error()
	}
	c.JSON(code, resp)
}
