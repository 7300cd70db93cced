package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response is the single JSON envelope every endpoint returns.
type Response struct {
	StatusCode int         `json:"status_code"` // business code, 0 = ok
	Msg        string      `json:"msg"`
	Data       interface{} `json:"data"`
}

// Success answers with the data payload.
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		StatusCode: 0,
		Msg:        "success",
		Data:       data,
	})
}

// SuccessWithMsg answers with a custom message.
func SuccessWithMsg(c *gin.Context, msg string, data interface{}) {
	c.JSON(http.StatusOK, Response{
		StatusCode: 0,
		Msg:        msg,
		Data:       data,
	})
}

// Error answers with a business error code.
func Error(c *gin.Context, statusCode int, msg string) {
	c.JSON(http.StatusOK, Response{
		StatusCode: statusCode,
		Msg:        msg,
		Data:       attachRequestID(c, nil),
	})
}

// ErrorWithData answers with a business error code plus data.
func ErrorWithData(c *gin.Context, statusCode int, msg string, data interface{}) {
	c.JSON(http.StatusOK, Response{
		StatusCode: statusCode,
		Msg:        msg,
		Data:       attachRequestID(c, data),
	})
}

// BadRequest is a 400-code response.
func BadRequest(c *gin.Context, msg string) {
	Error(c, CodeBadRequest, msg)
}

// NotFound is a 404-code response.
func NotFound(c *gin.Context, msg string) {
	Error(c, CodeNotFound, msg)
}

// TooManyRequests is a 429-code response.
func TooManyRequests(c *gin.Context, msg string) {
	Error(c, CodeTooManyRequests, msg)
}

func attachRequestID(c *gin.Context, data interface{}) interface{} {
	requestID := ""
	if c != nil {
		if value, ok := c.Get("request_id"); ok {
			if id, ok := value.(string); ok {
				requestID = id
			}
		}
	}
	if requestID == "" {
		return data
	}
	if data == nil {
		return gin.H{"request_id": requestID}
	}
	switch v := data.(type) {
	case gin.H:
		if _, ok := v["request_id"]; !ok {
			v["request_id"] = requestID
		}
		return v
	case map[string]interface{}:
		if _, ok := v["request_id"]; !ok {
			v["request_id"] = requestID
		}
		return v
	default:
		return gin.H{
			"request_id": requestID,
			"data":       data,
		}
	}
}
