package response

import (
	"github.com/gin-gonic/gin"

	errs "github.com/techagentng/hazardx/errors"
)

// JSON writes the standard response envelope. errs carrying their own status
// override the status argument so handlers can pass errors through untouched.
func JSON(c *gin.Context, message string, status int, data interface{}, err error) {
	errMessage := ""
	if err != nil {
		errMessage = err.Error()
		if e, ok := err.(*errs.Error); ok && e.Status != 0 {
			status = e.Status
		}
	}

	responseData := gin.H{
		"message": message,
		"data":    data,
		"errors":  errMessage,
		"status":  status,
	}
	c.JSON(status, responseData)
}
