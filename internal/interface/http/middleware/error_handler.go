package middleware

import (
	"fmt"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/campus-market-backend/internal/interface/http/response"
	"github.com/ignatzorin/campus-market-backend/internal/logger"
)

// ErrorHandler отвечает клиенту, если хэндлер записал ошибку в c.Errors,
// но сам ответ не отправил.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() || len(c.Errors) == 0 {
			return
		}

		response.Error(c, c.Errors.Last().Err)
	}
}

// Recovery перехватывает panic, пишет стек в лог и отдаёт INTERNAL_ERROR.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				logger.Get().WithFields(logrus.Fields{
					"path":   c.Request.URL.Path,
					"method": c.Request.Method,
					"stack":  string(debug.Stack()),
				}).Error("panic в обработчике запроса")

				if !c.Writer.Written() {
					response.Error(c, fmt.Errorf("panic: %v", r))
				}
			}
		}()
		c.Next()
	}
}
