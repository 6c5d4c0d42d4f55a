package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ignatzorin/campus-market-backend/internal/interface/http/middleware"
)

func getUserID(c *gin.Context) (string, bool) {
	userID := middleware.UserID(c)
	return userID, userID != ""
}

func parseUUIDParam(c *gin.Context, key string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(key))
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

func parseInt64Query(c *gin.Context, key string) (int64, bool) {
	valueStr := c.Query(key)
	if valueStr == "" {
		return 0, false
	}

	value, err := strconv.ParseInt(valueStr, 10, 64)
	if err != nil {
		return 0, false
	}

	return value, true
}
