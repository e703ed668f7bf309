package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

func getUID(c *gin.Context) uint64 {
	return c.GetUint64("user_id")
}

func parseIDParam(c *gin.Context, name string) (uint64, error) {
	return strconv.ParseUint(c.Param(name), 10, 64)
}
