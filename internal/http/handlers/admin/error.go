package admin

import (
	handlershared "github.com/bidmart-admin/internal/http/handlers/shared"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func requestLog(c *gin.Context) *zap.SugaredLogger {
	return handlershared.RequestLog(c)
}

func respondError(c *gin.Context, code int, key string, err error) {
	handlershared.RespondError(c, code, key, err)
}

func respondValidation(c *gin.Context, key string, err error) bool {
	return handlershared.RespondValidation(c, key, err)
}
