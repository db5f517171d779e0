package handler

import (
	"Zheye/internal/api/middleware"
	"Zheye/internal/pkg/util"

	"github.com/gin-gonic/gin"
)

func currentUserID(c *gin.Context) uint64 {
	return c.GetUint64(middleware.UserIDKey)
}

// pathID 解析路径中的数字 ID
func pathID(c *gin.Context, name string) (uint64, bool) {
	return util.ParseID(c.Param(name))
}

func pager(c *gin.Context, perPage int) util.Pager {
	return util.NewPager(c.Query("page"), perPage)
}
