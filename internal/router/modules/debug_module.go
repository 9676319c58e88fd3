package modules

import (
	"expvar"

	"github.com/gin-gonic/gin"
)

// DebugModule exposes runtime counters under /api/debug/vars.
type DebugModule struct{}

func NewDebugModule() *DebugModule { return &DebugModule{} }

func (m *DebugModule) Register(_, api *gin.RouterGroup) {
	api.GET("/debug/vars", gin.WrapH(expvar.Handler()))
}
