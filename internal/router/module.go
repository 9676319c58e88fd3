package router

import "github.com/gin-gonic/gin"

// Module describes a feature module that registers its routes on the page
// root and the /api group.
type Module interface {
	Register(pages, api *gin.RouterGroup)
}
