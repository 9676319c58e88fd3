package router

import "github.com/gin-gonic/gin"

// Registry collects feature modules and registers their routes on the
// page root and the /api group.
type Registry struct {
	Engine  *gin.Engine
	Pages   *gin.RouterGroup
	API     *gin.RouterGroup
	modules []Module
}

func NewRegistry(engine *gin.Engine) *Registry {
	return &Registry{
		Engine: engine,
		Pages:  engine.Group("/"),
		API:    engine.Group("/api"),
	}
}

func (r *Registry) Add(mod Module) {
	r.modules = append(r.modules, mod)
}

func (r *Registry) RegisterAll() {
	for _, m := range r.modules {
		m.Register(r.Pages, r.API)
	}
}
