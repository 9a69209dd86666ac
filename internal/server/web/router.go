package web

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (s *Server) buildRouter() *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Recovery(), s.requestLog())

	engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// JSON APIs sit outside the page gate, mirroring the site's original
	// middleware matcher which skipped /api.
	api := engine.Group("/api")
	{
		api.GET("/products", s.listProducts)
		api.POST("/products", s.createProduct)
		api.GET("/products/:id", s.getProduct)
		api.PUT("/products/:id", s.updateProduct)
		api.DELETE("/products/:id", s.deleteProduct)
		api.POST("/products/:id/restore", s.restoreProduct)
	}

	engine.POST("/auth/signin", s.signIn)
	engine.POST("/auth/register", s.register)
	engine.POST("/auth/signout", s.signOut)

	// Every page route goes through the gate; unknown paths fall through
	// to NoRoute, which gates too, so new pages start out Protected.
	pages := engine.Group("/", s.gateMiddleware())
	{
		pages.GET("/", s.homePage)
		pages.GET("/home", s.homePage)
		pages.GET("/dashboard", s.dashboardPage)
		pages.GET("/products", s.productsPage)
		pages.GET("/users", s.usersPage)
		pages.GET("/examples", s.examplesPage)
		pages.GET("/examples/seo", s.examplesPage)
		pages.GET("/examples/accessibility", s.examplesPage)
		pages.GET("/examples/web-vitals", s.examplesPage)
		pages.GET("/auth/signin", s.signInPage)
		pages.GET("/auth/register", s.registerPage)
	}

	engine.NoRoute(s.gateMiddleware(), func(c *gin.Context) {
		c.String(http.StatusNotFound, "page not found")
	})

	return engine
}

func (s *Server) requestLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		s.logger.Debug(c.Request.Context(), "request handled",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
		)
	}
}
