package web

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// The pages are deliberately plain server-rendered stubs; the interesting
// part is which of them a caller is allowed to reach.

const pageShell = `<!doctype html>
<html>
<head><meta charset="utf-8"><title>%s · Storefront</title></head>
<body><main><h1>%s</h1>%s</main></body>
</html>`

func renderPage(c *gin.Context, title, body string) {
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.String(http.StatusOK, pageShell, title, title, body)
}

func (s *Server) homePage(c *gin.Context) {
	renderPage(c, "Home", `<p>Welcome to the storefront.</p><p><a href="/auth/signin">Sign in</a></p>`)
}

func (s *Server) dashboardPage(c *gin.Context) {
	userID := c.GetString(ContextUserKey)
	renderPage(c, "Dashboard", fmt.Sprintf(`<p>Signed in as %s.</p>
<form method="post" action="/auth/signout"><button type="submit">Sign out</button></form>`, userID))
}

func (s *Server) productsPage(c *gin.Context) {
	renderPage(c, "Products", `<p>Manage products via <code>/api/products</code>.</p>`)
}

func (s *Server) usersPage(c *gin.Context) {
	renderPage(c, "Users", `<p>User administration.</p>`)
}

func (s *Server) examplesPage(c *gin.Context) {
	renderPage(c, "Examples", `<p>Public example pages.</p>`)
}

func (s *Server) signInPage(c *gin.Context) {
	renderPage(c, "Sign in", `<form method="post" action="/auth/signin">
<label>Email <input type="email" name="email"></label>
<label>Password <input type="password" name="password"></label>
<button type="submit">Sign in</button>
</form>`)
}

func (s *Server) registerPage(c *gin.Context) {
	renderPage(c, "Register", `<form method="post" action="/auth/register">
<label>Name <input type="text" name="name"></label>
<label>Email <input type="email" name="email"></label>
<label>Password <input type="password" name="password"></label>
<button type="submit">Register</button>
</form>`)
}
