package controller

import (
	"github.com/mhartmann/librarian/logger"
	"github.com/mhartmann/librarian/storage/model"
	"github.com/mhartmann/librarian/web/middleware"
	"github.com/mhartmann/librarian/web/service"
	"github.com/mhartmann/librarian/web/session"

	"github.com/gin-gonic/gin"
)

// BooksController handles the staff-only management view of the catalog.
type BooksController struct {
	BaseController

	bookService *service.BookService
}

func NewBooksController(g *gin.RouterGroup, bookService *service.BookService) *BooksController {
	a := &BooksController{bookService: bookService}
	a.initRouter(g)
	return a
}

func (a *BooksController) initRouter(g *gin.RouterGroup) {
	g = g.Group("/books")
	g.Use(middleware.RoleRequired(model.RoleStaff))

	g.GET("", a.manage)
	g.POST("", a.manage)
}

// manage renders the management listing. The management form posts back to
// this route; catalog writes go through BookService.Save once the
// checkout/return flow lands.
func (a *BooksController) manage(c *gin.Context) {
	books, err := a.bookService.GetAll()
	if err != nil {
		logger.Warning("load books for management failed:", err)
		_ = session.AddFlash(c, "danger", "The catalog is currently unavailable.")
	}
	html(c, "books.html", "Manage Books", gin.H{"books": books})
}
