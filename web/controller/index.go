package controller

import (
	"errors"

	"github.com/mhartmann/librarian/logger"
	"github.com/mhartmann/librarian/storage/model"
	"github.com/mhartmann/librarian/web/service"
	"github.com/mhartmann/librarian/web/session"

	"github.com/gin-gonic/gin"
)

// RegisterForm is the registration request structure.
type RegisterForm struct {
	Name     string `json:"name" form:"name"`
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
	Role     string `json:"role" form:"role"`
}

// LoginForm is the login request structure.
type LoginForm struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

// IndexController handles the public routes: catalog listing, registration,
// login and logout.
type IndexController struct {
	BaseController

	userService *service.UserService
	bookService *service.BookService
}

func NewIndexController(g *gin.RouterGroup, userService *service.UserService, bookService *service.BookService) *IndexController {
	a := &IndexController{
		userService: userService,
		bookService: bookService,
	}
	a.initRouter(g)
	return a
}

func (a *IndexController) initRouter(g *gin.RouterGroup) {
	g.GET("/", a.index)

	g.GET("/register", a.registerForm)
	g.POST("/register", a.register)

	g.GET("/login", a.loginForm)
	g.POST("/login", a.login)

	g.GET("/logout", a.logout)
}

// index shows the public book listing.
func (a *IndexController) index(c *gin.Context) {
	books, err := a.bookService.GetAll()
	if err != nil {
		logger.Warning("load books for index failed:", err)
		_ = session.AddFlash(c, "danger", "The catalog is currently unavailable.")
	}
	html(c, "index.html", "Catalog", gin.H{"books": books})
}

func (a *IndexController) registerForm(c *gin.Context) {
	html(c, "register.html", "Register", nil)
}

// register creates a new account and sends the browser to the login page.
func (a *IndexController) register(c *gin.Context) {
	var form RegisterForm
	if err := c.ShouldBind(&form); err != nil {
		redirect(c, "/register", "danger", "Invalid form data.")
		return
	}
	if form.Name == "" || form.Email == "" || form.Password == "" || form.Role == "" {
		redirect(c, "/register", "danger", "Name, email, password and role are required.")
		return
	}
	role := model.Role(form.Role)
	if !role.Valid() {
		redirect(c, "/register", "danger", "Unknown role.")
		return
	}

	user, err := a.userService.Register(form.Name, form.Email, form.Password, role)
	if err != nil {
		if errors.Is(err, service.ErrDuplicateEmail) {
			redirect(c, "/register", "danger", "This email address is already registered.")
			return
		}
		logger.Warning("register failed:", err)
		redirect(c, "/register", "danger", "Registration failed, please try again.")
		return
	}

	logger.Infof("registered user %q (id=%d, role=%s)", user.Email, user.Id, user.Role)
	redirect(c, "/login", "success", "Registration successful!")
}

func (a *IndexController) loginForm(c *gin.Context) {
	html(c, "login.html", "Login", nil)
}

// login authenticates the form credentials and starts the session. The
// failure message never reveals whether the email or the password was wrong.
func (a *IndexController) login(c *gin.Context) {
	var form LoginForm
	if err := c.ShouldBind(&form); err != nil {
		redirect(c, "/login", "danger", "Invalid form data.")
		return
	}
	if form.Email == "" || form.Password == "" {
		redirect(c, "/login", "danger", "Email and password are required.")
		return
	}

	user, err := a.userService.Authenticate(form.Email, form.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			logger.Warningf("failed login for %q, IP: %s, request: %s", form.Email, getRemoteIp(c), requestId(c))
		} else {
			logger.Warning("login failed:", err)
		}
		if isAjax(c) {
			jsonMsg(c, "Wrong email or password.", err)
			return
		}
		redirect(c, "/login", "danger", "Wrong email or password.")
		return
	}

	if err := session.SetLoginUser(c, user); err != nil {
		logger.Warning("unable to save session:", err)
		redirect(c, "/login", "danger", "Login failed, please try again.")
		return
	}

	logger.Infof("%s logged in successfully, IP: %s, request: %s", user.Email, getRemoteIp(c), requestId(c))
	if isAjax(c) {
		jsonMsg(c, "Welcome back!", nil)
		return
	}
	redirect(c, "/", "success", "Welcome back!")
}

// logout clears the session unconditionally.
func (a *IndexController) logout(c *gin.Context) {
	if user := session.GetLoginUser(c); user != nil {
		logger.Infof("%s logged out", user.Name)
	}
	if err := session.ClearSession(c); err != nil {
		logger.Warning("unable to clear session:", err)
	}
	redirect(c, "/", "success", "You have been logged out.")
}
