package controller

import (
	"net"
	"net/http"
	"strings"

	"github.com/mhartmann/librarian/config"
	"github.com/mhartmann/librarian/logger"
	"github.com/mhartmann/librarian/web/entity"
	"github.com/mhartmann/librarian/web/middleware"
	"github.com/mhartmann/librarian/web/session"

	"github.com/gin-gonic/gin"
)

// getRemoteIp extracts the real IP address from the request headers or remote address.
func getRemoteIp(c *gin.Context) string {
	value := c.GetHeader("X-Real-IP")
	if value != "" {
		return value
	}
	value = c.GetHeader("X-Forwarded-For")
	if value != "" {
		ips := strings.Split(value, ",")
		return ips[0]
	}
	addr := c.Request.RemoteAddr
	ip, _, _ := net.SplitHostPort(addr)
	return ip
}

// requestId returns the correlation id set by the request id middleware.
func requestId(c *gin.Context) string {
	return c.GetString(middleware.RequestIDKey)
}

// jsonMsg sends a JSON response with a message and error status.
func jsonMsg(c *gin.Context, msg string, err error) {
	m := entity.Msg{}
	if err == nil {
		m.Success = true
		m.Msg = msg
	} else {
		m.Success = false
		m.Msg = msg + " (" + err.Error() + ")"
		logger.Warning(msg+": ", err)
	}
	c.JSON(http.StatusOK, m)
}

// html renders a template with the flash queue, current identity, and app
// metadata merged into the data map.
func html(c *gin.Context, name string, title string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["title"] = title
	data["app_name"] = config.GetAppName()
	data["cur_ver"] = config.GetVersion()
	data["flashes"] = session.TakeFlashes(c)
	if user := session.GetLoginUser(c); user != nil {
		data["user"] = user
	}
	c.HTML(http.StatusOK, name, data)
}

// redirect queues a flash and sends the browser to target.
func redirect(c *gin.Context, target string, level string, message string) {
	if message != "" {
		_ = session.AddFlash(c, level, message)
	}
	c.Redirect(http.StatusFound, target)
}

// isAjax checks if the request is an AJAX request.
func isAjax(c *gin.Context) bool {
	return c.GetHeader("X-Requested-With") == "XMLHttpRequest"
}
