// Package realtime exposes the websocket endpoint through which clients play.
package realtime

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/abel-getahun/minefield-api/socket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Controller upgrades HTTP requests into game connections.
type Controller struct {
	handler *socket.Handler
	logger  zerolog.Logger
}

// NewController initializes a realtime Controller.
func NewController(handler *socket.Handler, logger zerolog.Logger) *Controller {
	return &Controller{handler: handler, logger: logger}
}

// RegisterRoutes registers the websocket and health routes.
func (c *Controller) RegisterRoutes(route *gin.RouterGroup) {
	route.GET("/ws", c.serve)
	route.GET("/health", c.health)
}

// serve upgrades the request and hands the connection to the socket handler
// for the rest of its lifetime.
func (c *Controller) serve(ctx *gin.Context) {
	conn, err := upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		c.logger.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}
	c.handler.HandleConn(conn)
}

func (c *Controller) health(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"ok": true})
}
