package handlers

import (
	"net/http"
	"time"

	"icoffee-admin/internal/api/interfaces"
	"icoffee-admin/internal/api/middlewares"
	"icoffee-admin/internal/api/models"
	"icoffee-admin/internal/guard"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // CORS middleware already vetted the origin
	},
}

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 54 * time.Second
)

// SessionEvents upgrades to a websocket and pushes a session_cleared
// message the moment the caller's session is revoked elsewhere, such as
// a logout issued from another device. This is how every open admin
// view learns it has been signed out without polling.
func SessionEvents(services interfaces.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := middlewares.ExtractToken(c)

		g := guard.New(
			services.SessionStore(),
			guard.Requirement{},
			services.GetConfig().API.LoginPath,
		)
		defer g.Close()

		decision := g.Mount(token)
		if decision.State != guard.StateAuthorized {
			c.JSON(http.StatusUnauthorized, models.BaseResponse{
				Success: false,
				Error: &models.ErrorInfo{
					Code:    models.ErrCodeSessionInvalid,
					Message: "Sign in required",
				},
				Timestamp: time.Now().Unix(),
			})
			return
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			services.GetLogger().Error("Websocket upgrade failed: %v", err)
			return
		}
		defer conn.Close()

		services.GetLogger().SessionLogger("watching", decision.User.Email, "websocket attached")

		// Reader goroutine only services control frames; clients never
		// send data on this socket.
		done := make(chan struct{})
		go func() {
			defer close(done)
			conn.SetReadLimit(512)
			conn.SetReadDeadline(time.Now().Add(pongWait))
			conn.SetPongHandler(func(string) error {
				conn.SetReadDeadline(time.Now().Add(pongWait))
				return nil
			})
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()

		ticker := time.NewTicker(pingPeriod)
		defer ticker.Stop()

		for {
			select {
			case <-done:
				return

			case <-ticker.C:
				conn.SetWriteDeadline(time.Now().Add(writeWait))
				if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
					return
				}

			case transition := <-g.Transitions():
				if transition.State != guard.StateDeniedNoSession {
					continue
				}
				conn.SetWriteDeadline(time.Now().Add(writeWait))
				conn.WriteJSON(models.SessionEventMessage{
					Type:      "session_cleared",
					Timestamp: time.Now().Unix(),
				})
				conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, "session cleared"))
				return
			}
		}
	}
}
