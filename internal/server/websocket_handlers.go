package server

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// RequestEvents godoc
// @Summary Stream live request events over WebSocket
// @Description Pushes a JSON event whenever a request is created or changes status. Authenticate with a bearer header or ?token= query parameter.
// @Tags requests
// @Security BearerAuth
// @Router /api/ws/requests [get]
func (s *Server) RequestEvents() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		if s.hub == nil {
			_ = conn.Close()
			return
		}

		identity, _ := conn.Locals("identity").(string)
		client, err := s.hub.Register(identity, conn)
		if err != nil {
			_ = conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseTryAgainLater, err.Error()))
			_ = conn.Close()
			return
		}

		go client.WritePump()
		client.ReadPump()
	})
}
