package web

import (
	"github.com/gorilla/websocket"
	"github.com/guslan/chip8"
)

func (server *Server) setWs(conn *websocket.Conn) {
	server.wsMutex.Lock()
	server.socket = conn
	server.wsMutex.Unlock()
}

func (server *Server) unsetWs(conn *websocket.Conn) {
	server.wsMutex.Lock()
	if server.socket == conn {
		server.socket = nil
	}
	server.wsMutex.Unlock()
}

// Render implements chip8.Display.
// The frame is sent packed, one bit per pixel, most significant bit first.
func (server *Server) Render(screen *chip8.Screen) error {
	server.frameMutex.Lock()
	server.lastFrame = *screen
	server.frameMutex.Unlock()

	return server.writeFrame(screen)
}

func (server *Server) writeFrame(screen *chip8.Screen) error {
	server.wsMutex.Lock()
	defer server.wsMutex.Unlock()

	if server.socket == nil {
		return nil
	}

	if err := server.socket.WriteMessage(websocket.BinaryMessage, screen.Packed()); err != nil {
		// A client that went away must not stop the console
		server.socket = nil
	}

	return nil
}
