package service

// Broadcaster pushes async pipeline events (round_ready, result_ready,
// image_ready, narration_ready, error) to a session's websocket listeners.
// Defined here so the service layer does not import the transport package.
type Broadcaster interface {
	BroadcastToSession(sessionID string, msgType string, payload interface{})
	DisconnectSession(sessionID string)
}
