package session

import "net/http"

// Transport defines how session ids are transmitted between client and server.
// name is the current session name; params are the cookie params in effect.
type Transport interface {
	// ReadID extracts the session id from the request
	ReadID(r *http.Request, name string) (string, error)

	// WriteID sends the session id in the response
	WriteID(w http.ResponseWriter, name, id string, params CookieParams) error

	// ClearID tells the client to forget the session id
	ClearID(w http.ResponseWriter, name string, params CookieParams) error
}
