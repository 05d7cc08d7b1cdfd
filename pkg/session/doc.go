// Package session provides a server-side key/value session addressed by an id
// that travels in a cookie (or header), and a Handle that gives that session an
// object interface with an explicit lifecycle.
//
// # Architecture
//
// A Manager is built once at startup from a Config. It owns the Store that
// persists session data and the Transport that carries the id. For every request
// it hands out a Runtime, which holds the session name, id, cookie params and,
// while a session is started, the ordered key/value Data of that session.
//
//	┌────────┐    id     ┌────────────┐
//	│ Client │ ◄───────► │  Transport │
//	└────────┘           └────────────┘
//	                           │
//	┌────────┐  Open   ┌──────────────┐  Read/Write  ┌───────┐
//	│ Handle │ ──────► │   Runtime    │ ───────────► │ Store │
//	└────────┘         └──────────────┘              └───────┘
//
// A Handle moves from Uninitialized to Active when its session starts and ends in
// Closed (data written) or Destroyed (data deleted, cookie expired). Data
// operations on a handle that is not active fail with ErrInactiveSession.
//
// # Usage
//
//	cookies, _ := cookie.New([]string{secret})
//	sessions := session.NewFromConfig(cfg, session.WithCookieManager(cookies))
//	defer sessions.Close()
//
//	mux.Handle("/cart", sessions.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
//		h, err := session.OpenFromContext(r.Context())
//		if err != nil {
//			http.Error(w, "session unavailable", http.StatusServiceUnavailable)
//			return
//		}
//		defer h.Close(r.Context())
//
//		n, _ := h.Push(r.FormValue("item"))
//		fmt.Fprintf(w, "%d items", n)
//	})))
//
// Middleware writes a session that is still active when the handler returns, so a
// handler that forgets Close, or panics, does not lose its changes.
//
// # Data
//
// Data keeps insertion order. Keys that are canonical decimal integers take part
// in list operations: Push appends under the next free index, Shift and Unshift
// renumber integer keys from zero, string keys keep their names.
//
// # Stores and transports
//
// MemoryStore keeps records in process with a periodic cleanup; RedisStore keeps
// JSON records under a key prefix with native expiry. CookieTransport stores the id
// plain, signed or encrypted through pkg/cookie; HeaderTransport uses a request
// header; CompositeTransport combines them.
package session
