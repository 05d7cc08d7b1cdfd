// Package api exposes the session of the calling client over JSON routes.
//
// Every route under /session opens the session named by the optional ?name= query
// parameter (the manager default otherwise), performs one operation and writes the
// session back before responding:
//
//	GET    /session/               entries plus sessionId and sessionName
//	PUT    /session/               replace all entries with {"values": ...}
//	DELETE /session/values         remove all entries
//	GET    /session/values/{key}   read one entry
//	PUT    /session/values/{key}   write one entry from {"value": ...}
//	DELETE /session/values/{key}   remove one entry
//	POST   /session/push|unshift   add {"value": ...} at the end or the front
//	POST   /session/pop|shift      take the last or the first entry
//	POST   /session/reset          drop unsaved changes
//	POST   /session/regenerate     issue a new id, ?delete_old=true drops the old record
//	POST   /session/destroy        delete the session and expire its cookie
//
// Responses use the handler.JSONResponse envelope; session errors map to 4xx codes
// with stable error keys.
package api
