package api

import (
	"encoding/json"
	"net/http"

	"github.com/dmitrymomot/sessionkit/pkg/handler"
	"github.com/dmitrymomot/sessionkit/pkg/session"
)

type (
	sessionRequest struct {
		Name string `query:"name" json:"-"`
	}

	keyRequest struct {
		Name string `query:"name" json:"-"`
		Key  string `query:"-" path:"key" json:"-"`
	}

	setValueRequest struct {
		Name  string `query:"name" json:"-"`
		Key   string `query:"-" path:"key" json:"-"`
		Value any    `query:"-" json:"value"`
	}

	valueRequest struct {
		Name  string `query:"name" json:"-"`
		Value any    `query:"-" json:"value"`
	}

	initializeRequest struct {
		Name   string `query:"name" json:"-"`
		Values any    `query:"-" json:"values"`
	}

	regenerateRequest struct {
		Name      string `query:"name" json:"-"`
		DeleteOld bool   `query:"delete_old"`
	}
)

type (
	valueResponse struct {
		Key   string `json:"key"`
		Value any    `json:"value"`
	}

	takeResponse struct {
		Value any  `json:"value"`
		Found bool `json:"found"`
	}

	lengthResponse struct {
		Length int `json:"length"`
	}
)

// open starts the session of the request, renamed to name when given
func (h *Handlers) open(ctx handler.Context, name string) (*session.Handle, error) {
	var opts []session.OpenOption
	if name != "" {
		opts = append(opts, session.OpenWithName(name))
	}
	return session.OpenFromContext(ctx, opts...)
}

// finish writes the session and renders resp, or the write error instead
func (h *Handlers) finish(ctx handler.Context, s *session.Handle, resp handler.Response) handler.Response {
	if err := s.Close(ctx); err != nil {
		return h.fail(ctx, handler.ErrServiceUnavailable.Wrap(err))
	}
	return resp
}

// snapshot renders the session entries with its id and name
func (h *Handlers) snapshot(ctx handler.Context, s *session.Handle) handler.Response {
	raw, err := s.MarshalJSON()
	if err != nil {
		return h.fail(ctx, err)
	}
	return h.finish(ctx, s, handler.JSON(json.RawMessage(raw), handler.WithJSONMeta(map[string]any{
		"status": s.Status().String(),
	})))
}

// fail maps err and renders it through the error handler
func (h *Handlers) fail(ctx handler.Context, err error) handler.Response {
	return errorResponse{h: h, err: err}
}

type errorResponse struct {
	h   *Handlers
	err error
}

func (e errorResponse) Render(w http.ResponseWriter, r *http.Request) error {
	e.h.onError(handler.NewContext(w, r), e.err)
	return nil
}

func (h *Handlers) show(ctx handler.Context, req sessionRequest) handler.Response {
	s, err := h.open(ctx, req.Name)
	if err != nil {
		return h.fail(ctx, err)
	}
	return h.snapshot(ctx, s)
}

func (h *Handlers) initialize(ctx handler.Context, req initializeRequest) handler.Response {
	s, err := h.open(ctx, req.Name)
	if err != nil {
		return h.fail(ctx, err)
	}
	if err := s.Initialize(req.Values); err != nil {
		return h.fail(ctx, err)
	}
	return h.snapshot(ctx, s)
}

func (h *Handlers) clear(ctx handler.Context, req sessionRequest) handler.Response {
	s, err := h.open(ctx, req.Name)
	if err != nil {
		return h.fail(ctx, err)
	}
	if err := s.Delete(); err != nil {
		return h.fail(ctx, err)
	}
	return h.finish(ctx, s, handler.Empty())
}

func (h *Handlers) getValue(ctx handler.Context, req keyRequest) handler.Response {
	s, err := h.open(ctx, req.Name)
	if err != nil {
		return h.fail(ctx, err)
	}
	v, ok, err := s.Get(req.Key)
	if err != nil {
		return h.fail(ctx, err)
	}
	if !ok {
		return h.finish(ctx, s, h.fail(ctx, errValueNotFound))
	}
	return h.finish(ctx, s, handler.JSON(valueResponse{Key: req.Key, Value: v}))
}

func (h *Handlers) setValue(ctx handler.Context, req setValueRequest) handler.Response {
	s, err := h.open(ctx, req.Name)
	if err != nil {
		return h.fail(ctx, err)
	}
	if err := s.Set(req.Key, req.Value); err != nil {
		return h.fail(ctx, err)
	}
	return h.finish(ctx, s, handler.JSON(valueResponse{Key: req.Key, Value: req.Value}))
}

func (h *Handlers) removeValue(ctx handler.Context, req keyRequest) handler.Response {
	s, err := h.open(ctx, req.Name)
	if err != nil {
		return h.fail(ctx, err)
	}
	if err := s.Remove(req.Key); err != nil {
		return h.fail(ctx, err)
	}
	return h.finish(ctx, s, handler.Empty())
}

func (h *Handlers) push(ctx handler.Context, req valueRequest) handler.Response {
	return h.grow(ctx, req, (*session.Handle).Push)
}

func (h *Handlers) unshift(ctx handler.Context, req valueRequest) handler.Response {
	return h.grow(ctx, req, (*session.Handle).Unshift)
}

func (h *Handlers) grow(ctx handler.Context, req valueRequest, op func(*session.Handle, any) (int, error)) handler.Response {
	s, err := h.open(ctx, req.Name)
	if err != nil {
		return h.fail(ctx, err)
	}
	n, err := op(s, req.Value)
	if err != nil {
		return h.fail(ctx, err)
	}
	return h.finish(ctx, s, handler.JSON(lengthResponse{Length: n}))
}

func (h *Handlers) pop(ctx handler.Context, req sessionRequest) handler.Response {
	return h.take(ctx, req, (*session.Handle).Pop)
}

func (h *Handlers) shift(ctx handler.Context, req sessionRequest) handler.Response {
	return h.take(ctx, req, (*session.Handle).Shift)
}

func (h *Handlers) take(ctx handler.Context, req sessionRequest, op func(*session.Handle) (any, bool, error)) handler.Response {
	s, err := h.open(ctx, req.Name)
	if err != nil {
		return h.fail(ctx, err)
	}
	v, ok, err := op(s)
	if err != nil {
		return h.fail(ctx, err)
	}
	return h.finish(ctx, s, handler.JSON(takeResponse{Value: v, Found: ok}))
}

func (h *Handlers) reset(ctx handler.Context, req sessionRequest) handler.Response {
	s, err := h.open(ctx, req.Name)
	if err != nil {
		return h.fail(ctx, err)
	}
	if err := s.Reset(ctx); err != nil {
		return h.fail(ctx, err)
	}
	return h.snapshot(ctx, s)
}

func (h *Handlers) regenerate(ctx handler.Context, req regenerateRequest) handler.Response {
	s, err := h.open(ctx, req.Name)
	if err != nil {
		return h.fail(ctx, err)
	}
	if err := s.RegenerateID(ctx, req.DeleteOld); err != nil {
		return h.fail(ctx, err)
	}
	return h.snapshot(ctx, s)
}

func (h *Handlers) destroy(ctx handler.Context, req sessionRequest) handler.Response {
	s, err := h.open(ctx, req.Name)
	if err != nil {
		return h.fail(ctx, err)
	}
	if err := s.Destroy(ctx); err != nil {
		return h.fail(ctx, err)
	}
	return handler.Empty()
}
