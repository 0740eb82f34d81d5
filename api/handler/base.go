package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/RaushanShrivastwa/todo-app/api/transport"
	"github.com/RaushanShrivastwa/todo-app/domain"
	"github.com/RaushanShrivastwa/todo-app/pkg/httpcontext"
)

type baseHandler struct {
	adapter *httpcontext.Adapter
	logger  *zap.Logger
}

func newBaseHandler(adapter *httpcontext.Adapter, logger *zap.Logger) baseHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return baseHandler{adapter: adapter, logger: logger}
}

func (h baseHandler) requestContext(ctx *fasthttp.RequestCtx) (context.Context, context.CancelFunc) {
	if h.adapter != nil {
		return h.adapter.Attach(ctx)
	}
	return context.WithCancel(context.Background())
}

func (h baseHandler) respondJSON(ctx *fasthttp.RequestCtx, status int, payload interface{}) {
	ctx.Response.Header.SetContentType("application/json")
	ctx.SetStatusCode(status)
	body, _ := json.Marshal(payload)
	ctx.SetBody(body)
}

// respondError is the sole translation boundary between store failures and
// HTTP. Domain-classified errors keep their own message; anything else is
// reported as a 500 carrying fallback plus the underlying error text.
func (h baseHandler) respondError(ctx *fasthttp.RequestCtx, err error, fallback string) {
	switch {
	case domain.IsDomainError(err, domain.ErrCodeInvalid):
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(err.Error(), nil))
	case domain.IsDomainError(err, domain.ErrCodeNotFound):
		h.respondJSON(ctx, http.StatusNotFound, transport.NewError(err.Error(), nil))
	default:
		h.logger.Error("store failure", zap.String("context", fallback), zap.Error(err))
		h.respondJSON(ctx, http.StatusInternalServerError, transport.NewError(fallback, err))
	}
}
