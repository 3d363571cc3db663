package adaptor

import (
	"context"
	"errors"
	"net/http"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/grpc/codes"

	"tuition-show/biz/infrastructure/consts"
	"tuition-show/biz/infrastructure/util"
	"tuition-show/biz/infrastructure/util/log"
)

type ErrorResp struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	ErrorId string `json:"errorId,omitempty"`
}

// PostProcess 统一输出：成功写 resp，失败按错误码映射 HTTP 状态
func PostProcess(ctx context.Context, c *app.RequestContext, req, resp any, err error) {
	PostProcessWithStatus(ctx, c, req, resp, err, http.StatusOK)
}

func PostProcessWithStatus(ctx context.Context, c *app.RequestContext, req, resp any, err error, status int) {
	if err != nil {
		WriteError(ctx, c, req, err)
		return
	}
	c.JSON(status, resp)
}

func WriteError(ctx context.Context, c *app.RequestContext, req any, err error) {
	status := HTTPStatus(err)
	if status != http.StatusInternalServerError {
		log.CtxInfo(ctx, "[%s] req=%s, status=%d, err=%v", c.FullPath(), util.JSONF(req), status, err)
		c.JSON(status, &ErrorResp{Message: err.Error()})
		return
	}
	errorId := ErrorTag(ctx)
	log.CtxErrorw(ctx, "request failed",
		log.Field("path", c.FullPath()),
		log.Field("errorId", errorId),
		log.Field("req", util.JSONF(req)),
		log.Field("err", err.Error()),
	)
	c.JSON(status, &ErrorResp{Message: consts.ErrServer.Error(), ErrorId: errorId})
}

// HTTPStatus 非 Errno 的错误一律视为 500
func HTTPStatus(err error) int {
	var en *consts.Errno
	if !errors.As(err, &en) {
		return http.StatusInternalServerError
	}
	switch en.Code() {
	case codes.Unauthenticated:
		return http.StatusUnauthorized
	case codes.PermissionDenied:
		return http.StatusForbidden
	case codes.NotFound:
		return http.StatusNotFound
	case codes.InvalidArgument, codes.FailedPrecondition:
		return http.StatusBadRequest
	case codes.AlreadyExists, codes.Aborted:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// ErrorTag 优先使用链路 trace id，便于与日志关联
func ErrorTag(ctx context.Context) string {
	if sc := trace.SpanContextFromContext(ctx); sc.HasTraceID() {
		return sc.TraceID().String()
	}
	return uuid.NewString()
}
