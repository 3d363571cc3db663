package log

import (
	"context"

	"github.com/zeromicro/go-zero/core/logx"
)

// 日志统一出口，底层为 go-zero logx，由 ServiceConf.Log 配置

func Info(format string, v ...any) {
	logx.Infof(format, v...)
}

func Error(format string, v ...any) {
	logx.Errorf(format, v...)
}

func CtxInfo(ctx context.Context, format string, v ...any) {
	logx.WithContext(ctx).Infof(format, v...)
}

func CtxError(ctx context.Context, format string, v ...any) {
	logx.WithContext(ctx).Errorf(format, v...)
}

// CtxErrorw 带字段的错误日志，用于需要检索的标识（如 errorId）
func CtxErrorw(ctx context.Context, msg string, fields ...logx.LogField) {
	logx.WithContext(ctx).Errorw(msg, fields...)
}

func Field(key string, value any) logx.LogField {
	return logx.Field(key, value)
}
