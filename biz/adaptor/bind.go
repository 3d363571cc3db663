package adaptor

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"strings"

	"github.com/cloudwego/hertz/pkg/app"

	"tuition-show/biz/infrastructure/consts"
)

type validator interface {
	Validate() error
}

// BindJSON 严格解析请求体：拒绝未知字段与多余内容，随后执行 Validate
func BindJSON(c *app.RequestContext, v any) error {
	if err := DecodeJSON(c, v); err != nil {
		return err
	}
	return validate(v)
}

// DecodeJSON 只做严格解析，内容校验交给需要先做权限判断的业务层
func DecodeJSON(c *app.RequestContext, v any) error {
	body := bytes.TrimSpace(c.Request.Body())
	if len(body) == 0 {
		return consts.ErrInvalidParams
	}
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return decodeError(err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return consts.ErrInvalidParams
	}
	return nil
}

// BindRequest 绑定 path/query 参数
func BindRequest(c *app.RequestContext, v any) error {
	if err := c.Bind(v); err != nil {
		return consts.ErrInvalidParams
	}
	return validate(v)
}

func validate(v any) error {
	if r, ok := v.(validator); ok {
		return r.Validate()
	}
	return nil
}

func decodeError(err error) error {
	var en *consts.Errno
	if errors.As(err, &en) {
		return en
	}
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return consts.Validation("Invalid type for field %s", typeErr.Field)
	}
	if msg := err.Error(); strings.HasPrefix(msg, "json: unknown field ") {
		return consts.Validation("Unknown field %s", strings.TrimPrefix(msg, "json: unknown field "))
	}
	return consts.ErrInvalidParams
}
