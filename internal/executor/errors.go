package executor

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMalformedResponse 执行端返回 2xx 但 body 无法识别（缺少 success 标志）
var ErrMalformedResponse = errors.New("malformed execution backend response: missing success flag")

// BackendRejectedError 执行端返回非 2xx 状态码
type BackendRejectedError struct {
	Status int
	Body   string
}

func (e *BackendRejectedError) Error() string {
	return fmt.Sprintf("execution backend error: %d - %s", e.Status, strings.TrimSpace(e.Body))
}

// OrderRejectedError 执行端受理了请求但拒绝了订单（success=false）
type OrderRejectedError struct {
	Reason string
}

func (e *OrderRejectedError) Error() string {
	return "order failed: " + e.Reason
}
