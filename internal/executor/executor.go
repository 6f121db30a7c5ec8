package executor

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/betbot/goexec/internal/domain"
)

var log = logrus.WithField("component", "executor")

// Mode 订单提交模式
type Mode int

const (
	// ModeSimulate 只做转换和记录，不发任何网络请求
	ModeSimulate Mode = iota
	// ModeLive 真实提交到执行端
	ModeLive
)

// submitTimeout 单次提交的 HTTP 超时；超时不重试，由调用方决定是否重新提交
const submitTimeout = 10 * time.Second

// orderRequest 执行端的下单请求体
type orderRequest struct {
	TokenID   string `json:"token_id"`
	Side      string `json:"side"`
	Price     string `json:"price"`
	Size      string `json:"size"`
	OrderType string `json:"order_type"`
}

// orderResponse 执行端的下单响应体。
// Success 用指针区分「标志缺失」和「false」。
type orderResponse struct {
	Success *bool  `json:"success"`
	OrderID string `json:"order_id"`
	Error   string `json:"error"`
}

// Executor 订单执行委托：把订单转换成执行端的 price/size 表示并 POST 过去。
// 复用同一个 resty client，连接池跨调用共享，可并发使用。
type Executor struct {
	client *resty.Client
}

// NewExecutor 创建执行委托；baseURL 为执行端根地址
func NewExecutor(baseURL string) *Executor {
	client := resty.New().
		SetBaseURL(strings.TrimSuffix(baseURL, "/")).
		SetTimeout(submitTimeout)
	return &Executor{client: client}
}

// Submit 提交订单，返回执行端给的订单 ID（可能为空）。
// ModeSimulate 在转换之后直接返回，绝不触网。
func (e *Executor) Submit(ctx context.Context, order *domain.Order, mode Mode) (string, error) {
	price, size, err := Translate(order)
	if err != nil {
		return "", err
	}

	req := orderRequest{
		TokenID:   "0x" + order.TokenID.Text(16),
		Side:      string(order.Side),
		Price:     price.StringFixed(6),
		Size:      size.StringFixed(6),
		OrderType: "FOK",
	}

	if mode == ModeSimulate {
		log.Infof("📝 [dry-run] would submit order: token=%s %s price=%s size=%s",
			shortToken(req.TokenID), req.Side, req.Price, req.Size)
		return "dry-run-" + uuid.NewString(), nil
	}

	log.Infof("📤 submitting order: token=%s %s price=%s size=%s",
		shortToken(req.TokenID), req.Side, req.Price, req.Size)

	resp, err := e.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		Post("/order")
	if err != nil {
		return "", errors.Wrap(err, "post order to execution backend")
	}

	body := resp.Body()
	if resp.StatusCode() < 200 || resp.StatusCode() >= 300 {
		log.Warnf("❌ execution backend rejected order: status=%d body=%s",
			resp.StatusCode(), strings.TrimSpace(string(body)))
		return "", &BackendRejectedError{Status: resp.StatusCode(), Body: string(body)}
	}

	var out orderResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if out.Success == nil {
		return "", ErrMalformedResponse
	}
	if !*out.Success {
		reason := out.Error
		if reason == "" {
			reason = "unknown error"
		}
		return "", &OrderRejectedError{Reason: reason}
	}

	if out.OrderID != "" {
		log.Infof("✅ order placed! id=%s", out.OrderID)
	} else {
		log.Info("✅ order placed successfully")
	}
	return out.OrderID, nil
}

// shortToken 日志里只展示 token id 前缀
func shortToken(tokenID string) string {
	if len(tokenID) <= 16 {
		return tokenID
	}
	return tokenID[:16] + "..."
}
