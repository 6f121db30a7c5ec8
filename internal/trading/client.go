package trading

import (
	"context"
	"errors"
	"math/big"

	"github.com/sirupsen/logrus"

	"github.com/betbot/goexec/internal/domain"
	"github.com/betbot/goexec/internal/executor"
)

var log = logrus.WithField("component", "trading_client")

// ErrUseOrderbookService 订单簿/价格发现不属于本组件，调用方应使用独立的订单簿子系统
var ErrUseOrderbookService = errors.New("orderbook access is owned by the orderbook service, not the trading client")

// ReadinessChecker 交易就绪检查
type ReadinessChecker interface {
	EnsureTradingReady(ctx context.Context, required *big.Int) error
}

// OrderSubmitter 订单提交
type OrderSubmitter interface {
	Submit(ctx context.Context, order *domain.Order, mode executor.Mode) (string, error)
}

// Client 交易客户端：组合就绪检查与订单提交。
// SubmitOrder 不会隐式触发就绪检查——调用方需要先单独跑 EnsureTradingReady。
type Client struct {
	checker  ReadinessChecker
	executor OrderSubmitter
}

// NewClient 创建交易客户端
func NewClient(checker ReadinessChecker, submitter OrderSubmitter) *Client {
	return &Client{
		checker:  checker,
		executor: submitter,
	}
}

// EnsureTradingReady 委托给就绪检查器，结果原样返回
func (c *Client) EnsureTradingReady(ctx context.Context, required *big.Int) error {
	return c.checker.EnsureTradingReady(ctx, required)
}

// SubmitOrder 转换并提交订单；不做就绪检查
func (c *Client) SubmitOrder(ctx context.Context, order *domain.Order, mode executor.Mode) (string, error) {
	return c.executor.Submit(ctx, order, mode)
}

// Orderbook 占位：订单簿获取走独立子系统
func (c *Client) Orderbook(ctx context.Context, tokenID string) error {
	log.Debugf("orderbook requested for token=%s, redirecting caller", tokenID)
	return ErrUseOrderbookService
}

// BestPrice 占位：价格发现走独立子系统
func (c *Client) BestPrice(tokenID string, side domain.Side) error {
	return ErrUseOrderbookService
}
