package trading

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"github.com/betbot/goexec/internal/domain"
	"github.com/betbot/goexec/internal/executor"
)

type stubChecker struct {
	err      error
	required *big.Int
}

func (s *stubChecker) EnsureTradingReady(ctx context.Context, required *big.Int) error {
	s.required = required
	return s.err
}

type stubSubmitter struct {
	id    string
	err   error
	order *domain.Order
	mode  executor.Mode
}

func (s *stubSubmitter) Submit(ctx context.Context, order *domain.Order, mode executor.Mode) (string, error) {
	s.order = order
	s.mode = mode
	return s.id, s.err
}

func TestEnsureTradingReadyDelegates(t *testing.T) {
	wantErr := errors.New("not ready")
	checker := &stubChecker{err: wantErr}
	c := NewClient(checker, &stubSubmitter{})

	err := c.EnsureTradingReady(context.Background(), big.NewInt(5_000_000))
	if !errors.Is(err, wantErr) {
		t.Fatalf("err = %v, want checker error unchanged", err)
	}
	if checker.required.Cmp(big.NewInt(5_000_000)) != 0 {
		t.Fatalf("required = %s, want 5000000", checker.required)
	}
}

func TestSubmitOrderSkipsReadinessCheck(t *testing.T) {
	// 就绪检查失败也不拦截提交：顺序由调用方负责
	checker := &stubChecker{err: errors.New("not ready")}
	submitter := &stubSubmitter{id: "abc"}
	c := NewClient(checker, submitter)

	order := &domain.Order{
		TokenID:     big.NewInt(7),
		Side:        domain.SideBuy,
		MakerAmount: big.NewInt(150000),
		TakerAmount: big.NewInt(100000),
	}
	id, err := c.SubmitOrder(context.Background(), order, executor.ModeLive)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if id != "abc" {
		t.Fatalf("id = %q, want abc", id)
	}
	if submitter.order != order || submitter.mode != executor.ModeLive {
		t.Fatal("order/mode not passed through")
	}
	if checker.required != nil {
		t.Fatal("SubmitOrder must not invoke the readiness check")
	}
}

func TestOrderbookStubs(t *testing.T) {
	c := NewClient(&stubChecker{}, &stubSubmitter{})

	if err := c.Orderbook(context.Background(), "123"); !errors.Is(err, ErrUseOrderbookService) {
		t.Fatalf("err = %v, want ErrUseOrderbookService", err)
	}
	if err := c.BestPrice("123", domain.SideBuy); !errors.Is(err, ErrUseOrderbookService) {
		t.Fatalf("err = %v, want ErrUseOrderbookService", err)
	}
}
