package quoter

import (
	"context"
	"sync"
	"testing"
	"time"

	"leverage/core"
	"leverage/service/position"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	usdc = common.HexToAddress("0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48")
	weth = common.HexToAddress("0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2")
)

type marketStub struct{}

func (marketStub) Token(ctx context.Context, address common.Address) (*core.Token, error) {
	return nil, core.ErrMarketNotFound
}

func (marketStub) Reserve(ctx context.Context, address common.Address) (*core.Reserve, error) {
	return nil, core.ErrMarketNotFound
}

func (marketStub) MaxLeverage(ctx context.Context, collateral, debt common.Address) (decimal.Decimal, error) {
	return decimal.NewFromInt(4), nil
}

// gatedService blocks the first Position call until gate is closed
type gatedService struct {
	core.ILeverageService
	once    sync.Once
	started chan struct{}
	gate    chan struct{}
}

func (s *gatedService) Position(ctx context.Context, req *core.PositionRequest) (*core.Position, error) {
	first := false
	s.once.Do(func() { first = true })
	if first {
		close(s.started)
		<-s.gate
	}
	return s.ILeverageService.Position(ctx, req)
}

func token(address common.Address, decimals uint8, price string) core.Token {
	return core.Token{Address: address, Decimals: &decimals, Price: decimal.NewNullDecimal(decimal.RequireFromString(price))}
}

func request(target string) Request {
	return Request{
		Position: core.PositionRequest{
			Collateral: core.Balance{Token: token(usdc, 6, "1"), Amount: "1000000000"},
			Debt:       core.Balance{Token: token(weth, 18, "2000"), Amount: "250000000000000000"},
		},
		Target: decimal.RequireFromString(target),
	}
}

func run(t *testing.T, q *Quoter) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = q.Run(ctx)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})
}

func receive(t *testing.T, ch <-chan *Quote) *Quote {
	t.Helper()
	select {
	case quote := <-ch:
		return quote
	case <-time.After(2 * time.Second):
		t.Fatal("no quote received")
		return nil
	}
}

func TestDebounce(t *testing.T) {
	q := New(position.New(marketStub{}, core.Leverage{}), marketStub{}, core.Quote{Debounce: 30 * time.Millisecond})
	sub := q.Subscribe()
	run(t, q)

	for _, target := range []string{"1.9", "1.8", "1.7", "1.6", "1.5"} {
		q.Submit(request(target))
		time.Sleep(time.Millisecond)
	}

	quote := receive(t, sub)
	require.NoError(t, quote.Err)
	assert.EqualValues(t, 1, quote.Seq)
	assert.Equal(t, "1.5", quote.Target.String())
	require.NotNil(t, quote.Unloop)
	assert.Nil(t, quote.Loop)
	assert.Equal(t, "125000000000000000", quote.Unloop.RepayAmount.String())
	assert.NotEmpty(t, quote.TraceID)
	assert.Equal(t, quote, q.Latest())
}

func TestLoopQuote(t *testing.T) {
	q := New(position.New(marketStub{}, core.Leverage{}), marketStub{}, core.Quote{Debounce: time.Millisecond})
	sub := q.Subscribe()
	run(t, q)

	req := request("3")
	req.Deposit = "0"
	q.Submit(req)

	quote := receive(t, sub)
	require.NoError(t, quote.Err)
	require.NotNil(t, quote.Loop)
	assert.Equal(t, "4", quote.MaxLeverage.String())
	assert.Equal(t, "250000000000000000", quote.Loop.BorrowAmount.String())

	q.Submit(request("5"))
	quote = receive(t, sub)
	assert.ErrorIs(t, quote.Err, core.ErrLeverageAboveMax)

	req = request("3")
	req.Deposit = "abc"
	q.Submit(req)
	quote = receive(t, sub)
	assert.ErrorIs(t, quote.Err, core.ErrInvalidAmount)
}

func TestErrorQuote(t *testing.T) {
	q := New(position.New(marketStub{}, core.Leverage{}), marketStub{}, core.Quote{Debounce: time.Millisecond})
	sub := q.Subscribe()
	run(t, q)

	req := request("1.5")
	req.Position.Debt.Token.Decimals = nil
	q.Submit(req)

	quote := receive(t, sub)
	assert.ErrorIs(t, quote.Err, core.ErrMarketNotFound)
	assert.Nil(t, quote.Unloop)
}

func TestStaleResultDropped(t *testing.T) {
	svc := &gatedService{
		ILeverageService: position.New(marketStub{}, core.Leverage{}),
		started:          make(chan struct{}),
		gate:             make(chan struct{}),
	}
	q := New(svc, marketStub{}, core.Quote{Debounce: 5 * time.Millisecond})
	sub := q.Subscribe()
	run(t, q)

	q.Submit(request("1.9"))
	select {
	case <-svc.started:
	case <-time.After(2 * time.Second):
		t.Fatal("first request not issued")
	}

	q.Submit(request("1.5"))
	quote := receive(t, sub)
	assert.EqualValues(t, 2, quote.Seq)
	assert.Equal(t, "1.5", quote.Target.String())

	close(svc.gate)
	time.Sleep(50 * time.Millisecond)

	select {
	case stale := <-sub:
		t.Fatalf("stale quote %d delivered", stale.Seq)
	default:
	}
	assert.EqualValues(t, 2, q.Latest().Seq)
}

func TestAccept(t *testing.T) {
	q := New(nil, nil, core.Quote{})
	assert.Nil(t, q.Latest())

	q.issue()
	q.issue()
	assert.False(t, q.accept(&Quote{Seq: 1}))
	assert.Nil(t, q.Latest())
	assert.True(t, q.accept(&Quote{Seq: 2}))
	assert.EqualValues(t, 2, q.Latest().Seq)
}

func TestSubmitNeverBlocks(t *testing.T) {
	q := New(nil, nil, core.Quote{})
	for i := 0; i < 100; i++ {
		q.Submit(Request{Target: decimal.NewFromInt(int64(i))})
	}

	req := <-q.requests
	assert.Equal(t, "99", req.Target.String())
}
