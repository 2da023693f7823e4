package quoter

import (
	"context"
	"fmt"
	"sync"
	"time"

	"leverage/core"
	"leverage/pkg/fixed"
	"leverage/pkg/id"
	"leverage/pkg/leverage"

	"github.com/fox-one/pkg/logger"
	"github.com/shopspring/decimal"
)

// DefaultDebounce quiet period before a quote is computed
const DefaultDebounce = 300 * time.Millisecond

// Request raw position balances and the desired leverage
type Request struct {
	Position core.PositionRequest
	Target   decimal.Decimal
	// Deposit optional collateral added before looping, integer string
	Deposit string
}

// Quote result of one issued request. Exactly one of Unloop and Loop is set
// unless Err is.
type Quote struct {
	Seq         uint64                 `json:"seq"`
	TraceID     string                 `json:"trace_id"`
	Target      decimal.Decimal        `json:"target"`
	State       *core.LeverageState    `json:"state,omitempty"`
	MaxLeverage decimal.Decimal        `json:"max_leverage"`
	Unloop      *core.UnloopParameters `json:"unloop,omitempty"`
	Loop        *core.LoopParameters   `json:"loop,omitempty"`
	Err         error                  `json:"-"`
	At          time.Time              `json:"at"`
}

// Quoter debounces leverage target changes and tags every computation with
// a sequence number. Results older than the latest issued request are dropped.
type Quoter struct {
	leverageSrv core.ILeverageService
	marketSrv   core.IMarketDataService
	debounce    time.Duration

	requests chan Request
	results  chan *Quote

	mu     sync.RWMutex
	issued uint64
	latest *Quote
	subs   []chan *Quote
}

// New new quoter
func New(leverageSrv core.ILeverageService, marketSrv core.IMarketDataService, cfg core.Quote) *Quoter {
	debounce := cfg.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	return &Quoter{
		leverageSrv: leverageSrv,
		marketSrv:   marketSrv,
		debounce:    debounce,
		requests:    make(chan Request, 1),
		results:     make(chan *Quote, 16),
	}
}

// Submit records req as the latest input, replacing any pending one. It never blocks.
func (q *Quoter) Submit(req Request) {
	for {
		select {
		case q.requests <- req:
			return
		default:
		}

		select {
		case <-q.requests:
		default:
		}
	}
}

// Latest last accepted quote, nil before the first one
func (q *Quoter) Latest() *Quote {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.latest
}

// Subscribe accepted quotes are delivered on the returned channel, a slow
// subscriber misses quotes rather than blocking the quoter
func (q *Quoter) Subscribe() <-chan *Quote {
	ch := make(chan *Quote, 1)
	q.mu.Lock()
	q.subs = append(q.subs, ch)
	q.mu.Unlock()
	return ch
}

// Run blocks until ctx is done
func (q *Quoter) Run(ctx context.Context) error {
	log := logger.FromContext(ctx).WithField("worker", "quoter")

	var (
		pending *Request
		timer   = time.NewTimer(q.debounce)
	)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case req := <-q.requests:
			pending = &req
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			timer.Reset(q.debounce)
		case <-timer.C:
			if pending == nil {
				continue
			}

			req := *pending
			pending = nil
			seq := q.issue()
			go q.compute(ctx, seq, req)
		case quote := <-q.results:
			if !q.accept(quote) {
				log.Debugln("drop stale quote", quote.Seq)
			}
		}
	}
}

func (q *Quoter) issue() uint64 {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.issued++
	return q.issued
}

// accept publishes quote unless a newer request was issued after it
func (q *Quoter) accept(quote *Quote) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	if quote.Seq < q.issued {
		return false
	}

	q.latest = quote
	for _, ch := range q.subs {
		select {
		case <-ch:
		default:
		}
		ch <- quote
	}
	return true
}

func (q *Quoter) compute(ctx context.Context, seq uint64, req Request) {
	traceID := id.GenTraceID()
	log := logger.FromContext(ctx).WithField("trace_id", traceID)
	// in flight calculations run to completion, staleness is decided on arrival
	quote := q.quote(logger.WithContext(context.WithoutCancel(ctx), log), req)
	quote.Seq = seq
	quote.TraceID = traceID
	quote.At = time.Now()
	if quote.Err != nil {
		log.WithError(quote.Err).Infoln("quote", seq)
	}

	select {
	case q.results <- quote:
	case <-ctx.Done():
	}
}

func (q *Quoter) quote(ctx context.Context, req Request) *Quote {
	quote := &Quote{Target: req.Target}

	position, err := q.leverageSrv.Position(ctx, &req.Position)
	if err != nil {
		quote.Err = err
		return quote
	}

	state, err := q.leverageSrv.Leverage(ctx, position)
	if err != nil {
		quote.Err = err
		return quote
	}
	quote.State = state

	if leverage.RoundLeverage(req.Target).LessThanOrEqual(leverage.RoundLeverage(state.Leverage)) {
		quote.Unloop, quote.Err = q.leverageSrv.Unloop(ctx, position, req.Target)
		return quote
	}

	maxLeverage, err := q.marketSrv.MaxLeverage(ctx, position.CollateralToken, position.DebtToken)
	if err != nil {
		quote.Err = err
		return quote
	}
	quote.MaxLeverage = maxLeverage

	deposit, err := parseDeposit(req.Deposit, position)
	if err != nil {
		quote.Err = err
		return quote
	}

	quote.Loop, quote.Err = q.leverageSrv.Loop(ctx, position, req.Target, maxLeverage, deposit)
	return quote
}

func parseDeposit(v string, position *core.Position) (*fixed.Amount, error) {
	if v == "" {
		return nil, nil
	}

	deposit, err := fixed.ParseAmount(v, position.Collateral.Decimals())
	if err != nil {
		return nil, fmt.Errorf("deposit %q: %v: %w", v, err, core.ErrInvalidAmount)
	}

	return &deposit, nil
}
