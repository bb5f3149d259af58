// Package api is the typed client of the remote mapping service.
//
// All computation (validation, dry-run, compilation, apply, type
// inference, size estimation) happens server-side; this client only
// carries the request/response contracts and the cancellation policy:
// a new call of a kind cancels the outstanding call of the same kind,
// so stale responses can never overwrite newer state.
package api

import (
	"context"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/go-resty/resty/v2"

	"github.com/mappingstudio/mapping-studio/internal/pkg/idgenerator"
	"github.com/mappingstudio/mapping-studio/internal/pkg/log"
	"github.com/mappingstudio/mapping-studio/internal/pkg/schema"
)

// Endpoint kinds, used as cancellation scopes.
const (
	kindValidate     = "validate"
	kindDryRun       = "dry-run"
	kindCompile      = "compile"
	kindApply        = "apply"
	kindInferTypes   = "infer-types"
	kindEstimateSize = "estimate-size"
	kindCheckIDs     = "check-ids"
	kindSchema       = "schema"
	kindMetrics      = "metrics"
)

const DefaultTimeout = 30 * time.Second

type Client struct {
	resty  *resty.Client
	logger log.Logger
	cache  *schema.Cache

	lock       sync.Mutex
	generation uint64
	inflight   map[string]*call
}

type call struct {
	gen    uint64
	cancel context.CancelFunc
}

type Option func(*Client)

func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.resty.SetTimeout(timeout)
	}
}

func NewClient(baseURL string, logger log.Logger, cache *schema.Cache, opts ...Option) *Client {
	c := &Client{
		resty:    resty.New().SetBaseURL(baseURL).SetTimeout(DefaultTimeout),
		logger:   logger,
		cache:    cache,
		inflight: map[string]*call{},
	}
	c.resty.SetHeader("Content-Type", "application/json")
	c.resty.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		req.SetHeader("X-Request-Id", idgenerator.RequestID())
		return nil
	})
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// RestyClient exposes the underlying client, for tests.
func (c *Client) RestyClient() *resty.Client {
	return c.resty
}

// begin opens a call of the given kind, cancelling the previous
// outstanding call of the same kind. The returned commit reports whether
// this call is still the latest of its kind; a response must be handed to
// the caller only when commit returns true.
func (c *Client) begin(ctx context.Context, kind string) (context.Context, func() bool) {
	c.lock.Lock()
	defer c.lock.Unlock()

	if prev := c.inflight[kind]; prev != nil {
		prev.cancel()
	}

	ctx, cancel := context.WithCancel(ctx)
	c.generation++
	gen := c.generation
	c.inflight[kind] = &call{gen: gen, cancel: cancel}

	commit := func() bool {
		c.lock.Lock()
		defer c.lock.Unlock()
		current := c.inflight[kind]
		return current != nil && current.gen == gen
	}
	return ctx, commit
}

// post runs one mutating call with the per-kind cancellation policy.
func (c *Client) post(ctx context.Context, kind, path string, body any, result any, queryParams map[string]string) error {
	ctx, commit := c.begin(ctx, kind)

	req := c.resty.R().SetContext(ctx).SetBody(body).SetResult(result)
	if len(queryParams) > 0 {
		req.SetQueryParams(queryParams)
	}

	started := time.Now()
	resp, err := req.Post(path)
	if err != nil {
		if !commit() {
			return ErrSuperseded
		}
		return err
	}
	c.logger.Debugf("POST %s done, http status %d, %s", path, resp.StatusCode(), time.Since(started))

	if !commit() {
		return ErrSuperseded
	}
	if resp.IsError() {
		return newAPIError(resp.StatusCode(), resp.Body())
	}
	return nil
}

// schemaBackoff retries transient schema fetch failures before the
// offline fallback kicks in.
func schemaBackoff(ctx context.Context) backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 50 * time.Millisecond
	b.MaxInterval = time.Second
	return backoff.WithContext(backoff.WithMaxRetries(b, 2), ctx)
}
