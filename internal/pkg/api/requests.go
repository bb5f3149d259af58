package api

import (
	"bytes"
	"context"
	"strconv"

	"github.com/cenkalti/backoff/v4"
	"github.com/go-resty/resty/v2"

	"github.com/mappingstudio/mapping-studio/internal/pkg/metrics"
	"github.com/mappingstudio/mapping-studio/internal/pkg/model"
	"github.com/mappingstudio/mapping-studio/internal/pkg/schema"
)

// MaxDryRunRows caps the row sample sent to dry-run and infer-types.
const MaxDryRunRows = 100

// ValidateMapping checks the mapping server-side. Issues inside the
// result are findings, not errors.
func (c *Client) ValidateMapping(ctx context.Context, m *model.Mapping) (*ValidateResult, error) {
	result := &ValidateResult{}
	if err := c.post(ctx, kindValidate, "/mappings/validate", m, result, nil); err != nil {
		return nil, err
	}
	return result, nil
}

// DryRun executes the mapping against a sample of rows.
// The sample is capped client-side to MaxDryRunRows.
func (c *Client) DryRun(ctx context.Context, m *model.Mapping, rows []map[string]any, globals map[string]any) (*DryRunResult, error) {
	body := DryRunRequest{Mapping: m, Rows: capRows(rows), Globals: globals}
	result := &DryRunResult{}
	if err := c.post(ctx, kindDryRun, "/mappings/dry-run", body, result, nil); err != nil {
		return nil, err
	}
	return result, nil
}

// Compile translates the mapping to the engine-specific index mapping and
// ingest pipeline. With includePlan the response carries the execution plan.
func (c *Client) Compile(ctx context.Context, m *model.Mapping, includePlan bool) (*CompileResult, error) {
	var params map[string]string
	if includePlan {
		params = map[string]string{"plan": strconv.FormatBool(includePlan)}
	}
	result := &CompileResult{}
	if err := c.post(ctx, kindCompile, "/mappings/compile", m, result, params); err != nil {
		return nil, err
	}
	return result, nil
}

// Apply deploys the mapping.
func (c *Client) Apply(ctx context.Context, request ApplyRequest) (*ApplyResult, error) {
	result := &ApplyResult{}
	if err := c.post(ctx, kindApply, "/mappings/apply", request, result, nil); err != nil {
		return nil, err
	}
	return result, nil
}

// InferTypes asks the server to suggest field types from sample rows.
func (c *Client) InferTypes(ctx context.Context, rows []map[string]any, globals map[string]any) (*InferTypesResult, error) {
	body := InferTypesRequest{Rows: capRows(rows), Globals: globals}
	result := &InferTypesResult{}
	if err := c.post(ctx, kindInferTypes, "/mappings/infer-types", body, result, nil); err != nil {
		return nil, err
	}
	return result, nil
}

// EstimateSize requests index size and shard recommendations.
func (c *Client) EstimateSize(ctx context.Context, request EstimateSizeRequest) (*EstimateSizeResult, error) {
	result := &EstimateSizeResult{}
	if err := c.post(ctx, kindEstimateSize, "/mappings/estimate-size", request, result, nil); err != nil {
		return nil, err
	}
	return result, nil
}

// CheckIDs runs the ID-policy duplicate check.
func (c *Client) CheckIDs(ctx context.Context, request CheckIDsRequest) (*CheckIDsResult, error) {
	result := &CheckIDsResult{}
	if err := c.post(ctx, kindCheckIDs, "/mappings/check-ids", request, result, nil); err != nil {
		return nil, err
	}
	return result, nil
}

// FetchSchema retrieves the mapping schema with conditional ETag retrieval.
//
// A not-modified response reuses the cached schema. A fresh 200 updates
// the cache. Transport failures and unexpected statuses fall back to the
// last cached schema with offline=true; without a cached schema the
// error is returned.
func (c *Client) FetchSchema(ctx context.Context) (info *schema.Info, offline bool, err error) {
	ctx, commit := c.begin(ctx, kindSchema)

	fallback := func(cause error) (*schema.Info, bool, error) {
		if cached, found := c.cache.Last(); found {
			c.logger.Warnf("schema fetch failed, using cached schema: %s", cause)
			return cached, true, nil
		}
		return nil, false, cause
	}

	etag := c.cache.ETag()
	resp, fetchErr := backoff.RetryWithData(func() (*resty.Response, error) {
		req := c.resty.R().SetContext(ctx)
		if etag != "" {
			req.SetHeader("If-None-Match", etag)
		}
		return req.Get("/mappings/schema")
	}, schemaBackoff(ctx))
	if fetchErr != nil {
		if !commit() {
			return nil, false, ErrSuperseded
		}
		return fallback(fetchErr)
	}

	switch {
	case resp.StatusCode() == 304:
		cached, found := c.cache.Last()
		if !found {
			return fallback(newAPIError(304, nil))
		}
		if !commit() {
			return nil, false, ErrSuperseded
		}
		return cached, false, nil
	case resp.IsSuccess():
		parsed, parseErr := schema.Parse(resp.Body(), resp.Header().Get("ETag"))
		if parseErr != nil {
			return fallback(parseErr)
		}
		if !commit() {
			return nil, false, ErrSuperseded
		}
		c.cache.Store(parsed)
		return parsed, false, nil
	default:
		if !commit() {
			return nil, false, ErrSuperseded
		}
		return fallback(newAPIError(resp.StatusCode(), resp.Body()))
	}
}

// FetchMetrics scrapes the backend metrics endpoint.
func (c *Client) FetchMetrics(ctx context.Context) (metrics.Snapshot, error) {
	ctx, commit := c.begin(ctx, kindMetrics)

	resp, err := c.resty.R().SetContext(ctx).Get("/metrics")
	if err != nil {
		if !commit() {
			return metrics.Snapshot{}, ErrSuperseded
		}
		return metrics.Snapshot{}, err
	}
	if !commit() {
		return metrics.Snapshot{}, ErrSuperseded
	}
	if resp.IsError() {
		return metrics.Snapshot{}, newAPIError(resp.StatusCode(), resp.Body())
	}
	return metrics.ParseText(bytes.NewReader(resp.Body())), nil
}

func capRows(rows []map[string]any) []map[string]any {
	if len(rows) > MaxDryRunRows {
		return rows[:MaxDryRunRows]
	}
	return rows
}
