package api

import (
	"github.com/mappingstudio/mapping-studio/internal/pkg/model"
)

// Issue severities.
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
	SeverityInfo    = "info"
)

// Issue is one validation/business-rule finding returned inside a 200
// response. It is data, not a transport error.
type Issue struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	Severity   string `json:"severity"`
	Path       string `json:"path,omitempty"`
	Field      string `json:"field,omitempty"`
	Suggestion string `json:"suggestion,omitempty"`
}

type ValidateResult struct {
	Valid            bool    `json:"valid"`
	Issues           []Issue `json:"issues"`
	SchemaVersion    string  `json:"schema_version"`
	ProcessingTimeMs float64 `json:"processing_time_ms"`
}

type DryRunRequest struct {
	Mapping *model.Mapping   `json:"mapping"`
	Rows    []map[string]any `json:"rows"`
	Globals map[string]any   `json:"globals"`
}

type DryRunIssue struct {
	Row      int    `json:"row"`
	Code     string `json:"code"`
	Message  string `json:"message"`
	Severity string `json:"severity"`
	Field    string `json:"field,omitempty"`
}

type DryRunResult struct {
	Success          bool             `json:"success"`
	ProcessedRows    int              `json:"processed_rows"`
	SuccessfulRows   int              `json:"successful_rows"`
	FailedRows       int              `json:"failed_rows"`
	Issues           []DryRunIssue    `json:"issues"`
	DocsPreview      []map[string]any `json:"docs_preview"`
	ProcessingTimeMs float64          `json:"processing_time_ms"`
	IssuesPerCode    map[string]int   `json:"issues_per_code"`
}

type CompileResult struct {
	Success          bool           `json:"success"`
	CompiledHash     string         `json:"compiled_hash"`
	ESMapping        map[string]any `json:"es_mapping"`
	Pipeline         map[string]any `json:"pipeline"`
	Plan             map[string]any `json:"plan,omitempty"`
	ProcessingTimeMs float64        `json:"processing_time_ms"`
	Warnings         []string       `json:"warnings"`
	Errors           []string       `json:"errors"`
}

type ApplyOptions struct {
	CreateIndex         bool `json:"create_index"`
	CreatePipeline      bool `json:"create_pipeline"`
	CreateILMPolicy     bool `json:"create_ilm_policy"`
	WaitForActiveShards int  `json:"wait_for_active_shards"`
}

type ApplyRequest struct {
	Mapping      *model.Mapping `json:"mapping"`
	CompiledHash string         `json:"compiled_hash,omitempty"`
	Options      ApplyOptions   `json:"options"`
}

type ApplyDetails struct {
	IndexCreated     bool           `json:"index_created"`
	PipelineCreated  bool           `json:"pipeline_created"`
	ILMPolicyCreated *bool          `json:"ilm_policy_created,omitempty"`
	Shards           int            `json:"shards"`
	Replicas         int            `json:"replicas"`
	Settings         map[string]any `json:"settings"`
}

type ApplyResult struct {
	Success          bool         `json:"success"`
	IndexName        string       `json:"index_name"`
	PipelineName     string       `json:"pipeline_name"`
	ILMPolicyName    string       `json:"ilm_policy_name,omitempty"`
	Status           string       `json:"status"` // created | updated | failed
	Message          string       `json:"message"`
	ProcessingTimeMs float64      `json:"processing_time_ms"`
	Details          ApplyDetails `json:"details"`
}

type InferTypesRequest struct {
	Rows    []map[string]any `json:"rows"`
	Globals map[string]any   `json:"globals"`
}

type InferredType struct {
	Field         string  `json:"field"`
	SuggestedType string  `json:"suggested_type"`
	Confidence    float64 `json:"confidence"` // 0..1
	SampleValues  []any   `json:"sample_values"`
	Reasoning     string  `json:"reasoning"`
}

type InferTypesResult struct {
	InferredTypes    []InferredType `json:"inferred_types"`
	TotalFields      int            `json:"total_fields"`
	ProcessingTimeMs float64        `json:"processing_time_ms"`
}

type FieldStats struct {
	Field       string  `json:"field"`
	AvgBytes    float64 `json:"avg_bytes"`
	Cardinality int64   `json:"cardinality,omitempty"`
}

type EstimateSizeRequest struct {
	Mapping           *model.Mapping `json:"mapping"`
	FieldStats        []FieldStats   `json:"field_stats"`
	NumDocs           int64          `json:"num_docs"`
	Replicas          int            `json:"replicas"`
	TargetShardSizeGB float64        `json:"target_shard_size_gb"`
}

type EstimateSizeResult struct {
	Success             bool    `json:"success"`
	EstimatedSizeBytes  int64   `json:"estimated_size_bytes"`
	EstimatedSizeHuman  string  `json:"estimated_size_human"`
	RecommendedShards   int     `json:"recommended_shards"`
	RecommendedReplicas int     `json:"recommended_replicas"`
	ProcessingTimeMs    float64 `json:"processing_time_ms"`
}

type CheckIDsRequest struct {
	Mapping *model.Mapping   `json:"mapping"`
	Rows    []map[string]any `json:"rows"`
}

type CheckIDsResult struct {
	Success          bool     `json:"success"`
	DuplicateIDs     []string `json:"duplicate_ids"`
	TotalChecked     int      `json:"total_checked"`
	ProcessingTimeMs float64  `json:"processing_time_ms"`
}
