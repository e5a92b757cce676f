package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/iwvelando/feasibility/internal/config"
	"github.com/iwvelando/feasibility/internal/feasibility"
	"github.com/iwvelando/feasibility/pkg/constants"
	"github.com/iwvelando/feasibility/pkg/export"
	"github.com/iwvelando/feasibility/pkg/output"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

const (
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	contentTypePDF  = "application/pdf"
)

type handler struct {
	logger           *zap.Logger
	maxUploadSize    int64
	maxProjectMonths int
	version          string
}

type requestIDKey struct{}

// NewHandler constructs the HTTP handler that serves the feasibility API.
// Zero limits fall back to DefaultLimits.
func NewHandler(logger *zap.Logger, limits Limits, version string) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	defaults := DefaultLimits()
	if limits.MaxUploadBytes <= 0 {
		limits.MaxUploadBytes = defaults.MaxUploadBytes
	}
	if limits.MaxProjectMonths <= 0 {
		limits.MaxProjectMonths = defaults.MaxProjectMonths
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{
		logger:           logger,
		maxUploadSize:    limits.MaxUploadBytes,
		maxProjectMonths: limits.MaxProjectMonths,
		version:          trimmedVersion,
	}

	mux := http.NewServeMux()

	// Feasibility API endpoint (file upload)
	mux.HandleFunc("/api/feasibility", h.handleFeasibility)

	// Feasibility API endpoint for editor-driven updates
	mux.HandleFunc("/api/editor/feasibility", h.handleFeasibilityEditor)

	// Binary report downloads
	mux.HandleFunc("/api/export/xlsx", h.handleExport(constants.OutputFormatXLSX))
	mux.HandleFunc("/api/export/pdf", h.handleExport(constants.OutputFormatPDF))

	// Config serialization endpoint for editor downloads
	mux.HandleFunc("/api/editor/export", h.handleConfigExport)

	mux.HandleFunc("/api/version", h.handleVersion)

	return withRequestID(mux)
}

// withRequestID tags every response with an X-Request-ID, reusing the
// caller's value when one is supplied.
func withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(r.Header.Get(constants.RequestIDHeader))
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(constants.RequestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey{}, id)))
	})
}

func requestID(r *http.Request) string {
	if id, ok := r.Context().Value(requestIDKey{}).(string); ok {
		return id
	}
	return ""
}

func (h *handler) requestLogger(r *http.Request) *zap.Logger {
	return h.logger.With(zap.String("requestId", requestID(r)))
}

type feasibilityResponse struct {
	Scenarios  []scenarioResult       `json:"scenarios"`
	CSV        string                 `json:"csv"`
	Warnings   []string               `json:"warnings,omitempty"`
	Duration   string                 `json:"duration"`
	RequestID  string                 `json:"requestId,omitempty"`
	Config     map[string]interface{} `json:"config,omitempty"`
	ConfigYAML string                 `json:"configYaml,omitempty"`
}

type scenarioResult struct {
	Name                   string                         `json:"name"`
	Summary                feasibility.FeasibilitySummary `json:"summary"`
	Months                 []feasibility.CashflowMonth    `json:"months"`
	Dropped                []feasibility.DroppedEntry     `json:"dropped,omitempty"`
	PeakFundingRequirement int64                          `json:"peakFundingRequirement"`
	PeakFundingMonth       int                            `json:"peakFundingMonth"`
	PeakFundingLabel       string                         `json:"peakFundingLabel,omitempty"`
}

// requestError carries the HTTP status a failed evaluation should map to.
type requestError struct {
	status int
	msg    string
}

func (e *requestError) Error() string {
	return e.msg
}

func badRequest(format string, args ...interface{}) error {
	return &requestError{status: http.StatusBadRequest, msg: fmt.Sprintf(format, args...)}
}

func (h *handler) handleFeasibility(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleFeasibility"
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	start := time.Now()
	if h.maxUploadSize > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	}
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondErrorWithOp(w, r, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("upload exceeds limit of %d bytes", h.maxUploadSize), op)
			return
		}
		h.respondErrorWithOp(w, r, http.StatusBadRequest, fmt.Sprintf("failed to parse upload: %v", err), op)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		h.respondErrorWithOp(w, r, http.StatusBadRequest, "missing configuration file", op)
		return
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			h.requestLogger(r).Warn("failed to close uploaded file",
				zap.String("op", op),
				zap.Error(closeErr),
			)
		}
	}()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, file); err != nil {
		h.respondErrorWithOp(w, r, http.StatusInternalServerError, fmt.Sprintf("failed to read configuration: %v", err), op)
		return
	}

	configBytes := buf.Bytes()
	configMap, err := decodeYAMLToMap(configBytes)
	if err != nil {
		h.respondErrorWithOp(w, r, http.StatusBadRequest, fmt.Sprintf("error reading config data, %v", err), op)
		return
	}

	h.runFeasibility(w, r, configBytes, configMap, start, op)
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	h.writeJSON(w, r, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

func (h *handler) handleFeasibilityEditor(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleFeasibilityEditor"
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	start := time.Now()

	configBytes, err := h.readEditorConfig(w, r)
	if err != nil {
		h.respondRequestError(w, r, err, op)
		return
	}

	configMap, err := decodeYAMLToMap(configBytes)
	if err != nil {
		h.respondErrorWithOp(w, r, http.StatusBadRequest, fmt.Sprintf("failed to parse configuration: %v", err), op)
		return
	}

	h.runFeasibility(w, r, configBytes, configMap, start, op)
}

func (h *handler) handleExport(format string) http.HandlerFunc {
	op := "server.handleExport"
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}

		configBytes, err := h.readEditorConfig(w, r)
		if err != nil {
			h.respondRequestError(w, r, err, op)
			return
		}

		results, _, err := h.evaluate(r, configBytes, op)
		if err != nil {
			h.respondRequestError(w, r, err, op)
			return
		}

		var buf bytes.Buffer
		contentType := contentTypePDF
		switch format {
		case constants.OutputFormatXLSX:
			contentType = contentTypeXLSX
			err = export.WriteWorkbook(&buf, results)
		default:
			err = export.WritePDF(&buf, results, export.DefaultPDFOptions())
		}
		if err != nil {
			h.respondErrorWithOp(w, r, http.StatusInternalServerError, fmt.Sprintf("failed to render %s: %v", format, err), op)
			return
		}

		w.Header().Set("Content-Type", contentType)
		w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="feasibility.%s"`, format))
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write(buf.Bytes()); err != nil {
			h.requestLogger(r).Error("failed to write export response",
				zap.String("op", op),
				zap.Error(err),
			)
			return
		}

		h.requestLogger(r).Info("export rendered",
			zap.String("op", op),
			zap.String("format", format),
			zap.Int("scenarios", len(results)),
			zap.Int("bytes", buf.Len()),
		)
	}
}

func (h *handler) handleConfigExport(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleConfigExport"
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	var payload map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		h.respondErrorWithOp(w, r, http.StatusBadRequest, fmt.Sprintf("failed to decode configuration: %v", err), op)
		return
	}
	if payload == nil {
		payload = make(map[string]interface{})
	}

	yamlBytes, err := marshalOrderedConfigYAML(payload)
	if err != nil {
		h.respondErrorWithOp(w, r, http.StatusBadRequest, fmt.Sprintf("failed to encode configuration: %v", err), op)
		return
	}

	h.writeJSON(w, r, http.StatusOK, map[string]string{
		"configYaml": string(yamlBytes),
	})
}

// readEditorConfig decodes a JSON editor payload, either the configuration
// itself or wrapped under "config", and re-encodes it as YAML for the loader.
func (h *handler) readEditorConfig(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	if h.maxUploadSize > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	}

	var payload map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return nil, &requestError{
				status: http.StatusRequestEntityTooLarge,
				msg:    fmt.Sprintf("payload exceeds limit of %d bytes", h.maxUploadSize),
			}
		}
		return nil, badRequest("failed to decode configuration: %v", err)
	}
	if payload == nil {
		payload = make(map[string]interface{})
	}

	configPayload := payload
	if rawConfig, ok := payload["config"]; ok {
		cfgMap, ok := rawConfig.(map[string]interface{})
		if !ok {
			return nil, badRequest("invalid config payload: expected object")
		}
		configPayload = cfgMap
	}

	configBytes, err := yaml.Marshal(configPayload)
	if err != nil {
		return nil, badRequest("failed to encode configuration: %v", err)
	}
	return configBytes, nil
}

// evaluate loads, validates and evaluates a YAML configuration. Validation
// issues are returned as warnings and logged; only an unusable configuration
// fails the request.
func (h *handler) evaluate(r *http.Request, configBytes []byte, op string) ([]feasibility.Evaluation, []string, error) {
	logger := h.requestLogger(r)

	cfg, err := config.LoadConfigurationFromReader(bytes.NewReader(configBytes))
	if err != nil {
		return nil, nil, badRequest("%v", err)
	}

	warnings := cfg.ValidateConfiguration()
	for _, warning := range warnings {
		logger.Warn(warning, zap.String("op", op))
	}

	snapshots, err := cfg.ActiveSnapshots()
	if err != nil {
		return nil, warnings, badRequest("failed to convert scenarios: %v", err)
	}
	for _, snapshot := range snapshots {
		if months := snapshot.TotalMonths(); months > h.maxProjectMonths {
			return nil, warnings, badRequest("scenario %q projectLengthMonths %d exceeds the server limit of %d",
				snapshot.Scenario.Name, months, h.maxProjectMonths)
		}
	}

	return feasibility.NewEngine(logger).EvaluateAll(snapshots), warnings, nil
}

func (h *handler) runFeasibility(w http.ResponseWriter, r *http.Request, configBytes []byte, configMap map[string]interface{}, start time.Time, op string) {
	results, warnings, err := h.evaluate(r, configBytes, op)
	if err != nil {
		h.respondRequestError(w, r, err, op)
		return
	}

	elapsed := time.Since(start)

	if configMap == nil {
		configMap = make(map[string]interface{})
	}

	response := feasibilityResponse{
		Scenarios:  buildScenarioResults(results),
		CSV:        output.CsvString(results),
		Warnings:   warnings,
		Duration:   elapsed.String(),
		RequestID:  requestID(r),
		Config:     configMap,
		ConfigYAML: string(configBytes),
	}

	h.requestLogger(r).Info("feasibility computed",
		zap.String("op", op),
		zap.Int("scenarios", len(response.Scenarios)),
		zap.Int("warnings", len(warnings)),
		zap.Duration("duration", elapsed),
	)

	h.writeJSON(w, r, http.StatusOK, response)
}

func buildScenarioResults(results []feasibility.Evaluation) []scenarioResult {
	scenarios := make([]scenarioResult, 0, len(results))
	for _, result := range results {
		projection := result.Projection
		scenario := scenarioResult{
			Name:                   result.Name,
			Summary:                result.Summary,
			Months:                 projection.Months,
			Dropped:                projection.Dropped,
			PeakFundingRequirement: projection.PeakFundingRequirement,
			PeakFundingMonth:       projection.PeakFundingMonth,
		}
		if projection.PeakFundingMonth >= 0 && projection.PeakFundingMonth < len(projection.Months) {
			scenario.PeakFundingLabel = projection.Months[projection.PeakFundingMonth].Label
		}
		scenarios = append(scenarios, scenario)
	}
	return scenarios
}

func marshalOrderedConfigYAML(payload map[string]interface{}) ([]byte, error) {
	items := make([]orderedItem, 0, len(payload))
	seen := make(map[string]struct{})

	for _, key := range []string{"logging", "output", "scenarios"} {
		if value, ok := payload[key]; ok {
			items = append(items, orderedItem{key: key, value: value})
			seen[key] = struct{}{}
		}
	}

	remainingKeys := make([]string, 0, len(payload))
	for key := range payload {
		if _, already := seen[key]; already {
			continue
		}
		remainingKeys = append(remainingKeys, key)
	}
	sort.Strings(remainingKeys)
	for _, key := range remainingKeys {
		items = append(items, orderedItem{key: key, value: payload[key]})
	}

	return yaml.Marshal(orderedConfig{items: items})
}

type orderedConfig struct {
	items []orderedItem
}

type orderedItem struct {
	key   string
	value interface{}
}

func (o orderedConfig) MarshalYAML() (interface{}, error) {
	mapNode := &yaml.Node{
		Kind: yaml.MappingNode,
		Tag:  "!!map",
	}

	for _, item := range o.items {
		keyNode := &yaml.Node{
			Kind:  yaml.ScalarNode,
			Tag:   "!!str",
			Value: item.key,
		}
		valueNode := &yaml.Node{}
		if err := valueNode.Encode(item.value); err != nil {
			return nil, err
		}
		mapNode.Content = append(mapNode.Content, keyNode, valueNode)
	}

	return mapNode, nil
}

func decodeYAMLToMap(data []byte) (map[string]interface{}, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return make(map[string]interface{}), nil
	}

	var result map[string]interface{}
	if err := yaml.Unmarshal(trimmed, &result); err != nil {
		return nil, err
	}
	if result == nil {
		result = make(map[string]interface{})
	}
	return result, nil
}

func (h *handler) respondRequestError(w http.ResponseWriter, r *http.Request, err error, op string) {
	var reqErr *requestError
	if errors.As(err, &reqErr) {
		h.respondErrorWithOp(w, r, reqErr.status, reqErr.msg, op)
		return
	}
	h.respondErrorWithOp(w, r, http.StatusInternalServerError, err.Error(), op)
}

func (h *handler) respondErrorWithOp(w http.ResponseWriter, r *http.Request, status int, msg string, op string) {
	h.requestLogger(r).Error("feasibility request failed",
		zap.String("op", op),
		zap.Int("status", status),
		zap.String("error", msg),
	)

	h.writeJSON(w, r, status, map[string]string{"error": msg})
}

func (h *handler) writeJSON(w http.ResponseWriter, r *http.Request, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.requestLogger(r).Error("failed to write JSON response", zap.Error(err))
	}
}
