// Package http is the thin HTTP face over the analysis engine. Handlers
// parse and validate requests, call into the engine packages, and render the
// results; no statistics are computed here.
package http

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"surveypulse/internal/analysis"
	apierrors "surveypulse/internal/errors"
	"surveypulse/internal/normalizer"
	"surveypulse/internal/session"
	"surveypulse/pkg/contracts/domain"
)

// Handler serves the survey analysis API
type Handler struct {
	store      *session.Store
	engine     *analysis.Engine
	normalizer *normalizer.Normalizer
	classify   func(label string) string
	defaults   domain.Settings
	maxUpload  int64
	validate   *validator.Validate
	logger     *slog.Logger
}

// HandlerConfig wires the handler's collaborators
type HandlerConfig struct {
	Store      *session.Store
	Engine     *analysis.Engine
	Normalizer *normalizer.Normalizer
	Classify   func(label string) string
	Defaults   domain.Settings
	MaxUpload  int64
	Logger     *slog.Logger
}

// NewHandler creates the API handler
func NewHandler(cfg HandlerConfig) *Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		store:      cfg.Store,
		engine:     cfg.Engine,
		normalizer: cfg.Normalizer,
		classify:   cfg.Classify,
		defaults:   cfg.Defaults,
		maxUpload:  cfg.MaxUpload,
		validate:   validator.New(),
		logger:     logger.With(slog.String("handler", "survey")),
	}
}

// UploadResponse summarizes an accepted upload
type UploadResponse struct {
	Shape       normalizer.Shape         `json:"shape"`
	Questions   []domain.Question        `json:"questions,omitempty"`
	Respondents int                      `json:"respondents,omitempty"`
	Issues      []domain.ValidationIssue `json:"issues,omitempty"`
	Matrix      *domain.DepartmentScoreData `json:"matrix,omitempty"`
}

// HandleUpload ingests a raw-response or frequency-distribution file. The
// shape is auto-detected; a new upload replaces the whole session.
func (h *Handler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	table, ok := h.readUpload(w, r)
	if !ok {
		return
	}

	result, err := h.normalizer.Normalize(table)
	if err != nil {
		render.Render(w, r, apierrors.ParseFailure(err))
		return
	}

	h.store.Replace(&session.State{
		Shape:    result.Shape,
		Table:    result.Table,
		Settings: h.defaults,
	})

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, UploadResponse{
		Shape:       result.Shape,
		Questions:   result.Table.Questions,
		Respondents: len(result.Table.Responses),
		Issues:      result.Table.Issues,
	})
}

// HandleDepartmentUpload ingests a pre-aggregated department-score matrix.
// This path is chosen explicitly by the caller, never auto-detected.
func (h *Handler) HandleDepartmentUpload(w http.ResponseWriter, r *http.Request) {
	table, ok := h.readUpload(w, r)
	if !ok {
		return
	}

	result, err := h.normalizer.NormalizeDepartmentMatrix(table)
	if err != nil {
		render.Render(w, r, apierrors.ShapeDetectionFailure(err))
		return
	}

	analyses, overall := h.engine.DepartmentMatrixAnalyze(result.Matrix)
	h.store.Replace(&session.State{
		Shape:             result.Shape,
		Matrix:            result.Matrix,
		Settings:          h.defaults,
		Departments:       analyses,
		OverallByQuestion: overall,
	})

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, UploadResponse{
		Shape:  result.Shape,
		Matrix: result.Matrix,
	})
}

// readUpload pulls the multipart "file" part and parses it into a Table
func (h *Handler) readUpload(w http.ResponseWriter, r *http.Request) (normalizer.Table, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload)
	if err := r.ParseMultipartForm(h.maxUpload); err != nil {
		render.Render(w, r, apierrors.InvalidRequestWithError(err))
		return normalizer.Table{}, false
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		render.Render(w, r, apierrors.ErrMissingParameter)
		return normalizer.Table{}, false
	}
	defer file.Close()

	table, err := normalizer.ReadTable(header.Filename, file)
	if err != nil {
		render.Render(w, r, apierrors.ParseFailure(err))
		return normalizer.Table{}, false
	}

	h.logger.Info("upload parsed",
		slog.String("filename", header.Filename),
		slog.Int("columns", len(table.Headers)),
		slog.Int("rows", len(table.Rows)))
	return table, true
}

// AnalyzeRequest carries the caller-supplied settings; any omitted block
// falls back to the configured defaults.
type AnalyzeRequest struct {
	Settings *domain.Settings `json:"settings"`
}

// AnalyzeResponse returns the full pipeline output. Department analysis
// always follows question analysis because the deltas need the overall
// means.
type AnalyzeResponse struct {
	Results     []domain.AnalysisResult     `json:"results"`
	Departments []domain.DepartmentAnalysis `json:"departments"`
}

// HandleAnalyze runs the statistics pipeline over the current session
func (h *Handler) HandleAnalyze(w http.ResponseWriter, r *http.Request) {
	state := h.store.Current()
	if state == nil || state.Table == nil {
		render.Render(w, r, apierrors.ErrNoSession)
		return
	}

	var req AnalyzeRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil && r.ContentLength > 0 {
		render.Render(w, r, apierrors.InvalidRequestWithError(err))
		return
	}
	settings := h.defaults
	if req.Settings != nil {
		settings = *req.Settings
		if err := h.validate.Struct(settings); err != nil {
			render.Render(w, r, apierrors.NewWithDetails(http.StatusBadRequest, "VALIDATION_FAILED", "Invalid settings", err.Error()))
			return
		}
	}

	results, err := h.engine.Analyze(state.Table.Responses, state.Table.Questions, settings)
	if err != nil {
		render.Render(w, r, apierrors.InvalidRequestWithError(err))
		return
	}
	departments := h.engine.DepartmentAnalyze(state.Table.Responses, state.Table.Questions, results)

	h.store.SetResults(settings, results, departments, nil)

	render.JSON(w, r, AnalyzeResponse{Results: results, Departments: departments})
}

// HandleResults returns the last computed analysis
func (h *Handler) HandleResults(w http.ResponseWriter, r *http.Request) {
	state := h.store.Current()
	if state == nil || state.Results == nil && state.Departments == nil {
		render.Render(w, r, apierrors.ErrNoSession)
		return
	}
	render.JSON(w, r, AnalyzeResponse{Results: state.Results, Departments: state.Departments})
}

// HandleDistribution returns the histogram for one question. Scale bounds
// default to the session settings and can be overridden by query params.
func (h *Handler) HandleDistribution(w http.ResponseWriter, r *http.Request) {
	state := h.store.Current()
	if state == nil || state.Table == nil {
		render.Render(w, r, apierrors.ErrNoSession)
		return
	}
	key := r.URL.Query().Get("question")
	if key == "" {
		render.Render(w, r, apierrors.ErrMissingParameter)
		return
	}
	min := int(state.Settings.ScaleMin)
	max := int(state.Settings.ScaleMax)
	if v, err := strconv.Atoi(r.URL.Query().Get("min")); err == nil {
		min = v
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("max")); err == nil {
		max = v
	}

	buckets := analysis.Distribution(state.Table.Responses, key, min, max)
	render.JSON(w, r, map[string]interface{}{"question": key, "buckets": buckets})
}

// ClassifyRequest asks for a category for a free-form label
type ClassifyRequest struct {
	Label string `json:"label" validate:"required"`
}

// HandleClassify classifies a question label against the keyword table
func (h *Handler) HandleClassify(w http.ResponseWriter, r *http.Request) {
	var req ClassifyRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		render.Render(w, r, apierrors.InvalidRequestWithError(err))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		render.Render(w, r, apierrors.ErrValidationFailed)
		return
	}
	render.JSON(w, r, map[string]string{"label": req.Label, "category_id": h.classify(req.Label)})
}

// CategoryRequest overrides the category of one question
type CategoryRequest struct {
	QuestionKey string `json:"question_key" validate:"required"`
	CategoryID  string `json:"category_id" validate:"required"`
}

// HandleSetCategory applies a user category override
func (h *Handler) HandleSetCategory(w http.ResponseWriter, r *http.Request) {
	var req CategoryRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		render.Render(w, r, apierrors.InvalidRequestWithError(err))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		render.Render(w, r, apierrors.ErrValidationFailed)
		return
	}
	if !h.store.SetCategory(req.QuestionKey, req.CategoryID) {
		render.Render(w, r, apierrors.NotFoundError("question"))
		return
	}
	render.JSON(w, r, map[string]string{"question_key": req.QuestionKey, "category_id": req.CategoryID})
}

// CommentRequest upserts comment text for a target
type CommentRequest struct {
	TargetType string `json:"target_type" validate:"required"`
	TargetID   string `json:"target_id" validate:"required"`
	Text       string `json:"text"`
}

// HandleUpsertComment adds or updates the comment for a target
func (h *Handler) HandleUpsertComment(w http.ResponseWriter, r *http.Request) {
	var req CommentRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		render.Render(w, r, apierrors.InvalidRequestWithError(err))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		render.Render(w, r, apierrors.ErrValidationFailed)
		return
	}
	c := h.store.UpsertComment(session.CommentTarget{Type: req.TargetType, ID: req.TargetID}, req.Text)
	render.JSON(w, r, c)
}

// HandleComments lists all comments
func (h *Handler) HandleComments(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, h.store.Comments())
}

// HandleReset clears the session
func (h *Handler) HandleReset(w http.ResponseWriter, r *http.Request) {
	h.store.Reset()
	render.NoContent(w, r)
}
