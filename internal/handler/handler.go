// Package handler exposes the assessment engine over a JSON HTTP API
// and keeps the in-memory session registry.
package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/abs6187/talentscout/internal/engine"
	"github.com/abs6187/talentscout/internal/i18n"
	"github.com/abs6187/talentscout/internal/model"
	"github.com/abs6187/talentscout/internal/resume"
)

// maxResumeBytes caps resume uploads at 10 MiB.
const maxResumeBytes = 10 << 20

// Handler holds shared dependencies for HTTP handlers.
type Handler struct {
	registry  *Registry
	generator *engine.Generator
	evaluator *engine.Evaluator
	config    model.Config
}

// New creates a new Handler.
func New(reg *Registry, gen *engine.Generator, eval *engine.Evaluator, cfg model.Config) *Handler {
	return &Handler{registry: reg, generator: gen, evaluator: eval, config: cfg}
}

// Routes registers all HTTP routes.
func (h *Handler) Routes(r chi.Router) {
	r.Post("/api/sessions", h.handleCreateSession)
	r.Get("/api/sessions/{sessionID}/question", h.handleNextQuestion)
	r.Post("/api/sessions/{sessionID}/answer", h.handleAnswer)
	r.Post("/api/sessions/{sessionID}/skip", h.handleSkip)
	r.Post("/api/sessions/{sessionID}/complete", h.handleComplete)
	r.Get("/api/sessions/{sessionID}/report", h.handleReport)
}

type createSessionRequest struct {
	FullName        string `json:"full_name"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	Location        string `json:"location"`
	YearsExperience int    `json:"years_experience"`
	DesiredPosition string `json:"desired_position"`
	TechStack       string `json:"tech_stack"`
	ResumeText      string `json:"resume_text,omitempty"`
}

type createSessionResponse struct {
	ID          string                    `json:"id"`
	Persona     model.Persona             `json:"persona"`
	State       model.SessionState        `json:"state"`
	Consistency *model.ConsistencySummary `json:"consistency,omitempty"`
	Message     string                    `json:"message"`
}

// handleCreateSession builds a profile from the request, runs the resume
// consistency check when resume text is available, and starts a session.
// Both application/json and multipart/form-data (with a "resume" file)
// are accepted.
func (h *Handler) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	req, resumeText, err := h.decodeCreateRequest(r)
	if err != nil {
		h.clientError(w, r, http.StatusBadRequest, err)
		return
	}

	profile := model.CandidateProfile{
		FullName:        req.FullName,
		Email:           req.Email,
		Phone:           req.Phone,
		Location:        req.Location,
		YearsExperience: req.YearsExperience,
		DesiredPosition: req.DesiredPosition,
		TechStack:       model.ParseTechStack(req.TechStack),
	}

	var consistency *model.ConsistencySummary
	if strings.TrimSpace(resumeText) != "" {
		summary := resume.Check(profile, resumeText)
		consistency = &summary
	}

	sess := engine.NewSession(h.config, h.generator, h.evaluator)
	if err := sess.Begin(profile, consistency); err != nil {
		var verr *model.ValidationError
		if errors.As(err, &verr) {
			h.clientError(w, r, http.StatusUnprocessableEntity, verr)
			return
		}
		h.serverError(w, r, err)
		return
	}

	id := h.registry.Add(sess)
	slog.Info("session created", "session", id, "persona", sess.Persona(), "candidate", profile.Summary())

	writeJSON(w, http.StatusCreated, createSessionResponse{
		ID:          id,
		Persona:     sess.Persona(),
		State:       sess.State(),
		Consistency: consistency,
		Message:     i18n.T(r.Context(), "SessionStarted"),
	})
}

func (h *Handler) decodeCreateRequest(r *http.Request) (createSessionRequest, string, error) {
	var req createSessionRequest

	ct := r.Header.Get("Content-Type")
	if strings.HasPrefix(ct, "multipart/form-data") {
		if err := r.ParseMultipartForm(maxResumeBytes); err != nil {
			return req, "", err
		}
		req.FullName = r.FormValue("full_name")
		req.Email = r.FormValue("email")
		req.Phone = r.FormValue("phone")
		req.Location = r.FormValue("location")
		req.DesiredPosition = r.FormValue("desired_position")
		req.TechStack = r.FormValue("tech_stack")
		if y := r.FormValue("years_experience"); y != "" {
			if err := json.Unmarshal([]byte(y), &req.YearsExperience); err != nil {
				return req, "", errors.New("years_experience must be an integer")
			}
		}

		text, err := h.extractResume(r)
		if err != nil {
			return req, "", err
		}
		return req, text, nil
	}

	if err := json.NewDecoder(io.LimitReader(r.Body, maxResumeBytes)).Decode(&req); err != nil {
		return req, "", err
	}
	return req, req.ResumeText, nil
}

// extractResume pulls text out of an optional uploaded resume file. Any
// extraction failure means "no resume available"; intake never fails on
// a bad upload.
func (h *Handler) extractResume(r *http.Request) (string, error) {
	file, header, err := r.FormFile("resume")
	if errors.Is(err, http.ErrMissingFile) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxResumeBytes))
	if err != nil {
		return "", err
	}

	text, err := resume.ExtractText(header.Filename, data)
	if err != nil {
		slog.Warn("resume extraction failed, continuing without resume",
			"file", header.Filename, "error", err)
		return "", nil
	}
	return text, nil
}

type questionResponse struct {
	Question *model.Question    `json:"question,omitempty"`
	State    model.SessionState `json:"state"`
	Exit     model.ExitReason   `json:"exit_reason,omitempty"`
	Message  string             `json:"message"`
}

func (h *Handler) handleNextQuestion(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "sessionID")

	var resp questionResponse
	err := h.registry.With(id, func(sess *engine.Session) error {
		q, err := sess.NextQuestion(r.Context())
		resp.State = sess.State()
		resp.Exit = sess.ExitReason()
		if err != nil {
			return err
		}
		resp.Question = &q
		resp.Message = i18n.Td(r.Context(), "QuestionOf", map[string]any{
			"Number": q.ID,
			"Max":    h.config.MaxQuestions,
		})
		return nil
	})
	if errors.Is(err, engine.ErrSessionTerminal) {
		resp.Message = h.terminalMessage(r, resp.State)
		writeJSON(w, http.StatusOK, resp)
		return
	}
	if err != nil {
		h.routeError(w, r, id, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

type answerRequest struct {
	Text string `json:"text"`
}

type answerResponse struct {
	Evaluation *model.Evaluation  `json:"evaluation,omitempty"`
	State      model.SessionState `json:"state"`
	Exit       model.ExitReason   `json:"exit_reason,omitempty"`
	Message    string             `json:"message"`
}

func (h *Handler) handleAnswer(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "sessionID")

	var req answerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.clientError(w, r, http.StatusBadRequest, err)
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		h.clientError(w, r, http.StatusBadRequest, errors.New(i18n.T(r.Context(), "ErrInvalidRequest")))
		return
	}

	var resp answerResponse
	err := h.registry.With(id, func(sess *engine.Session) error {
		ev, err := sess.SubmitAnswer(r.Context(), req.Text)
		resp.State = sess.State()
		resp.Exit = sess.ExitReason()
		if err != nil {
			return err
		}
		resp.Evaluation = ev
		return nil
	})
	if err != nil {
		h.routeError(w, r, id, err)
		return
	}

	if resp.State.Terminal() {
		resp.Message = h.terminalMessage(r, resp.State)
	} else {
		resp.Message = i18n.T(r.Context(), "AnswerRecorded")
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleSkip(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "sessionID")

	var resp answerResponse
	err := h.registry.With(id, func(sess *engine.Session) error {
		if err := sess.Skip(); err != nil {
			return err
		}
		resp.State = sess.State()
		return nil
	})
	if err != nil {
		h.routeError(w, r, id, err)
		return
	}

	resp.Message = i18n.T(r.Context(), "QuestionSkipped")
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleComplete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "sessionID")

	var resp answerResponse
	err := h.registry.With(id, func(sess *engine.Session) error {
		if err := sess.CompleteEarly(); err != nil {
			return err
		}
		resp.State = sess.State()
		resp.Exit = sess.ExitReason()
		return nil
	})
	switch {
	case errors.Is(err, ErrSessionNotFound), errors.Is(err, engine.ErrSessionTerminal):
		h.routeError(w, r, id, err)
		return
	case err != nil:
		// Early completion without an answered question.
		h.clientError(w, r, http.StatusConflict, err)
		return
	}

	resp.Message = h.terminalMessage(r, resp.State)
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleReport(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "sessionID")

	var payload model.ReportPayload
	err := h.registry.With(id, func(sess *engine.Session) error {
		p, err := sess.Report()
		if err != nil {
			return err
		}
		payload = p
		return nil
	})
	if errors.Is(err, ErrSessionNotFound) {
		h.clientError(w, r, http.StatusNotFound, errors.New(i18n.T(r.Context(), "ErrSessionNotFound")))
		return
	}
	if err != nil {
		h.clientError(w, r, http.StatusConflict, errors.New(i18n.T(r.Context(), "ErrReportNotReady")))
		return
	}
	writeJSON(w, http.StatusOK, payload)
}

func (h *Handler) terminalMessage(r *http.Request, state model.SessionState) string {
	if state == model.StateAborted {
		return i18n.T(r.Context(), "SessionAborted")
	}
	return i18n.T(r.Context(), "SessionCompleted")
}

// routeError maps engine errors onto HTTP statuses.
func (h *Handler) routeError(w http.ResponseWriter, r *http.Request, id string, err error) {
	switch {
	case errors.Is(err, ErrSessionNotFound):
		h.clientError(w, r, http.StatusNotFound, errors.New(i18n.T(r.Context(), "ErrSessionNotFound")))
	case errors.Is(err, engine.ErrSessionTerminal):
		h.clientError(w, r, http.StatusConflict, errors.New(i18n.T(r.Context(), "ErrSessionTerminal")))
	case errors.Is(err, engine.ErrNoPendingQuestion):
		h.clientError(w, r, http.StatusConflict, errors.New(i18n.T(r.Context(), "ErrNoPendingQuestion")))
	default:
		slog.Error("request failed", "session", id, "error", err)
		h.serverError(w, r, err)
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *Handler) clientError(w http.ResponseWriter, r *http.Request, status int, err error) {
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func (h *Handler) serverError(w http.ResponseWriter, r *http.Request, err error) {
	slog.Error("internal error", "path", r.URL.Path, "error", err)
	writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response", "error", err)
	}
}
