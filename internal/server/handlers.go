package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	kgerrors "github.com/matzehuels/kgviz/pkg/errors"
	pkgio "github.com/matzehuels/kgviz/pkg/io"
	"github.com/matzehuels/kgviz/pkg/pipeline"
)

// defaultSource names request documents that carry no source parameter.
const defaultSource = "request"

// errorResponse is the body of every non-2xx response.
type errorResponse struct {
	Code    kgerrors.Code `json:"code"`
	Message string        `json:"message"`
	Missing []string      `json:"missing,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, "ok\n")
}

func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	logger := loggerFromContext(r.Context(), s.logger)

	r.Body = http.MaxBytesReader(w, r.Body, s.opts.MaxBodyBytes)
	data, err := io.ReadAll(r.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge,
				kgerrors.New(kgerrors.ErrCodeInvalidInput, "request body exceeds %d bytes", tooLarge.Limit))
			return
		}
		writeError(w, http.StatusBadRequest, kgerrors.Wrap(kgerrors.ErrCodeInvalidInput, err, "read request body"))
		return
	}

	query := r.URL.Query()
	validate := s.opts.Validate
	if v := query.Get("validate"); v != "" {
		validate, err = strconv.ParseBool(v)
		if err != nil {
			writeError(w, http.StatusBadRequest,
				kgerrors.New(kgerrors.ErrCodeInvalidInput, "invalid validate parameter: %q", v))
			return
		}
	}
	source := query.Get("source")
	if source == "" {
		source = defaultSource
	}

	res, err := s.runner.ConvertBytes(r.Context(), source, data, pipeline.Options{
		SkipValidate: !validate,
		GeneratedAt:  s.opts.GeneratedAt,
		Logger:       logger,
	})
	if err != nil {
		logger.Warn("conversion failed", "source", source, "err", err)
		writeError(w, statusFor(err), err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := pkgio.WriteGraph(res.Graph, w); err != nil {
		logger.Error("write response", "err", err)
	}
}

// statusFor maps an error code onto an HTTP status.
func statusFor(err error) int {
	switch kgerrors.GetCode(err) {
	case kgerrors.ErrCodeInvalidInput, kgerrors.ErrCodeInvalidStructure, kgerrors.ErrCodeDecode, kgerrors.ErrCodeInvalidPath:
		return http.StatusBadRequest
	case kgerrors.ErrCodeGraphIntegrity:
		return http.StatusUnprocessableEntity
	case kgerrors.ErrCodeFileNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	body := errorResponse{
		Code:    kgerrors.GetCode(err),
		Message: kgerrors.UserMessage(err),
		Missing: kgerrors.MissingIDs(err),
	}
	if body.Code == "" {
		body.Code = kgerrors.ErrCodeInternal
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
