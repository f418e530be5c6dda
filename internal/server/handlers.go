package server

import (
	"context"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/QtravelPL/duckling/internal/model"
	"github.com/QtravelPL/duckling/internal/pipeline"
)

// handleParse accepts a form-encoded or JSON body with the fields
// text, dims (comma list), locale, reftime (RFC3339 or unix
// milliseconds) and latent, and responds with the entity array.
func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	client := clientIP(r)
	if !s.limiter.Allow(client) {
		writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
		return
	}

	if s.cfg.MaxBodyBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)
	}

	var body struct {
		Text    string `json:"text"`
		Dims    string `json:"dims"`
		Locale  string `json:"locale"`
		Reftime string `json:"reftime"`
		Latent  bool   `json:"latent"`
	}
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		if err := readJSONBody(w, r, &body); err != nil {
			return
		}
	} else {
		if err := r.ParseForm(); err != nil {
			writeFormError(w, err)
			return
		}
		body.Text = r.FormValue("text")
		body.Dims = r.FormValue("dims")
		body.Locale = r.FormValue("locale")
		body.Reftime = r.FormValue("reftime")
		if v := r.FormValue("latent"); v != "" {
			latent, err := strconv.ParseBool(v)
			if err != nil {
				writeError(w, http.StatusBadRequest, "invalid latent value: "+v)
				return
			}
			body.Latent = latent
		}
	}

	if body.Text == "" {
		writeError(w, http.StatusBadRequest, "text is required")
		return
	}

	req := pipeline.Request{
		Text:    body.Text,
		Options: model.Options{WithLatent: body.Latent},
	}
	if body.Dims != "" {
		targets, err := s.pipeline.Registry().Seals(splitDims(body.Dims))
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		req.Options.Targets = targets
	}
	if body.Locale != "" {
		loc, err := model.ParseLocale(body.Locale)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		req.Context.Locale = loc
	}
	reftime, err := pipeline.ParseReferenceTime(body.Reftime)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	req.Context.ReferenceTime = reftime

	ctx := r.Context()
	if s.cfg.WriteTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.WriteTimeout)
		defer cancel()
	}

	requestID := uuid.New().String()
	start := time.Now()
	res, err := s.pipeline.Parse(ctx, req)
	if err != nil {
		s.logger.Errorw("parse failed",
			"request_id", requestID,
			"client", client,
			"error", err)
		writeError(w, http.StatusInternalServerError, "parse failed")
		return
	}

	s.logger.Infow("parse request",
		"request_id", requestID,
		"client", client,
		"chars", len(res.Text),
		"entities", len(res.Entities),
		"cached", res.Cached,
		"duration", time.Since(start))

	writeJSON(w, http.StatusOK, res.Entities)
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func splitDims(s string) []string {
	var names []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			names = append(names, part)
		}
	}
	return names
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
