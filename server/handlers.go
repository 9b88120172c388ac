package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"path"
	"strings"

	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"richdoc/common"
	"richdoc/convert"
	"richdoc/markup"
	"richdoc/misc"
)

const markdownType = "text/markdown"

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"status":  "ok",
		"version": misc.GetVersion(),
	})
}

// handleRender turns request body into document tree. Output format comes
// from "format" query parameter, input is treated as markdown when
// "input=markdown" is requested or body content type says so.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	log := s.log.With(zap.String("id", middleware.GetReqID(r.Context())))

	format := s.format
	if name := r.URL.Query().Get("format"); name != "" {
		f, err := common.ParseOutputFmt(name)
		if err != nil {
			jsonError(w, fmt.Sprintf("unsupported format %q, use one of %s", name, strings.Join(common.OutputFmtNames(), ", ")), http.StatusBadRequest)
			return
		}
		format = f
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.conf.MaxRequestSize)
	raw, err := io.ReadAll(r.Body)
	if err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			jsonError(w, fmt.Sprintf("request exceeds max size (%d bytes)", tooBig.Limit), http.StatusRequestEntityTooLarge)
			return
		}
		jsonError(w, "failed to read request body", http.StatusBadRequest)
		return
	}

	contentType := r.Header.Get("Content-Type")
	text, err := s.decode(raw, contentType, isMarkdown(r, contentType))
	if err != nil {
		log.Warn("Unable to decode request", zap.Error(err))
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	tree, err := s.gen.Generate(text)
	if err != nil {
		s.report(r, raw, format, nil)
		log.Error("Unable to generate document", zap.Error(err))
		jsonError(w, "unable to generate document", http.StatusInternalServerError)
		return
	}
	data, err := convert.Encode(tree, format)
	if err != nil {
		s.report(r, raw, format, nil)
		log.Error("Unable to encode document", zap.Error(err))
		jsonError(w, "unable to encode document", http.StatusInternalServerError)
		return
	}

	s.report(r, raw, format, data)

	w.Header().Set("Content-Type", format.ContentType())
	w.Write(data)
}

// report keeps request body and result (nil on failure) in debug report.
// Only first conf.ReportRequests requests are stored.
func (s *Server) report(r *http.Request, raw []byte, format common.OutputFmt, data []byte) {
	if s.rpt == nil {
		return
	}
	n := s.reported.Add(1)
	if n > s.conf.ReportRequests {
		if n == s.conf.ReportRequests+1 {
			s.log.Info("Debug report request limit reached, further requests are not stored", zap.Int64("limit", s.conf.ReportRequests))
		}
		return
	}
	id := middleware.GetReqID(r.Context())
	s.rpt.StoreData(path.Join("requests", id+".src"), raw)
	if data != nil {
		s.rpt.StoreData(path.Join("requests", id+format.Ext()), data)
	}
}

func (s *Server) decode(raw []byte, contentType string, markdown bool) (string, error) {
	ur, err := markup.NewReader(bytes.NewReader(raw), contentType, nil)
	if err != nil {
		return "", err
	}
	text, err := io.ReadAll(ur)
	if err != nil {
		return "", fmt.Errorf("unable to decode request body: %w", err)
	}
	if !markdown {
		return string(text), nil
	}
	return markup.FromMarkdown(text)
}

func isMarkdown(r *http.Request, contentType string) bool {
	if strings.EqualFold(r.URL.Query().Get("input"), "markdown") {
		return true
	}
	mt, _, err := mime.ParseMediaType(contentType)
	return err == nil && mt == markdownType
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
