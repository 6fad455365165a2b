package chi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kailas-cloud/homechef/internal/domain"
	"github.com/kailas-cloud/homechef/internal/domain/conversation"
	"github.com/kailas-cloud/homechef/internal/domain/document"
	"github.com/kailas-cloud/homechef/internal/usecase/vision"
)

// CreateSession handles POST /sessions.
func (s *Server) CreateSession(w http.ResponseWriter, _ *http.Request) {
	info, err := s.sessions.Create()
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, sessionToResponse(info))
}

// GetSession handles GET /sessions/{session}.
func (s *Server) GetSession(w http.ResponseWriter, r *http.Request) {
	info, err := s.sessions.Get(chi.URLParam(r, "session"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sessionToResponse(info))
}

// DeleteSession handles DELETE /sessions/{session}.
func (s *Server) DeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := s.sessions.Delete(chi.URLParam(r, "session")); err != nil {
		s.handleDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListMessages handles GET /sessions/{session}/modes/{mode}/messages.
func (s *Server) ListMessages(w http.ResponseWriter, r *http.Request) {
	mode, err := conversation.ParseMode(chi.URLParam(r, "mode"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	turns, err := s.sessions.History(chi.URLParam(r, "session"), mode)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, HistoryResponse{Mode: string(mode), Items: turnsToResponse(turns)})
}

// ResetMode handles POST /sessions/{session}/modes/{mode}/reset.
func (s *Server) ResetMode(w http.ResponseWriter, r *http.Request) {
	mode, err := conversation.ParseMode(chi.URLParam(r, "mode"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	if err := s.sessions.Reset(chi.URLParam(r, "session"), mode); err != nil {
		s.handleDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Chat handles POST /sessions/{session}/chat.
func (s *Server) Chat(w http.ResponseWriter, r *http.Request) {
	var req MessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, CodeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	r, usage := withUsage(r)
	turn, err := s.sessions.SendGeneral(r.Context(), chi.URLParam(r, "session"), req.Message)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	setUsageHeaders(w, usage)
	writeJSON(w, http.StatusOK, turnToResponse(turn))
}

// Vision handles POST /sessions/{session}/vision (multipart: message, image).
func (s *Server) Vision(w http.ResponseWriter, r *http.Request) {
	if !s.parseMultipart(w, r) {
		return
	}

	data, err := readFormFile(r, "image")
	if err != nil {
		WriteError(w, http.StatusBadRequest, CodeBadRequest, err.Error())
		return
	}

	image, err := vision.DetectImage(data)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	r, usage := withUsage(r)
	turn, err := s.sessions.SendVision(r.Context(), chi.URLParam(r, "session"), r.FormValue("message"), image)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	setUsageHeaders(w, usage)
	writeJSON(w, http.StatusOK, turnToResponse(turn))
}

// UploadDocument handles POST /sessions/{session}/documents (multipart: file).
func (s *Server) UploadDocument(w http.ResponseWriter, r *http.Request) {
	if !s.parseMultipart(w, r) {
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		WriteError(w, http.StatusBadRequest, CodeBadRequest, "form field \"file\" is required")
		return
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(file)
	if err != nil {
		WriteError(w, http.StatusBadRequest, CodeBadRequest, "read file: "+err.Error())
		return
	}
	if ct := http.DetectContentType(data); ct != "application/pdf" {
		s.handleDomainError(w, fmt.Errorf("%w: expected a PDF, got %s", domain.ErrUnsupportedMedia, ct))
		return
	}

	r, usage := withUsage(r)
	res, err := s.sessions.UploadDocument(r.Context(), chi.URLParam(r, "session"),
		document.Document{Name: header.Filename, Data: data})
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	setUsageHeaders(w, usage)
	writeJSON(w, http.StatusOK, UploadResponse{
		Name:     res.Name,
		Segments: res.Segments,
		Cached:   res.Cached,
		Turn:     turnToResponse(res.Turn),
	})
}

// AskDocument handles POST /sessions/{session}/documents/messages.
func (s *Server) AskDocument(w http.ResponseWriter, r *http.Request) {
	var req MessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, CodeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	r, usage := withUsage(r)
	turn, err := s.sessions.AskDocument(r.Context(), chi.URLParam(r, "session"), req.Message)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	setUsageHeaders(w, usage)
	writeJSON(w, http.StatusOK, turnToResponse(turn))
}

// parseMultipart enforces the upload cap and parses the form. It writes the error response itself.
func (s *Server) parseMultipart(w http.ResponseWriter, r *http.Request) bool {
	if r.ContentLength > s.maxUploadBytes {
		WriteError(w, http.StatusRequestEntityTooLarge, CodePayloadTooLarge,
			fmt.Sprintf("upload exceeds %d bytes", s.maxUploadBytes))
		return false
	}
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadBytes)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			WriteError(w, http.StatusRequestEntityTooLarge, CodePayloadTooLarge,
				fmt.Sprintf("upload exceeds %d bytes", tooLarge.Limit))
			return false
		}
		WriteError(w, http.StatusBadRequest, CodeBadRequest, "Invalid multipart body: "+err.Error())
		return false
	}
	return true
}

func readFormFile(r *http.Request, field string) ([]byte, error) {
	file, _, err := r.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, fmt.Errorf("form field %q is required", field)
		}
		return nil, fmt.Errorf("form field %q: %w", field, err)
	}
	defer func(f multipart.File) { _ = f.Close() }(file)

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", field, err)
	}
	return data, nil
}
