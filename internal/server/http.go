// Package server exposes calculator sessions over HTTP.
package server

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/karupanerura/keypad-calculator/internal/calculator"
	"github.com/karupanerura/keypad-calculator/internal/keypad"
)

const basePath = "/v1/sessions"

type session struct {
	mu sync.Mutex

	id         string
	createTime time.Time
	updateTime time.Time
	calc       *calculator.Session
}

type sessionView struct {
	Name       string    `json:"name"`
	ID         string    `json:"id"`
	CreateTime time.Time `json:"createTime"`
	UpdateTime time.Time `json:"updateTime"`
	calculator.View
}

// view must be called with s.mu held.
func (s *session) view() sessionView {
	return sessionView{
		Name:       basePath + "/" + s.id,
		ID:         s.id,
		CreateTime: s.createTime,
		UpdateTime: s.updateTime,
		View:       s.calc.View(),
	}
}

type pressRequest struct {
	Keys []string `json:"keys"`
}

type pressResponse struct {
	Results []keypad.KeyResult `json:"results"`
	Session sessionView        `json:"session"`
}

type httpHandler struct {
	keymap   *keypad.Keymap
	sessions sync.Map
	now      func() time.Time
}

func (h *httpHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != basePath && !strings.HasPrefix(r.URL.Path, basePath+"/") {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}

	if r.URL.Path == basePath {
		switch r.Method {
		case http.MethodGet:
			h.listSessions(w, r)
			return

		case http.MethodPost:
			h.createSession(w, r)
			return

		default:
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
			return
		}
	}

	sessionID := strings.TrimPrefix(r.URL.Path, basePath+"/")
	if strings.Contains(sessionID, "/") {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}
	if i := strings.LastIndexByte(sessionID, ':'); i != -1 {
		customMethod := sessionID[i+1:]
		sessionID = sessionID[:i]
		if r.Method != http.MethodPost {
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
			return
		}
		switch customMethod {
		case "press":
			h.pressKeys(w, r, sessionID)
			return

		case "clear":
			h.clearSession(w, r, sessionID)
			return

		default:
			http.Error(w, "Not Found", http.StatusNotFound)
			return
		}
	}

	switch r.Method {
	case http.MethodGet:
		h.getSession(w, r, sessionID)
		return

	case http.MethodDelete:
		h.deleteSession(w, r, sessionID)
		return

	default:
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}
}

func (h *httpHandler) createSession(w http.ResponseWriter, r *http.Request) {
	now := h.now().UTC()
	s := &session{
		id:         uuid.NewString(),
		createTime: now,
		updateTime: now,
		calc:       calculator.NewSession(),
	}
	h.sessions.Store(s.id, s)

	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, s.view())
}

func (h *httpHandler) listSessions(w http.ResponseWriter, r *http.Request) {
	sessions := []*session{}
	h.sessions.Range(func(key, value any) bool {
		sessions = append(sessions, value.(*session))
		return true
	})
	sort.Slice(sessions, func(i, j int) bool {
		if sessions[i].createTime.Equal(sessions[j].createTime) {
			return sessions[i].id < sessions[j].id
		}
		return sessions[i].createTime.Before(sessions[j].createTime)
	})

	views := make([]sessionView, len(sessions))
	for i, s := range sessions {
		s.mu.Lock()
		views[i] = s.view()
		s.mu.Unlock()
	}
	writeJSON(w, http.StatusOK, map[string][]sessionView{"sessions": views})
}

func (h *httpHandler) lookup(w http.ResponseWriter, id string) (*session, bool) {
	v, ok := h.sessions.Load(id)
	if !ok {
		http.Error(w, "Not Found", http.StatusNotFound)
		return nil, false
	}
	return v.(*session), true
}

func (h *httpHandler) getSession(w http.ResponseWriter, r *http.Request, id string) {
	s, ok := h.lookup(w, id)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, s.view())
}

func (h *httpHandler) pressKeys(w http.ResponseWriter, r *http.Request, id string) {
	defer r.Body.Close()

	s, ok := h.lookup(w, id)
	if !ok {
		return
	}

	var req pressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("failed to decode request body: %v", err)
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	if len(req.Keys) == 0 {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	results, err := keypad.PressAll(r.Context(), s.calc, h.keymap, req.Keys)
	if err != nil {
		log.Printf("press interrupted: %v", err)
	}
	s.updateTime = h.now().UTC()
	writeJSON(w, http.StatusOK, pressResponse{Results: results, Session: s.view()})
}

func (h *httpHandler) clearSession(w http.ResponseWriter, r *http.Request, id string) {
	s, ok := h.lookup(w, id)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.calc.Clear()
	s.updateTime = h.now().UTC()
	writeJSON(w, http.StatusOK, s.view())
}

func (h *httpHandler) deleteSession(w http.ResponseWriter, r *http.Request, id string) {
	if _, loaded := h.sessions.LoadAndDelete(id); !loaded {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, struct{}{})
}

// NewHTTPHandler returns a handler whose sessions press keys through keymap.
func NewHTTPHandler(keymap *keypad.Keymap) http.Handler {
	return &httpHandler{keymap: keymap, now: time.Now}
}

// ListenAndServe serves h on addr until ctx is done.
func ListenAndServe(ctx context.Context, addr string, h http.Handler) error {
	srv := &http.Server{Addr: addr, Handler: h, ReadHeaderTimeout: 10 * time.Second}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("failed to shutdown server: %v", err)
		}
	}()

	log.Printf("listening on %s", addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("srv.ListenAndServe: %w", err)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	if err := resJSON(w, status, v); err != nil {
		log.Printf("failed to write response: %v", err)
	}
}

func resJSON(w http.ResponseWriter, status int, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("json.MarshalIndent: %w", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Length", strconv.Itoa(len(b)+1))
	w.WriteHeader(status)

	if _, err = w.Write(b); err != nil {
		return fmt.Errorf("w.Write: %w", err)
	}
	if _, err = io.WriteString(w, "\n"); err != nil {
		return fmt.Errorf("io.WriteString: %w", err)
	}
	return nil
}
