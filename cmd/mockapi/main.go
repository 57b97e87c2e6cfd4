package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"strconv"
	"sync"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// mockapi is a local stand-in for the backend: every JSON endpoint answers
// with the {data, code, success, message} envelope the client expects, plus a
// few endpoints that deliberately misbehave to exercise the failure taxonomy.

type envelope struct {
	Data    any    `json:"data"`
	Code    int    `json:"code"`
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

type user struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Status string `json:"status"`
}

type page struct {
	Records []user `json:"records"`
	Page    int    `json:"page"`
	Size    int    `json:"size"`
	Total   int    `json:"total"`
}

type server struct {
	mu    sync.RWMutex
	users []user
	next  int
	log   *zap.SugaredLogger
}

func main() {
	addr := flag.String("addr", ":8090", "listen address")
	flag.Parse()

	zl, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer zl.Sync()
	log := zl.Sugar()

	s := &server{
		users: []user{
			{ID: "u1", Name: "Asha", Email: "asha@example.com", Status: "active"},
			{ID: "u2", Name: "Ravi", Email: "ravi@example.com", Status: "active"},
			{ID: "u3", Name: "Mina", Email: "mina@example.com", Status: "suspended"},
		},
		next: 4,
		log:  log,
	}

	r := mux.NewRouter()
	r.HandleFunc("/api/login", s.login).Methods(http.MethodPost)
	r.HandleFunc("/api/logout", s.logout).Methods(http.MethodPost)
	r.HandleFunc("/api/users", s.listUsers).Methods(http.MethodGet)
	r.HandleFunc("/api/users", s.createUser).Methods(http.MethodPost)
	r.HandleFunc("/api/users/{id}", s.getUser).Methods(http.MethodGet)
	r.HandleFunc("/api/users/{id}", s.deleteUser).Methods(http.MethodDelete)
	r.HandleFunc("/api/users/{id}/avatar", s.avatar).Methods(http.MethodGet)

	// Deliberately broken endpoints for demoing the failure taxonomy.
	r.HandleFunc("/api/demo/business-error", s.businessError).Methods(http.MethodGet)
	r.HandleFunc("/api/demo/contradiction", s.contradiction).Methods(http.MethodGet)
	r.HandleFunc("/api/demo/teapot", s.teapot).Methods(http.MethodGet)

	log.Infow("mockapi listening", "addr", *addr)
	if err := http.ListenAndServe(*addr, r); err != nil {
		log.Fatalw("mockapi server failed", "error", err)
	}
}

func writeEnvelope(w http.ResponseWriter, status int, env envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(env)
}

func (s *server) login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeEnvelope(w, http.StatusBadRequest, envelope{Code: 40001, Message: "malformed form body"})
		return
	}
	username := r.PostFormValue("username")
	password := r.PostFormValue("password")
	if username == "" || password == "" {
		writeEnvelope(w, http.StatusOK, envelope{Code: 10001, Message: "missing credentials"})
		return
	}

	s.log.Infow("login", "username", username)
	writeEnvelope(w, http.StatusOK, envelope{
		Data:    map[string]any{"token": "mock-token-" + username, "expires_in": 3600},
		Success: true,
	})
}

func (s *server) logout(w http.ResponseWriter, _ *http.Request) {
	writeEnvelope(w, http.StatusOK, envelope{Success: true, Message: "signed out"})
}

func (s *server) listUsers(w http.ResponseWriter, r *http.Request) {
	pageNum, _ := strconv.Atoi(r.URL.Query().Get("page"))
	size, _ := strconv.Atoi(r.URL.Query().Get("size"))
	if pageNum < 1 {
		pageNum = 1
	}
	if size < 1 {
		size = 10
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	total := len(s.users)
	start := (pageNum - 1) * size
	if start > total {
		start = total
	}
	end := start + size
	if end > total {
		end = total
	}

	writeEnvelope(w, http.StatusOK, envelope{
		Data: page{
			Records: s.users[start:end],
			Page:    pageNum,
			Size:    size,
			Total:   total,
		},
		Success: true,
	})
}

func (s *server) getUser(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.ID == id {
			writeEnvelope(w, http.StatusOK, envelope{Data: u, Success: true})
			return
		}
	}
	writeEnvelope(w, http.StatusNotFound, envelope{Code: 40401, Message: fmt.Sprintf("user %s not found", id)})
}

func (s *server) createUser(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil || in.Name == "" {
		writeEnvelope(w, http.StatusOK, envelope{Code: 40002, Message: "name is required"})
		return
	}

	s.mu.Lock()
	u := user{ID: fmt.Sprintf("u%d", s.next), Name: in.Name, Email: in.Email, Status: "active"}
	s.next++
	s.users = append(s.users, u)
	s.mu.Unlock()

	writeEnvelope(w, http.StatusOK, envelope{Data: u, Success: true, Message: "user created"})
}

func (s *server) deleteUser(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	s.mu.Lock()
	defer s.mu.Unlock()
	for i, u := range s.users {
		if u.ID == id {
			s.users = append(s.users[:i], s.users[i+1:]...)
			writeEnvelope(w, http.StatusOK, envelope{Success: true, Message: "user deleted"})
			return
		}
	}
	writeEnvelope(w, http.StatusNotFound, envelope{Code: 40401, Message: fmt.Sprintf("user %s not found", id)})
}

// avatar serves a tiny binary blob with an image content type so clients can
// exercise the non-envelope path.
func (s *server) avatar(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "image/png")
	w.Write([]byte{0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a})
}

func (s *server) businessError(w http.ResponseWriter, _ *http.Request) {
	writeEnvelope(w, http.StatusOK, envelope{Code: 42001, Message: "quota exceeded"})
}

// contradiction answers an error status with a success envelope, which a
// correct backend must never do.
func (s *server) contradiction(w http.ResponseWriter, _ *http.Request) {
	writeEnvelope(w, http.StatusInternalServerError, envelope{Success: true, Message: "all good"})
}

func (s *server) teapot(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusTeapot)
}
