package api

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/lumeo-hq/lumeo-api-client/pkg/request"
	"github.com/lumeo-hq/lumeo-api-client/pkg/tokenstore"
)

var avatarBytes = []byte{0x89, 0x50, 0x4e, 0x47}

func newBackend(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()

	mux.HandleFunc("/api/login", func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Fatalf("ParseForm: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		if r.PostFormValue("password") != "secret" {
			w.Write([]byte(`{"data":null,"code":10001,"success":false,"message":"bad credentials"}`))
			return
		}
		w.Write([]byte(`{"data":{"token":"tok-1","expires_in":3600},"code":0,"success":true}`))
	})

	mux.HandleFunc("/api/users", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("page") != "2" {
			t.Fatalf("page query = %q", r.URL.Query().Get("page"))
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":{"records":[{"id":"u3","name":"Mina","email":"m@example.com","status":"active"}],"page":2,"size":1,"total":3},"code":0,"success":true}`))
	})

	mux.HandleFunc("/api/users/u3", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":{"id":"u3","name":"Mina","email":"m@example.com","status":"active"},"code":0,"success":true}`))
	})

	mux.HandleFunc("/api/users/u3/avatar", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		w.Write(avatarBytes)
	})

	return httptest.NewServer(mux)
}

func newClient(t *testing.T, baseURL string, tokens tokenstore.Store) *request.Client {
	t.Helper()
	opts := request.Options{BaseURL: baseURL}
	if tokens != nil {
		opts.Tokens = tokens
	}
	c, err := request.New(opts)
	if err != nil {
		t.Fatalf("request.New: %v", err)
	}
	return c
}

func TestLoginStoresToken(t *testing.T) {
	srv := newBackend(t)
	defer srv.Close()

	tokens, err := tokenstore.NewStore("memory", "", tokenstore.Options{})
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	auth := NewAuthAPI(newClient(t, srv.URL, tokens), tokens)

	res, err := auth.Login(context.Background(), LoginParams{Username: "mina", Password: "secret"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if res.Token != "tok-1" {
		t.Fatalf("token = %q", res.Token)
	}

	stored, err := tokens.Token(context.Background())
	if err != nil || stored != "tok-1" {
		t.Fatalf("stored token = %q err=%v", stored, err)
	}
}

func TestLoginFailureLeavesStoreEmpty(t *testing.T) {
	srv := newBackend(t)
	defer srv.Close()

	tokens, _ := tokenstore.NewStore("memory", "", tokenstore.Options{})
	auth := NewAuthAPI(newClient(t, srv.URL, tokens), tokens)

	_, err := auth.Login(context.Background(), LoginParams{Username: "mina", Password: "wrong"})
	if err == nil {
		t.Fatalf("expected login failure")
	}
	st, ok := err.(*request.Status)
	if !ok {
		t.Fatalf("error is %T, want *request.Status", err)
	}
	if st.Code != 10001 {
		t.Fatalf("code = %d", st.Code)
	}
	if !strings.Contains(st.Message, "Invalid username or password") {
		t.Fatalf("message = %q, want code-table text", st.Message)
	}

	stored, _ := tokens.Token(context.Background())
	if stored != "" {
		t.Fatalf("failed login must not store a token, got %q", stored)
	}
}

func TestListUsers(t *testing.T) {
	srv := newBackend(t)
	defer srv.Close()

	users := NewUserAPI(newClient(t, srv.URL, nil))

	page, err := users.List(context.Background(), ListUsersParams{Page: 2, Size: 1})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if page.Total != 3 || len(page.Records) != 1 {
		t.Fatalf("page = %+v", page)
	}
	if page.Records[0].Name != "Mina" {
		t.Fatalf("record = %+v", page.Records[0])
	}
}

func TestGetUser(t *testing.T) {
	srv := newBackend(t)
	defer srv.Close()

	users := NewUserAPI(newClient(t, srv.URL, nil))

	user, err := users.Get(context.Background(), "u3")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if user.ID != "u3" || user.Email != "m@example.com" {
		t.Fatalf("user = %+v", user)
	}
}

func TestAvatarReturnsRawBytes(t *testing.T) {
	srv := newBackend(t)
	defer srv.Close()

	users := NewUserAPI(newClient(t, srv.URL, nil))

	body, err := users.Avatar(context.Background(), "u3")
	if err != nil {
		t.Fatalf("Avatar: %v", err)
	}
	if !bytes.Equal(body, avatarBytes) {
		t.Fatalf("avatar bytes = %x", body)
	}
}
