package handlers

import (
	"bytes"
	"encoding/json"
	lb "library_backend"
	"net/http"
	"net/http/httptest"
	"testing"

	"library_backend/internal/apperr"
	"library_backend/internal/graph"
	"library_backend/internal/pubsub"
	"library_backend/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newTestRouter(auth *mockAuth, library *mockLibrary) (*gin.Engine, *pubsub.Broker) {
	gin.SetMode(gin.TestMode)
	broker := pubsub.NewBroker()
	svc := &service.Service{Authorization: auth, Library: library}
	schema := graph.NewSchema(svc, broker)
	h := NewHandler(svc, schema, nil)
	return h.InitRoutes(), broker
}

func postGraphQL(t *testing.T, r *gin.Engine, query, bearer string) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(map[string]string{"query": query})
	if err != nil {
		t.Fatal(err)
	}
	req := httptest.NewRequest(http.MethodPost, "/graphql", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", bearer)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHandler_Health(t *testing.T) {
	r, _ := newTestRouter(&mockAuth{}, &mockLibrary{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("health status=%d", w.Code)
	}
}

func TestHandler_QueryThroughFullStack(t *testing.T) {
	library := &mockLibrary{
		BookCountFn: func() (int32, error) { return 7, nil },
	}
	r, _ := newTestRouter(&mockAuth{}, library)

	w := postGraphQL(t, r, `{ bookCount }`, "")
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}

	var resp struct {
		Data struct {
			BookCount int32 `json:"bookCount"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Data.BookCount != 7 {
		t.Fatalf("bookCount = %d", resp.Data.BookCount)
	}
}

func TestHandler_LoginThroughFullStack(t *testing.T) {
	auth := &mockAuth{
		LoginFn: func(username, password string) (string, error) { return "tok123", nil },
	}
	r, _ := newTestRouter(auth, &mockLibrary{})

	w := postGraphQL(t, r, `mutation { login(username: "elaine", password: "secret") { value } }`, "")
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	if !bytes.Contains(w.Body.Bytes(), []byte("tok123")) {
		t.Fatalf("token missing from response: %s", w.Body.String())
	}
}

func TestMiddleware_MissingHeaderIsAnonymous(t *testing.T) {
	auth := &mockAuth{
		ResolveUserFn: func(string) (*lb.User, error) {
			t.Fatal("no token resolution without a header")
			return nil, nil
		},
	}
	r, _ := newTestRouter(auth, &mockLibrary{})

	w := postGraphQL(t, r, `{ me { username } }`, "")
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	if !bytes.Contains(w.Body.Bytes(), []byte(`"me":null`)) {
		t.Fatalf("anonymous me must be null: %s", w.Body.String())
	}
}

func TestMiddleware_MalformedHeaderRejected(t *testing.T) {
	r, _ := newTestRouter(&mockAuth{}, &mockLibrary{})

	for _, header := range []string{"Basic abc", "Bearer"} {
		w := postGraphQL(t, r, `{ bookCount }`, header)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("header %q: status=%d, want 401", header, w.Code)
		}
	}
}

func TestMiddleware_InvalidTokenRejected(t *testing.T) {
	auth := &mockAuth{
		ResolveUserFn: func(string) (*lb.User, error) {
			return nil, apperr.Authentication("invalid or expired token")
		},
	}
	r, _ := newTestRouter(auth, &mockLibrary{})

	w := postGraphQL(t, r, `{ bookCount }`, "Bearer garbage")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status=%d, want 401", w.Code)
	}
}

func TestMiddleware_ValidTokenPopulatesCurrentUser(t *testing.T) {
	user := &lb.User{ID: primitive.NewObjectID(), Username: "elaine", FavoriteGenre: "scifi"}
	auth := &mockAuth{
		ResolveUserFn: func(token string) (*lb.User, error) {
			if token != "tok123" {
				t.Fatalf("unexpected token %q", token)
			}
			return user, nil
		},
	}
	r, _ := newTestRouter(auth, &mockLibrary{})

	w := postGraphQL(t, r, `{ me { username } }`, "Bearer tok123")
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	if !bytes.Contains(w.Body.Bytes(), []byte(`"username":"elaine"`)) {
		t.Fatalf("me must resolve the token's user: %s", w.Body.String())
	}
}

func TestHandler_UnauthenticatedMutationErrorCode(t *testing.T) {
	library := &mockLibrary{
		AddAuthorFn: func(name string, born *int32) (*lb.Author, error) {
			t.Fatal("service must not be reached")
			return nil, nil
		},
	}
	r, _ := newTestRouter(&mockAuth{}, library)

	w := postGraphQL(t, r, `mutation { addAuthor(name: "Ann Leckie") { name } }`, "")
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}

	var resp struct {
		Errors []struct {
			Message    string                 `json:"message"`
			Extensions map[string]interface{} `json:"extensions"`
		} `json:"errors"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Errors) != 1 || resp.Errors[0].Message != "not authenticated" {
		t.Fatalf("errors = %+v", resp.Errors)
	}
	if resp.Errors[0].Extensions["code"] != "UNAUTHENTICATED" {
		t.Fatalf("extensions = %v", resp.Errors[0].Extensions)
	}
}
