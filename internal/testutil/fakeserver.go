package testutil

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
)

// FakeServerSecret signs tokens issued by FakeServer.
const FakeServerSecret = "fake-server-secret"

// RecordedRequest is one request seen by FakeServer.
type RecordedRequest struct {
	Method        string
	Path          string
	Authorization string
	ContentType   string
	RequestID     string
	Body          string
}

type fakeUser struct {
	id       int64
	email    string
	password string
}

type fakeTodo struct {
	ID     int64  `json:"id"`
	Title  string `json:"title"`
	Done   bool   `json:"done"`
	UserID int64  `json:"userId"`
}

type cannedResponse struct {
	status      int
	contentType string
	body        string
}

// FakeServer serves the task HTTP API from memory on an httptest server.
// Tokens are HS256 JWTs with sub, email, iat and exp claims; todo ids are
// JSON numbers and lists are returned newest first.
type FakeServer struct {
	*httptest.Server

	mu       sync.Mutex
	users    map[string]*fakeUser
	todos    map[int64]*fakeTodo
	nextUser int64
	nextTodo int64
	requests []RecordedRequest
	canned   map[string]cannedResponse
	tokenTTL time.Duration
}

// NewFakeServer starts a FakeServer that is closed when the test ends.
func NewFakeServer(tb testing.TB) *FakeServer {
	tb.Helper()
	s := &FakeServer{
		users:    make(map[string]*fakeUser),
		todos:    make(map[int64]*fakeTodo),
		canned:   make(map[string]cannedResponse),
		tokenTTL: time.Hour,
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(s.record, s.cannedMiddleware)

	e.GET("/api/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.POST("/api/auth/register", s.register)
	e.POST("/api/auth/login", s.login)

	g := e.Group("/api/todos", s.requireToken)
	g.GET("", s.listTodos)
	g.POST("", s.createTodo)
	g.PATCH("/:id/toggle", s.toggleTodo)
	g.DELETE("/:id", s.deleteTodo)

	s.Server = httptest.NewServer(e)
	tb.Cleanup(s.Close)
	return s
}

// Respond makes the next requests to method+path return a canned response
// until cleared with ClearResponse.
func (s *FakeServer) Respond(method, path string, status int, contentType, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.canned[method+" "+path] = cannedResponse{status: status, contentType: contentType, body: body}
}

// ClearResponse removes a canned response.
func (s *FakeServer) ClearResponse(method, path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.canned, method+" "+path)
}

// Requests returns the requests received so far.
func (s *FakeServer) Requests() []RecordedRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]RecordedRequest(nil), s.requests...)
}

// ResetRequests clears the request log.
func (s *FakeServer) ResetRequests() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests = nil
}

// AddUser creates an account and returns a valid token for it.
func (s *FakeServer) AddUser(email, password string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := s.addUserLocked(email, password)
	token, _ := s.tokenFor(u, time.Now())
	return token
}

// AddTodo creates a todo for an existing user and returns its id.
func (s *FakeServer) AddTodo(email, title string, done bool) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[strings.ToLower(email)]
	if !ok {
		panic("fake server: unknown user " + email)
	}
	return s.addTodoLocked(u.id, title, done).ID
}

// ExpiredToken returns a correctly signed token for email that has already
// expired.
func (s *FakeServer) ExpiredToken(email string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[strings.ToLower(email)]
	if !ok {
		panic("fake server: unknown user " + email)
	}
	token, _ := s.tokenFor(u, time.Now().Add(-2*s.tokenTTL))
	return token
}

func (s *FakeServer) addUserLocked(email, password string) *fakeUser {
	s.nextUser++
	u := &fakeUser{id: s.nextUser, email: strings.ToLower(email), password: password}
	s.users[u.email] = u
	return u
}

func (s *FakeServer) addTodoLocked(userID int64, title string, done bool) *fakeTodo {
	s.nextTodo++
	t := &fakeTodo{ID: s.nextTodo, Title: title, Done: done, UserID: userID}
	s.todos[t.ID] = t
	return t
}

func (s *FakeServer) tokenFor(u *fakeUser, issued time.Time) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   strconv.FormatInt(u.id, 10),
		"email": u.email,
		"iat":   issued.Unix(),
		"exp":   issued.Add(s.tokenTTL).Unix(),
	})
	return token.SignedString([]byte(FakeServerSecret))
}

func (s *FakeServer) record(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := c.Request()
		var body []byte
		if req.Body != nil {
			body, _ = io.ReadAll(req.Body)
			req.Body = io.NopCloser(bytes.NewReader(body))
		}
		s.mu.Lock()
		s.requests = append(s.requests, RecordedRequest{
			Method:        req.Method,
			Path:          req.URL.Path,
			Authorization: req.Header.Get("Authorization"),
			ContentType:   req.Header.Get("Content-Type"),
			RequestID:     req.Header.Get("X-Request-Id"),
			Body:          string(body),
		})
		s.mu.Unlock()
		return next(c)
	}
}

func (s *FakeServer) cannedMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := c.Request()
		s.mu.Lock()
		resp, ok := s.canned[req.Method+" "+req.URL.Path]
		s.mu.Unlock()
		if !ok {
			return next(c)
		}
		return c.Blob(resp.status, resp.contentType, []byte(resp.body))
	}
}

func (s *FakeServer) requireToken(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		auth := c.Request().Header.Get("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Missing Bearer token"})
		}
		tok, err := jwt.Parse(strings.TrimPrefix(auth, "Bearer "), func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return []byte(FakeServerSecret), nil
		})
		if err != nil || !tok.Valid {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid token"})
		}
		claims, ok := tok.Claims.(jwt.MapClaims)
		if !ok {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid token"})
		}
		sub, _ := claims["sub"].(string)
		uid, err := strconv.ParseInt(sub, 10, 64)
		if err != nil {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid token"})
		}
		c.Set("uid", uid)
		return next(c)
	}
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *FakeServer) register(c echo.Context) error {
	var req credentials
	if err := c.Bind(&req); err != nil || req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "email and password are required"})
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.users[strings.ToLower(req.Email)]; exists {
		return c.JSON(http.StatusConflict, map[string]string{"error": "Email already in use"})
	}
	u := s.addUserLocked(req.Email, req.Password)
	token, err := s.tokenFor(u, time.Now())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"token": token})
}

func (s *FakeServer) login(c echo.Context) error {
	var req credentials
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "malformed request"})
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[strings.ToLower(req.Email)]
	if !ok || u.password != req.Password {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Bad credentials"})
	}
	token, err := s.tokenFor(u, time.Now())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"token": token})
}

func (s *FakeServer) listTodos(c echo.Context) error {
	uid := c.Get("uid").(int64)
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []fakeTodo{}
	for _, t := range s.todos {
		if t.UserID == uid {
			out = append(out, *t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return c.JSON(http.StatusOK, out)
}

func (s *FakeServer) createTodo(c echo.Context) error {
	uid := c.Get("uid").(int64)
	var req struct {
		Title string `json:"title"`
	}
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.Title) == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "title must not be blank"})
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	t := s.addTodoLocked(uid, req.Title, false)
	return c.JSON(http.StatusOK, t)
}

func (s *FakeServer) ownedTodo(c echo.Context) (*fakeTodo, error) {
	uid := c.Get("uid").(int64)
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return nil, c.JSON(http.StatusBadRequest, map[string]string{"error": fmt.Sprintf("invalid id: %s", c.Param("id"))})
	}
	t, ok := s.todos[id]
	if !ok || t.UserID != uid {
		return nil, c.JSON(http.StatusNotFound, map[string]string{"error": "Not found"})
	}
	return t, nil
}

func (s *FakeServer) toggleTodo(c echo.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, err := s.ownedTodo(c)
	if t == nil {
		return err
	}
	t.Done = !t.Done
	return c.JSON(http.StatusOK, t)
}

func (s *FakeServer) deleteTodo(c echo.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, err := s.ownedTodo(c)
	if t == nil {
		return err
	}
	delete(s.todos, t.ID)
	return c.NoContent(http.StatusOK)
}
