// Package testutil はハンドラーテスト用のセットアップヘルパーを提供します。
package testutil

import (
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"go-todo-share/server/internal/auth"
	"go-todo-share/server/internal/config"
	"go-todo-share/server/internal/models"
	"go-todo-share/server/internal/repositories"
	"go-todo-share/server/internal/routes"
)

// Clock はテストから期限判定の基準日を差し替えるための時計です。
// Setしない限り実時刻を返します。
type Clock struct {
	mu sync.Mutex
	t  time.Time
}

// Now は設定された時刻、未設定なら現在時刻を返します。
func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.t.IsZero() {
		return time.Now()
	}
	return c.t
}

// Set は基準時刻を固定します。
func (c *Clock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = t
}

// StubProvider は外部プロバイダのテストダブルです。
// グローバルのパッチなしでProviderインターフェースごと差し替えます。
type StubProvider struct {
	Identity auth.Identity
	Err      error
}

// AuthCodeURL は偽の認可URLを返します。
func (p *StubProvider) AuthCodeURL(state string) string {
	return "https://provider.example/oauth/authorize?state=" + url.QueryEscape(state)
}

// FetchIdentity は固定のユーザー情報を返します。
func (p *StubProvider) FetchIdentity(_ context.Context, _ string) (*auth.Identity, error) {
	if p.Err != nil {
		return nil, p.Err
	}
	identity := p.Identity
	return &identity, nil
}

// Env はテスト一式（DB・ルーター・リポジトリ・スタブ）をまとめた環境です。
type Env struct {
	DB       *sql.DB
	Router   *gin.Engine
	TodoRepo *repositories.TodoRepository
	UserRepo *repositories.UserRepository
	Provider *StubProvider
	Clock    *Clock
	Config   *config.Config
}

// SetupTestDB はインメモリのsqliteでスキーマを作成し、
// スタブプロバイダと注入可能な時計でルーターを組み立てます。
func SetupTestDB(t *testing.T) *Env {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err, "Failed to open test database")
	// インメモリDBはコネクションごとに別物になるため1本に固定する
	db.SetMaxOpenConns(1)

	createSchema(t, db)

	cfg := &config.Config{
		Port:          "8080",
		BaseURL:       "http://localhost:8080",
		JWTSecret:     "test-secret",
		SessionCookie: "todo_session",
		SessionTTL:    24 * time.Hour,
	}

	// 元のモックと同じユーザー情報を返すスタブ
	provider := &StubProvider{
		Identity: auth.Identity{
			ProviderID: "1111111",
			Nickname:   "test",
			Name:       "testuser",
			AvatarURL:  "https://api.adorable.io/avatars/285/abott@adorable.png",
		},
	}
	clock := &Clock{}

	router := routes.SetupRouter(db, cfg, provider, clock.Now)

	t.Cleanup(func() { db.Close() })

	return &Env{
		DB:       db,
		Router:   router,
		TodoRepo: repositories.NewTodoRepository(db),
		UserRepo: repositories.NewUserRepository(db),
		Provider: provider,
		Clock:    clock,
		Config:   cfg,
	}
}

func createSchema(t *testing.T, db *sql.DB) {
	t.Helper()

	createUserTableSQL := `
		CREATE TABLE users (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			provider_id TEXT NOT NULL,
			nickname TEXT NOT NULL UNIQUE,
			name TEXT NOT NULL,
			avatar_url TEXT NOT NULL DEFAULT '',
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		);`
	_, err := db.Exec(createUserTableSQL)
	require.NoError(t, err, "Failed to create users table")

	createTodoTableSQL := `
		CREATE TABLE todos (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id INTEGER NOT NULL,
			content TEXT NOT NULL,
			due_date TEXT NOT NULL DEFAULT '',
			status INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL,
			FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
		);`
	_, err = db.Exec(createTodoTableSQL)
	require.NoError(t, err, "Failed to create todos table")
}

// LoginUser は /login → /callback のフローを実際に通してログインし、
// 作成されたユーザーとセッションCookieを返します。
func (e *Env) LoginUser(t *testing.T) (*models.User, *http.Cookie) {
	t.Helper()

	// 1. /login でstate Cookieと認可URLを取得
	req := httptest.NewRequest(http.MethodGet, "/login", nil)
	w := httptest.NewRecorder()
	e.Router.ServeHTTP(w, req)
	require.Equal(t, http.StatusFound, w.Code)

	var stateCookie *http.Cookie
	for _, ck := range w.Result().Cookies() {
		if ck.Name == "oauth_state" {
			stateCookie = ck
		}
	}
	require.NotNil(t, stateCookie, "oauth_state cookie not set")

	location, err := url.Parse(w.Result().Header.Get("Location"))
	require.NoError(t, err)
	state := location.Query().Get("state")
	require.NotEmpty(t, state)

	// 2. /callback でセッションを確立
	req = httptest.NewRequest(http.MethodGet, "/callback?code=testcode&state="+url.QueryEscape(state), nil)
	req.AddCookie(stateCookie)
	w = httptest.NewRecorder()
	e.Router.ServeHTTP(w, req)
	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, "/", w.Result().Header.Get("Location"))

	var session *http.Cookie
	for _, ck := range w.Result().Cookies() {
		if ck.Name == e.Config.SessionCookie {
			session = ck
		}
	}
	require.NotNil(t, session, "session cookie not set")

	user, err := e.UserRepo.FindByProviderID(e.Provider.Identity.ProviderID)
	require.NoError(t, err)
	return user, session
}

// FactoryTodo はテスト用のTodoをDBに直接作成します。
// デフォルトはcontent="notOverDays", due_date="2030-01-01", 未完了です。
func (e *Env) FactoryTodo(t *testing.T, userID int, mutate func(*models.Todo)) *models.Todo {
	t.Helper()

	todo := &models.Todo{
		UserID:  userID,
		Content: "notOverDays",
		DueDate: "2030-01-01",
		Status:  models.StatusIncomplete,
	}
	if mutate != nil {
		mutate(todo)
	}

	created, err := e.TodoRepo.Create(todo)
	require.NoError(t, err)
	require.NotZero(t, created.ID)
	return created
}

// CountTodos はtodosテーブルの総行数を返します。
func (e *Env) CountTodos(t *testing.T) int {
	t.Helper()
	var count int
	require.NoError(t, e.DB.QueryRow("SELECT COUNT(*) FROM todos").Scan(&count))
	return count
}

// Get はセッション付きハンドラーへのGETリクエストを実行します。sessionはnil可です。
func (e *Env) Get(t *testing.T, path string, session *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if session != nil {
		req.AddCookie(session)
	}
	w := httptest.NewRecorder()
	e.Router.ServeHTTP(w, req)
	return w
}

// PostForm はセッション付きハンドラーへのフォームPOSTを実行します。sessionはnil可です。
func (e *Env) PostForm(t *testing.T, path string, form url.Values, session *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var body string
	if form != nil {
		body = form.Encode()
	}
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if session != nil {
		req.AddCookie(session)
	}
	w := httptest.NewRecorder()
	e.Router.ServeHTTP(w, req)
	return w
}
