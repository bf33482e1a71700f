package http

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	config "task-manager.com/task-manager/internal/configs"
	"task-manager.com/task-manager/internal/flash"
	repository "task-manager.com/task-manager/internal/repositories"
	"task-manager.com/task-manager/internal/services"
)

type testClient struct {
	t       *testing.T
	e       *echo.Echo
	cookies []*http.Cookie
}

func setupTestServer(t *testing.T) *testClient {
	t.Helper()

	db, err := config.NewDatabase(config.DriverSQLite, "file:"+uuid.NewString()+"?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	t.Cleanup(func() { _ = config.CloseDatabase(db) })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	if err := config.Migrate(context.Background(), db, config.DriverSQLite, logger); err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}

	store := repository.NewStore(db)
	handler := NewHandler(
		services.NewTaskService(store, logger),
		services.NewCategoryService(store, logger),
		flash.NewMemoryStore(time.Minute),
		store,
		logger,
	)

	renderer, err := NewRenderer()
	if err != nil {
		t.Fatalf("failed to parse templates: %v", err)
	}

	return &testClient{t: t, e: NewServer(handler, renderer, logger, 1000)}
}

func (tc *testClient) do(req *http.Request) *httptest.ResponseRecorder {
	for _, c := range tc.cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	tc.e.ServeHTTP(rec, req)

	for _, c := range rec.Result().Cookies() {
		if c.Name == flashCookieName {
			tc.cookies = []*http.Cookie{c}
		}
	}
	return rec
}

func (tc *testClient) get(target string) *httptest.ResponseRecorder {
	return tc.do(httptest.NewRequest(http.MethodGet, target, nil))
}

func (tc *testClient) post(target string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	return tc.do(req)
}

func expectRedirect(t *testing.T, rec *httptest.ResponseRecorder, location string) {
	t.Helper()
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d: %s", rec.Code, rec.Body.String())
	}
	if got := rec.Header().Get(echo.HeaderLocation); got != location {
		t.Fatalf("expected redirect to %s, got %s", location, got)
	}
}

func expectBody(t *testing.T, rec *httptest.ResponseRecorder, status int, fragments ...string) {
	t.Helper()
	if rec.Code != status {
		t.Fatalf("expected %d, got %d: %s", status, rec.Code, rec.Body.String())
	}
	body := rec.Body.String()
	for _, f := range fragments {
		if !strings.Contains(body, f) {
			t.Errorf("expected body to contain %q", f)
		}
	}
}

func TestHome_RedirectsToTasks(t *testing.T) {
	tc := setupTestServer(t)
	expectRedirect(t, tc.get("/"), "/tasks")
}

func TestTaskLifecycle(t *testing.T) {
	tc := setupTestServer(t)

	expectRedirect(t, tc.post("/categories", url.Values{
		"name":         {"Work"},
		"color":        {"#0d6efd"},
		"displayOrder": {"1"},
	}), "/categories")
	expectBody(t, tc.get("/categories"), http.StatusOK, "Category created", "Work")

	expectBody(t, tc.get("/tasks/new"), http.StatusOK, `value="TODO" selected`, `value="MEDIUM" selected`, "Work")

	expectRedirect(t, tc.post("/tasks", url.Values{
		"title":      {"Write tests"},
		"status":     {"IN_PROGRESS"},
		"priority":   {"HIGH"},
		"categoryId": {"1"},
		"dueDate":    {"2025-05-01"},
	}), "/tasks/1")

	expectBody(t, tc.get("/tasks/1"), http.StatusOK,
		"Task created", "Write tests", "In Progress", "High", "Work", "2025-05-01")

	expectRedirect(t, tc.post("/tasks/1", url.Values{
		"title":    {"Write more tests"},
		"status":   {"DONE"},
		"priority": {"LOW"},
	}), "/tasks/1")

	rec := tc.get("/tasks/1")
	expectBody(t, rec, http.StatusOK, "Task updated", "Write more tests", "Done", "Low")
	if strings.Contains(rec.Body.String(), "2025-05-01") {
		t.Error("expected due date to be cleared by update")
	}

	expectBody(t, tc.get("/tasks/1/edit"), http.StatusOK, `value="Write more tests"`, `value="DONE" selected`)

	expectRedirect(t, tc.post("/tasks/1/delete", nil), "/tasks")
	expectBody(t, tc.get("/tasks"), http.StatusOK, "Task deleted", "No tasks found.")
	expectBody(t, tc.get("/tasks/1"), http.StatusNotFound, "Task not found: 1")
}

func TestCreateTask_ValidationErrors(t *testing.T) {
	tc := setupTestServer(t)

	rec := tc.post("/tasks", url.Values{
		"title":    {"   "},
		"status":   {"TODO"},
		"priority": {"URGENT"},
		"dueDate":  {"tomorrow"},
	})

	expectBody(t, rec, http.StatusUnprocessableEntity,
		"Title must not be blank",
		"Priority must be one of LOW, MEDIUM, HIGH",
		"Due date must be a date in YYYY-MM-DD format",
		`value="tomorrow"`,
	)
}

func TestCreateCategory_ValidationErrors(t *testing.T) {
	tc := setupTestServer(t)

	rec := tc.post("/categories", url.Values{
		"name":  {""},
		"color": {"blue"},
	})

	expectBody(t, rec, http.StatusUnprocessableEntity, "Name must not be blank", "Color must be a color code like #1a2b3c")
}

func TestListTasks_Filters(t *testing.T) {
	tc := setupTestServer(t)

	tc.post("/tasks", url.Values{"title": {"Open item"}, "status": {"TODO"}, "priority": {"LOW"}})
	tc.post("/tasks", url.Values{"title": {"Closed item"}, "status": {"DONE"}, "priority": {"LOW"}})

	rec := tc.get("/tasks?status=DONE")
	expectBody(t, rec, http.StatusOK, "Closed item")
	if strings.Contains(rec.Body.String(), "Open item") {
		t.Error("status filter leaked a TODO task")
	}

	expectBody(t, tc.get("/tasks?status=LATER"), http.StatusBadRequest, "invalid filter value")
	expectBody(t, tc.get("/tasks?categoryId=abc"), http.StatusBadRequest)
}

func TestDeleteCategory_InUse(t *testing.T) {
	tc := setupTestServer(t)

	tc.post("/categories", url.Values{"name": {"Home"}})
	tc.post("/tasks", url.Values{"title": {"Dishes"}, "status": {"TODO"}, "priority": {"LOW"}, "categoryId": {"1"}})

	expectRedirect(t, tc.post("/categories/1/delete", nil), "/categories")
	expectBody(t, tc.get("/categories"), http.StatusOK, "cannot be deleted", "Home")

	expectRedirect(t, tc.post("/tasks/1/delete", nil), "/tasks")
	expectRedirect(t, tc.post("/categories/1/delete", nil), "/categories")
	expectBody(t, tc.get("/categories"), http.StatusOK, "Category deleted", "No categories yet.")
}

func TestErrorPages(t *testing.T) {
	tc := setupTestServer(t)

	expectBody(t, tc.get("/tasks/42"), http.StatusNotFound, "Task not found: 42")
	expectBody(t, tc.get("/categories/7/edit"), http.StatusNotFound, "Category not found: 7")
	expectBody(t, tc.get("/tasks/abc"), http.StatusBadRequest, "id must be a positive integer")
	expectBody(t, tc.get("/no/such/page"), http.StatusNotFound, "does not exist")

	rec := tc.post("/tasks/42/delete", nil)
	expectBody(t, rec, http.StatusNotFound, "Task not found: 42")
}

func TestHealth(t *testing.T) {
	tc := setupTestServer(t)
	expectBody(t, tc.get("/healthz"), http.StatusOK, "ok")
}
