package api

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpupo63/portfolio-site-backend/models"
)

func (e *testEnv) createProject(title string, published bool, tags ...string) *models.Project {
	e.t.Helper()
	in := models.ProjectInput{Title: title, Tags: tags, Summary: title + " summary"}
	in.Normalize()
	var p models.Project
	in.ApplyTo(&p, published)
	require.NoError(e.t, e.db.ProjectRepo().Create(context.Background(), &p))
	return &p
}

func TestPublicProjectNotFound(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodGet, "/api/projects/does-not-exist", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	body := decodeBody[ErrorResponse](t, rec)
	assert.Equal(t, "error", body.Status)
	assert.Contains(t, body.Error, "not found")
}

func TestProjectEditorDraftThenPublish(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodGet, "/api/admin/projects/new", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	editor := decodeBody[ProjectEditorResponse](t, rec)
	assert.True(t, editor.IsNew)
	require.NotNil(t, editor.Form)
	assert.NotNil(t, editor.Form.Tags)

	payload := map[string]any{
		"title":   "My Cool App!",
		"summary": "A thing I built",
		"tags":    []string{"go", "postgres"},
		"metrics": map[string]any{"users": 1200, "uptime": "99.9%"},
	}
	rec = env.do(http.MethodPost, "/api/admin/projects/new/draft", payload)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decodeBody[models.Project](t, rec)
	assert.Equal(t, "my-cool-app", created.Slug)
	assert.False(t, created.Published)
	assert.Equal(t, "/api/admin/projects/"+created.ID.String(), rec.Header().Get("Location"))

	assert.Equal(t, http.StatusNotFound, env.do(http.MethodGet, "/api/projects/my-cool-app", nil).Code, "drafts stay private")

	rec = env.do(http.MethodPost, rec.Header().Get("Location")+"/publish", payload)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.True(t, decodeBody[models.Project](t, rec).Published)

	rec = env.do(http.MethodGet, "/api/projects/my-cool-app", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	public := decodeBody[models.Project](t, rec)
	assert.Equal(t, created.ID, public.ID)
	assert.Equal(t, []string{"go", "postgres"}, []string(public.Tags))

	rec = env.do(http.MethodGet, "/api/admin/projects/"+created.ID.String(), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	editor = decodeBody[ProjectEditorResponse](t, rec)
	assert.False(t, editor.IsNew)
	require.NotNil(t, editor.Project)
	assert.Equal(t, "A thing I built", editor.Project.Summary)
}

func TestProjectEditorFormSavesBack(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodPost, "/api/admin/projects/new/publish", map[string]any{
		"title":    "Billing Service",
		"summary":  "First pass",
		"tags":     []string{"go"},
		"metrics":  map[string]any{"latency_ms": 40},
		"live_url": "https://billing.example.com",
		"featured": true,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	path := rec.Header().Get("Location")

	rec = env.do(http.MethodGet, path, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	editor := decodeBody[map[string]json.RawMessage](t, rec)
	require.Contains(t, editor, "form")
	var form map[string]any
	require.NoError(t, json.Unmarshal(editor["form"], &form))
	assert.NotContains(t, form, "id")
	assert.NotContains(t, form, "created_at")
	form["summary"] = "Second pass"

	rec = env.do(http.MethodPost, path+"/draft", form)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	saved := decodeBody[models.Project](t, rec)
	assert.Equal(t, "Second pass", saved.Summary)
	assert.Equal(t, "billing-service", saved.Slug)
	assert.Equal(t, []string{"go"}, []string(saved.Tags))
	assert.EqualValues(t, 40, saved.Metrics["latency_ms"])
	require.NotNil(t, saved.LiveURL)
	assert.Equal(t, "https://billing.example.com", *saved.LiveURL)
	assert.True(t, saved.Featured)
	assert.False(t, saved.Published)
}

func TestProjectSaveValidation(t *testing.T) {
	env := newTestEnv(t)
	env.createProject("Taken", true)

	tests := []struct {
		name   string
		body   map[string]any
		status int
		field  string
	}{
		{"missing title", map[string]any{"summary": "x"}, http.StatusBadRequest, "title"},
		{"bad manual slug", map[string]any{"title": "Ok", "slug": "Not A Slug"}, http.StatusBadRequest, "slug"},
		{"bad url", map[string]any{"title": "Ok", "live_url": "nope"}, http.StatusBadRequest, "live_url"},
		{"duplicate slug", map[string]any{"title": "Taken"}, http.StatusConflict, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.do(http.MethodPost, "/api/admin/projects/new/publish", tt.body)
			require.Equal(t, tt.status, rec.Code, rec.Body.String())
			if tt.field != "" {
				assert.Equal(t, tt.field, decodeBody[ErrorResponse](t, rec).Field)
			}
		})
	}
}

func TestAdminProjectListAndToggleFeatured(t *testing.T) {
	env := newTestEnv(t)
	a := env.createProject("Alpha", true)
	b := env.createProject("Beta", false)
	time.Sleep(10 * time.Millisecond)

	rec := env.do(http.MethodPatch, "/api/admin/projects/"+a.ID.String()+"/flags", map[string]any{"featured": true})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	item := decodeBody[models.ProjectListItem](t, rec)
	assert.Equal(t, a.ID, item.ID)
	assert.True(t, item.Featured)
	assert.True(t, item.Published, "untouched flag keeps its value")

	other, err := env.db.ProjectRepo().FindByID(context.Background(), b.ID)
	require.NoError(t, err)
	assert.False(t, other.Featured)

	rec = env.do(http.MethodGet, "/api/admin/projects", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	items := decodeBody[[]models.ProjectListItem](t, rec)
	require.Len(t, items, 2)
	assert.Equal(t, a.ID, items[0].ID, "most recently updated first")

	assert.Equal(t, http.StatusBadRequest, env.do(http.MethodPatch, "/api/admin/projects/"+a.ID.String()+"/flags", map[string]any{}).Code)
	assert.Equal(t, http.StatusNotFound, env.do(http.MethodPatch, "/api/admin/projects/"+uuid.NewString()+"/flags", map[string]any{"featured": true}).Code)
}

func TestProjectDeleteNeedsConfirmation(t *testing.T) {
	env := newTestEnv(t)
	p := env.createProject("Doomed", true)
	path := "/api/admin/projects/" + p.ID.String()

	rec := env.do(http.MethodDelete, path, nil)
	require.Equal(t, http.StatusPreconditionRequired, rec.Code)
	assert.Equal(t, "confirm", decodeBody[ErrorResponse](t, rec).Field)
	_, err := env.db.ProjectRepo().FindByID(context.Background(), p.ID)
	require.NoError(t, err, "unconfirmed delete leaves the row")

	require.Equal(t, http.StatusNoContent, env.do(http.MethodDelete, path+"?confirm=true", nil).Code)
	assert.Equal(t, http.StatusNotFound, env.do(http.MethodDelete, path+"?confirm=true", nil).Code)
}

func TestPublicProjectSearch(t *testing.T) {
	env := newTestEnv(t)
	env.createProject("Payments API", true, "go", "stripe")
	env.createProject("Marketing Site", true, "nextjs")
	env.createProject("Secret Draft", false, "go")

	rec := env.do(http.MethodGet, "/api/projects", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	all := decodeBody[ProjectListResponse](t, rec)
	assert.Len(t, all.Projects, 2)
	assert.ElementsMatch(t, []string{"go", "stripe", "nextjs"}, all.Tags)

	rec = env.do(http.MethodGet, "/api/projects?q=PAYMENTS", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	found := decodeBody[ProjectListResponse](t, rec)
	require.Len(t, found.Projects, 1)
	assert.Equal(t, "payments-api", found.Projects[0].Slug)

	rec = env.do(http.MethodGet, "/api/projects?tag=go", nil)
	tagged := decodeBody[ProjectListResponse](t, rec)
	require.Len(t, tagged.Projects, 1)
	assert.Len(t, tagged.Tags, 3, "tags cover the whole published set")
}

func TestHomeShowsFeatured(t *testing.T) {
	env := newTestEnv(t)
	for _, title := range []string{"One", "Two", "Three", "Four"} {
		p := env.createProject(title, true)
		_, err := env.db.ProjectRepo().SetFlags(context.Background(), p.ID, map[string]any{"featured": true})
		require.NoError(t, err)
	}

	rec := env.do(http.MethodGet, "/api/home", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	home := decodeBody[HomeResponse](t, rec)
	assert.Len(t, home.Featured, 3)
	require.NotNil(t, home.Settings)
	assert.Equal(t, "Portfolio", home.Settings.DisplayName)
}
