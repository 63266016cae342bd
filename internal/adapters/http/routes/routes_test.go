package routes_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	_ "hr-selfservice/docs"
	"hr-selfservice/internal/adapters/http/middleware"
	"hr-selfservice/internal/adapters/http/routes"
	"hr-selfservice/internal/adapters/mail"
	"hr-selfservice/internal/adapters/persistence"
	"hr-selfservice/internal/adapters/persistence/testdb"
	"hr-selfservice/internal/config"
	"hr-selfservice/internal/core/domain"
	"hr-selfservice/internal/core/services"
	"hr-selfservice/internal/pkg/dateutil"
	"hr-selfservice/internal/pkg/jwt"
	"hr-selfservice/internal/pkg/password"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	today      = "2026-03-10"
	jwtSecret  = "routes-test-secret"
	cronSecret = "cron-test-secret"
)

type testServer struct {
	app    *fiber.App
	store  *persistence.Store
	mailer *mail.LogMailer
	token  string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	cfg := &config.Config{
		AppMode:  "dev",
		JWT:      config.JWTConfig{Secret: jwtSecret, AccessTokenMins: 60},
		Mail:     config.MailConfig{AdminEmail: "hr-admin@example.com", ManagerEmail: "manager@example.com"},
		Reminder: config.ReminderConfig{CronSecret: cronSecret},
	}

	gate, err := services.NewCredentialGate(config.DefaultRoster())
	require.NoError(t, err)

	store := persistence.NewSQLStore(testdb.Open(t))
	mailer := mail.NewLogMailer()
	svc := services.New(services.Deps{
		Config:    cfg,
		Gate:      gate,
		Leaves:    store.Leaves,
		Requests:  store.Requests,
		Reminders: store.Reminders,
		Admins:    store.Admins,
		Surveys:   store.Surveys,
		Mailer:    mailer,
		Clock:     dateutil.FixedClock(today),
	})

	hash, err := password.HashWithCost("admin-password", 4)
	require.NoError(t, err)
	admin := &domain.Admin{Username: "admin", PasswordHash: hash}
	require.NoError(t, store.Admins.Create(context.Background(), admin))
	token, _, err := jwt.GenerateAccessToken(admin.ID, admin.Username, jwt.RoleAdmin, jwtSecret, 60)
	require.NoError(t, err)

	app := fiber.New(fiber.Config{ErrorHandler: middleware.CustomErrorHandler})
	routes.Setup(app, svc, store, cfg)

	return &testServer{app: app, store: store, mailer: mailer, token: token}
}

func (s *testServer) do(t *testing.T, method, path string, body any, headers map[string]string) (int, []byte) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, out
}

func (s *testServer) admin() map[string]string {
	return map[string]string{"Authorization": "Bearer " + s.token}
}

func decode[T any](t *testing.T, raw []byte) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v), string(raw))
	return v
}

type errorBody struct {
	Error string `json:"error"`
}

// a DLMS engineer from the default roster
var omar = map[string]any{"email": "omar.fathy@example.com", "hrCode": "1002"}

func with(base map[string]any, kv ...any) map[string]any {
	out := make(map[string]any, len(base)+len(kv)/2)
	for k, v := range base {
		out[k] = v
	}
	for i := 0; i+1 < len(kv); i += 2 {
		out[kv[i].(string)] = kv[i+1]
	}
	return out
}

func TestVacations_SubmitCreatesThenUpdates(t *testing.T) {
	s := newTestServer(t)

	status, body := s.do(t, http.MethodPost, "/api/v1/vacations", with(omar, "year", 2026, "vacationDays", []string{"2026-07-01", "2026-07-02"}), nil)
	require.Equal(t, http.StatusCreated, status, string(body))
	created := decode[map[string]any](t, body)
	assert.Equal(t, false, created["isUpdate"])
	assert.EqualValues(t, 2, created["totalDays"])
	assert.Equal(t, "omar.fathy@example.com", created["email"])

	status, body = s.do(t, http.MethodPost, "/api/v1/vacations", with(omar, "year", 2026, "vacationDays", []string{"2026-08-03"}), nil)
	require.Equal(t, http.StatusOK, status, string(body))
	updated := decode[map[string]any](t, body)
	assert.Equal(t, true, updated["isUpdate"])
	assert.Equal(t, created["id"], updated["id"])

	status, body = s.do(t, http.MethodGet, "/api/v1/vacations?year=2026", nil, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, decode[[]domain.LeaveRecord](t, body), 1)
}

func TestVacations_SubmitValidation(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name    string
		body    map[string]any
		wantMsg string
	}{
		{"missing fields", map[string]any{"email": "x@example.com"}, "Email, HR Code, Year and Vacation Days are required"},
		{"bad credentials", with(omar, "hrCode", "9999", "year", 2026, "vacationDays", []string{"2026-07-01"}), "Invalid email or HR code"},
		{"past date", with(omar, "year", 2026, "vacationDays", []string{"2026-03-09"}), "Cannot select past dates: 2026-03-09"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := s.do(t, http.MethodPost, "/api/v1/vacations", tt.body, nil)
			assert.Equal(t, http.StatusBadRequest, status)
			assert.Equal(t, tt.wantMsg, decode[errorBody](t, body).Error)
		})
	}
}

func TestVacations_AdminRoutesRequireToken(t *testing.T) {
	s := newTestServer(t)

	status, _ := s.do(t, http.MethodGet, "/api/v1/vacations/stats", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = s.do(t, http.MethodDelete, "/api/v1/vacations", nil, map[string]string{"Authorization": "Bearer garbage"})
	assert.Equal(t, http.StatusUnauthorized, status)

	status, body := s.do(t, http.MethodGet, "/api/v1/vacations/stats?year=2026", nil, s.admin())
	require.Equal(t, http.StatusOK, status)
	stats := decode[map[string]any](t, body)
	assert.Contains(t, stats, "monthlyDistribution")
	assert.Contains(t, stats, "overlapDates")

	status, _ = s.do(t, http.MethodGet, "/api/v1/vacations/stats?year=abc", nil, s.admin())
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestVacations_ReminderCheck(t *testing.T) {
	s := newTestServer(t)

	status, body := s.do(t, http.MethodPost, "/api/v1/vacations", with(omar, "year", 2026, "vacationDays", []string{"2026-03-20", "2026-03-21"}), nil)
	require.Equal(t, http.StatusCreated, status, string(body))

	status, _ = s.do(t, http.MethodGet, "/api/v1/vacations/reminders/check", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = s.do(t, http.MethodGet, "/api/v1/vacations/reminders/check", nil, map[string]string{middleware.CronSecretHeader: "wrong"})
	assert.Equal(t, http.StatusUnauthorized, status)

	status, body = s.do(t, http.MethodGet, "/api/v1/vacations/reminders/check", nil, map[string]string{middleware.CronSecretHeader: cronSecret})
	require.Equal(t, http.StatusOK, status, string(body))

	run := decode[services.ReminderRun](t, body)
	assert.Equal(t, today, run.Date)
	assert.Equal(t, 1, run.Sent)
	require.Len(t, run.Reminders, 1)
	assert.Equal(t, "omar.fathy@example.com", run.Reminders[0].Employee)
	assert.Equal(t, []domain.ReminderDay{{Date: "2026-03-20", DaysAway: 10}}, run.Reminders[0].Days)

	status, body = s.do(t, http.MethodGet, "/api/v1/vacations/reminders/check", nil, s.admin())
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 0, decode[services.ReminderRun](t, body).Sent)
}

func TestServices_SubmitAndResolve(t *testing.T) {
	s := newTestServer(t)

	status, body := s.do(t, http.MethodPost, "/api/v1/services", with(omar, "type", "urgent_vacation", "dates", []string{"2026-03-14"}), nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Urgent vacation dates must be within 3 days from today. 2026-03-14 is too far.", decode[errorBody](t, body).Error)

	status, body = s.do(t, http.MethodPost, "/api/v1/services", with(omar, "type", "work_from_home", "dates", []string{"2026-03-16"}), nil)
	require.Equal(t, http.StatusCreated, status, string(body))
	created := decode[map[string]any](t, body)
	id := created["id"].(string)

	status, body = s.do(t, http.MethodPost, "/api/v1/services", with(omar, "type", "work_from_home", "dates", []string{"2026-03-17"}), nil)
	require.Equal(t, http.StatusOK, status, string(body))
	assert.Equal(t, id, decode[map[string]any](t, body)["id"])

	path := "/api/v1/services/" + id + "/status"

	status, _ = s.do(t, http.MethodPut, path, map[string]string{"status": "approved"}, nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = s.do(t, http.MethodPut, path, map[string]string{"status": "pending"}, s.admin())
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = s.do(t, http.MethodPut, "/api/v1/services/unknown/status", map[string]string{"status": "approved"}, s.admin())
	assert.Equal(t, http.StatusNotFound, status)

	status, body = s.do(t, http.MethodPut, path, map[string]string{"status": "approved", "adminNote": "enjoy"}, s.admin())
	require.Equal(t, http.StatusOK, status, string(body))
	resolved := decode[domain.ServiceRequest](t, body)
	assert.Equal(t, domain.StatusApproved, resolved.Status)
	assert.Equal(t, "enjoy", resolved.AdminNote)

	status, _ = s.do(t, http.MethodPut, path, map[string]string{"status": "rejected"}, s.admin())
	assert.Equal(t, http.StatusConflict, status)

	status, body = s.do(t, http.MethodGet, "/api/v1/services/stats", nil, s.admin())
	require.Equal(t, http.StatusOK, status)
	stats := decode[domain.ServiceRequestStats](t, body)
	assert.Equal(t, 1, stats.TotalRequests)
	assert.Equal(t, 1, stats.ByStatus[domain.StatusApproved])
}

func TestEmployees_Verify(t *testing.T) {
	s := newTestServer(t)

	status, body := s.do(t, http.MethodPost, "/api/v1/employees/verify", omar, nil)
	require.Equal(t, http.StatusOK, status, string(body))
	profile := decode[map[string]any](t, body)
	assert.Equal(t, "omar.fathy@example.com", profile["email"])
	assert.NotContains(t, profile, "hrCode")

	status, _ = s.do(t, http.MethodPost, "/api/v1/employees/verify", with(omar, "hrCode", "1003"), nil)
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = s.do(t, http.MethodGet, "/api/v1/employees", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	status, body = s.do(t, http.MethodGet, "/api/v1/employees", nil, s.admin())
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, decode[[]map[string]any](t, body), len(config.DefaultRoster()))
}

func TestAuth_LoginAndMe(t *testing.T) {
	s := newTestServer(t)

	status, _ := s.do(t, http.MethodPost, "/api/v1/auth/login", map[string]string{"username": "admin", "password": "nope"}, nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	status, body := s.do(t, http.MethodPost, "/api/v1/auth/login", map[string]string{"username": "admin", "password": "admin-password"}, nil)
	require.Equal(t, http.StatusOK, status, string(body))
	login := decode[services.AuthResponse](t, body)
	require.NotEmpty(t, login.Token)

	status, body = s.do(t, http.MethodGet, "/api/v1/auth/me", nil, map[string]string{"Authorization": "Bearer " + login.Token})
	require.Equal(t, http.StatusOK, status)
	me := decode[map[string]any](t, body)
	assert.Equal(t, "admin", me["username"])
	assert.NotContains(t, me, "passwordHash")
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)

	status, body := s.do(t, http.MethodGet, "/health", nil, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(body), `"database":"healthy"`)

	status, body = s.do(t, http.MethodGet, "/api/v1/", nil, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "/swagger/index.html", decode[map[string]any](t, body)["docs"])
}

func TestSwaggerDocs(t *testing.T) {
	s := newTestServer(t)

	status, body := s.do(t, http.MethodGet, "/swagger/doc.json", nil, nil)
	require.Equal(t, http.StatusOK, status, string(body))
	doc := decode[map[string]any](t, body)
	assert.Equal(t, "/api/v1", doc["basePath"])
	assert.Contains(t, doc["paths"], "/surveys")
	assert.Contains(t, doc["paths"], "/vacations/reminders/check")
}

var surveyBody = with(omar, "projectName", "Smart Meter", "skills", map[string]string{"DLMS": "expert"})

func TestSurveys_SubmitUpdateAndAdminRoutes(t *testing.T) {
	s := newTestServer(t)

	status, body := s.do(t, http.MethodPost, "/api/v1/surveys", surveyBody, nil)
	require.Equal(t, http.StatusCreated, status, string(body))
	created := decode[domain.Survey](t, body)
	assert.Equal(t, "Omar Fathy", created.FullName)
	assert.Equal(t, domain.TitleSenior, created.Title)

	status, body = s.do(t, http.MethodPost, "/api/v1/surveys", surveyBody, nil)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "HR Code already exists", decode[errorBody](t, body).Error)

	custom := map[string]string{}
	for i := 0; i <= domain.MaxCustomSkills; i++ {
		custom[string(rune('A'+i))] = "basic"
	}
	status, body = s.do(t, http.MethodPut, "/api/v1/surveys/1002", with(surveyBody, "customSkills", custom), nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "You can add at most 10 custom skills", decode[errorBody](t, body).Error)

	status, body = s.do(t, http.MethodPut, "/api/v1/surveys/1002", with(surveyBody, "projectName", "Gateway"), nil)
	require.Equal(t, http.StatusOK, status, string(body))
	assert.Equal(t, created.ID, decode[domain.Survey](t, body).ID)

	status, _ = s.do(t, http.MethodPut, "/api/v1/surveys/1004", with(omar, "hrCode", "1004", "projectName", "x"), nil)
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = s.do(t, http.MethodGet, "/api/v1/surveys", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	status, body = s.do(t, http.MethodGet, "/api/v1/surveys?department=DLMS", nil, s.admin())
	require.Equal(t, http.StatusOK, status)
	listed := decode[[]domain.Survey](t, body)
	require.Len(t, listed, 1)
	assert.Equal(t, "Gateway", listed[0].ProjectName)

	status, _ = s.do(t, http.MethodGet, "/api/v1/surveys/"+created.ID, nil, s.admin())
	assert.Equal(t, http.StatusOK, status)

	status, body = s.do(t, http.MethodPost, "/api/v1/surveys/send-email", map[string]string{"to": "omar.fathy@example.com"}, s.admin())
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "to, subject, and html are required", decode[errorBody](t, body).Error)

	status, body = s.do(t, http.MethodPost, "/api/v1/surveys/send-email",
		map[string]string{"to": "omar.fathy@example.com", "subject": "Training", "html": "<p>Hi</p>"}, s.admin())
	require.Equal(t, http.StatusOK, status, string(body))
	assert.Equal(t, "omar.fathy@example.com", decode[map[string]any](t, body)["to"])

	status, _ = s.do(t, http.MethodDelete, "/api/v1/surveys/"+created.ID, nil, s.admin())
	assert.Equal(t, http.StatusOK, status)
	status, _ = s.do(t, http.MethodGet, "/api/v1/surveys/"+created.ID, nil, s.admin())
	assert.Equal(t, http.StatusNotFound, status)

	status, body = s.do(t, http.MethodDelete, "/api/v1/surveys", nil, s.admin())
	require.Equal(t, http.StatusOK, status)
	assert.EqualValues(t, 0, decode[map[string]any](t, body)["deleted"])
}
