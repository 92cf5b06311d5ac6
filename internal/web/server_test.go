package web

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"golang.org/x/crypto/bcrypt"

	"github.com/mmynk/healthtracker/internal/auth"
	"github.com/mmynk/healthtracker/internal/calculator"
	"github.com/mmynk/healthtracker/internal/chart"
	"github.com/mmynk/healthtracker/internal/metrics"
	"github.com/mmynk/healthtracker/internal/models"
	"github.com/mmynk/healthtracker/internal/service"
	"github.com/mmynk/healthtracker/internal/storage/sqlite"
)

// TestMain will run goleak after all tests have been run in the package
// to detect any goroutine leaks
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type testApp struct {
	handler http.Handler
	store   *sqlite.SQLiteStore
	jwt     *auth.JWTManager
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	store, err := sqlite.New(context.Background(), filepath.Join(t.TempDir(), "web.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	m, reg := metrics.NewTestManagerAndRegistry()
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)

	srv, err := NewServer(Deps{
		Auth:     service.NewAuthService(auth.NewPasswordAuthenticator(store, bcrypt.MinCost), jwtManager, m, logger),
		Tracker:  service.NewTrackerService(store, calculator.Default(), m, logger),
		JWT:      jwtManager,
		Charts:   chart.NewRenderer(400, 200),
		Metrics:  m,
		Gatherer: reg,
		Logger:   logger,
	})
	require.NoError(t, err)

	return &testApp{handler: srv.Routes(), store: store, jwt: jwtManager}
}

func (a *testApp) do(t *testing.T, method, target string, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(method, target, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}

	rr := httptest.NewRecorder()
	a.handler.ServeHTTP(rr, req)
	return rr
}

func (a *testApp) register(t *testing.T, username, email, password string) {
	t.Helper()
	rr := a.do(t, http.MethodPost, "/register", url.Values{
		"username": {username},
		"email":    {email},
		"password": {password},
	})
	require.Equal(t, http.StatusFound, rr.Code)
	require.Equal(t, "/login?registered=1", rr.Header().Get("Location"))
}

// login registers and logs in a user, returning the session cookie.
func (a *testApp) login(t *testing.T, username string) (*http.Cookie, int64) {
	t.Helper()

	email := username + "@example.com"
	a.register(t, username, email, "password123")

	rr := a.do(t, http.MethodPost, "/login", url.Values{
		"email":    {email},
		"password": {"password123"},
	})
	require.Equal(t, http.StatusFound, rr.Code)
	require.Equal(t, "/home", rr.Header().Get("Location"))

	var session *http.Cookie
	for _, c := range rr.Result().Cookies() {
		if c.Name == auth.SessionCookieName {
			session = c
		}
	}
	require.NotNil(t, session)
	assert.True(t, session.HttpOnly)

	claims, err := a.jwt.Validate(session.Value)
	require.NoError(t, err)
	userID, err := claims.UserID()
	require.NoError(t, err)
	return session, userID
}

func (a *testApp) countRows(t *testing.T, userID int64) (basic, health, activity, results int) {
	t.Helper()
	ctx := context.Background()

	b, err := a.store.ListBasicMeasurements(ctx, userID, 0)
	require.NoError(t, err)
	h, err := a.store.ListHealthMeasurements(ctx, userID, 0)
	require.NoError(t, err)
	ac, err := a.store.ListActivityMeasurements(ctx, userID, 0)
	require.NoError(t, err)
	r, err := a.store.ListCalculatorResults(ctx, userID, 0)
	require.NoError(t, err)
	return len(b), len(h), len(ac), len(r)
}

func TestRootRedirectsHome(t *testing.T) {
	app := newTestApp(t)
	rr := app.do(t, http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusFound, rr.Code)
	assert.Equal(t, "/home", rr.Header().Get("Location"))
}

func TestHealthzAndMetrics(t *testing.T) {
	app := newTestApp(t)

	rr := app.do(t, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "OK", rr.Body.String())

	rr = app.do(t, http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "healthtracker_test_server_requests_total")
}

func TestUnauthenticatedRequestsRedirectToLogin(t *testing.T) {
	app := newTestApp(t)

	for _, path := range []string{"/home", "/dashboard", "/tracker", "/profile"} {
		t.Run(path, func(t *testing.T) {
			rr := app.do(t, http.MethodGet, path, nil)
			assert.Equal(t, http.StatusFound, rr.Code)
			assert.Equal(t, "/login", rr.Header().Get("Location"))
		})
	}

	rr := app.do(t, http.MethodGet, "/home", nil, &http.Cookie{Name: auth.SessionCookieName, Value: "garbage"})
	assert.Equal(t, http.StatusFound, rr.Code)
	assert.Equal(t, "/login", rr.Header().Get("Location"))
}

func TestUnauthenticatedPostDoesNotWrite(t *testing.T) {
	app := newTestApp(t)
	_, userID := app.login(t, "alice")

	rr := app.do(t, http.MethodPost, "/home", url.Values{
		"form_type":     {"activity_data"},
		"activity_type": {"running"},
		"duration":      {"30"},
		"water_intake":  {"1"},
	})
	assert.Equal(t, http.StatusFound, rr.Code)
	assert.Equal(t, "/login", rr.Header().Get("Location"))

	_, _, activity, _ := app.countRows(t, userID)
	assert.Zero(t, activity)
}

func TestLoginPageNotices(t *testing.T) {
	app := newTestApp(t)

	rr := app.do(t, http.MethodGet, "/login?registered=1", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Registration successful")

	rr = app.do(t, http.MethodGet, "/login?logged_out=1", nil)
	assert.Contains(t, rr.Body.String(), "You have been logged out")
}

func TestLoginFailuresAreFieldScoped(t *testing.T) {
	app := newTestApp(t)
	app.register(t, "bob", "bob@example.com", "password123")

	rr := app.do(t, http.MethodPost, "/login", url.Values{
		"email":    {"nobody@example.com"},
		"password": {"password123"},
	})
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "User does not exist. Please register.")
	assert.NotContains(t, rr.Body.String(), "Invalid password.")
	assert.Empty(t, rr.Result().Cookies())

	rr = app.do(t, http.MethodPost, "/login", url.Values{
		"email":    {"bob@example.com"},
		"password": {"wrong-password"},
	})
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Invalid password.")
	assert.NotContains(t, rr.Body.String(), "User does not exist")
	assert.Empty(t, rr.Result().Cookies())
}

func TestRegisterRejections(t *testing.T) {
	app := newTestApp(t)
	app.register(t, "carol", "carol@example.com", "password123")

	tests := []struct {
		name     string
		form     url.Values
		wantText string
	}{
		{
			name:     "missing field",
			form:     url.Values{"username": {"dave"}, "email": {""}, "password": {"password123"}},
			wantText: "Please fill out all fields.",
		},
		{
			name:     "short password",
			form:     url.Values{"username": {"dave"}, "email": {"dave@example.com"}, "password": {"short"}},
			wantText: "at least 8 characters",
		},
		{
			name:     "short non-ASCII password",
			form:     url.Values{"username": {"olena"}, "email": {"olena@example.com"}, "password": {"пароль"}},
			wantText: "at least 8 characters",
		},
		{
			name:     "duplicate email",
			form:     url.Values{"username": {"carol2"}, "email": {"carol@example.com"}, "password": {"password123"}},
			wantText: "already exists",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := app.do(t, http.MethodPost, "/register", tt.form)
			assert.Equal(t, http.StatusOK, rr.Code)
			assert.Contains(t, rr.Body.String(), tt.wantText)
		})
	}
}

func TestLogoutClearsSession(t *testing.T) {
	app := newTestApp(t)
	session, _ := app.login(t, "erin")

	rr := app.do(t, http.MethodGet, "/logout", nil, session)
	assert.Equal(t, http.StatusFound, rr.Code)
	assert.Equal(t, "/login?logged_out=1", rr.Header().Get("Location"))

	cookies := rr.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, auth.SessionCookieName, cookies[0].Name)
	assert.Empty(t, cookies[0].Value)
	assert.Negative(t, cookies[0].MaxAge)
}

func TestHomeShowsUsernameAndSections(t *testing.T) {
	app := newTestApp(t)
	session, _ := app.login(t, "frank")

	rr := app.do(t, http.MethodGet, "/dashboard", nil, session)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Welcome, frank")
	assert.Contains(t, rr.Body.String(), `id="welcome"`)

	rr = app.do(t, http.MethodGet, "/home?section=health", nil, session)
	assert.Contains(t, rr.Body.String(), `id="health"`)

	rr = app.do(t, http.MethodGet, "/home?section=bogus", nil, session)
	assert.Contains(t, rr.Body.String(), `id="welcome"`)
}

func TestSubmitMeasurements(t *testing.T) {
	app := newTestApp(t)
	session, userID := app.login(t, "grace")

	tests := []struct {
		name    string
		form    url.Values
		section string
	}{
		{
			name: "basic",
			form: url.Values{
				"form_type": {"basic_data"}, "date": {"2024-02-01"}, "age": {"30"},
				"gender": {"female"}, "weight": {"60"}, "height": {"165"},
			},
			section: "basic",
		},
		{
			name: "health",
			form: url.Values{
				"form_type": {"health_data"}, "pulse": {"70"},
				"blood_pressure": {"118/76"}, "duration_sleep": {"8"},
			},
			section: "health",
		},
		{
			name: "activity",
			form: url.Values{
				"form_type": {"activity_data"}, "activity_type": {"yoga"},
				"duration": {"40"}, "water_intake": {"1.5"},
			},
			section: "activity",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := app.do(t, http.MethodPost, "/home", tt.form, session)
			assert.Equal(t, http.StatusSeeOther, rr.Code)
			assert.Equal(t, "/home?section="+tt.section+"&saved=1", rr.Header().Get("Location"))
		})
	}

	basic, health, activity, _ := app.countRows(t, userID)
	assert.Equal(t, 1, basic)
	assert.Equal(t, 1, health)
	assert.Equal(t, 1, activity)

	rr := app.do(t, http.MethodGet, "/home", nil, session)
	assert.Contains(t, rr.Body.String(), "118/76")
	assert.Contains(t, rr.Body.String(), "yoga")
}

func TestSessionForMissingUserRedirectsToLogin(t *testing.T) {
	app := newTestApp(t)

	token, err := app.jwt.Generate(&models.User{ID: 4242, Username: "ghost"})
	require.NoError(t, err)
	session := &http.Cookie{Name: auth.SessionCookieName, Value: token}

	rr := app.do(t, http.MethodPost, "/home", url.Values{
		"form_type":     {"activity_data"},
		"activity_type": {"walking"},
		"duration":      {"20"},
		"water_intake":  {"1"},
	}, session)
	assert.Equal(t, http.StatusFound, rr.Code)
	assert.Equal(t, "/login", rr.Header().Get("Location"))

	cookies := rr.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, auth.SessionCookieName, cookies[0].Name)
	assert.Empty(t, cookies[0].Value)

	_, _, activity, _ := app.countRows(t, 4242)
	assert.Zero(t, activity)
}

func TestSubmitInvalidDateWritesNothing(t *testing.T) {
	app := newTestApp(t)
	session, userID := app.login(t, "heidi")

	rr := app.do(t, http.MethodPost, "/tracker", url.Values{
		"form_type":      {"health_data"},
		"date":           {"2024-13-45"},
		"pulse":          {"70"},
		"blood_pressure": {"120/80"},
		"duration_sleep": {"7"},
	}, session)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "YYYY-MM-DD")

	_, health, _, _ := app.countRows(t, userID)
	assert.Zero(t, health)
}

func TestSubmitUnknownFormType(t *testing.T) {
	app := newTestApp(t)
	session, _ := app.login(t, "ivan")

	rr := app.do(t, http.MethodPost, "/home", url.Values{"form_type": {"sleep_data"}}, session)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "Unknown form submitted.")
}

func TestCalculatorPersistsResult(t *testing.T) {
	app := newTestApp(t)
	session, userID := app.login(t, "judy")

	rr := app.do(t, http.MethodPost, "/home", url.Values{
		"form_type":       {"calculator"},
		"calculator_type": {string(models.CalculatorBMI)},
		"weight":          {"70"},
		"height":          {"170"},
	}, session)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "24.22")

	results, err := app.store.ListCalculatorResults(context.Background(), userID, 0)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, models.CalculatorBMI, results[0].CalculatorType)
	assert.Equal(t, 24.22, results[0].Result)
}

func TestCalculatorInvalidInput(t *testing.T) {
	app := newTestApp(t)
	session, userID := app.login(t, "kim")

	rr := app.do(t, http.MethodPost, "/home", url.Values{
		"form_type":       {"calculator"},
		"calculator_type": {string(models.CalculatorCalories)},
		"weight":          {"70"},
		"height":          {"170"},
		"age":             {"30"},
		"gender":          {"male"},
		"activity_level":  {"3.5"},
	}, session)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "Invalid input: activity_level")

	_, _, _, results := app.countRows(t, userID)
	assert.Zero(t, results)
}

func TestChartsSection(t *testing.T) {
	app := newTestApp(t)
	session, _ := app.login(t, "leo")

	for _, date := range []string{"2024-01-01", "2024-01-02"} {
		rr := app.do(t, http.MethodPost, "/home", url.Values{
			"form_type": {"basic_data"}, "date": {date}, "age": {"40"},
			"gender": {"male"}, "weight": {"80"}, "height": {"180"},
		}, session)
		require.Equal(t, http.StatusSeeOther, rr.Code)
	}

	rr := app.do(t, http.MethodGet, "/home?section=charts", nil, session)
	assert.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	assert.Contains(t, body, `src="`+chart.DataURIPrefix)
	assert.Contains(t, body, "Not enough data to draw a chart yet.")
}
