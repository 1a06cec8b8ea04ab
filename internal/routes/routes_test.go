package routes

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"traveling_help/internal/api"
	"traveling_help/internal/controllers"
	"traveling_help/internal/session"
	"traveling_help/internal/views"
)

func init() {
	gin.SetMode(gin.TestMode)
}

const storedPost = `{"_id":"p1","driverId":"d1","ownerName":"Asha","mobile":"9876543210","from":"Delhi","to":"Agra",` +
	`"date":"2030-01-01T00:00:00.000Z","time":"2030-01-01T04:30:00.000Z","availableSeats":3,"price":450}`

// fakeBackend answers the REST contract and counts the calls it receives.
type fakeBackend struct {
	mu      sync.Mutex
	calls   map[string]int
	created api.PostInput
	listed  url.Values
	deleted string
	updated string
	srv     *httptest.Server
}

func newFakeBackend(t *testing.T) *fakeBackend {
	f := &fakeBackend{calls: map[string]int{}}
	r := gin.New()
	r.Use(func(c *gin.Context) {
		f.mu.Lock()
		f.calls[c.Request.Method+" "+c.FullPath()]++
		f.mu.Unlock()
	})
	authed := func(c *gin.Context) bool {
		if c.GetHeader("Authorization") != "Bearer tok" {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Token is not valid"})
			return false
		}
		return true
	}

	r.POST("/api/auth/login", func(c *gin.Context) {
		var req api.LoginRequest
		_ = c.ShouldBindJSON(&req)
		if req.Identifier != "asha@example.com" || req.Password != "secret1" {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid credentials"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{
			"accessToken": "tok",
			"driver":      gin.H{"id": "d1", "email": "asha@example.com", "carOwnerName": "Asha", "mobile": "9876543210"},
		}})
	})
	r.POST("/api/auth/register", func(c *gin.Context) {
		var req api.RegisterRequest
		_ = c.ShouldBindJSON(&req)
		if req.Email == "taken@example.com" {
			c.JSON(http.StatusConflict, gin.H{"success": false, "message": "Email or mobile already registered"})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"success": true, "data": gin.H{
			"accessToken": "tok",
			"driver":      gin.H{"id": "d2", "email": req.Email, "carOwnerName": req.CarOwnerName, "mobile": req.Mobile},
		}})
	})
	r.GET("/api/posts/driver/my-posts", func(c *gin.Context) {
		if authed(c) {
			c.Data(http.StatusOK, "application/json", []byte(`{"success":true,"data":[`+storedPost+`]}`))
		}
	})
	r.POST("/api/posts", func(c *gin.Context) {
		if !authed(c) {
			return
		}
		var in api.PostInput
		_ = c.ShouldBindJSON(&in)
		f.mu.Lock()
		f.created = in
		f.mu.Unlock()
		if in.From == "Fail" {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Server says no"})
			return
		}
		c.Data(http.StatusCreated, "application/json", []byte(`{"success":true,"data":`+storedPost+`}`))
	})
	r.PUT("/api/posts/:id", func(c *gin.Context) {
		if !authed(c) {
			return
		}
		var in api.PostInput
		_ = c.ShouldBindJSON(&in)
		f.mu.Lock()
		f.created, f.updated = in, c.Param("id")
		f.mu.Unlock()
		if in.From == "Fail" {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Server says no"})
			return
		}
		c.Data(http.StatusOK, "application/json", []byte(`{"success":true,"data":`+storedPost+`}`))
	})
	r.DELETE("/api/posts/:id", func(c *gin.Context) {
		f.mu.Lock()
		f.deleted = c.Param("id")
		f.mu.Unlock()
		if authed(c) {
			c.JSON(http.StatusOK, gin.H{"success": false, "message": "Not found"})
		}
	})
	r.GET("/api/posts", func(c *gin.Context) {
		f.mu.Lock()
		f.listed = c.Request.URL.Query()
		f.mu.Unlock()
		c.Data(http.StatusOK, "application/json", []byte(`{"success":true,"data":{"posts":[`+storedPost+`],`+
			`"pagination":{"current":2,"total":3,"count":1,"totalPosts":21}}}`))
	})

	f.srv = httptest.NewServer(r)
	t.Cleanup(f.srv.Close)
	return f
}

func (f *fakeBackend) lastCreated() api.PostInput {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.created
}

func (f *fakeBackend) lastUpdated() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.updated
}

func (f *fakeBackend) lastDeleted() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.deleted
}

func (f *fakeBackend) lastListed() url.Values {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.listed
}

func (f *fakeBackend) count(call string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[call]
}

const (
	myPostsCall  = "GET /api/posts/driver/my-posts"
	createCall   = "POST /api/posts"
	updateCall   = "PUT /api/posts/:id"
	loginCall    = "POST /api/auth/login"
	registerCall = "POST /api/auth/register"
)

// browser replays cookies between requests like a real one would.
type browser struct {
	t       *testing.T
	router  http.Handler
	cookies map[string]*http.Cookie
}

func (b *browser) do(req *http.Request) *httptest.ResponseRecorder {
	for _, c := range b.cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	b.router.ServeHTTP(w, req)
	for _, c := range w.Result().Cookies() {
		if c.MaxAge < 0 {
			delete(b.cookies, c.Name)
			continue
		}
		b.cookies[c.Name] = c
	}
	return w
}

func (b *browser) get(path string) *httptest.ResponseRecorder {
	return b.do(httptest.NewRequest(http.MethodGet, path, nil))
}

func (b *browser) post(path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return b.do(req)
}

type fixture struct {
	*browser
	backend *fakeBackend
	store   *session.MemoryStore
	now     time.Time
}

func newFixture(t *testing.T) *fixture {
	backend := newFakeBackend(t)
	return newFixtureWith(t, backend.srv.URL+"/api", backend)
}

func newFixtureWith(t *testing.T, baseURL string, backend *fakeBackend) *fixture {
	loc, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)
	tmpl, err := views.Templates(loc)
	require.NoError(t, err)

	now := time.Date(2029, 12, 1, 9, 0, 0, 0, time.UTC)
	store := session.NewMemoryStore()
	store.Now = func() time.Time { return now }

	ctl := &controllers.Controller{
		API:      api.NewClient(baseURL, 0),
		Sessions: store.Factory(),
		Location: loc,
		PageSize: 10,
	}
	return &fixture{
		browser: &browser{t: t, router: SetupRouter(ctl, tmpl, io.Discard), cookies: map[string]*http.Cookie{}},
		backend: backend,
		store:   store,
		now:     now,
	}
}

func (f *fixture) signIn(token string) {
	require.NoError(f.t, f.store.Save(token, api.Driver{ID: "d1", CarOwnerName: "Asha", Mobile: "9876543210"}, session.DefaultTTLDays))
}

func validRide() url.Values {
	return url.Values{
		"ownerName":      {"Asha"},
		"mobile":         {"9876543210"},
		"from":           {"Delhi"},
		"to":             {"Agra"},
		"date":           {"2030-01-01"},
		"time":           {"10:00"},
		"availableSeats": {"3"},
		"price":          {"450"},
	}
}

func TestPublicPages(t *testing.T) {
	f := newFixture(t)

	w := f.get("/")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `href="/rides"`)
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	assert.Equal(t, http.StatusOK, f.get("/healthz").Code)
	assert.Equal(t, http.StatusOK, f.get("/static/app.css").Code)

	w = f.get("/driver/auth?mode=register")
	assert.Contains(t, w.Body.String(), `action="/driver/auth/register"`)
}

func TestDashboardRedirectsWithoutSession(t *testing.T) {
	f := newFixture(t)
	w := f.get("/driver/dashboard")
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/driver/auth", w.Header().Get("Location"))
	assert.Zero(t, f.backend.count(myPostsCall))
}

func TestLoginWithRememberMe(t *testing.T) {
	f := newFixture(t)
	w := f.post("/driver/auth/login", url.Values{
		"identifier": {"asha@example.com"},
		"password":   {"secret1"},
		"rememberMe": {"true"},
	})
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/driver/dashboard", w.Header().Get("Location"))
	assert.Equal(t, f.now.Add(30*24*time.Hour), f.store.Expires())

	w = f.get("/driver/dashboard")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Login Successful!")

	// The notice is shown once.
	w = f.get("/driver/dashboard")
	assert.NotContains(t, w.Body.String(), "Login Successful!")
}

func TestLoginDefaultExpiry(t *testing.T) {
	f := newFixture(t)
	f.post("/driver/auth/login", url.Values{"identifier": {"asha@example.com"}, "password": {"secret1"}})
	assert.Equal(t, f.now.Add(7*24*time.Hour), f.store.Expires())
}

func TestLoginRejectedKeepsForm(t *testing.T) {
	f := newFixture(t)
	w := f.post("/driver/auth/login", url.Values{"identifier": {"asha@example.com"}, "password": {"hunter22"}})
	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Invalid credentials")
	assert.Contains(t, body, `value="asha@example.com"`)
	assert.NotContains(t, body, "hunter22")
	_, ok := f.store.Load()
	assert.False(t, ok)
}

func TestLoginValidationNeverCallsBackend(t *testing.T) {
	f := newFixture(t)
	w := f.post("/driver/auth/login", url.Values{"password": {"x"}})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "Email or mobile number is required")
	assert.Zero(t, f.backend.count(loginCall))
}

func TestRegisterValidationNeverCallsBackend(t *testing.T) {
	f := newFixture(t)
	w := f.post("/driver/auth/register", url.Values{
		"email":           {"asha@example.com"},
		"password":        {"secret1"},
		"confirmPassword": {"secret2"},
		"carOwnerName":    {"Asha"},
		"mobile":          {"9876543210"},
		"termsAccepted":   {"true"},
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "Passwords do not match")
	assert.Zero(t, f.backend.count(registerCall))
}

func registration(email string) url.Values {
	return url.Values{
		"email":           {email},
		"password":        {"secret1"},
		"confirmPassword": {"secret1"},
		"carOwnerName":    {"Ravi"},
		"mobile":          {"9123456780"},
		"carType":         {"SUV"},
		"carNo":           {"DL01AB1234"},
		"termsAccepted":   {"true"},
	}
}

func TestRegisterDefaultExpiry(t *testing.T) {
	f := newFixture(t)
	w := f.post("/driver/auth/register", registration("ravi@example.com"))
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/driver/dashboard", w.Header().Get("Location"))
	assert.Equal(t, 1, f.backend.count(registerCall))
	assert.Equal(t, f.now.Add(7*24*time.Hour), f.store.Expires())

	s, ok := f.store.Load()
	require.True(t, ok)
	assert.Equal(t, "tok", s.Token)
	assert.Equal(t, "Ravi", s.Profile.CarOwnerName)

	w = f.get("/driver/dashboard")
	assert.Contains(t, w.Body.String(), "Registration Successful!")
}

func TestRegisterRejectedKeepsForm(t *testing.T) {
	f := newFixture(t)
	w := f.post("/driver/auth/register", registration("taken@example.com"))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, f.backend.count(registerCall))

	body := w.Body.String()
	assert.Contains(t, body, "Registration Failed")
	assert.Contains(t, body, "Email or mobile already registered")
	assert.Contains(t, body, `value="taken@example.com"`)
	assert.Contains(t, body, `value="Ravi"`)
	assert.Contains(t, body, `value="DL01AB1234"`)
	assert.NotContains(t, body, "secret1")
	_, ok := f.store.Load()
	assert.False(t, ok)
}

func TestLoginUnreachableBackend(t *testing.T) {
	backend := newFakeBackend(t)
	backend.srv.Close()
	f := newFixtureWith(t, backend.srv.URL+"/api", backend)

	w := f.post("/driver/auth/login", url.Values{"identifier": {"asha@example.com"}, "password": {"secret1"}})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Network Error")
	assert.Contains(t, w.Body.String(), "Unable to connect to server. Please try again.")
}

func TestCreatePostRefetchesOnceAndClosesDialog(t *testing.T) {
	f := newFixture(t)
	f.signIn("tok")

	w := f.get("/driver/dashboard?modal=create")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `role="dialog"`)
	assert.Contains(t, w.Body.String(), `name="ownerName" value="Asha"`)
	fetched := f.backend.count(myPostsCall)

	w = f.post("/driver/posts", validRide())
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, 1, f.backend.count(createCall))
	assert.Equal(t, "2030-01-01T00:00:00.000Z", f.backend.lastCreated().Date)
	assert.Equal(t, "2030-01-01T04:30:00.000Z", f.backend.lastCreated().Time)

	w = f.get(w.Header().Get("Location"))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, fetched+1, f.backend.count(myPostsCall))
	assert.Contains(t, w.Body.String(), "Post Created!")
	assert.NotContains(t, w.Body.String(), `role="dialog"`)
}

func TestCreatePostValidationNeverCallsBackend(t *testing.T) {
	f := newFixture(t)
	f.signIn("tok")

	form := validRide()
	form.Set("from", "")
	form.Set("availableSeats", "0")
	w := f.post("/driver/posts", form)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "From location is required")
	assert.Contains(t, body, "At least 1 seat required")
	assert.Contains(t, body, `role="dialog"`)
	assert.Zero(t, f.backend.count(createCall))
}

func TestCreatePostRejectedKeepsDialog(t *testing.T) {
	f := newFixture(t)
	f.signIn("tok")

	form := validRide()
	form.Set("from", "Fail")
	w := f.post("/driver/posts", form)
	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Server says no")
	assert.Contains(t, body, `role="dialog"`)
	assert.Contains(t, body, `value="Fail"`)
}

func TestCreatePostNonFinitePriceStaysInline(t *testing.T) {
	f := newFixture(t)
	f.signIn("tok")

	for _, price := range []string{"Inf", "NaN"} {
		form := validRide()
		form.Set("price", price)
		w := f.post("/driver/posts", form)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code, price)
		assert.Contains(t, w.Body.String(), "Price must be a number", price)
		assert.NotContains(t, w.Body.String(), "Network Error", price)
	}
	assert.Zero(t, f.backend.count(createCall))
}

func TestUpdatePostRefetchesOnceAndClosesDialog(t *testing.T) {
	f := newFixture(t)
	f.signIn("tok")

	w := f.get("/driver/dashboard?edit=p1")
	require.Equal(t, http.StatusOK, w.Code)
	fetched := f.backend.count(myPostsCall)

	form := validRide()
	form.Set("to", "Jaipur")
	form.Set("time", "18:45")
	w = f.post("/driver/posts/p1", form)
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/driver/dashboard", w.Header().Get("Location"))
	assert.Equal(t, 1, f.backend.count(updateCall))
	assert.Zero(t, f.backend.count(createCall))
	assert.Equal(t, "p1", f.backend.lastUpdated())
	sent := f.backend.lastCreated()
	assert.Equal(t, "Jaipur", sent.To)
	assert.Equal(t, "2030-01-01T00:00:00.000Z", sent.Date)
	assert.Equal(t, "2030-01-01T13:15:00.000Z", sent.Time)
	assert.Equal(t, fetched, f.backend.count(myPostsCall))

	w = f.get(w.Header().Get("Location"))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, fetched+1, f.backend.count(myPostsCall))
	assert.Contains(t, w.Body.String(), "Post Updated!")
	assert.NotContains(t, w.Body.String(), `role="dialog"`)
}

func TestUpdatePostRejectedKeepsEditDialog(t *testing.T) {
	f := newFixture(t)
	f.signIn("tok")

	form := validRide()
	form.Set("from", "Fail")
	w := f.post("/driver/posts/p1", form)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, f.backend.count(updateCall))

	body := w.Body.String()
	assert.Contains(t, body, "Server says no")
	assert.Contains(t, body, `role="dialog"`)
	assert.Contains(t, body, `action="/driver/posts/p1"`)
	assert.Contains(t, body, "Update post")
	assert.Contains(t, body, `value="Fail"`)
	assert.Contains(t, body, `value="10:00"`)
}

func TestEditDialogIsPrefilled(t *testing.T) {
	f := newFixture(t)
	f.signIn("tok")

	w := f.get("/driver/dashboard?edit=p1")
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `action="/driver/posts/p1"`)
	assert.Contains(t, body, `value="2030-01-01"`)
	assert.Contains(t, body, `value="10:00"`)
}

func TestDeleteFailureShowsMessageAndClosesDialog(t *testing.T) {
	f := newFixture(t)
	f.signIn("tok")

	w := f.get("/driver/dashboard?delete=p1")
	assert.Contains(t, w.Body.String(), `role="alertdialog"`)

	w = f.post("/driver/posts/p1/delete", nil)
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, 1, f.backend.count("DELETE /api/posts/:id"))
	assert.Equal(t, "p1", f.backend.lastDeleted())
	assert.Equal(t, "/driver/dashboard", w.Header().Get("Location"))

	w = f.get("/driver/dashboard")
	assert.Contains(t, w.Body.String(), "Not found")
	assert.NotContains(t, w.Body.String(), `role="alertdialog"`)
}

func TestStatisticsTab(t *testing.T) {
	f := newFixture(t)
	f.signIn("tok")

	w := f.get("/driver/dashboard?tab=stats")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Total Seats Offered")
}

func TestRejectedTokenEndsSession(t *testing.T) {
	f := newFixture(t)
	f.signIn("stale")

	w := f.get("/driver/dashboard")
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/driver/auth", w.Header().Get("Location"))
	_, ok := f.store.Load()
	assert.False(t, ok)
}

func TestLogout(t *testing.T) {
	f := newFixture(t)
	f.signIn("tok")

	w := f.post("/driver/logout", nil)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
	_, ok := f.store.Load()
	assert.False(t, ok)
}

func TestRidesShellAndResults(t *testing.T) {
	f := newFixture(t)

	w := f.get("/rides?from=Delhi&page=2")
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Equal(t, views.SkeletonCards, strings.Count(body, `class="card skeleton"`))
	assert.Contains(t, body, `data-src="/rides/results?from=Delhi&amp;page=2"`)

	w = f.get("/rides/results?from=Delhi&page=2")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "2", f.backend.lastListed().Get("page"))
	assert.Equal(t, "10", f.backend.lastListed().Get("limit"))
	assert.Equal(t, "Delhi", f.backend.lastListed().Get("from"))

	body = w.Body.String()
	assert.Contains(t, body, "Showing 1 of 21 rides")
	assert.Contains(t, body, `href="tel:9876543210"`)
	assert.Contains(t, body, `href="/rides?from=Delhi&amp;page=3">Next`)
	assert.Contains(t, body, `href="/rides?from=Delhi">Previous`)
}

func TestRideResultsUnreachable(t *testing.T) {
	backend := newFakeBackend(t)
	backend.srv.Close()
	f := newFixtureWith(t, backend.srv.URL+"/api", backend)

	w := f.get("/rides/results")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Unable to connect to server. Please try again later.")
}
