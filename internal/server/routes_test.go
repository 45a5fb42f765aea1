package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"fundfusion/internal/campaigns"
	"fundfusion/internal/config"
	"fundfusion/internal/database"
	"fundfusion/internal/donations"
	"fundfusion/internal/middleware"
	"fundfusion/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeDB struct{ status string }

func (f fakeDB) Health(ctx context.Context) map[string]string {
	return map[string]string{"status": f.status}
}

type fakeCampaigns struct {
	campaigns []campaigns.Campaign
	calls     int
}

func (f *fakeCampaigns) Create(ctx context.Context, c *campaigns.Campaign) (database.InsertResult, error) {
	f.calls++
	c.ID = primitive.NewObjectID()
	f.campaigns = append(f.campaigns, *c)
	return database.InsertResult{Acknowledged: true, InsertedID: c.ID.Hex()}, nil
}

func (f *fakeCampaigns) List(ctx context.Context, sortByAmount bool) ([]campaigns.Campaign, error) {
	f.calls++
	return append([]campaigns.Campaign{}, f.campaigns...), nil
}

func (f *fakeCampaigns) ListByOwner(ctx context.Context, email string) ([]campaigns.Campaign, error) {
	f.calls++
	out := []campaigns.Campaign{}
	for _, c := range f.campaigns {
		if c.Email == email {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeCampaigns) GetByID(ctx context.Context, id primitive.ObjectID) (*campaigns.Campaign, error) {
	f.calls++
	for _, c := range f.campaigns {
		if c.ID == id {
			found := c
			return &found, nil
		}
	}
	return nil, campaigns.ErrCampaignNotFound
}

func (f *fakeCampaigns) Delete(ctx context.Context, id primitive.ObjectID) (database.DeleteResult, error) {
	f.calls++
	return database.DeleteResult{Acknowledged: true}, nil
}

func (f *fakeCampaigns) Upsert(ctx context.Context, id primitive.ObjectID, fields campaigns.Fields, owner string) (database.UpdateResult, error) {
	f.calls++
	return database.UpdateResult{Acknowledged: true}, nil
}

type fakeDonations struct{ calls int }

func (f *fakeDonations) Create(ctx context.Context, d *donations.Donation) (database.InsertResult, error) {
	f.calls++
	return database.InsertResult{Acknowledged: true, InsertedID: primitive.NewObjectID().Hex()}, nil
}

func (f *fakeDonations) ListByDonor(ctx context.Context, email string) ([]donations.Donation, error) {
	f.calls++
	return []donations.Donation{}, nil
}

type fakeStorage struct{ healthErr error }

func (f fakeStorage) GeneratePresignedUploadURL(ctx context.Context, key, contentType string, ttl time.Duration) (string, error) {
	return "http://localhost:9000/photos/" + key, nil
}

func (f fakeStorage) PublicURL(key string) string { return "http://localhost:9000/photos/" + key }

func (f fakeStorage) EnsureBucketExists(ctx context.Context) error { return nil }

func (f fakeStorage) Health(ctx context.Context) error { return f.healthErr }

type testEnv struct {
	handler   http.Handler
	campaigns *fakeCampaigns
	donations *fakeDonations
}

func newTestEnv(t *testing.T, guardAll bool, deps Deps) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		Port:              3000,
		Environment:       "development",
		AccessTokenSecret: "server-test-secret",
		AccessTokenTTL:    8 * time.Hour,
		AllowedOrigins:    []string{"http://localhost:5173", "https://fundfusions.netlify.app"},
		GuardAllMutations: guardAll,
	}

	env := &testEnv{campaigns: &fakeCampaigns{}, donations: &fakeDonations{}}
	deps.Campaigns = env.campaigns
	deps.Donations = env.donations
	deps.Sessions = session.NewManager([]byte(cfg.AccessTokenSecret), cfg.AccessTokenTTL, false)
	if deps.DB == nil {
		deps.DB = fakeDB{status: "up"}
	}

	env.handler = New(cfg, deps).RegisterRoutes()
	return env
}

func (e *testEnv) do(method, target, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	e.handler.ServeHTTP(w, req)
	return w
}

func (e *testEnv) login(t *testing.T, email string) *http.Cookie {
	t.Helper()
	w := e.do(http.MethodPost, "/jwt", `{"email":"`+email+`"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true}`, w.Body.String())

	for _, c := range w.Result().Cookies() {
		if c.Name == session.CookieName {
			return c
		}
	}
	t.Fatal("no token cookie issued")
	return nil
}

func TestBanner(t *testing.T) {
	env := newTestEnv(t, false, Deps{})

	w := env.do(http.MethodGet, "/", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, banner, w.Body.String())
	assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))
}

func TestHealth(t *testing.T) {
	t.Run("up", func(t *testing.T) {
		env := newTestEnv(t, false, Deps{Storage: fakeStorage{}})

		w := env.do(http.MethodGet, "/health", "")
		require.Equal(t, http.StatusOK, w.Code)

		var body map[string]map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "up", body["database"]["status"])
		assert.Equal(t, "up", body["storage"]["status"])
	})

	t.Run("database down", func(t *testing.T) {
		env := newTestEnv(t, false, Deps{DB: fakeDB{status: "down"}})

		w := env.do(http.MethodGet, "/health", "")
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})

	t.Run("storage down is reported", func(t *testing.T) {
		env := newTestEnv(t, false, Deps{Storage: fakeStorage{healthErr: errors.New("bucket missing")}})

		w := env.do(http.MethodGet, "/health", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "bucket missing")
	})
}

func TestOwnerListingFlow(t *testing.T) {
	env := newTestEnv(t, false, Deps{})
	env.campaigns.campaigns = []campaigns.Campaign{
		{ID: primitive.NewObjectID(), Email: "alice@example.com", Title: "A1"},
		{ID: primitive.NewObjectID(), Email: "bob@example.com", Title: "B1"},
	}
	cookie := env.login(t, "alice@example.com")

	w := env.do(http.MethodGet, "/myCampaign?email=alice@example.com", "", cookie)
	require.Equal(t, http.StatusOK, w.Code)
	var mine []campaigns.Campaign
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &mine))
	require.Len(t, mine, 1)
	assert.Equal(t, "A1", mine[0].Title)

	calls := env.campaigns.calls
	w = env.do(http.MethodGet, "/myCampaign?email=bob@example.com", "", cookie)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.JSONEq(t, `{"success":false,"message":"forbidden access"}`, w.Body.String())
	assert.Equal(t, calls, env.campaigns.calls)

	w = env.do(http.MethodGet, "/myCampaign?email=alice@example.com", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"success":false,"message":"unauthorized access"}`, w.Body.String())
}

func TestLogoutClearsCookie(t *testing.T) {
	env := newTestEnv(t, false, Deps{})

	w := env.do(http.MethodPost, "/logout", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true}`, w.Body.String())

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, session.CookieName, cookies[0].Name)
	assert.True(t, cookies[0].MaxAge < 0)
}

func TestDefaultModeLeavesMutationsOpen(t *testing.T) {
	env := newTestEnv(t, false, Deps{})
	id := primitive.NewObjectID().Hex()

	tests := []struct {
		method, target, body string
	}{
		{http.MethodPost, "/addCampaign", `{"email":"x@example.com","title":"t"}`},
		{http.MethodDelete, "/myCampaign/" + id, ""},
		{http.MethodPut, "/updateCampaign", `{"_id":"` + id + `","title":"t"}`},
		{http.MethodPost, "/campaign/" + id, `{"email":"x@example.com","amount":5}`},
		{http.MethodGet, "/myDonations?email=x@example.com", ""},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.target, func(t *testing.T) {
			w := env.do(tt.method, tt.target, tt.body)
			assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
		})
	}
}

func TestGuardAllMutations(t *testing.T) {
	env := newTestEnv(t, true, Deps{})
	id := primitive.NewObjectID().Hex()

	guarded := []struct {
		method, target, body string
	}{
		{http.MethodPost, "/addCampaign", `{"email":"x@example.com"}`},
		{http.MethodDelete, "/myCampaign/" + id, ""},
		{http.MethodPut, "/updateCampaign", `{"title":"t"}`},
		{http.MethodPost, "/campaign/" + id, `{"email":"x@example.com"}`},
		{http.MethodGet, "/myDonations?email=x@example.com", ""},
	}
	for _, tt := range guarded {
		t.Run(tt.method+" "+tt.target, func(t *testing.T) {
			w := env.do(tt.method, tt.target, tt.body)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
	assert.Zero(t, env.campaigns.calls)
	assert.Zero(t, env.donations.calls)

	// reads stay public
	w := env.do(http.MethodGet, "/campaigns", "")
	assert.Equal(t, http.StatusOK, w.Code)

	cookie := env.login(t, "x@example.com")
	w = env.do(http.MethodPost, "/addCampaign", `{"email":"x@example.com","title":"mine"}`, cookie)
	assert.Equal(t, http.StatusOK, w.Code)

	w = env.do(http.MethodPost, "/addCampaign", `{"email":"y@example.com","title":"theirs"}`, cookie)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestCORS(t *testing.T) {
	env := newTestEnv(t, false, Deps{})

	preflight := func(origin string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodOptions, "/addCampaign", nil)
		req.Header.Set("Origin", origin)
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		w := httptest.NewRecorder()
		env.handler.ServeHTTP(w, req)
		return w
	}

	w := preflight("https://fundfusions.netlify.app")
	assert.Equal(t, "https://fundfusions.netlify.app", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))

	w = preflight("https://evil.example.com")
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestPhotoUploadRoute(t *testing.T) {
	t.Run("absent without storage", func(t *testing.T) {
		env := newTestEnv(t, false, Deps{})
		cookie := env.login(t, "alice@example.com")

		w := env.do(http.MethodPost, "/uploads/photo-url", `{"filename":"a.png","contentType":"image/png"}`, cookie)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("guarded", func(t *testing.T) {
		env := newTestEnv(t, false, Deps{Storage: fakeStorage{}})

		w := env.do(http.MethodPost, "/uploads/photo-url", `{"filename":"a.png","contentType":"image/png"}`)
		assert.Equal(t, http.StatusUnauthorized, w.Code)

		cookie := env.login(t, "alice@example.com")
		w = env.do(http.MethodPost, "/uploads/photo-url", `{"filename":"a.png","contentType":"image/png"}`, cookie)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "uploadUrl")
	})
}
