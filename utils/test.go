package utils

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Govind-619/TurfSphere/models"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// TestSecret signs tokens issued by test helpers.
const TestSecret = "test-secret"

// CreateTestUser stores an active user with the given role. The mobile is
// derived from name so fixtures stay unique.
func CreateTestUser(t *testing.T, db *gorm.DB, name, role string) *models.User {
	t.Helper()
	hash, err := HashPassword("password123")
	require.NoError(t, err)

	var n int64
	db.Model(&models.User{}).Count(&n)
	user := &models.User{
		Username: name,
		Email:    name + "@example.com",
		Mobile:   fmt.Sprintf("+9198765%05d", n+1),
		Password: hash,
		Role:     role,
		IsActive: true,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// TestTurf is a turf with one ground and one slot on it.
type TestTurf struct {
	Turf   *models.Turf
	Ground *models.Ground
	Slot   *models.Slot
}

// CreateTestTurf stores a turf owned by owner priced at 1000 rupees an hour.
func CreateTestTurf(t *testing.T, db *gorm.DB, owner *models.User, approved bool) TestTurf {
	t.Helper()
	turf := &models.Turf{
		Name:         owner.Username + " Arena",
		Location:     "Kochi",
		PricePerHour: 100000,
		OwnerID:      owner.ID,
		IsApproved:   approved,
	}
	require.NoError(t, db.Create(turf).Error)
	ground := &models.Ground{Name: "Ground 1", TurfID: turf.ID}
	require.NoError(t, db.Create(ground).Error)
	slot := &models.Slot{GroundID: ground.ID, StartTime: "06:00", EndTime: "07:00"}
	require.NoError(t, db.Create(slot).Error)
	return TestTurf{Turf: turf, Ground: ground, Slot: slot}
}

// TestRequest represents a test HTTP request
type TestRequest struct {
	Method  string
	Path    string
	Body    interface{}
	Headers map[string]string
}

// TestResponse represents a test HTTP response
type TestResponse struct {
	StatusCode  int
	ContentType string
	Raw         []byte
	Body        map[string]interface{}
}

// MakeTestRequest makes a test HTTP request. JSON responses are decoded into
// Body.
func MakeTestRequest(t *testing.T, router *gin.Engine, req TestRequest) TestResponse {
	t.Helper()
	var body []byte
	if req.Body != nil {
		var err error
		body, err = json.Marshal(req.Body)
		require.NoError(t, err, "marshal request body")
	}

	httpReq, err := http.NewRequest(req.Method, req.Path, bytes.NewBuffer(body))
	require.NoError(t, err, "create request")
	httpReq.Header.Set("Content-Type", "application/json")
	for key, value := range req.Headers {
		httpReq.Header.Set(key, value)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httpReq)

	resp := TestResponse{
		StatusCode:  w.Code,
		ContentType: w.Header().Get("Content-Type"),
		Raw:         w.Body.Bytes(),
	}
	if w.Body.Len() > 0 && strings.Contains(resp.ContentType, "json") {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp.Body), "unmarshal response body")
	}
	return resp
}

// AssertResponse checks the status code and, when given, the envelope message.
func AssertResponse(t *testing.T, response TestResponse, expectedStatusCode int, expectedMessage string) {
	t.Helper()
	assert.Equal(t, expectedStatusCode, response.StatusCode, "body: %s", response.Raw)
	if expectedMessage != "" {
		assert.Equal(t, expectedMessage, response.Body["message"])
	}
}

// GetTestToken returns a bearer header for user signed with TestSecret.
func GetTestToken(t *testing.T, user *models.User) map[string]string {
	t.Helper()
	token, err := GenerateToken(user, TestSecret, time.Hour)
	require.NoError(t, err)
	return map[string]string{"Authorization": "Bearer " + token}
}
