package utils

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Govind-619/TurfSphere/models"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeMobile(t *testing.T) {
	tests := []struct {
		raw, region, want string
	}{
		{"9876543210", "IN", "+919876543210"},
		{"+91 98765 43210", "IN", "+919876543210"},
		{"098765 43210", "IN", "+919876543210"},
		{"", "IN", ""},
		{"12345", "IN", ""},
		{"not a number", "IN", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeMobile(tt.raw, tt.region), tt.raw)
	}
}

func TestParseLooseID(t *testing.T) {
	tests := []struct {
		in     interface{}
		want   uint
		wantOK bool
	}{
		{"#BK101", 101, true},
		{"42", 42, true},
		{float64(7), 7, true},
		{float64(7.5), 0, false},
		{float64(-1), 0, false},
		{"BK", 0, false},
		{"#BK000", 0, false},
		{nil, 0, false},
		{true, 0, false},
	}
	for _, tt := range tests {
		got, ok := ParseLooseID(tt.in)
		assert.Equal(t, tt.wantOK, ok, "%v", tt.in)
		assert.Equal(t, tt.want, got, "%v", tt.in)
	}
}

func TestTokenRoundTrip(t *testing.T) {
	user := &models.User{Role: models.RoleVendor}
	user.ID = 12

	token, err := GenerateToken(user, TestSecret, time.Hour)
	require.NoError(t, err)

	claims, err := ParseToken(token, TestSecret)
	require.NoError(t, err)
	assert.Equal(t, uint(12), claims.UserID)
	assert.Equal(t, models.RoleVendor, claims.Role)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt, time.Minute)

	_, err = ParseToken(token, "wrong-secret")
	assert.Error(t, err)

	expired, err := GenerateToken(user, TestSecret, -time.Minute)
	require.NoError(t, err)
	_, err = ParseToken(expired, TestSecret)
	assert.Error(t, err)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("secret123")
	require.NoError(t, err)
	assert.True(t, CheckPassword("secret123", hash))
	assert.False(t, CheckPassword("secret124", hash))
}

func TestGenerateOTP(t *testing.T) {
	code, err := GenerateOTP()
	require.NoError(t, err)
	assert.Regexp(t, `^\d{6}$`, code)
}

func TestValidateCredentials(t *testing.T) {
	assert.True(t, ValidateUsername("ravi_99"))
	assert.False(t, ValidateUsername("ra"))
	assert.False(t, ValidateUsername("ravi kumar"))

	assert.True(t, ValidatePassword("secret123"))
	assert.False(t, ValidatePassword("secret"))
	assert.False(t, ValidatePassword("12345678"))
	assert.False(t, ValidatePassword("abcdefgh"))
}

func TestDatesAndClockTimes(t *testing.T) {
	day, err := ParseDate(" 2026-10-18 ")
	require.NoError(t, err)
	assert.Equal(t, time.Sunday, day.Weekday())
	_, err = ParseDate("18/10/2026")
	assert.Error(t, err)

	assert.True(t, IsClockTime("06:00"))
	assert.True(t, IsClockTime("23:59:59"))
	assert.False(t, IsClockTime("24:00"))
	assert.False(t, IsClockTime("6am"))
}

func TestStatusOf(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, StatusOf(NotFoundError("missing", nil)))
	assert.Equal(t, http.StatusConflict, StatusOf(WrapError(ConflictError("taken", nil), "confirm")))
	assert.Equal(t, http.StatusInternalServerError, StatusOf(errors.New("boom")))
	assert.True(t, IsBadRequestError(BadRequestError("bad", nil)))

	cause := errors.New("db down")
	err := InternalError("Database error", cause)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "Database error: db down", err.Error())
	assert.Nil(t, WrapError(nil, "ignored"))
}

func TestPaiseToRupees(t *testing.T) {
	assert.Equal(t, 1000.0, PaiseToRupees(100000))
	assert.Equal(t, 12.5, PaiseToRupees(1250))
}

func TestNewPagination(t *testing.T) {
	gin.SetMode(gin.TestMode)
	page := func(query string) *Pagination {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest(http.MethodGet, "/turfs?"+query, nil)
		return NewPagination(c)
	}

	p := page("")
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 20, p.Limit)
	assert.Equal(t, 0, p.Offset)

	p = page("page=3&per_page=10")
	assert.Equal(t, 20, p.Offset)
	p.SetTotal(41)
	assert.Equal(t, 5, p.LastPage)

	p = page("page=-2&per_page=500")
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 100, p.Limit)
}
