package utils

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"biogram-server/internal/apperr"
	"biogram-server/internal/config"
	"biogram-server/internal/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testConfig() *config.Config {
	return &config.Config{JWT: config.JWTConfig{
		Secret:                 "access",
		RefreshSecret:          "refresh",
		DoctorSecret:           "doctor",
		ExpirationMinutes:      15,
		RefreshExpirationHours: 1,
	}}
}

func TestGenerateTokens_CarrySession(t *testing.T) {
	cfg := testConfig()
	user := &models.User{BaseModel: models.BaseModel{ID: "u1"}, Role: models.RoleUser}

	access, refresh, err := GenerateTokens(user, "s1", cfg)
	require.NoError(t, err)

	claims, err := ValidateAccessToken(access, cfg.JWT.Secret)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, "s1", claims.SessionID)
	assert.Equal(t, AccessTokenType, claims.TokenType)

	_, err = ValidateRefreshToken(access, cfg.JWT.RefreshSecret)
	assert.Error(t, err, "access token must not validate as refresh token")

	claims, err = ValidateRefreshToken(refresh, cfg.JWT.RefreshSecret)
	require.NoError(t, err)
	assert.Equal(t, RefreshTokenType, claims.TokenType)

	_, refresh2, err := GenerateTokens(user, "s1", cfg)
	require.NoError(t, err)
	assert.NotEqual(t, refresh, refresh2)
}

func TestTokenType_EnforcedWithSharedSecret(t *testing.T) {
	cfg := testConfig()
	cfg.JWT.RefreshSecret = cfg.JWT.Secret
	user := &models.User{BaseModel: models.BaseModel{ID: "u1"}, Role: models.RoleUser}

	access, refresh, err := GenerateTokens(user, "s1", cfg)
	require.NoError(t, err)

	_, err = ValidateAccessToken(refresh, cfg.JWT.Secret)
	assert.Error(t, err, "refresh token must not pass as access token")
	_, err = ValidateRefreshToken(access, cfg.JWT.RefreshSecret)
	assert.Error(t, err, "access token must not pass as refresh token")

	_, err = ValidateAccessToken(access, cfg.JWT.Secret)
	assert.NoError(t, err)
}

func TestDoctorToken(t *testing.T) {
	cfg := testConfig()

	token, expires, err := GenerateDoctorToken("p1", "g1", 30*time.Minute, cfg)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(30*time.Minute), expires, time.Minute)

	claims, err := ValidateDoctorToken(token, cfg.JWT.DoctorSecret)
	require.NoError(t, err)
	assert.Equal(t, "p1", claims.PatientID)
	assert.Equal(t, DoctorSummaryScope, claims.Scope)

	_, err = ValidateDoctorToken(token, cfg.JWT.Secret)
	assert.Error(t, err)

	expired, _, err := GenerateDoctorToken("p1", "g1", -time.Minute, cfg)
	require.NoError(t, err)
	_, err = ValidateDoctorToken(expired, cfg.JWT.DoctorSecret)
	assert.Error(t, err)
}

func TestDoctorToken_RejectsAccessToken(t *testing.T) {
	cfg := testConfig()
	cfg.JWT.DoctorSecret = cfg.JWT.Secret
	access, _, err := GenerateTokens(&models.User{BaseModel: models.BaseModel{ID: "u1"}}, "s1", cfg)
	require.NoError(t, err)

	_, err = ValidateDoctorToken(access, cfg.JWT.DoctorSecret)
	assert.Error(t, err)
}

type signupForm struct {
	Username string `form:"username" json:"username" binding:"required"`
	Email    string `form:"email" json:"email" binding:"required,email"`
}

func TestBindAndValidate_NamesField(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	body := url.Values{"username": {"alice"}, "email": {"not-an-email"}}.Encode()
	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var form signupForm
	err := BindAndValidate(c, &form)

	ve, ok := apperr.AsValidation(err)
	require.True(t, ok)
	assert.Equal(t, "email", ve.Field)
	assert.Equal(t, "alice", form.Username)
}

func TestBindAndValidate_JSON(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"username":"bob","email":"bob@example.com"}`))
	c.Request.Header.Set("Content-Type", "application/json")

	var form signupForm
	require.NoError(t, BindAndValidate(c, &form))
	assert.Equal(t, "bob@example.com", form.Email)
}

func TestFlash_RoundTrip(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", nil)

	AddFlash(c, FlashSuccess, "Saved.")
	AddFlash(c, FlashInfo, "Second.")

	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)
	last := cookies[len(cookies)-1]

	w2 := httptest.NewRecorder()
	c2, _ := gin.CreateTestContext(w2)
	c2.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c2.Request.AddCookie(last)

	messages := PopFlashes(c2)
	require.Len(t, messages, 2)
	assert.Equal(t, "Saved.", messages[0].Message)
	assert.Equal(t, FlashInfo, messages[1].Level)
	assert.Contains(t, w2.Header().Get("Set-Cookie"), "flash=;")
}

func TestDone_FormRedirects(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader("a=b"))
	c.Request.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	Done(c, http.StatusCreated, "Created.", nil, "/health/timeline")

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/health/timeline", w.Header().Get("Location"))
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("date", "2025-10-20")
	require.NoError(t, err)
	assert.Equal(t, 20, d.Day())

	evening, err := ParseDate("date", "2025-10-20T23:30:00-05:00")
	require.NoError(t, err)
	assert.True(t, evening.Equal(time.Date(2025, 10, 20, 0, 0, 0, 0, time.UTC)), evening.String())
	assert.Equal(t, d, evening)

	_, err = ParseDate("date", "20/10/2025")
	ve, ok := apperr.AsValidation(err)
	require.True(t, ok)
	assert.Equal(t, "date", ve.Field)

	opt, err := ParseOptionalDate("end_date", "")
	require.NoError(t, err)
	assert.Nil(t, opt)

	at, err := ParseDateTime("recorded_at", "2025-10-20T08:30")
	require.NoError(t, err)
	assert.Equal(t, 8, at.Hour())

	_, _, err = DateRangeQuery("2025-10-20", "2025-10-01")
	assert.Error(t, err)
}

func TestCheckbox_FormAndJSON(t *testing.T) {
	type req struct {
		IsImportant Checkbox `form:"is_important" json:"is_important"`
	}

	form := url.Values{"is_important": {"on"}}
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
	c.Request.Header.Set("Content-Type", gin.MIMEPOSTForm)
	var fromForm req
	require.NoError(t, BindAndValidate(c, &fromForm))
	assert.True(t, bool(fromForm.IsImportant))

	for body, want := range map[string]bool{
		`{"is_important":true}`:  true,
		`{"is_important":"on"}`:  true,
		`{"is_important":false}`: false,
		`{}`:                     false,
	} {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", gin.MIMEJSON)
		var fromJSON req
		require.NoError(t, BindAndValidate(c, &fromJSON), body)
		assert.Equal(t, want, bool(fromJSON.IsImportant), body)
	}
}
