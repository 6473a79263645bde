package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"biogram-server/internal/config"
	"biogram-server/internal/utils"
)

// Doctor access capability transport.
const (
	DoctorAccessCookie = "doctor_access"
	DoctorAccessHeader = "X-Doctor-Access"
	DoctorAccessPath   = "/doctor-access"
)

const (
	ctxDoctorPatientID = "doctorPatientID"
	ctxDoctorGrantID   = "doctorGrantID"
	ctxDoctorUntil     = "doctorAccessUntil"
)

// DoctorAccessMiddleware admits requests carrying a valid doctor access
// token and sends everyone else back to the code entry page.
func DoctorAccessMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader(DoctorAccessHeader)
		if token == "" {
			token, _ = c.Cookie(DoctorAccessCookie)
		}

		claims, err := utils.ValidateDoctorToken(token, cfg.JWT.DoctorSecret)
		if token == "" || err != nil {
			utils.SeeOther(c, DoctorAccessPath)
			c.Abort()
			return
		}

		c.Set(ctxDoctorPatientID, claims.PatientID)
		c.Set(ctxDoctorGrantID, claims.GrantID)
		if claims.ExpiresAt != nil {
			c.Set(ctxDoctorUntil, claims.ExpiresAt.Time)
		}
		c.Next()
	}
}

// GetDoctorPatientID returns the patient a doctor access token unlocked.
func GetDoctorPatientID(c *gin.Context) (string, bool) {
	return getString(c, ctxDoctorPatientID)
}

// GetDoctorGrantID returns the grant the doctor access token was issued for.
func GetDoctorGrantID(c *gin.Context) (string, bool) {
	return getString(c, ctxDoctorGrantID)
}

// GetDoctorAccessUntil returns when the doctor access token expires.
func GetDoctorAccessUntil(c *gin.Context) (time.Time, bool) {
	v, ok := c.Get(ctxDoctorUntil)
	if !ok {
		return time.Time{}, false
	}
	t, ok := v.(time.Time)
	return t, ok
}
