package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"biogram-server/internal/models"
	"biogram-server/internal/store"
	"biogram-server/internal/summary"
	"biogram-server/internal/utils"
	"biogram-server/internal/views"
)

const (
	wearablePath       = "/health/wearable"
	connectDevicesPath = "/connect-devices"
)

var supportedDevices = []views.SupportedDevice{
	{Name: "Apple Watch", Kind: "smartwatch"},
	{Name: "Fitbit", Kind: "fitness tracker"},
	{Name: "Garmin", Kind: "smartwatch"},
	{Name: "Oura Ring", Kind: "smart ring"},
	{Name: "Withings", Kind: "smart scale"},
	{Name: "Google Fit", Kind: "phone app"},
}

// WearableHandler handles wearable data and device connections.
type WearableHandler struct {
	base
}

func NewWearableHandler(d Deps) *WearableHandler {
	return &WearableHandler{base: newBase(d)}
}

// WearableRequest is one day's aggregate entered by hand or posted by a
// device integration. Zero metrics are stored as not measured.
type WearableRequest struct {
	Date           string   `form:"date" json:"date" binding:"required"`
	DeviceName     string   `form:"device_name" json:"device_name" binding:"required,max=100"`
	Steps          *int     `form:"steps" json:"steps" binding:"omitempty,gte=0"`
	CaloriesBurned *int     `form:"calories_burned" json:"calories_burned" binding:"omitempty,gte=0"`
	ActiveMinutes  *int     `form:"active_minutes" json:"active_minutes" binding:"omitempty,gte=0,lte=1440"`
	SleepHours     *float64 `form:"sleep_hours" json:"sleep_hours" binding:"omitempty,gte=0,lte=24"`
	HeartRateAvg   *int     `form:"heart_rate_avg" json:"heart_rate_avg" binding:"omitempty,gte=0"`
	HeartRateMin   *int     `form:"heart_rate_min" json:"heart_rate_min" binding:"omitempty,gte=0"`
	HeartRateMax   *int     `form:"heart_rate_max" json:"heart_rate_max" binding:"omitempty,gte=0"`
	StressLevel    *int     `form:"stress_level" json:"stress_level" binding:"omitempty,gte=0,lte=10"`
}

// Show renders the last month of device data with averages and advisories.
func (h *WearableHandler) Show(c *gin.Context) {
	ctx := c.Request.Context()
	owner := h.owner(c)

	window := store.LastDays(h.now(), summary.WearablePageDays+1)
	days, err := h.repos.Wearables.List(ctx, owner, window)
	if err != nil {
		h.fail(c, err, "")
		return
	}
	latest, err := h.repos.Vitals.Latest(ctx, owner)
	if err != nil {
		h.fail(c, err, "")
		return
	}

	agg := summary.AggregateWearables(days)
	shown := days
	if len(shown) > summary.WearablePageDays {
		shown = shown[:summary.WearablePageDays]
	}
	h.render(c, views.Wearable{
		Page:         h.page(c, "Wearable Data"),
		From:         window.From,
		To:           window.To,
		Days:         shown,
		Aggregates:   agg,
		LatestVitals: latest,
		Advisories:   summary.Advisories(agg),
	})
}

// Sync stores one device day. A repeated (date, device) overwrites the
// stored metrics.
func (h *WearableHandler) Sync(c *gin.Context) {
	back := wearablePath
	if c.FullPath() == connectDevicesPath {
		back = connectDevicesPath
	}

	var req WearableRequest
	if err := utils.BindAndValidate(c, &req); err != nil {
		h.fail(c, err, back)
		return
	}
	if !h.writable(c, back) {
		return
	}
	date, err := utils.ParseDate("date", req.Date)
	if err != nil {
		h.fail(c, err, back)
		return
	}

	day := &models.WearableData{
		UserID:        h.owner(c),
		DeviceName:    strings.TrimSpace(req.DeviceName),
		Date:          date,
		Steps:         nilIfZero(req.Steps),
		Calories:      nilIfZero(req.CaloriesBurned),
		ActiveMinutes: nilIfZero(req.ActiveMinutes),
		SleepHours:    nilIfZero(req.SleepHours),
		HeartRateAvg:  nilIfZero(req.HeartRateAvg),
		HeartRateMin:  nilIfZero(req.HeartRateMin),
		HeartRateMax:  nilIfZero(req.HeartRateMax),
		StressLevel:   nilIfZero(req.StressLevel),
		SyncTime:      h.now(),
	}
	created, err := h.repos.Wearables.Upsert(c.Request.Context(), day)
	if err != nil {
		h.fail(c, err, back)
		return
	}

	if created {
		utils.Done(c, http.StatusCreated, "Wearable data saved.", day, back)
		return
	}
	utils.Done(c, http.StatusOK, "Wearable data for that day was updated.", day, back)
}

func (h *WearableHandler) Delete(c *gin.Context) {
	if !h.writable(c, wearablePath) {
		return
	}
	if err := h.repos.Wearables.Delete(c.Request.Context(), h.owner(c), c.Param("id")); err != nil {
		h.fail(c, err, wearablePath)
		return
	}
	utils.Done(c, http.StatusOK, "Wearable data deleted successfully.", nil, wearablePath)
}

// ConnectDevices lists the devices that have synced and where a gateway
// should publish new syncs.
func (h *WearableHandler) ConnectDevices(c *gin.Context) {
	owner := h.owner(c)
	devices, err := h.repos.Wearables.Devices(c.Request.Context(), owner)
	if err != nil {
		h.fail(c, err, "")
		return
	}
	if devices == nil {
		devices = []store.DeviceSync{}
	}

	h.render(c, views.ConnectDevices{
		Page:      h.page(c, "Connect Devices"),
		Connected: devices,
		Supported: supportedDevices,
		SyncTopic: syncTopic(h.cfg.MQTT.Topic, owner),
	})
}

// syncTopic fills the single-level wildcard of the bridge subscription.
func syncTopic(pattern, owner string) string {
	if pattern == "" || !strings.Contains(pattern, "+") {
		return ""
	}
	return strings.Replace(pattern, "+", owner, 1)
}
