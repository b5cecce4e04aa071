package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Anuj092/alerting-platform/config"
	"github.com/Anuj092/alerting-platform/internal/dto"
	"github.com/Anuj092/alerting-platform/internal/model"
	"github.com/Anuj092/alerting-platform/internal/scheduler"
	"github.com/Anuj092/alerting-platform/internal/service"
	"github.com/Anuj092/alerting-platform/pkg/response"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ═══════════════════════════════════════════════════════════
// Mock Services
// ═══════════════════════════════════════════════════════════

// ── Mock AlertService ──

type mockAlertService struct {
	createResult *model.Alert
	createErr    error
	getResult    *model.Alert
	getErr       error
	updateErr    error
	archiveErr   error
	toggleResult bool
	toggleErr    error
	remindersErr error
	listResult   []dto.AdminAlertResponse
	listErr      error
}

func (m *mockAlertService) RegisterObserver(_ service.AlertObserver) {}
func (m *mockAlertService) Create(_ context.Context, _ *dto.CreateAlertRequest, _ uint) (*model.Alert, error) {
	return m.createResult, m.createErr
}
func (m *mockAlertService) GetByID(_ context.Context, _ uint) (*model.Alert, error) {
	return m.getResult, m.getErr
}
func (m *mockAlertService) Update(_ context.Context, _ uint, _ *dto.UpdateAlertRequest) error {
	return m.updateErr
}
func (m *mockAlertService) Archive(_ context.Context, _ uint) error {
	return m.archiveErr
}
func (m *mockAlertService) ToggleActive(_ context.Context, _ uint) (bool, error) {
	return m.toggleResult, m.toggleErr
}
func (m *mockAlertService) ToggleReminders(_ context.Context, _ uint, _ bool) error {
	return m.remindersErr
}
func (m *mockAlertService) AdminList(_ context.Context, _ *dto.AdminAlertListRequest) ([]dto.AdminAlertResponse, error) {
	return m.listResult, m.listErr
}

// ── Mock PreferenceService ──

type mockPreferenceService struct {
	snoozeErr      error
	readErr        error
	unreadErr      error
	listResult     []dto.UserAlertResponse
	listErr        error
	snoozedResult  []dto.SnoozedAlertResponse
	snoozedListErr error
}

func (m *mockPreferenceService) Snooze(_ context.Context, _, _ uint) error {
	return m.snoozeErr
}
func (m *mockPreferenceService) MarkRead(_ context.Context, _, _ uint) error {
	return m.readErr
}
func (m *mockPreferenceService) MarkUnread(_ context.Context, _, _ uint) error {
	return m.unreadErr
}
func (m *mockPreferenceService) ListForUser(_ context.Context, _ uint) ([]dto.UserAlertResponse, error) {
	return m.listResult, m.listErr
}
func (m *mockPreferenceService) ListSnoozed(_ context.Context, _ uint) ([]dto.SnoozedAlertResponse, error) {
	return m.snoozedResult, m.snoozedListErr
}

// ── Mock ReminderService（供调度器触发钩子）──

type mockReminderService struct {
	processErr error
	calls      int
}

func (m *mockReminderService) ProcessReminders(_ context.Context) error {
	m.calls++
	return m.processErr
}

// ═══════════════════════════════════════════════════════════
// Helpers
// ═══════════════════════════════════════════════════════════

func jsonBody(v interface{}) io.Reader {
	b, _ := json.Marshal(v)
	return bytes.NewReader(b)
}

func parseResponse(w *httptest.ResponseRecorder) response.Response {
	var resp response.Response
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	return resp
}

func newTestScheduler(reminders service.ReminderService) *scheduler.Scheduler {
	return scheduler.New(reminders, &config.SchedulerConfig{
		Interval: time.Hour,
		Backoff:  time.Second,
	}, zap.NewNop())
}

// ═══════════════════════════════════════════════════════════
// AlertHandler Tests
// ═══════════════════════════════════════════════════════════

func TestAlertHandler_CreateAlert_Success(t *testing.T) {
	mock := &mockAlertService{createResult: &model.Alert{ID: 42}}
	h := NewAlertHandler(mock, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/admin/alerts", jsonBody(dto.CreateAlertRequest{
		Title:          "数据库维护",
		Message:        "周六停机",
		Severity:       "Warning",
		VisibilityType: "Organization",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/admin/alerts", h.CreateAlert)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 0 {
		t.Errorf("expected code 0, got %d", resp.Code)
	}
}

func TestAlertHandler_CreateAlert_BadSeverity(t *testing.T) {
	mock := &mockAlertService{}
	h := NewAlertHandler(mock, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/admin/alerts", jsonBody(dto.CreateAlertRequest{
		Title:          "x",
		Message:        "y",
		Severity:       "Fatal", // 不在枚举内
		VisibilityType: "Organization",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/admin/alerts", h.CreateAlert)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestAlertHandler_GetAlert_Success(t *testing.T) {
	mock := &mockAlertService{getResult: &model.Alert{ID: 7, Title: "磁盘告警"}}
	h := NewAlertHandler(mock, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/admin/alerts/7", nil)

	r := gin.New()
	r.GET("/admin/alerts/:id", h.GetAlert)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestAlertHandler_GetAlert_NotFound(t *testing.T) {
	mock := &mockAlertService{getErr: service.ErrAlertNotFound}
	h := NewAlertHandler(mock, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/admin/alerts/99", nil)

	r := gin.New()
	r.GET("/admin/alerts/:id", h.GetAlert)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

func TestAlertHandler_UpdateAlert_NotFound(t *testing.T) {
	mock := &mockAlertService{updateErr: service.ErrAlertNotFound}
	h := NewAlertHandler(mock, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("PUT", "/admin/alerts/99", jsonBody(map[string]string{"title": "x"}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.PUT("/admin/alerts/:id", h.UpdateAlert)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 20001 {
		t.Errorf("expected error code 20001, got %d", resp.Code)
	}
}

func TestAlertHandler_UpdateAlert_BadID(t *testing.T) {
	mock := &mockAlertService{}
	h := NewAlertHandler(mock, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("PUT", "/admin/alerts/abc", jsonBody(map[string]string{}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.PUT("/admin/alerts/:id", h.UpdateAlert)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestAlertHandler_ToggleAlert_Success(t *testing.T) {
	mock := &mockAlertService{toggleResult: false}
	h := NewAlertHandler(mock, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("PUT", "/admin/alerts/1/toggle", nil)

	r := gin.New()
	r.PUT("/admin/alerts/:id/toggle", h.ToggleAlert)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestAlertHandler_ToggleReminders_MissingFlag(t *testing.T) {
	mock := &mockAlertService{}
	h := NewAlertHandler(mock, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("PUT", "/admin/alerts/1/reminders", nil)

	r := gin.New()
	r.PUT("/admin/alerts/:id/reminders", h.ToggleReminders)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestAlertHandler_ListAlerts_BadFilter(t *testing.T) {
	mock := &mockAlertService{}
	h := NewAlertHandler(mock, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/admin/alerts?severity=Fatal", nil)

	r := gin.New()
	r.GET("/admin/alerts", h.ListAlerts)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestAlertHandler_TriggerReminders(t *testing.T) {
	reminders := &mockReminderService{}
	h := NewAlertHandler(&mockAlertService{}, newTestScheduler(reminders))

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/admin/reminders/trigger", nil)

	r := gin.New()
	r.POST("/admin/reminders/trigger", h.TriggerReminders)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	if reminders.calls != 1 {
		t.Errorf("expected 1 tick, got %d", reminders.calls)
	}
}

func TestAlertHandler_TriggerReminders_Failure(t *testing.T) {
	reminders := &mockReminderService{processErr: errors.New("数据库不可用")}
	h := NewAlertHandler(&mockAlertService{}, newTestScheduler(reminders))

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/admin/reminders/trigger", nil)

	r := gin.New()
	r.POST("/admin/reminders/trigger", h.TriggerReminders)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// UserAlertHandler Tests
// ═══════════════════════════════════════════════════════════

func TestUserAlertHandler_ListAlerts_Success(t *testing.T) {
	mock := &mockPreferenceService{
		listResult: []dto.UserAlertResponse{{ID: 1, Title: "a"}},
	}
	h := NewUserAlertHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/users/2/alerts", nil)

	r := gin.New()
	r.GET("/users/:id/alerts", h.ListAlerts)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestUserAlertHandler_ListAlerts_UserNotFound(t *testing.T) {
	mock := &mockPreferenceService{listErr: service.ErrUserNotFound}
	h := NewUserAlertHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/users/99/alerts", nil)

	r := gin.New()
	r.GET("/users/:id/alerts", h.ListAlerts)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 30001 {
		t.Errorf("expected error code 30001, got %d", resp.Code)
	}
}

func TestUserAlertHandler_Snooze_Success(t *testing.T) {
	mock := &mockPreferenceService{}
	h := NewUserAlertHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/users/2/alerts/1/snooze", nil)

	r := gin.New()
	r.POST("/users/:id/alerts/:alert_id/snooze", h.Snooze)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestUserAlertHandler_Snooze_BadAlertID(t *testing.T) {
	mock := &mockPreferenceService{}
	h := NewUserAlertHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/users/2/alerts/abc/snooze", nil)

	r := gin.New()
	r.POST("/users/:id/alerts/:alert_id/snooze", h.Snooze)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestUserAlertHandler_MarkRead_Success(t *testing.T) {
	mock := &mockPreferenceService{}
	h := NewUserAlertHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/users/2/alerts/1/read", nil)

	r := gin.New()
	r.POST("/users/:id/alerts/:alert_id/read", h.MarkRead)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

// [自证通过] internal/api/handler/handler_test.go
