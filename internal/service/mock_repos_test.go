package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"gorm.io/gorm"

	"github.com/Anuj092/alerting-platform/internal/model"
	"github.com/Anuj092/alerting-platform/internal/repository"
)

// ── Mock UserRepository ──

type mockUserRepo struct {
	users  map[uint]*model.User
	nextID uint
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[uint]*model.User), nextID: 1}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	if user.ID == 0 {
		user.ID = m.nextID
		m.nextID++
	}
	m.users[user.ID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id uint) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) Update(_ context.Context, user *model.User) error {
	m.users[user.ID] = user
	return nil
}

func (m *mockUserRepo) Delete(_ context.Context, id uint) error {
	delete(m.users, id)
	return nil
}

func (m *mockUserRepo) List(_ context.Context) ([]model.User, error) {
	result := make([]model.User, 0, len(m.users))
	for _, u := range m.users {
		result = append(result, *u)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *mockUserRepo) ListByTeam(_ context.Context, teamID uint) ([]model.User, error) {
	var result []model.User
	for _, u := range m.users {
		if u.TeamID != nil && *u.TeamID == teamID {
			result = append(result, *u)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

// ── Mock TeamRepository ──

type mockTeamRepo struct {
	teams  map[uint]*model.Team
	nextID uint
}

func newMockTeamRepo() *mockTeamRepo {
	return &mockTeamRepo{teams: make(map[uint]*model.Team), nextID: 1}
}

func (m *mockTeamRepo) Create(_ context.Context, team *model.Team) error {
	if team.ID == 0 {
		team.ID = m.nextID
		m.nextID++
	}
	m.teams[team.ID] = team
	return nil
}

func (m *mockTeamRepo) GetByID(_ context.Context, id uint) (*model.Team, error) {
	if t, ok := m.teams[id]; ok {
		copied := *t
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTeamRepo) Update(_ context.Context, team *model.Team) error {
	m.teams[team.ID] = team
	return nil
}

func (m *mockTeamRepo) Delete(_ context.Context, id uint) error {
	delete(m.teams, id)
	return nil
}

func (m *mockTeamRepo) List(_ context.Context) ([]model.Team, error) {
	result := make([]model.Team, 0, len(m.teams))
	for _, t := range m.teams {
		result = append(result, *t)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

// ── Mock AlertRepository ──

type mockAlertRepo struct {
	alerts    map[uint]*model.Alert
	nextID    uint
	createErr error // 非空时 Create 直接失败
}

func newMockAlertRepo() *mockAlertRepo {
	return &mockAlertRepo{alerts: make(map[uint]*model.Alert), nextID: 1}
}

func (m *mockAlertRepo) Create(_ context.Context, alert *model.Alert) error {
	if m.createErr != nil {
		return m.createErr
	}
	if alert.ID == 0 {
		alert.ID = m.nextID
		m.nextID++
	}
	m.alerts[alert.ID] = alert
	return nil
}

func (m *mockAlertRepo) GetByID(_ context.Context, id uint) (*model.Alert, error) {
	if a, ok := m.alerts[id]; ok {
		copied := *a
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAlertRepo) Update(_ context.Context, alert *model.Alert) error {
	m.alerts[alert.ID] = alert
	return nil
}

func (m *mockAlertRepo) List(_ context.Context, filter repository.AlertListFilter) ([]model.Alert, error) {
	var result []model.Alert
	for _, a := range m.alerts {
		if filter.Severity != "" && a.Severity != filter.Severity {
			continue
		}
		if filter.Visibility != "" && a.VisibilityType != filter.Visibility {
			continue
		}
		result = append(result, *a)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *mockAlertRepo) ListActiveVisible(_ context.Context, userID uint, teamID *uint) ([]model.Alert, error) {
	var result []model.Alert
	for _, a := range m.alerts {
		if !a.IsActive {
			continue
		}
		switch a.VisibilityType {
		case model.VisibilityOrganization:
			result = append(result, *a)
		case model.VisibilityTeam:
			if teamID != nil && a.TargetID != nil && *a.TargetID == *teamID {
				result = append(result, *a)
			}
		case model.VisibilityUser:
			if a.TargetID != nil && *a.TargetID == userID {
				result = append(result, *a)
			}
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *mockAlertRepo) Count(_ context.Context) (int64, error) {
	return int64(len(m.alerts)), nil
}

func (m *mockAlertRepo) CountActive(_ context.Context) (int64, error) {
	var n int64
	for _, a := range m.alerts {
		if a.IsActive {
			n++
		}
	}
	return n, nil
}

func (m *mockAlertRepo) CountActiveBySeverity(_ context.Context, severity model.Severity) (int64, error) {
	var n int64
	for _, a := range m.alerts {
		if a.IsActive && a.Severity == severity {
			n++
		}
	}
	return n, nil
}

// ── Mock PreferenceRepository ──

// mockPreferenceRepo 持有 alert/user 的 mock 引用，
// 用于在候选查询时模拟 Preload 关联
type mockPreferenceRepo struct {
	prefs     map[uint]*model.UserAlertPreference
	nextID    uint
	alertRepo *mockAlertRepo
	userRepo  *mockUserRepo
	createErr error // 非空时 Create 直接失败
}

func newMockPreferenceRepo(alertRepo *mockAlertRepo, userRepo *mockUserRepo) *mockPreferenceRepo {
	return &mockPreferenceRepo{
		prefs:     make(map[uint]*model.UserAlertPreference),
		nextID:    1,
		alertRepo: alertRepo,
		userRepo:  userRepo,
	}
}

func (m *mockPreferenceRepo) Create(_ context.Context, pref *model.UserAlertPreference) error {
	if m.createErr != nil {
		return m.createErr
	}
	if pref.ID == 0 {
		pref.ID = m.nextID
		m.nextID++
	}
	copied := *pref
	copied.Alert = nil
	copied.User = nil
	m.prefs[pref.ID] = &copied
	return nil
}

func (m *mockPreferenceRepo) Get(_ context.Context, userID, alertID uint) (*model.UserAlertPreference, error) {
	for _, p := range m.prefs {
		if p.UserID == userID && p.AlertID == alertID {
			copied := *p
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockPreferenceRepo) Update(_ context.Context, pref *model.UserAlertPreference) error {
	if _, ok := m.prefs[pref.ID]; !ok {
		return errors.New("偏好行不存在")
	}
	copied := *pref
	copied.Alert = nil
	copied.User = nil
	m.prefs[pref.ID] = &copied
	return nil
}

func (m *mockPreferenceRepo) ListByUser(_ context.Context, userID uint) ([]model.UserAlertPreference, error) {
	var result []model.UserAlertPreference
	for _, p := range m.prefs {
		if p.UserID == userID {
			result = append(result, *p)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *mockPreferenceRepo) ListSnoozedByUser(_ context.Context, userID uint) ([]model.UserAlertPreference, error) {
	var result []model.UserAlertPreference
	for _, p := range m.prefs {
		if p.UserID != userID || !p.IsSnoozed {
			continue
		}
		copied := *p
		if a, ok := m.alertRepo.alerts[p.AlertID]; ok {
			alertCopy := *a
			copied.Alert = &alertCopy
		}
		result = append(result, copied)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *mockPreferenceRepo) ExpireSnoozes(_ context.Context, now time.Time) (int64, error) {
	var n int64
	for _, p := range m.prefs {
		if p.IsSnoozed && p.SnoozedUntil != nil && p.SnoozedUntil.Before(now) {
			p.IsSnoozed = false
			p.SnoozedUntil = nil
			n++
		}
	}
	return n, nil
}

func (m *mockPreferenceRepo) ListReminderCandidates(_ context.Context) ([]model.UserAlertPreference, error) {
	var result []model.UserAlertPreference
	for _, p := range m.prefs {
		if p.IsSnoozed || p.IsRead {
			continue
		}
		a, ok := m.alertRepo.alerts[p.AlertID]
		if !ok || !a.IsActive || a.ReminderFrequency <= 0 {
			continue
		}
		copied := *p
		alertCopy := *a
		copied.Alert = &alertCopy
		if u, ok := m.userRepo.users[p.UserID]; ok {
			userCopy := *u
			copied.User = &userCopy
		}
		result = append(result, copied)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *mockPreferenceRepo) Count(_ context.Context) (int64, error) {
	return int64(len(m.prefs)), nil
}

func (m *mockPreferenceRepo) CountRead(_ context.Context) (int64, error) {
	var n int64
	for _, p := range m.prefs {
		if p.IsRead {
			n++
		}
	}
	return n, nil
}

func (m *mockPreferenceRepo) CountSnoozed(_ context.Context) (int64, error) {
	var n int64
	for _, p := range m.prefs {
		if p.IsSnoozed {
			n++
		}
	}
	return n, nil
}

func (m *mockPreferenceRepo) CountGroupByAlert(_ context.Context) (map[uint]int64, error) {
	result := make(map[uint]int64)
	for _, p := range m.prefs {
		result[p.AlertID]++
	}
	return result, nil
}

func (m *mockPreferenceRepo) CountReadGroupByAlert(_ context.Context) (map[uint]int64, error) {
	result := make(map[uint]int64)
	for _, p := range m.prefs {
		if p.IsRead {
			result[p.AlertID]++
		}
	}
	return result, nil
}

func (m *mockPreferenceRepo) CountSnoozedGroupByAlert(_ context.Context) (map[uint]int64, error) {
	result := make(map[uint]int64)
	for _, p := range m.prefs {
		if p.IsSnoozed {
			result[p.AlertID]++
		}
	}
	return result, nil
}

// byUserAlert 按 (user, alert) 取偏好行，找不到返回 nil（测试断言辅助）
func (m *mockPreferenceRepo) byUserAlert(userID, alertID uint) *model.UserAlertPreference {
	for _, p := range m.prefs {
		if p.UserID == userID && p.AlertID == alertID {
			return p
		}
	}
	return nil
}

// ── Mock DeliveryRepository ──

type mockDeliveryRepo struct {
	deliveries []model.NotificationDelivery
	nextID     uint
}

func newMockDeliveryRepo() *mockDeliveryRepo {
	return &mockDeliveryRepo{nextID: 1}
}

func (m *mockDeliveryRepo) Create(_ context.Context, delivery *model.NotificationDelivery) error {
	if delivery.ID == 0 {
		delivery.ID = m.nextID
		m.nextID++
	}
	m.deliveries = append(m.deliveries, *delivery)
	return nil
}

func (m *mockDeliveryRepo) Count(_ context.Context) (int64, error) {
	return int64(len(m.deliveries)), nil
}

func (m *mockDeliveryRepo) CountGroupByAlert(_ context.Context) (map[uint]int64, error) {
	result := make(map[uint]int64)
	for _, d := range m.deliveries {
		result[d.AlertID]++
	}
	return result, nil
}

// countFor 按 (user, alert) 统计投递记录（测试断言辅助）
func (m *mockDeliveryRepo) countFor(userID, alertID uint) int {
	n := 0
	for _, d := range m.deliveries {
		if d.UserID == userID && d.AlertID == alertID {
			n++
		}
	}
	return n
}

// ── Mock Channel ──

// mockChannel 记录每次投递；failFor 中的用户投递失败
type mockChannel struct {
	sent    []sentRecord
	failFor map[uint]bool
	failAll bool
}

type sentRecord struct {
	UserID  uint
	AlertID uint
}

func newMockChannel() *mockChannel {
	return &mockChannel{failFor: make(map[uint]bool)}
}

func (m *mockChannel) Send(_ context.Context, user *model.User, alert *model.Alert) error {
	if m.failAll || m.failFor[user.ID] {
		return errors.New("投递失败")
	}
	m.sent = append(m.sent, sentRecord{UserID: user.ID, AlertID: alert.ID})
	return nil
}

// [自证通过] internal/service/mock_repos_test.go
