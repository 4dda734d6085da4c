package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"net/url"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"learninghub/config"
	"learninghub/handlers"
	"learninghub/models"
	"learninghub/repository"
	"learninghub/routes"
)

// ── Mock UserRepository ──

type mockUserRepo struct {
	users  map[int64]*models.User
	nextID int64
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[int64]*models.User), nextID: 1}
}

func (m *mockUserRepo) Save(_ context.Context, user *models.User) error {
	if user.ID == 0 {
		user.ID = m.nextID
		m.nextID++
		user.CreatedAt = time.Now()
	}
	user.UpdatedAt = time.Now()
	copied := *user
	m.users[user.ID] = &copied
	return nil
}

func (m *mockUserRepo) FindByID(_ context.Context, id int64) (*models.User, error) {
	if u, ok := m.users[id]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) FindByUsername(_ context.Context, username string) (*models.User, error) {
	for _, u := range m.users {
		if u.Username == username {
			copied := *u
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) FindByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range m.users {
		if u.Email != nil && *u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) FindByResetToken(_ context.Context, token string) (*models.User, error) {
	for _, u := range m.users {
		if u.ResetToken != nil && *u.ResetToken == token {
			copied := *u
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) FindAll(_ context.Context) ([]models.User, error) {
	return m.collect(func(*models.User) bool { return true }), nil
}

func (m *mockUserRepo) FindAllByRole(_ context.Context, role string) ([]models.User, error) {
	return m.collect(func(u *models.User) bool { return u.Role == role }), nil
}

func (m *mockUserRepo) FindAllByCourseID(_ context.Context, courseID string) ([]models.User, error) {
	return m.collect(func(u *models.User) bool { return u.CourseID != nil && *u.CourseID == courseID }), nil
}

func (m *mockUserRepo) FindByCourseIDAndRole(_ context.Context, courseID, role string) ([]models.User, error) {
	return m.collect(func(u *models.User) bool {
		return u.CourseID != nil && *u.CourseID == courseID && u.Role == role
	}), nil
}

func (m *mockUserRepo) CountByRole(_ context.Context, role string) (int64, error) {
	return int64(len(m.collect(func(u *models.User) bool { return u.Role == role }))), nil
}

func (m *mockUserRepo) CountByCourseIDAndRole(_ context.Context, courseID, role string) (int64, error) {
	users, _ := m.FindByCourseIDAndRole(context.Background(), courseID, role)
	return int64(len(users)), nil
}

func (m *mockUserRepo) Count(_ context.Context) (int64, error) {
	return int64(len(m.users)), nil
}

func (m *mockUserRepo) DeleteByID(_ context.Context, id int64) error {
	delete(m.users, id)
	return nil
}

func (m *mockUserRepo) collect(match func(*models.User) bool) []models.User {
	var result []models.User
	for _, u := range m.users {
		if match(u) {
			result = append(result, *u)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result
}

// ── Mock CourseRepository ──

type mockCourseRepo struct {
	courses map[string]*models.Course
}

func newMockCourseRepo() *mockCourseRepo {
	return &mockCourseRepo{courses: make(map[string]*models.Course)}
}

func (m *mockCourseRepo) Save(_ context.Context, course *models.Course) error {
	copied := *course
	m.courses[course.ID] = &copied
	return nil
}

func (m *mockCourseRepo) FindByID(_ context.Context, id string) (*models.Course, error) {
	if course, ok := m.courses[id]; ok {
		copied := *course
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCourseRepo) FindAll(_ context.Context) ([]models.Course, error) {
	var result []models.Course
	for _, course := range m.courses {
		result = append(result, *course)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *mockCourseRepo) ExistsByID(_ context.Context, id string) (bool, error) {
	_, ok := m.courses[id]
	return ok, nil
}

func (m *mockCourseRepo) Count(_ context.Context) (int64, error) {
	return int64(len(m.courses)), nil
}

func (m *mockCourseRepo) DeleteByID(_ context.Context, id string) error {
	delete(m.courses, id)
	return nil
}

// ── Mock SubjectRepository ──

type mockSubjectRepo struct {
	subjects map[string]*models.Subject
}

func newMockSubjectRepo() *mockSubjectRepo {
	return &mockSubjectRepo{subjects: make(map[string]*models.Subject)}
}

func (m *mockSubjectRepo) Save(_ context.Context, subject *models.Subject) error {
	copied := *subject
	m.subjects[subject.Code] = &copied
	return nil
}

func (m *mockSubjectRepo) FindByCode(_ context.Context, code string) (*models.Subject, error) {
	if subject, ok := m.subjects[code]; ok {
		copied := *subject
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSubjectRepo) FindAll(_ context.Context) ([]models.Subject, error) {
	var result []models.Subject
	for _, subject := range m.subjects {
		result = append(result, *subject)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Code < result[j].Code })
	return result, nil
}

func (m *mockSubjectRepo) FindByCourseID(_ context.Context, courseID string) ([]models.Subject, error) {
	var result []models.Subject
	for _, subject := range m.subjects {
		if subject.CourseID == courseID {
			result = append(result, *subject)
		}
	}
	return result, nil
}

func (m *mockSubjectRepo) ExistsByCode(_ context.Context, code string) (bool, error) {
	_, ok := m.subjects[code]
	return ok, nil
}

func (m *mockSubjectRepo) Count(_ context.Context) (int64, error) {
	return int64(len(m.subjects)), nil
}

func (m *mockSubjectRepo) DeleteByCode(_ context.Context, code string) error {
	delete(m.subjects, code)
	return nil
}

// ── Mock NotificationRepository ──

type mockNotificationRepo struct {
	notifications []*models.Notification
	nextID        int64
}

func newMockNotificationRepo() *mockNotificationRepo {
	return &mockNotificationRepo{nextID: 1}
}

func (m *mockNotificationRepo) Create(_ context.Context, n *models.Notification) error {
	n.ID = m.nextID
	m.nextID++
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}
	copied := *n
	m.notifications = append(m.notifications, &copied)
	return nil
}

func (m *mockNotificationRepo) FindByUserID(_ context.Context, userID int64) ([]models.Notification, error) {
	var result []models.Notification
	// newest first: walk the append-ordered slice backwards
	for i := len(m.notifications) - 1; i >= 0; i-- {
		if m.notifications[i].UserID == userID {
			result = append(result, *m.notifications[i])
		}
	}
	return result, nil
}

func (m *mockNotificationRepo) FindAll(_ context.Context) ([]models.Notification, error) {
	var result []models.Notification
	for _, n := range m.notifications {
		result = append(result, *n)
	}
	return result, nil
}

func (m *mockNotificationRepo) CountUnreadByUserID(_ context.Context, userID int64) (int64, error) {
	var count int64
	for _, n := range m.notifications {
		if n.UserID == userID && !n.IsRead {
			count++
		}
	}
	return count, nil
}

func (m *mockNotificationRepo) MarkRead(_ context.Context, id, userID int64) error {
	for _, n := range m.notifications {
		if n.ID == id && n.UserID == userID {
			n.IsRead = true
		}
	}
	return nil
}

func (m *mockNotificationRepo) MarkAllRead(_ context.Context, userID int64) error {
	for _, n := range m.notifications {
		if n.UserID == userID {
			n.IsRead = true
		}
	}
	return nil
}

// ── Mock ActivityLogRepository ──

type mockLogRepo struct {
	entries []*models.ActivityLog
}

func newMockLogRepo() *mockLogRepo {
	return &mockLogRepo{}
}

func (m *mockLogRepo) Create(_ context.Context, entry *models.ActivityLog) error {
	entry.ID = int64(len(m.entries) + 1)
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}
	copied := *entry
	m.entries = append(m.entries, &copied)
	return nil
}

func (m *mockLogRepo) FindAllNewestFirst(_ context.Context) ([]models.ActivityLog, error) {
	result := make([]models.ActivityLog, 0, len(m.entries))
	for i := len(m.entries) - 1; i >= 0; i-- {
		result = append(result, *m.entries[i])
	}
	return result, nil
}

// ── Recording email service ──

type sentEmail struct {
	To       string
	Token    string
	Username string
	Role     string
}

type recordingEmailService struct {
	mu   sync.Mutex
	sent []sentEmail
}

func (s *recordingEmailService) SendPasswordResetEmail(toEmail, token, username, role string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, sentEmail{To: toEmail, Token: token, Username: username, Role: role})
}

// ── Test harness ──

type testEnv struct {
	router  *gin.Engine
	users   *mockUserRepo
	courses *mockCourseRepo
	subj    *mockSubjectRepo
	notifs  *mockNotificationRepo
	logs    *mockLogRepo
	mail    *recordingEmailService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	env := &testEnv{
		users:   newMockUserRepo(),
		courses: newMockCourseRepo(),
		subj:    newMockSubjectRepo(),
		notifs:  newMockNotificationRepo(),
		logs:    newMockLogRepo(),
		mail:    &recordingEmailService{},
	}

	repo := &repository.Repository{
		Users:         env.users,
		Courses:       env.courses,
		Subjects:      env.subj,
		Notifications: env.notifs,
		Logs:          env.logs,
	}

	cfg := &config.Config{
		Server: config.ServerConfig{Port: 8080, BaseURL: "http://localhost:8080"},
		Upload: config.UploadConfig{Dir: t.TempDir()},
	}

	h := handlers.New(cfg, repo, env.mail, zap.NewNop())
	env.router = routes.Setup(cfg, h, zap.NewNop())
	return env
}

func (env *testEnv) request(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshaling request body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

func (env *testEnv) form(t *testing.T, method, path string, fields map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	values := url.Values{}
	for k, v := range fields {
		values.Set(k, v)
	}
	req := httptest.NewRequest(method, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

func decodeJSON(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), out); err != nil {
		t.Fatalf("decoding response %q: %v", w.Body.String(), err)
	}
}

func (env *testEnv) addUser(t *testing.T, username, password, role string, courseID *string) *models.User {
	t.Helper()
	user := &models.User{
		Username: username,
		Password: password,
		Role:     role,
		CourseID: courseID,
	}
	if err := env.users.Save(context.Background(), user); err != nil {
		t.Fatalf("seeding user %s: %v", username, err)
	}
	return user
}

func strptr(s string) *string { return &s }
