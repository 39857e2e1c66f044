package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"quiz-contest-service/internal/app"
	"quiz-contest-service/internal/domain"
	"quiz-contest-service/internal/infra/memory"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testEnv struct {
	router http.Handler
	auth   *app.AuthService
	users  *memory.UserRepository

	quizzes   *memory.QuizRepository
	questions *memory.QuestionRepository
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	users := memory.NewUserRepository()
	quizzes := memory.NewQuizRepository()
	questions := memory.NewQuestionRepository()
	participations := memory.NewParticipationRepository()
	events := memory.NewEventRepository()
	content := memory.NewContentRepository()
	messages := memory.NewMessageRepository()
	keys := memory.NewAnswerKeyCache(memory.NewRepositoryKeyLoader(questions), time.Minute)

	auth := app.NewAuthService(users, "test-secret", time.Hour)
	router := NewRouter(Services{
		Auth:           auth,
		Quizzes:        app.NewQuizService(quizzes, questions, participations),
		Questions:      app.NewQuestionService(questions, quizzes, keys),
		Participations: app.NewParticipationService(participations, quizzes, questions, keys, app.NewLeaderboardHub()),
		Events:         app.NewEventService(events, users),
		Content:        app.NewContentService(content),
		Messaging:      app.NewMessagingService(messages, users, nil),
	})

	return &testEnv{
		router:    router,
		auth:      auth,
		users:     users,
		quizzes:   quizzes,
		questions: questions,
	}
}

func (env *testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	return rec
}

func (env *testEnv) adminToken(t *testing.T) string {
	t.Helper()
	admin := &domain.User{
		FullNameEnglish: "Admin",
		Contact:         fmt.Sprintf("admin-%d", time.Now().UnixNano()),
		Role:            domain.RoleAdmin,
		IsActive:        true,
	}
	if err := env.users.Create(context.Background(), admin); err != nil {
		t.Fatalf("create admin: %v", err)
	}
	token, err := env.auth.GenerateToken(admin)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	return token
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return body
}

func TestRegisterLoginProfile(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/v1/auth/register", "", map[string]any{
		"fullNameEnglish": "Rahim Uddin",
		"fullNameBangla":  "রহিম উদ্দিন",
		"contact":         "01711112222",
		"password":        "secret99",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("register status = %d, body %s", rec.Code, rec.Body.String())
	}

	rec = env.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]any{
		"contact":  "01711112222",
		"password": "secret99",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("login status = %d, body %s", rec.Code, rec.Body.String())
	}
	body := decodeBody(t, rec)
	data := body["data"].(map[string]any)
	token, _ := data["token"].(string)
	if token == "" {
		t.Fatalf("expected token in login response")
	}

	rec = env.do(t, http.MethodGet, "/api/v1/auth/profile", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("profile status = %d", rec.Code)
	}
	profile := decodeBody(t, rec)["data"].(map[string]any)
	if profile["contact"] != "01711112222" {
		t.Fatalf("unexpected profile contact: %v", profile["contact"])
	}
	if _, leaked := profile["passwordHash"]; leaked {
		t.Fatalf("password hash must not be serialized")
	}
}

func TestRegisterValidationErrors(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/v1/auth/register", "", map[string]any{
		"fullNameEnglish": "No Contact",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	body := decodeBody(t, rec)
	fields, ok := body["errors"].(map[string]any)
	if !ok {
		t.Fatalf("expected per-field errors, got %v", body)
	}
	if _, ok := fields["contact"]; !ok {
		t.Fatalf("expected contact field error, got %v", fields)
	}
	if _, ok := fields["password"]; !ok {
		t.Fatalf("expected password field error, got %v", fields)
	}
}

func TestQuizRoutesRequireAdmin(t *testing.T) {
	env := newTestEnv(t)

	payload := map[string]any{
		"title":          "Weekly Round",
		"instructions":   "Answer all questions",
		"duration":       30,
		"totalQuestions": 10,
		"startTime":      time.Now().Format(time.RFC3339),
		"endTime":        time.Now().Add(time.Hour).Format(time.RFC3339),
	}

	rec := env.do(t, http.MethodPost, "/api/v1/quiz", "", payload)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous create status = %d, want 401", rec.Code)
	}

	// Regular user is authenticated but not authorized.
	rec = env.do(t, http.MethodPost, "/api/v1/auth/register", "", map[string]any{
		"fullNameEnglish": "Plain User",
		"fullNameBangla":  "User",
		"contact":         "01800000000",
		"password":        "secret99",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("register status = %d", rec.Code)
	}
	userToken := decodeBody(t, rec)["data"].(map[string]any)["token"].(string)

	rec = env.do(t, http.MethodPost, "/api/v1/quiz", userToken, payload)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("user create status = %d, want 403", rec.Code)
	}

	rec = env.do(t, http.MethodPost, "/api/v1/quiz", env.adminToken(t), payload)
	if rec.Code != http.StatusCreated {
		t.Fatalf("admin create status = %d, body %s", rec.Code, rec.Body.String())
	}
}

func TestParticipationFlowOverHTTP(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	rec := env.do(t, http.MethodPost, "/api/v1/auth/register", "", map[string]any{
		"fullNameEnglish": "Contestant",
		"fullNameBangla":  "Contestant",
		"contact":         "01911113333",
		"password":        "secret99",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("register status = %d", rec.Code)
	}
	userToken := decodeBody(t, rec)["data"].(map[string]any)["token"].(string)

	now := time.Now()
	quiz := &domain.Quiz{
		Title:            "Live Round",
		Duration:         30,
		TotalQuestions:   1,
		MarksPerQuestion: 2,
		Status:           domain.QuizPublished,
		StartTime:        now.Add(-time.Hour),
		EndTime:          now.Add(time.Hour),
	}
	if err := env.quizzes.Create(ctx, quiz); err != nil {
		t.Fatalf("create quiz: %v", err)
	}
	question := &domain.Question{
		QuizID:       quiz.ID,
		QuestionText: "2 + 2?",
		Type:         domain.MultipleChoice,
		Options: []domain.Option{
			{Text: "3"},
			{Text: "4", IsCorrect: true},
		},
		Marks: 2,
	}
	if err := env.questions.Create(ctx, question); err != nil {
		t.Fatalf("create question: %v", err)
	}

	rec = env.do(t, http.MethodPost, "/api/v1/participation", userToken, map[string]any{"quizId": quiz.ID})
	if rec.Code != http.StatusCreated {
		t.Fatalf("start status = %d, body %s", rec.Code, rec.Body.String())
	}
	participationID := decodeBody(t, rec)["data"].(map[string]any)["id"].(string)

	// Second start conflicts with the existing participation.
	rec = env.do(t, http.MethodPost, "/api/v1/participation", userToken, map[string]any{"quizId": quiz.ID})
	if rec.Code != http.StatusConflict {
		t.Fatalf("duplicate start status = %d, want 409", rec.Code)
	}

	rec = env.do(t, http.MethodPost, "/api/v1/participation/"+participationID+"/submit-answer", userToken, map[string]any{
		"questionId": question.ID,
		"answer":     "4",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("submit status = %d, body %s", rec.Code, rec.Body.String())
	}
	result := decodeBody(t, rec)["data"].(map[string]any)
	if result["isCorrect"] != true {
		t.Fatalf("expected correct answer, got %v", result)
	}

	rec = env.do(t, http.MethodPost, "/api/v1/participation/"+participationID+"/complete", userToken, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("complete status = %d, body %s", rec.Code, rec.Body.String())
	}
	summary := decodeBody(t, rec)["data"].(map[string]any)
	if summary["obtainedMarks"].(float64) != 2 {
		t.Fatalf("expected 2 obtained marks, got %v", summary["obtainedMarks"])
	}

	rec = env.do(t, http.MethodGet, "/api/v1/participation/quiz/"+quiz.ID, "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("leaderboard status = %d", rec.Code)
	}

	// Unknown participation maps to 404.
	rec = env.do(t, http.MethodGet, "/api/v1/participation/nope", "", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("missing participation status = %d, want 404", rec.Code)
	}
}

func TestMessagingRoutesAdminOnly(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/v1/messaging/stats", "", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous stats status = %d, want 401", rec.Code)
	}

	rec = env.do(t, http.MethodGet, "/api/v1/messaging/stats", env.adminToken(t), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("admin stats status = %d, body %s", rec.Code, rec.Body.String())
	}
}
