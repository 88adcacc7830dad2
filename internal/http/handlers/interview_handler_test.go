package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-biography-backend/internal/interview"
)

func newInterviewRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := newStubHandlers()

	r := gin.New()
	r.GET("/biography/levels", h.ListLevels)
	r.GET("/biography/questions", h.GetQuestions)
	r.GET("/biography/questions/search", h.SearchQuestions)
	return r
}

func TestListLevels(t *testing.T) {
	r := newInterviewRouter()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/biography/levels", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("levels -> %d", w.Code)
	}

	var out ListLevelsResponse
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("json: %v", err)
	}
	if len(out.Levels) != 5 {
		t.Fatalf("expected 5 levels, got %d", len(out.Levels))
	}
	if out.Levels[0].ID != interview.LevelUltraBrief || out.Levels[4].ID != interview.LevelComprehensive {
		t.Fatalf("level order wrong: %+v", out.Levels)
	}
	// question counts grow with depth
	for i := 1; i < len(out.Levels); i++ {
		if out.Levels[i].QuestionCount <= out.Levels[i-1].QuestionCount {
			t.Fatalf("question counts not increasing: %+v", out.Levels)
		}
	}
}

func TestGetQuestions(t *testing.T) {
	r := newInterviewRouter()

	// Missing/unknown level -> 400 invalid_level
	for _, q := range []string{"", "?level=saga"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/biography/questions"+q, nil))
		if w.Code != http.StatusBadRequest {
			t.Fatalf("level %q -> %d", q, w.Code)
		}
		var e ErrorResponse
		if err := json.Unmarshal(w.Body.Bytes(), &e); err != nil {
			t.Fatalf("json: %v", err)
		}
		if e.Code != ErrCodeInvalidLevel {
			t.Fatalf("code = %q, want %q", e.Code, ErrCodeInvalidLevel)
		}
	}

	// Valid level -> the level's plan
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/biography/questions?level=ultra_brief", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("questions -> %d", w.Code)
	}
	var out PlanResponse
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("json: %v", err)
	}
	want, _ := interview.BuildPlan(interview.LevelUltraBrief)
	if len(out.Plan) != len(want) || out.Plan[0].ID != want[0].ID {
		t.Fatalf("plan mismatch: got %d topics, want %d", len(out.Plan), len(want))
	}
}

func TestSearchQuestions(t *testing.T) {
	r := newInterviewRouter()

	// Unknown level -> 400
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/biography/questions/search?level=saga&q=memory", nil))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("bad level -> %d", w.Code)
	}

	// Missing q -> 400
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/biography/questions/search?level=brief", nil))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("missing q -> %d", w.Code)
	}

	// Hit -> ranked results
	q := url.Values{"level": {"brief"}, "q": {"earliest memory"}, "k": {"3"}}
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/biography/questions/search?"+q.Encode(), nil))
	if w.Code != http.StatusOK {
		t.Fatalf("search -> %d body=%s", w.Code, w.Body.String())
	}
	var out SearchQuestionsResponse
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("json: %v", err)
	}
	if len(out.Results) == 0 || len(out.Results) > 3 {
		t.Fatalf("unexpected result count: %d", len(out.Results))
	}
	if out.Results[0].Topic != "early_life" {
		t.Fatalf("top hit topic = %q", out.Results[0].Topic)
	}

	// No match -> 200 with empty array, not null
	q = url.Values{"level": {"brief"}, "q": {"zzzzqqq"}}
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/biography/questions/search?"+q.Encode(), nil))
	if w.Code != http.StatusOK {
		t.Fatalf("no-match search -> %d", w.Code)
	}
	if body := w.Body.String(); body != `{"results":[]}` {
		t.Fatalf("empty results body = %s", body)
	}
}
