// Question bank HTTP handlers.
//
// This file exposes read-only endpoints over the static question bank:
//   - GET /biography/levels            (detail levels with question counts)
//   - GET /biography/questions         (topic plan for a level)
//   - GET /biography/questions/search  (ranked question lookup within a level)
//
// The bank is immutable, so these endpoints never touch the database.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-biography-backend/internal/interview"
	"github.com/tbourn/go-biography-backend/internal/search"
	"github.com/tbourn/go-biography-backend/internal/utils"
)

//
// DTOs
//

// LevelResponse is one detail level with its display metadata and the number
// of questions its plan contains.
type LevelResponse struct {
	interview.LevelInfo
	QuestionCount int `json:"questionCount"`
}

// ListLevelsResponse wraps the ordered detail levels.
type ListLevelsResponse struct {
	Levels []LevelResponse `json:"levels"`
}

// PlanResponse wraps the topic plan for a detail level.
type PlanResponse struct {
	Plan interview.TopicPlan `json:"plan"`
}

// SearchQuestionsResponse wraps ranked question matches.
type SearchQuestionsResponse struct {
	Results []search.Result `json:"results"`
}

//
// Handlers
//

// ListLevels godoc
// @ID          listLevels
// @Summary     List detail levels
// @Description Returns the five interview detail levels in ascending depth order, each with display metadata and the number of questions its plan contains.
// @Tags        Interview
// @Produce     json
//
// @Success     200  {object}  handlers.ListLevelsResponse
// @Router      /biography/levels [get]
func (h *Handlers) ListLevels(c *gin.Context) {
	infos := interview.Levels()
	levels := make([]LevelResponse, 0, len(infos))
	for _, info := range infos {
		// The bank is static, so CountQuestions cannot fail for known levels.
		n, _ := interview.CountQuestions(info.ID)
		levels = append(levels, LevelResponse{LevelInfo: info, QuestionCount: n})
	}
	ok(c, http.StatusOK, ListLevelsResponse{Levels: levels})
}

// GetQuestions godoc
// @ID          getQuestions
// @Summary     Get the topic plan for a detail level
// @Description Returns the ordered topics and questions a session at the given level walks through.
// @Tags        Interview
// @Produce     json
//
// @Param       level  query  string  true  "Detail level"  Enums(ultra_brief, brief, moderate, detailed, comprehensive)
//
// @Success     200  {object}  handlers.PlanResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Invalid level"
// @Router      /biography/questions [get]
func (h *Handlers) GetQuestions(c *gin.Context) {
	plan, err := interview.BuildPlan(interview.DetailLevel(c.Query("level")))
	if err != nil {
		fail(c, http.StatusBadRequest, ErrCodeInvalidLevel, "invalid detail level")
		return
	}
	ok(c, http.StatusOK, PlanResponse{Plan: plan})
}

// SearchQuestions godoc
// @ID          searchQuestions
// @Summary     Search questions within a level's plan
// @Description Returns up to k questions from the level's plan ranked by similarity to the query, so a previously seen question can be located for revision.
// @Tags        Interview
// @Produce     json
//
// @Param       level  query  string  true   "Detail level"  Enums(ultra_brief, brief, moderate, detailed, comprehensive)
// @Param       q      query  string  true   "Query text"    example(first job)
// @Param       k      query  int     false  "Max results"   minimum(1) maximum(20) default(5)
//
// @Success     200  {object}  handlers.SearchQuestionsResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Invalid level / missing query"
// @Router      /biography/questions/search [get]
func (h *Handlers) SearchQuestions(c *gin.Context) {
	level := interview.DetailLevel(c.Query("level"))
	if _, known := interview.LevelIndex(level); !known {
		fail(c, http.StatusBadRequest, ErrCodeInvalidLevel, "invalid detail level")
		return
	}
	query := c.Query("q")
	if query == "" {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "query parameter q is required")
		return
	}
	k := utils.AtoiDefault(c.Query("k"), 5)
	if k > 20 {
		k = 20
	}

	results := h.catalog.TopK(level, query, k)
	if results == nil {
		results = []search.Result{}
	}
	ok(c, http.StatusOK, SearchQuestionsResponse{Results: results})
}
