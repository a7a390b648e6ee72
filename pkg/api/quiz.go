package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"nostalgiajars/pkg/otel"
	"nostalgiajars/pkg/quiz"
)

type answerRequest struct {
	Answer string `json:"answer"`
}

// getQuizHandler returns the quiz stage, answers and result.
// @Summary Get quiz
// @Tags quiz
// @Produce json
// @Success 200 {object} quiz.State
// @Router /quiz [get]
func (a *API) getQuizHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, visitFrom(r.Context()).sf.Quiz().State())
}

// answerHeatHandler records the heat answer.
// @Summary Answer heat question
// @Tags quiz
// @Accept json
// @Produce json
// @Param answer body answerRequest true "spicy or mild"
// @Success 200 {object} quiz.State
// @Failure 400 {string} string
// @Failure 409 {string} string
// @Router /quiz/heat [post]
func (a *API) answerHeatHandler(w http.ResponseWriter, r *http.Request) {
	_, span := otel.AddSpan(r.Context(), "api.answerHeat")
	defer span.End()

	var req answerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	q := visitFrom(r.Context()).sf.Quiz()
	if err := q.AnswerHeat(quiz.Heat(req.Answer)); err != nil {
		quizFailed(w, err)
		return
	}
	writeJSON(w, http.StatusOK, q.State())
}

// answerMoodHandler records the mood answer and returns the recommendation.
// @Summary Answer mood question
// @Tags quiz
// @Accept json
// @Produce json
// @Param answer body answerRequest true "bold or tangy"
// @Success 200 {object} quiz.State
// @Failure 400 {string} string
// @Failure 409 {string} string
// @Router /quiz/mood [post]
func (a *API) answerMoodHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "api.answerMood")
	defer span.End()

	var req answerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	v := visitFrom(ctx)
	p, err := v.sf.Quiz().AnswerMood(quiz.Mood(req.Answer))
	if err != nil {
		quizFailed(w, err)
		return
	}
	a.metrics.Recommendation(p.ID)
	a.log.Info(ctx, "quiz recommendation", "visitor", v.id, "product", p.ID)
	writeJSON(w, http.StatusOK, v.sf.Quiz().State())
}

// resetQuizHandler returns the quiz to its first question.
// @Summary Reset quiz
// @Tags quiz
// @Produce json
// @Success 200 {object} quiz.State
// @Router /quiz/reset [post]
func (a *API) resetQuizHandler(w http.ResponseWriter, r *http.Request) {
	q := visitFrom(r.Context()).sf.Quiz()
	q.Reset()
	writeJSON(w, http.StatusOK, q.State())
}

func quizFailed(w http.ResponseWriter, err error) {
	status := http.StatusBadRequest
	if errors.Is(err, quiz.ErrOutOfOrder) {
		status = http.StatusConflict
	}
	http.Error(w, err.Error(), status)
}
