package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func sampleQuestions() []Question {
	return []Question{
		{ID: 1, Text: "What is 2 + 2?", Options: []string{"3", "4", "5"}, CorrectAnswer: "4"},
		{ID: 2, Text: "Capital of France?", Options: []string{"Paris", "Lyon"}, CorrectAnswer: "Paris"},
		{ID: 3, Text: "Largest planet?", Options: []string{"Earth", "Jupiter"}, CorrectAnswer: "Jupiter"},
	}
}

func TestScoreAnswersCountsExactMatches(t *testing.T) {
	answers := []QuizAnswer{
		{QuestionID: 1, SelectedAnswer: "4"},
		{QuestionID: 2, SelectedAnswer: "Lyon"},
		{QuestionID: 3, SelectedAnswer: "Jupiter"},
	}
	assert.Equal(t, 2, ScoreAnswers(sampleQuestions(), answers))
}

func TestScoreAnswersOrderIndependent(t *testing.T) {
	answers := []QuizAnswer{
		{QuestionID: 3, SelectedAnswer: "Jupiter"},
		{QuestionID: 1, SelectedAnswer: "4"},
	}
	assert.Equal(t, 2, ScoreAnswers(sampleQuestions(), answers))
}

func TestScoreAnswersIgnoresUnknownAndMissing(t *testing.T) {
	answers := []QuizAnswer{
		{QuestionID: 99, SelectedAnswer: "4"},
		{QuestionID: 2, SelectedAnswer: "Paris"},
	}
	assert.Equal(t, 1, ScoreAnswers(sampleQuestions(), answers))
}

func TestScoreAnswersEmpty(t *testing.T) {
	assert.Equal(t, 0, ScoreAnswers(sampleQuestions(), nil))
	assert.Equal(t, 0, ScoreAnswers(nil, []QuizAnswer{{QuestionID: 1, SelectedAnswer: "4"}}))
}

func TestScoreAnswersCaseSensitive(t *testing.T) {
	answers := []QuizAnswer{
		{QuestionID: 2, SelectedAnswer: "paris"},
	}
	assert.Equal(t, 0, ScoreAnswers(sampleQuestions(), answers))
}

func TestScoreAnswersDuplicateAnswersForOneQuestionCountOnce(t *testing.T) {
	answers := []QuizAnswer{
		{QuestionID: 1, SelectedAnswer: "4"},
		{QuestionID: 1, SelectedAnswer: "4"},
	}
	assert.Equal(t, 1, ScoreAnswers(sampleQuestions(), answers))
}
