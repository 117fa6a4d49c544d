package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/aliounendiaye221/J-ngatub-sub001/app/repository"
)

type quizSubmission struct {
	// Answers maps question id to the selected option index.
	Answers map[uint]int `json:"answers"`
}

// HandleGetQuiz returns a playable quiz. Correct answers and explanations
// stay server-side until the quiz is submitted.
func HandleGetQuiz(c *fiber.Ctx) error {
	quizID, err := paramUint(c, "id")
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "bad_request", "Invalid quiz id")
	}

	quiz, err := repository.GetGlobalFactory().GetQuizRepository().GetActiveByIDWithQuestions(quizID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errorJSON(c, fiber.StatusNotFound, "not_found", "Quiz not found")
		}
		return internalError(c, "Failed to load quiz")
	}

	questions := make([]fiber.Map, 0, len(quiz.Questions))
	for _, q := range quiz.Questions {
		questions = append(questions, fiber.Map{
			"id":       q.ID,
			"position": q.Position,
			"text":     q.Text,
			"options":  q.Options(),
			"points":   q.Points,
		})
	}

	return c.JSON(fiber.Map{
		"id":        quiz.ID,
		"title":     quiz.Title,
		"questions": questions,
	})
}

// HandleSubmitQuiz grades a submission and reveals the corrections.
func HandleSubmitQuiz(c *fiber.Ctx) error {
	quizID, err := paramUint(c, "id")
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "bad_request", "Invalid quiz id")
	}

	var submission quizSubmission
	if err := c.BodyParser(&submission); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "bad_request", "Invalid request body")
	}

	quiz, err := repository.GetGlobalFactory().GetQuizRepository().GetActiveByIDWithQuestions(quizID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errorJSON(c, fiber.StatusNotFound, "not_found", "Quiz not found")
		}
		return internalError(c, "Failed to load quiz")
	}

	score, maxScore := 0, 0
	results := make([]fiber.Map, 0, len(quiz.Questions))
	for _, q := range quiz.Questions {
		maxScore += q.Points
		selected, answered := submission.Answers[q.ID]
		correct := answered && selected == q.CorrectIndex
		if correct {
			score += q.Points
		}
		result := fiber.Map{
			"question_id":   q.ID,
			"correct":       correct,
			"correct_index": q.CorrectIndex,
			"explanation":   q.Explanation,
		}
		if answered {
			result["selected_index"] = selected
		}
		results = append(results, result)
	}

	return c.JSON(fiber.Map{
		"quiz_id":   quiz.ID,
		"score":     score,
		"max_score": maxScore,
		"results":   results,
	})
}

// HandleListQuizzes lists active quizzes, optionally narrowed by level and
// subject slugs.
func HandleListQuizzes(c *fiber.Ctx) error {
	repos := repository.GetGlobalFactory().GetRepositories()

	var levelID, subjectID uint
	if slug := c.Query("level"); slug != "" {
		level, err := repos.Level.GetBySlug(slug)
		if err != nil {
			return errorJSON(c, fiber.StatusNotFound, "not_found", "Unknown level")
		}
		levelID = level.ID
	}
	if slug := c.Query("subject"); slug != "" {
		subject, err := repos.Subject.GetBySlug(slug)
		if err != nil {
			return errorJSON(c, fiber.StatusNotFound, "not_found", "Unknown subject")
		}
		subjectID = subject.ID
	}

	quizzes, err := repos.Quiz.ListByLevelAndSubject(levelID, subjectID)
	if err != nil {
		return internalError(c, "Failed to load quizzes")
	}

	items := make([]fiber.Map, 0, len(quizzes))
	for _, q := range quizzes {
		items = append(items, fiber.Map{
			"id":         q.ID,
			"title":      q.Title,
			"level_id":   q.LevelID,
			"subject_id": q.SubjectID,
		})
	}

	return c.JSON(fiber.Map{"quizzes": items})
}
