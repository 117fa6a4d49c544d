package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	fiberlog "github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"

	"github.com/aliounendiaye221/J-ngatub-sub001/app/models"
	"github.com/aliounendiaye221/J-ngatub-sub001/app/repository"
	"github.com/aliounendiaye221/J-ngatub-sub001/internal/pkg/ai"
	"github.com/aliounendiaye221/J-ngatub-sub001/internal/pkg/cache"
)

type generateQuizRequest struct {
	DocumentID   uint `json:"document_id"`
	NumQuestions int  `json:"num_questions"`
	Save         bool `json:"save"`
}

// HandleGenerateQuiz builds a quiz from an exam paper with the configured
// model. With save=true the quiz is persisted and immediately playable.
func HandleGenerateQuiz(c *fiber.Ctx) error {
	var req generateQuizRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "bad_request", "Invalid request body")
	}
	if req.NumQuestions == 0 {
		req.NumQuestions = 5
	}

	repos := repository.GetGlobalFactory().GetRepositories()
	document, err := repos.Document.GetByID(req.DocumentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errorJSON(c, fiber.StatusNotFound, "not_found", "Document not found")
		}
		return internalError(c, "Failed to load document")
	}

	generator := ai.NewGenerator(ai.NewClientFromEnv(), ai.NewExtractor(cache.NewRedisStore()))
	generated, err := generator.GenerateQuiz(c.UserContext(), document, req.NumQuestions)
	if err != nil {
		switch {
		case errors.Is(err, ai.ErrNotConfigured):
			return errorJSON(c, fiber.StatusServiceUnavailable, "ai_unavailable", "Quiz generation is not configured")
		case errors.Is(err, ai.ErrQuestionCountOutOfRange):
			return errorJSON(c, fiber.StatusBadRequest, "validation_failed", err.Error())
		default:
			fiberlog.Errorf("quiz generation failed for document %d: %v", document.ID, err)
			return errorJSON(c, fiber.StatusBadGateway, "generation_failed", "Quiz generation failed")
		}
	}

	response := fiber.Map{
		"title":     generated.Title,
		"questions": generated.Questions,
	}

	if req.Save {
		quiz, err := persistGeneratedQuiz(repos.Quiz, document, generated)
		if err != nil {
			return internalError(c, "Failed to save generated quiz")
		}
		response["quiz_id"] = quiz.ID
	}

	return c.Status(fiber.StatusCreated).JSON(response)
}

func persistGeneratedQuiz(repo repository.QuizRepository, document *models.Document, generated *ai.GeneratedQuiz) (*models.Quiz, error) {
	quiz := &models.Quiz{
		Title:     generated.Title,
		LevelID:   document.LevelID,
		SubjectID: document.SubjectID,
		IsActive:  true,
	}
	for i, q := range generated.Questions {
		question := models.Question{
			Position:     i + 1,
			Text:         q.Text,
			CorrectIndex: q.CorrectIndex,
			Points:       q.Points,
			Explanation:  q.Explanation,
		}
		if err := question.SetOptions(q.Options); err != nil {
			return nil, err
		}
		quiz.Questions = append(quiz.Questions, question)
	}
	if err := repo.Create(quiz); err != nil {
		return nil, err
	}
	return quiz, nil
}
