package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	fiberlog "github.com/gofiber/fiber/v2/log"

	"github.com/aliounendiaye221/J-ngatub-sub001/app/models"
)

const (
	MinQuestions = 3
	MaxQuestions = 15
)

var ErrQuestionCountOutOfRange = fmt.Errorf("number of questions must be between %d and %d", MinQuestions, MaxQuestions)

// GeneratedQuestion mirrors one question as produced by the model.
type GeneratedQuestion struct {
	Text         string   `json:"text"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correct_index"`
	Points       int      `json:"points"`
	Explanation  string   `json:"explanation"`
}

type GeneratedQuiz struct {
	Title     string              `json:"title"`
	Questions []GeneratedQuestion `json:"questions"`
}

// Generator orchestrates quiz generation: document text extraction feeds the
// prompt when available, then the model output is parsed and validated.
type Generator struct {
	client    *Client
	extractor *Extractor
}

func NewGenerator(client *Client, extractor *Extractor) *Generator {
	return &Generator{client: client, extractor: extractor}
}

// GenerateQuiz produces numQuestions questions about the given document.
// Extraction failures degrade to metadata-only context instead of failing
// the request.
func (g *Generator) GenerateQuiz(ctx context.Context, doc *models.Document, numQuestions int) (*GeneratedQuiz, error) {
	if numQuestions < MinQuestions || numQuestions > MaxQuestions {
		return nil, ErrQuestionCountOutOfRange
	}
	if g.client == nil || !g.client.IsConfigured() {
		return nil, ErrNotConfigured
	}

	sourceText := ""
	if g.extractor != nil && doc.FileURL != "" {
		text, err := g.extractor.Extract(ctx, doc.FileURL)
		if err != nil {
			fiberlog.Warnf("[AI] text extraction failed for document %d, continuing with metadata only: %v", doc.ID, err)
		} else {
			sourceText = text
		}
	}

	reply, err := g.client.Complete(ctx, systemPrompt, buildUserPrompt(doc, numQuestions, sourceText))
	if err != nil {
		return nil, err
	}

	quiz, err := parseGeneratedQuiz(reply)
	if err != nil {
		return nil, fmt.Errorf("parse generated quiz: %w", err)
	}
	return quiz, nil
}

const systemPrompt = "You create multiple-choice quizzes for secondary-school students. " +
	"Answer with a single JSON object: {\"title\": string, \"questions\": " +
	"[{\"text\": string, \"options\": [string], \"correct_index\": int, \"points\": int, \"explanation\": string}]}. " +
	"No prose, no markdown."

func buildUserPrompt(doc *models.Document, numQuestions int, sourceText string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Generate %d questions in French about the exam paper %q", numQuestions, doc.Title)
	if doc.Subject.Name != "" {
		fmt.Fprintf(&sb, " (subject: %s", doc.Subject.Name)
		if doc.Level.Name != "" {
			fmt.Fprintf(&sb, ", level: %s", doc.Level.Name)
		}
		if doc.Year != 0 {
			fmt.Fprintf(&sb, ", year: %d", doc.Year)
		}
		sb.WriteString(")")
	}
	sb.WriteString(". Each question has 4 options and exactly one correct answer.")
	if sourceText != "" {
		sb.WriteString("\n\nBase the questions on this source text:\n\n")
		sb.WriteString(sourceText)
	}
	return sb.String()
}

// parseGeneratedQuiz decodes the model reply, tolerating a fenced code block
// around the JSON, and validates every question.
func parseGeneratedQuiz(reply string) (*GeneratedQuiz, error) {
	cleaned := strings.TrimSpace(reply)
	if strings.HasPrefix(cleaned, "```") {
		cleaned = strings.TrimPrefix(cleaned, "```json")
		cleaned = strings.TrimPrefix(cleaned, "```")
		cleaned = strings.TrimSuffix(strings.TrimSpace(cleaned), "```")
		cleaned = strings.TrimSpace(cleaned)
	}

	var quiz GeneratedQuiz
	if err := json.Unmarshal([]byte(cleaned), &quiz); err != nil {
		return nil, err
	}
	if len(quiz.Questions) == 0 {
		return nil, errors.New("no questions in model reply")
	}
	for i := range quiz.Questions {
		q := &quiz.Questions[i]
		if strings.TrimSpace(q.Text) == "" {
			return nil, fmt.Errorf("question %d has no text", i+1)
		}
		if len(q.Options) < 2 {
			return nil, fmt.Errorf("question %d has fewer than 2 options", i+1)
		}
		if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options) {
			return nil, fmt.Errorf("question %d has correct_index out of range", i+1)
		}
		if q.Points <= 0 {
			q.Points = 1
		}
	}
	return &quiz, nil
}
