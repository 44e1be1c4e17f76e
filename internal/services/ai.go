package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/KhairnarLokesh/hackmate-ai/internal/constants"
	"github.com/KhairnarLokesh/hackmate-ai/internal/models"
	"github.com/sashabaranov/go-openai"
)

// AIService sends structured prompts to the external completion
// endpoint for idea analysis, task generation and document generation.
type AIService struct {
	client *openai.Client
}

// GeneratedTask is one task extracted by the model.
type GeneratedTask struct {
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Effort      models.TaskEffort   `json:"effort"`
	Priority    models.TaskPriority `json:"priority"`
}

func NewAIService(apiKey string) *AIService {
	return &AIService{
		client: openai.NewClient(apiKey),
	}
}

func (s *AIService) complete(ctx context.Context, prompt string) (string, error) {
	if s == nil || s.client == nil {
		return "", fmt.Errorf("AI client not initialized")
	}

	resp, err := s.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: openai.GPT4o,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			Temperature: 0.3,
		},
	)
	if err != nil {
		return "", fmt.Errorf("AI gateway error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from AI gateway")
	}

	return resp.Choices[0].Message.Content, nil
}

// AnalyzeIdea returns a structured feasibility analysis of a hackathon
// idea.
func (s *AIService) AnalyzeIdea(ctx context.Context, idea string) (string, error) {
	prompt := fmt.Sprintf(`You are a hackathon mentor. Analyze the following project idea and respond in Markdown with these sections: Feasibility, Suggested Scope, Risks, and Tech Stack Suggestions. Keep it under 400 words.

Idea:
%s`, idea)

	return s.complete(ctx, prompt)
}

// Answer responds to a free-form team question with the project as
// context.
func (s *AIService) Answer(ctx context.Context, project models.Project, question string) (string, error) {
	prompt := fmt.Sprintf(`You are HackMate AI, an assistant embedded in a hackathon team's chat. The team is building "%s": %s. Answer the question below concisely and practically.

Question:
%s`,
		project.Name,
		project.Description,
		question,
	)

	return s.complete(ctx, prompt)
}

// GenerateTasks breaks a project description into concrete tasks.
func (s *AIService) GenerateTasks(ctx context.Context, description string) ([]GeneratedTask, error) {
	prompt := fmt.Sprintf(`You are a task-planning assistant for a hackathon team. Break the following project into at most %d concrete tasks.

Project:
%s

Return a JSON array only, no prose, in this shape:
[
  {
    "title": "short task title",
    "description": "what needs to be done",
    "effort": "small|medium|large",
    "priority": "low|medium|high"
  }
]

Return an empty array [] if no tasks can be extracted.`, constants.MaxAIGeneratedTasks, description)

	content, err := s.complete(ctx, prompt)
	if err != nil {
		return nil, err
	}

	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")

	var tasks []GeneratedTask
	if err := json.Unmarshal([]byte(strings.TrimSpace(content)), &tasks); err != nil {
		return nil, fmt.Errorf("failed to parse AI response: %w (response: %s)", err, content)
	}

	if len(tasks) > constants.MaxAIGeneratedTasks {
		tasks = tasks[:constants.MaxAIGeneratedTasks]
	}
	return tasks, nil
}

// GenerateDocument produces a Markdown document (readme, pitch or
// submission writeup) for the project.
func (s *AIService) GenerateDocument(ctx context.Context, project models.Project, docType string) (string, error) {
	prompt := fmt.Sprintf(`Write a %s in Markdown for the hackathon project below. Use the project's actual details; do not invent features.

Name: %s
Description: %s
Status: %s
Idea analysis: %s`,
		docType,
		project.Name,
		project.Description,
		project.Status,
		project.IdeaAnalysis,
	)

	return s.complete(ctx, prompt)
}
