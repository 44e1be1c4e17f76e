package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apierrors "github.com/KhairnarLokesh/hackmate-ai/internal/errors"
	"github.com/KhairnarLokesh/hackmate-ai/internal/export"
	"github.com/KhairnarLokesh/hackmate-ai/internal/middleware"
	"github.com/KhairnarLokesh/hackmate-ai/internal/services"
)

// AIHandler exposes the AI gateway: one endpoint taking an action
// discriminator plus a data payload, answering {result} or {error}.
type AIHandler struct {
	projects  *services.ProjectService
	aiService *services.AIService
}

// NewAIHandler creates a new AIHandler.
func NewAIHandler(projects *services.ProjectService, aiService *services.AIService) *AIHandler {
	return &AIHandler{
		projects:  projects,
		aiService: aiService,
	}
}

// Invoke dispatches on the action discriminator.
func (h *AIHandler) Invoke(c *gin.Context) {
	project, ok := middleware.GetProject(c)
	if !ok {
		apierrors.InternalError(c, "Project not found in context")
		return
	}

	if h.aiService == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "AI service is not configured"})
		return
	}

	type InvokeRequest struct {
		Action string `json:"action" binding:"required,oneof=analyze_idea generate_document"`
		Data   string `json:"data"`
	}

	var req InvokeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	var result string
	var err error
	switch req.Action {
	case "analyze_idea":
		idea := req.Data
		if idea == "" {
			idea = project.Description
		}
		result, err = h.aiService.AnalyzeIdea(c.Request.Context(), idea)
		if err == nil {
			// Analysis persistence is best-effort; the result is
			// returned either way.
			_ = h.projects.SaveIdeaAnalysis(c.Request.Context(), project.ID, result)
		}
	case "generate_document":
		docType := req.Data
		if docType == "" {
			docType = "README"
		}
		result, err = h.aiService.GenerateDocument(c.Request.Context(), project, docType)
	}

	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": result})
}

// ExportDocument generates a document and serves it as a Markdown
// download named from the sanitized project-name slug.
func (h *AIHandler) ExportDocument(c *gin.Context) {
	project, ok := middleware.GetProject(c)
	if !ok {
		apierrors.InternalError(c, "Project not found in context")
		return
	}

	if h.aiService == nil {
		apierrors.ServiceUnavailable(c, "AI service is not configured")
		return
	}

	docType := c.DefaultQuery("type", "README")
	content, err := h.aiService.GenerateDocument(c.Request.Context(), project, docType)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	artifact := export.MarkdownArtifact(project.Name, content)
	c.Header("Content-Disposition", `attachment; filename="`+artifact.Filename+`"`)
	c.Data(http.StatusOK, artifact.ContentType, artifact.Body)
}
