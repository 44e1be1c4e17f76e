package middleware

import (
	"github.com/gin-gonic/gin"

	apierrors "github.com/KhairnarLokesh/hackmate-ai/internal/errors"
	"github.com/KhairnarLokesh/hackmate-ai/internal/models"
	"github.com/KhairnarLokesh/hackmate-ai/internal/services"
)

const contextKeyProject = "project"

// RequireProjectAccess checks that the current user is in the project's
// member set. The project read is the bounded one-shot fetch, so an
// unreachable store degrades to "not found" here too. A non-member gets
// 404 rather than 403 to avoid leaking project existence.
func RequireProjectAccess(projects *services.ProjectService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := GetUserID(c)
		if !exists {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		project, ok := projects.GetProject(c.Request.Context(), c.Param("id"))
		if !ok {
			apierrors.NotFound(c, "Project not found")
			c.Abort()
			return
		}

		member := false
		for _, id := range project.MemberIDs {
			if id == userID {
				member = true
				break
			}
		}
		if !member {
			apierrors.NotFound(c, "Project not found")
			c.Abort()
			return
		}

		c.Set(contextKeyProject, *project)
		c.Next()
	}
}

// GetProject retrieves the project loaded by RequireProjectAccess.
func GetProject(c *gin.Context) (models.Project, bool) {
	value, exists := c.Get(contextKeyProject)
	if !exists {
		return models.Project{}, false
	}
	project, ok := value.(models.Project)
	return project, ok
}
