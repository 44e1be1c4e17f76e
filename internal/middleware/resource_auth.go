package middleware

import (
	"context"

	"github.com/gin-gonic/gin"

	apierrors "github.com/KhairnarLokesh/hackmate-ai/internal/errors"
)

// ProjectResolver reports which project a stored document belongs to.
// Each entity service implements it for its own collection.
type ProjectResolver interface {
	ResolveProject(ctx context.Context, id string) (string, error)
}

// RequireResourceAccess guards sub-resource routes under a project: the
// document named by the URL param must exist and belong to the route's
// project. Runs after RequireProjectAccess. Foreign and missing
// documents both answer 404 so a member of one project learns nothing
// about another project's ids.
func RequireResourceAccess(param string, resolver ProjectResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		project, ok := GetProject(c)
		if !ok {
			apierrors.InternalError(c, "Project not found in context")
			c.Abort()
			return
		}

		projectID, err := resolver.ResolveProject(c.Request.Context(), c.Param(param))
		if err != nil || projectID != project.ID {
			apierrors.NotFound(c, "Resource not found")
			c.Abort()
			return
		}

		c.Next()
	}
}
