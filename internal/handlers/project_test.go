package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/KhairnarLokesh/hackmate-ai/internal/constants"
	"github.com/KhairnarLokesh/hackmate-ai/internal/docstore"
	"github.com/KhairnarLokesh/hackmate-ai/internal/models"
	"github.com/KhairnarLokesh/hackmate-ai/internal/services"
)

// ProjectHandlerTestSuite defines the test suite for ProjectHandler
type ProjectHandlerTestSuite struct {
	suite.Suite
	store    *docstore.Store
	projects *services.ProjectService
	handler  *ProjectHandler
}

// SetupTest runs before each test
func (suite *ProjectHandlerTestSuite) SetupTest() {
	s := miniredis.RunT(suite.T())
	suite.store = docstore.NewWithClient(redis.NewClient(&redis.Options{Addr: s.Addr()}))

	activities := services.NewActivityService(suite.store)
	milestones := services.NewMilestoneService(suite.store)
	suite.projects = services.NewProjectService(suite.store, milestones, activities)
	suite.handler = NewProjectHandler(suite.projects, services.NewMemberService(suite.store))

	gin.SetMode(gin.TestMode)
}

// TearDownTest runs after each test
func (suite *ProjectHandlerTestSuite) TearDownTest() {
	suite.store.Close()
}

// Helper function to create authenticated context
func (suite *ProjectHandlerTestSuite) createAuthContext(method, url string, body []byte, userID string) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, url, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, url, nil)
	}

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Set(constants.ContextKeyUserID, userID)

	return c, w
}

func (suite *ProjectHandlerTestSuite) createTestProject(name, creatorID string) *models.Project {
	body, _ := json.Marshal(gin.H{"name": name, "duration": "24h"})
	c, w := suite.createAuthContext(http.MethodPost, "/api/projects", body, creatorID)
	suite.handler.CreateProject(c)
	suite.Require().Equal(http.StatusCreated, w.Code)

	var project models.Project
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &project))
	return &project
}

func (suite *ProjectHandlerTestSuite) TestCreateProject() {
	project := suite.createTestProject("HackMate", "u1")

	suite.Equal("HackMate", project.Name)
	suite.Equal([]string{"u1"}, project.MemberIDs)
	suite.Len(project.JoinCode, constants.JoinCodeLength)
}

func (suite *ProjectHandlerTestSuite) TestCreateProjectRejectsBadDuration() {
	body, _ := json.Marshal(gin.H{"name": "HackMate", "duration": "72h"})
	c, w := suite.createAuthContext(http.MethodPost, "/api/projects", body, "u1")

	suite.handler.CreateProject(c)

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *ProjectHandlerTestSuite) TestListProjects() {
	suite.createTestProject("HackMate", "u1")
	suite.createTestProject("Someone else's", "u2")

	c, w := suite.createAuthContext(http.MethodGet, "/api/projects", nil, "u1")
	suite.handler.ListProjects(c)

	suite.Equal(http.StatusOK, w.Code)
	var resp struct {
		Projects []models.Project `json:"projects"`
	}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Require().Len(resp.Projects, 1)
	suite.Equal("HackMate", resp.Projects[0].Name)
}

func (suite *ProjectHandlerTestSuite) TestJoinProjectUnknownCode() {
	body, _ := json.Marshal(gin.H{"join_code": "ZZZZZZ"})
	c, w := suite.createAuthContext(http.MethodPost, "/api/projects/join", body, "u2")

	suite.handler.JoinProject(c)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *ProjectHandlerTestSuite) TestJoinProject() {
	project := suite.createTestProject("HackMate", "u1")

	body, _ := json.Marshal(gin.H{"join_code": project.JoinCode})
	c, w := suite.createAuthContext(http.MethodPost, "/api/projects/join", body, "u2")
	suite.handler.JoinProject(c)

	suite.Equal(http.StatusOK, w.Code)

	found, ok := suite.projects.GetProject(c.Request.Context(), project.ID)
	suite.Require().True(ok)
	suite.Contains(found.MemberIDs, "u2")
}

func (suite *ProjectHandlerTestSuite) TestDeleteProjectRequiresCreator() {
	project := suite.createTestProject("HackMate", "u1")

	c, w := suite.createAuthContext(http.MethodDelete, "/api/projects/"+project.ID, nil, "u2")
	c.Set("project", *project)
	suite.handler.DeleteProject(c)

	suite.Equal(http.StatusForbidden, w.Code)

	c, w = suite.createAuthContext(http.MethodDelete, "/api/projects/"+project.ID, nil, "u1")
	c.Set("project", *project)
	suite.handler.DeleteProject(c)

	suite.Equal(http.StatusOK, w.Code)
	_, ok := suite.projects.GetProject(c.Request.Context(), project.ID)
	suite.False(ok)
}

func (suite *ProjectHandlerTestSuite) TestRemoveMemberRules() {
	project := suite.createTestProject("HackMate", "u1")

	// Only the creator can remove members.
	c, w := suite.createAuthContext(http.MethodDelete, "/api/projects/"+project.ID+"/members/u2", nil, "u2")
	c.Set("project", *project)
	c.Params = gin.Params{{Key: "user_id", Value: "u2"}}
	suite.handler.RemoveMember(c)
	suite.Equal(http.StatusForbidden, w.Code)

	// The creator cannot be removed.
	c, w = suite.createAuthContext(http.MethodDelete, "/api/projects/"+project.ID+"/members/u1", nil, "u1")
	c.Set("project", *project)
	c.Params = gin.Params{{Key: "user_id", Value: "u1"}}
	suite.handler.RemoveMember(c)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *ProjectHandlerTestSuite) TestUpdateStatus() {
	project := suite.createTestProject("HackMate", "u1")

	body, _ := json.Marshal(gin.H{"status": "building"})
	c, w := suite.createAuthContext(http.MethodPatch, "/api/projects/"+project.ID+"/status", body, "u1")
	c.Set("project", *project)
	suite.handler.UpdateStatus(c)

	suite.Equal(http.StatusOK, w.Code)

	body, _ = json.Marshal(gin.H{"status": "abandoned"})
	c, w = suite.createAuthContext(http.MethodPatch, "/api/projects/"+project.ID+"/status", body, "u1")
	c.Set("project", *project)
	suite.handler.UpdateStatus(c)

	suite.Equal(http.StatusBadRequest, w.Code)
}

func TestProjectHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(ProjectHandlerTestSuite))
}
