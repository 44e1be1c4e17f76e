package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/KhairnarLokesh/hackmate-ai/internal/constants"
	"github.com/KhairnarLokesh/hackmate-ai/internal/docstore"
	"github.com/KhairnarLokesh/hackmate-ai/internal/middleware"
	"github.com/KhairnarLokesh/hackmate-ai/internal/models"
	"github.com/KhairnarLokesh/hackmate-ai/internal/services"
)

// TaskHandlerTestSuite defines the test suite for TaskHandler
type TaskHandlerTestSuite struct {
	suite.Suite
	store   *docstore.Store
	tasks   *services.TaskService
	handler *TaskHandler
}

// SetupTest runs before each test
func (suite *TaskHandlerTestSuite) SetupTest() {
	s := miniredis.RunT(suite.T())
	suite.store = docstore.NewWithClient(redis.NewClient(&redis.Options{Addr: s.Addr()}))

	activities := services.NewActivityService(suite.store)
	suite.tasks = services.NewTaskService(suite.store, activities)
	suite.handler = NewTaskHandler(suite.tasks, nil)

	gin.SetMode(gin.TestMode)
}

// TearDownTest runs after each test
func (suite *TaskHandlerTestSuite) TearDownTest() {
	suite.store.Close()
}

func (suite *TaskHandlerTestSuite) createTestTask(projectID, title string) *models.Task {
	task, err := suite.tasks.CreateTask(context.Background(), services.CreateTaskInput{
		ProjectID: projectID,
		Title:     title,
		CreatorID: "u1",
	})
	suite.Require().NoError(err)
	return task
}

// taskRequest runs the task route guard and, when it passes, the
// handler, the way the route group chains them.
func (suite *TaskHandlerTestSuite) taskRequest(project models.Project, userID, taskID string, handle gin.HandlerFunc) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodDelete, "/", nil)
	c.Params = gin.Params{{Key: "task_id", Value: taskID}}
	c.Set(constants.ContextKeyUserID, userID)
	c.Set("project", project)

	middleware.RequireResourceAccess("task_id", suite.tasks)(c)
	if !c.IsAborted() {
		handle(c)
	}
	return w
}

func (suite *TaskHandlerTestSuite) TestDeleteTask() {
	task := suite.createTestTask("pa", "Build the demo")
	project := models.Project{ID: "pa", MemberIDs: []string{"u1"}}

	w := suite.taskRequest(project, "u1", task.ID, suite.handler.DeleteTask)
	suite.Equal(http.StatusOK, w.Code)

	_, err := suite.tasks.GetTask(context.Background(), task.ID)
	suite.ErrorIs(err, services.ErrTaskNotFound)
}

func (suite *TaskHandlerTestSuite) TestDeleteTaskInAnotherProjectIsHidden() {
	task := suite.createTestTask("pb", "Ship project B")

	// A member of project A reaches through A's route with B's task id.
	projectA := models.Project{ID: "pa", MemberIDs: []string{"u2"}}
	w := suite.taskRequest(projectA, "u2", task.ID, suite.handler.DeleteTask)
	suite.Equal(http.StatusNotFound, w.Code)

	// The foreign task survived.
	found, err := suite.tasks.GetTask(context.Background(), task.ID)
	suite.Require().NoError(err)
	suite.Equal("Ship project B", found.Title)
}

func (suite *TaskHandlerTestSuite) TestUpdateTaskStatusInAnotherProjectIsHidden() {
	task := suite.createTestTask("pb", "Ship project B")

	projectA := models.Project{ID: "pa", MemberIDs: []string{"u2"}}
	w := suite.taskRequest(projectA, "u2", task.ID, suite.handler.UpdateTaskStatus)
	suite.Equal(http.StatusNotFound, w.Code)

	found, err := suite.tasks.GetTask(context.Background(), task.ID)
	suite.Require().NoError(err)
	suite.Equal(models.TaskStatusTodo, found.Status)
}

func TestTaskHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(TaskHandlerTestSuite))
}
