package services

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/KhairnarLokesh/hackmate-ai/internal/docstore"
	"github.com/KhairnarLokesh/hackmate-ai/internal/models"
)

// TaskServiceTestSuite defines the test suite for TaskService
type TaskServiceTestSuite struct {
	suite.Suite
	store   *docstore.Store
	service *TaskService
}

// SetupTest runs before each test
func (suite *TaskServiceTestSuite) SetupTest() {
	s := miniredis.RunT(suite.T())
	suite.store = docstore.NewWithClient(redis.NewClient(&redis.Options{Addr: s.Addr()}))
	suite.service = NewTaskService(suite.store, NewActivityService(suite.store))
}

// TearDownTest runs after each test
func (suite *TaskServiceTestSuite) TearDownTest() {
	suite.store.Close()
}

func (suite *TaskServiceTestSuite) createTestTask(projectID, title string) *models.Task {
	task, err := suite.service.CreateTask(context.Background(), CreateTaskInput{
		ProjectID: projectID,
		Title:     title,
		CreatorID: "u1",
	})
	suite.Require().NoError(err)
	return task
}

func (suite *TaskServiceTestSuite) TestCreateTaskDefaults() {
	task := suite.createTestTask("p1", "Build the demo")

	suite.Equal(models.TaskStatusTodo, task.Status)
	suite.Equal(models.TaskEffortMedium, task.Effort)
	suite.Equal(models.TaskPriorityMedium, task.Priority)
	suite.Nil(task.AssigneeID)
}

func (suite *TaskServiceTestSuite) TestCreateTaskRequiresTitle() {
	_, err := suite.service.CreateTask(context.Background(), CreateTaskInput{
		ProjectID: "p1",
		Title:     "   ",
		CreatorID: "u1",
	})
	suite.Require().ErrorIs(err, ErrTitleRequired)
}

func (suite *TaskServiceTestSuite) TestCreateTaskLogsActivity() {
	task := suite.createTestTask("p1", "Build the demo")

	docs, err := suite.store.Query(context.Background(), models.CollectionActivities,
		docstore.Where("project_id", task.ProjectID))
	suite.Require().NoError(err)
	suite.Require().Len(docs, 1)
	suite.Equal("created task Build the demo", docs[0]["description"])
}

func (suite *TaskServiceTestSuite) TestUpdateTaskRefreshesUpdatedAt() {
	ctx := context.Background()
	task := suite.createTestTask("p1", "Build the demo")

	time.Sleep(5 * time.Millisecond)

	title := "Build the real demo"
	suite.Require().NoError(suite.service.UpdateTask(ctx, task.ID, UpdateTaskInput{Title: &title}))

	updated, err := suite.service.GetTask(ctx, task.ID)
	suite.Require().NoError(err)
	suite.Equal("Build the real demo", updated.Title)
	suite.True(updated.UpdatedAt.After(task.UpdatedAt))
}

func (suite *TaskServiceTestSuite) TestUpdateStatus() {
	ctx := context.Background()
	task := suite.createTestTask("p1", "Build the demo")

	suite.Require().NoError(suite.service.UpdateStatus(ctx, task.ID, models.TaskStatusInProgress))

	updated, err := suite.service.GetTask(ctx, task.ID)
	suite.Require().NoError(err)
	suite.Equal(models.TaskStatusInProgress, updated.Status)

	err = suite.service.UpdateStatus(ctx, "missing", models.TaskStatusDone)
	suite.Require().ErrorIs(err, ErrTaskNotFound)
}

func (suite *TaskServiceTestSuite) TestAssignAndUnassignTask() {
	ctx := context.Background()
	task := suite.createTestTask("p1", "Build the demo")

	assignee := "u2"
	suite.Require().NoError(suite.service.AssignTask(ctx, task.ID, &assignee))

	updated, err := suite.service.GetTask(ctx, task.ID)
	suite.Require().NoError(err)
	suite.Require().NotNil(updated.AssigneeID)
	suite.Equal("u2", *updated.AssigneeID)

	suite.Require().NoError(suite.service.AssignTask(ctx, task.ID, nil))

	updated, err = suite.service.GetTask(ctx, task.ID)
	suite.Require().NoError(err)
	suite.Nil(updated.AssigneeID)
}

func (suite *TaskServiceTestSuite) TestDeleteTask() {
	ctx := context.Background()
	task := suite.createTestTask("p1", "Build the demo")

	suite.Require().NoError(suite.service.DeleteTask(ctx, task.ID))

	_, err := suite.service.GetTask(ctx, task.ID)
	suite.Require().ErrorIs(err, ErrTaskNotFound)
}

func (suite *TaskServiceTestSuite) TestCreateGeneratedTasks() {
	ctx := context.Background()

	tasks, err := suite.service.CreateGeneratedTasks(ctx, "p1", "u1", []GeneratedTask{
		{Title: "Set up repo", Effort: models.TaskEffortSmall, Priority: models.TaskPriorityHigh},
		{Title: "   "},
		{Title: "Build API"},
	})
	suite.Require().NoError(err)
	suite.Require().Len(tasks, 2)
	suite.Equal("Set up repo", tasks[0].Title)
	suite.Equal(models.TaskEffortSmall, tasks[0].Effort)
	// Missing effort and priority fall back to medium.
	suite.Equal(models.TaskEffortMedium, tasks[1].Effort)
	suite.Equal(models.TaskPriorityMedium, tasks[1].Priority)

	docs, err := suite.store.Query(ctx, models.CollectionTasks, docstore.Where("project_id", "p1"))
	suite.Require().NoError(err)
	suite.Len(docs, 2)
}

func (suite *TaskServiceTestSuite) TestSubscribeToTasksOrdersByUpdatedAtDesc() {
	ctx := context.Background()
	first := suite.createTestTask("p1", "First")
	time.Sleep(5 * time.Millisecond)
	second := suite.createTestTask("p1", "Second")
	suite.createTestTask("p2", "Elsewhere")

	snapshots := make(chan []models.Task, 8)
	unsubscribe := suite.service.SubscribeToTasks(ctx, "p1", func(tasks []models.Task) {
		snapshots <- tasks
	})
	defer unsubscribe()

	initial := <-snapshots
	suite.Require().Len(initial, 2)
	suite.Equal(second.ID, initial[0].ID)
	suite.Equal(first.ID, initial[1].ID)

	// Touching the older task moves it to the front.
	time.Sleep(5 * time.Millisecond)
	suite.Require().NoError(suite.service.UpdateStatus(ctx, first.ID, models.TaskStatusInProgress))

	select {
	case next := <-snapshots:
		suite.Require().Len(next, 2)
		suite.Equal(first.ID, next[0].ID)
	case <-time.After(2 * time.Second):
		suite.FailNow("timed out waiting for task snapshot")
	}
}

func TestTaskServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TaskServiceTestSuite))
}
