package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/KhairnarLokesh/hackmate-ai/internal/constants"
	"github.com/KhairnarLokesh/hackmate-ai/internal/docstore"
	"github.com/KhairnarLokesh/hackmate-ai/internal/models"
	"github.com/KhairnarLokesh/hackmate-ai/internal/utils"
	"github.com/google/uuid"
)

var (
	ErrProjectNotFound          = errors.New("project not found")
	ErrNoProjectForCode         = errors.New("no project matches the join code")
	ErrJoinCodeGenerationFailed = errors.New("failed to generate join code")
)

// ProjectService synchronizes project records with the document store:
// one-shot bounded fetches, change subscriptions, and the compound
// multi-document writes (join by code, delete, remove member).
type ProjectService struct {
	store      *docstore.Store
	milestones *MilestoneService
	activities *ActivityService
}

func NewProjectService(store *docstore.Store, milestones *MilestoneService, activities *ActivityService) *ProjectService {
	return &ProjectService{
		store:      store,
		milestones: milestones,
		activities: activities,
	}
}

// CreateProjectInput represents parameters to create a new project.
type CreateProjectInput struct {
	Name        string
	Description string
	Duration    models.ProjectDuration
	CreatorID   string
}

// CreateProject writes the primary project document and returns. The
// creator's role record and the three default milestones are written in
// the background; their failure never surfaces to the caller.
func (s *ProjectService) CreateProject(ctx context.Context, input CreateProjectInput) (*models.Project, error) {
	code, err := utils.GenerateJoinCode()
	if err != nil {
		return nil, ErrJoinCodeGenerationFailed
	}

	project := models.Project{
		ID:          uuid.NewString(),
		Name:        input.Name,
		Description: input.Description,
		Duration:    input.Duration,
		CreatorID:   input.CreatorID,
		MemberIDs:   []string{input.CreatorID},
		JoinCode:    code,
		Status:      models.ProjectStatusIdeation,
		CreatedAt:   time.Now(),
	}

	if err := s.store.Set(ctx, models.CollectionProjects, project.ID, project.ToDocument()); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	go s.bootstrap(project)

	return &project, nil
}

// bootstrap writes the creator's admin role and the default milestones.
// The project is considered created regardless of this outcome.
func (s *ProjectService) bootstrap(project models.Project) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	role := models.ProjectRoleRecord{
		ProjectID: project.ID,
		UserID:    project.CreatorID,
		Role:      models.RoleAdmin,
		GrantedAt: time.Now(),
	}
	if err := s.store.Set(ctx, models.CollectionProjectRoles, role.Key(), role.ToDocument()); err != nil {
		log.Printf("project %s: role bootstrap failed: %v", project.ID, err)
	}

	if err := s.milestones.CreateDefaults(ctx, project); err != nil {
		log.Printf("project %s: milestone bootstrap failed: %v", project.ID, err)
	}
}

// GetProject is a one-shot read with a bounded wait. A slow or
// unreachable store degrades to "not found"; it never returns an error.
func (s *ProjectService) GetProject(ctx context.Context, id string) (*models.Project, bool) {
	ctx, cancel := context.WithTimeout(ctx, constants.ProjectFetchTimeout)
	defer cancel()

	doc, err := s.store.Get(ctx, models.CollectionProjects, id)
	if err != nil {
		if !errors.Is(err, docstore.ErrNotFound) {
			log.Printf("get project %s failed: %v", id, err)
		}
		return nil, false
	}

	project := models.ProjectFromDocument(doc)
	return &project, true
}

// GetUserProjects returns every project whose member set contains the
// user, newest first. Failures degrade to an empty list.
func (s *ProjectService) GetUserProjects(ctx context.Context, userID string) []models.Project {
	ctx, cancel := context.WithTimeout(ctx, constants.ProjectFetchTimeout)
	defer cancel()

	docs, err := s.store.Query(ctx, models.CollectionProjects)
	if err != nil {
		log.Printf("list projects for %s failed: %v", userID, err)
		return []models.Project{}
	}

	projects := make([]models.Project, 0, len(docs))
	for _, doc := range docs {
		project := models.ProjectFromDocument(doc)
		for _, member := range project.MemberIDs {
			if member == userID {
				projects = append(projects, project)
				break
			}
		}
	}

	sort.Slice(projects, func(i, j int) bool {
		return projects[i].CreatedAt.After(projects[j].CreatedAt)
	})
	return projects
}

// JoinProjectByCode looks up the project for the code and atomically
// adds the user to its member set while creating the role record. Both
// effects land or neither does. Returns the joined project id, or
// ErrNoProjectForCode when the lookup finds nothing within its bound.
func (s *ProjectService) JoinProjectByCode(ctx context.Context, userID, code string) (string, error) {
	lookupCtx, cancel := context.WithTimeout(ctx, constants.JoinCodeLookupTimeout)
	defer cancel()

	docs, err := s.store.Query(lookupCtx, models.CollectionProjects, docstore.Where("join_code", code))
	if err != nil {
		log.Printf("join code lookup failed: %v", err)
		return "", ErrNoProjectForCode
	}
	if len(docs) == 0 {
		return "", ErrNoProjectForCode
	}

	project := models.ProjectFromDocument(docs[0])
	for _, member := range project.MemberIDs {
		if member == userID {
			return project.ID, nil
		}
	}

	role := models.ProjectRoleRecord{
		ProjectID: project.ID,
		UserID:    userID,
		Role:      models.RoleMember,
		GrantedAt: time.Now(),
	}

	err = s.store.Batch().
		Update(models.CollectionProjects, project.ID, docstore.Document{
			"member_ids": docstore.ArrayUnion(userID),
		}).
		Set(models.CollectionProjectRoles, role.Key(), role.ToDocument()).
		Commit(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to join project: %w", err)
	}

	s.activities.Log(ctx, project.ID, userID, models.ActivityMemberJoined, "joined the team")
	return project.ID, nil
}

// DeleteProject removes the project's tasks and messages best-effort,
// then deletes the project document and its role records in one batch.
// Sub-collection cleanup failures do not block the project deletion.
func (s *ProjectService) DeleteProject(ctx context.Context, projectID string) error {
	s.deleteSubCollection(ctx, models.CollectionTasks, projectID)
	s.deleteSubCollection(ctx, models.CollectionMessages, projectID)

	batch := s.store.Batch().Delete(models.CollectionProjects, projectID)

	roles, err := s.store.Query(ctx, models.CollectionProjectRoles, docstore.Where("project_id", projectID))
	if err != nil {
		log.Printf("project %s: role cleanup query failed: %v", projectID, err)
	}
	for _, doc := range roles {
		record := models.ProjectRoleFromDocument(doc)
		batch.Delete(models.CollectionProjectRoles, record.Key())
	}

	if err := batch.Commit(ctx); err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	return nil
}

func (s *ProjectService) deleteSubCollection(ctx context.Context, collection, projectID string) {
	docs, err := s.store.Query(ctx, collection, docstore.Where("project_id", projectID))
	if err != nil {
		log.Printf("project %s: %s cleanup query failed: %v", projectID, collection, err)
		return
	}
	for _, doc := range docs {
		id := docstore.ReadString(doc, "id")
		if err := s.store.Delete(ctx, collection, id); err != nil {
			log.Printf("project %s: delete %s/%s failed: %v", projectID, collection, id, err)
		}
	}
}

// RemoveMember atomically rewrites the project's member set without the
// removed id and deletes that member's role record.
func (s *ProjectService) RemoveMember(ctx context.Context, projectID, userID string) error {
	err := s.store.Batch().
		Update(models.CollectionProjects, projectID, docstore.Document{
			"member_ids": docstore.ArrayRemove(userID),
		}).
		Delete(models.CollectionProjectRoles, models.CompositeKey(projectID, userID)).
		Commit(ctx)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return ErrProjectNotFound
		}
		return fmt.Errorf("failed to remove member: %w", err)
	}

	s.activities.Log(ctx, projectID, userID, models.ActivityMemberRemoved, "left the team")
	return nil
}

// UpdateStatus records an advisory status transition.
func (s *ProjectService) UpdateStatus(ctx context.Context, projectID string, status models.ProjectStatus) error {
	return s.updateFields(ctx, projectID, docstore.Document{"status": string(status)})
}

// SaveIdeaAnalysis persists the AI idea analysis on the project.
func (s *ProjectService) SaveIdeaAnalysis(ctx context.Context, projectID, analysis string) error {
	return s.updateFields(ctx, projectID, docstore.Document{"idea_analysis": analysis})
}

// SaveProjectURLs persists the repository and demo URLs.
func (s *ProjectService) SaveProjectURLs(ctx context.Context, projectID, repoURL, demoURL string) error {
	return s.updateFields(ctx, projectID, docstore.Document{
		"repo_url": repoURL,
		"demo_url": demoURL,
	})
}

func (s *ProjectService) updateFields(ctx context.Context, projectID string, fields docstore.Document) error {
	if err := s.store.Update(ctx, models.CollectionProjects, projectID, fields); err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return ErrProjectNotFound
		}
		return fmt.Errorf("failed to update project: %w", err)
	}
	return nil
}

// SubscribeToProject pushes the project document to fn on every change.
// fn receives nil when the project is gone or the stream fails.
func (s *ProjectService) SubscribeToProject(ctx context.Context, projectID string, fn func(*models.Project)) func() {
	return s.store.SubscribeDoc(ctx, models.CollectionProjects, projectID, func(doc docstore.Document) {
		if doc == nil {
			fn(nil)
			return
		}
		project := models.ProjectFromDocument(doc)
		fn(&project)
	})
}
