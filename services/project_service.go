package services

import (
	"context"
	"errors"
	"time"

	"dashboard/models"

	"gorm.io/gorm"
)

type ProjectService struct {
	db *gorm.DB
}

func NewProjectService(db *gorm.DB) *ProjectService {
	return &ProjectService{db: db}
}

// GetUserProjects returns every project the user manages or belongs to,
// newest first, loaded with manager, tasks and members for display. A
// manager does not automatically have a membership row, so the filter is
// a single manager-or-member predicate; each project appears once.
func (s *ProjectService) GetUserProjects(ctx context.Context, userID uint) ([]models.Project, error) {
	var projects []models.Project
	err := s.db.WithContext(ctx).
		Preload("Manager").
		Preload("Tasks").
		Preload("Members.User").
		Where("manager_id = ? OR EXISTS (SELECT 1 FROM project_members pm WHERE pm.project_id = projects.id AND pm.user_id = ?)",
			userID, userID).
		Order("created_at DESC").
		Find(&projects).Error
	if err != nil {
		return nil, err
	}
	return projects, nil
}

func (s *ProjectService) GetProjectByID(ctx context.Context, projectID uint) (*models.Project, error) {
	var project models.Project
	err := s.db.WithContext(ctx).
		Preload("Manager").
		Preload("Tasks.Assignee").
		Preload("Members.User").
		First(&project, projectID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &project, nil
}

func (s *ProjectService) CreateProject(ctx context.Context, project *models.Project) (*models.Project, error) {
	now := time.Now().UTC()
	project.CreatedAt = now
	project.UpdatedAt = now

	if err := s.db.WithContext(ctx).Create(project).Error; err != nil {
		return nil, err
	}
	return project, nil
}

// UpdateProject overwrites the editable fields of an existing project.
// The manager and the member list are immutable through this path and
// change only via their dedicated operations.
func (s *ProjectService) UpdateProject(ctx context.Context, project *models.Project) (bool, error) {
	var existing models.Project
	err := s.db.WithContext(ctx).First(&existing, project.ID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	existing.Name = project.Name
	existing.Description = project.Description
	existing.Status = project.Status
	existing.TargetDate = project.TargetDate
	existing.UpdatedAt = time.Now().UTC()

	if err := s.db.WithContext(ctx).Save(&existing).Error; err != nil {
		return false, err
	}
	return true, nil
}

// AddProjectMember inserts a membership row for the pair, once. It returns
// false when the project does not exist or the pair is already present.
// The pre-check gives the friendly answer; the composite unique index on
// (project_id, user_id) is what actually holds under concurrent calls, a
// losing insert comes back as false rather than a duplicate row.
func (s *ProjectService) AddProjectMember(ctx context.Context, projectID, userID uint, role string) (bool, error) {
	var project models.Project
	err := s.db.WithContext(ctx).First(&project, projectID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	var existing models.ProjectMember
	err = s.db.WithContext(ctx).
		Where("project_id = ? AND user_id = ?", projectID, userID).
		First(&existing).Error
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}

	member := models.ProjectMember{
		ProjectID:  projectID,
		UserID:     userID,
		Role:       role,
		AssignedAt: time.Now().UTC(),
	}
	err = s.db.WithContext(ctx).Create(&member).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *ProjectService) GetProjectMembers(ctx context.Context, projectID uint) ([]models.ProjectMember, error) {
	var members []models.ProjectMember
	err := s.db.WithContext(ctx).
		Preload("User").
		Where("project_id = ?", projectID).
		Find(&members).Error
	if err != nil {
		return nil, err
	}
	return members, nil
}
