package services

import (
	"context"
	"errors"
	"time"

	"dashboard/models"

	"gorm.io/gorm"
)

type TaskService struct {
	db *gorm.DB
}

func NewTaskService(db *gorm.DB) *TaskService {
	return &TaskService{db: db}
}

// CreateTask stores a new task under an existing project and returns the
// stored row. A missing project yields nil, not an error, matching the
// not-found convention of the other services.
func (s *TaskService) CreateTask(ctx context.Context, task *models.Task) (*models.Task, error) {
	var project models.Project
	err := s.db.WithContext(ctx).First(&project, task.ProjectID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	task.CreatedAt = now
	task.UpdatedAt = now

	if err := s.db.WithContext(ctx).Create(task).Error; err != nil {
		return nil, err
	}
	return task, nil
}

func (s *TaskService) UpdateTaskStatus(ctx context.Context, taskID uint, status string) (bool, error) {
	var task models.Task
	err := s.db.WithContext(ctx).First(&task, taskID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	task.Status = status
	task.UpdatedAt = time.Now().UTC()
	if err := s.db.WithContext(ctx).Save(&task).Error; err != nil {
		return false, err
	}
	return true, nil
}

// AssignTask hands a task to a user. It returns false when either side of
// the assignment does not exist.
func (s *TaskService) AssignTask(ctx context.Context, taskID, userID uint) (bool, error) {
	var task models.Task
	err := s.db.WithContext(ctx).First(&task, taskID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	var user models.User
	err = s.db.WithContext(ctx).First(&user, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	task.AssigneeID = &user.ID
	task.UpdatedAt = time.Now().UTC()
	if err := s.db.WithContext(ctx).Save(&task).Error; err != nil {
		return false, err
	}
	return true, nil
}
