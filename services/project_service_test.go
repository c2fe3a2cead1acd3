package services

import (
	"context"
	"testing"
	"time"

	"dashboard/models"
)

func TestProjectMembershipScenario(t *testing.T) {
	db := newTestDB(t)
	svc := NewProjectService(db)
	ctx := context.Background()

	manager := models.User{Email: "m@example.com", DisplayName: "Manager", Role: models.RoleProjectManager, Availability: models.StatusAvailable}
	contributor := models.User{Email: "u@example.com", DisplayName: "Contributor", Role: models.RoleEmployee, Availability: models.StatusAvailable}
	mustCreate(t, db, &manager)
	mustCreate(t, db, &contributor)

	created, err := svc.CreateProject(ctx, &models.Project{
		Name:      "Atlas",
		Status:    "Active",
		ManagerID: manager.ID,
	})
	if err != nil {
		t.Fatalf("create project: %v", err)
	}
	if created.ID == 0 {
		t.Fatal("expected the stored project to carry an id")
	}
	if created.CreatedAt.IsZero() || created.UpdatedAt.IsZero() {
		t.Fatal("expected creation and update stamps")
	}

	ok, err := svc.AddProjectMember(ctx, created.ID, contributor.ID, "Contributor")
	if err != nil {
		t.Fatalf("add member: %v", err)
	}
	if !ok {
		t.Fatal("first add must succeed")
	}

	// Identical second call: no error, no second row.
	ok, err = svc.AddProjectMember(ctx, created.ID, contributor.ID, "Contributor")
	if err != nil {
		t.Fatalf("duplicate add: %v", err)
	}
	if ok {
		t.Fatal("second add for the same pair must report false")
	}
	var memberCount int64
	db.Model(&models.ProjectMember{}).Where("project_id = ?", created.ID).Count(&memberCount)
	if memberCount != 1 {
		t.Fatalf("expected exactly one membership row, got %d", memberCount)
	}

	// Both the manager and the member see the project exactly once.
	for _, userID := range []uint{manager.ID, contributor.ID} {
		projects, err := svc.GetUserProjects(ctx, userID)
		if err != nil {
			t.Fatalf("user projects for %d: %v", userID, err)
		}
		seen := 0
		for _, p := range projects {
			if p.ID == created.ID {
				seen++
				if len(p.Members) != 1 || p.Members[0].UserID != contributor.ID {
					t.Fatalf("expected the single contributor membership, got %+v", p.Members)
				}
				if p.Manager == nil || p.Manager.ID != manager.ID {
					t.Fatalf("expected manager to be loaded, got %+v", p.Manager)
				}
			}
		}
		if seen != 1 {
			t.Fatalf("user %d should see the project exactly once, saw it %d times", userID, seen)
		}
	}
}

func TestAddProjectMemberMissingProject(t *testing.T) {
	db := newTestDB(t)
	svc := NewProjectService(db)

	ok, err := svc.AddProjectMember(context.Background(), 999, 1, "Contributor")
	if err != nil {
		t.Fatalf("add member: %v", err)
	}
	if ok {
		t.Fatal("expected false for a nonexistent project")
	}
}

func TestGetUserProjectsOrderAndScope(t *testing.T) {
	db := newTestDB(t)
	svc := NewProjectService(db)
	ctx := context.Background()

	owner := models.User{Email: "own@example.com", DisplayName: "Owner", Role: models.RoleProjectManager, Availability: models.StatusAvailable}
	outsider := models.User{Email: "out@example.com", DisplayName: "Outsider", Role: models.RoleEmployee, Availability: models.StatusAvailable}
	mustCreate(t, db, &owner)
	mustCreate(t, db, &outsider)

	older, err := svc.CreateProject(ctx, &models.Project{Name: "Older", ManagerID: owner.ID})
	if err != nil {
		t.Fatalf("create older: %v", err)
	}
	newer, err := svc.CreateProject(ctx, &models.Project{Name: "Newer", ManagerID: owner.ID})
	if err != nil {
		t.Fatalf("create newer: %v", err)
	}
	// Push the first project back an hour so the ordering is unambiguous.
	if err := db.Model(&models.Project{}).Where("id = ?", older.ID).
		Update("created_at", time.Now().UTC().Add(-time.Hour)).Error; err != nil {
		t.Fatalf("backdating: %v", err)
	}

	projects, err := svc.GetUserProjects(ctx, owner.ID)
	if err != nil {
		t.Fatalf("user projects: %v", err)
	}
	if len(projects) != 2 {
		t.Fatalf("expected both managed projects, got %d", len(projects))
	}
	if projects[0].ID != newer.ID || projects[1].ID != older.ID {
		t.Fatalf("expected newest first, got %q then %q", projects[0].Name, projects[1].Name)
	}

	// Someone who neither manages nor belongs sees nothing.
	none, err := svc.GetUserProjects(ctx, outsider.ID)
	if err != nil {
		t.Fatalf("outsider projects: %v", err)
	}
	if len(none) != 0 {
		t.Fatalf("expected no projects for an outsider, got %d", len(none))
	}
}

func TestGetProjectByIDEagerLoadsTasks(t *testing.T) {
	db := newTestDB(t)
	svc := NewProjectService(db)
	ctx := context.Background()

	manager := models.User{Email: "pm2@example.com", DisplayName: "PM", Role: models.RoleProjectManager, Availability: models.StatusAvailable}
	assignee := models.User{Email: "dev@example.com", DisplayName: "Dev", Role: models.RoleEmployee, Availability: models.StatusAvailable}
	mustCreate(t, db, &manager)
	mustCreate(t, db, &assignee)

	project, err := svc.CreateProject(ctx, &models.Project{Name: "Borealis", ManagerID: manager.ID})
	if err != nil {
		t.Fatalf("create project: %v", err)
	}
	mustCreate(t, db, &models.Task{
		ProjectID:  project.ID,
		Title:      "Wire the API",
		Status:     "InProgress",
		AssigneeID: &assignee.ID,
	})

	got, err := svc.GetProjectByID(ctx, project.ID)
	if err != nil {
		t.Fatalf("get project: %v", err)
	}
	if got == nil {
		t.Fatal("expected the project")
	}
	if got.Manager == nil || got.Manager.DisplayName != "PM" {
		t.Fatalf("expected manager to be loaded, got %+v", got.Manager)
	}
	if len(got.Tasks) != 1 {
		t.Fatalf("expected one task, got %d", len(got.Tasks))
	}
	if got.Tasks[0].Assignee == nil || got.Tasks[0].Assignee.DisplayName != "Dev" {
		t.Fatalf("expected the task assignee to be loaded, got %+v", got.Tasks[0].Assignee)
	}

	missing, err := svc.GetProjectByID(ctx, 424242)
	if err != nil {
		t.Fatalf("missing project: %v", err)
	}
	if missing != nil {
		t.Fatalf("expected nil for an unknown id, got %+v", missing)
	}
}

func TestUpdateProjectWhitelist(t *testing.T) {
	db := newTestDB(t)
	svc := NewProjectService(db)
	ctx := context.Background()

	manager := models.User{Email: "pm3@example.com", DisplayName: "PM", Role: models.RoleProjectManager, Availability: models.StatusAvailable}
	other := models.User{Email: "pm4@example.com", DisplayName: "Other", Role: models.RoleProjectManager, Availability: models.StatusAvailable}
	mustCreate(t, db, &manager)
	mustCreate(t, db, &other)

	project, err := svc.CreateProject(ctx, &models.Project{Name: "Carina", Status: "Planning", ManagerID: manager.ID})
	if err != nil {
		t.Fatalf("create project: %v", err)
	}

	target := time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC)
	ok, err := svc.UpdateProject(ctx, &models.Project{
		ID:          project.ID,
		Name:        "Carina II",
		Description: "Second phase",
		Status:      "Active",
		TargetDate:  &target,
		// Attempting to reassign the manager through the edit path.
		ManagerID: other.ID,
	})
	if err != nil {
		t.Fatalf("update project: %v", err)
	}
	if !ok {
		t.Fatal("expected true for an existing project")
	}

	var after models.Project
	db.First(&after, project.ID)
	if after.Name != "Carina II" || after.Status != "Active" {
		t.Fatalf("whitelisted fields not applied: %+v", after)
	}
	if after.TargetDate == nil || !after.TargetDate.Equal(target) {
		t.Fatalf("expected the target date to be set, got %v", after.TargetDate)
	}
	if after.ManagerID != manager.ID {
		t.Fatalf("manager must be immutable through update, got %d", after.ManagerID)
	}
	if !after.UpdatedAt.After(after.CreatedAt) {
		t.Fatal("expected UpdatedAt to move forward")
	}

	ok, err = svc.UpdateProject(ctx, &models.Project{ID: 999, Name: "Ghost"})
	if err != nil {
		t.Fatalf("missing update: %v", err)
	}
	if ok {
		t.Fatal("expected false for a nonexistent project")
	}
}

func TestGetProjectMembers(t *testing.T) {
	db := newTestDB(t)
	svc := NewProjectService(db)
	ctx := context.Background()

	manager := models.User{Email: "pm5@example.com", DisplayName: "PM", Role: models.RoleProjectManager, Availability: models.StatusAvailable}
	memberA := models.User{Email: "a@example.com", DisplayName: "A", Role: models.RoleEmployee, Availability: models.StatusAvailable}
	memberB := models.User{Email: "b@example.com", DisplayName: "B", Role: models.RoleEmployee, Availability: models.StatusAvailable}
	mustCreate(t, db, &manager)
	mustCreate(t, db, &memberA)
	mustCreate(t, db, &memberB)

	project, err := svc.CreateProject(ctx, &models.Project{Name: "Dorado", ManagerID: manager.ID})
	if err != nil {
		t.Fatalf("create project: %v", err)
	}
	for _, u := range []uint{memberA.ID, memberB.ID} {
		if ok, err := svc.AddProjectMember(ctx, project.ID, u, "Contributor"); err != nil || !ok {
			t.Fatalf("add member %d: ok=%v err=%v", u, ok, err)
		}
	}

	members, err := svc.GetProjectMembers(ctx, project.ID)
	if err != nil {
		t.Fatalf("get members: %v", err)
	}
	if len(members) != 2 {
		t.Fatalf("expected two members, got %d", len(members))
	}
	for _, m := range members {
		if m.User == nil {
			t.Fatalf("expected each membership to carry its user, got %+v", m)
		}
		if m.AssignedAt.IsZero() {
			t.Fatal("expected AssignedAt to be stamped")
		}
	}
}
