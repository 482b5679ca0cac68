package services

import (
	"context"
	"errors"

	"document-portal-api/models"
	"document-portal-api/repositories"

	"gorm.io/gorm"
)

// Actor is the explicit caller context every core operation receives.
// Keeping it a plain value makes the permission checks pure functions.
type Actor struct {
	UserID       int
	DepartmentID *int
	RoleID       int
}

func (a Actor) IsAdmin() bool {
	return a.RoleID == models.RoleAdmin
}

func (a Actor) IsReviewer() bool {
	return a.RoleID == models.RoleReviewer
}

// InDepartment reports whether the actor belongs to the given department.
func (a Actor) InDepartment(departmentID int) bool {
	return a.DepartmentID != nil && *a.DepartmentID == departmentID
}

func ActorFromUser(user models.User) Actor {
	return Actor{
		UserID:       user.UserID,
		DepartmentID: user.DepartmentID,
		RoleID:       user.RoleID,
	}
}

func loadActor(ctx context.Context, users repositories.UserRepository, userID int) (Actor, models.User, error) {
	user, err := users.GetByID(ctx, nil, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Actor{}, models.User{}, newNotFound("user not found")
		}
		return Actor{}, models.User{}, newPersistence("failed to load user", err)
	}
	return ActorFromUser(user), user, nil
}
