package service

import (
	"context"

	"github.com/campushub/intranet-api/internal/core"
	"github.com/campushub/intranet-api/internal/domain/model"
)

// UserServiceOptions groups dependencies for UserService.
type UserServiceOptions struct {
	Users core.UserRepository
	Links core.ParentLinkRepository
}

// UserService orchestrates account administration and parent/child links.
type UserService struct {
	users core.UserRepository
	links core.ParentLinkRepository
}

// NewUserService constructs a new UserService.
func NewUserService(opts UserServiceOptions) *UserService {
	return &UserService{users: opts.Users, links: opts.Links}
}

// GetByID retrieves an account by ID.
func (s *UserService) GetByID(ctx context.Context, id int64) (*model.User, error) {
	return s.users.GetByID(ctx, id)
}

// List returns a page of accounts.
func (s *UserService) List(ctx context.Context, opts model.UsersListOptions) ([]*model.User, error) {
	opts.Normalize()
	return s.users.List(ctx, opts)
}

// Update applies a partial update to an account.
func (s *UserService) Update(ctx context.Context, id int64, req model.UpdateUserRequest) (*model.User, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return s.users.Update(ctx, id, req)
}

// Delete removes an account. Returns true if a row was deleted.
func (s *UserService) Delete(ctx context.Context, id int64) (bool, error) {
	return s.users.Delete(ctx, id)
}

// LinkChild ties a parent account to a student account.
func (s *UserService) LinkChild(ctx context.Context, parentID, studentID int64, relationship string) (*model.ParentChildLink, error) {
	return s.links.Link(ctx, parentID, studentID, relationship)
}

// ListChildren returns the student accounts linked to a parent.
func (s *UserService) ListChildren(ctx context.Context, parentID int64) ([]*model.User, error) {
	return s.links.ListChildren(ctx, parentID)
}

// IsParentOf reports whether parentID is linked to studentID.
func (s *UserService) IsParentOf(ctx context.Context, parentID, studentID int64) (bool, error) {
	return s.links.IsLinked(ctx, parentID, studentID)
}
