package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	domainauth "github.com/campushub/intranet-api/internal/domain/auth"
	"github.com/campushub/intranet-api/internal/domain/model"
	"github.com/campushub/intranet-api/internal/mocks"
	mockauth "github.com/campushub/intranet-api/internal/mocks/auth"
)

func TestUserService_UpdateValidation(t *testing.T) {
	users := mockauth.NewMemoryUserRepo()
	svc := NewUserService(UserServiceOptions{Users: users})
	ctx := context.Background()

	u := users.Seed(model.User{Email: "a@x.com", FirstName: "A", LastName: "B", Role: domainauth.RoleStudent, IsActive: true})

	empty := ""
	_, err := svc.Update(ctx, u.ID, model.UpdateUserRequest{FirstName: &empty})
	require.Error(t, err)

	name := "Alice"
	updated, err := svc.Update(ctx, u.ID, model.UpdateUserRequest{FirstName: &name})
	require.NoError(t, err)
	assert.Equal(t, "Alice", updated.FirstName)
}

func TestUserService_ParentLinks(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	ctx := context.Background()

	mockLinks := mocks.NewMockParentLinkRepository(ctrl)
	svc := NewUserService(UserServiceOptions{Links: mockLinks})

	mockLinks.EXPECT().Link(ctx, int64(1), int64(2), "mother").
		Return(&model.ParentChildLink{ID: 5, ParentID: 1, StudentID: 2, Relationship: "mother"}, nil)
	mockLinks.EXPECT().IsLinked(ctx, int64(1), int64(2)).Return(true, nil)
	mockLinks.EXPECT().ListChildren(ctx, int64(1)).
		Return([]*model.User{{ID: 2, Role: domainauth.RoleStudent}}, nil)

	link, err := svc.LinkChild(ctx, 1, 2, "mother")
	require.NoError(t, err)
	assert.Equal(t, int64(5), link.ID)

	ok, err := svc.IsParentOf(ctx, 1, 2)
	require.NoError(t, err)
	assert.True(t, ok)

	children, err := svc.ListChildren(ctx, 1)
	require.NoError(t, err)
	require.Len(t, children, 1)
	assert.Equal(t, int64(2), children[0].ID)
}
