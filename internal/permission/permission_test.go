package permission

import (
	"testing"

	"docvault/internal/model"

	"github.com/stretchr/testify/assert"
)

var allActions = []Action{ActionView, ActionDownload, ActionUpdate}

func TestCanPerform_Admin(t *testing.T) {
	doc := &model.Document{ID: "d1", OwnerID: "owner"}

	for _, action := range allActions {
		assert.True(t, CanPerform(doc, "someone-else", model.RoleAdmin, action),
			"admin must be allowed %s regardless of assignment state", action)
	}

	// Admin wins even when an assignment entry would deny the action.
	doc.AssignedTo = []model.Assignment{
		{UserID: "adm", Permissions: model.PermissionSet{}},
	}
	for _, action := range allActions {
		assert.True(t, CanPerform(doc, "adm", model.RoleAdmin, action))
	}
}

func TestCanPerform_Owner(t *testing.T) {
	doc := &model.Document{ID: "d1", OwnerID: "u1"}

	for _, action := range allActions {
		assert.True(t, CanPerform(doc, "u1", model.RoleUser, action))
	}

	// Owner rights are independent of assignment entries, even a restrictive
	// entry for the owner themselves.
	doc.AssignedTo = []model.Assignment{
		{UserID: "u1", Permissions: model.PermissionSet{View: true}},
	}
	assert.True(t, CanPerform(doc, "u1", model.RoleUser, ActionUpdate))
}

func TestCanPerform_Assignee(t *testing.T) {
	doc := &model.Document{
		ID:      "d1",
		OwnerID: "owner",
		AssignedTo: []model.Assignment{
			{UserID: "u2", Permissions: model.PermissionSet{View: true, Download: false, Update: false}},
			{UserID: "u3", Permissions: model.PermissionSet{View: true, Download: true, Update: true}},
		},
	}

	assert.True(t, CanPerform(doc, "u2", model.RoleUser, ActionView))
	assert.False(t, CanPerform(doc, "u2", model.RoleUser, ActionDownload))
	assert.False(t, CanPerform(doc, "u2", model.RoleUser, ActionUpdate))

	for _, action := range allActions {
		assert.True(t, CanPerform(doc, "u3", model.RoleUser, action))
	}
}

func TestCanPerform_Unrelated(t *testing.T) {
	doc := &model.Document{
		ID:      "d1",
		OwnerID: "owner",
		AssignedTo: []model.Assignment{
			{UserID: "u2", Permissions: model.PermissionSet{View: true}},
		},
	}

	for _, action := range allActions {
		assert.False(t, CanPerform(doc, "u9", model.RoleUser, action))
	}
}

func TestResolve_Variants(t *testing.T) {
	doc := &model.Document{
		ID:      "d1",
		OwnerID: "owner",
		AssignedTo: []model.Assignment{
			{UserID: "u2", Permissions: model.PermissionSet{Download: true}},
		},
	}

	assert.Equal(t, VariantAdmin, Resolve(doc, "x", model.RoleAdmin).Variant)
	assert.Equal(t, VariantOwner, Resolve(doc, "owner", model.RoleUser).Variant)
	assert.Equal(t, VariantAssignee, Resolve(doc, "u2", model.RoleUser).Variant)
	assert.Equal(t, VariantOther, Resolve(doc, "u9", model.RoleUser).Variant)
}

func TestResolve_EmptyActorNeverMatchesEmptyFields(t *testing.T) {
	// A document with a blank owner or a blank assignment user id must not
	// grant anything to an actor with a blank id.
	doc := &model.Document{
		ID: "d1",
		AssignedTo: []model.Assignment{
			{UserID: "", Permissions: model.PermissionSet{View: true}},
		},
	}

	assert.Equal(t, VariantOther, Resolve(doc, "", model.RoleUser).Variant)
	assert.False(t, CanPerform(doc, "", model.RoleUser, ActionView))
}
