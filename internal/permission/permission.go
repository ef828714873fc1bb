// Package permission decides whether an actor may act on a document.
// Every action handler goes through this engine instead of checking roles
// inline, so the resolution order lives in exactly one place.
package permission

import "docvault/internal/model"

// Action is one of the permissioned operations on a document.
type Action string

const (
	ActionView     Action = "view"
	ActionDownload Action = "download"
	ActionUpdate   Action = "update"
)

// Variant classifies the actor's relationship to a document.
type Variant int

const (
	// VariantAdmin actors may perform every action.
	VariantAdmin Variant = iota
	// VariantOwner actors may perform every action on their own document,
	// regardless of assignment entries.
	VariantOwner
	// VariantAssignee actors are limited to the flags of their assignment entry.
	VariantAssignee
	// VariantOther actors have no rights on the document.
	VariantOther
)

// Grant is the resolved authority of one actor over one document. It must be
// re-resolved per request: the document's assignment list can change between
// calls and grants are never cached across mutations.
type Grant struct {
	Variant     Variant
	permissions model.PermissionSet
}

// Resolve classifies the actor against the document, first match wins:
// admin, then owner, then assignee (by assignment entry), then other.
func Resolve(doc *model.Document, actorID, actorRole string) Grant {
	if actorRole == model.RoleAdmin {
		return Grant{Variant: VariantAdmin}
	}
	if doc.OwnerID != "" && doc.OwnerID == actorID {
		return Grant{Variant: VariantOwner}
	}
	for _, a := range doc.AssignedTo {
		if a.UserID != "" && a.UserID == actorID {
			return Grant{Variant: VariantAssignee, permissions: a.Permissions}
		}
	}
	return Grant{Variant: VariantOther}
}

// Allows reports whether the grant covers the given action.
func (g Grant) Allows(action Action) bool {
	switch g.Variant {
	case VariantAdmin, VariantOwner:
		return true
	case VariantAssignee:
		switch action {
		case ActionView:
			return g.permissions.View
		case ActionDownload:
			return g.permissions.Download
		case ActionUpdate:
			return g.permissions.Update
		}
	}
	return false
}

// CanPerform answers a single authorization question. No side effects.
func CanPerform(doc *model.Document, actorID, actorRole string, action Action) bool {
	return Resolve(doc, actorID, actorRole).Allows(action)
}
