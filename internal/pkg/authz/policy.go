// Package authz holds the authorization decision table. Authorize is a pure
// function: every protected handler path runs it before touching a
// repository, and nothing here performs I/O.
package authz

import "blogapi/internal/domain"

type Operation string

const (
	PostRead     Operation = "post.read"
	PostCreate   Operation = "post.create"
	PostDelete   Operation = "post.delete"
	UserList     Operation = "user.list"
	UploadCreate Operation = "upload.create"
	UploadRead   Operation = "upload.read"
	UploadDelete Operation = "upload.delete"
)

// Identity is the verified claim of the requester. A nil *Identity means
// the request is anonymous.
type Identity struct {
	UserID int64
	Role   domain.UserRole
}

func (id *Identity) isAdmin() bool {
	return id != nil && id.Role == domain.RoleAdmin
}

// Resource describes the target of an operation. For create operations the
// owner is not yet known and Resource is zero: the service layer forces
// OwnerID from the identity, never from client input.
type Resource struct {
	OwnerID int64
	Public  bool
}

type Decision struct {
	Allowed bool
	Reason  string
}

func allow() Decision {
	return Decision{Allowed: true}
}

func deny(reason string) Decision {
	return Decision{Allowed: false, Reason: reason}
}

// Authorize decides whether identity may perform op against res.
func Authorize(id *Identity, op Operation, res Resource) Decision {
	switch op {
	case PostRead:
		if res.Public {
			return allow()
		}
		if id == nil {
			return deny("anonymous caller cannot read a private post")
		}
		if id.UserID == res.OwnerID || id.isAdmin() {
			return allow()
		}
		return deny("private post belongs to another user")

	case PostDelete, UploadRead, UploadDelete:
		if id == nil {
			return deny("authentication required")
		}
		if id.UserID == res.OwnerID || id.isAdmin() {
			return allow()
		}
		return deny("resource belongs to another user")

	case PostCreate, UploadCreate:
		if id == nil {
			return deny("authentication required")
		}
		return allow()

	case UserList:
		if id == nil {
			return deny("authentication required")
		}
		if id.isAdmin() {
			return allow()
		}
		return deny("admin role required")
	}

	return deny("unknown operation")
}
