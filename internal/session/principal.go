// AngelaMos | 2026
// principal.go

package session

import (
	"encoding/json"
	"fmt"
)

// Role identifies which privilege domain a principal belongs to.
type Role int

const (
	RoleAnonymous Role = iota
	RoleUser
	RoleAdmin
)

func (r Role) String() string {
	switch r {
	case RoleUser:
		return "user"
	case RoleAdmin:
		return "admin"
	default:
		return "anonymous"
	}
}

// UserIdentity is what the session remembers about a signed-in user.
type UserIdentity struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Plan  string `json:"plan"`
}

// Principal is exactly one of anonymous, a user, or the admin. Fields
// are unexported so a principal can only be built through the
// constructors below.
type Principal struct {
	role  Role
	user  UserIdentity
	admin string
}

func Anonymous() Principal {
	return Principal{role: RoleAnonymous}
}

func NewUser(identity UserIdentity) Principal {
	return Principal{role: RoleUser, user: identity}
}

func NewAdmin(username string) Principal {
	return Principal{role: RoleAdmin, admin: username}
}

func (p Principal) Role() Role {
	return p.role
}

func (p Principal) IsAnonymous() bool {
	return p.role == RoleAnonymous
}

func (p Principal) User() (UserIdentity, bool) {
	if p.role != RoleUser {
		return UserIdentity{}, false
	}
	return p.user, true
}

func (p Principal) Admin() (string, bool) {
	if p.role != RoleAdmin {
		return "", false
	}
	return p.admin, true
}

type principalWire struct {
	Kind  string        `json:"kind"`
	User  *UserIdentity `json:"user,omitempty"`
	Admin string        `json:"admin,omitempty"`
}

func (p Principal) MarshalJSON() ([]byte, error) {
	w := principalWire{Kind: p.role.String()}
	switch p.role {
	case RoleUser:
		u := p.user
		w.User = &u
	case RoleAdmin:
		w.Admin = p.admin
	}
	return json.Marshal(w)
}

func (p *Principal) UnmarshalJSON(data []byte) error {
	var w principalWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	switch w.Kind {
	case "", "anonymous":
		*p = Anonymous()
	case "user":
		if w.User == nil || w.User.ID == 0 {
			return fmt.Errorf("user principal without identity")
		}
		*p = NewUser(*w.User)
	case "admin":
		if w.Admin == "" {
			return fmt.Errorf("admin principal without username")
		}
		*p = NewAdmin(w.Admin)
	default:
		return fmt.Errorf("unknown principal kind %q", w.Kind)
	}

	return nil
}
