package models

import "fmt"

// User is the opaque user record returned by the backend on login. Only a few
// attributes are interpreted by the client (id, role, display fields); the
// rest is carried through untouched.
type User map[string]any

// Clone returns a shallow copy of u. A nil user clones to nil.
func (u User) Clone() User {
	if u == nil {
		return nil
	}
	out := make(User, len(u))
	for k, v := range u {
		out[k] = v
	}
	return out
}

// Merge returns a copy of u with every field of partial written over it.
// Nested objects are replaced, not merged.
func (u User) Merge(partial User) User {
	out := u.Clone()
	if out == nil {
		out = make(User, len(partial))
	}
	for k, v := range partial {
		out[k] = v
	}
	return out
}

// ID returns the user identifier rendered as text, or "" when absent.
func (u User) ID() string {
	v, ok := u["id"]
	if !ok || v == nil {
		return ""
	}
	switch id := v.(type) {
	case string:
		return id
	case float64:
		return fmt.Sprintf("%.0f", id)
	default:
		return fmt.Sprint(id)
	}
}

// RoleName extracts the role name. The backend has shipped the role both as
// a plain string ("ADMIN") and as an object ({"name": "ROLE_ADMIN"}).
func (u User) RoleName() string {
	if u == nil {
		return ""
	}
	switch role := u["role"].(type) {
	case string:
		return role
	case map[string]any:
		if name, ok := role["name"].(string); ok {
			return name
		}
	}
	return ""
}

// DisplayName picks the first non-empty of fullname, fullName, username, email.
func (u User) DisplayName() string {
	for _, key := range []string{"fullname", "fullName", "username", "email"} {
		if s, ok := u[key].(string); ok && s != "" {
			return s
		}
	}
	return u.ID()
}
