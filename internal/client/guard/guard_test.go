package guard

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type state struct{ authed, admin bool }

func (s state) IsAuthenticated() bool { return s.authed }
func (s state) IsAdmin() bool         { return s.admin }

func TestCheck(t *testing.T) {
	tests := []struct {
		name  string
		state state
		req   Requirement
		want  error
	}{
		{name: "public as guest", state: state{}, req: Public},
		{name: "public as admin", state: state{authed: true, admin: true}, req: Public},
		{name: "login as guest", state: state{}, req: LoggedIn, want: ErrLoginRequired},
		{name: "login as user", state: state{authed: true}, req: LoggedIn},
		{name: "admin as guest", state: state{}, req: Admin, want: ErrLoginRequired},
		{name: "admin as user", state: state{authed: true}, req: Admin, want: ErrForbidden},
		{name: "admin as admin", state: state{authed: true, admin: true}, req: Admin},
		{name: "admin flag alone implies auth", state: state{}, req: Requirement{Admin: true}, want: ErrLoginRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Check(tt.state, tt.req)
			if tt.want == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.want)
			}
		})
	}
}
