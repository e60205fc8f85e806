package account

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasRole(t *testing.T) {
	p := Principal{AccountID: 1, Roles: []string{RoleUser, RoleAdmin}}
	assert.True(t, p.HasRole(RoleAdmin))
	assert.True(t, p.HasRole(RoleUser))
	assert.False(t, p.HasRole("MODERATOR"))
	assert.False(t, Principal{}.HasRole(RoleUser))
}

func TestCanAct(t *testing.T) {
	cases := []struct {
		name      string
		principal Principal
		target    int64
		want      bool
	}{
		{"self", Principal{AccountID: 7, Roles: []string{RoleUser}}, 7, true},
		{"other account", Principal{AccountID: 7, Roles: []string{RoleUser}}, 8, false},
		{"admin on other account", Principal{AccountID: 1, Roles: []string{RoleAdmin}}, 8, true},
		{"admin on self", Principal{AccountID: 1, Roles: []string{RoleAdmin}}, 1, true},
		{"no roles, no match", Principal{AccountID: 3}, 4, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, CanAct(tc.principal, tc.target))
		})
	}
}
