package domain

import "sort"

const (
	RoleAnonymous     = "anonymous"
	RoleAuthenticated = "authenticated"
)

// Account is the user on whose behalf a request runs.
type Account struct {
	ID    int64    `json:"id"`
	Name  string   `json:"name"`
	Roles []string `json:"roles"`
}

// AnonymousAccount returns the account used when no credentials are presented.
func AnonymousAccount() *Account {
	return &Account{ID: 0, Name: "anonymous", Roles: []string{RoleAnonymous}}
}

// NewAuthenticatedAccount returns an account that always carries the authenticated role.
func NewAuthenticatedAccount(id int64, name string, roles ...string) *Account {
	set := map[string]struct{}{RoleAuthenticated: {}}
	for _, r := range roles {
		if r == "" || r == RoleAnonymous {
			continue
		}
		set[r] = struct{}{}
	}

	out := make([]string, 0, len(set))
	for r := range set {
		out = append(out, r)
	}
	sort.Strings(out)

	return &Account{ID: id, Name: name, Roles: out}
}

func (a *Account) IsAnonymous() bool {
	return a == nil || a.ID == 0
}

func (a *Account) IsAuthenticated() bool {
	return !a.IsAnonymous()
}

// SortedRoles returns a sorted copy of the account roles; anonymous when nil.
func (a *Account) SortedRoles() []string {
	if a == nil || len(a.Roles) == 0 {
		return []string{RoleAnonymous}
	}
	roles := append([]string(nil), a.Roles...)
	sort.Strings(roles)
	return roles
}
