package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestNewArticle(t *testing.T) {
	n := NewArticle(7, "Hello", TextField{Value: "<p>hi</p>", Format: FormatBasicHTML}, true)

	assert.True(t, n.IsArticle())
	assert.True(t, n.Published())
	assert.Equal(t, int64(7), n.AuthorID)
	assert.NotEqual(t, uuid.Nil, n.UUID)
	assert.Equal(t, n.CreatedAt, n.ChangedAt)
}

func TestNode_IsArticle(t *testing.T) {
	var nilNode *Node
	assert.False(t, nilNode.IsArticle())
	assert.False(t, (&Node{Type: "page"}).IsArticle())
	assert.True(t, (&Node{Type: BundleArticle}).IsArticle())
}

func TestAccount_Anonymous(t *testing.T) {
	anon := AnonymousAccount()
	assert.True(t, anon.IsAnonymous())
	assert.Equal(t, []string{RoleAnonymous}, anon.SortedRoles())

	var nilAccount *Account
	assert.True(t, nilAccount.IsAnonymous())
	assert.Equal(t, []string{RoleAnonymous}, nilAccount.SortedRoles())
}

func TestNewAuthenticatedAccount(t *testing.T) {
	acct := NewAuthenticatedAccount(3, "editor", "editor", "anonymous", "", "editor")

	assert.True(t, acct.IsAuthenticated())
	assert.Equal(t, []string{RoleAuthenticated, "editor"}, acct.Roles)
}
