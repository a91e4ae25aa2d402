package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHomeModel_Actions(t *testing.T) {
	m := NewHomeModel()

	_, cmd := m.Update(keyPress("enter"))
	nav, ok := findMsg[NavigateTo](runCmd(cmd))
	require.True(t, ok)
	assert.Equal(t, PageWriteups, nav.Page)

	m.Update(keyPress("down"))
	_, cmd = m.Update(keyPress("enter"))
	nav, ok = findMsg[NavigateTo](runCmd(cmd))
	require.True(t, ok)
	assert.Equal(t, PageAuth, nav.Page)

	m.Update(SessionChangedMsg{State: signedIn("alice")})
	assert.Contains(t, m.View(), "Sign out")

	_, cmd = m.Update(keyPress("enter"))
	_, ok = findMsg[requestSignOutMsg](runCmd(cmd))
	assert.True(t, ok)
}

func TestHomeModel_Notice(t *testing.T) {
	m := NewHomeModel()

	m.Update(authNoticeMsg{text: "Signed out"})
	assert.Contains(t, m.View(), "Signed out")
}

func TestNotFoundModel(t *testing.T) {
	m := NewNotFoundModel()
	assert.Contains(t, m.View(), "404")

	_, cmd := m.Update(keyPress("enter"))
	nav, ok := findMsg[NavigateTo](runCmd(cmd))
	require.True(t, ok)
	assert.Equal(t, PageHome, nav.Page)
}
