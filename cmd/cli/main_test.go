package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/amirasaad/fintrack/pkg/config"
	"github.com/amirasaad/fintrack/pkg/domain/user"
	"github.com/amirasaad/fintrack/webapi/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type harness struct {
	t         *testing.T
	out       *bytes.Buffer
	passwords []string
	cfg       *config.App
}

func newHarness(t *testing.T) *harness {
	cfg := testutils.TestConfig()
	cfg.DB.Url = "file:" + filepath.Join(t.TempDir(), "cli.db")
	return &harness{t: t, out: &bytes.Buffer{}, cfg: cfg}
}

func (h *harness) run(args ...string) error {
	h.out.Reset()
	e := &env{
		out: h.out,
		cfg: h.cfg,
		readPassword: func(string) (string, error) {
			require.NotEmpty(h.t, h.passwords, "unexpected password prompt")
			p := h.passwords[0]
			h.passwords = h.passwords[1:]
			return p, nil
		},
	}
	root := newRootCmd(e)
	root.SetArgs(args)
	root.SetOut(h.out)
	root.SetErr(h.out)
	return root.Execute()
}

func TestMigrate(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.run("migrate"))
	assert.Contains(t, h.out.String(), "Migrations applied (sqlite3)")

	require.NoError(t, h.run("migrate"), "second run has nothing to do")
}

func TestUserLifecycle(t *testing.T) {
	h := newHarness(t)

	h.passwords = []string{"s3cret", "s3cret"}
	require.NoError(t, h.run("user", "create", "--email", "alice@example.com", "--username", "alice"))
	assert.Contains(t, h.out.String(), "Created user 1 (alice)")

	require.NoError(t, h.run("user", "list"))
	assert.Contains(t, h.out.String(), "alice@example.com")
	assert.Contains(t, h.out.String(), "active")

	require.NoError(t, h.run("user", "deactivate", "alice"))
	assert.Contains(t, h.out.String(), "is now inactive")

	require.NoError(t, h.run("user", "list"))
	assert.Contains(t, h.out.String(), "inactive")

	require.NoError(t, h.run("user", "activate", "alice@example.com"))
	assert.Contains(t, h.out.String(), "is now active")

	require.NoError(t, h.run("user", "deactivate", "1"))
	assert.Contains(t, h.out.String(), "User 1 (alice) is now inactive")
}

func TestCreateUserErrors(t *testing.T) {
	h := newHarness(t)

	h.passwords = []string{"one", "two"}
	err := h.run("user", "create", "--email", "bob@example.com", "--username", "bob")
	assert.ErrorIs(t, err, errPasswordMismatch)

	h.passwords = []string{"pw", "pw"}
	err = h.run("user", "create", "--email", "not-an-email", "--username", "bob")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "email")

	h.passwords = []string{"pw", "pw"}
	require.NoError(t, h.run("user", "create", "--email", "bob@example.com", "--username", "bob"))
	h.passwords = []string{"pw", "pw"}
	err = h.run("user", "create", "--email", "bob@example.com", "--username", "bobby")
	assert.ErrorIs(t, err, user.ErrEmailTaken)

	err = h.run("user", "create", "--username", "carol")
	assert.Error(t, err, "email flag is required")
}

func TestSetActiveUnknownUser(t *testing.T) {
	h := newHarness(t)
	err := h.run("user", "activate", "ghost")
	assert.ErrorIs(t, err, user.ErrUserNotFound)

	assert.Error(t, h.run("user", "activate"), "needs exactly one argument")
}

func TestListEmpty(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.run("user", "list"))
	assert.Contains(t, h.out.String(), "No users found.")
}
