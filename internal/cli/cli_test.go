package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/creatorhub/memberkit/internal/api/dto"
	devhttp "github.com/creatorhub/memberkit/internal/api/http"
	"github.com/creatorhub/memberkit/internal/client"
	"github.com/creatorhub/memberkit/internal/credentials"
	"github.com/creatorhub/memberkit/internal/domain"
	"github.com/creatorhub/memberkit/internal/service"
)

type appTransport struct {
	app *fiber.App
}

func (t appTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	return t.app.Test(req, -1)
}

// testRuntime shares one store across invocations, like a file store would.
func testRuntime(t *testing.T) (RuntimeFactory, *credentials.MemoryStore) {
	t.Helper()
	app := devhttp.NewServer(devhttp.ServerOptions{JWTSecret: "cli-secret", BcryptCost: bcrypt.MinCost})
	store := credentials.NewMemoryStore()
	session := credentials.NewSession(store)

	exec, err := client.New(
		client.Config{BaseURL: "http://devapi.local", HTTPClient: &http.Client{Transport: appTransport{app: app}}},
		client.Dependencies{Session: session},
	)
	require.NoError(t, err)

	auth := service.NewAuthService(exec)
	_, err = auth.SignUp(context.Background(), dto.SignUpRequest{Email: "ada@example.com", Password: "secret123", FirstName: "Ada"})
	require.NoError(t, err)

	rt := &Runtime{
		Session:   session,
		Sessions:  service.NewSessionService(service.SessionDependencies{Auth: auth, Session: session}),
		Creator:   service.NewCreatorService(exec),
		Members:   service.NewMemberService(exec),
		Locations: service.NewLocationService(exec),
	}
	return func(context.Context) (*Runtime, error) { return rt, nil }, store
}

func run(t *testing.T, factory RuntimeFactory, args ...string) (string, error) {
	t.Helper()
	root := NewRootCommand(factory)
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestCommandsRegistered(t *testing.T) {
	root := NewRootCommand(nil)
	for _, path := range [][]string{
		{"login"}, {"logout"}, {"whoami"},
		{"persona", "switch"}, {"persona", "select-campaign"},
		{"campaign", "show"}, {"member", "show"}, {"member", "settings"},
		{"locations", "countries"}, {"locations", "states"},
	} {
		cmd, _, err := root.Find(path)
		require.NoError(t, err, path)
		assert.Equal(t, path[len(path)-1], cmd.Name())
	}
}

func TestLoginWhoamiLogout(t *testing.T) {
	factory, store := testRuntime(t)

	out, err := run(t, factory, "whoami")
	require.NoError(t, err)
	var status sessionStatus
	require.NoError(t, json.Unmarshal([]byte(out), &status))
	assert.False(t, status.LoggedIn)

	_, err = run(t, factory, "login", "--email", "ada@example.com", "--password", "secret123")
	require.NoError(t, err)

	out, err = run(t, factory, "whoami")
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), &status))
	assert.True(t, status.LoggedIn)
	assert.Equal(t, domain.PersonaRoleMember, status.Role)
	assert.NotContains(t, out, "token\"")

	_, err = run(t, factory, "logout")
	require.NoError(t, err)
	assert.Zero(t, store.Len())
}

func TestLoginRequiresFlags(t *testing.T) {
	factory, _ := testRuntime(t)
	t.Setenv(passwordEnv, "")

	_, err := run(t, factory, "login", "--email", "ada@example.com")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--password")
}

func TestLoginFailureIsReadable(t *testing.T) {
	factory, _ := testRuntime(t)

	_, err := run(t, factory, "login", "--email", "ada@example.com", "--password", "wrong-pass")
	require.Error(t, err)
	assert.Equal(t, "Invalid credentials (HTTP 401)", err.Error())
}

func TestCommandsWithoutSession(t *testing.T) {
	factory, _ := testRuntime(t)

	_, err := run(t, factory, "locations", "countries")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not logged in")
}

func TestPersonaAndLocations(t *testing.T) {
	factory, _ := testRuntime(t)
	_, err := run(t, factory, "login", "--email", "ada@example.com", "--password", "secret123")
	require.NoError(t, err)

	out, err := run(t, factory, "persona", "switch", "member")
	require.NoError(t, err)
	assert.Contains(t, out, `"role": "MEMBER"`)

	out, err = run(t, factory, "member", "settings", "--language", "de")
	require.NoError(t, err)
	var member domain.Member
	require.NoError(t, json.Unmarshal([]byte(out), &member))
	assert.Equal(t, "de", member.Settings.Language)
	assert.True(t, member.Settings.EmailNotifications)

	out, err = run(t, factory, "locations", "states", "ca")
	require.NoError(t, err)
	var states []domain.State
	require.NoError(t, json.Unmarshal([]byte(out), &states))
	assert.NotEmpty(t, states)

	_, err = run(t, factory, "persona", "select-campaign", "camp-1")
	require.NoError(t, err)
	out, err = run(t, factory, "whoami")
	require.NoError(t, err)
	assert.Contains(t, out, `"associateCampaignId": "camp-1"`)

	_, err = run(t, factory, "persona", "switch", "admin")
	assert.Error(t, err)
}
