package e2e_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pr-poehali-dev/site-clone-poehali/internal/api"
	"github.com/pr-poehali-dev/site-clone-poehali/internal/factory"
)

// cliRunner manages CLI binary execution
type cliRunner struct {
	binaryPath string
	serverURL  string
	sessionDir string
}

func newCLIRunner(t *testing.T, serverURL string) *cliRunner {
	t.Helper()

	// Find project root (where go.mod is)
	projectRoot := findProjectRoot(t)

	// Build the CLI binary
	binaryPath := filepath.Join(projectRoot, "bin", "poehali-test")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/poehali")
	cmd.Dir = projectRoot
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "failed to build CLI: %s", string(output))

	return &cliRunner{
		binaryPath: binaryPath,
		serverURL:  serverURL,
		sessionDir: t.TempDir(),
	}
}

func (r *cliRunner) run(args ...string) (string, error) {
	fullArgs := append([]string{
		"--server", r.serverURL,
		"--session-dir", r.sessionDir,
		"--output", "json",
	}, args...)

	cmd := exec.Command(r.binaryPath, fullArgs...)
	output, err := cmd.CombinedOutput()
	return string(output), err
}

func findProjectRoot(t *testing.T) string {
	t.Helper()

	dir, err := os.Getwd()
	require.NoError(t, err)

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatal("could not find project root (go.mod)")
		}
		dir = parent
	}
}

// testServer manages a real HTTP server for e2e tests
type testServer struct {
	addr     string
	shutdown func()
}

func startTestServer(t *testing.T) *testServer {
	t.Helper()

	// Find a free port
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := listener.Addr().String()
	require.NoError(t, listener.Close())

	// Create application with a bootstrapped admin account
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	app, err := factory.New(factory.Config{Logger: logger})
	require.NoError(t, err)
	require.NoError(t, app.AuthService.EnsureAdmin(context.Background(), "admin@example.com", "admin", "adminpass"))

	router := api.NewRouter(api.RouterConfig{
		Logger:       logger,
		AuthService:  app.AuthService,
		AdminService: app.AdminService,
	})

	server := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	// Start server
	go func() {
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			t.Logf("server error: %v", err)
		}
	}()

	// Wait for server to be ready
	serverURL := "http://" + addr
	waitForServer(t, serverURL+"/api/health")

	return &testServer{
		addr: serverURL,
		shutdown: func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = server.Shutdown(ctx)
		},
	}
}

func waitForServer(t *testing.T, url string) {
	t.Helper()

	client := &http.Client{Timeout: 100 * time.Millisecond}
	deadline := time.Now().Add(5 * time.Second)

	for time.Now().Before(deadline) {
		resp, err := client.Get(url)
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return
			}
		}
		time.Sleep(50 * time.Millisecond)
	}

	t.Fatal("server did not become ready in time")
}

// Response types for JSON parsing
type userResponse struct {
	ID               int64  `json:"id"`
	Email            string `json:"email"`
	Username         string `json:"username"`
	Energy           int    `json:"energy"`
	IsInfiniteEnergy bool   `json:"isInfiniteEnergy"`
	IsAdmin          bool   `json:"isAdmin"`
}

type authResponse struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}

type statsResponse struct {
	TotalUsers     int     `json:"totalUsers"`
	ActiveSessions int     `json:"activeSessions"`
	TotalEnergy    int     `json:"totalEnergy"`
	AvgEnergy      float64 `json:"avgEnergy"`
}

type energyResponse struct {
	Success   bool `json:"success"`
	NewEnergy int  `json:"newEnergy"`
}

type infiniteResponse struct {
	Success          bool `json:"success"`
	IsInfiniteEnergy bool `json:"isInfiniteEnergy"`
}

type healthResponse struct {
	Status string `json:"status"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// Tests

func TestCLI_HealthCheck(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	output, err := cli.run("health")
	require.NoError(t, err, "output: %s", output)

	var resp healthResponse
	require.NoError(t, json.Unmarshal([]byte(output), &resp))
	assert.Equal(t, "ok", resp.Status)
}

func TestCLI_RegisterAndWhoami(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	// Register
	output, err := cli.run("register", "--email", "alice@example.com", "--user", "alice", "--pass", "password123")
	require.NoError(t, err, "output: %s", output)

	var authResp authResponse
	require.NoError(t, json.Unmarshal([]byte(output), &authResp))
	assert.Equal(t, "alice", authResp.User.Username)
	assert.Equal(t, 100, authResp.User.Energy)
	assert.NotEmpty(t, authResp.Token)

	// Session survives into the next invocation
	output, err = cli.run("whoami")
	require.NoError(t, err, "output: %s", output)

	var user userResponse
	require.NoError(t, json.Unmarshal([]byte(output), &user))
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, authResp.User.ID, user.ID)
}

func TestCLI_RegisterRejectsMismatchedConfirmation(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	output, err := cli.run("register",
		"--email", "alice@example.com", "--user", "alice",
		"--pass", "password123", "--confirm", "different")
	require.Error(t, err)
	assert.Contains(t, output, "Passwords do not match")
}

func TestCLI_LoginLogoutFlow(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	output, err := cli.run("register", "--email", "alice@example.com", "--user", "alice", "--pass", "password123")
	require.NoError(t, err, "output: %s", output)

	// Logout clears the session
	output, err = cli.run("logout")
	require.NoError(t, err, "output: %s", output)

	var msg messageResponse
	require.NoError(t, json.Unmarshal([]byte(output), &msg))
	assert.Equal(t, "Logged out", msg.Message)

	output, err = cli.run("whoami")
	require.Error(t, err)
	assert.Contains(t, output, "not logged in")

	// Fresh login works
	output, err = cli.run("login", "--email", "alice@example.com", "--pass", "password123")
	require.NoError(t, err, "output: %s", output)

	output, err = cli.run("whoami")
	require.NoError(t, err, "output: %s", output)
}

func TestCLI_LoginWrongPassword(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	output, err := cli.run("register", "--email", "alice@example.com", "--user", "alice", "--pass", "password123")
	require.NoError(t, err, "output: %s", output)
	_, err = cli.run("logout")
	require.NoError(t, err)

	output, err = cli.run("login", "--email", "alice@example.com", "--pass", "wrongpassword")
	require.Error(t, err)
	assert.Contains(t, output, "Invalid email or password")
}

func TestCLI_PasswordChange(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	output, err := cli.run("register", "--email", "alice@example.com", "--user", "alice", "--pass", "password123")
	require.NoError(t, err, "output: %s", output)

	output, err = cli.run("passwd", "--email", "alice@example.com", "--old", "password123", "--new", "newpassword")
	require.NoError(t, err, "output: %s", output)

	_, err = cli.run("logout")
	require.NoError(t, err)

	output, err = cli.run("login", "--email", "alice@example.com", "--pass", "newpassword")
	require.NoError(t, err, "output: %s", output)
}

func TestCLI_AdminCommands(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	// A regular user to operate on
	output, err := cli.run("register", "--email", "alice@example.com", "--user", "alice", "--pass", "password123")
	require.NoError(t, err, "output: %s", output)

	var aliceResp authResponse
	require.NoError(t, json.Unmarshal([]byte(output), &aliceResp))

	// Admin operations rejected for regular users
	output, err = cli.run("admin", "stats")
	require.Error(t, err)
	assert.Contains(t, output, "Admin access required")

	// Switch to the bootstrapped admin
	output, err = cli.run("login", "--email", "admin@example.com", "--pass", "adminpass")
	require.NoError(t, err, "output: %s", output)

	// Stats
	output, err = cli.run("admin", "stats")
	require.NoError(t, err, "output: %s", output)

	var stats statsResponse
	require.NoError(t, json.Unmarshal([]byte(output), &stats))
	assert.Equal(t, 2, stats.TotalUsers)

	// Users
	output, err = cli.run("admin", "users")
	require.NoError(t, err, "output: %s", output)

	var users []userResponse
	require.NoError(t, json.Unmarshal([]byte(output), &users))
	assert.Len(t, users, 2)

	// Energy adjustment
	output, err = cli.run("admin", "energy", "--user-id", "2", "--amount=-40")
	require.NoError(t, err, "output: %s", output)

	var energy energyResponse
	require.NoError(t, json.Unmarshal([]byte(output), &energy))
	assert.True(t, energy.Success)
	assert.Equal(t, 60, energy.NewEnergy)

	// Infinite energy toggle
	output, err = cli.run("admin", "infinite", "--user-id", "2")
	require.NoError(t, err, "output: %s", output)

	var infinite infiniteResponse
	require.NoError(t, json.Unmarshal([]byte(output), &infinite))
	assert.True(t, infinite.Success)
	assert.True(t, infinite.IsInfiniteEnergy)

	// Mutations on infinite users are rejected
	output, err = cli.run("admin", "energy", "--user-id", "2", "--amount", "10")
	require.Error(t, err)
	assert.Contains(t, output, "User has infinite energy")
}

func TestCLI_DashboardForAdmin(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	output, err := cli.run("login", "--email", "admin@example.com", "--pass", "adminpass")
	require.NoError(t, err, "output: %s", output)

	output, err = cli.run("dashboard")
	require.NoError(t, err, "output: %s", output)

	var result struct {
		User  *userResponse  `json:"User"`
		Stats *statsResponse `json:"Stats"`
		Users []userResponse `json:"Users"`
	}
	require.NoError(t, json.Unmarshal([]byte(output), &result))
	require.NotNil(t, result.User)
	assert.True(t, result.User.IsAdmin)
	require.NotNil(t, result.Stats)
	assert.Len(t, result.Users, 1)
}

func TestCLI_DashboardWithoutSession(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	output, err := cli.run("dashboard")
	require.Error(t, err)
	assert.Contains(t, output, "not logged in")
}
