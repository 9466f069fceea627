package vault_test

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"testing"
	"time"

	"github.com/aussiebroadwan/credvault/pkg/vaultsdk"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcexec "github.com/testcontainers/testcontainers-go/exec"
	"github.com/testcontainers/testcontainers-go/wait"
)

/*
 * Common constants and helpers for the vault end-to-end tests: container
 * setup, operator creation and assertions.
 */

const (
	testImageName = "credvault-test:latest"

	encryptionKey = "e2e-vault-key-0123456789abcdef0123456789"
	adminUsername = "admin"
	adminPassword = "Admin123!"
)

// TestMain builds the Docker image once before all tests and removes it
// afterwards.
func TestMain(m *testing.M) {
	fmt.Fprintf(os.Stdout, "Building vault Docker image...")

	if err := buildDockerImage(); err != nil {
		fmt.Fprintf(os.Stderr, "\nFailed to build Docker image: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stdout, " done\n")

	exitCode := m.Run()

	fmt.Fprintf(os.Stdout, "Cleaning up vault Docker image...")
	cleanupDockerImage()
	fmt.Fprintf(os.Stdout, " done\n")

	os.Exit(exitCode)
}

func buildDockerImage() error {
	ctx := context.Background()
	cmd := exec.CommandContext(ctx, "docker", "build",
		"-t", testImageName,
		"-f", "../../../cmd/vault/Dockerfile",
		"../../../")
	cmd.Dir = "."
	cmd.Stdout = os.Stdout
	cmd.Stderr = nil

	return cmd.Run()
}

func cleanupDockerImage() {
	ctx := context.Background()
	cmd := exec.CommandContext(ctx, "docker", "rmi", "-f", testImageName)
	_ = cmd.Run() // image might not exist
}

// setupVaultContainer starts the vault in a container and returns the
// running container with its base URL.
func setupVaultContainer(t *testing.T) (testcontainers.Container, string) {
	t.Helper()
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        testImageName,
		ExposedPorts: []string{"8080/tcp"},
		Env: map[string]string{
			"VAULT_ENCRYPTION_KEY": encryptionKey,
			"VAULT_ISSUER":         "credvault-e2e",
			"VAULT_EXPORT_TZ":      "UTC",
			"ENV":                  "test",
			"LOG_LEVEL":            "info",
			"LOG_FORMAT":           "json",
		},
		WaitingFor: wait.ForHTTP("/livez").
			WithPort("8080/tcp").
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	mappedPort, err := container.MappedPort(ctx, "8080")
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)

	return container, fmt.Sprintf("http://%s:%s", host, mappedPort.Port())
}

// createOperator runs the create-user command inside the container and
// returns the printed 2FA secret, empty when with2FA is false.
func createOperator(t *testing.T, container testcontainers.Container, with2FA bool) string {
	t.Helper()

	cmd := []string{"vault", "create-user", "--username", adminUsername, "--password", adminPassword}
	if !with2FA {
		cmd = append(cmd, "--no-2fa")
	}

	code, out, err := container.Exec(t.Context(), cmd, tcexec.Multiplexed())
	require.NoError(t, err)

	var secret string
	var lines []string
	sc := bufio.NewScanner(out)
	for sc.Scan() {
		line := sc.Text()
		lines = append(lines, line)
		if s, ok := strings.CutPrefix(line, "2FA secret: "); ok {
			secret = strings.TrimSpace(s)
		}
	}
	require.Equal(t, 0, code, "create-user failed: %s", strings.Join(lines, "\n"))

	if with2FA {
		require.NotEmpty(t, secret, "create-user should print the 2FA secret")
	}
	return secret
}

// loggedInClient creates an operator without 2FA and returns a client
// holding its session.
func loggedInClient(t *testing.T) *vaultsdk.Client {
	t.Helper()

	container, baseURL := setupVaultContainer(t)
	createOperator(t, container, false)

	client := vaultsdk.NewClient(baseURL)
	require.NoError(t, client.Login(t.Context(), adminUsername, adminPassword, ""))
	return client
}

func assertStatus(t *testing.T, err error, status int) {
	t.Helper()
	require.Error(t, err)

	var apiErr *vaultsdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, status, apiErr.StatusCode, apiErr.Message)
}

func assertHealthy(t *testing.T, health vaultsdk.HealthResponse, err error) {
	t.Helper()
	require.NoError(t, err)
	require.Equal(t, "ok", health.Status)
}
