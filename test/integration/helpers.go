//go:build integration

package integration

import (
	"bytes"
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

// TestConfig holds configuration for integration tests
type TestConfig struct {
	APIURL            string
	ConsumerKey       string
	ConsumerSecret    string
	AccessToken       string
	AccessTokenSecret string
	SellsyPath        string
	Verbose           bool
}

// LoadTestConfig loads configuration from environment variables
func LoadTestConfig() *TestConfig {
	return &TestConfig{
		APIURL:            os.Getenv("SELLSY_API_URL"),
		ConsumerKey:       os.Getenv("SELLSY_CONSUMER_KEY"),
		ConsumerSecret:    os.Getenv("SELLSY_CONSUMER_SECRET"),
		AccessToken:       os.Getenv("SELLSY_ACCESS_TOKEN"),
		AccessTokenSecret: os.Getenv("SELLSY_ACCESS_TOKEN_SECRET"),
		SellsyPath:        getSellsyPath(),
		Verbose:           os.Getenv("SELLSY_TEST_VERBOSE") == "true",
	}
}

// getSellsyPath determines the path to the sellsy binary
func getSellsyPath() string {
	if path := os.Getenv("SELLSY_BINARY_PATH"); path != "" {
		return path
	}

	candidates := []string{
		"../../sellsy",
		"./sellsy",
		"../sellsy",
	}

	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}

	return "sellsy"
}

// SkipIfMissingConfig skips test if required config is missing
func (config *TestConfig) SkipIfMissingConfig(t *testing.T) {
	t.Helper()

	if config.ConsumerKey == "" || config.ConsumerSecret == "" ||
		config.AccessToken == "" || config.AccessTokenSecret == "" {
		t.Skip("SELLSY_* credentials not set, skipping integration test")
	}

	if _, err := exec.LookPath(config.SellsyPath); err != nil {
		t.Skipf("sellsy binary not found at %s, skipping integration test", config.SellsyPath)
	}
}

// CommandRunner runs the sellsy binary with an isolated config file.
type CommandRunner struct {
	config     *TestConfig
	configFile string
	t          *testing.T
}

// NewCommandRunner creates a new command runner
func NewCommandRunner(config *TestConfig, t *testing.T) *CommandRunner {
	t.Helper()

	return &CommandRunner{
		config:     config,
		configFile: filepath.Join(t.TempDir(), "config.yml"),
		t:          t,
	}
}

// Run executes a sellsy command and returns output
func (runner *CommandRunner) Run(args ...string) (stdout, stderr string, err error) {
	return runner.RunWithInput("", args...)
}

// RunWithInput executes a sellsy command with stdin input
func (runner *CommandRunner) RunWithInput(input string, args ...string) (stdout, stderr string, err error) {
	args = append([]string{"--config", runner.configFile}, args...)

	cmd := exec.Command(runner.config.SellsyPath, args...) // #nosec G204 -- test binary
	cmd.Env = os.Environ()

	var stdoutBuf, stderrBuf bytes.Buffer
	cmd.Stdout = &stdoutBuf
	cmd.Stderr = &stderrBuf
	cmd.Stdin = strings.NewReader(input)

	if runner.config.Verbose {
		runner.t.Logf("Running: %s %s", runner.config.SellsyPath, strings.Join(args, " "))
	}

	err = cmd.Run()
	stdout = stdoutBuf.String()
	stderr = stderrBuf.String()

	if runner.config.Verbose && err != nil {
		runner.t.Logf("Command failed: %v\nStdout: %s\nStderr: %s", err, stdout, stderr)
	}

	return stdout, stderr, err
}

// AssertJSONOutput verifies command output is valid JSON
func AssertJSONOutput(t *testing.T, output string) {
	t.Helper()

	if !json.Valid([]byte(strings.TrimSpace(output))) {
		t.Errorf("Output is not valid JSON: %s", output)
	}
}

// AssertYAMLOutput verifies command output looks like YAML
func AssertYAMLOutput(t *testing.T, output string) {
	t.Helper()

	output = strings.TrimSpace(output)
	if strings.HasPrefix(output, "{") || !strings.Contains(output, ":") {
		t.Errorf("Output does not appear to be YAML: %s", output)
	}
}
