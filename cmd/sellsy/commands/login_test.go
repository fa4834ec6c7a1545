package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/fivetwenty-io/sellsy-client/internal/constants"
)

func TestPromptCredentials(t *testing.T) {
	t.Parallel()

	t.Run("prompts for every missing credential", func(t *testing.T) {
		t.Parallel()

		var prompts bytes.Buffer

		config := &Config{}
		err := promptCredentials(config, newPrompter(strings.NewReader("ck\n cs \nat\nats"), &prompts))
		require.NoError(t, err)

		assert.Equal(t, "ck", config.ConsumerKey)
		assert.Equal(t, "cs", config.ConsumerSecret)
		assert.Equal(t, "at", config.AccessToken)
		assert.Equal(t, "ats", config.AccessTokenSecret)
		assert.Equal(t, "Consumer key: Consumer secret: Access token: Access token secret: ", prompts.String())
	})

	t.Run("keeps configured values", func(t *testing.T) {
		t.Parallel()

		var prompts bytes.Buffer

		config := &Config{ConsumerKey: "ck", AccessToken: "at"}
		err := promptCredentials(config, newPrompter(strings.NewReader("cs\nats\n"), &prompts))
		require.NoError(t, err)

		assert.Equal(t, &Config{ConsumerKey: "ck", ConsumerSecret: "cs", AccessToken: "at", AccessTokenSecret: "ats"}, config)
		assert.NotContains(t, prompts.String(), "Consumer key")
	})

	t.Run("empty answer", func(t *testing.T) {
		t.Parallel()

		err := promptCredentials(&Config{}, newPrompter(strings.NewReader("ck\n\n"), &bytes.Buffer{}))
		require.ErrorIs(t, err, constants.ErrMissingCredential)
		assert.Contains(t, err.Error(), keyConsumerSecret)
	})

	t.Run("input ends early", func(t *testing.T) {
		t.Parallel()

		err := promptCredentials(&Config{}, newPrompter(strings.NewReader("ck\n"), &bytes.Buffer{}))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "consumer secret")
	})
}

func TestLoginCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")

	useViper(t, map[string]any{keyAPIURL: "https://apifeed.sellsy.com/0/"})
	viper.SetConfigFile(path)

	var out, prompts bytes.Buffer

	cmd := NewLoginCommand()
	cmd.SetArgs([]string{"--consumer-key", "ck", "--access-token", "at"})
	cmd.SetIn(strings.NewReader("cs\nats\n"))
	cmd.SetOut(&out)
	cmd.SetErr(&prompts)
	require.NoError(t, cmd.Execute())

	assert.Equal(t, "Consumer secret: Access token secret: ", prompts.String())
	assert.Contains(t, out.String(), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var saved Config
	require.NoError(t, yaml.Unmarshal(data, &saved))
	assert.Equal(t, "https://apifeed.sellsy.com/0/", saved.APIURL)
	assert.Equal(t, "ck", saved.ConsumerKey)
	assert.Equal(t, "cs", saved.ConsumerSecret)
	assert.Equal(t, "at", saved.AccessToken)
	assert.Equal(t, "ats", saved.AccessTokenSecret)
}

func TestLoginCommand_Verify(t *testing.T) {
	t.Run("accepted credentials are saved", func(t *testing.T) {
		server, calls := newFakeAPI(t, `{"status":"success","response":{"corp":"ACME"}}`)
		path := filepath.Join(t.TempDir(), "config.yml")

		useViper(t, map[string]any{keyAPIURL: server.URL})
		viper.SetConfigFile(path)

		cmd := NewLoginCommand()
		cmd.SetArgs([]string{"--verify"})
		cmd.SetIn(strings.NewReader("ck\ncs\nat\nats\n"))
		cmd.SetOut(&bytes.Buffer{})
		cmd.SetErr(&bytes.Buffer{})
		require.NoError(t, cmd.Execute())

		assert.Equal(t, `{"method":"Infos.getInfos","params":[]}`, <-calls)

		_, err := os.Stat(path)
		require.NoError(t, err)
	})

	t.Run("rejected credentials are not saved", func(t *testing.T) {
		server, _ := newFakeAPI(t, `oauth_problem=consumer_key_unknown`)
		path := filepath.Join(t.TempDir(), "config.yml")

		useViper(t, map[string]any{keyAPIURL: server.URL})
		viper.SetConfigFile(path)

		cmd := NewLoginCommand()
		cmd.SetArgs([]string{"--verify"})
		cmd.SetIn(strings.NewReader("ck\ncs\nat\nats\n"))
		cmd.SetOut(&bytes.Buffer{})
		cmd.SetErr(&bytes.Buffer{})

		err := cmd.Execute()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "credentials rejected")

		_, err = os.Stat(path)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}
