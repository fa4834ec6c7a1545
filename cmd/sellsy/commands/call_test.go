package commands

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/sellsy-client/internal/constants"
	"github.com/fivetwenty-io/sellsy-client/pkg/sellsy"
)

// newFakeAPI serves body for every call and reports the do_in field received.
func newFakeAPI(t *testing.T, body string) (*httptest.Server, <-chan string) {
	t.Helper()

	calls := make(chan string, 10)

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.True(t, strings.HasPrefix(request.Header.Get("Authorization"), "OAuth "))
		assert.Equal(t, constants.EnvelopeIOMode, request.FormValue(constants.FieldIOMode))

		calls <- request.FormValue(constants.FieldDoIn)

		_, _ = writer.Write([]byte(body))
	}))
	t.Cleanup(server.Close)

	return server, calls
}

func useAPI(t *testing.T, apiURL string, extra map[string]any) {
	t.Helper()

	values := map[string]any{
		keyAPIURL:            apiURL,
		keyConsumerKey:       "ck",
		keyConsumerSecret:    "cs",
		keyAccessToken:       "at",
		keyAccessTokenSecret: "ats",
		keyOutput:            constants.FormatJSON,
	}

	for key, value := range extra {
		values[key] = value
	}

	useViper(t, values)
}

func execute(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer

	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})

	err := cmd.Execute()

	return out.String(), err
}

func TestCallCommand(t *testing.T) {
	server, calls := newFakeAPI(t, `{"status":"success","response":{"id":42,"name":"ACME"}}`)
	useAPI(t, server.URL, nil)

	output, err := execute(t, NewCallCommand(), "Client.getOne", "--param", "clientid=42", "-p", "type=corporation")
	require.NoError(t, err)

	assert.JSONEq(t, `{"method":"Client.getOne","params":{"clientid":42,"type":"corporation"}}`, <-calls)
	assert.JSONEq(t, `{"status":"success","response":{"id":42,"name":"ACME"}}`, output)
}

func TestCallCommand_WithoutParams(t *testing.T) {
	server, calls := newFakeAPI(t, `{"status":"success","response":[]}`)
	useAPI(t, server.URL, nil)

	_, err := execute(t, NewCallCommand(), "Accountdatas.getTaxes")
	require.NoError(t, err)

	assert.Equal(t, `{"method":"Accountdatas.getTaxes","params":[]}`, <-calls)
}

func TestCallCommand_ServiceError(t *testing.T) {
	server, _ := newFakeAPI(t, `{"status":"error","error":{"message":"Bad thing","code":"E42"}}`)
	useAPI(t, server.URL, nil)

	output, err := execute(t, NewCallCommand(), "Client.getOne")
	require.Error(t, err)
	assert.True(t, sellsy.IsServiceError(err))
	assert.Contains(t, err.Error(), "Bad thing")
	assert.Empty(t, output)
}

func TestCallCommand_OAuthProblem(t *testing.T) {
	server, _ := newFakeAPI(t, `oauth_problem=token_rejected`)
	useAPI(t, server.URL, nil)

	_, err := execute(t, NewCallCommand(), "Client.getOne")
	require.Error(t, err)
	assert.True(t, sellsy.IsRequestFailure(err))
	assert.Contains(t, err.Error(), "oauth_problem=token_rejected")
}

func TestCallCommand_ConflictingParams(t *testing.T) {
	useAPI(t, "http://127.0.0.1:1/", nil)

	_, err := execute(t, NewCallCommand(), "Client.getOne", "--params-json", "{}", "--params-file", "params.yaml")
	require.ErrorIs(t, err, constants.ErrConflictingParamArgs)
}

func TestCallCommand_MissingCredentials(t *testing.T) {
	useViper(t, map[string]any{keyAPIURL: "http://127.0.0.1:1/", keyConsumerKey: "ck"})

	_, err := execute(t, NewCallCommand(), "Client.getOne")
	require.ErrorIs(t, err, constants.ErrMissingCredential)
	assert.Contains(t, err.Error(), "SELLSY_CONSUMER_SECRET")
}

func TestCallCommand_InvalidHTTPTimeout(t *testing.T) {
	useAPI(t, "http://127.0.0.1:1/", map[string]any{keyHTTPTimeout: "soon"})

	_, err := execute(t, NewCallCommand(), "Client.getOne")
	require.ErrorIs(t, err, constants.ErrInvalidHTTPTimeout)
}

func TestCallCommand_UnreachableAuditServer(t *testing.T) {
	useAPI(t, "http://127.0.0.1:1/", map[string]any{keyAuditNATSURL: "nats://127.0.0.1:1"})

	_, err := execute(t, NewCallCommand(), "Client.getOne")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to connect to audit server")
}

func TestCallCommand_MetricsFile(t *testing.T) {
	server, _ := newFakeAPI(t, `{"status":"success","response":{}}`)
	metricsFile := filepath.Join(t.TempDir(), "sellsy.prom")
	useAPI(t, server.URL, map[string]any{keyMetricsFile: metricsFile})

	_, err := execute(t, NewCallCommand(), "Client.getOne")
	require.NoError(t, err)

	data, err := os.ReadFile(metricsFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), `sellsy_client_calls_total{method="Client.getOne",outcome="success"} 1`)
	assert.Contains(t, string(data), "sellsy_client_call_duration_seconds_count")
}

func TestCallCommand_VerboseLogsWithoutSecrets(t *testing.T) {
	server, _ := newFakeAPI(t, `{"status":"success","response":{}}`)
	useAPI(t, server.URL, map[string]any{keyVerbose: true, keyNoColor: true})

	var logs bytes.Buffer

	cmd := NewCallCommand()
	cmd.SetArgs([]string{"Client.getOne"})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&logs)
	require.NoError(t, cmd.Execute())

	assert.Contains(t, logs.String(), "API Request")
	assert.Contains(t, logs.String(), "HTTP Response")
	assert.NotContains(t, logs.String(), "oauth_signature")
	assert.NotContains(t, logs.String(), "cs&ats")
}

func TestCollectionCommand(t *testing.T) {
	server, calls := newFakeAPI(t, `{"status":"success","response":{"infos":{"nbtotal":"0"}}}`)
	useAPI(t, server.URL, nil)

	_, err := execute(t, NewCollectionCommand(), "client", "getList", "--params-json", `{"pagination":{"nbperpage":10}}`)
	require.NoError(t, err)

	assert.Equal(t, `{"method":"Client.getList","params":{"pagination":{"nbperpage":10}}}`, <-calls)
}

func TestCollectionCommand_UnknownResource(t *testing.T) {
	server, calls := newFakeAPI(t, `{"status":"success"}`)
	useAPI(t, server.URL, nil)

	_, err := execute(t, NewCollectionCommand(), "Invoices", "getList")
	require.ErrorIs(t, err, sellsy.ErrUnknownResource)
	assert.Empty(t, calls)
}

func TestInfosCommand(t *testing.T) {
	server, calls := newFakeAPI(t, `{"status":"success","response":{"consumerdatas":{"id":1},"corp":"ACME"}}`)
	useAPI(t, server.URL, map[string]any{keyOutput: constants.FormatTable})

	output, err := execute(t, NewInfosCommand())
	require.NoError(t, err)

	assert.Equal(t, `{"method":"Infos.getInfos","params":[]}`, <-calls)
	assert.Contains(t, output, "consumerdatas")
	assert.Contains(t, output, "ACME")
}

func TestResourcesCommand(t *testing.T) {
	useViper(t, map[string]any{keyOutput: constants.FormatJSON})

	output, err := execute(t, NewResourcesCommand())
	require.NoError(t, err)

	assert.JSONEq(t, `["Accountdatas","AccountPrefs","Purchase","Agenda","Annotations","Catalogue",
		"CustomFields","Client","Staffs","Peoples","Document","Mails","Event","Expense","Opportunities",
		"Prospects","SmartTags","Stat","Stock","Support","Timetracking","BankAccount","Addresses"]`, output)
}

func TestVersionCommand(t *testing.T) {
	useViper(t, map[string]any{keyOutput: constants.FormatJSON})

	output, err := execute(t, NewVersionCommand("1.0.0", "abc123", "2026-01-01"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"version":"1.0.0","commit":"abc123","built":"2026-01-01"}`, output)
}
