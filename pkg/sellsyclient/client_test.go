package sellsyclient_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/sellsy-client/pkg/sellsy"
	"github.com/fivetwenty-io/sellsy-client/pkg/sellsyclient"
)

func TestNew(t *testing.T) {
	t.Parallel()
	t.Run("requires config", func(t *testing.T) {
		t.Parallel()

		_, err := sellsyclient.New(nil)
		require.ErrorIs(t, err, sellsy.ErrConfigRequired)
	})

	t.Run("defaults the API URL", func(t *testing.T) {
		t.Parallel()

		config := &sellsy.Config{}

		client, err := sellsyclient.New(config)
		require.NoError(t, err)
		assert.Equal(t, "https://apifeed.sellsy.com/0/", client.APIURL())
		assert.Empty(t, config.APIURL)
	})

	t.Run("trims the API URL", func(t *testing.T) {
		t.Parallel()

		client, err := sellsyclient.New(&sellsy.Config{APIURL: " http://localhost:8080/0/ "})
		require.NoError(t, err)
		assert.Equal(t, "http://localhost:8080/0/", client.APIURL())
	})

	t.Run("rejects negative timeout", func(t *testing.T) {
		t.Parallel()

		_, err := sellsyclient.New(&sellsy.Config{HTTPTimeout: -time.Second})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "http timeout")
	})
}

func TestNewWithCredentials(t *testing.T) {
	t.Parallel()

	client, err := sellsyclient.NewWithCredentials("https://apifeed.sellsy.com/0/", "ck", "cs", "at", "ats")
	require.NoError(t, err)
	assert.Equal(t, sellsy.NewCredentials("ck", "cs", "at", "ats"), client.Credentials())
}

func TestNewFromEnv(t *testing.T) {
	t.Setenv("SELLSY_API_URL", "http://localhost:9999/0/")
	t.Setenv("SELLSY_CONSUMER_KEY", "ck")
	t.Setenv("SELLSY_CONSUMER_SECRET", "cs")
	t.Setenv("SELLSY_ACCESS_TOKEN", "at")
	t.Setenv("SELLSY_ACCESS_TOKEN_SECRET", "ats")

	client, err := sellsyclient.NewFromEnv()
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:9999/0/", client.APIURL())
	assert.Equal(t, sellsy.NewCredentials("ck", "cs", "at", "ats"), client.Credentials())
}

func TestNewFromEnv_InvalidTimeout(t *testing.T) {
	t.Setenv("SELLSY_HTTP_TIMEOUT", "soon")

	_, err := sellsyclient.NewFromEnv()
	require.Error(t, err)
}

func TestClient_EndToEnd(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		switch request.FormValue("do_in") {
		case `{"method":"Client.getOne","params":{"clientid":7}}`:
			_, _ = writer.Write([]byte(`{"status":"success","response":{"client":{"id":"7"}}}`))
		default:
			_, _ = writer.Write([]byte(`{"status":"error","error":{"message":"unexpected call"}}`))
		}
	}))
	defer server.Close()

	client, err := sellsyclient.NewWithCredentials(server.URL, "ck", "cs", "at", "ats")
	require.NoError(t, err)

	params := sellsy.NewParams().Set("clientid", 7)

	answer, err := client.Collection(sellsy.ResourceClient).Call(context.Background(), "getOne", params)
	require.NoError(t, err)
	assert.Same(t, answer, client.LastAnswer())

	_, err = client.Call(context.Background(), "Client.getList", nil)
	require.Error(t, err)
	assert.True(t, sellsy.IsServiceError(err))
	assert.Equal(t, "unexpected call", err.Error())
}
