package sellsy_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/sellsy-client/pkg/sellsy"
)

type fakeCaller struct {
	method string
	params any
}

func (f *fakeCaller) Call(_ context.Context, method string, params any) (*sellsy.Answer, error) {
	f.method = method
	f.params = params

	return sellsy.ParseAnswer([]byte(`{"status":"success"}`))
}

func TestResources(t *testing.T) {
	t.Parallel()

	resources := sellsy.Resources()
	require.Len(t, resources, 23)

	names := make([]string, 0, len(resources))
	for _, resource := range resources {
		assert.True(t, resource.Valid())
		names = append(names, resource.String())
	}

	assert.Equal(t, []string{
		"Accountdatas", "AccountPrefs", "Purchase", "Agenda", "Annotations",
		"Catalogue", "CustomFields", "Client", "Staffs", "Peoples", "Document",
		"Mails", "Event", "Expense", "Opportunities", "Prospects", "SmartTags",
		"Stat", "Stock", "Support", "Timetracking", "BankAccount", "Addresses",
	}, names)
}

func TestResource_Invalid(t *testing.T) {
	t.Parallel()

	assert.False(t, sellsy.Resource(-1).Valid())
	assert.False(t, sellsy.Resource(23).Valid())
	assert.Equal(t, "Resource(42)", sellsy.Resource(42).String())
}

func TestParseResource(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected sellsy.Resource
		wantErr  bool
	}{
		{name: "exact", input: "Client", expected: sellsy.ResourceClient},
		{name: "lower case", input: "timetracking", expected: sellsy.ResourceTimeTracking},
		{name: "upper case", input: "ACCOUNTDATAS", expected: sellsy.ResourceAccountData},
		{name: "unknown", input: "Invoices", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			resource, err := sellsy.ParseResource(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, sellsy.ErrUnknownResource)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expected, resource)
		})
	}
}

func TestCollection_Call(t *testing.T) {
	t.Parallel()

	caller := &fakeCaller{}
	collection := sellsy.NewCollection(caller, sellsy.ResourceDocument)

	assert.Equal(t, sellsy.ResourceDocument, collection.Resource())
	assert.Equal(t, "Document.getList", collection.MethodName("getList"))

	params := sellsy.NewParams().Set("doctype", "invoice")

	answer, err := collection.Call(context.Background(), "getList", params)
	require.NoError(t, err)
	assert.Equal(t, "success", answer.Status)
	assert.Equal(t, "Document.getList", caller.method)
	assert.Same(t, params, caller.params)
}

func TestNewCollections(t *testing.T) {
	t.Parallel()

	caller := &fakeCaller{}
	collections := sellsy.NewCollections(caller)

	require.Len(t, collections, len(sellsy.Resources()))

	for resource, collection := range collections {
		assert.Equal(t, resource, collection.Resource())
	}

	_, err := collections[sellsy.ResourceStock].Call(context.Background(), "getForItem", nil)
	require.NoError(t, err)
	assert.Equal(t, "Stock.getForItem", caller.method)
}
