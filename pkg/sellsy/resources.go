package sellsy

import (
	"context"
	"fmt"
	"strings"
)

// Resource identifies a Sellsy business object whose methods are exposed by
// the API as "<Resource>.<method>".
type Resource int

// Sellsy resources.
const (
	ResourceAccountData Resource = iota
	ResourceAccountPrefs
	ResourcePurchase
	ResourceAgenda
	ResourceAnnotations
	ResourceCatalogue
	ResourceCustomFields
	ResourceClient
	ResourceStaffs
	ResourcePeoples
	ResourceDocument
	ResourceMails
	ResourceEvent
	ResourceExpense
	ResourceOpportunities
	ResourceProspects
	ResourceSmartTags
	ResourceStat
	ResourceStock
	ResourceSupport
	ResourceTimeTracking
	ResourceBankAccount
	ResourceAddresses

	resourceCount
)

// resourceNames maps each resource to its wire name.
var resourceNames = [resourceCount]string{
	ResourceAccountData:   "Accountdatas",
	ResourceAccountPrefs:  "AccountPrefs",
	ResourcePurchase:      "Purchase",
	ResourceAgenda:        "Agenda",
	ResourceAnnotations:   "Annotations",
	ResourceCatalogue:     "Catalogue",
	ResourceCustomFields:  "CustomFields",
	ResourceClient:        "Client",
	ResourceStaffs:        "Staffs",
	ResourcePeoples:       "Peoples",
	ResourceDocument:      "Document",
	ResourceMails:         "Mails",
	ResourceEvent:         "Event",
	ResourceExpense:       "Expense",
	ResourceOpportunities: "Opportunities",
	ResourceProspects:     "Prospects",
	ResourceSmartTags:     "SmartTags",
	ResourceStat:          "Stat",
	ResourceStock:         "Stock",
	ResourceSupport:       "Support",
	ResourceTimeTracking:  "Timetracking",
	ResourceBankAccount:   "BankAccount",
	ResourceAddresses:     "Addresses",
}

// String returns the wire name of the resource.
func (r Resource) String() string {
	if !r.Valid() {
		return fmt.Sprintf("Resource(%d)", int(r))
	}

	return resourceNames[r]
}

// Valid reports whether r is a known resource.
func (r Resource) Valid() bool {
	return r >= 0 && r < resourceCount
}

// Resources returns every known resource in declaration order.
func Resources() []Resource {
	all := make([]Resource, 0, resourceCount)
	for r := range resourceCount {
		all = append(all, r)
	}

	return all
}

// ParseResource returns the resource with the given wire name, ignoring case.
func ParseResource(name string) (Resource, error) {
	for r, wire := range resourceNames {
		if strings.EqualFold(wire, name) {
			return Resource(r), nil
		}
	}

	return 0, fmt.Errorf("%w: %s", ErrUnknownResource, name)
}

// Caller performs a single API call.
type Caller interface {
	Call(ctx context.Context, method string, params any) (*Answer, error)
}

// Collection is a handle on one resource's remote methods.
type Collection struct {
	caller   Caller
	resource Resource
}

// NewCollection binds resource to caller.
func NewCollection(caller Caller, resource Resource) *Collection {
	return &Collection{caller: caller, resource: resource}
}

// Resource returns the bound resource.
func (c *Collection) Resource() Resource {
	return c.resource
}

// MethodName returns the fully qualified name of method, e.g. "Client.getList".
func (c *Collection) MethodName(method string) string {
	return c.resource.String() + "." + method
}

// Call invokes method on the bound resource.
func (c *Collection) Call(ctx context.Context, method string, params any) (*Answer, error) {
	return c.caller.Call(ctx, c.MethodName(method), params)
}

// NewCollections builds one collection per known resource, all bound to caller.
func NewCollections(caller Caller) map[Resource]*Collection {
	collections := make(map[Resource]*Collection, resourceCount)
	for _, r := range Resources() {
		collections[r] = NewCollection(caller, r)
	}

	return collections
}
