package aktiva

// WindowSpec configures date-window pagination for a resource.
type WindowSpec struct {
	IntervalDays int
	// DateType selects which vendor date the window filters on:
	// 0 = document date, 1 = last-changed date.
	DateType int
}

// IncrementalSpec declares how a resource's cursor is tracked between runs:
// the response field whose greatest observed value gets persisted, and the
// request parameter the resumed start date feeds back into. The initial
// cursor value is the run's overall start date in compact form.
type IncrementalSpec struct {
	StartParam  string
	CursorField string
}

// Resource describes one vendor endpoint.
type Resource struct {
	Name       string
	Path       string
	PrimaryKey []string
	// Params are fixed request parameters sent with every page.
	Params map[string]any
	// Window is nil for master data endpoints, which return everything in
	// one page.
	Window      *WindowSpec
	Incremental *IncrementalSpec
}

func (r Resource) Windowed() bool {
	return r.Window != nil
}

var monthlyChangedWindow = &WindowSpec{IntervalDays: 30, DateType: 1}
var changedDateCursor = &IncrementalSpec{StartParam: "PeriodStart", CursorField: "ChangedDate"}

// Resources is the full extraction catalogue. Master data endpoints are
// fetched in a single page; transactional endpoints are windowed on their
// change date and resume from a stored cursor.
var Resources = []Resource{
	{Name: "accounts", Path: "v1/getaccounts", PrimaryKey: []string{"AccountId"}},
	{Name: "departments", Path: "v1/getdepartments", PrimaryKey: []string{"Code"}},
	{Name: "items", Path: "v1/getitems", PrimaryKey: []string{"ItemId"}},
	{Name: "item_groups", Path: "v2/getitemgroups"},
	{Name: "banks", Path: "v1/getbanks", PrimaryKey: []string{"BankId"}},
	{Name: "units", Path: "v1/getunits", PrimaryKey: []string{"Code"}},
	{Name: "dimensions", Path: "v2/getdimensions", PrimaryKey: []string{"Code"}},
	{Name: "costcenters", Path: "v1/getcostcenters", PrimaryKey: []string{"Code"}},
	{Name: "projects", Path: "v1/getprojects", PrimaryKey: []string{"Code"}},
	{Name: "vendors", Path: "v1/getvendors", PrimaryKey: []string{"VendorId"}},
	{Name: "fixed_assets", Path: "v2/getfixassets", PrimaryKey: []string{"FAId"}},
	{Name: "fixed_asset_locations", Path: "v2/getfalocations"},
	{Name: "locations", Path: "v2/getlocations", PrimaryKey: []string{"LocationId"}},
	{Name: "customers", Path: "v1/getcustomers", PrimaryKey: []string{"CustomerId"}},
	{
		Name: "payment_types",
		Path: "v2/getpaymenttypes",
		// this endpoint responds with HTTP 500 when no params are provided
		Params: map[string]any{"param": ""},
	},
	{Name: "taxes", Path: "v1/gettaxes"},
	{
		Name:        "purchase_invoices",
		Path:        "v2/getpurchorders",
		PrimaryKey:  []string{"PIHId"},
		Window:      monthlyChangedWindow,
		Incremental: changedDateCursor,
	},
	{
		Name:        "sales_invoices",
		Path:        "v2/getinvoices",
		PrimaryKey:  []string{"SIHId"},
		Window:      monthlyChangedWindow,
		Incremental: changedDateCursor,
	},
	{
		Name:        "gl_batches",
		Path:        "v1/GetGLBatchesFull",
		PrimaryKey:  []string{"GLBId"},
		Params:      map[string]any{"WithLines": 1},
		Window:      monthlyChangedWindow,
		Incremental: changedDateCursor,
	},
	{
		Name:        "payments",
		Path:        "v2/getpayments",
		PrimaryKey:  []string{"PHId"},
		Window:      monthlyChangedWindow,
		Incremental: changedDateCursor,
	},
}

// ResourceByName looks a resource up in the catalogue; the second return
// reports whether it exists.
func ResourceByName(name string) (Resource, bool) {
	for _, r := range Resources {
		if r.Name == name {
			return r, true
		}
	}
	return Resource{}, false
}
