package domain

// DocumentKind identifies one of the five document types managed by the
// lifecycle engine.
type DocumentKind string

const (
	KindSalesOrder      DocumentKind = "sales_order"
	KindPurchaseOrder   DocumentKind = "purchase_order"
	KindSalesInvoice    DocumentKind = "sales_invoice"
	KindPurchaseInvoice DocumentKind = "purchase_invoice"
	KindQuotation       DocumentKind = "quotation"
)

// KindSpec describes how one document kind is persisted and which status
// transitions are legal. Both the legality check and the side-effect dispatch
// in the lifecycle engine key off this table, so it is the single source of
// truth for the per-kind state machines.
type KindSpec struct {
	Kind          DocumentKind
	Collection    string // document store collection name
	Prefix        string // number prefix, e.g. SO in SO-2026-000001
	NumberField   string // record key carrying the document number
	PartyIDField  string // customer_id or vendor_id
	PartyName     string // customer_name or vendor_name
	PartyStore    string // customers or vendors
	InitialStatus Status
	Transitions   map[Status][]Status
}

var kindSpecs = map[DocumentKind]KindSpec{
	KindSalesOrder: {
		Kind:          KindSalesOrder,
		Collection:    "sales_orders",
		Prefix:        "SO",
		NumberField:   "order_number",
		PartyIDField:  "customer_id",
		PartyName:     "customer_name",
		PartyStore:    "customers",
		InitialStatus: StatusDraft,
		Transitions: map[Status][]Status{
			StatusDraft:      {StatusConfirmed, StatusCancelled},
			StatusConfirmed:  {StatusProcessing, StatusCancelled},
			StatusProcessing: {StatusShipped, StatusCancelled},
			StatusShipped:    {StatusDelivered, StatusCancelled},
			StatusDelivered:  {},
			StatusCancelled:  {},
		},
	},
	KindPurchaseOrder: {
		Kind:          KindPurchaseOrder,
		Collection:    "purchase_orders",
		Prefix:        "PO",
		NumberField:   "order_number",
		PartyIDField:  "vendor_id",
		PartyName:     "vendor_name",
		PartyStore:    "vendors",
		InitialStatus: StatusDraft,
		Transitions: map[Status][]Status{
			StatusDraft:      {StatusConfirmed, StatusCancelled},
			StatusConfirmed:  {StatusProcessing, StatusCancelled},
			StatusProcessing: {StatusReceived, StatusCancelled},
			StatusReceived:   {},
			StatusCancelled:  {},
		},
	},
	KindSalesInvoice: {
		Kind:          KindSalesInvoice,
		Collection:    "sales_invoices",
		Prefix:        "INV",
		NumberField:   "invoice_number",
		PartyIDField:  "customer_id",
		PartyName:     "customer_name",
		PartyStore:    "customers",
		InitialStatus: StatusDraft,
		Transitions: map[Status][]Status{
			StatusDraft:     {StatusPending, StatusCancelled},
			StatusPending:   {StatusPaid, StatusOverdue, StatusCancelled},
			StatusOverdue:   {StatusPaid, StatusCancelled},
			StatusPaid:      {},
			StatusCancelled: {},
		},
	},
	KindPurchaseInvoice: {
		Kind:          KindPurchaseInvoice,
		Collection:    "purchase_invoices",
		Prefix:        "PINV",
		NumberField:   "invoice_number",
		PartyIDField:  "vendor_id",
		PartyName:     "vendor_name",
		PartyStore:    "vendors",
		InitialStatus: StatusPending,
		Transitions: map[Status][]Status{
			StatusPending:   {StatusPaid, StatusOverdue, StatusCancelled},
			StatusOverdue:   {StatusPaid, StatusCancelled},
			StatusPaid:      {},
			StatusCancelled: {},
		},
	},
	KindQuotation: {
		Kind:          KindQuotation,
		Collection:    "quotations",
		Prefix:        "QT",
		NumberField:   "quotation_number",
		PartyIDField:  "customer_id",
		PartyName:     "customer_name",
		PartyStore:    "customers",
		InitialStatus: StatusDraft,
		Transitions: map[Status][]Status{
			StatusDraft:     {StatusSent, StatusCancelled},
			StatusSent:      {StatusAccepted, StatusRejected, StatusExpired},
			StatusAccepted:  {},
			StatusRejected:  {},
			StatusExpired:   {},
			StatusCancelled: {},
		},
	},
}

// SpecFor returns the KindSpec for the given kind.
func SpecFor(kind DocumentKind) (KindSpec, bool) {
	spec, ok := kindSpecs[kind]
	return spec, ok
}

// AllKinds lists every registered document kind, in a stable order.
func AllKinds() []DocumentKind {
	return []DocumentKind{
		KindSalesOrder,
		KindPurchaseOrder,
		KindSalesInvoice,
		KindPurchaseInvoice,
		KindQuotation,
	}
}

// CanTransition reports whether from -> to is an edge in the kind's table.
func (ks KindSpec) CanTransition(from, to Status) bool {
	for _, next := range ks.Transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// IsKnownStatus reports whether s appears anywhere in the kind's table.
func (ks KindSpec) IsKnownStatus(s Status) bool {
	if _, ok := ks.Transitions[s]; ok {
		return true
	}
	for _, nexts := range ks.Transitions {
		for _, next := range nexts {
			if next == s {
				return true
			}
		}
	}
	return false
}

// NumberSource names where existing numbers for a prefix live, so the
// sequence generator can seed a counter from pre-counter data.
type NumberSource struct {
	Collection  string
	NumberField string
}

// NumberSources maps every number prefix (document kinds plus journal
// entries) to its backing collection and field.
func NumberSources() map[string]NumberSource {
	sources := map[string]NumberSource{
		JournalEntryPrefix: {Collection: JournalEntryCollection, NumberField: "entry_number"},
	}
	for _, spec := range kindSpecs {
		sources[spec.Prefix] = NumberSource{Collection: spec.Collection, NumberField: spec.NumberField}
	}
	return sources
}
