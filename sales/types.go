package sales

// Order statuses as the API reports them.
const (
	StatusPending       = "pending"
	StatusProcessing    = "processing"
	StatusComplete      = "complete"
	StatusCanceled      = "canceled"
	StatusClosed        = "closed"
	StatusFraud         = "fraud"
	StatusHolded        = "holded"
	StatusPaymentReview = "payment_review"
)

// Order is a sales order as the REST API represents it. Monetary
// fields arrive as JSON numbers.
type Order struct {
	EntityID    int    `json:"entity_id,omitempty"`
	IncrementID string `json:"increment_id,omitempty"`
	Status      string `json:"status,omitempty"`
	State       string `json:"state,omitempty"`

	CustomerID        int    `json:"customer_id,omitempty"`
	CustomerEmail     string `json:"customer_email,omitempty"`
	CustomerFirstname string `json:"customer_firstname,omitempty"`
	CustomerLastname  string `json:"customer_lastname,omitempty"`
	CustomerIsGuest   int    `json:"customer_is_guest,omitempty"`

	BaseCurrencyCode   string  `json:"base_currency_code,omitempty"`
	OrderCurrencyCode  string  `json:"order_currency_code,omitempty"`
	BaseGrandTotal     float64 `json:"base_grand_total,omitempty"`
	GrandTotal         float64 `json:"grand_total,omitempty"`
	BaseSubtotal       float64 `json:"base_subtotal,omitempty"`
	Subtotal           float64 `json:"subtotal,omitempty"`
	BaseTaxAmount      float64 `json:"base_tax_amount,omitempty"`
	TaxAmount          float64 `json:"tax_amount,omitempty"`
	BaseShippingAmount float64 `json:"base_shipping_amount,omitempty"`
	ShippingAmount     float64 `json:"shipping_amount,omitempty"`
	BaseDiscountAmount float64 `json:"base_discount_amount,omitempty"`
	DiscountAmount     float64 `json:"discount_amount,omitempty"`

	CreatedAt string `json:"created_at,omitempty"`
	UpdatedAt string `json:"updated_at,omitempty"`

	Items           []OrderItem    `json:"items,omitempty"`
	BillingAddress  *OrderAddress  `json:"billing_address,omitempty"`
	Payment         *OrderPayment  `json:"payment,omitempty"`
	StatusHistories []StatusEntry  `json:"status_histories,omitempty"`
	Extension       *OrderExtAttrs `json:"extension_attributes,omitempty"`

	ShippingDescription string `json:"shipping_description,omitempty"`
}

// OrderItem is one line of an order.
type OrderItem struct {
	ItemID      int     `json:"item_id,omitempty"`
	SKU         string  `json:"sku,omitempty"`
	Name        string  `json:"name,omitempty"`
	ProductID   int     `json:"product_id,omitempty"`
	ProductType string  `json:"product_type,omitempty"`
	QtyOrdered  float64 `json:"qty_ordered,omitempty"`
	Price       float64 `json:"price,omitempty"`
	RowTotal    float64 `json:"row_total,omitempty"`
}

// OrderAddress is a billing or shipping address on an order.
type OrderAddress struct {
	AddressType string   `json:"address_type,omitempty"`
	Firstname   string   `json:"firstname,omitempty"`
	Lastname    string   `json:"lastname,omitempty"`
	Company     string   `json:"company,omitempty"`
	Street      []string `json:"street,omitempty"`
	City        string   `json:"city,omitempty"`
	Region      string   `json:"region,omitempty"`
	RegionID    int      `json:"region_id,omitempty"`
	Postcode    string   `json:"postcode,omitempty"`
	CountryID   string   `json:"country_id,omitempty"`
	Telephone   string   `json:"telephone,omitempty"`
	Email       string   `json:"email,omitempty"`
}

// OrderPayment is the payment record attached to an order.
type OrderPayment struct {
	Method                string   `json:"method,omitempty"`
	AmountOrdered         float64  `json:"amount_ordered,omitempty"`
	AmountPaid            float64  `json:"amount_paid,omitempty"`
	AdditionalInformation []string `json:"additional_information,omitempty"`
}

// StatusEntry is one entry of an order's status history.
type StatusEntry struct {
	Comment            string `json:"comment,omitempty"`
	Status             string `json:"status,omitempty"`
	CreatedAt          string `json:"created_at,omitempty"`
	IsCustomerNotified int    `json:"is_customer_notified,omitempty"`
}

// OrderExtAttrs carries order extension attributes; only the shipping
// assignments are mapped.
type OrderExtAttrs struct {
	ShippingAssignments []ShippingAssignment `json:"shipping_assignments,omitempty"`
}

// ShippingAssignment links an order to its shipping address and method.
type ShippingAssignment struct {
	Shipping struct {
		Address *OrderAddress `json:"address,omitempty"`
		Method  string        `json:"method,omitempty"`
	} `json:"shipping"`
}

// ShippingAddress returns the first assigned shipping address, or nil.
func (o *Order) ShippingAddress() *OrderAddress {
	if o.Extension == nil || len(o.Extension.ShippingAssignments) == 0 {
		return nil
	}
	return o.Extension.ShippingAssignments[0].Shipping.Address
}
