package customers

// Customer is a registered store customer as the REST API represents
// it.
type Customer struct {
	ID         int    `json:"id,omitempty"`
	GroupID    int    `json:"group_id,omitempty"`
	Email      string `json:"email"`
	Firstname  string `json:"firstname,omitempty"`
	Lastname   string `json:"lastname,omitempty"`
	Middlename string `json:"middlename,omitempty"`
	Prefix     string `json:"prefix,omitempty"`
	Suffix     string `json:"suffix,omitempty"`
	DOB        string `json:"dob,omitempty"`
	Taxvat     string `json:"taxvat,omitempty"`
	Gender     int    `json:"gender,omitempty"`

	StoreID   int `json:"store_id,omitempty"`
	WebsiteID int `json:"website_id,omitempty"`

	DefaultBilling  string `json:"default_billing,omitempty"`
	DefaultShipping string `json:"default_shipping,omitempty"`

	CreatedAt string `json:"created_at,omitempty"`
	UpdatedAt string `json:"updated_at,omitempty"`

	Addresses []Address `json:"addresses,omitempty"`
}

// Address is one customer address book entry.
type Address struct {
	ID         int      `json:"id,omitempty"`
	CustomerID int      `json:"customer_id,omitempty"`
	Firstname  string   `json:"firstname,omitempty"`
	Lastname   string   `json:"lastname,omitempty"`
	Company    string   `json:"company,omitempty"`
	Street     []string `json:"street,omitempty"`
	City       string   `json:"city,omitempty"`
	Region     *Region  `json:"region,omitempty"`
	Postcode   string   `json:"postcode,omitempty"`
	CountryID  string   `json:"country_id,omitempty"`
	Telephone  string   `json:"telephone,omitempty"`
	VatID      string   `json:"vat_id,omitempty"`

	DefaultBilling  bool `json:"default_billing,omitempty"`
	DefaultShipping bool `json:"default_shipping,omitempty"`
}

// Region is the structured region value inside an address.
type Region struct {
	RegionCode string `json:"region_code,omitempty"`
	Region     string `json:"region,omitempty"`
	RegionID   int    `json:"region_id,omitempty"`
}
