package catalog

// Product status values.
const (
	StatusEnabled  = 1
	StatusDisabled = 2
)

// Product visibility values.
const (
	VisibilityNotVisible    = 1
	VisibilityCatalog       = 2
	VisibilitySearch        = 3
	VisibilityCatalogSearch = 4
)

// Product type IDs.
const (
	TypeSimple       = "simple"
	TypeConfigurable = "configurable"
	TypeVirtual      = "virtual"
	TypeBundle       = "bundle"
	TypeDownloadable = "downloadable"
	TypeGrouped      = "grouped"
)

// Product is a catalog product as the REST API represents it.
type Product struct {
	ID             int     `json:"id,omitempty"`
	SKU            string  `json:"sku"`
	Name           string  `json:"name,omitempty"`
	AttributeSetID int     `json:"attribute_set_id,omitempty"`
	Price          float64 `json:"price,omitempty"`
	Status         int     `json:"status,omitempty"`
	Visibility     int     `json:"visibility,omitempty"`
	TypeID         string  `json:"type_id,omitempty"`
	Weight         float64 `json:"weight,omitempty"`
	CreatedAt      string  `json:"created_at,omitempty"`
	UpdatedAt      string  `json:"updated_at,omitempty"`

	ExtensionAttributes *ExtensionAttributes `json:"extension_attributes,omitempty"`
	MediaGalleryEntries []MediaEntry         `json:"media_gallery_entries,omitempty"`
	CustomAttributes    []CustomAttribute    `json:"custom_attributes,omitempty"`
}

// ExtensionAttributes carries the nested extension data the API
// attaches to products.
type ExtensionAttributes struct {
	StockItem     *StockItem     `json:"stock_item,omitempty"`
	CategoryLinks []CategoryLink `json:"category_links,omitempty"`
	WebsiteIDs    []int          `json:"website_ids,omitempty"`
}

// StockItem is the inventory record under extension_attributes.
type StockItem struct {
	ItemID               int     `json:"item_id,omitempty"`
	Qty                  float64 `json:"qty"`
	IsInStock            bool    `json:"is_in_stock"`
	ManageStock          bool    `json:"manage_stock,omitempty"`
	UseConfigManageStock bool    `json:"use_config_manage_stock,omitempty"`
	MinQty               float64 `json:"min_qty,omitempty"`
	MaxSaleQty           float64 `json:"max_sale_qty,omitempty"`
	Backorders           int     `json:"backorders,omitempty"`
	UseConfigBackorders  bool    `json:"use_config_backorders,omitempty"`
	NotifyStockQty       float64 `json:"notify_stock_qty,omitempty"`
	EnableQtyIncrements  bool    `json:"enable_qty_increments,omitempty"`
	QtyIncrements        float64 `json:"qty_increments,omitempty"`
}

// CategoryLink assigns a product to a category with a position.
type CategoryLink struct {
	CategoryID string `json:"category_id"`
	Position   int    `json:"position,omitempty"`
}

// MediaEntry is one image or video in the product gallery.
type MediaEntry struct {
	ID        int      `json:"id,omitempty"`
	MediaType string   `json:"media_type,omitempty"`
	Label     string   `json:"label,omitempty"`
	Position  int      `json:"position,omitempty"`
	Disabled  bool     `json:"disabled,omitempty"`
	Types     []string `json:"types,omitempty"`
	File      string   `json:"file,omitempty"`
}

// CustomAttribute is one EAV attribute value. Values arrive as strings,
// numbers, or arrays depending on the attribute, so the field is typed
// loosely.
type CustomAttribute struct {
	AttributeCode string `json:"attribute_code"`
	Value         any    `json:"value"`
}

// CustomAttribute returns the string value of the named attribute, or
// "" when absent or not a string.
func (p *Product) CustomAttribute(code string) string {
	for _, attr := range p.CustomAttributes {
		if attr.AttributeCode == code {
			if s, ok := attr.Value.(string); ok {
				return s
			}
			return ""
		}
	}
	return ""
}

// SetCustomAttribute sets or replaces the named attribute value.
func (p *Product) SetCustomAttribute(code string, value any) {
	for i, attr := range p.CustomAttributes {
		if attr.AttributeCode == code {
			p.CustomAttributes[i].Value = value
			return
		}
	}
	p.CustomAttributes = append(p.CustomAttributes, CustomAttribute{
		AttributeCode: code,
		Value:         value,
	})
}

// URLKey returns the product's url_key custom attribute.
func (p *Product) URLKey() string {
	return p.CustomAttribute("url_key")
}
