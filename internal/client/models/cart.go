// Package models defines client-side data models used by the storefront CLI:
// products, cart line items and the opaque user record.
package models

// Product is the part of a catalog product the cart needs to display and
// price a line.
type Product struct {
	// ID is the catalog identifier; guest-mode lines are matched on it.
	ID ID `json:"id"`

	// Name is the display name.
	Name string `json:"name,omitempty"`

	// Price is the unit price. A missing price decodes as zero.
	Price float64 `json:"price"`

	// Image is an optional picture URL or file name.
	Image string `json:"image,omitempty"`
}

// LineItem is one entry of a cart. The JSON shape is the one the backend
// returns from GET /cart and the one stored in the guest snapshot.
type LineItem struct {
	// ID is server-assigned for authenticated carts and generated locally
	// for guest carts.
	ID ID `json:"id"`

	Product Product `json:"product"`

	// Quantity is always >= 1 for a line present in a cart.
	Quantity int `json:"quantity"`
}

// Amount returns price × quantity; non-positive quantities count as zero.
func (l LineItem) Amount() float64 {
	if l.Quantity <= 0 {
		return 0
	}
	return l.Product.Price * float64(l.Quantity)
}

// CloneLines returns a copy of lines that the caller may modify freely.
// A nil input yields an empty, non-nil slice.
func CloneLines(lines []LineItem) []LineItem {
	out := make([]LineItem, len(lines))
	copy(out, lines)
	return out
}
