package models

type Supplier struct {
	ID            ID      `json:"id,omitempty"`
	Name          string  `json:"name"`
	ContactPerson *string `json:"contactPerson,omitempty"`
	Email         *string `json:"email,omitempty"`
	Phone         *string `json:"phone,omitempty"`
}

// NoSupplier is the placeholder label for products without a resolvable
// supplier.
func NoSupplier() Supplier {
	return Supplier{Name: "No Supplier"}
}
