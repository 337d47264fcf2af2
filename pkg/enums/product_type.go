package enums

import "fmt"

// ProductType classifies an agro-input product.
type ProductType string

const (
	ProductTypeFertilizer ProductType = "fertilizer"
	ProductTypePesticide  ProductType = "pesticide"
)

var validProductTypes = []ProductType{
	ProductTypeFertilizer,
	ProductTypePesticide,
}

// String implements fmt.Stringer.
func (t ProductType) String() string {
	return string(t)
}

// IsValid reports whether the value is a known ProductType.
func (t ProductType) IsValid() bool {
	for _, candidate := range validProductTypes {
		if candidate == t {
			return true
		}
	}
	return false
}

// ParseProductType converts raw input into a ProductType.
func ParseProductType(value string) (ProductType, error) {
	for _, candidate := range validProductTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid product type %q", value)
}
