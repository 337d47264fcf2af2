package enums

import "fmt"

// CropStatus gates whether new sales may be recorded against a crop.
type CropStatus string

const (
	CropStatusAvailable   CropStatus = "available"
	CropStatusUnavailable CropStatus = "unavailable"
)

var validCropStatuses = []CropStatus{
	CropStatusAvailable,
	CropStatusUnavailable,
}

// String implements fmt.Stringer.
func (s CropStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known CropStatus.
func (s CropStatus) IsValid() bool {
	for _, candidate := range validCropStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseCropStatus converts raw input into a CropStatus.
func ParseCropStatus(value string) (CropStatus, error) {
	for _, candidate := range validCropStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid crop status %q", value)
}
