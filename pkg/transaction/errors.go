package transaction

import "fmt"

// UnsupportedVersionError is returned for a header version outside [1, 5],
// an overwintered flag that disagrees with the version, or a description
// decoded against a version that does not carry it.
type UnsupportedVersionError struct {
	Version uint32
	Field   string // description or field involved, if any
}

func (e *UnsupportedVersionError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("unsupported transaction version %d for %s", e.Version, e.Field)
	}
	return fmt.Sprintf("unsupported transaction version %d", e.Version)
}

// LayoutError is returned by Encode when a field holds a value the
// version's wire layout cannot represent.
type LayoutError struct {
	Version uint32
	Field   string
	Message string
}

func (e *LayoutError) Error() string {
	return fmt.Sprintf("cannot encode v%d transaction: %s: %s", e.Version, e.Field, e.Message)
}
