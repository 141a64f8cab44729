package choropleth

// AssembleOptions configures assembly behavior.
type AssembleOptions struct {
	// ValidateCoordinates checks every point against geographic bounds
	// (lat ±90, lon ±180) during assembly. Disable for platform-shifted
	// longitude domains.
	ValidateCoordinates bool
}

// DefaultAssembleOptions returns default options.
func DefaultAssembleOptions() AssembleOptions {
	return AssembleOptions{
		ValidateCoordinates: true,
	}
}
