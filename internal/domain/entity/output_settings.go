package entity

// OutputSettings is the persisted user selection for the page-flip output.
// Zero-valued fields mean "not stored".
type OutputSettings struct {
	DeviceID      string
	QuadBuffer    QuadBufferMode
	HasQuadBuffer bool
	ShowExtra     bool
	Placement     Rect
	HasPlacement  bool
}
