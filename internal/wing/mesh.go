package wing

// Sizes returns the element size for each rib and for each bay between
// adjacent ribs. With refinement the size shrinks linearly from the global
// size at the root towards taper*global at the tip, where taper is the
// tip to root chord ratio.
func (m *MeshParameters) Sizes(ribs int, taper float64) (rib, bay []float64) {
	rib = make([]float64, ribs)
	if ribs > 1 {
		bay = make([]float64, ribs-1)
	}

	if m.Refinement != 1 {
		for i := range rib {
			rib[i] = m.GlobalSize
		}
		for i := range bay {
			bay[i] = m.GlobalSize
		}
		return rib, bay
	}

	tip := taper * m.GlobalSize
	stepRib := (m.GlobalSize - tip) / float64(ribs)
	for i := range rib {
		rib[i] = m.GlobalSize - stepRib*float64(i)
	}
	if len(bay) > 0 {
		stepBay := (m.GlobalSize - tip) / float64(ribs-1)
		for i := range bay {
			bay[i] = m.GlobalSize - stepBay*float64(i)
		}
	}
	return rib, bay
}
