package machine

import "enigmaCrackerBackend/internal/utils/roman"

// Reflector is a fixed-point-free involution over alphabet indices.
type Reflector struct {
	id      int
	pairing []int
}

func (r *Reflector) ID() int {
	return r.id
}

// Name is the reflector id in its Roman numeral form.
func (r *Reflector) Name() string {
	return roman.Format(r.id)
}

func (r *Reflector) reflect(x int) int {
	return r.pairing[x]
}
