package machine

// wheel is the immutable part of a rotor, shared by every configuration that
// uses it.
type wheel struct {
	id      int
	forward []int
	inverse []int
	notch   int
}

func newWheel(id int, wiring []int, notch int) *wheel {
	w := &wheel{id: id, forward: wiring, inverse: make([]int, len(wiring)), notch: notch}
	for in, out := range wiring {
		w.inverse[out] = in
	}
	return w
}

// Rotor is one chosen wheel with its moving position. carry is set when the
// right neighbour landed on its notch during the previous symbol.
type Rotor struct {
	*wheel
	start    int
	position int
	carry    bool
}

func (r *Rotor) ID() int {
	return r.id
}

func (r *Rotor) Notch() int {
	return r.notch
}

func (r *Rotor) Position() int {
	return r.position
}

// advance moves the rotor one position and reports whether it landed on its
// notch.
func (r *Rotor) advance() bool {
	r.position = (r.position + 1) % len(r.forward)
	return r.position == r.notch
}

func (r *Rotor) reset() {
	r.position = r.start
	r.carry = false
}

func (r *Rotor) mapForward(x int) int {
	n := len(r.forward)
	return (r.forward[(x+r.position)%n] - r.position + n) % n
}

func (r *Rotor) mapBackward(x int) int {
	n := len(r.inverse)
	return (r.inverse[(x+r.position)%n] - r.position + n) % n
}
