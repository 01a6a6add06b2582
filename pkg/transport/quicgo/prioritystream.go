package quicgo

// PriorityStream records the weight a PRIORITY frame assigns to a
// request stream. Wiring that weight into quic-go's own packet
// scheduler is out of scope here, same as the rest of QUIC transport
// internals (spec.md section 1); a real session would read Weight back
// out when deciding send order.
type PriorityStream struct {
	ID     uint64
	Weight uint8
}

// SetPriority satisfies control.PriorityStream.
func (s *PriorityStream) SetPriority(weight uint8) { s.Weight = weight }
