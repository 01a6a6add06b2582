package frame

import (
	"errors"

	"h3wire/pkg/varint"
)

// parsePriorityPayload decodes a buffered PRIORITY payload. The presence
// of prioritized_element_id and element_dependency_id is conditional on
// the corresponding type not being ElementRootOfTree; any payload that
// does not match the size implied by the two type fields is rejected,
// per spec.md section 4.2's open question on PRIORITY parsing.
func parsePriorityPayload(payload []byte) (PriorityFrame, error) {
	if len(payload) == 0 {
		return PriorityFrame{}, errors.New("PRIORITY frame payload is missing its flags byte")
	}
	flags := payload[0]
	f := PriorityFrame{
		PrioritizedType: ElementType((flags >> 6) & 0x3),
		DependencyType:  ElementType((flags >> 4) & 0x3),
		Exclusive:       flags&0x1 != 0,
	}

	idx := 1
	if f.PrioritizedType != ElementRootOfTree {
		v, n, err := varint.Parse(payload[idx:])
		if err != nil {
			return PriorityFrame{}, errors.New("PRIORITY frame is missing prioritized_element_id")
		}
		f.PrioritizedElementID = v
		idx += n
	}
	if f.DependencyType != ElementRootOfTree {
		v, n, err := varint.Parse(payload[idx:])
		if err != nil {
			return PriorityFrame{}, errors.New("PRIORITY frame is missing element_dependency_id")
		}
		f.ElementDependencyID = v
		idx += n
	}

	if idx+1 != len(payload) {
		return PriorityFrame{}, errors.New("PRIORITY frame has unexpected trailing or missing weight byte")
	}
	f.Weight = payload[idx]
	return f, nil
}

// parseSettingsPayload decodes a buffered SETTINGS payload: repeated
// (identifier, value) varint pairs consuming the full declared length.
func parseSettingsPayload(payload []byte) (SettingsFrame, error) {
	f := SettingsFrame{Values: make(map[uint64]uint64)}
	offset := 0
	for offset < len(payload) {
		id, n, err := varint.Parse(payload[offset:])
		if err != nil {
			return SettingsFrame{}, errors.New("SETTINGS frame has a truncated identifier")
		}
		offset += n

		value, n, err := varint.Parse(payload[offset:])
		if err != nil {
			return SettingsFrame{}, errors.New("SETTINGS frame has a truncated value")
		}
		offset += n

		f.Values[id] = value
	}
	return f, nil
}
