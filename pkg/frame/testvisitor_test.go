package frame

// recordingVisitor captures every callback it receives as a tagged event,
// so tests can assert on the exact callback sequence a byte string
// produces. pauseAt, if non-empty, makes the visitor return false the
// first time the named event occurs (then true for every later call).
type event struct {
	name    string
	lengths Lengths
	payload []byte
	err     string
	frame   interface{}
	value   uint64
}

type recordingVisitor struct {
	events   []event
	pauseAt  string
	paused   bool
	errCode  ErrorCode
	errMsg   string
}

func (v *recordingVisitor) record(name string) bool {
	v.events = append(v.events, event{name: name})
	return v.continueAfter(name)
}

func (v *recordingVisitor) continueAfter(name string) bool {
	if !v.paused && v.pauseAt == name {
		v.paused = true
		return false
	}
	return true
}

func (v *recordingVisitor) OnError(d *Decoder) {
	v.errCode = d.Error()
	v.errMsg = d.ErrorDetail()
	v.events = append(v.events, event{name: "error", err: d.ErrorDetail()})
}

func (v *recordingVisitor) OnPriorityFrameStart(l Lengths) bool {
	v.events = append(v.events, event{name: "priority_start", lengths: l})
	return v.continueAfter("priority_start")
}
func (v *recordingVisitor) OnPriorityFrame(f PriorityFrame) bool {
	v.events = append(v.events, event{name: "priority", frame: f})
	return v.continueAfter("priority")
}

func (v *recordingVisitor) OnCancelPushFrame(f CancelPushFrame) bool {
	v.events = append(v.events, event{name: "cancel_push", frame: f})
	return v.continueAfter("cancel_push")
}
func (v *recordingVisitor) OnMaxPushIDFrame(f MaxPushIDFrame) bool {
	v.events = append(v.events, event{name: "max_push_id", frame: f})
	return v.continueAfter("max_push_id")
}
func (v *recordingVisitor) OnGoAwayFrame(f GoAwayFrame) bool {
	v.events = append(v.events, event{name: "goaway", frame: f})
	return v.continueAfter("goaway")
}
func (v *recordingVisitor) OnDuplicatePushFrame(f DuplicatePushFrame) bool {
	v.events = append(v.events, event{name: "duplicate_push", frame: f})
	return v.continueAfter("duplicate_push")
}

func (v *recordingVisitor) OnSettingsFrameStart(l Lengths) bool {
	v.events = append(v.events, event{name: "settings_start", lengths: l})
	return v.continueAfter("settings_start")
}
func (v *recordingVisitor) OnSettingsFrame(f SettingsFrame) bool {
	v.events = append(v.events, event{name: "settings", frame: f})
	return v.continueAfter("settings")
}

func (v *recordingVisitor) OnDataFrameStart(l Lengths) bool {
	v.events = append(v.events, event{name: "data_start", lengths: l})
	return v.continueAfter("data_start")
}
func (v *recordingVisitor) OnDataFramePayload(p []byte) bool {
	v.events = append(v.events, event{name: "data_payload", payload: append([]byte(nil), p...)})
	return v.continueAfter("data_payload")
}
func (v *recordingVisitor) OnDataFrameEnd() bool { return v.record("data_end") }

func (v *recordingVisitor) OnHeadersFrameStart(l Lengths) bool {
	v.events = append(v.events, event{name: "headers_start", lengths: l})
	return v.continueAfter("headers_start")
}
func (v *recordingVisitor) OnHeadersFramePayload(p []byte) bool {
	v.events = append(v.events, event{name: "headers_payload", payload: append([]byte(nil), p...)})
	return v.continueAfter("headers_payload")
}
func (v *recordingVisitor) OnHeadersFrameEnd() bool { return v.record("headers_end") }

func (v *recordingVisitor) OnPushPromiseFrameStart(pushID uint64) bool {
	v.events = append(v.events, event{name: "push_promise_start", value: pushID})
	return v.continueAfter("push_promise_start")
}
func (v *recordingVisitor) OnPushPromiseFramePayload(p []byte) bool {
	v.events = append(v.events, event{name: "push_promise_payload", payload: append([]byte(nil), p...)})
	return v.continueAfter("push_promise_payload")
}
func (v *recordingVisitor) OnPushPromiseFrameEnd() bool { return v.record("push_promise_end") }

func names(events []event) []string {
	out := make([]string, len(events))
	for i, e := range events {
		out[i] = e.name
	}
	return out
}
