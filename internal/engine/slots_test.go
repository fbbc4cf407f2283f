package engine

import "testing"

type testSlotState struct {
	initialized bool
	torndown    bool
}

var testSlotStates = map[*Context]*testSlotState{}

var testSlotIndex = RegisterSlot(
	func(ctx *Context) any {
		st := &testSlotState{initialized: true}
		testSlotStates[ctx] = st
		return st
	},
	func(ctx *Context, value any) {
		value.(*testSlotState).torndown = true
	},
)

func TestContextSlotLifecycle(t *testing.T) {
	ctx, err := New(Config{ArenaSize: 64 * 1024, Logger: NopLogger{}})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	st, ok := ctx.Slot(testSlotIndex).(*testSlotState)
	if !ok || !st.initialized {
		t.Fatalf("expected slot to be initialized on New")
	}

	if err := ctx.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if !st.torndown {
		t.Fatalf("expected deinit callback to run on Close")
	}
}
