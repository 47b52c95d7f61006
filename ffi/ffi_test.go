package ffi

import "testing"

func TestCreateSetSectionDeleteRoundTrip(t *testing.T) {
	handle := Create(8, -4, 19)
	defer Delete(handle)

	SetSection(handle, [3]int32{0, 0, 0}, 0)
}

func TestGuardRecoversAndForwardsToInstalledHandler(t *testing.T) {
	var got string
	SetPanicHandler(func(msg string) { got = msg })
	defer SetPanicHandler(nil)

	Guard(func() { panic("boom") })

	if got != "boom" {
		t.Fatalf("expected handler to receive %q, got %q", "boom", got)
	}
}

func TestGuardReraisesWhenNoHandlerInstalled(t *testing.T) {
	SetPanicHandler(nil)

	defer func() {
		if recover() == nil {
			t.Fatal("expected Guard to re-raise the panic when no handler is installed")
		}
	}()

	Guard(func() { panic("unrecovered") })
}
