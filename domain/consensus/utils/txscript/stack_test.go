package txscript

import "testing"

func TestStackPushPopByteArray(t *testing.T) {
	var s stack
	s.PushByteArray([]byte{1, 2, 3})
	s.PushByteArray([]byte{4, 5})

	got, err := s.PopByteArray()
	if err != nil {
		t.Fatalf("PopByteArray: %s", err)
	}
	if len(got) != 2 || got[0] != 4 || got[1] != 5 {
		t.Fatalf("unexpected pop result: %v", got)
	}
	if s.Depth() != 1 {
		t.Fatalf("expected depth 1, got %d", s.Depth())
	}
}

func TestStackPopEmptyErrors(t *testing.T) {
	var s stack
	if _, err := s.PopByteArray(); err == nil {
		t.Fatal("expected popping an empty stack to error")
	}
}

func TestStackRot(t *testing.T) {
	var s stack
	s.PushInt(1)
	s.PushInt(2)
	s.PushInt(3)
	if err := s.RotN(1); err != nil {
		t.Fatalf("RotN: %s", err)
	}
	// after rot: [2, 3, 1]
	v, _ := s.PeekInt(0)
	if v != 1 {
		t.Fatalf("expected top to be 1 after rot, got %d", v)
	}
}

func TestStackPick(t *testing.T) {
	var s stack
	s.PushInt(10)
	s.PushInt(20)
	s.PushInt(30)
	if err := s.PickN(2); err != nil {
		t.Fatalf("PickN: %s", err)
	}
	v, _ := s.PeekInt(0)
	if v != 10 {
		t.Fatalf("expected picked value 10, got %d", v)
	}
}

func TestAsBoolNegativeZero(t *testing.T) {
	if asBool([]byte{0x00, 0x00, 0x80}) {
		t.Fatal("expected negative-zero encoding to be false")
	}
	if !asBool([]byte{0x01}) {
		t.Fatal("expected [0x01] to be true")
	}
	if asBool(nil) {
		t.Fatal("expected empty array to be false")
	}
}
