package txscript

import "fmt"

// asBool gets the boolean value of the byte array.
func asBool(t []byte) bool {
	for i := range t {
		if t[i] != 0 {
			// Negative zero is still considered false.
			if i == len(t)-1 && t[i] == 0x80 {
				return false
			}
			return true
		}
	}
	return false
}

// fromBool converts a boolean into the appropriate byte array.
func fromBool(v bool) []byte {
	if v {
		return []byte{1}
	}
	return nil
}

// stack represents a stack of immutable objects to be used with kaspa
// scripts. Objects may be shared, therefore in usage if a value is to be
// changed it *must* be deep-copied first to avoid changing other values on
// the stack.
type stack struct {
	stk []stackItem
}

// stackItem is either a raw byte-string or a pushed scriptNum. The split
// avoids re-encoding every intermediate arithmetic result back to bytes.
type stackItem struct {
	bytes []byte
	isNum bool
	num   scriptNum
}

// Depth returns the number of items on the stack.
func (s *stack) Depth() int32 {
	return int32(len(s.stk))
}

func (s *stack) nipN(idx int32) error {
	sz := int32(len(s.stk))
	if idx < 0 || idx > sz-1 {
		return scriptError(ErrInvalidStackOperation, fmt.Sprintf("index %d but stack has only %d elements", idx, sz))
	}
	index := sz - idx - 1
	s.stk = append(s.stk[:index], s.stk[index+1:]...)
	return nil
}

// PopByteArray pops the value off the top of the stack and returns it.
func (s *stack) PopByteArray() ([]byte, error) {
	item, err := s.peekItem(0)
	if err != nil {
		return nil, err
	}
	if err := s.nipN(0); err != nil {
		return nil, err
	}
	return itemBytes(item), nil
}

// PopInt pops the value off the top of the stack, converts it into a
// scriptNum, and returns it.
func (s *stack) PopInt() (scriptNum, error) {
	item, err := s.peekItem(0)
	if err != nil {
		return 0, err
	}
	if err := s.nipN(0); err != nil {
		return 0, err
	}
	return itemNum(item)
}

// PopBool pops the value off the top of the stack, converts it into a bool,
// and returns it.
func (s *stack) PopBool() (bool, error) {
	item, err := s.peekItem(0)
	if err != nil {
		return false, err
	}
	if err := s.nipN(0); err != nil {
		return false, err
	}
	return asBool(itemBytes(item)), nil
}

// PushByteArray pushes the given byte array onto the top of the stack.
func (s *stack) PushByteArray(so []byte) {
	s.stk = append(s.stk, stackItem{bytes: so})
}

// PushInt pushes the given scriptnum onto the stack.
func (s *stack) PushInt(val scriptNum) {
	s.stk = append(s.stk, stackItem{isNum: true, num: val})
}

// PushBool pushes the given bool onto the stack.
func (s *stack) PushBool(val bool) {
	s.PushByteArray(fromBool(val))
}

func (s *stack) peekItem(idx int32) (stackItem, error) {
	sz := int32(len(s.stk))
	if idx < 0 || idx > sz-1 {
		return stackItem{}, scriptError(ErrInvalidStackOperation, fmt.Sprintf("index %d but stack has only %d elements", idx, sz))
	}
	return s.stk[sz-idx-1], nil
}

func itemBytes(item stackItem) []byte {
	if item.isNum {
		return item.num.Bytes()
	}
	return item.bytes
}

func itemNum(item stackItem) (scriptNum, error) {
	if item.isNum {
		return item.num, nil
	}
	return makeScriptNum(item.bytes, true, defaultScriptNumLen)
}

// PeekByteArray returns the Nth item on the stack without removing it.
func (s *stack) PeekByteArray(idx int32) ([]byte, error) {
	item, err := s.peekItem(idx)
	if err != nil {
		return nil, err
	}
	return itemBytes(item), nil
}

// PeekInt returns the Nth item on the stack as a script num without removing
// it.
func (s *stack) PeekInt(idx int32) (scriptNum, error) {
	item, err := s.peekItem(idx)
	if err != nil {
		return 0, err
	}
	return itemNum(item)
}

// PeekBool returns the Nth item on the stack as a bool without removing it.
func (s *stack) PeekBool(idx int32) (bool, error) {
	item, err := s.peekItem(idx)
	if err != nil {
		return false, err
	}
	return asBool(itemBytes(item)), nil
}

// DropN removes the top N items from the stack.
func (s *stack) DropN(n int32) error {
	if n < 0 {
		return scriptError(ErrInvalidStackOperation, "attempt to drop a negative number of items")
	}
	for ; n > 0; n-- {
		if err := s.nipN(0); err != nil {
			return err
		}
	}
	return nil
}

// DupN duplicates the top N items on the stack.
func (s *stack) DupN(n int32) error {
	if n < 1 {
		return scriptError(ErrInvalidStackOperation, "attempt to dup less than one item")
	}
	for i := n; i > 0; i-- {
		item, err := s.peekItem(n - 1)
		if err != nil {
			return err
		}
		s.stk = append(s.stk, item)
	}
	return nil
}

// RotN rotates the top 3N items on the stack to the left N times.
func (s *stack) RotN(n int32) error {
	if n < 1 {
		return scriptError(ErrInvalidStackOperation, "attempt to rotate less than one item")
	}
	entry := 3*n - 1
	for i := n; i > 0; i-- {
		sz := int32(len(s.stk))
		idx := sz - entry - 1
		item := s.stk[idx]
		s.stk = append(s.stk[:idx], s.stk[idx+1:]...)
		s.stk = append(s.stk, item)
	}
	return nil
}

// SwapN swaps the top N items on the stack with those below them.
func (s *stack) SwapN(n int32) error {
	if n < 1 {
		return scriptError(ErrInvalidStackOperation, "attempt to swap less than one item")
	}
	for i := int32(0); i < n; i++ {
		sz := int32(len(s.stk))
		idxA := sz - n - i - 1
		idxB := sz - i - 1
		s.stk[idxA], s.stk[idxB] = s.stk[idxB], s.stk[idxA]
	}
	return nil
}

// OverN copies N items N items back to the top of the stack.
func (s *stack) OverN(n int32) error {
	if n < 1 {
		return scriptError(ErrInvalidStackOperation, "attempt to perform over on less than one item")
	}
	for i := n; i > 0; i-- {
		item, err := s.peekItem(2*n - 1)
		if err != nil {
			return err
		}
		s.stk = append(s.stk, item)
	}
	return nil
}

// PickN copies the item N items back to the top, without removing it.
func (s *stack) PickN(n int32) error {
	item, err := s.peekItem(n)
	if err != nil {
		return err
	}
	s.stk = append(s.stk, item)
	return nil
}

// RollN moves the item N items back to the top.
func (s *stack) RollN(n int32) error {
	item, err := s.peekItem(n)
	if err != nil {
		return err
	}
	if err := s.nipN(n); err != nil {
		return err
	}
	s.stk = append(s.stk, item)
	return nil
}

// String returns the stack in a human readable format.
func (s *stack) String() string {
	var result string
	for _, stackItem := range s.stk {
		result += fmt.Sprintf("%02x\n", itemBytes(stackItem))
	}
	return result
}
