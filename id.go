package dockgui

import "hash/fnv"

// ID uniquely identifies a widget, window, tab or dock node.
// IDs are stable across frames for the same label path.
type ID uint32

// HashString generates a stable ID from a string label relative to seed.
func HashString(seed ID, label string) ID {
	h := fnv.New32a()
	var s [4]byte
	s[0], s[1], s[2], s[3] = byte(seed), byte(seed>>8), byte(seed>>16), byte(seed>>24)
	h.Write(s[:])
	h.Write([]byte(label))
	id := ID(h.Sum32())
	if id == 0 {
		id = 1
	}
	return id
}

// HashInt generates an ID from an integer relative to seed.
func HashInt(seed ID, n int) ID {
	h := fnv.New32a()
	var b [8]byte
	b[0], b[1], b[2], b[3] = byte(seed), byte(seed>>8), byte(seed>>16), byte(seed>>24)
	u := uint32(n)
	b[4], b[5], b[6], b[7] = byte(u), byte(u>>8), byte(u>>16), byte(u>>24)
	h.Write(b[:])
	id := ID(h.Sum32())
	if id == 0 {
		id = 1
	}
	return id
}

// GetID generates an ID for label within the current ID stack.
func (ctx *Context) GetID(label string) ID {
	return HashString(ctx.CurrentID(), label)
}

// GetIDFromInt generates an ID from an integer within the current ID stack.
// Useful for items in arrays/slices.
func (ctx *Context) GetIDFromInt(n int) ID {
	return HashInt(ctx.CurrentID(), n)
}

// PushID pushes an ID onto the stack for nested widgets.
// All GetID calls will be relative to this parent ID.
func (ctx *Context) PushID(label string) {
	ctx.idStack = append(ctx.idStack, ctx.GetID(label))
}

// PushOverrideID pushes an already computed ID onto the stack.
func (ctx *Context) PushOverrideID(id ID) {
	ctx.idStack = append(ctx.idStack, id)
}

// PopID removes the last ID from the stack.
func (ctx *Context) PopID() {
	if len(ctx.idStack) > 0 {
		ctx.idStack = ctx.idStack[:len(ctx.idStack)-1]
	}
}

// CurrentID returns the current parent ID (top of stack).
func (ctx *Context) CurrentID() ID {
	if len(ctx.idStack) > 0 {
		return ctx.idStack[len(ctx.idStack)-1]
	}
	return 0
}
