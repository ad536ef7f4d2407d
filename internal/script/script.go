// Package script runs Starlark layout scripts against the DockBuilder API.
//
// A layout script describes a dock tree imperatively:
//
//	root = dockspace("Main", size=(1280, 720))
//	left, rest = split(root, "left", 0.25)
//	dock("Inspector", left)
//	dock("Scene", rest)
//	finish(root)
//
// Node arguments accept either an id returned by another builtin or a
// string, which is hashed the same way window names are.
package script

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"go.starlark.net/resolve"
	"go.starlark.net/starlark"

	"github.com/go-theft-auto/dockgui"
)

const contextLocalName = "dockgui_context"

func init() {
	resolve.AllowFloat = true
	resolve.AllowLambda = true
	resolve.AllowNestedDef = true
}

// Env binds a dockgui context to a set of Starlark builtins.
type Env struct {
	dc      *dockgui.Context
	globals starlark.StringDict
	print   func(msg string)
}

// New creates a script environment operating on dc. Script print output
// goes to the context logger.
func New(dc *dockgui.Context) *Env {
	env := &Env{dc: dc}
	env.print = func(msg string) { dc.Logger().Info("script: " + msg) }
	env.globals = starlark.StringDict{
		"dockspace":      starlark.NewBuiltin("dockspace", env.dockspace),
		"add_node":       starlark.NewBuiltin("add_node", env.addNode),
		"split":          starlark.NewBuiltin("split", env.split),
		"dock":           starlark.NewBuiltin("dock", env.dock),
		"set_pos":        starlark.NewBuiltin("set_pos", env.setPos),
		"set_size":       starlark.NewBuiltin("set_size", env.setSize),
		"remove":         starlark.NewBuiltin("remove", env.remove),
		"clear":          starlark.NewBuiltin("clear", env.clearChildren),
		"central":        starlark.NewBuiltin("central", env.central),
		"copy_dockspace": starlark.NewBuiltin("copy_dockspace", env.copyDockSpace),
		"hash":           starlark.NewBuiltin("hash", env.hash),
		"finish":         starlark.NewBuiltin("finish", env.finish),
	}
	return env
}

// SetPrint redirects the output of the Starlark print builtin.
func (env *Env) SetPrint(fn func(msg string)) {
	env.print = fn
}

// Builtins returns the sorted names of the predeclared builtins.
func (env *Env) Builtins() []string {
	names := make([]string, 0, len(env.globals))
	for name := range env.globals {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Exec executes the script in filename. src may be nil (the file is read),
// a string, a []byte or an io.Reader. Cancelling ctx stops the script at
// its next builtin call.
func (env *Env) Exec(ctx context.Context, filename string, src any) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	thread := &starlark.Thread{
		Name: filename,
		Print: func(_ *starlark.Thread, msg string) {
			env.print(msg)
		},
	}
	thread.SetLocal(contextLocalName, ctx)

	stop := context.AfterFunc(ctx, func() { thread.Cancel(context.Cause(ctx).Error()) })
	defer stop()

	if _, err := starlark.ExecFile(thread, filename, src, env.globals); err != nil {
		var evalErr *starlark.EvalError
		if errors.As(err, &evalErr) {
			return fmt.Errorf("run %s: %s", filename, evalErr.Backtrace())
		}
		return fmt.Errorf("run %s: %w", filename, err)
	}
	return nil
}

// Run is a shorthand for New(dc).Exec(ctx, filename, src).
func Run(ctx context.Context, dc *dockgui.Context, filename string, src any) error {
	return New(dc).Exec(ctx, filename, src)
}

func isCancelled(thread *starlark.Thread) error {
	if ctx, ok := thread.Local(contextLocalName).(context.Context); ok {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
	}
	return nil
}

func decorateError(thread *starlark.Thread, err error) error {
	if err == nil {
		return nil
	}
	pos := thread.CallFrame(1).Pos
	if pos.Col > 0 {
		return fmt.Errorf("%s:%d:%d: %v", pos.Filename(), pos.Line, pos.Col, err)
	}
	return fmt.Errorf("%s:%d: %v", pos.Filename(), pos.Line, err)
}

// dockspace(name, size=(w, h), pos=None, flags=[]) creates or replaces a
// dockspace root and returns its id.
func (env *Env) dockspace(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if err := isCancelled(thread); err != nil {
		return starlark.None, err
	}
	var (
		name  starlark.Value
		size  starlark.Value = starlark.None
		pos   starlark.Value = starlark.None
		flags *starlark.List
	)
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "name", &name, "size?", &size, "pos?", &pos, "flags?", &flags); err != nil {
		return starlark.None, err
	}
	id, err := toID(name)
	if err != nil {
		return starlark.None, decorateError(thread, err)
	}
	f, err := toFlags(flags)
	if err != nil {
		return starlark.None, decorateError(thread, err)
	}
	env.dc.DockBuilderAddNode(id, f|dockgui.DockNodeDockSpace)
	if err := env.applyRect(id, pos, size); err != nil {
		return starlark.None, decorateError(thread, err)
	}
	return idValue(id), nil
}

// add_node(id=0, flags=[]) creates a floating node.
func (env *Env) addNode(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if err := isCancelled(thread); err != nil {
		return starlark.None, err
	}
	var (
		node  starlark.Value = starlark.MakeInt(0)
		flags *starlark.List
	)
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "id?", &node, "flags?", &flags); err != nil {
		return starlark.None, err
	}
	id, err := toID(node)
	if err != nil {
		return starlark.None, decorateError(thread, err)
	}
	f, err := toFlags(flags)
	if err != nil {
		return starlark.None, decorateError(thread, err)
	}
	return idValue(env.dc.DockBuilderAddNode(id, f)), nil
}

// split(node, dir, ratio) returns (node_at_dir, node_opposite).
func (env *Env) split(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if err := isCancelled(thread); err != nil {
		return starlark.None, err
	}
	var (
		node  starlark.Value
		dir   string
		ratio starlark.Value
	)
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "node", &node, "dir", &dir, "ratio", &ratio); err != nil {
		return starlark.None, err
	}
	id, err := env.existingNode(node)
	if err != nil {
		return starlark.None, decorateError(thread, err)
	}
	d, err := parseDir(dir)
	if err != nil {
		return starlark.None, decorateError(thread, err)
	}
	r, err := toFloat(ratio)
	if err != nil {
		return starlark.None, decorateError(thread, fmt.Errorf("ratio: %w", err))
	}
	if r <= 0 || r >= 1 {
		return starlark.None, decorateError(thread, fmt.Errorf("ratio must be in (0,1), got %v", r))
	}
	if env.dc.DockBuilderGetNode(id).IsSplitNode() {
		return starlark.None, decorateError(thread, fmt.Errorf("node 0x%08X is already split", uint32(id)))
	}
	atDir, opposite := env.dc.DockBuilderSplitNode(id, d, r)
	return starlark.Tuple{idValue(atDir), idValue(opposite)}, nil
}

// dock(window, node) docks the named window into node.
func (env *Env) dock(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if err := isCancelled(thread); err != nil {
		return starlark.None, err
	}
	var (
		window string
		node   starlark.Value
	)
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "window", &window, "node", &node); err != nil {
		return starlark.None, err
	}
	id, err := env.existingNode(node)
	if err != nil {
		return starlark.None, decorateError(thread, err)
	}
	env.dc.DockBuilderDockWindow(window, id)
	return starlark.None, nil
}

func (env *Env) setPos(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	return env.setVec(thread, b, args, kwargs, "pos", env.dc.DockBuilderSetNodePos)
}

func (env *Env) setSize(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	return env.setVec(thread, b, args, kwargs, "size", env.dc.DockBuilderSetNodeSize)
}

func (env *Env) setVec(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple, what string, apply func(dockgui.ID, dockgui.Vec2)) (starlark.Value, error) {
	if err := isCancelled(thread); err != nil {
		return starlark.None, err
	}
	var node, vec starlark.Value
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "node", &node, what, &vec); err != nil {
		return starlark.None, err
	}
	id, err := env.existingNode(node)
	if err != nil {
		return starlark.None, decorateError(thread, err)
	}
	v, err := toVec2(vec)
	if err != nil {
		return starlark.None, decorateError(thread, fmt.Errorf("%s: %w", what, err))
	}
	if what == "size" && (v.X <= 0 || v.Y <= 0) {
		return starlark.None, decorateError(thread, fmt.Errorf("size must be positive, got %v", v))
	}
	apply(id, v)
	return starlark.None, nil
}

// remove(node) removes node, its children and docked windows.
func (env *Env) remove(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if err := isCancelled(thread); err != nil {
		return starlark.None, err
	}
	var node starlark.Value
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "node", &node); err != nil {
		return starlark.None, err
	}
	id, err := toID(node)
	if err != nil {
		return starlark.None, decorateError(thread, err)
	}
	env.dc.DockBuilderRemoveNode(id)
	return starlark.None, nil
}

// clear(node) folds every child of node back into it.
func (env *Env) clearChildren(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if err := isCancelled(thread); err != nil {
		return starlark.None, err
	}
	var node starlark.Value
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "node", &node); err != nil {
		return starlark.None, err
	}
	id, err := env.existingNode(node)
	if err != nil {
		return starlark.None, decorateError(thread, err)
	}
	env.dc.DockBuilderRemoveNodeChildNodes(id)
	return starlark.None, nil
}

// central(node) returns the central node id of node's tree, or None.
func (env *Env) central(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var node starlark.Value
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "node", &node); err != nil {
		return starlark.None, err
	}
	id, err := env.existingNode(node)
	if err != nil {
		return starlark.None, decorateError(thread, err)
	}
	if c := env.dc.DockBuilderGetCentralNode(id); c != nil {
		return idValue(c.ID), nil
	}
	return starlark.None, nil
}

// copy_dockspace(src, dst, windows={}) duplicates a dockspace; windows
// maps source window names to their counterparts in the copy.
func (env *Env) copyDockSpace(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if err := isCancelled(thread); err != nil {
		return starlark.None, err
	}
	var (
		src, dst starlark.Value
		windows  *starlark.Dict
	)
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "src", &src, "dst", &dst, "windows?", &windows); err != nil {
		return starlark.None, err
	}
	srcID, err := env.existingNode(src)
	if err != nil {
		return starlark.None, decorateError(thread, err)
	}
	dstID, err := toID(dst)
	if err != nil {
		return starlark.None, decorateError(thread, err)
	}
	var pairs [][2]string
	if windows != nil {
		for _, item := range windows.Items() {
			from, ok1 := starlark.AsString(item[0])
			to, ok2 := starlark.AsString(item[1])
			if !ok1 || !ok2 {
				return starlark.None, decorateError(thread, fmt.Errorf("windows must map names to names, got %s", item.String()))
			}
			pairs = append(pairs, [2]string{from, to})
		}
	}
	env.dc.DockBuilderCopyDockSpace(srcID, dstID, pairs)
	return idValue(dstID), nil
}

// hash(label) returns the id a label hashes to.
func (env *Env) hash(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var label string
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "label", &label); err != nil {
		return starlark.None, err
	}
	return idValue(dockgui.HashString(0, label)), nil
}

// finish(node=0) binds windows to the nodes they were docked into.
func (env *Env) finish(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if err := isCancelled(thread); err != nil {
		return starlark.None, err
	}
	var node starlark.Value = starlark.MakeInt(0)
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "node?", &node); err != nil {
		return starlark.None, err
	}
	id, err := toID(node)
	if err != nil {
		return starlark.None, decorateError(thread, err)
	}
	env.dc.DockBuilderFinish(id)
	return starlark.None, nil
}

func (env *Env) applyRect(id dockgui.ID, pos, size starlark.Value) error {
	if pos != starlark.None {
		p, err := toVec2(pos)
		if err != nil {
			return fmt.Errorf("pos: %w", err)
		}
		env.dc.DockBuilderSetNodePos(id, p)
	}
	if size != starlark.None {
		s, err := toVec2(size)
		if err != nil {
			return fmt.Errorf("size: %w", err)
		}
		if s.X <= 0 || s.Y <= 0 {
			return fmt.Errorf("size must be positive, got %v", s)
		}
		env.dc.DockBuilderSetNodeSize(id, s)
	}
	return nil
}

// existingNode resolves v and fails when no node has that id.
func (env *Env) existingNode(v starlark.Value) (dockgui.ID, error) {
	id, err := toID(v)
	if err != nil {
		return 0, err
	}
	if env.dc.DockBuilderGetNode(id) == nil {
		return 0, fmt.Errorf("node 0x%08X: %w", uint32(id), dockgui.ErrNodeNotFound)
	}
	return id, nil
}

func idValue(id dockgui.ID) starlark.Value {
	return starlark.MakeUint64(uint64(id))
}

func toID(v starlark.Value) (dockgui.ID, error) {
	switch x := v.(type) {
	case starlark.String:
		return dockgui.HashString(0, string(x)), nil
	case starlark.Int:
		n, ok := x.Uint64()
		if !ok || n > 0xFFFFFFFF {
			return 0, fmt.Errorf("id %s out of range", x.String())
		}
		return dockgui.ID(n), nil
	}
	return 0, fmt.Errorf("expected node id or name, got %s", v.Type())
}

func toFloat(v starlark.Value) (float32, error) {
	switch x := v.(type) {
	case starlark.Float:
		return float32(x), nil
	case starlark.Int:
		n, ok := x.Int64()
		if !ok {
			return 0, fmt.Errorf("%s out of range", x.String())
		}
		return float32(n), nil
	}
	return 0, fmt.Errorf("expected number, got %s", v.Type())
}

func toVec2(v starlark.Value) (dockgui.Vec2, error) {
	seq, ok := v.(starlark.Indexable)
	if !ok || seq.Len() != 2 {
		return dockgui.Vec2{}, fmt.Errorf("expected (x, y), got %s", v.String())
	}
	x, err := toFloat(seq.Index(0))
	if err != nil {
		return dockgui.Vec2{}, err
	}
	y, err := toFloat(seq.Index(1))
	if err != nil {
		return dockgui.Vec2{}, err
	}
	return dockgui.Vec2{X: x, Y: y}, nil
}

func toFlags(list *starlark.List) (dockgui.DockNodeFlags, error) {
	if list == nil {
		return dockgui.DockNodeFlagsNone, nil
	}
	names := make([]string, 0, list.Len())
	for i := 0; i < list.Len(); i++ {
		s, ok := starlark.AsString(list.Index(i))
		if !ok {
			return 0, fmt.Errorf("flags must be strings, got %s", list.Index(i).Type())
		}
		names = append(names, s)
	}
	return dockgui.ParseDockNodeFlags(names...)
}

func parseDir(s string) (dockgui.Dir, error) {
	switch strings.ToLower(s) {
	case "left":
		return dockgui.DirLeft, nil
	case "right":
		return dockgui.DirRight, nil
	case "up":
		return dockgui.DirUp, nil
	case "down":
		return dockgui.DirDown, nil
	}
	return dockgui.DirNone, fmt.Errorf("unknown direction %q (want left, right, up or down)", s)
}
