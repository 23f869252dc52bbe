package lua

import (
	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/lineup/internal/dispatcher/handler"
	alignh "github.com/dshills/lineup/internal/dispatcher/handlers/align"
	"github.com/dshills/lineup/internal/input"
)

// ModuleName is the global the align table is installed under.
const ModuleName = "align"

// Document is the document view scripts get.
type Document interface {
	LineCount() uint32
	LineText(line uint32) string
	SelectLines(first, last uint32)
}

// Dispatcher runs actions on behalf of scripts.
type Dispatcher interface {
	Dispatch(action input.Action) handler.Result
}

type module struct {
	doc  Document
	disp Dispatcher
}

// OpenAlign installs the align table.
func (s *State) OpenAlign(doc Document, disp Dispatcher) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStateClosed
	}

	m := &module{doc: doc, disp: disp}
	s.L.SetGlobal(ModuleName, s.L.SetFuncs(s.L.NewTable(), map[string]lua.LGFunction{
		"left":       m.left,
		"match":      m.match,
		"rules":      m.rules,
		"line":       m.line,
		"line_count": m.lineCount,
	}))
	return nil
}

func (m *module) left(L *lua.LState) int {
	m.selectLines(L)
	action := input.NewAction(alignh.ActionLeft).
		FromSource(input.SourceScript).
		With(alignh.ArgBiasLeft, L.OptBool(3, false))

	L.Push(lua.LBool(m.dispatch(L, action)))
	return 1
}

func (m *module) match(L *lua.LState) int {
	m.selectLines(L)
	action := input.NewAction(alignh.ActionMatch).
		FromSource(input.SourceScript).
		With(alignh.ArgMatchName, L.OptString(3, "auto"))

	L.Push(lua.LBool(m.dispatch(L, action)))
	return 1
}

func (m *module) rules(L *lua.LState) int {
	result := m.disp.Dispatch(input.NewAction(alignh.ActionListRules).FromSource(input.SourceScript))
	if result.IsError() {
		L.RaiseError("%s", result.Error.Error())
	}

	tbl := L.NewTable()
	if v, ok := result.GetData(alignh.DataRules); ok {
		names, _ := v.([]string)
		for _, name := range names {
			tbl.Append(lua.LString(name))
		}
	}
	L.Push(tbl)
	return 1
}

func (m *module) line(L *lua.LState) int {
	n := L.CheckInt(1)
	if n < 1 || n > int(m.doc.LineCount()) {
		L.ArgError(1, "line out of range")
	}
	L.Push(lua.LString(m.doc.LineText(uint32(n - 1))))
	return 1
}

func (m *module) lineCount(L *lua.LState) int {
	L.Push(lua.LNumber(m.doc.LineCount()))
	return 1
}

// selectLines selects the 1-based inclusive range in arguments 1 and 2.
func (m *module) selectLines(L *lua.LState) {
	first, last := L.CheckInt(1), L.CheckInt(2)
	count := int(m.doc.LineCount())
	if first < 1 || first > count {
		L.ArgError(1, "line out of range")
	}
	if last < first || last > count {
		L.ArgError(2, "line out of range")
	}
	m.doc.SelectLines(uint32(first-1), uint32(last-1))
}

// dispatch runs action and reports whether the buffer changed. Errors and
// an empty rule set raise Lua errors.
func (m *module) dispatch(L *lua.LState, action input.Action) bool {
	result := m.disp.Dispatch(action)
	switch {
	case result.IsError():
		L.RaiseError("%s", result.Error.Error())
	case result.Message == alignh.MsgNoAlignments:
		L.RaiseError("%s", alignh.MsgNoAlignments)
	}
	return result.GetDataBool(alignh.DataChanged)
}
