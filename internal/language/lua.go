package language

import (
	"context"
	"errors"
	"fmt"
	"time"

	lua "github.com/yuin/gopher-lua"
)

// LuaTimeout bounds the evaluation of a Lua definition script.
const LuaTimeout = 2 * time.Second

// ParseLua evaluates a Lua definition script in a sandboxed state. The
// script must return a table with the same fields as a JSON definition:
//
//	return {
//	  name = "rust",
//	  keywords = { "fn", "let" },
//	  stringPattern = [[".*?"]],
//	  commentPattern = [[//.*?$]],
//	}
//
// Only the base, table, string and math libraries are available.
func ParseLua(script string) (Definition, error) {
	L := newSandbox()
	defer L.Close()

	ctx, cancel := context.WithTimeout(context.Background(), LuaTimeout)
	defer cancel()
	L.SetContext(ctx)

	base := L.GetTop()
	if err := L.DoString(script); err != nil {
		return Definition{}, &DefinitionError{Err: fmt.Errorf("lua: %w", err)}
	}
	if L.GetTop() == base {
		return Definition{}, &DefinitionError{Err: errors.New("lua: script returned nothing")}
	}

	tbl, ok := L.Get(-1).(*lua.LTable)
	if !ok {
		return Definition{}, &DefinitionError{Err: fmt.Errorf("lua: script returned %s, want table", L.Get(-1).Type())}
	}

	var def Definition
	var err error

	if def.Name, err = luaString(tbl, "name"); err != nil {
		return Definition{}, err
	}

	kw := tbl.RawGetString("keywords")
	switch v := kw.(type) {
	case *lua.LTable:
		def.Keywords = make([]string, 0, v.Len())
		for i := 1; i <= v.Len(); i++ {
			s, ok := v.RawGetInt(i).(lua.LString)
			if !ok {
				return Definition{}, fieldError("keywords", errWrongType)
			}
			def.Keywords = append(def.Keywords, string(s))
		}
	default:
		if kw == lua.LNil {
			return Definition{}, fieldError("keywords", errMissing)
		}
		return Definition{}, fieldError("keywords", errWrongType)
	}

	if def.StringPattern, err = luaString(tbl, "stringPattern"); err != nil {
		return Definition{}, err
	}
	if def.CommentPattern, err = luaString(tbl, "commentPattern"); err != nil {
		return Definition{}, err
	}

	return def, validate(def)
}

func luaString(tbl *lua.LTable, field string) (string, error) {
	v := tbl.RawGetString(field)
	if v == lua.LNil {
		return "", fieldError(field, errMissing)
	}
	s, ok := v.(lua.LString)
	if !ok {
		return "", fieldError(field, errWrongType)
	}
	return string(s), nil
}

// newSandbox creates a state with only side-effect free libraries opened.
func newSandbox() *lua.LState {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})

	for _, lib := range []struct {
		name string
		open lua.LGFunction
	}{
		{lua.BaseLibName, lua.OpenBase},
		{lua.TabLibName, lua.OpenTable},
		{lua.StringLibName, lua.OpenString},
		{lua.MathLibName, lua.OpenMath},
	} {
		// Opening the bundled libraries cannot fail.
		_ = L.CallByParam(lua.P{
			Fn:      L.NewFunction(lib.open),
			NRet:    0,
			Protect: true,
		}, lua.LString(lib.name))
	}

	// Loading code or files would escape the sandbox.
	for _, name := range []string{"dofile", "loadfile", "load", "loadstring", "require", "module"} {
		L.SetGlobal(name, lua.LNil)
	}

	return L
}
