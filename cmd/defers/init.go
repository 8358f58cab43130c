package main

import (
	"fmt"
	"os"

	lua "github.com/yuin/gopher-lua"
)

const initFile = ".defers.lua"

// runInit runs the init script at path, if there is one, and returns the
// cleanup command lines it added. The script's edits to defers.env replace
// e.env.
func runInit(e *runEnv, path string) (cmds []string, err error) {
	if _, err := os.Stat(path); err != nil {
		return nil, nil
	}

	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	defer L.Close()

	cfg := L.NewTable()
	initGetEnv(L, cfg, e.env)
	L.SetField(cfg, "add", L.NewFunction(func(L *lua.LState) int {
		cmds = append(cmds, L.CheckString(1))
		return 0
	}))
	L.SetGlobal("defers", cfg)

	if err := L.DoFile(path); err != nil {
		return nil, fmt.Errorf("failed to run %s: %w", path, err)
	}

	if err := initSetEnv(L, cfg, e.env); err != nil {
		return nil, fmt.Errorf("failed to apply env from %s: %w", path, err)
	}

	return cmds, nil
}

func initGetEnv(L *lua.LState, t *lua.LTable, env map[string]string) {
	envtbl := L.NewTable()
	for k, v := range env {
		L.SetField(envtbl, k, lua.LString(v))
	}
	L.SetField(t, "env", envtbl)
}

func initSetEnv(L *lua.LState, t *lua.LTable, env map[string]string) error {
	v := L.GetField(t, "env")
	envtbl, ok := v.(*lua.LTable)
	if !ok {
		return fmt.Errorf("defers.env is not a table")
	}
	clear(env)
	envtbl.ForEach(func(k lua.LValue, v lua.LValue) {
		env[k.String()] = v.String()
	})
	return nil
}
