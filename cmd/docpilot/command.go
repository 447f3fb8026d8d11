package main

import (
	"encoding/json"
	"fmt"
	"strings"
)

type commandKind int

const (
	commandEmpty commandKind = iota
	commandQuit
	commandClear
	commandHelp
	commandTools
	commandReset
	commandRun
	commandInvalid
)

type userCommand struct {
	kind commandKind
	tool string
	args map[string]any
	err  error
}

// parseUserCommand turns one input line into a command. Tool calls take the
// form: run <tool_name> {"json":"args"}.
func parseUserCommand(line string) userCommand {
	trimmed := strings.TrimSpace(line)
	switch trimmed {
	case "":
		return userCommand{kind: commandEmpty}
	case "/quit", "/exit", "quit", "exit":
		return userCommand{kind: commandQuit}
	case "/clear", "clear":
		return userCommand{kind: commandClear}
	case "/help", "help", "?":
		return userCommand{kind: commandHelp}
	case "/tools", "tools":
		return userCommand{kind: commandTools}
	case "/reset", "reset":
		return userCommand{kind: commandReset}
	}

	rest, ok := strings.CutPrefix(trimmed, "run ")
	if !ok {
		return userCommand{kind: commandInvalid, err: fmt.Errorf("unknown command %q (try /help)", trimmed)}
	}
	name, payload, _ := strings.Cut(strings.TrimSpace(rest), " ")
	if name == "" {
		return userCommand{kind: commandInvalid, err: fmt.Errorf("usage: run <tool> {json args}")}
	}
	args := map[string]any{}
	if strings.TrimSpace(payload) != "" {
		if err := json.Unmarshal([]byte(payload), &args); err != nil {
			return userCommand{kind: commandInvalid, err: fmt.Errorf("bad tool arguments: %w", err)}
		}
	}
	return userCommand{kind: commandRun, tool: name, args: args}
}

const helpText = `commands:
  run <tool> {json}   execute a mutation tool, e.g.
                      run docx_replace_text {"path":"report.docx","old_text":"March","new_text":"April"}
  tools               list available tools
  reset               clear the session approval ledger
  /clear              clear the screen
  /quit               exit`
