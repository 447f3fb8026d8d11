package main

import "testing"

func TestParseUserCommand(t *testing.T) {
	cases := []struct {
		input string
		want  commandKind
	}{
		{"", commandEmpty},
		{"   ", commandEmpty},
		{"/quit", commandQuit},
		{"exit", commandQuit},
		{"/clear", commandClear},
		{"/help", commandHelp},
		{"?", commandHelp},
		{"/tools", commandTools},
		{"/reset", commandReset},
		{"gibberish", commandInvalid},
		{"run", commandInvalid},
	}
	for _, tc := range cases {
		if got := parseUserCommand(tc.input); got.kind != tc.want {
			t.Errorf("parseUserCommand(%q).kind = %v, want %v", tc.input, got.kind, tc.want)
		}
	}
}

func TestParseUserCommandRun(t *testing.T) {
	cmd := parseUserCommand(`run docx_replace_text {"path":"a.docx","old_text":"x","new_text":"y"}`)
	if cmd.kind != commandRun {
		t.Fatalf("expected run command, got %v (%v)", cmd.kind, cmd.err)
	}
	if cmd.tool != "docx_replace_text" {
		t.Fatalf("tool = %q", cmd.tool)
	}
	if cmd.args["old_text"] != "x" || cmd.args["new_text"] != "y" {
		t.Fatalf("args = %v", cmd.args)
	}
}

func TestParseUserCommandRunWithoutArgs(t *testing.T) {
	cmd := parseUserCommand("run xlsx_write_cell")
	if cmd.kind != commandRun || cmd.tool != "xlsx_write_cell" {
		t.Fatalf("got %v tool=%q err=%v", cmd.kind, cmd.tool, cmd.err)
	}
	if len(cmd.args) != 0 {
		t.Fatalf("expected empty args, got %v", cmd.args)
	}
}

func TestParseUserCommandRunBadJSON(t *testing.T) {
	cmd := parseUserCommand(`run docx_replace_text {not json}`)
	if cmd.kind != commandInvalid {
		t.Fatalf("expected invalid command, got %v", cmd.kind)
	}
	if cmd.err == nil {
		t.Fatal("expected a parse error")
	}
}
