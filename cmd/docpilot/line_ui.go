package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"docpilot/internal/docedit/decision"
	"docpilot/internal/docedit/diffview"
)

// linePresenter answers approval requests inline: print the colorized diff,
// read one line, resolve. It runs on the same goroutine that reads user
// commands, which is safe because the worker asking the question is always
// a different goroutine.
type linePresenter struct {
	channel *decision.Channel
	in      *bufio.Reader
	out     io.Writer
}

func (p *linePresenter) Present(req *decision.Request) error {
	separator := styleGray.Render(strings.Repeat("─", 60))
	fmt.Fprintf(p.out, "\n%s\n", separator)
	fmt.Fprintf(p.out, "%s %s\n", styleBold.Render("Proposed Edit:"), req.KindLabel)
	fmt.Fprintf(p.out, "%s %s\n", styleBold.Render("File:"), req.Path)
	if req.Description != "" {
		fmt.Fprintf(p.out, "%s %s\n", styleBold.Render("Description:"), req.Description)
	}
	if req.Summary != "" {
		fmt.Fprintf(p.out, "%s %s\n", styleBold.Render("Changes:"), req.Summary)
	}
	fmt.Fprintf(p.out, "%s\n%s\n%s\n", separator, diffview.Colorize(req.Diff), separator)
	fmt.Fprint(p.out, styleBold.Render("Apply changes? [y/N] "))

	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		p.channel.Resolve(req, false)
		fmt.Fprintln(p.out)
		return nil
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	p.channel.Resolve(req, answer == "y" || answer == "yes")
	return nil
}

// runLineUI is the default surface: a read-eval loop over stdin that
// executes tools and, in presenter mode, renders approval prompts inline.
// Plain mode registers no presenter so the channel falls back to its own
// direct prompt on the same streams.
func runLineUI(app *App, in io.Reader, out, errOut io.Writer, withPresenter bool) error {
	reader := bufio.NewReader(in)
	if withPresenter {
		presenter := &linePresenter{channel: app.Channel, in: reader, out: out}
		app.Channel.SetPresenter(presenter)
		defer app.Channel.SetPresenter(nil)
	} else {
		// The fallback prompt must read through the same buffer as the
		// command loop, or a piped answer line is swallowed by whichever
		// reader filled its buffer first.
		app.Channel.SetInput(reader)
	}

	printLineHeader(app, out)

	for {
		fmt.Fprint(out, styleBoldGreen.Render("❯ "))
		line, err := reader.ReadString('\n')
		if err != nil {
			if line == "" {
				fmt.Fprintln(out)
				return nil
			}
		}

		cmd := parseUserCommand(line)
		switch cmd.kind {
		case commandEmpty:
			continue
		case commandQuit:
			return nil
		case commandClear:
			clearScreen(out)
			printLineHeader(app, out)
		case commandHelp:
			fmt.Fprintln(out, helpText)
		case commandTools:
			for _, def := range app.Registry.List() {
				fmt.Fprintf(out, "  %-22s %s\n", styleGreen.Render(def.Name), def.Description)
			}
		case commandReset:
			app.Registry.Reset()
			fmt.Fprintln(out, styleGray.Render("approval ledger cleared"))
		case commandRun:
			result := app.Registry.Execute(context.Background(), cmd.tool, cmd.args)
			if strings.HasPrefix(result, "Error: ") {
				fmt.Fprintln(errOut, styleError.Render(result))
			} else {
				fmt.Fprintln(out, result)
			}
		case commandInvalid:
			fmt.Fprintln(errOut, styleWarning.Render(cmd.err.Error()))
		}

		if err != nil {
			return nil
		}
	}
}

func printLineHeader(app *App, out io.Writer) {
	fmt.Fprintln(out, styleBold.Render("docpilot")+styleGray.Render(" · approval-gated document edits"))
	fmt.Fprintf(out, "%s %s\n", styleGray.Render("workspace:"), app.Settings.Workspace)
	fmt.Fprintln(out, styleGray.Render("type /help for commands"))
}

// clearScreen emits the ANSI clear sequence when stdout is a terminal;
// under a pipe it just prints a blank line.
func clearScreen(out io.Writer) {
	if f, ok := out.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(out, "\033[2J\033[H")
		return
	}
	fmt.Fprintln(out)
}
