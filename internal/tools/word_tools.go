package tools

import (
	"context"

	"docpilot/internal/docedit"
	"docpilot/internal/docedit/word"
)

func wordExecutors(editor *docedit.Editor) []Executor {
	return []Executor{
		&docxReplaceText{editor},
		&docxInsertText{editor},
		&docxDeleteText{editor},
		&docxAddComment{editor},
	}
}

// locate pre-reads the document to label where the text sits, for the diff
// header. Best-effort: containment and parse failures are left for the
// editor to report.
func locate(editor *docedit.Editor, path, text string) string {
	abs, _, err := editor.Resolve(path)
	if err != nil {
		return ""
	}
	location, _, err := word.FindText(abs, text)
	if err != nil {
		return ""
	}
	return location
}

type docxReplaceText struct {
	editor *docedit.Editor
}

func (t *docxReplaceText) Definition() Definition {
	return Definition{
		Name:        "docx_replace_text",
		Description: "Replace text in a Word document. Requires user approval.",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"path":        map[string]any{"type": "string", "description": "Document path inside the workspace"},
				"old_text":    map[string]any{"type": "string", "description": "Exact text to replace"},
				"new_text":    map[string]any{"type": "string", "description": "Replacement text"},
				"description": map[string]any{"type": "string", "description": "Why this change is proposed"},
			},
			"required": []string{"path", "old_text", "new_text"},
		},
	}
}

func (t *docxReplaceText) Execute(ctx context.Context, args map[string]any) string {
	path, ok := argString(args, "path")
	if !ok || path == "" {
		return missing("path")
	}
	oldText, ok := argString(args, "old_text")
	if !ok || oldText == "" {
		return missing("old_text")
	}
	newText, ok := argString(args, "new_text")
	if !ok {
		return missing("new_text")
	}

	op := docedit.NewReplaceText(path, oldText, newText, optString(args, "description"))
	op.Location = locate(t.editor, path, oldText)
	return formatResult(t.editor.Execute(ctx, op))
}

type docxInsertText struct {
	editor *docedit.Editor
}

func (t *docxInsertText) Definition() Definition {
	return Definition{
		Name:        "docx_insert_text",
		Description: "Insert text into a Word document, at a paragraph index or appended at the end. Requires user approval.",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"path":            map[string]any{"type": "string"},
				"new_text":        map[string]any{"type": "string"},
				"paragraph_index": map[string]any{"type": "integer", "description": "0-based paragraph to append to; omit to append a new paragraph"},
				"description":     map[string]any{"type": "string"},
			},
			"required": []string{"path", "new_text"},
		},
	}
}

func (t *docxInsertText) Execute(ctx context.Context, args map[string]any) string {
	path, ok := argString(args, "path")
	if !ok || path == "" {
		return missing("path")
	}
	newText, ok := argString(args, "new_text")
	if !ok || newText == "" {
		return missing("new_text")
	}
	index := -1
	if v, ok := argInt(args, "paragraph_index"); ok {
		index = v
	}

	op := docedit.NewInsertText(path, newText, index, optString(args, "description"))
	return formatResult(t.editor.Execute(ctx, op))
}

type docxDeleteText struct {
	editor *docedit.Editor
}

func (t *docxDeleteText) Definition() Definition {
	return Definition{
		Name:        "docx_delete_text",
		Description: "Delete text from a Word document. Requires user approval.",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"path":        map[string]any{"type": "string"},
				"old_text":    map[string]any{"type": "string", "description": "Exact text to delete"},
				"description": map[string]any{"type": "string"},
			},
			"required": []string{"path", "old_text"},
		},
	}
}

func (t *docxDeleteText) Execute(ctx context.Context, args map[string]any) string {
	path, ok := argString(args, "path")
	if !ok || path == "" {
		return missing("path")
	}
	oldText, ok := argString(args, "old_text")
	if !ok || oldText == "" {
		return missing("old_text")
	}

	op := docedit.NewDeleteText(path, oldText, optString(args, "description"))
	op.Location = locate(t.editor, path, oldText)
	return formatResult(t.editor.Execute(ctx, op))
}

type docxAddComment struct {
	editor *docedit.Editor
}

func (t *docxAddComment) Definition() Definition {
	return Definition{
		Name:        "docx_add_comment",
		Description: "Add a comment to a Word document. Requires user approval.",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"path":        map[string]any{"type": "string"},
				"text":        map[string]any{"type": "string", "description": "Comment text"},
				"description": map[string]any{"type": "string"},
			},
			"required": []string{"path", "text"},
		},
	}
}

func (t *docxAddComment) Execute(ctx context.Context, args map[string]any) string {
	path, ok := argString(args, "path")
	if !ok || path == "" {
		return missing("path")
	}
	text, ok := argString(args, "text")
	if !ok || text == "" {
		return missing("text")
	}

	op := docedit.NewAddComment(path, text, optString(args, "description"))
	return formatResult(t.editor.Execute(ctx, op))
}
