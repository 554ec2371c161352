package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/bnema/mini-coderbrain/internal/application"
	"github.com/spf13/cobra"
)

// maxHookStdinBytes bounds the payload decoder. Pasted prompts can run to
// several megabytes; only the audit copy of a prompt is shortened.
const maxHookStdinBytes = 64 << 20

// hookInput is the JSON the host sends on stdin to every hook.
type hookInput struct {
	CWD           string `json:"cwd"`
	SessionID     string `json:"session_id"`
	HookEventName string `json:"hook_event_name"`
	Prompt        string `json:"prompt"`
	Source        string `json:"source"`
}

// hookOutput is the envelope the host reads from stdout.
type hookOutput struct {
	HookSpecificOutput *hookSpecific `json:"hookSpecificOutput,omitempty"`
}

type hookSpecific struct {
	HookEventName     string `json:"hookEventName"`
	AdditionalContext string `json:"additionalContext"`
}

type hookHandler func(ctx context.Context, svc *application.HookService, input hookInput) application.HookOutput

func newHookCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hook",
		Short: "Lifecycle hook handlers invoked by the host",
		Args:  cobra.NoArgs,
	}

	// Called by the host, not by people.
	for _, sub := range []*cobra.Command{
		newHookSessionStartCmd(opts),
		newHookPromptCmd(opts),
		newHookStopCmd(opts),
	} {
		sub.Hidden = true
		cmd.AddCommand(sub)
	}

	return cmd
}

func newHookSessionStartCmd(opts *rootOptions) *cobra.Command {
	return newHookSubcommand(opts, "session-start", "Inject memory-bank context at session start",
		func(ctx context.Context, svc *application.HookService, input hookInput) application.HookOutput {
			return svc.SessionStart(ctx, application.SessionStartCommand{SessionID: input.SessionID, Source: input.Source})
		})
}

func newHookPromptCmd(opts *rootOptions) *cobra.Command {
	return newHookSubcommand(opts, "user-prompt-submit", "Count the turn and inject the status footer",
		func(ctx context.Context, svc *application.HookService, input hookInput) application.HookOutput {
			return svc.UserPromptSubmit(ctx, application.UserPromptCommand{SessionID: input.SessionID, Prompt: input.Prompt})
		})
}

func newHookStopCmd(opts *rootOptions) *cobra.Command {
	return newHookSubcommand(opts, "stop", "Record a session update when the session was busy",
		func(ctx context.Context, svc *application.HookService, input hookInput) application.HookOutput {
			svc.Stop(ctx, application.StopCommand{SessionID: input.SessionID})
			return application.HookOutput{}
		})
}

func newHookSubcommand(opts *rootOptions, use, short string, handle hookHandler) *cobra.Command {
	return &cobra.Command{
		Use:                use,
		Short:              short,
		Args:               cobra.ArbitraryArgs,
		SilenceUsage:       true,
		SilenceErrors:      true,
		FParseErrWhitelist: cobra.FParseErrWhitelist{UnknownFlags: true},
		RunE: func(cmd *cobra.Command, _ []string) error {
			runHook(cmd, opts, use, handle)
			return nil
		},
	}
}

// runHook never fails: the host must only ever see exit 0 and either one
// envelope or nothing on stdout.
func runHook(cmd *cobra.Command, opts *rootOptions, hook string, handle hookHandler) {
	defer func() {
		if r := recover(); r != nil {
			slog.Default().Error("hook panicked", "hook", hook, "panic", r)
		}
	}()

	input, err := readHookInput(cmd.InOrStdin())
	if err != nil {
		slog.Default().Debug("hook input rejected", "hook", hook, "error", err)
		return
	}

	projectDir, err := opts.projectDirFor(input.CWD)
	if err != nil {
		slog.Default().Debug("hook project directory unresolved", "hook", hook, "error", err)
		return
	}

	app, err := wireApp(projectDir, opts.configFile, cmd.ErrOrStderr())
	if err != nil {
		slog.Default().Debug("hook wiring failed", "hook", hook, "error", err)
		return
	}
	defer app.close()

	out := handle(cmd.Context(), app.service, input)
	if out.Empty() {
		return
	}

	payload, err := encodeHookOutput(out)
	if err != nil {
		app.logger.Warn("hook output not encoded", "hook", hook, "error", err)
		return
	}

	if _, err := cmd.OutOrStdout().Write(payload); err != nil {
		app.logger.Warn("hook output not written", "hook", hook, "error", err)
	}
}

var errHookInputNotObject = errors.New("hook input is not a JSON object")

func readHookInput(r io.Reader) (hookInput, error) {
	var input *hookInput
	if err := json.NewDecoder(io.LimitReader(r, maxHookStdinBytes)).Decode(&input); err != nil {
		return hookInput{}, fmt.Errorf("decode hook input: %w", err)
	}
	if input == nil {
		return hookInput{}, errHookInputNotObject
	}
	return *input, nil
}

func encodeHookOutput(out application.HookOutput) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(hookOutput{HookSpecificOutput: &hookSpecific{
		HookEventName:     out.EventName,
		AdditionalContext: out.AdditionalContext,
	}}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
