package git

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/bnema/mini-coderbrain/internal/ports"
)

const DefaultTimeout = 3 * time.Second

var ErrUnavailable = errors.New("git command unavailable")

type runFunc func(ctx context.Context, dir string, args ...string) (stdout string, stderr string, err error)

// Client answers branch and working-tree questions by shelling out to git.
// Every call is bounded by timeout.
type Client struct {
	binary  string
	dir     string
	timeout time.Duration
	run     runFunc
}

var _ ports.VCS = (*Client)(nil)

func NewClient(binary, dir string, timeout time.Duration) *Client {
	if strings.TrimSpace(binary) == "" {
		binary = "git"
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	c := &Client{binary: binary, dir: dir, timeout: timeout}
	c.run = c.runGitCommand
	return c
}

func (c *Client) CurrentBranch(ctx context.Context) (string, error) {
	stdout, err := c.exec(ctx, "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return "", err
	}

	branch := strings.TrimSpace(stdout)
	if branch == "" {
		return "", errors.New("git rev-parse returned an empty branch")
	}

	return branch, nil
}

// UncommittedChanges counts entries in the porcelain status output.
func (c *Client) UncommittedChanges(ctx context.Context) (int, error) {
	stdout, err := c.exec(ctx, "status", "--porcelain")
	if err != nil {
		return 0, err
	}

	trimmed := strings.TrimSpace(stdout)
	if trimmed == "" {
		return 0, nil
	}

	return len(strings.Split(trimmed, "\n")), nil
}

func (c *Client) exec(ctx context.Context, args ...string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	stdout, stderr, err := c.run(ctx, c.dir, args...)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", formatError(args, ctxErr, stderr)
		}
		return "", formatError(args, err, stderr)
	}

	return stdout, nil
}

func (c *Client) runGitCommand(ctx context.Context, dir string, args ...string) (string, string, error) {
	path, err := exec.LookPath(c.binary)
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return "", "", ErrUnavailable
		}
		return "", "", fmt.Errorf("locate git command: %w", err)
	}

	cmd := exec.CommandContext(ctx, path, args...)
	cmd.Dir = dir

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err = cmd.Run()
	return stdout.String(), strings.TrimSpace(stderr.String()), err
}

func formatError(args []string, err error, stderr string) error {
	op := strings.Join(args, " ")
	if stderr == "" {
		return fmt.Errorf("git %s: %w", op, err)
	}

	return fmt.Errorf("git %s: %w: %s", op, err, stderr)
}
