package ports

import "context"

type VCS interface {
	CurrentBranch(ctx context.Context) (string, error)
	UncommittedChanges(ctx context.Context) (int, error)
}
