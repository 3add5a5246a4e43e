package cart

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/storefront/internal/client/models"
	"golang.org/x/sync/errgroup"
)

// LineOutcome is the result of pushing one guest line to the server.
type LineOutcome struct {
	ProductID models.ID
	Quantity  int
	Err       error
}

// MergeResult lists what happened to each guest line, in snapshot order.
type MergeResult struct {
	Lines []LineOutcome
}

func (r MergeResult) Merged() int {
	n := 0
	for _, l := range r.Lines {
		if l.Err == nil {
			n++
		}
	}
	return n
}

func (r MergeResult) Failed() int {
	return len(r.Lines) - r.Merged()
}

// FailedLines returns the outcomes that carry an error.
func (r MergeResult) FailedLines() []LineOutcome {
	var out []LineOutcome
	for _, l := range r.Lines {
		if l.Err != nil {
			out = append(out, l)
		}
	}
	return out
}

// SyncLocalCart moves the guest cart into the account cart. Call it once,
// right after the session has logged in.
//
// Every guest line is added to the server cart independently; a failed line
// is logged and recorded in the result but does not stop the others. The
// guest snapshot is then deleted whatever the outcome, and the in-memory
// list is reloaded from the server. Lines that failed are not retried.
func (s *Store) SyncLocalCart(ctx context.Context) (MergeResult, error) {
	var result MergeResult

	snapshot, err := s.local.Fetch(ctx)
	if err != nil {
		// Leave the snapshot in place; a later sync can still pick it up.
		s.log.Warn(ctx, "guest cart unreadable, skipping merge", "error", err)
		snapshot = nil
	}

	if len(snapshot) > 0 {
		result.Lines = s.mergeLines(ctx, snapshot)

		if err := s.local.Clear(ctx); err != nil {
			s.log.Error(ctx, "failed to delete guest cart after merge", "error", err)
		}
		s.log.Info(ctx, "guest cart merged", "merged", result.Merged(), "failed", result.Failed())
	}

	fetchErr := s.FetchCart(ctx)

	if len(snapshot) > 0 {
		s.notifier.Info("Cart synced", fmt.Sprintf("%d item(s) from your guest cart were moved to your account.", result.Merged()))
	}
	return result, fetchErr
}

func (s *Store) mergeLines(ctx context.Context, snapshot []models.LineItem) []LineOutcome {
	outcomes := make([]LineOutcome, len(snapshot))

	var g errgroup.Group
	g.SetLimit(s.mergeConcurrency)

	for i, line := range snapshot {
		outcomes[i] = LineOutcome{ProductID: line.Product.ID, Quantity: line.Quantity}
		if line.Quantity < 1 {
			outcomes[i].Err = ErrInvalidQuantity
			s.log.Warn(ctx, "skipping guest line with invalid quantity", "product_id", line.Product.ID, "quantity", line.Quantity)
			continue
		}

		g.Go(func() error {
			if err := s.remote.AddLine(ctx, line.Product.ID, line.Quantity); err != nil {
				s.log.Error(ctx, "failed to merge guest line", "product_id", line.Product.ID, "error", err)
				outcomes[i].Err = err
			}
			return nil
		})
	}

	_ = g.Wait()
	return outcomes
}
