// (c) 2019-2020, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package client

import (
	"context"
	"fmt"
	"time"

	"github.com/ava-labs/avalanchego/ids"

	"github.com/sambitsargam/QubiLearn/qubicvm"
)

// AwaitTerminal polls [txID] every [interval] until it is confirmed or
// failed. A failed transaction is returned without an error.
func AwaitTerminal(ctx context.Context, c Client, txID ids.ID, interval time.Duration) (qubicvm.Transaction, error) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		tx, err := c.GetTransaction(ctx, txID)
		if err != nil {
			return qubicvm.Transaction{}, err
		}
		if tx.Status.Terminal() {
			return tx, nil
		}

		select {
		case <-ctx.Done():
			return tx, fmt.Errorf("%s still %s: %w", txID, tx.Status, ctx.Err())
		case <-ticker.C:
		}
	}
}
