package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Tx is a transaction with the same statement API as DB.
type Tx struct {
	runner
	sqltx *sql.Tx
}

// Raw exposes the underlying *sql.Tx.
func (t *Tx) Raw() *sql.Tx { return t.sqltx }

// ExecTx runs fn in a transaction. It commits when fn returns nil and rolls
// back when fn fails or panics; a panic is re-raised after the rollback.
// Transactions do not get the default timeout, so bound them through ctx.
//
//	err := database.ExecTx(ctx, func(tx *db.Tx) error {
//	    _, err := storage.Seed(ctx, repo.NewAdminUserRepo(tx), admin)
//	    return err
//	})
func (d *DB) ExecTx(ctx context.Context, fn func(*Tx) error) (err error) {
	sqltx, err := d.sqldb.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("indosup/db: begin: %w", d.mapErr(err))
	}

	tx := &Tx{sqltx: sqltx, runner: d.runner}
	tx.conn = sqltx
	tx.timeout = 0

	committed := false
	defer func() {
		if committed {
			return
		}
		rbErr := sqltx.Rollback()
		if p := recover(); p != nil {
			panic(p)
		}
		if rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			err = fmt.Errorf("indosup/db: rollback: %v: %w", rbErr, err)
		}
	}()

	if err = fn(tx); err != nil {
		return d.mapErr(err)
	}
	if err = sqltx.Commit(); err != nil {
		committed = true // Commit has already ended the transaction.
		return fmt.Errorf("indosup/db: commit: %w", d.mapErr(err))
	}
	committed = true
	return nil
}
