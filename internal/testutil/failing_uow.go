package testutil

import (
	"context"
	"database/sql"
	"strings"

	"github.com/alexanderramin/agencyops/internal/db"
)

// FailingUoW behaves like the real unit of work but fails the Nth document
// write of every transaction with Err. When Verb is set ("INSERT", "DELETE",
// "UPDATE") only statements of that kind are counted. Reads are never failed.
type FailingUoW struct {
	DB   *sql.DB
	Nth  int
	Verb string
	Err  error
}

func (u *FailingUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	return db.NewSQLiteUnitOfWork(u.DB).WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return fn(ctx, &failingTx{DBTX: tx, uow: u})
	})
}

type failingTx struct {
	db.DBTX
	uow  *FailingUoW
	seen int
}

func (t *failingTx) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	if t.counts(query) {
		t.seen++
		if t.seen == t.uow.Nth {
			return nil, t.uow.Err
		}
	}
	return t.DBTX.ExecContext(ctx, query, args...)
}

func (t *failingTx) counts(query string) bool {
	if t.uow.Verb == "" {
		return true
	}
	return strings.HasPrefix(strings.ToUpper(strings.TrimSpace(query)), t.uow.Verb)
}
