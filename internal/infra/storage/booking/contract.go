package booking

import (
	"context"
	"database/sql"

	"github.com/agendahub/scheduling-service/pkg/dbmetrics"
)

// Reuse the dbmetrics executor interfaces so the repository works on a bare
// *sql.DB, an instrumented wrapper, or a transaction from the context.
type DBExecutor = dbmetrics.DBExecutor
type TxExecutor = dbmetrics.TxExecutor

// TxBeginner starts transactions. Supports *sql.DB and *dbmetrics.DB.
type TxBeginner interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (TxExecutor, error)
}
