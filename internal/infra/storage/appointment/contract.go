package appointment

import (
	"context"
	"database/sql"

	"github.com/apaddicto/APD-BookingService/pkg/dbmetrics"
)

// Re-export the dbmetrics executor interfaces for readability
type DBExecutor = dbmetrics.DBExecutor
type TxExecutor = dbmetrics.TxExecutor

// TxBeginner opens transactions. Satisfied by *dbmetrics.DB.
type TxBeginner interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (TxExecutor, error)
}
