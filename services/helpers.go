package services

import (
	"context"
	"database/sql"
	"fmt"
)

// runInTx исполняет fn внутри транзакции с откатом при ошибке или панике.
// Паттерн перезаписи кеша таблиц: удаление и вставка видны читателям
// только вместе.
func runInTx(ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) error) (err error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		} else if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				err = fmt.Errorf("%w (rollback also failed: %v)", err, rbErr)
			}
		} else {
			err = tx.Commit()
		}
	}()
	return fn(tx)
}
