package repository

import "context"

// UnitOfWork runs fn inside a single database transaction. Every repository
// call made with the context fn receives joins that transaction, so a
// settlement's stock mutations, header, payments, cheque and credit
// adjustment commit or roll back together.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}
