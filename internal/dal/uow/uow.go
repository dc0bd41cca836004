package uow

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/easyorganic/order-svc/internal/dal/interfaces/icounterrepo"
	"github.com/easyorganic/order-svc/internal/dal/interfaces/icustomerrepo"
	"github.com/easyorganic/order-svc/internal/dal/interfaces/iorderrepo"
	"github.com/easyorganic/order-svc/internal/dal/interfaces/iproductrepo"
	"github.com/easyorganic/order-svc/internal/dal/postgres"
	counterrepo "github.com/easyorganic/order-svc/internal/dal/repositories/counter/postgres"
	customerrepo "github.com/easyorganic/order-svc/internal/dal/repositories/customer/postgres"
	orderrepo "github.com/easyorganic/order-svc/internal/dal/repositories/order/postgres"
	productrepo "github.com/easyorganic/order-svc/internal/dal/repositories/product/postgres"
)

type unitOfWork struct {
	pool *pgxpool.Pool
	tx   pgx.Tx

	orderRepo    iorderrepo.IOrderRepository
	productRepo  iproductrepo.IProductRepository
	customerRepo icustomerrepo.ICustomerRepository
	counterRepo  icounterrepo.ICounterRepository
}

func NewUnitOfWork(client *postgres.Client) *unitOfWork {
	u := &unitOfWork{pool: client.Pool()}
	u.bind(client.Pool())

	return u
}

func (u *unitOfWork) bind(conn postgres.Querier) {
	u.orderRepo = orderrepo.NewPostgresOrderRepository(conn)
	u.productRepo = productrepo.NewPostgresProductRepository(conn)
	u.customerRepo = customerrepo.NewPostgresCustomerRepository(conn)
	u.counterRepo = counterrepo.NewPostgresCounterRepository(conn)
}

func (u *unitOfWork) OrderRepository() iorderrepo.IOrderRepository {
	return u.orderRepo
}

func (u *unitOfWork) ProductRepository() iproductrepo.IProductRepository {
	return u.productRepo
}

func (u *unitOfWork) CustomerRepository() icustomerrepo.ICustomerRepository {
	return u.customerRepo
}

func (u *unitOfWork) CounterRepository() icounterrepo.ICounterRepository {
	return u.counterRepo
}

// Begin opens a transaction and rebinds every repository to it.
func (u *unitOfWork) Begin(ctx context.Context) error {
	tx, err := u.pool.Begin(ctx)
	if err != nil {
		return err
	}

	u.tx = tx
	u.bind(tx)

	return nil
}

func (u *unitOfWork) Commit(ctx context.Context) error {
	if u.tx == nil {
		return nil
	}
	return u.tx.Commit(ctx)
}

func (u *unitOfWork) Rollback(ctx context.Context) error {
	if u.tx == nil {
		return nil
	}
	return u.tx.Rollback(ctx)
}
