// Package jsonstore keeps orders and the executor registry in two
// human-readable JSON files. A unit of work holds the store lock from Begin
// until Commit or Rollback, so events touching the store are handled one at a
// time; Commit rewrites only the collections that changed.
package jsonstore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"studydesk/internal/core/ports"
)

// ErrNoActiveTransaction is returned by Commit and Rollback outside Begin.
var ErrNoActiveTransaction = errors.New("no active transaction")

// Default file names inside a data directory.
const (
	OrdersFile    = "orders.json"
	ExecutorsFile = "executors.json"
)

// sequenceSuffix turns the orders file name into the id counter file name,
// e.g. orders.json -> orders.json.seq.
const sequenceSuffix = ".seq"

// NewDirStore keeps both files in dir under their default names.
func NewDirStore(dir string, logger *slog.Logger) *Store {
	return NewStore(filepath.Join(dir, OrdersFile), filepath.Join(dir, ExecutorsFile), logger)
}

// Store is a ports.UnitOfWorkFactory over the orders and executors files.
type Store struct {
	orders    *File[OrderRecord]
	executors *File[ExecutorRecord]
	sequence  *Sequence
	lock      chan struct{}
}

func NewStore(ordersPath, executorsPath string, logger *slog.Logger) *Store {
	logger = logger.With("component", "JSONStore")
	return &Store{
		orders:    NewFile[OrderRecord](ordersPath, logger),
		executors: NewFile[ExecutorRecord](executorsPath, logger),
		sequence:  NewSequence(ordersPath+sequenceSuffix, logger),
		lock:      make(chan struct{}, 1),
	}
}

func (s *Store) Create() ports.UnitOfWork {
	return &UnitOfWork{store: s}
}

// UnitOfWork works on in-memory copies of both collections loaded by Begin.
type UnitOfWork struct {
	store  *Store
	active bool

	orders         []OrderRecord
	executors      []ExecutorRecord
	lastOrderID    int64
	ordersDirty    bool
	executorsDirty bool
	sequenceDirty  bool
}

// Begin waits for the store lock and loads both files. A second Begin on the
// same unit of work is a no-op.
func (uow *UnitOfWork) Begin(ctx context.Context) error {
	if uow.active {
		return nil
	}

	select {
	case uow.store.lock <- struct{}{}:
	case <-ctx.Done():
		return ctx.Err()
	}

	orders, err := uow.store.orders.LoadAll()
	if err != nil {
		uow.release()
		return err
	}
	executors, err := uow.store.executors.LoadAll()
	if err != nil {
		uow.release()
		return err
	}
	lastOrderID, err := uow.store.sequence.Load()
	if err != nil {
		uow.release()
		return err
	}

	for i := range orders {
		orders[i].upgrade()
	}

	uow.active = true
	uow.orders = orders
	uow.executors = executors
	uow.lastOrderID = lastOrderID
	uow.ordersDirty = false
	uow.executorsDirty = false
	uow.sequenceDirty = false
	return nil
}

func (uow *UnitOfWork) Commit(_ context.Context) error {
	if !uow.active {
		return ErrNoActiveTransaction
	}
	defer uow.release()

	if uow.ordersDirty {
		if err := uow.store.orders.SaveAll(uow.orders); err != nil {
			return fmt.Errorf("commit orders: %w", err)
		}
	}
	if uow.executorsDirty {
		if err := uow.store.executors.SaveAll(uow.executors); err != nil {
			return fmt.Errorf("commit executors: %w", err)
		}
	}
	if uow.sequenceDirty {
		if err := uow.store.sequence.Save(uow.lastOrderID); err != nil {
			return fmt.Errorf("commit sequence: %w", err)
		}
	}
	return nil
}

func (uow *UnitOfWork) Rollback(_ context.Context) error {
	if !uow.active {
		return ErrNoActiveTransaction
	}
	uow.release()
	return nil
}

func (uow *UnitOfWork) OrderRepository() ports.OrderRepository {
	return &OrderRepository{uow: uow}
}

func (uow *UnitOfWork) ExecutorRepository() ports.ExecutorRepository {
	return &ExecutorRepository{uow: uow}
}

func (uow *UnitOfWork) release() {
	uow.active = false
	uow.orders = nil
	uow.executors = nil
	<-uow.store.lock
}

func (uow *UnitOfWork) ensureActive() error {
	if !uow.active {
		return ErrNoActiveTransaction
	}
	return nil
}
