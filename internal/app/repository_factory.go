package app

import (
	"fmt"

	identityDomain "github.com/felixgeelhaar/slotswap/internal/identity/domain"
	identityPersistence "github.com/felixgeelhaar/slotswap/internal/identity/infrastructure/persistence"
	"github.com/felixgeelhaar/slotswap/internal/shared/infrastructure/database"
	slotDomain "github.com/felixgeelhaar/slotswap/internal/slots/domain"
	slotPersistence "github.com/felixgeelhaar/slotswap/internal/slots/infrastructure/persistence"
	swapDomain "github.com/felixgeelhaar/slotswap/internal/swaps/domain"
	swapPersistence "github.com/felixgeelhaar/slotswap/internal/swaps/infrastructure/persistence"
)

// RepositoryFactory creates repositories based on the database driver.
type RepositoryFactory struct {
	conn   database.Connection
	driver database.Driver
}

// NewRepositoryFactory creates a new repository factory.
func NewRepositoryFactory(conn database.Connection) *RepositoryFactory {
	return &RepositoryFactory{
		conn:   conn,
		driver: conn.Driver(),
	}
}

// UserRepository creates a user repository for the configured driver.
func (f *RepositoryFactory) UserRepository() (identityDomain.Repository, error) {
	switch f.driver {
	case database.DriverPostgres:
		return identityPersistence.NewPostgresUserRepository(f.conn), nil
	case database.DriverSQLite:
		return identityPersistence.NewSQLiteUserRepository(f.conn), nil
	default:
		return nil, fmt.Errorf("unsupported driver: %s", f.driver)
	}
}

// SlotRepository creates a slot repository for the configured driver.
func (f *RepositoryFactory) SlotRepository() (slotDomain.Repository, error) {
	switch f.driver {
	case database.DriverPostgres:
		return slotPersistence.NewPostgresSlotRepository(f.conn), nil
	case database.DriverSQLite:
		return slotPersistence.NewSQLiteSlotRepository(f.conn), nil
	default:
		return nil, fmt.Errorf("unsupported driver: %s", f.driver)
	}
}

// SwapRepository creates a swap request repository for the configured driver.
func (f *RepositoryFactory) SwapRepository() (swapDomain.Repository, error) {
	switch f.driver {
	case database.DriverPostgres:
		return swapPersistence.NewPostgresSwapRepository(f.conn), nil
	case database.DriverSQLite:
		return swapPersistence.NewSQLiteSwapRepository(f.conn), nil
	default:
		return nil, fmt.Errorf("unsupported driver: %s", f.driver)
	}
}

// ViewRepository creates the read-side view repository for the configured driver.
func (f *RepositoryFactory) ViewRepository() (swapDomain.ViewRepository, error) {
	switch f.driver {
	case database.DriverPostgres:
		return swapPersistence.NewPostgresViewRepository(f.conn), nil
	case database.DriverSQLite:
		return swapPersistence.NewSQLiteViewRepository(f.conn), nil
	default:
		return nil, fmt.Errorf("unsupported driver: %s", f.driver)
	}
}

// Driver returns the database driver type.
func (f *RepositoryFactory) Driver() database.Driver {
	return f.driver
}
