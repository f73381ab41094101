package customer

import (
	"context"
	"errors"
	"fmt"

	"customer-service/internal/domain"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type addressRecord struct {
	ID       int64 `gorm:"primaryKey;autoIncrement"`
	Number   int   `gorm:"not null;default:0"`
	Street   string
	City     string
	Province string
	Zip      string
	Country  string
}

func (addressRecord) TableName() string { return "addresses" }

type customerRecord struct {
	ID        int64 `gorm:"primaryKey;autoIncrement"`
	Firstname string
	Lastname  string
	Email     string
	Phone     string
	AddressID int64         `gorm:"not null;uniqueIndex"`
	Address   addressRecord `gorm:"foreignKey:AddressID"`
}

func (customerRecord) TableName() string { return "customers" }

// Models lists the gorm models backing this repository, for AutoMigrate on
// databases that are not managed by the SQL migrations.
func Models() []any {
	return []any{&addressRecord{}, &customerRecord{}}
}

type gormRepo struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewGorm returns a Repository backed by gorm. Works with any dialector whose
// schema matches the SQL migrations or Models.
func NewGorm(db *gorm.DB, logger *zap.Logger) Repository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &gormRepo{db: db, logger: logger.Named("customer.gorm")}
}

// List runs the equivalent of the "find all customers" named query.
func (r *gormRepo) List(ctx context.Context) ([]domain.Customer, error) {
	var records []customerRecord
	if err := r.db.WithContext(ctx).Preload("Address").Order("id").Find(&records).Error; err != nil {
		return nil, err
	}
	customers := make([]domain.Customer, 0, len(records))
	for _, rec := range records {
		customers = append(customers, rec.toDomain())
	}
	return customers, nil
}

func (r *gormRepo) Get(ctx context.Context, id int64) (*domain.Customer, error) {
	rec, err := find(r.db.WithContext(ctx), id)
	if err != nil {
		return nil, err
	}
	c := rec.toDomain()
	return &c, nil
}

func (r *gormRepo) Create(ctx context.Context, c domain.Customer) (*domain.Customer, error) {
	rec := fromDomain(c)
	rec.ID, rec.Address.ID = 0, 0
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&rec.Address).Error; err != nil {
			return fmt.Errorf("insert address: %w", err)
		}
		rec.AddressID = rec.Address.ID
		if err := tx.Omit(clause.Associations).Create(&rec).Error; err != nil {
			return fmt.Errorf("insert customer: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	r.logger.Debug("customer stored", zap.Int64("customer_id", rec.ID), zap.Int64("address_id", rec.AddressID))
	out := rec.toDomain()
	return &out, nil
}

func (r *gormRepo) Update(ctx context.Context, id int64, fn MutateFunc) (*domain.Customer, error) {
	var out domain.Customer
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rec, err := find(lockForUpdate(tx), id)
		if err != nil {
			return err
		}
		c := rec.toDomain()
		if err := fn(&c); err != nil {
			return err
		}
		merged := fromDomain(c)
		merged.ID, merged.AddressID, merged.Address.ID = rec.ID, rec.AddressID, rec.AddressID

		if err := tx.Save(&merged.Address).Error; err != nil {
			return fmt.Errorf("update address: %w", err)
		}
		if err := tx.Omit(clause.Associations).Save(&merged).Error; err != nil {
			return fmt.Errorf("update customer: %w", err)
		}
		out = merged.toDomain()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *gormRepo) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rec customerRecord
		if err := tx.Select("id", "address_id").First(&rec, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrNotFound
			}
			return err
		}
		if err := tx.Delete(&customerRecord{}, rec.ID).Error; err != nil {
			return fmt.Errorf("delete customer: %w", err)
		}
		if err := tx.Delete(&addressRecord{}, rec.AddressID).Error; err != nil {
			return fmt.Errorf("delete address: %w", err)
		}
		return nil
	})
}

func (r *gormRepo) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// lockForUpdate adds SELECT ... FOR UPDATE where the dialect supports row locks.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() != "postgres" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

func find(db *gorm.DB, id int64) (*customerRecord, error) {
	var rec customerRecord
	if err := db.Preload("Address").First(&rec, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &rec, nil
}

func (rec customerRecord) toDomain() domain.Customer {
	return domain.Customer{
		ID:        rec.ID,
		Firstname: rec.Firstname,
		Lastname:  rec.Lastname,
		Email:     rec.Email,
		Phone:     rec.Phone,
		Address: domain.Address{
			ID:       rec.Address.ID,
			Number:   rec.Address.Number,
			Street:   rec.Address.Street,
			City:     rec.Address.City,
			Province: rec.Address.Province,
			Zip:      rec.Address.Zip,
			Country:  rec.Address.Country,
		},
	}
}

func fromDomain(c domain.Customer) customerRecord {
	return customerRecord{
		ID:        c.ID,
		Firstname: c.Firstname,
		Lastname:  c.Lastname,
		Email:     c.Email,
		Phone:     c.Phone,
		AddressID: c.Address.ID,
		Address: addressRecord{
			ID:       c.Address.ID,
			Number:   c.Address.Number,
			Street:   c.Address.Street,
			City:     c.Address.City,
			Province: c.Address.Province,
			Zip:      c.Address.Zip,
			Country:  c.Address.Country,
		},
	}
}
