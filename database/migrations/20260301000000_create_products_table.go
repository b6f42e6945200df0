package migrations

import (
	"gorm.io/gorm"

	"github.com/shashiranjanraj/mayorista/app/models"
	"github.com/shashiranjanraj/mayorista/pkg/migration"
)

func init() {
	migration.Register("20260301000000_create_products_table", &CreateProductsTable{})
}

// CreateProductsTable creates products with the (sort_order, id) listing
// index and the unique SKU index declared on the model.
type CreateProductsTable struct{}

func (m *CreateProductsTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Product{})
}

func (m *CreateProductsTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("products")
}
