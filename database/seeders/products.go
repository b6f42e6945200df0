package seeders

import (
	"context"
	"errors"
	"fmt"

	"github.com/shashiranjanraj/mayorista/app/models"
	"github.com/shashiranjanraj/mayorista/app/repositories"
)

func init() {
	Register("products", SeedProducts)
}

const sampleImage = "https://res.cloudinary.com/demo/image/upload/v1/mayorista/products/sample.jpg"

// SampleProducts is the demo catalog.
var SampleProducts = []models.ProductInput{
	{Name: "Guante de limpieza clásico", Description: "Guante de látex para limpieza doméstica, puño largo.", SKU: "LIM-001", Gender: models.GenderUnisex, Type: models.TypeCommon},
	{Name: "Guante reforzado industrial", Description: "Doble capa en palma y dedos para trabajo pesado.", SKU: "IND-010", Gender: models.GenderMen, Type: models.TypeReinforced},
	{Name: "Guante PVC químico", Description: "Resistente a solventes y ácidos suaves, puño 35 cm.", SKU: "PVC-100", Gender: models.GenderUnisex, Type: models.TypePVC},
	{Name: "Guante estampado floral", Description: "Látex con diseño floral y interior afelpado.", SKU: "DIS-200", Gender: models.GenderWomen, Type: models.TypeDesigned},
	{Name: "Guante nitrilo descartable", Description: "Caja de 100 unidades, sin polvo, talle M.", SKU: "NIT-300", Gender: models.GenderUnisex, Type: models.TypeOther},
	{Name: "Guante jardinería", Description: "Palma recubierta y dorso transpirable para jardín.", SKU: "JAR-400", Gender: models.GenderWomen, Type: models.TypeReinforced},
	{Name: "Guante PVC corto", Description: "Versión de puño corto para cocina y lavado.", SKU: "PVC-101", Gender: models.GenderWomen, Type: models.TypePVC},
}

// SeedProducts creates the sample products whose SKU is not taken yet.
func SeedProducts(ctx context.Context, store repositories.ProductStore) error {
	for _, in := range SampleProducts {
		_, err := store.FindBySKU(ctx, in.SKU)
		if err == nil {
			continue
		}
		if !errors.Is(err, repositories.ErrProductNotFound) {
			return err
		}

		in.ImageURL = sampleImage
		in.IsActive = true
		if _, err := store.Create(ctx, in); err != nil {
			return fmt.Errorf("create %s: %w", in.SKU, err)
		}
	}
	return nil
}
