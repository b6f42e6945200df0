package models

import (
	"strings"
	"time"
)

// Gender is the audience a product is cut for.
type Gender string

const (
	GenderMen    Gender = "men"
	GenderWomen  Gender = "women"
	GenderUnisex Gender = "unisex"
)

// ProductType is the product's construction category.
type ProductType string

const (
	TypeCommon     ProductType = "common"
	TypeReinforced ProductType = "reinforced"
	TypePVC        ProductType = "pvc"
	TypeDesigned   ProductType = "designed"
	TypeOther      ProductType = "other"
)

var (
	Genders      = []Gender{GenderMen, GenderWomen, GenderUnisex}
	ProductTypes = []ProductType{TypeCommon, TypeReinforced, TypePVC, TypeDesigned, TypeOther}
)

func (g Gender) Valid() bool {
	for _, v := range Genders {
		if g == v {
			return true
		}
	}
	return false
}

func (t ProductType) Valid() bool {
	for _, v := range ProductTypes {
		if t == v {
			return true
		}
	}
	return false
}

// Product is one catalog entry. Products are never hard-deleted;
// IsActive=false hides them from the public catalog.
type Product struct {
	ID          string      `gorm:"primaryKey;size:36;index:idx_products_listing,priority:2" json:"id"          bson:"_id"`
	Name        string      `gorm:"size:255;not null"                                        json:"name"        bson:"name"`
	Description string      `gorm:"type:text"                                                json:"description" bson:"description"`
	SKU         string      `gorm:"size:64;not null;uniqueIndex:idx_products_sku"            json:"sku"         bson:"sku"`
	Gender      Gender      `gorm:"size:16;not null"                                         json:"gender"      bson:"gender"`
	Type        ProductType `gorm:"size:16;not null"                                         json:"type"        bson:"type"`
	ImageURL    string      `gorm:"size:1024"                                                json:"imageUrl"    bson:"imageUrl"`
	IsActive    bool        `gorm:"not null;default:true;index"                              json:"isActive"    bson:"isActive"`
	SortOrder   int         `gorm:"not null;default:0;index:idx_products_listing,priority:1" json:"sortOrder"   bson:"sortOrder"`
	CreatedAt   *time.Time  `gorm:"autoCreateTime:false"                                     json:"createdAt"   bson:"createdAt,omitempty"`
	UpdatedAt   *time.Time  `gorm:"autoUpdateTime:false"                                     json:"updatedAt"   bson:"updatedAt,omitempty"`
}

// ProductInput carries every field a new product needs. ID, SortOrder and
// timestamps are assigned by the store.
type ProductInput struct {
	Name        string      `json:"name"        validate:"required,min=2,max=255"`
	Description string      `json:"description" validate:"required,min=10"`
	SKU         string      `json:"sku"         validate:"required,min=2,max=64,regex=^[A-Za-z0-9_-]+$"`
	Gender      Gender      `json:"gender"      validate:"required,in=men,women,unisex"`
	Type        ProductType `json:"type"        validate:"required,in=common,reinforced,pvc,designed,other"`
	ImageURL    string      `json:"imageUrl"    validate:"nullable,url"`
	IsActive    bool        `json:"isActive"`
}

// ProductPatch is a partial update. Nil fields are left untouched.
type ProductPatch struct {
	Name        *string      `json:"name,omitempty"`
	Description *string      `json:"description,omitempty"`
	SKU         *string      `json:"sku,omitempty"`
	Gender      *Gender      `json:"gender,omitempty"`
	Type        *ProductType `json:"type,omitempty"`
	ImageURL    *string      `json:"imageUrl,omitempty"`
	IsActive    *bool        `json:"isActive,omitempty"`
}

// Empty reports whether the patch would change nothing.
func (p ProductPatch) Empty() bool {
	return p.Name == nil && p.Description == nil && p.SKU == nil &&
		p.Gender == nil && p.Type == nil && p.ImageURL == nil && p.IsActive == nil
}

// Apply merges the patch into a copy of prod.
func (p ProductPatch) Apply(prod Product) Product {
	if p.Name != nil {
		prod.Name = *p.Name
	}
	if p.Description != nil {
		prod.Description = *p.Description
	}
	if p.SKU != nil {
		prod.SKU = *p.SKU
	}
	if p.Gender != nil {
		prod.Gender = *p.Gender
	}
	if p.Type != nil {
		prod.Type = *p.Type
	}
	if p.ImageURL != nil {
		prod.ImageURL = *p.ImageURL
	}
	if p.IsActive != nil {
		prod.IsActive = *p.IsActive
	}
	return prod
}

// Columns returns the patch as a column → value map for SQL updates.
func (p ProductPatch) Columns() map[string]any {
	cols := make(map[string]any, 7)
	if p.Name != nil {
		cols["name"] = *p.Name
	}
	if p.Description != nil {
		cols["description"] = *p.Description
	}
	if p.SKU != nil {
		cols["sku"] = *p.SKU
	}
	if p.Gender != nil {
		cols["gender"] = *p.Gender
	}
	if p.Type != nil {
		cols["type"] = *p.Type
	}
	if p.ImageURL != nil {
		cols["image_url"] = *p.ImageURL
	}
	if p.IsActive != nil {
		cols["is_active"] = *p.IsActive
	}
	return cols
}

// Trim normalises free-text fields in place.
func (in *ProductInput) Trim() {
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)
	in.SKU = strings.TrimSpace(in.SKU)
	in.ImageURL = strings.TrimSpace(in.ImageURL)
}
