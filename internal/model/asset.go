package model

import (
	"strings"
	"time"
)

// AssetStatus is the lifecycle state of an asset as reported by the API.
type AssetStatus string

const (
	AssetAvailable AssetStatus = "available"
	AssetBorrowed  AssetStatus = "borrowed"
	AssetInRepair  AssetStatus = "in_repair"
	AssetUnlisted  AssetStatus = "unlisted"
)

// DefaultCategory is applied to assets saved without a category.
const DefaultCategory = "Electronics"

// Asset is a physical item owned by a single user.
type Asset struct {
	ID                   string      `json:"id,omitempty"`
	ItemName             string      `json:"itemName"`
	BrandName            string      `json:"brandName,omitempty"`
	Category             string      `json:"category,omitempty"`
	PurchaseDate         *time.Time  `json:"purchaseDate,omitempty"`
	PurchaseCost         *float64    `json:"purchaseCost,omitempty"`
	PurchaseLocation     string      `json:"purchaseLocation,omitempty"`
	CurrentLocation      string      `json:"currentLocation,omitempty"`
	Images               []string    `json:"images,omitempty"`
	ConditionDescription string      `json:"conditionDescription,omitempty"`
	Status               AssetStatus `json:"status,omitempty"`
	OwnerUserID          string      `json:"ownerUserId,omitempty"`
	Favorite             bool        `json:"favorite"`
}

// PrimaryImage returns the first image URL, or "" when there is none.
func (a Asset) PrimaryImage() string {
	if len(a.Images) == 0 {
		return ""
	}
	return a.Images[0]
}

// Snapshot copies the attributes that maintenance tasks denormalize.
func (a Asset) Snapshot() AssetSnapshot {
	category := a.Category
	if strings.TrimSpace(category) == "" {
		category = DefaultCategory
	}
	var cost *float64
	if a.PurchaseCost != nil {
		v := *a.PurchaseCost
		cost = &v
	}
	return AssetSnapshot{
		BrandName:        strings.TrimSpace(a.BrandName),
		ProductName:      strings.TrimSpace(a.ItemName),
		AssetCategory:    category,
		PurchaseCost:     cost,
		PurchaseLocation: strings.TrimSpace(a.PurchaseLocation),
	}
}

// Normalized returns a copy of a ready to be written: optional strings
// are trimmed (empty ones are then omitted by the JSON encoder), the
// category gets its default and blank image URLs are dropped.
func (a Asset) Normalized() Asset {
	n := a
	n.ItemName = strings.TrimSpace(a.ItemName)
	n.BrandName = strings.TrimSpace(a.BrandName)
	n.Category = strings.TrimSpace(a.Category)
	if n.Category == "" {
		n.Category = DefaultCategory
	}
	n.PurchaseLocation = strings.TrimSpace(a.PurchaseLocation)
	n.CurrentLocation = strings.TrimSpace(a.CurrentLocation)
	n.ConditionDescription = strings.TrimSpace(a.ConditionDescription)

	n.Images = nil
	for _, img := range a.Images {
		if img = strings.TrimSpace(img); img != "" {
			n.Images = append(n.Images, img)
		}
	}
	return n
}
