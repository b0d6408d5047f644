// Package catalog contains the core domain model for the kitchen catalog:
// ingredients, appliances, and the substitution/adaptation edges between them.
package catalog

// Ingredient represents a catalog ingredient
type Ingredient struct {
	ID          string
	Name        string
	Category    string
	Subcategory string
	Synonyms    []string
}

// Validate validates the ingredient
func (i Ingredient) Validate() error {
	if i.ID == "" {
		return ErrEmptyItemID
	}
	if i.Name == "" {
		return ErrEmptyItemName
	}
	return nil
}

// Appliance represents a catalog appliance. Functionalities describe what the
// appliance can do rather than what it is; several appliances may share one.
type Appliance struct {
	ID              string
	Name            string
	Category        string
	Subcategory     string
	Synonyms        []string
	Functionalities []string
}

// Validate validates the appliance
func (a Appliance) Validate() error {
	if a.ID == "" {
		return ErrEmptyItemID
	}
	if a.Name == "" {
		return ErrEmptyItemName
	}
	return nil
}

// CanDo reports whether the appliance provides the given functionality
func (a Appliance) CanDo(functionality string) bool {
	for _, f := range a.Functionalities {
		if f == functionality {
			return true
		}
	}
	return false
}

// InventoryItem represents pantry stock for one ingredient
type InventoryItem struct {
	IngredientID string
	Quantity     float64
	Unit         string
}

// Validate validates the inventory item
func (it InventoryItem) Validate() error {
	if it.IngredientID == "" {
		return ErrEmptyItemID
	}
	if it.Quantity < 0 {
		return ErrNegativeQuantity
	}
	return nil
}
