package sqlite

import (
	"fmt"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"

	gormModels "github.com/cocinero/v1/internal/infrastructure/persistence/gorm"
)

// seedRandomSource keeps generated demo data identical across runs
const seedRandomSource = 1042

// SeedDatabase populates the database with a demo kitchen: a small catalog
// of ingredients and appliances, the substitution and adaptation edges
// between them, a pantry, and enough recipes to fill a weekly plan.
func SeedDatabase(db *gorm.DB) error {
	// Check if data already exists
	var ingredientCount int64
	db.Model(&gormModels.IngredientModel{}).Count(&ingredientCount)
	if ingredientCount > 0 {
		return nil // Already seeded
	}

	faker := gofakeit.New(seedRandomSource)

	ingredients := []gormModels.IngredientModel{
		{ID: "ing_butter", Name: "Mantequilla", Category: "dairy", Subcategory: "fat", Synonyms: gormModels.StringSlice{"butter"}},
		{ID: "ing_oliveoil", Name: "Aceite de oliva", Category: "oil", Subcategory: "vegetable", Synonyms: gormModels.StringSlice{"olive oil", "aceite"}},
		{ID: "ing_margarine", Name: "Margarina", Category: "oil", Subcategory: "spread"},
		{ID: "ing_milk", Name: "Leche", Category: "dairy", Subcategory: "milk"},
		{ID: "ing_oatmilk", Name: "Leche de avena", Category: "plant-milk", Subcategory: "oat"},
		{ID: "ing_cream", Name: "Nata", Category: "dairy", Subcategory: "cream"},
		{ID: "ing_egg", Name: "Huevo", Category: "protein", Subcategory: "egg"},
		{ID: "ing_applesauce", Name: "Compota de manzana", Category: "fruit", Subcategory: "puree"},
		{ID: "ing_flour_wheat", Name: "Harina de trigo", Category: "flour", Subcategory: "wheat", Synonyms: gormModels.StringSlice{"harina"}},
		{ID: "ing_flour_almond", Name: "Harina de almendra", Category: "flour", Subcategory: "nut"},
		{ID: "ing_sugar", Name: "Azucar", Category: "sweetener", Subcategory: "refined"},
		{ID: "ing_honey", Name: "Miel", Category: "sweetener", Subcategory: "natural"},
		{ID: "ing_chicken", Name: "Pollo", Category: "protein", Subcategory: "poultry"},
		{ID: "ing_tofu", Name: "Tofu", Category: "protein", Subcategory: "soy"},
		{ID: "ing_beef", Name: "Ternera", Category: "protein", Subcategory: "beef"},
		{ID: "ing_lentils", Name: "Lentejas", Category: "legume", Subcategory: "lentil"},
		{ID: "ing_rice", Name: "Arroz", Category: "grain", Subcategory: "rice"},
		{ID: "ing_pasta", Name: "Pasta", Category: "grain", Subcategory: "wheat"},
		{ID: "ing_tomato", Name: "Tomate", Category: "vegetable", Subcategory: "fruit-vegetable"},
		{ID: "ing_onion", Name: "Cebolla", Category: "vegetable", Subcategory: "allium"},
		{ID: "ing_garlic", Name: "Ajo", Category: "vegetable", Subcategory: "allium"},
		{ID: "ing_potato", Name: "Patata", Category: "vegetable", Subcategory: "tuber"},
		{ID: "ing_yogurt", Name: "Yogur", Category: "dairy", Subcategory: "fermented"},
		{ID: "ing_cheese", Name: "Queso", Category: "dairy", Subcategory: "cheese"},
	}
	for _, item := range ingredients {
		if err := db.Create(&item).Error; err != nil {
			return fmt.Errorf("failed to seed ingredient: %w", err)
		}
	}

	appliances := []gormModels.ApplianceModel{
		{ID: "app_oven", Name: "Horno", Category: "appliance", Functionalities: gormModels.StringSlice{"bake", "roast", "grill"}},
		{ID: "app_airfryer", Name: "Freidora de aire", Category: "appliance", Synonyms: gormModels.StringSlice{"air fryer"}, Functionalities: gormModels.StringSlice{"bake", "roast", "fry"}},
		{ID: "app_stove", Name: "Fogones", Category: "appliance", Functionalities: gormModels.StringSlice{"boil", "fry", "simmer"}},
		{ID: "app_microwave", Name: "Microondas", Category: "appliance", Functionalities: gormModels.StringSlice{"heat", "steam"}},
		{ID: "app_blender", Name: "Batidora de vaso", Category: "appliance", Functionalities: gormModels.StringSlice{"blend", "puree"}},
		{ID: "app_handmixer", Name: "Batidora de mano", Category: "appliance", Functionalities: gormModels.StringSlice{"blend", "whisk"}},
		{ID: "app_pressurecooker", Name: "Olla a presion", Category: "appliance", Functionalities: gormModels.StringSlice{"boil", "simmer", "steam"}},
	}
	for _, item := range appliances {
		if err := db.Create(&item).Error; err != nil {
			return fmt.Errorf("failed to seed appliance: %w", err)
		}
	}

	substitutions := []gormModels.SubstitutionEdgeModel{
		{
			OriginalID:    "ing_butter",
			AlternativeID: "ing_oliveoil",
			Ratio:         0.75,
			Confidence:    0.8,
			RecipeTypes:   gormModels.StringSlice{"reposteria"},
			ImpactTaste:   "slightly fruitier, less rich",
			ImpactTexture: "denser crumb",
			Adjustments: gormModels.AdjustmentList{
				{Description: "Mix the oil in gradually to avoid a greasy batter"},
			},
			DietaryTags: gormModels.StringSlice{"vegan", "dairy-free"},
		},
		{
			OriginalID:    "ing_butter",
			AlternativeID: "ing_margarine",
			Ratio:         1.0,
			Confidence:    0.9,
			ImpactTaste:   "milder",
			DietaryTags:   gormModels.StringSlice{"dairy-free"},
		},
		{
			OriginalID:      "ing_milk",
			AlternativeID:   "ing_oatmilk",
			Ratio:           1.0,
			Confidence:      0.85,
			ImpactTaste:     "lightly sweet, oat notes",
			ImpactNutrition: "less protein",
			DietaryTags:     gormModels.StringSlice{"vegan", "dairy-free"},
		},
		{
			OriginalID:    "ing_egg",
			AlternativeID: "ing_applesauce",
			Ratio:         1.0,
			Confidence:    0.6,
			RecipeTypes:   gormModels.StringSlice{"reposteria"},
			ImpactTexture: "moister, less structure",
			Adjustments: gormModels.AdjustmentList{
				{Description: "Add 10 minutes of baking time", TimingDeltaMinutes: 10, TimingReason: "extra moisture"},
			},
			DietaryTags: gormModels.StringSlice{"vegan", "egg-free"},
		},
		{
			OriginalID:      "ing_flour_wheat",
			AlternativeID:   "ing_flour_almond",
			Ratio:           1.0,
			Confidence:      0.7,
			ImpactTexture:   "crumblier",
			ImpactNutrition: "more fat, fewer carbs",
			DietaryTags:     gormModels.StringSlice{"gluten-free"},
		},
		{
			OriginalID:    "ing_chicken",
			AlternativeID: "ing_tofu",
			Ratio:         1.0,
			Confidence:    0.75,
			Cuisines:      gormModels.StringSlice{"asiatica", "mediterranea"},
			ImpactTaste:   "neutral, absorbs the sauce",
			Adjustments: gormModels.AdjustmentList{
				{Description: "Press the tofu and marinate at least 20 minutes", Compensation: "marinade"},
			},
			DietaryTags: gormModels.StringSlice{"vegetarian", "vegan"},
		},
		{
			OriginalID:    "ing_beef",
			AlternativeID: "ing_lentils",
			Ratio:         0.8,
			Confidence:    0.65,
			RecipeTypes:   gormModels.StringSlice{"guisos"},
			ImpactTexture: "softer, no bite",
			DietaryTags:   gormModels.StringSlice{"vegetarian", "vegan"},
		},
		{
			OriginalID:    "ing_sugar",
			AlternativeID: "ing_honey",
			Ratio:         0.7,
			Confidence:    0.8,
			ImpactTaste:   "floral sweetness",
			Adjustments: gormModels.AdjustmentList{
				{Description: "Reduce other liquids slightly", Compensation: "liquid balance"},
			},
		},
		{
			OriginalID:    "ing_cream",
			AlternativeID: "ing_yogurt",
			Ratio:         1.0,
			Confidence:    0.7,
			ImpactTaste:   "tangier",
			ImpactTexture: "thinner when heated",
			Adjustments: gormModels.AdjustmentList{
				{Description: "Add off the heat to avoid splitting"},
			},
		},
	}
	for _, edge := range substitutions {
		if err := db.Create(&edge).Error; err != nil {
			return fmt.Errorf("failed to seed substitution edge: %w", err)
		}
	}

	adaptations := []gormModels.AdaptationEdgeModel{
		{
			OriginalID:       "app_oven",
			AlternativeID:    "app_airfryer",
			Confidence:       0.85,
			ImpactTechnique:  "smaller batches, closer heat source",
			ImpactTiming:     "shorter",
			ImpactQuality:    "comparable browning",
			ImpactDifficulty: "similar",
			Adjustments: gormModels.AdjustmentList{
				{Description: "Lower the temperature by 20 degrees", Compensation: "temperature"},
				{Description: "Cut the cooking time by about a quarter", TimingDeltaMinutes: -10, TimingReason: "faster air circulation"},
			},
		},
		{
			OriginalID:       "app_oven",
			AlternativeID:    "app_stove",
			Confidence:       0.5,
			RecipeTypes:      gormModels.StringSlice{"guisos", "sopas"},
			ImpactTechnique:  "covered pot over low heat instead of baking",
			ImpactTiming:     "longer, needs watching",
			ImpactQuality:    "no top browning",
			ImpactDifficulty: "harder",
			Adjustments: gormModels.AdjustmentList{
				{Description: "Use a heavy pot with a tight lid", Compensation: "heat retention"},
			},
		},
		{
			OriginalID:       "app_blender",
			AlternativeID:    "app_handmixer",
			Confidence:       0.8,
			ImpactTechnique:  "blend directly in the pot",
			ImpactTiming:     "slightly longer",
			ImpactQuality:    "coarser puree",
			ImpactDifficulty: "easier cleanup",
		},
		{
			OriginalID:       "app_pressurecooker",
			AlternativeID:    "app_stove",
			Confidence:       0.75,
			ImpactTiming:     "much longer",
			ImpactQuality:    "comparable",
			ImpactDifficulty: "similar",
			Adjustments: gormModels.AdjustmentList{
				{Description: "Triple the simmering time and top up liquid as needed", TimingDeltaMinutes: 40, TimingReason: "no pressure"},
			},
		},
	}
	for _, edge := range adaptations {
		if err := db.Create(&edge).Error; err != nil {
			return fmt.Errorf("failed to seed adaptation edge: %w", err)
		}
	}

	if err := seedRecipes(db, faker); err != nil {
		return err
	}

	pantry := []gormModels.InventoryItemModel{
		{IngredientID: "ing_oliveoil", Quantity: 500, Unit: "ml"},
		{IngredientID: "ing_rice", Quantity: 1000, Unit: "g"},
		{IngredientID: "ing_pasta", Quantity: 500, Unit: "g"},
		{IngredientID: "ing_egg", Quantity: 6, Unit: "unidad"},
		{IngredientID: "ing_onion", Quantity: 3, Unit: "unidad"},
		{IngredientID: "ing_garlic", Quantity: 1, Unit: "cabeza"},
		{IngredientID: "ing_tomato", Quantity: 4, Unit: "unidad"},
		{IngredientID: "ing_lentils", Quantity: 400, Unit: "g"},
	}
	for _, item := range pantry {
		if err := db.Create(&item).Error; err != nil {
			return fmt.Errorf("failed to seed inventory: %w", err)
		}
	}

	return nil
}

// seedRecipes creates a handful of signature recipes plus generated filler so
// a weekly plan can avoid repeats
func seedRecipes(db *gorm.DB, faker *gofakeit.Faker) error {
	signature := []gormModels.RecipeModel{
		{
			ID:          "rec_bizcocho",
			Title:       "Bizcocho de mantequilla",
			Description: "Bizcocho clasico de desayuno y merienda",
			Category:    "reposteria",
			Cuisine:     "espanola",
			Difficulty:  "easy",
			Tags:        gormModels.StringSlice{"desayuno", "dulce"},
			Ingredients: gormModels.IngredientLineList{
				{IngredientID: "ing_butter", Name: "Mantequilla", Amount: 200, Unit: "g"},
				{IngredientID: "ing_sugar", Name: "Azucar", Amount: 180, Unit: "g"},
				{IngredientID: "ing_egg", Name: "Huevo", Amount: 3, Unit: "unidad"},
				{IngredientID: "ing_flour_wheat", Name: "Harina de trigo", Amount: 250, Unit: "g"},
			},
			Steps: gormModels.StepList{
				{Number: 1, Instruction: "Bate la mantequilla con el azucar hasta blanquear", DurationMinutes: 5},
				{Number: 2, Instruction: "Incorpora los huevos de uno en uno", DurationMinutes: 3},
				{Number: 3, Instruction: "Tamiza la harina y mezcla con movimientos envolventes", DurationMinutes: 4},
				{Number: 4, Instruction: "Hornea a 180 grados hasta que el palillo salga limpio", DurationMinutes: 35},
			},
			Servings:         8,
			MinServings:      4,
			MaxServings:      12,
			TotalTimeMinutes: 50,
		},
		{
			ID:          "rec_lentejas",
			Title:       "Lentejas estofadas",
			Description: "Guiso de lentejas con verduras",
			Category:    "guisos",
			Cuisine:     "espanola",
			Difficulty:  "easy",
			Tags:        gormModels.StringSlice{"comida", "legumbres"},
			Ingredients: gormModels.IngredientLineList{
				{IngredientID: "ing_lentils", Name: "Lentejas", Amount: 300, Unit: "g"},
				{IngredientID: "ing_onion", Name: "Cebolla", Amount: 1, Unit: "unidad"},
				{IngredientID: "ing_garlic", Name: "Ajo", Amount: 2, Unit: "diente"},
				{IngredientID: "ing_tomato", Name: "Tomate", Amount: 2, Unit: "unidad"},
				{IngredientID: "ing_oliveoil", Name: "Aceite de oliva", Amount: 30, Unit: "ml"},
			},
			Steps: gormModels.StepList{
				{Number: 1, Instruction: "Sofrie la cebolla y el ajo en el aceite", DurationMinutes: 8},
				{Number: 2, Instruction: "Anade el tomate rallado y reduce", DurationMinutes: 5},
				{Number: 3, Instruction: "Incorpora las lentejas y cubre con agua", DurationMinutes: 2},
				{Number: 4, Instruction: "Cuece a fuego suave hasta que esten tiernas", DurationMinutes: 40},
			},
			Servings:         4,
			MinServings:      2,
			MaxServings:      8,
			TotalTimeMinutes: 55,
		},
		{
			ID:          "rec_pollo_asado",
			Title:       "Pollo asado al horno",
			Description: "Pollo asado con patatas",
			Category:    "carnes",
			Cuisine:     "espanola",
			Difficulty:  "medium",
			Tags:        gormModels.StringSlice{"cena", "horno"},
			Ingredients: gormModels.IngredientLineList{
				{IngredientID: "ing_chicken", Name: "Pollo", Amount: 1200, Unit: "g"},
				{IngredientID: "ing_potato", Name: "Patata", Amount: 600, Unit: "g"},
				{IngredientID: "ing_oliveoil", Name: "Aceite de oliva", Amount: 40, Unit: "ml"},
				{IngredientID: "ing_garlic", Name: "Ajo", Amount: 4, Unit: "diente", Optional: true},
			},
			Steps: gormModels.StepList{
				{Number: 1, Instruction: "Salpimienta el pollo y untalo con aceite", DurationMinutes: 5},
				{Number: 2, Instruction: "Corta las patatas en rodajas y ponlas de cama", DurationMinutes: 10},
				{Number: 3, Instruction: "Asa en el horno a 190 grados", DurationMinutes: 60},
			},
			Servings:         4,
			MinServings:      2,
			MaxServings:      6,
			TotalTimeMinutes: 75,
		},
		{
			ID:          "rec_crema_verduras",
			Title:       "Crema de verduras",
			Description: "Crema suave triturada con batidora",
			Category:    "sopas",
			Cuisine:     "espanola",
			Difficulty:  "easy",
			Tags:        gormModels.StringSlice{"cena", "ligero"},
			Ingredients: gormModels.IngredientLineList{
				{IngredientID: "ing_potato", Name: "Patata", Amount: 300, Unit: "g"},
				{IngredientID: "ing_onion", Name: "Cebolla", Amount: 1, Unit: "unidad"},
				{IngredientID: "ing_cream", Name: "Nata", Amount: 100, Unit: "ml", Optional: true},
				{IngredientID: "ing_oliveoil", Name: "Aceite de oliva", Amount: 20, Unit: "ml"},
			},
			Steps: gormModels.StepList{
				{Number: 1, Instruction: "Rehoga la cebolla y la patata troceadas", DurationMinutes: 8},
				{Number: 2, Instruction: "Cubre con agua y cuece hasta ablandar", DurationMinutes: 20},
				{Number: 3, Instruction: "Tritura con la batidora y anade la nata", DurationMinutes: 5},
			},
			Servings:         4,
			MinServings:      2,
			MaxServings:      6,
			TotalTimeMinutes: 35,
		},
	}

	for _, rec := range signature {
		if err := db.Create(&rec).Error; err != nil {
			return fmt.Errorf("failed to seed recipe: %w", err)
		}
	}

	// Filler recipes cycle through the meal slots so every slot has options
	type slotTemplate struct {
		category string
		cuisine  string
		tag      string
	}
	templates := []slotTemplate{
		{category: "desayuno", cuisine: "espanola", tag: "desayuno"},
		{category: "ensaladas", cuisine: "mediterranea", tag: "almuerzo"},
		{category: "pastas", cuisine: "italiana", tag: "comida"},
		{category: "guisos", cuisine: "espanola", tag: "comida"},
		{category: "sopas", cuisine: "espanola", tag: "cena"},
		{category: "carnes", cuisine: "mediterranea", tag: "cena"},
	}
	fillerIngredients := []gormModels.IngredientLineDoc{
		{IngredientID: "ing_rice", Name: "Arroz", Amount: 200, Unit: "g"},
		{IngredientID: "ing_pasta", Name: "Pasta", Amount: 250, Unit: "g"},
		{IngredientID: "ing_tomato", Name: "Tomate", Amount: 2, Unit: "unidad"},
		{IngredientID: "ing_egg", Name: "Huevo", Amount: 2, Unit: "unidad"},
		{IngredientID: "ing_cheese", Name: "Queso", Amount: 80, Unit: "g"},
		{IngredientID: "ing_chicken", Name: "Pollo", Amount: 400, Unit: "g"},
	}

	const fillerCount = 24
	for i := 0; i < fillerCount; i++ {
		tpl := templates[i%len(templates)]
		main := fillerIngredients[i%len(fillerIngredients)]
		dish := faker.Dinner()
		rec := gormModels.RecipeModel{
			ID:          fmt.Sprintf("rec_demo_%02d", i+1),
			Title:       dish,
			Description: fmt.Sprintf("Version casera de %s", dish),
			Category:    tpl.category,
			Cuisine:     tpl.cuisine,
			Difficulty:  []string{"easy", "medium"}[i%2],
			Tags:        gormModels.StringSlice{tpl.tag},
			Ingredients: gormModels.IngredientLineList{
				main,
				{IngredientID: "ing_oliveoil", Name: "Aceite de oliva", Amount: 20, Unit: "ml"},
				{IngredientID: "ing_onion", Name: "Cebolla", Amount: 1, Unit: "unidad", Optional: true},
			},
			Steps: gormModels.StepList{
				{Number: 1, Instruction: "Prepara y trocea los ingredientes", DurationMinutes: 10},
				{Number: 2, Instruction: "Cocina a fuego medio hasta el punto deseado", DurationMinutes: 15 + 5*(i%4)},
				{Number: 3, Instruction: "Rectifica de sal y sirve", DurationMinutes: 2},
			},
			Servings:         2 + i%3,
			MinServings:      1,
			MaxServings:      8,
			TotalTimeMinutes: 30 + 5*(i%4),
		}
		if err := db.Create(&rec).Error; err != nil {
			return fmt.Errorf("failed to seed recipe: %w", err)
		}
	}

	return nil
}
