// Command seed loads a demo dataset: one account per role, a handful of
// products and ingredients, a published recipe and a running flash sale.
package main

import (
	"context"
	"os"
	"time"

	"bakehouse-backend/internal/repositories"
	"bakehouse-backend/models"
	"bakehouse-backend/pkg/database"
	"bakehouse-backend/pkg/logger"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	log := logger.New("info", "text")

	app := &cli.App{
		Name:  "seed",
		Usage: "populate the bakery database with demo data",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "mongo-url",
				Usage:   "MongoDB connection string",
				EnvVars: []string{"MONGO_URL"},
				Value:   "mongodb://localhost:27017",
			},
			&cli.StringFlag{
				Name:    "db",
				Usage:   "database name",
				EnvVars: []string{"MONGO_DB"},
				Value:   "bakehouse",
			},
			&cli.StringFlag{
				Name:  "password",
				Usage: "password for all seeded accounts",
				Value: "password123",
			},
		},
		Action: func(c *cli.Context) error {
			return seed(c.Context, c.String("mongo-url"), c.String("db"), c.String("password"))
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.WithError(err).Fatal("seeding failed")
	}
	log.Info("seeding complete")
}

func seed(ctx context.Context, mongoURL, dbName, password string) error {
	client, err := database.Connect(ctx, mongoURL)
	if err != nil {
		return err
	}
	defer database.Disconnect(client)
	db := client.Database(dbName)

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return errors.Wrap(err, "hashing password")
	}

	now := time.Now()

	users := repositories.NewMongoUserRepository(db)
	accounts := []models.User{
		{Name: "Quản trị viên", Email: "admin@bakehouse.vn", Phone: "0900000001", Role: models.RoleAdmin},
		{Name: "Quản lý cửa hàng", Email: "manager@bakehouse.vn", Phone: "0900000002", Role: models.RoleManager},
		{Name: "Thợ làm bánh", Email: "baker@bakehouse.vn", Phone: "0900000003", Role: models.RoleBaker},
		{Name: "Nhân viên giao hàng", Email: "delivery@bakehouse.vn", Phone: "0900000004", Role: models.RoleDelivery},
		{Name: "Nguyễn Văn An", Email: "customer@bakehouse.vn", Phone: "0900000005", Role: models.RoleCustomer},
	}
	for i := range accounts {
		accounts[i].Password = string(hash)
		accounts[i].CreatedAt = now
		if _, err := users.GetByEmail(ctx, accounts[i].Email); err == nil {
			continue
		} else if !errors.Is(err, repositories.ErrNotFound) {
			return errors.Wrap(err, "checking existing user")
		}
		if err := users.Create(ctx, &accounts[i]); err != nil {
			return errors.Wrapf(err, "creating user %s", accounts[i].Email)
		}
	}

	products := repositories.NewMongoProductRepository(db)
	demoProducts := []models.Product{
		{
			Name:          "Bánh kem dâu tây",
			Description:   "Bánh kem tươi phủ dâu tây Đà Lạt",
			Price:         250000,
			DiscountPrice: 220000,
			Sizes:         []string{"S", "M", "L"},
			SizePricing: []models.SizePrice{
				{Size: "S", Price: 250000},
				{Size: "M", Price: 320000},
				{Size: "L", Price: 400000},
			},
			Flavors:  []string{"Vani", "Socola"},
			Images:   []models.Image{{URL: "/images/banh-kem-dau.jpg", AltText: "Bánh kem dâu tây"}},
			Category: "Bánh kem",
			Quantity: 20,
			Status:   models.ItemStatusActive,
		},
		{
			Name:        "Bánh mì hoa cúc",
			Description: "Bánh mì bơ mềm thơm mùi hoa cam",
			Price:       85000,
			Images:      []models.Image{{URL: "/images/banh-mi-hoa-cuc.jpg", AltText: "Bánh mì hoa cúc"}},
			Category:    "Bánh mì",
			Quantity:    50,
			Status:      models.ItemStatusActive,
		},
		{
			Name:        "Bánh su kem",
			Description: "Vỏ su giòn, nhân kem trứng",
			Price:       15000,
			Images:      []models.Image{{URL: "/images/banh-su-kem.jpg", AltText: "Bánh su kem"}},
			Category:    "Bánh ngọt",
			Quantity:    120,
			Status:      models.ItemStatusActive,
		},
	}
	for i := range demoProducts {
		demoProducts[i].CreatedAt = now
		demoProducts[i].UpdatedAt = now
		if err := products.Create(ctx, &demoProducts[i]); err != nil {
			return errors.Wrapf(err, "creating product %s", demoProducts[i].Name)
		}
	}

	ingredients := repositories.NewMongoIngredientRepository(db)
	demoIngredients := []models.Ingredient{
		{
			Name:        "Bột mì cao cấp",
			Description: "Bột mì số 13 chuyên làm bánh mì",
			Price:       45000,
			Unit:        "kg",
			Images:      []models.Image{{URL: "/images/bot-mi.jpg", AltText: "Bột mì"}},
			Category:    "Nguyên liệu khô",
			Quantity:    200,
			Supplier:    "Nhà máy bột Bình An",
			Status:      models.ItemStatusActive,
		},
		{
			Name:        "Bơ lạt nhập khẩu",
			Description: "Bơ lạt 82% béo",
			Price:       120000,
			Unit:        "hộp 250g",
			Images:      []models.Image{{URL: "/images/bo-lat.jpg", AltText: "Bơ lạt"}},
			Category:    "Nguyên liệu lạnh",
			Quantity:    80,
			Status:      models.ItemStatusActive,
		},
	}
	for i := range demoIngredients {
		demoIngredients[i].CreatedAt = now
		demoIngredients[i].UpdatedAt = now
		if err := ingredients.Create(ctx, &demoIngredients[i]); err != nil {
			return errors.Wrapf(err, "creating ingredient %s", demoIngredients[i].Name)
		}
	}

	recipes := repositories.NewMongoRecipeRepository(db)
	demoRecipe := models.Recipe{
		Name:         "Bánh mì hoa cúc",
		Description:  "Công thức bánh mì hoa cúc cho mẻ 10 ổ",
		Instructions: "Trộn bột, ủ 2 giờ, tạo hình thắt bím, nướng 170 độ trong 25 phút.",
		Ingredients: []models.RecipeIngredient{
			{Name: "Bột mì cao cấp", Quantity: 2, Unit: "kg"},
			{Name: "Bơ lạt nhập khẩu", Quantity: 0.5, Unit: "kg"},
		},
		Difficulty:  "medium",
		CookingTime: 180,
		Servings:    10,
		Category:    "Bánh mì",
		Status:      models.ItemStatusActive,
		IsPublished: true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := recipes.Create(ctx, &demoRecipe); err != nil {
		return errors.Wrap(err, "creating recipe")
	}

	flashSales := repositories.NewMongoFlashSaleRepository(db)
	sale := models.FlashSale{
		Name: "Khuyến mãi cuối tuần",
		Products: []models.FlashSaleLine{
			{
				ItemID:        demoProducts[0].ID,
				OriginalPrice: demoProducts[0].Price,
				SalePrice:     175000,
				Quantity:      10,
			},
		},
		Ingredients: []models.FlashSaleLine{
			{
				ItemID:        demoIngredients[0].ID,
				OriginalPrice: demoIngredients[0].Price,
				SalePrice:     36000,
				Quantity:      30,
			},
		},
		StartDate: now.Add(-time.Hour),
		EndDate:   now.Add(72 * time.Hour),
		Status:    models.FlashSaleActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := flashSales.Create(ctx, &sale); err != nil {
		return errors.Wrap(err, "creating flash sale")
	}

	return nil
}
