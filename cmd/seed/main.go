package main

import (
	"context"
	"log"
	"time"

	"go.uber.org/zap"

	clientrepo "floracrm/internal/client/repository"
	"floracrm/internal/commons"
	appconfig "floracrm/internal/config"
	"floracrm/internal/domain"
	"floracrm/internal/dto"
	"floracrm/internal/infrastructure/logger"
	"floracrm/internal/infrastructure/mysql"
	inventoryrepo "floracrm/internal/inventory/repository"
	orderrepo "floracrm/internal/order/repository"
	orderservice "floracrm/internal/order/service"
	productrepo "floracrm/internal/product/repository"
)

func main() {
	cfg, err := commons.LoadConfig("internal/config/config.yaml")
	if err != nil {
		cfg, err = appconfig.Load()
		if err != nil {
			log.Fatalf("loading config: %v", err)
		}
	}

	zapLogger, err := logger.New(cfg.Log.Level)
	if err != nil {
		log.Fatalf("creating logger: %v", err)
	}
	defer zapLogger.Sync()

	db, err := mysql.NewConnection(cfg.Database)
	if err != nil {
		zapLogger.Fatal("connecting to database", zap.Error(err))
	}
	defer db.Close()

	if err := mysql.EnsureSchema(db); err != nil {
		zapLogger.Fatal("ensuring schema", zap.Error(err))
	}

	ctx := context.Background()

	products := productrepo.NewMySQLProductRepository(db)
	clients := clientrepo.NewMySQLClientRepository(db)
	inventory := inventoryrepo.NewMySQLInventoryRepository(db)
	ledger := orderservice.NewLedgerService(
		db,
		orderrepo.NewMySQLOrderRepository(db),
		orderrepo.NewMySQLOrderItemRepository(db),
		orderrepo.NewMySQLOrderHistoryRepository(db),
		products,
		clients,
		orderrepo.NewMySQLUserRepository(db),
		zapLogger,
		5*time.Second,
	)

	// Seeding is idempotent, an already-populated database is left alone.
	existing, err := products.List(ctx, productrepo.ProductFilter{Limit: 1})
	if err != nil {
		zapLogger.Fatal("checking existing data", zap.Error(err))
	}
	if len(existing) > 0 {
		zapLogger.Info("data already present, skipping seed")
		return
	}

	clientIDs := seedClients(ctx, zapLogger, clients)
	productIDs := seedProducts(ctx, zapLogger, products)
	seedInventory(ctx, zapLogger, inventory)
	userIDs := seedUsers(ctx, zapLogger, orderrepo.NewMySQLUserRepository(db))
	seedOrders(ctx, zapLogger, ledger, clientIDs, productIDs, userIDs)

	zapLogger.Info("seed data created")
}

func seedClients(ctx context.Context, logger *zap.Logger, repo *clientrepo.MySQLClientRepository) []uint {
	seed := []domain.Client{
		{Name: str("Анна Петрова"), Phone: "+77017777777", Email: str("anna@example.com"), Address: str("Алматы, ул. Абая 150"), ClientType: domain.ClientTypeCustomer, Notes: str("Постоянный клиент, любит розы")},
		{Name: str("Бауржан Касымов"), Phone: "+77012345678", Email: str("baur@example.com"), Address: str("Алматы, мкр. Самал-2, 45"), ClientType: domain.ClientTypeBoth, Notes: str("Корпоративный клиент")},
		{Name: str("Елена Ким"), Phone: "+77019876543", Email: str("elena.kim@company.kz"), Address: str("Астана, пр. Назарбаева 10"), ClientType: domain.ClientTypeRecipient, Notes: str("Получатель корпоративных заказов")},
		{Name: str("Дмитрий Волков"), Phone: "+77075555555", Address: str("Алматы, ул. Тимирязева 42"), ClientType: domain.ClientTypeCustomer, Notes: str("Предпочитает композиции")},
		{Name: str("Айгерим Нурланова"), Phone: "+77777777777", Email: str("aigera@gmail.com"), Address: str("Шымкент, ул. Абылай-хана 25"), ClientType: domain.ClientTypeBoth},
	}

	ids := make([]uint, 0, len(seed))
	for _, c := range seed {
		id, err := repo.Insert(ctx, c)
		if err != nil {
			logger.Fatal("seeding client", zap.Error(err))
		}
		ids = append(ids, id)
	}
	logger.Info("clients seeded", zap.Int("count", len(ids)))
	return ids
}

func seedProducts(ctx context.Context, logger *zap.Logger, repo *productrepo.MySQLProductRepository) []uint {
	seed := []domain.Product{
		{Name: "Букет Весенний", Description: str("Красивый весенний букет из тюльпанов и нарциссов"), Price: 15000, Category: domain.CategoryBouquet, PreparationTime: num(30)},
		{Name: "Букет 'Нежность'", Description: str("25 белых роз с эвкалиптом"), Price: 18000, Category: domain.CategoryBouquet, PreparationTime: num(45)},
		{Name: "Букет 'Страсть'", Description: str("31 красная роза премиум класса"), Price: 25000, Category: domain.CategoryBouquet, PreparationTime: num(30)},
		{Name: "Букет 'Весенний'", Description: str("Тюльпаны, нарциссы и мимоза"), Price: 12000, Category: domain.CategoryBouquet, PreparationTime: num(40)},
		{Name: "Букет 'Полевой'", Description: str("Ромашки, васильки и колоски"), Price: 8000, Category: domain.CategoryBouquet, PreparationTime: num(35)},
		{Name: "Букет 'Экзотика'", Description: str("Орхидеи, антуриум и стрелиция"), Price: 35000, Category: domain.CategoryBouquet, PreparationTime: num(60)},
		{Name: "Композиция 'Офисная'", Description: str("Композиция для офисного стола"), Price: 15000, Category: domain.CategoryComposition, PreparationTime: num(90)},
		{Name: "Композиция 'Свадебная'", Description: str("Центральная композиция для свадьбы"), Price: 45000, Category: domain.CategoryComposition, PreparationTime: num(120)},
		{Name: "Композиция 'Корзина фруктов и цветов'", Description: str("Фрукты с цветочным декором"), Price: 28000, Category: domain.CategoryComposition, PreparationTime: num(80)},
		{Name: "Орхидея Фаленопсис", Description: str("Белая орхидея в керамическом горшке"), Price: 20000, Category: domain.CategoryPotted, PreparationTime: num(15)},
		{Name: "Спатифиллум", Description: str("Женское счастье в декоративном кашпо"), Price: 8500, Category: domain.CategoryPotted, PreparationTime: num(10)},
		{Name: "Фикус Бенджамина", Description: str("Большой фикус для офиса"), Price: 15000, Category: domain.CategoryPotted, PreparationTime: num(20)},
	}

	ids := make([]uint, 0, len(seed))
	for _, p := range seed {
		id, err := repo.Insert(ctx, p)
		if err != nil {
			logger.Fatal("seeding product", zap.Error(err))
		}
		ids = append(ids, id)
	}
	logger.Info("products seeded", zap.Int("count", len(ids)))
	return ids
}

func seedInventory(ctx context.Context, logger *zap.Logger, repo *inventoryrepo.MySQLInventoryRepository) {
	seed := []domain.Inventory{
		{Name: "Розы красные", Quantity: 50, Unit: "шт", MinQuantity: flt(10)},
		{Name: "Розы белые", Quantity: 30, Unit: "шт", MinQuantity: flt(10)},
		{Name: "Тюльпаны желтые", Quantity: 25, Unit: "шт", MinQuantity: flt(5)},
		{Name: "Эвкалипт", Quantity: 15, Unit: "веток", MinQuantity: flt(5)},
		{Name: "Упаковочная бумага", Quantity: 100, Unit: "листов", MinQuantity: flt(20)},
		{Name: "Ленты атласные", Quantity: 200, Unit: "метров", MinQuantity: flt(50)},
		{Name: "Флористическая губка", Quantity: 80, Unit: "шт", MinQuantity: flt(20)},
		{Name: "Горшки керамические", Quantity: 15, Unit: "шт", MinQuantity: flt(5)},
		{Name: "Орхидеи", Quantity: 8, Unit: "шт", MinQuantity: flt(2)},
		{Name: "Декор (бусины)", Quantity: 500, Unit: "шт", MinQuantity: flt(100)},
	}

	for _, item := range seed {
		if _, err := repo.Insert(ctx, item); err != nil {
			logger.Fatal("seeding inventory", zap.Error(err))
		}
	}
	logger.Info("inventory seeded", zap.Int("count", len(seed)))
}

func seedUsers(ctx context.Context, logger *zap.Logger, repo *orderrepo.MySQLUserRepository) []uint {
	seed := []domain.User{
		{Username: "maria.florist", Email: "maria@floracrm.kz", City: str("Алматы"), Position: str("Флорист")},
		{Username: "anna.florist", Email: "anna.f@floracrm.kz", City: str("Алматы"), Position: str("Флорист")},
		{Username: "oleg.courier", Email: "oleg@floracrm.kz", City: str("Алматы"), Position: str("Курьер")},
	}

	ids := make([]uint, 0, len(seed))
	for _, u := range seed {
		id, err := repo.Insert(ctx, u)
		if err != nil {
			logger.Fatal("seeding user", zap.Error(err))
		}
		ids = append(ids, id)
	}
	logger.Info("users seeded", zap.Int("count", len(ids)))
	return ids
}

// seedOrders creates a handful of orders in different lifecycle stages by
// driving them through the ledger, so totals and history come out the same
// way they would in production.
func seedOrders(ctx context.Context, logger *zap.Logger, ledger *orderservice.LedgerService, clientIDs []uint, productIDs []uint, userIDs []uint) {
	now := time.Now()

	order1, err := ledger.Create(ctx, domain.Order{
		ClientID:          clientIDs[0],
		RecipientID:       clientIDs[0],
		Status:            domain.StatusNew,
		DeliveryDate:      now.AddDate(0, 0, 2),
		DeliveryAddress:   "Алматы, ул. Абая 150",
		DeliveryTimeRange: str("14:00-16:00"),
		Comment:           str("Ко дню рождения, упаковать красиво"),
	})
	if err != nil {
		logger.Fatal("seeding order", zap.Error(err))
	}
	addItems(ctx, logger, ledger, order1.ID, []dto.AddItemRequest{
		{ProductID: productIDs[1], Quantity: 1},
		{ProductID: productIDs[4], Quantity: 1},
		{ProductID: productIDs[10], Quantity: 1},
	})

	order2, err := ledger.Create(ctx, domain.Order{
		ClientID:          clientIDs[1],
		RecipientID:       clientIDs[2],
		ExecutorID:        &userIDs[0],
		Status:            domain.StatusNew,
		DeliveryDate:      now.AddDate(0, 0, 1),
		DeliveryAddress:   "Астана, пр. Назарбаева 10",
		DeliveryTimeRange: str("10:00-12:00"),
		Comment:           str("Корпоративный заказ, нужен чек"),
	})
	if err != nil {
		logger.Fatal("seeding order", zap.Error(err))
	}
	addItems(ctx, logger, ledger, order2.ID, []dto.AddItemRequest{
		{ProductID: productIDs[7], Quantity: 1},
	})
	advance(ctx, logger, ledger, order2.ID, "в работе", "Начата работа над заказом")

	order3, err := ledger.Create(ctx, domain.Order{
		ClientID:          clientIDs[3],
		RecipientID:       clientIDs[3],
		ExecutorID:        &userIDs[1],
		Status:            domain.StatusNew,
		DeliveryDate:      now,
		DeliveryAddress:   "Алматы, ул. Тимирязева 42",
		DeliveryTimeRange: str("16:00-18:00"),
		Comment:           str("Самовывоз"),
	})
	if err != nil {
		logger.Fatal("seeding order", zap.Error(err))
	}
	addItems(ctx, logger, ledger, order3.ID, []dto.AddItemRequest{
		{ProductID: productIDs[2], Quantity: 1},
	})
	advance(ctx, logger, ledger, order3.ID, "в работе", "Букет в работе")
	advance(ctx, logger, ledger, order3.ID, "готов", "Букет готов к выдаче")

	order4, err := ledger.Create(ctx, domain.Order{
		ClientID:          clientIDs[4],
		RecipientID:       clientIDs[4],
		ExecutorID:        &userIDs[2],
		Status:            domain.StatusNew,
		DeliveryDate:      now.AddDate(0, 0, -1),
		DeliveryAddress:   "Шымкент, ул. Абылай-хана 25",
		DeliveryTimeRange: str("12:00-14:00"),
		Comment:           str("Заказ выполнен успешно"),
	})
	if err != nil {
		logger.Fatal("seeding order", zap.Error(err))
	}
	addItems(ctx, logger, ledger, order4.ID, []dto.AddItemRequest{
		{ProductID: productIDs[5], Quantity: 1},
		{ProductID: productIDs[3], Quantity: 1},
	})
	advance(ctx, logger, ledger, order4.ID, "доставлен", "Заказ доставлен получателю")

	logger.Info("orders seeded", zap.Int("count", 4))
}

func addItems(ctx context.Context, logger *zap.Logger, ledger *orderservice.LedgerService, orderID uint, items []dto.AddItemRequest) {
	for _, item := range items {
		if _, err := ledger.AddItem(ctx, orderID, item); err != nil {
			logger.Fatal("seeding order item", zap.Error(err))
		}
	}
}

func advance(ctx context.Context, logger *zap.Logger, ledger *orderservice.LedgerService, orderID uint, status string, comment string) {
	if _, _, err := ledger.UpdateStatus(ctx, orderID, status, comment); err != nil {
		logger.Fatal("seeding order status", zap.Error(err))
	}
}

func str(s string) *string { return &s }

func num(n int) *int { return &n }

func flt(f float64) *float64 { return &f }
