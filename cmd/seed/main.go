package main

import (
	"time"

	"github.com/gamevault-next/internal/config"
	"github.com/gamevault-next/internal/logger"
	"github.com/gamevault-next/internal/models"

	"github.com/shopspring/decimal"
)

func main() {
	// 连接数据库
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	// 自动迁移
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	// 添加类型
	genreNames := []string{"Action", "RPG", "Strategy", "Indie", "Simulation"}
	genresByName := map[string]models.Genre{}
	for _, name := range genreNames {
		var genre models.Genre
		if err := models.DB.Where("name = ?", name).FirstOrCreate(&genre, models.Genre{Name: name}).Error; err != nil {
			stdLog.Printf("Failed to create genre %s: %v", name, err)
			continue
		}
		genresByName[name] = genre
		stdLog.Printf("Genre ready: %s", name)
	}

	// 添加游戏
	games := []struct {
		game   models.Game
		genres []string
	}{
		{
			game: models.Game{
				Title:       "Starfall Odyssey",
				Description: "Open-world space RPG with a branching storyline.",
				Price:       models.NewMoneyFromDecimal(decimal.NewFromFloat(59.99)),
				CoverURL:    "https://images.unsplash.com/photo-1538481199705-c710c4e965fc?w=800",
				Developer:   "Nebula Forge",
				IsActive:    true,
				SortOrder:   30,
			},
			genres: []string{"RPG", "Action"},
		},
		{
			game: models.Game{
				Title:       "Iron Vanguard",
				Description: "Turn-based tactics across a shattered continent.",
				Price:       models.NewMoneyFromDecimal(decimal.NewFromFloat(39.99)),
				CoverURL:    "https://images.unsplash.com/photo-1552820728-8b83bb6b773f?w=800",
				Developer:   "Bastion Works",
				IsActive:    true,
				SortOrder:   20,
			},
			genres: []string{"Strategy"},
		},
		{
			game: models.Game{
				Title:       "Harvest Lane",
				Description: "Cozy farming sim with seasonal festivals.",
				Price:       models.NewMoneyFromDecimal(decimal.NewFromFloat(19.99)),
				CoverURL:    "https://images.unsplash.com/photo-1500382017468-9049fed747ef?w=800",
				Developer:   "Sprout Box",
				IsActive:    true,
				SortOrder:   10,
			},
			genres: []string{"Simulation", "Indie"},
		},
		{
			game: models.Game{
				Title:       "Neon Drift",
				Description: "Arcade racer set in a synthwave megacity.",
				Price:       models.NewMoneyFromDecimal(decimal.NewFromFloat(24.99)),
				CoverURL:    "https://images.unsplash.com/photo-1511512578047-dfb367046420?w=800",
				Developer:   "Pulse Arcade",
				IsActive:    true,
			},
			genres: []string{"Action", "Indie"},
		},
	}

	for _, entry := range games {
		var existing models.Game
		err := models.DB.Where("title = ?", entry.game.Title).First(&existing).Error
		if err == nil {
			stdLog.Printf("Game already exists: %s", entry.game.Title)
			continue
		}
		game := entry.game
		for _, name := range entry.genres {
			if genre, ok := genresByName[name]; ok {
				game.Genres = append(game.Genres, genre)
			}
		}
		if err := models.DB.Create(&game).Error; err != nil {
			stdLog.Printf("Failed to create game %s: %v", game.Title, err)
			continue
		}
		stdLog.Printf("Created game: %s", game.Title)
	}

	// 添加促销（展示价，仅用于前台标价）
	var promoGame models.Game
	if err := models.DB.Where("title = ?", "Neon Drift").First(&promoGame).Error; err == nil {
		var count int64
		models.DB.Model(&models.Promotion{}).Where("game_id = ?", promoGame.ID).Count(&count)
		if count == 0 {
			endsAt := time.Now().AddDate(0, 1, 0)
			promotion := models.Promotion{
				GameID:          promoGame.ID,
				Title:           "Launch Month Sale",
				DiscountPercent: 20,
				EndsAt:          &endsAt,
				IsActive:        true,
			}
			if err := models.DB.Create(&promotion).Error; err != nil {
				stdLog.Printf("Failed to create promotion: %v", err)
			} else {
				stdLog.Printf("Created promotion for: %s", promoGame.Title)
			}
		}
	}

	// 添加优惠码
	expiry := time.Now().AddDate(0, 3, 0)
	maxUses := 100
	coupons := []models.Coupon{
		{
			Code:          "WELCOME10",
			DiscountType:  models.CouponTypeFixed,
			DiscountValue: models.NewMoneyFromDecimal(decimal.NewFromFloat(10)),
			ExpiryDate:    &expiry,
			MaxUses:       &maxUses,
			IsActive:      true,
		},
		{
			Code:          "SPRING15",
			DiscountType:  models.CouponTypePercent,
			DiscountValue: models.NewMoneyFromDecimal(decimal.NewFromFloat(15)),
			ExpiryDate:    &expiry,
			IsActive:      true,
		},
	}
	for _, coupon := range coupons {
		var existing models.Coupon
		if err := models.DB.Where("code = ?", coupon.Code).First(&existing).Error; err == nil {
			stdLog.Printf("Coupon already exists: %s", coupon.Code)
			continue
		}
		if err := models.DB.Create(&coupon).Error; err != nil {
			stdLog.Printf("Failed to create coupon %s: %v", coupon.Code, err)
			continue
		}
		stdLog.Printf("Created coupon: %s", coupon.Code)
	}

	stdLog.Println("Seed finished")
}
