package main

import (
	"log"
	"time"

	"github.com/Rasaku-Space/be-culinary-platform/config"
	"github.com/Rasaku-Space/be-culinary-platform/domain/content"
	"github.com/Rasaku-Space/be-culinary-platform/domain/user"
	"github.com/Rasaku-Space/be-culinary-platform/utils"
	"github.com/google/uuid"
)

func main() {
	config.InitConfig()
	config.InitDB()

	// Seed users
	users := []user.User{
		{Email: "budi@rasaku.id", Password: "password1", DisplayName: "Budi Santoso", Role: user.RoleBuyer},
		{Email: "sari@rasaku.id", Password: "password2", DisplayName: "Sari Dewi", Role: user.RoleBuyer},
		{Email: "warungmakyem@rasaku.id", Password: "password3", DisplayName: "Warung Mak Yem", Role: user.RoleSeller, StoreName: "Warung Mak Yem"},
		{Email: "dapurpadang@rasaku.id", Password: "password4", DisplayName: "Dapur Padang Sejati", Role: user.RoleSeller, StoreName: "Dapur Padang Sejati"},
		{Email: "kedaiteh@rasaku.id", Password: "password5", DisplayName: "Kedai Teh Nusantara", Role: user.RoleSeller, StoreName: "Kedai Teh Nusantara"},
	}

	for _, u := range users {
		hashedPassword, err := utils.HashPassword(u.Password)
		if err != nil {
			log.Fatalf("Failed to hash password for user %s: %v", u.Email, err)
		}

		_, err = config.DB.Exec(
			"INSERT INTO users (email, password, display_name, role, store_name, created_at, updated_at) VALUES (?, ?, ?, ?, ?, NOW(), NOW())",
			u.Email, hashedPassword, u.DisplayName, u.Role, u.StoreName,
		)
		if err != nil {
			log.Fatalf("Failed to seed user %s: %v", u.Email, err)
		}
		log.Printf("Seeded user: %s", u.Email)
	}

	// Seed content
	items := []content.Item{
		{
			Kind: content.KindEducation, OwnerID: 3, OwnerName: "Warung Mak Yem",
			Title: "Cara Membuat Nasi Goreng Kampung", Description: "Resep nasi goreng kampung dengan bumbu lengkap dan tips wok hei.",
			Category: "Makanan Utama", Status: content.StatusPublished,
			Likes: 12, Views: 340, ReadTime: 5, CreatedAt: time.Now().Add(-72 * time.Hour),
		},
		{
			Kind: content.KindEducation, OwnerID: 4, OwnerName: "Dapur Padang Sejati",
			Title: "Rahasia Rendang Empuk", Description: "Teknik memasak rendang selama delapan jam agar daging empuk sempurna.",
			Category: "Makanan Utama", Status: content.StatusPublished,
			Likes: 45, Views: 1200, ReadTime: 8, CreatedAt: time.Now().Add(-48 * time.Hour),
		},
		{
			Kind: content.KindEducation, OwnerID: 5, OwnerName: "Kedai Teh Nusantara",
			Title: "Mengenal Jenis Teh Indonesia", Description: "Dari teh melati sampai teh talua, kenali cita rasa teh nusantara.",
			Category: "Minuman", Status: content.StatusPublished,
			Likes: 7, Views: 150, ReadTime: 4, CreatedAt: time.Now().Add(-24 * time.Hour),
		},
		{
			Kind: content.KindPromotion, OwnerID: 3, OwnerName: "Warung Mak Yem",
			Title: "Promo Nasi Goreng Spesial", Description: "Diskon 20% untuk nasi goreng spesial setiap hari Jumat.",
			Category: "Makanan Utama", Status: content.StatusPublished,
			Likes: 3, Views: 88, CreatedAt: time.Now().Add(-12 * time.Hour),
		},
		{
			Kind: content.KindPromotion, OwnerID: 5, OwnerName: "Kedai Teh Nusantara",
			Title: "Es Teh Gratis", Description: "Beli dua minuman apa saja, gratis satu es teh manis.",
			Category: "Minuman", Status: content.StatusPublished,
			Likes: 9, Views: 210, CreatedAt: time.Now().Add(-6 * time.Hour),
		},
		{
			Kind: content.KindPromotion, OwnerID: 4, OwnerName: "Dapur Padang Sejati",
			Title: "Paket Rendang Keluarga", Description: "Paket hemat rendang untuk empat orang, belum dipublikasikan.",
			Category: "Makanan Utama", Status: content.StatusDraft,
			CreatedAt: time.Now().Add(-2 * time.Hour),
		},
	}

	for _, item := range items {
		_, err := config.DB.Exec(
			`INSERT INTO content_items
				(id, kind, owner_id, owner_name, title, description, category, status,
				 likes, views, read_time, created_at, updated_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			uuid.NewString(), item.Kind, item.OwnerID, item.OwnerName, item.Title,
			item.Description, item.Category, item.Status,
			item.Likes, item.Views, item.ReadTime, item.CreatedAt, item.CreatedAt,
		)
		if err != nil {
			log.Fatalf("Failed to seed content %q: %v", item.Title, err)
		}
		log.Printf("Seeded content: %s", item.Title)
	}

	log.Println("Seeding completed!")
}
