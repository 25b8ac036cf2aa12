package main

import (
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"foodiehub/database"
	"foodiehub/helpers"
	"foodiehub/middleware"
	"foodiehub/notify"
	"foodiehub/routes"
	"foodiehub/services"
	"foodiehub/store"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("no .env file found, using environment variables")
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "5000"
	}
	mongoURI := os.Getenv("MONGODB_URI")
	if mongoURI == "" {
		mongoURI = "mongodb://localhost:27017"
	}
	dbName := os.Getenv("DB_NAME")
	if dbName == "" {
		dbName = "foodiehub"
	}
	secret := os.Getenv("SECRET_KEY")
	if secret == "" {
		log.Fatal("SECRET_KEY must be set")
	}
	corsOrigin := os.Getenv("CORS_ORIGIN")
	if corsOrigin == "" {
		corsOrigin = "http://localhost:3000"
	}

	client, err := database.Connect(mongoURI)
	if err != nil {
		log.Fatal(err)
	}

	tokens := helpers.NewTokenMaker(secret, 24*time.Hour)
	hub := notify.NewHub()

	users := store.NewMongoUsers(database.OpenCollection(client, dbName, "users"))
	menu := store.NewMongoMenuItems(database.OpenCollection(client, dbName, "menuitems"))
	orders := store.NewMongoOrders(database.OpenCollection(client, dbName, "orders"))

	authService := services.NewAuthService(users, tokens)
	catalogService := services.NewCatalogService(menu)
	orderService := services.NewOrderService(orders, catalogService, hub)

	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{corsOrigin},
		AllowMethods:     []string{"POST", "GET", "PATCH", "DELETE", "PUT", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "time": time.Now().UTC()})
	})

	routes.AuthRoutes(router, authService, tokens)
	routes.MenuRoutes(router, catalogService, tokens)
	routes.OrderRoutes(router, orderService, tokens)

	router.GET("/ws/orders", middleware.Authentication(tokens), middleware.RequireAdmin(), hub.Handler())

	log.Printf("listening on :%s", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}
