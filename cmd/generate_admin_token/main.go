package main

import (
	"fmt"
	"log"

	"carrental-backend/internal/utils"

	"github.com/joho/godotenv"
)

// Служебная утилита: выдает долгоживущий токен администратора
// для интеграций и ручной отладки админ-панели.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Fatal("Error loading .env file")
	}

	tokenString, err := utils.GenerateServiceJWT()
	if err != nil {
		log.Fatalf("Error generating admin token: %v", err)
	}

	fmt.Printf("Generated admin token: %s\n", tokenString)
}
