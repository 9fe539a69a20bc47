package models

import (
	"time"
)

// Review представляет отзыв клиента на сайте
type Review struct {
	ID         uint      `json:"id"`
	ClientName string    `json:"client_name"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment"`
	Published  bool      `json:"published"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// ReviewCreate используется только для добавления нового отзыва
type ReviewCreate struct {
	ClientName string `json:"client_name" binding:"required"`
	Rating     int    `json:"rating" binding:"required,min=1,max=5"`
	Comment    string `json:"comment"`
}
