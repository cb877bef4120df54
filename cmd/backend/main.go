package main

import (
	"log"

	"bidding/internal/api"
)

// @title Bidding Marketplace API
// @version 1.0
// @description REST API аукционного маркетплейса: лоты, ставки, расчёт комиссии

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	log.Println("App start")
	api.StartServer()
	log.Println("App terminated")
}
