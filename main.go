package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"ssc-pay-api/internal/config"
	"ssc-pay-api/internal/dal"
	"ssc-pay-api/internal/handler"
	"ssc-pay-api/internal/idgen"
	"ssc-pay-api/internal/middleware"
	"ssc-pay-api/internal/shard"
)

func main() {
	// load config env
	config.Init()

	// init infra
	dal.InitOrderDB()
	dal.InitRedis()
	dal.InitRabbitMQ()

	// idgen + shard
	idgen.Init(1)
	shard.InitShardEngines()

	// http server
	if config.C.Server.Mode != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(middleware.Recover(), middleware.RequestLogger())

	v1 := r.Group("/api/v1/payment")
	{
		ph := handler.NewPaymentHandler()
		v1.POST("/order/checkout", ph.Checkout)
		v1.POST("/order/payment-verification", ph.Verify)
		v1.GET("/order/:id", ph.Get)
	}

	addr := ":" + config.C.Server.Port
	log.Printf("listening %s", addr)
	if err := r.Run(addr); err != nil {
		log.Fatal(err)
	}
}
