package main

import (
	"github.com/hyunvinlim-art/habit-tracker/config"
	"github.com/hyunvinlim-art/habit-tracker/routes"
	"github.com/hyunvinlim-art/habit-tracker/utils"
)

func main() {
	config.InitDB()
	utils.InitS3()
	utils.InitSES()
	r := routes.SetupRouter()
	r.Run(":8080")
}
