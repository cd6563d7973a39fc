package main

import (
	"github.com/gin-gonic/gin"

	"gomart-social/apps/relationship-service/dao"
	"gomart-social/apps/relationship-service/handler"
	"gomart-social/apps/relationship-service/model"
	"gomart-social/apps/relationship-service/service"
	"gomart-social/pkg/server"
)

func main() {
	// 创建应用程序
	app := server.NewApplication("relationship-service")

	// 启用HTTP服务器
	app.EnableHTTP()

	// 建表迁移
	if err := app.GetPostgreSQL().AutoMigrate(
		&model.RelationshipEdge{},
		&model.User{},
		&model.Category{},
		&model.UserCategoryInterest{},
		&model.PersonalInfo{},
	); err != nil {
		panic(err)
	}

	// 初始化DAO层
	db := app.GetPostgreSQL()
	relationDAO := dao.NewRelationshipDAO(db)
	interestDAO := dao.NewInterestDAO(db)
	profileDAO := dao.NewProfileDAO(db)

	// 初始化Service层
	svc := service.NewService(relationDAO, interestDAO, profileDAO, app.GetKafkaProducer(), app.GetLogger())
	suggestionCfg := app.GetConfig().Suggestion
	svc.SetSuggestionLimits(suggestionCfg.DefaultLimit, suggestionCfg.ActivityScanLimit)

	// 初始化Handler
	httpHandler := handler.NewHTTPHandler(svc, app.GetLogger())

	// 注册HTTP路由
	app.RegisterHTTPRoutes(func(engine *gin.Engine) {
		httpHandler.RegisterRoutes(engine)
	})

	// 运行应用程序
	if err := app.Run(); err != nil {
		panic(err)
	}
}
