package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/qbnguyen/cloudlet-service/http/controller"
	middlewares "github.com/qbnguyen/cloudlet-service/http/middleware"
)

func SetupRouter(ctrl *controller.Controller) *gin.Engine {
	r := gin.Default()
	middles, err := middlewares.NewMiddlewares(ctrl)
	if err != nil {
		panic(err)
	}

	r.Use(middles.CORSMiddleware)

	apiRoutes := r.Group("/api/v1/cloudlet")
	{
		apiRoutes.Use(middles.AuthMiddleware)

		fileRoutes := apiRoutes.Group("/files")
		{
			fileRoutes.GET("/", ctrl.ListFiles)
			fileRoutes.POST("/", ctrl.RecordUpload)
			fileRoutes.DELETE("/trash", ctrl.EmptyTrash)
			fileRoutes.PATCH("/:id/star", ctrl.ToggleStar)
			fileRoutes.PATCH("/:id/trash", ctrl.ToggleTrash)
			fileRoutes.DELETE("/:id", ctrl.DeleteFile)
		}

		apiRoutes.POST("/folders", ctrl.CreateFolder)

		uploadRoutes := apiRoutes.Group("/upload")
		{
			uploadRoutes.POST("/", ctrl.UploadFile)
			uploadRoutes.GET("/auth", ctrl.GetUploadAuth)
		}
	}
	return r
}
